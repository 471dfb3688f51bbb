package shell

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleveque/therapist-finder/internal/model"
)

// stubFinder returns canned results and counts calls.
type stubFinder struct {
	results []model.Therapist
	err     error
	calls   int
	zips    []string
}

func (f *stubFinder) FindTherapists(_ context.Context, zipcode string) ([]model.Therapist, error) {
	f.calls++
	f.zips = append(f.zips, zipcode)
	return f.results, f.err
}

func sampleTherapists() []model.Therapist {
	return []model.Therapist{
		{Name: "Dr. Ada Park", Specialty: "CBT", Address: "100 Wilshire Blvd", Phone: "(310) 555-0101"},
		{Name: "Canyon Family Counseling", Specialty: "Family Counseling", Address: "200 Canon Dr", Phone: "(310) 555-0102"},
		{Name: "Lee Wellness", Specialty: "Trauma", Address: "300 Rodeo Dr", Phone: "310.555.0103"},
	}
}

func typeAll(s *Session, keys string) {
	for _, r := range keys {
		s.Type(r)
	}
}

func TestType_FiltersAndCaps(t *testing.T) {
	inputs := []string{"12a3456", "abcde", "9-0-2-1-0-7", "０１２３", "1234567890", " 9 0 2 1 0 "}

	for _, in := range inputs {
		s := NewSession()
		typeAll(s, in)

		zip := s.Zipcode()
		assert.LessOrEqual(t, len(zip), ZipcodeLength, "input %q", in)
		for _, r := range zip {
			assert.True(t, r >= '0' && r <= '9', "non-digit %q stored for input %q", r, in)
		}
	}

	s := NewSession()
	typeAll(s, "12a3456")
	assert.Equal(t, "12345", s.Zipcode(), "sixth digit is rejected, letters dropped")
}

func TestSetZipcode_RejectsOverlongEdit(t *testing.T) {
	s := NewSession()
	s.SetZipcode("12a34")
	assert.Equal(t, "1234", s.Zipcode())

	// A paste leaving six digits is rejected as a whole
	s.SetZipcode("123456")
	assert.Equal(t, "1234", s.Zipcode())

	s.SetZipcode("")
	assert.Equal(t, "", s.Zipcode())
}

func TestBackspace(t *testing.T) {
	s := NewSession()
	typeAll(s, "902")
	s.Backspace()
	assert.Equal(t, "90", s.Zipcode())

	s.Backspace()
	s.Backspace()
	s.Backspace()
	assert.Equal(t, "", s.Zipcode())
}

func TestEditingDoesNotChangeStatus(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	assert.Equal(t, StatusIdle, s.State().Status)
}

func TestSubmit_InvalidZipcodeMakesNoCall(t *testing.T) {
	for _, zip := range []string{"", "123", "9021"} {
		finder := &stubFinder{results: sampleTherapists()}
		s := NewSession()
		s.SetZipcode(zip)

		called := s.Search(context.Background(), finder)

		assert.False(t, called, "zip %q", zip)
		assert.Equal(t, 0, finder.calls, "zip %q", zip)
		st := s.State()
		assert.Equal(t, StatusError, st.Status)
		assert.Equal(t, MsgInvalidZipcode, st.ErrorMessage)
	}
}

func TestSearch_Success(t *testing.T) {
	finder := &stubFinder{results: sampleTherapists()}
	s := NewSession()
	typeAll(s, "90210")
	require.Equal(t, StatusIdle, s.State().Status)

	zip, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, "90210", zip)
	assert.Equal(t, StatusLoading, s.State().Status)

	results, err := finder.FindTherapists(context.Background(), zip)
	s.Complete(results, err)

	st := s.State()
	assert.Equal(t, StatusResults, st.Status)
	require.Len(t, st.Results, 3)
	assert.Equal(t, "Dr. Ada Park", st.Results[0].Name)
	assert.Equal(t, "Lee Wellness", st.Results[2].Name)
	assert.Empty(t, st.ErrorMessage)
}

func TestSearch_EmptyResults(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")

	s.Search(context.Background(), &stubFinder{results: nil})

	st := s.State()
	assert.Equal(t, StatusResults, st.Status)
	assert.NotNil(t, st.Results)
	assert.Empty(t, st.Results)
}

func TestSearch_FailureHidesCause(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")

	s.Search(context.Background(), &stubFinder{err: fmt.Errorf("upstream said: quota exceeded for key sk-123")})

	st := s.State()
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, MsgServiceFailed, st.ErrorMessage)
	assert.Nil(t, st.Results)
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")

	_, ok := s.Submit()
	require.True(t, ok)
	before := s.State()

	// Second trigger and edits have no effect
	zip, ok := s.Submit()
	assert.False(t, ok)
	assert.Empty(t, zip)
	s.Type('1')
	s.Backspace()
	s.SetZipcode("11111")

	assert.Equal(t, before, s.State())
	assert.False(t, s.CanSearch())
}

func TestComplete_IgnoredWhenNotLoading(t *testing.T) {
	s := NewSession()
	s.Complete(sampleTherapists(), nil)
	assert.Equal(t, StatusIdle, s.State().Status)

	s.Complete(nil, errors.New("late failure"))
	assert.Equal(t, StatusIdle, s.State().Status)
}

func TestNextSearchClearsPriorResults(t *testing.T) {
	finder := &stubFinder{results: sampleTherapists()}
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), finder)
	require.Equal(t, StatusResults, s.State().Status)

	s.SetZipcode("10001")
	_, ok := s.Submit()
	require.True(t, ok)

	st := s.State()
	assert.Equal(t, StatusLoading, st.Status)
	assert.Nil(t, st.Results)
	assert.Empty(t, st.ErrorMessage)

	// error → loading also works
	s.Complete(nil, errors.New("boom"))
	require.Equal(t, StatusError, s.State().Status)
	_, ok = s.Submit()
	assert.True(t, ok)
	assert.Empty(t, s.State().ErrorMessage)
}

func TestCanSearch(t *testing.T) {
	s := NewSession()
	assert.False(t, s.CanSearch())

	typeAll(s, "9021")
	assert.False(t, s.CanSearch())

	s.Type('0')
	assert.True(t, s.CanSearch())

	s.Submit()
	assert.False(t, s.CanSearch())
}

func TestStateSnapshotIsolated(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), &stubFinder{results: sampleTherapists()})

	snap := s.State()
	snap.Results[0].Name = "changed"

	assert.Equal(t, "Dr. Ada Park", s.State().Results[0].Name)
}
