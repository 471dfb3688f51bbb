package shell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Idle(t *testing.T) {
	screen := Render(NewSession().State())

	assert.Equal(t, ScreenPrompt, screen.Kind)
	assert.Equal(t, MsgIdle, screen.Message)
	assert.False(t, screen.CanSubmit)
	assert.Equal(t, "Search", screen.ButtonLabel)
}

func TestRender_Loading(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Submit()

	screen := Render(s.State())

	assert.Equal(t, ScreenLoading, screen.Kind)
	assert.Equal(t, MsgLoading, screen.Message)
	assert.True(t, screen.InputLocked)
	assert.False(t, screen.CanSubmit)
	assert.Equal(t, "Searching...", screen.ButtonLabel)
}

func TestRender_Results(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), &stubFinder{results: sampleTherapists()})

	screen := Render(s.State())

	require.Equal(t, ScreenResults, screen.Kind)
	assert.Equal(t, "Therapists near 90210", screen.Header)
	require.Len(t, screen.Cards, 3)
	for i, want := range sampleTherapists() {
		assert.Equal(t, want.Name, screen.Cards[i].Name)
		assert.Equal(t, want.Phone, screen.Cards[i].Phone)
		assert.Equal(t, "tel:"+want.Phone, screen.Cards[i].PhoneHref)
	}
	assert.True(t, screen.CanSubmit)
}

func TestRender_Empty(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), &stubFinder{results: nil})

	screen := Render(s.State())

	assert.Equal(t, ScreenEmpty, screen.Kind)
	assert.Equal(t, "No therapists found for zipcode 90210. Please try a different area.", screen.Message)
	assert.NotEqual(t, MsgServiceFailed, screen.Message)
}

func TestRender_EmptyKeepsSearchedZipcode(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), &stubFinder{results: nil})
	s.Backspace()

	screen := Render(s.State())

	assert.Equal(t, "9021", screen.Zipcode)
	assert.Contains(t, screen.Message, "90210")
}

func TestRender_ServiceError(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), &stubFinder{err: errors.New("connection reset by peer")})

	screen := Render(s.State())

	assert.Equal(t, ScreenError, screen.Kind)
	assert.Equal(t, MsgServiceFailed, screen.Message)
	assert.NotContains(t, screen.Message, "connection reset")
}

func TestRender_IsPure(t *testing.T) {
	s := NewSession()
	typeAll(s, "90210")
	s.Search(context.Background(), &stubFinder{results: sampleTherapists()})
	st := s.State()

	assert.Equal(t, Render(st), Render(st))
	assert.Equal(t, st, s.State())
}
