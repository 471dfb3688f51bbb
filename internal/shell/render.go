package shell

import (
	"fmt"

	"github.com/fleveque/therapist-finder/internal/model"
)

// App header copy.
const (
	AppTitle   = "Therapist Finder"
	AppTagline = "Your local guide to mental wellness."
)

// Static screen copy.
const (
	MsgIdle    = "Enter your zipcode to find mental health professionals in your area."
	MsgLoading = "Searching for therapists near you..."
)

// ScreenKind says which of the mutually exclusive bodies to draw.
type ScreenKind int

const (
	ScreenPrompt ScreenKind = iota
	ScreenLoading
	ScreenError
	ScreenEmpty
	ScreenResults
)

// Card is one therapist as displayed: the record verbatim plus its dial link.
type Card struct {
	Name      string
	Specialty string
	Address   string
	Phone     string
	PhoneHref string
}

// Screen is everything a front end needs to draw the body under the search box.
type Screen struct {
	Kind    ScreenKind
	Message string // prompt, loading, error or empty text
	Header  string // only for ScreenResults
	Cards   []Card // only for ScreenResults, in received order

	// Search box state
	Zipcode     string
	InputLocked bool
	CanSubmit   bool
	ButtonLabel string
}

// Render maps a state to a screen. It has no side effects.
func Render(st State) Screen {
	screen := Screen{
		Zipcode:     st.Zipcode,
		InputLocked: st.Status == StatusLoading,
		CanSubmit:   st.Status != StatusLoading && len(st.Zipcode) == ZipcodeLength,
		ButtonLabel: "Search",
	}

	switch {
	case st.Status == StatusLoading:
		screen.Kind = ScreenLoading
		screen.Message = MsgLoading
		screen.ButtonLabel = "Searching..."
	case st.Status == StatusError:
		screen.Kind = ScreenError
		screen.Message = st.ErrorMessage
	case st.Status == StatusIdle || st.Results == nil:
		screen.Kind = ScreenPrompt
		screen.Message = MsgIdle
	case len(st.Results) == 0:
		screen.Kind = ScreenEmpty
		screen.Message = fmt.Sprintf("No therapists found for zipcode %s. Please try a different area.", st.searched)
	default:
		screen.Kind = ScreenResults
		screen.Header = fmt.Sprintf("Therapists near %s", st.searched)
		screen.Cards = make([]Card, len(st.Results))
		for i, t := range st.Results {
			screen.Cards[i] = NewCard(t)
		}
	}

	return screen
}

// NewCard renders one record. Nothing is reformatted.
func NewCard(t model.Therapist) Card {
	return Card{
		Name:      t.Name,
		Specialty: t.Specialty,
		Address:   t.Address,
		Phone:     t.Phone,
		PhoneHref: t.PhoneHref(),
	}
}
