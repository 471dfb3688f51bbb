package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fleveque/therapist-finder/internal/model"
	"github.com/fleveque/therapist-finder/internal/shell"
)

type searchOutput struct {
	Zipcode    string            `json:"zipcode"`
	Therapists []model.Therapist `json:"therapists"`
}

// runSearch drives one shell session to completion and prints the screen it
// ends on. Error screens come back as errors so the exit status is non-zero.
func runSearch(ctx context.Context, out io.Writer, finder shell.Finder, zipcode string, asJSON bool) error {
	session := shell.NewSession()
	session.SetZipcode(zipcode)
	session.Search(ctx, finder)

	st := session.State()
	screen := shell.Render(st)
	if screen.Kind == shell.ScreenError {
		return errors.New(screen.Message)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{Zipcode: st.SearchedZipcode(), Therapists: st.Results})
	}

	return printScreen(out, screen)
}

func printScreen(out io.Writer, screen shell.Screen) error {
	var err error
	write := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(out, format, args...)
		}
	}

	switch screen.Kind {
	case shell.ScreenResults:
		write("%s\n\n", screen.Header)
		for i, card := range screen.Cards {
			write("%d. %s\n", i+1, card.Name)
			write("   %s\n", card.Specialty)
			write("   %s\n", card.Address)
			write("   %s (%s)\n\n", card.Phone, card.PhoneHref)
		}
	default:
		write("%s\n", screen.Message)
	}
	return err
}
