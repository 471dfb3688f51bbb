package service

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fleveque/therapist-finder/internal/model"
)

// ParseTherapists turns the model's JSON text into records.
//
// The text is read as an untyped document first; every element must then be
// an object carrying all four fields as strings. One bad element rejects the
// whole response. Blank text means "no results".
func ParseTherapists(text string) ([]model.Therapist, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []model.Therapist{}, nil
	}

	if !gjson.Valid(text) {
		return nil, &ServiceError{Kind: KindParse, Err: fmt.Errorf("response is not valid JSON")}
	}

	doc := gjson.Parse(text)
	if !doc.IsArray() {
		return nil, &ServiceError{Kind: KindSchema, Err: fmt.Errorf("expected a JSON array, got %s", doc.Type)}
	}

	elems := doc.Array()
	therapists := make([]model.Therapist, 0, len(elems))
	for i, elem := range elems {
		if !elem.IsObject() {
			return nil, &ServiceError{Kind: KindSchema, Err: fmt.Errorf("element %d is not an object", i)}
		}

		values := make(map[string]string, len(model.TherapistFields))
		for _, field := range model.TherapistFields {
			v := elem.Get(field)
			if !v.Exists() {
				return nil, &ServiceError{Kind: KindSchema, Err: fmt.Errorf("element %d: missing %q", i, field)}
			}
			if v.Type != gjson.String {
				return nil, &ServiceError{Kind: KindSchema, Err: fmt.Errorf("element %d: %q is %s, not a string", i, field, v.Type)}
			}
			values[field] = v.String()
		}

		therapists = append(therapists, model.Therapist{
			Name:      values[model.FieldName],
			Specialty: values[model.FieldSpecialty],
			Address:   values[model.FieldAddress],
			Phone:     values[model.FieldPhone],
		})
	}

	return therapists, nil
}
