// Package model defines the core data types for the therapist finder.
// Struct tags (`json:"..."`) tell encoding/json how to map fields to the API
// responses and to the structured-completion schema.
package model

// Therapist is one result entry returned by the AI service.
// All four fields are required free text; nothing here is format-checked.
type Therapist struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// Field names of a therapist record, in schema order.
const (
	FieldName      = "name"
	FieldSpecialty = "specialty"
	FieldAddress   = "address"
	FieldPhone     = "phone"
)

// TherapistFields is the ordered list of required record fields.
var TherapistFields = []string{FieldName, FieldSpecialty, FieldAddress, FieldPhone}

// PhoneHref returns the direct-dial link for the stored phone, as-is.
func (t Therapist) PhoneHref() string {
	return "tel:" + t.Phone
}
