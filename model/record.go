// Package model defines the canonical drug record shared by the store,
// the indexes, and the resolver.
package model

// Record is one entry of the reference drug dataset. The field set is fixed
// and small; all fields are plain strings because the upstream registry
// publishes them as free text. A Record is immutable after load — the
// store hands out copies by value.
type Record struct {
	RegistrationID string `json:"registration_id"` // opaque, stable registry key
	GenericName    string `json:"generic_name"`
	BrandName      string `json:"brand_name,omitempty"` // may be empty
	Strength       string `json:"strength"`             // e.g. "500 mg"
	Form           string `json:"form"`                 // e.g. "film-coated tablet"
	Category       string `json:"category"`             // therapeutic classification
}

// DisplayName returns the name a UI should render for the record: the brand
// name when one exists, otherwise the generic name.
func (r Record) DisplayName() string {
	if r.BrandName != "" {
		return r.BrandName
	}
	return r.GenericName
}
