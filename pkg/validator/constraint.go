package validator

// Constraint mirrors the native input attributes a form field can carry.
type Constraint struct {
	Required  bool     `json:"required,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Multiple  bool     `json:"multiple,omitempty"`
}

// Schema validates the submitted values of a single field.
type Schema interface {
	Parse(values []string) (any, []Issue)
	Constraint() Constraint
}
