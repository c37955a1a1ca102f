package validator

import "fmt"

// FieldType is the kind of input a dynamic form field renders as.
type FieldType string

const (
	FieldRadioGroup       FieldType = "radio-group"
	FieldSelect           FieldType = "select"
	FieldCheckbox         FieldType = "checkbox"
	FieldCheckboxGroup    FieldType = "checkbox-group"
	FieldNumber           FieldType = "number"
	FieldText             FieldType = "text"
	FieldEmail            FieldType = "email"
	FieldTextArea         FieldType = "textarea"
	FieldDate             FieldType = "date"
	FieldSwatchRadioGroup FieldType = "swatch-radio-group"
	FieldCardRadioGroup   FieldType = "card-radio-group"
	FieldButtonRadioGroup FieldType = "button-radio-group"
	FieldPassword         FieldType = "password"
	FieldConfirmPassword  FieldType = "confirm-password"
	FieldHidden           FieldType = "hidden"
)

type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Option is a choice of a radio, select, checkbox group or swatch field.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Color    string `json:"color,omitempty"`
	Image    *Image `json:"image,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Field describes one input of a dynamic form. Only the attributes relevant
// to Type are read.
type Field struct {
	Type           FieldType `json:"type"`
	Name           string    `json:"name"`
	Label          string    `json:"label,omitempty"`
	ID             string    `json:"id,omitempty"`
	Placeholder    string    `json:"placeholder,omitempty"`
	Required       bool      `json:"required,omitempty"`
	Errors         []string  `json:"errors,omitempty"`
	Pattern        string    `json:"pattern,omitempty"`
	Min            *float64  `json:"min,omitempty"`
	Max            *float64  `json:"max,omitempty"`
	Step           *float64  `json:"step,omitempty"`
	MinDate        string    `json:"minDate,omitempty"`
	MaxDate        string    `json:"maxDate,omitempty"`
	IncrementLabel string    `json:"incrementLabel,omitempty"`
	DecrementLabel string    `json:"decrementLabel,omitempty"`
	Options        []Option  `json:"options,omitempty"`
	DefaultValue   string    `json:"defaultValue,omitempty"`
	DefaultValues  []string  `json:"defaultValues,omitempty"`
}

// FieldGroup is a row of fields rendered side by side. A lone field is a
// group of one.
type FieldGroup []Field

// DynamicSchema builds the object schema for a dynamic form. When the form
// has both a password and a confirm-password field, their values must match.
func DynamicSchema(groups []FieldGroup, settings *PasswordComplexitySettings, translations ErrorTranslationMap) (*ObjectSchema, error) {
	obj := Object()

	var passwordField, confirmField string
	for _, group := range groups {
		for _, f := range group {
			s, err := FieldSchema(f, settings, translations)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			obj.Field(f.Name, s)

			switch f.Type {
			case FieldPassword:
				passwordField = f.Name
			case FieldConfirmPassword:
				confirmField = f.Name
			}
		}
	}

	if passwordField != "" && confirmField != "" {
		obj.Refine(PasswordsMatch(passwordField, confirmField, translations))
	}
	return obj, nil
}

// FieldSchema returns the validator for a single dynamic field.
func FieldSchema(f Field, settings *PasswordComplexitySettings, translations ErrorTranslationMap) (Schema, error) {
	switch f.Type {
	case FieldNumber:
		s := Number()
		if f.Min != nil {
			s.Min(*f.Min)
		}
		if f.Max != nil {
			s.Max(*f.Max)
		}
		if !f.Required {
			s.Optional()
		}
		return s, nil

	case FieldText:
		s := String()
		if f.Pattern != "" {
			if _, err := s.Pattern(f.Pattern); err != nil {
				return nil, fmt.Errorf("invalid pattern: %w", err)
			}
		}
		if !f.Required {
			s.Optional()
		}
		return s, nil

	case FieldPassword:
		s := PasswordSchema(settings, translations)
		if !f.Required {
			s.Optional()
		}
		return s, nil

	case FieldEmail:
		s := String().Email().Trim()
		if !f.Required {
			s.Optional()
		}
		return s, nil

	case FieldCheckboxGroup:
		s := StringArray()
		if f.Required {
			s.Nonempty()
		}
		return s, nil

	case FieldCheckbox:
		if f.Required {
			return Literal("true"), nil
		}
		return Enum("true", "false").Optional(), nil

	default:
		s := String()
		if !f.Required {
			s.Optional()
		}
		return s, nil
	}
}
