package model

import "github.com/jwalitptl/storefront-api/pkg/validator"

// FormState is the response to a form submission. The client re-renders
// the form from LastResult and shows SuccessMessage when set.
type FormState struct {
	LastResult     *validator.SubmissionResult `json:"lastResult"`
	SuccessMessage string                      `json:"successMessage,omitempty"`
	// Data carries what the backend returned for the submission, e.g. the
	// customer access token after signing in.
	Data any `json:"data,omitempty"`
}

// Failed reports whether the submission was rejected.
func (s FormState) Failed() bool {
	return s.LastResult != nil && s.LastResult.Status == validator.StatusError
}

// FormPage is what a page needs to render a form: native input constraints
// per field and, for password forms, the active complexity settings.
type FormPage struct {
	Locale                     string                                `json:"locale"`
	Constraints                map[string]validator.Constraint       `json:"constraints"`
	PasswordComplexitySettings *validator.PasswordComplexitySettings `json:"passwordComplexitySettings,omitempty"`
	Fields                     []validator.FieldGroup                `json:"fields,omitempty"`
}

// ResetPasswordToken identifies the customer of a reset link.
type ResetPasswordToken struct {
	CustomerID int    `form:"c" binding:"required,gt=0"`
	Token      string `form:"t" binding:"required"`
}
