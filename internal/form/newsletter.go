package form

import "github.com/jwalitptl/storefront-api/pkg/validator"

const (
	DefaultEmailRequiredMessage = "Email is required"
	DefaultEmailInvalidMessage  = "Please enter a valid email address"
)

// InlineEmailSchema is the single field newsletter form. Its messages are
// attached to the checks, so no translation map is needed. Empty messages
// use the defaults.
func InlineEmailSchema(requiredMessage, invalidMessage string) *validator.ObjectSchema {
	if requiredMessage == "" {
		requiredMessage = DefaultEmailRequiredMessage
	}
	if invalidMessage == "" {
		invalidMessage = DefaultEmailInvalidMessage
	}
	return validator.Object().
		Field("email", validator.String().RequiredMessage(requiredMessage).Email(invalidMessage))
}
