package form

import (
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

// RegisterFields is the customer registration form. Labels are filled in
// by the page from its own catalog.
func RegisterFields() []validator.FieldGroup {
	return []validator.FieldGroup{
		{
			{Type: validator.FieldText, Name: "firstName", Required: true},
			{Type: validator.FieldText, Name: "lastName", Required: true},
		},
		{{Type: validator.FieldEmail, Name: "email", Required: true}},
		{
			{Type: validator.FieldPassword, Name: "password", Required: true},
			{Type: validator.FieldConfirmPassword, Name: "confirmPassword", Required: true},
		},
		{{Type: validator.FieldText, Name: "company"}},
		{{Type: validator.FieldText, Name: "phone"}},
		{{Type: validator.FieldCheckbox, Name: "acceptsMarketing"}},
	}
}

func RegisterErrorTranslations(t i18n.TranslateFunc, settings *validator.PasswordComplexitySettings) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"firstName": {validator.InvalidType: t("FieldErrors.firstNameRequired")},
		"lastName":  {validator.InvalidType: t("FieldErrors.lastNameRequired")},
		"email":     emailTranslations(t),
		"password":  passwordTranslations(t, settings),
		"confirmPassword": {
			validator.InvalidType: t("FieldErrors.confirmPasswordRequired"),
		},
	}
}

// RegisterSchema builds the registration schema from fields.
func RegisterSchema(fields []validator.FieldGroup, settings *validator.PasswordComplexitySettings, translations validator.ErrorTranslationMap) (*validator.ObjectSchema, error) {
	return validator.DynamicSchema(fields, settings, translations)
}
