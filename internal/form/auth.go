package form

import (
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

func LoginSchema() *validator.ObjectSchema {
	return validator.Object().
		Field("email", validator.String().Email()).
		Field("password", validator.String())
}

func LoginErrorTranslations(t i18n.TranslateFunc) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"email": emailTranslations(t),
		"password": {
			validator.InvalidType: t("FieldErrors.passwordRequired"),
		},
	}
}

func ForgotPasswordSchema() *validator.ObjectSchema {
	return validator.Object().
		Field("email", validator.String().Email().Trim())
}

func ForgotPasswordErrorTranslations(t i18n.TranslateFunc) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"email": emailTranslations(t),
	}
}

func ResetPasswordErrorTranslations(t i18n.TranslateFunc, settings *validator.PasswordComplexitySettings) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"password": passwordTranslations(t, settings),
		"confirmPassword": {
			validator.InvalidType: t("FieldErrors.passwordRequired"),
		},
	}
}

// ResetPasswordSchema validates the new password chosen from a reset link.
// The customer is identified by the link, so there is no current password.
func ResetPasswordSchema(settings *validator.PasswordComplexitySettings, translations validator.ErrorTranslationMap) *validator.ObjectSchema {
	return validator.Object().
		Field("password", validator.PasswordSchema(settings, translations)).
		Field("confirmPassword", validator.String()).
		Refine(validator.PasswordsMatch("password", "confirmPassword", translations))
}
