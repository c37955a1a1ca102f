package form

import (
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

func UpdateAccountSchema() *validator.ObjectSchema {
	return validator.Object().
		Field("firstName", validator.String().Min(2).Trim()).
		Field("lastName", validator.String().Min(2).Trim()).
		Field("email", validator.String().Email().Trim()).
		Field("company", validator.String().Trim().Optional())
}

func UpdateAccountErrorTranslations(t i18n.TranslateFunc) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"firstName": {
			validator.InvalidType: t("FieldErrors.firstNameRequired"),
			validator.TooSmall:    t("FieldErrors.firstNameTooSmall"),
		},
		"lastName": {
			validator.InvalidType: t("FieldErrors.lastNameRequired"),
			validator.TooSmall:    t("FieldErrors.lastNameTooSmall"),
		},
		"email": emailTranslations(t),
	}
}

func ChangePasswordErrorTranslations(t i18n.TranslateFunc, settings *validator.PasswordComplexitySettings) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"currentPassword": {
			validator.InvalidType: t("FieldErrors.currentPasswordRequired"),
		},
		"password": passwordTranslations(t, settings),
		"confirmPassword": {
			validator.InvalidType: t("FieldErrors.confirmPasswordRequired"),
		},
	}
}

// ChangePasswordSchema requires the current password, a new password that
// satisfies the policy, and a matching confirmation.
func ChangePasswordSchema(settings *validator.PasswordComplexitySettings, translations validator.ErrorTranslationMap) *validator.ObjectSchema {
	return validator.Object().
		Field("currentPassword", validator.String().Trim()).
		Field("password", validator.PasswordSchema(settings, translations)).
		Field("confirmPassword", validator.String()).
		Refine(validator.PasswordsMatch("password", "confirmPassword", translations))
}
