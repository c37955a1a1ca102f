// Package form defines the schemas and error translations of every
// storefront account form.
package form

import (
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

// Form names, used for metrics and logging.
const (
	ChangePassword = "change_password"
	UpdateAccount  = "update_account"
	Address        = "address"
	DeleteAddress  = "delete_address"
	Login          = "login"
	ForgotPassword = "forgot_password"
	ResetPassword  = "reset_password"
	Register       = "register"
	Review         = "review"
	Newsletter     = "newsletter"
)

// Catalog namespaces of each form's messages.
const (
	NamespaceAccountSettings = "Account.Settings"
	NamespaceAddresses       = "Account.Addresses"
	NamespaceLogin           = "Auth.Login"
	NamespaceForgotPassword  = "Auth.Login.ForgotPassword"
	NamespaceResetPassword   = "Auth.ChangePassword"
	NamespaceRegister        = "Auth.Register"
	NamespaceReviews         = "Product.Reviews.Form"
	NamespaceNewsletter      = "Newsletter"
)

// passwordTranslations is shared by every form with a password policy.
func passwordTranslations(t i18n.TranslateFunc, settings *validator.PasswordComplexitySettings) map[validator.IssueCode]string {
	minLength, minNumbers := 0, 1
	if settings != nil && settings.MinimumPasswordLength != nil {
		minLength = *settings.MinimumPasswordLength
	}
	if settings != nil && settings.MinimumNumbers != nil {
		minNumbers = *settings.MinimumNumbers
	}

	return map[validator.IssueCode]string{
		validator.InvalidType:              t("FieldErrors.passwordRequired"),
		validator.TooSmall:                 t("FieldErrors.passwordTooSmall", minLength),
		validator.LowercaseRequired:        t("FieldErrors.passwordLowercaseRequired"),
		validator.UppercaseRequired:        t("FieldErrors.passwordUppercaseRequired"),
		validator.NumberRequired:           t("FieldErrors.passwordNumberRequired", minNumbers),
		validator.SpecialCharacterRequired: t("FieldErrors.passwordSpecialCharacterRequired"),
		validator.PasswordsMustMatch:       t("FieldErrors.passwordsMustMatch"),
	}
}

func emailTranslations(t i18n.TranslateFunc) map[validator.IssueCode]string {
	return map[validator.IssueCode]string{
		validator.InvalidType:   t("FieldErrors.emailRequired"),
		validator.InvalidString: t("FieldErrors.emailInvalid"),
	}
}

// passwordFields are never echoed back to the client.
var passwordFields = []string{"currentPassword", "password", "confirmPassword"}

// PasswordFields returns the field names to hide from replies.
func PasswordFields() []string {
	return append([]string(nil), passwordFields...)
}
