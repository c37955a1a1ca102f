package form

import (
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

// AddressSchema validates an address book entry. Extra fields, such as
// custom address form fields, are kept.
func AddressSchema() *validator.ObjectSchema {
	return validator.Object().
		Field("id", validator.String()).
		Field("firstName", validator.String()).
		Field("lastName", validator.String()).
		Field("company", validator.String().Optional()).
		Field("address1", validator.String()).
		Field("address2", validator.String().Optional()).
		Field("city", validator.String()).
		Field("stateOrProvince", validator.String().Optional()).
		Field("postalCode", validator.String().Optional()).
		Field("phone", validator.String().Optional()).
		Field("countryCode", validator.String()).
		Passthrough()
}

// DeleteAddressSchema only needs the address id.
func DeleteAddressSchema() *validator.ObjectSchema {
	return validator.Object().Field("id", validator.String())
}

func AddressErrorTranslations(t i18n.TranslateFunc) validator.ErrorTranslationMap {
	required := func(key string) map[validator.IssueCode]string {
		return map[validator.IssueCode]string{validator.InvalidType: t(key)}
	}
	return validator.ErrorTranslationMap{
		"firstName":       required("FieldErrors.firstNameRequired"),
		"lastName":        required("FieldErrors.lastNameRequired"),
		"address1":        required("FieldErrors.addressLine1Required"),
		"city":            required("FieldErrors.cityRequired"),
		"countryCode":     required("FieldErrors.countryRequired"),
		"stateOrProvince": required("FieldErrors.stateRequired"),
		"postalCode":      required("FieldErrors.postalCodeRequired"),
	}
}
