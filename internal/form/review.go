package form

import (
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

func ReviewSchema() *validator.ObjectSchema {
	return validator.Object().
		Field("productEntityId", validator.Number()).
		Field("title", validator.String().Min(1)).
		Field("author", validator.String().Min(1)).
		Field("email", validator.String().Email()).
		Field("text", validator.String().Min(1)).
		Field("rating", validator.Number().Min(1).Max(5))
}

func ReviewErrorTranslations(t i18n.TranslateFunc) validator.ErrorTranslationMap {
	return validator.ErrorTranslationMap{
		"title":  {validator.InvalidType: t("FieldErrors.titleRequired")},
		"author": {validator.InvalidType: t("FieldErrors.authorRequired")},
		"email":  emailTranslations(t),
		"text":   {validator.InvalidType: t("FieldErrors.textRequired")},
		"rating": {
			validator.InvalidType: t("FieldErrors.ratingRequired"),
			validator.TooSmall:    t("FieldErrors.ratingTooSmall"),
			validator.TooBig:      t("FieldErrors.ratingTooLarge"),
		},
	}
}
