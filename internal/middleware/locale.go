package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/i18n"
)

const (
	ContextLocale     = "locale"
	ContextTranslator = "translator"

	// QueryLocale overrides the Accept-Language header.
	QueryLocale = "locale"
)

// Locale negotiates the request locale and stores it with its translator
// in the context.
func Locale(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := catalog.Negotiate(c.Query(QueryLocale), c.GetHeader("Accept-Language"))

		c.Set(ContextLocale, locale)
		c.Set(ContextTranslator, catalog.Translator(locale))
		c.Header("Content-Language", locale)
		c.Next()
	}
}

// Translator returns the translator stored by Locale, or the catalog's
// default one.
func Translator(c *gin.Context, catalog *i18n.Catalog) *i18n.Translator {
	if v, ok := c.Get(ContextTranslator); ok {
		if tr, ok := v.(*i18n.Translator); ok {
			return tr
		}
	}
	return catalog.Translator(catalog.DefaultLocale())
}
