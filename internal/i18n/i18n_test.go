package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog("en")
	require.NoError(t, err)
	return c
}

func TestNewCatalogRejectsUnknownDefault(t *testing.T) {
	_, err := NewCatalog("xx")
	assert.Error(t, err)
}

func TestLocales(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, []string{"en", "de", "fr"}, c.Locales())
	assert.Equal(t, "en", c.DefaultLocale())
}

func TestTranslate(t *testing.T) {
	c := newCatalog(t)
	tr := c.Translator("en").Namespace("Account.Settings")

	assert.Equal(t, "First name is required", tr("FieldErrors.firstNameRequired"))
	assert.Equal(t, "Password must be at least 12 characters long", tr("FieldErrors.passwordTooSmall", 12))
	assert.Equal(t, "Account.Settings.FieldErrors.nope", tr("FieldErrors.nope"))
}

func TestTranslateMissingParamsDoNotPanic(t *testing.T) {
	c := newCatalog(t)
	tr := c.Translator("en").Namespace("Account.Settings")

	assert.Equal(t, "Password must be at least  characters long", tr("FieldErrors.passwordTooSmall"))
}

func TestTranslatePlural(t *testing.T) {
	c := newCatalog(t)

	en := c.Translator("en").Namespace("Auth.ChangePassword")
	assert.Equal(t, "Password must contain at least 1 number", en("FieldErrors.passwordNumberRequired", 1))
	assert.Equal(t, "Password must contain at least 3 numbers", en("FieldErrors.passwordNumberRequired", 3))

	de := c.Translator("de").Namespace("Auth.ChangePassword")
	assert.Equal(t, "Das Passwort muss mindestens 1 Ziffer enthalten", de("FieldErrors.passwordNumberRequired", 1))
	assert.Equal(t, "Das Passwort muss mindestens 2 Ziffern enthalten", de("FieldErrors.passwordNumberRequired", 2))
}

func TestTranslatorFallsBackToDefaultLocale(t *testing.T) {
	c := newCatalog(t)

	tr := c.Translator("es")
	assert.Equal(t, "en", tr.Locale())
	assert.Equal(t, "Email is required", tr.T("Newsletter.FieldErrors.emailRequired"))
}

func TestNegotiate(t *testing.T) {
	c := newCatalog(t)

	tests := []struct {
		name     string
		explicit string
		header   string
		want     string
	}{
		{"nothing", "", "", "en"},
		{"explicit wins", "fr", "de-DE,de;q=0.9", "fr"},
		{"explicit unsupported", "es", "de-DE,de;q=0.9", "de"},
		{"regional variant", "", "fr-CA,fr;q=0.8,en;q=0.5", "fr"},
		{"quality order", "", "de;q=0.7,fr;q=0.9", "fr"},
		{"no match", "", "ja-JP", "en"},
		{"garbage", "", ";;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Negotiate(tt.explicit, tt.header))
		})
	}
}
