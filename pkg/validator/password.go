package validator

import "fmt"

// PasswordComplexitySettings is the password policy configured on the
// commerce backend. Every field may be null.
type PasswordComplexitySettings struct {
	MinimumNumbers           *int  `json:"minimumNumbers"`
	MinimumPasswordLength    *int  `json:"minimumPasswordLength"`
	MinimumSpecialCharacters *int  `json:"minimumSpecialCharacters"`
	RequireLowerCase         *bool `json:"requireLowerCase"`
	RequireNumbers           *bool `json:"requireNumbers"`
	RequireSpecialCharacters *bool `json:"requireSpecialCharacters"`
	RequireUpperCase         *bool `json:"requireUpperCase"`
}

// PasswordPolicy is a fully resolved PasswordComplexitySettings.
type PasswordPolicy struct {
	MinLength                int
	MinNumbers               int
	MinSpecialCharacters     int
	RequireLowerCase         bool
	RequireUpperCase         bool
	RequireNumbers           bool
	RequireSpecialCharacters bool
}

// DefaultPasswordPolicy applies when the backend returns no settings.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:                8,
	RequireNumbers:           true,
	RequireSpecialCharacters: true,
}

// Policy resolves unset fields to DefaultPasswordPolicy. A nil receiver
// yields the defaults.
func (s *PasswordComplexitySettings) Policy() PasswordPolicy {
	p := DefaultPasswordPolicy
	if s == nil {
		return p
	}
	if s.MinimumPasswordLength != nil {
		p.MinLength = *s.MinimumPasswordLength
	}
	if s.MinimumNumbers != nil {
		p.MinNumbers = *s.MinimumNumbers
	}
	if s.MinimumSpecialCharacters != nil {
		p.MinSpecialCharacters = *s.MinimumSpecialCharacters
	}
	if s.RequireLowerCase != nil {
		p.RequireLowerCase = *s.RequireLowerCase
	}
	if s.RequireUpperCase != nil {
		p.RequireUpperCase = *s.RequireUpperCase
	}
	if s.RequireNumbers != nil {
		p.RequireNumbers = *s.RequireNumbers
	}
	if s.RequireSpecialCharacters != nil {
		p.RequireSpecialCharacters = *s.RequireSpecialCharacters
	}
	return p
}

// PasswordSchema builds the password field validator for settings. Checks
// run in a fixed order: trim, minimum length, lowercase, uppercase, numbers,
// special characters. Character class messages are looked up under the
// "password" key of translations.
func PasswordSchema(settings *PasswordComplexitySettings, translations ErrorTranslationMap) *StringSchema {
	p := settings.Policy()

	s := String().Trim().Min(p.MinLength)

	if p.RequireLowerCase {
		s.Check(LowercaseRequired,
			translations.MessageOr("password", LowercaseRequired, "Contain at least one lowercase letter"),
			func(v string) bool { return countRunes(v, isLower) >= 1 })
	}

	if p.RequireUpperCase {
		s.Check(UppercaseRequired,
			translations.MessageOr("password", UppercaseRequired, "Contain at least one uppercase letter"),
			func(v string) bool { return countRunes(v, isUpper) >= 1 })
	}

	if p.RequireNumbers {
		n := max(p.MinNumbers, 1)
		s.Check(NumberRequired,
			translations.MessageOr("password", NumberRequired, plural(n, "Contain at least one number", "Contain at least %d numbers")),
			func(v string) bool { return countRunes(v, isDigit) >= n })
	}

	if p.RequireSpecialCharacters {
		n := max(p.MinSpecialCharacters, 1)
		s.Check(SpecialCharacterRequired,
			translations.MessageOr("password", SpecialCharacterRequired, plural(n, "Contain at least one special character", "Contain at least %d special characters")),
			func(v string) bool { return countRunes(v, isSpecial) >= n })
	}

	return s
}

// PasswordsMatch reports a mismatch between the password and confirmation
// fields on the confirmation field.
func PasswordsMatch(passwordField, confirmField string, translations ErrorTranslationMap) RefineFunc {
	message := translations.MessageOr("password", PasswordsMustMatch, "The passwords do not match")
	return func(value map[string]any) []Issue {
		if value[passwordField] != value[confirmField] {
			return []Issue{{Path: confirmField, Code: Custom, Message: message}}
		}
		return nil
	}
}

func plural(n int, one, other string) string {
	if n == 1 {
		return one
	}
	return fmt.Sprintf(other, n)
}

func countRunes(v string, fn func(rune) bool) int {
	n := 0
	for _, r := range v {
		if fn(r) {
			n++
		}
	}
	return n
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// isSpecial matches anything outside ASCII letters and digits, including
// whitespace and non-ASCII letters.
func isSpecial(r rune) bool { return !isLower(r) && !isUpper(r) && !isDigit(r) }
