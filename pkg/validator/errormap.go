package validator

// ErrorTranslationMap holds user-facing messages per field and issue code.
type ErrorTranslationMap map[string]map[IssueCode]string

// Message returns the translation for field and code, or "".
func (m ErrorTranslationMap) Message(field string, code IssueCode) string {
	if m == nil {
		return ""
	}
	return m[field][code]
}

// MessageOr returns the translation for field and code, or fallback.
func (m ErrorTranslationMap) MessageOr(field string, code IssueCode, fallback string) string {
	if msg := m.Message(field, code); msg != "" {
		return msg
	}
	return fallback
}

// ErrorMap resolves the message shown for an issue: the check's own message
// first, then the translation for the issue's field and code, then
// DefaultMessage.
func ErrorMap(translations ErrorTranslationMap) func(Issue) string {
	return func(is Issue) string {
		if is.Message != "" {
			return is.Message
		}
		return translations.MessageOr(is.Path, is.Code, DefaultMessage)
	}
}
