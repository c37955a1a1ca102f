package validator

import "fmt"

// IssueCode identifies the kind of violation a check reports.
type IssueCode string

const (
	InvalidType      IssueCode = "invalid_type"
	InvalidString    IssueCode = "invalid_string"
	InvalidLiteral   IssueCode = "invalid_literal"
	InvalidEnumValue IssueCode = "invalid_enum_value"
	TooSmall         IssueCode = "too_small"
	TooBig           IssueCode = "too_big"
	Custom           IssueCode = "custom"

	LowercaseRequired        IssueCode = "lowercase_required"
	UppercaseRequired        IssueCode = "uppercase_required"
	NumberRequired           IssueCode = "number_required"
	SpecialCharacterRequired IssueCode = "special_character_required"
	PasswordsMustMatch       IssueCode = "passwords_must_match"
)

// DefaultMessage is used when neither the check nor the translation map
// provides a message.
const DefaultMessage = "Invalid input"

// Issue is a single validation failure.
type Issue struct {
	Path    string    `json:"path"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message,omitempty"`
	// Fatal issues mean the value could not be read at all (missing or of
	// the wrong type); object refinements are skipped when one is present.
	Fatal bool `json:"-"`
}

func (i Issue) Error() string {
	msg := i.Message
	if msg == "" {
		msg = DefaultMessage
	}
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Code, msg)
	}
	return fmt.Sprintf("%s: %s: %s", i.Path, i.Code, msg)
}

// Issues is returned by Struct and implements error.
type Issues []Issue

func (is Issues) Error() string {
	if len(is) == 0 {
		return "no issues"
	}
	if len(is) == 1 {
		return is[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", is[0].Error(), len(is)-1)
}

func hasFatal(issues []Issue) bool {
	for _, is := range issues {
		if is.Fatal {
			return true
		}
	}
	return false
}
