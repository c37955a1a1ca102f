package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

type stringCheckKind int

const (
	checkTrim stringCheckKind = iota
	checkMin
	checkMax
	checkEmail
	checkPattern
	checkFunc
)

type stringCheck struct {
	kind    stringCheckKind
	code    IssueCode
	message string
	limit   int
	expr    string
	re      *regexp.Regexp
	fn      func(string) bool
}

// StringSchema validates a single form string. Checks run in the order they
// were added and every failing check is reported.
type StringSchema struct {
	checks          []stringCheck
	optional        bool
	requiredMessage string
}

// String returns a required string schema with no checks.
func String() *StringSchema {
	return &StringSchema{}
}

// Trim strips surrounding whitespace before the checks that follow it.
func (s *StringSchema) Trim() *StringSchema {
	s.checks = append(s.checks, stringCheck{kind: checkTrim})
	return s
}

// Min requires at least n characters.
func (s *StringSchema) Min(n int, message ...string) *StringSchema {
	s.checks = append(s.checks, stringCheck{kind: checkMin, code: TooSmall, limit: n, message: first(message)})
	return s
}

// Max allows at most n characters.
func (s *StringSchema) Max(n int, message ...string) *StringSchema {
	s.checks = append(s.checks, stringCheck{kind: checkMax, code: TooBig, limit: n, message: first(message)})
	return s
}

// Email requires a syntactically valid email address.
func (s *StringSchema) Email(message ...string) *StringSchema {
	s.checks = append(s.checks, stringCheck{kind: checkEmail, code: InvalidString, message: first(message)})
	return s
}

// Pattern requires expr to match somewhere in the value; anchors must be
// part of expr. expr is also exported as the native pattern constraint.
func (s *StringSchema) Pattern(expr string, message ...string) (*StringSchema, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return s, err
	}
	s.checks = append(s.checks, stringCheck{kind: checkPattern, code: InvalidString, expr: expr, re: re, message: first(message)})
	return s, nil
}

// Check adds a custom predicate reporting code with message when it fails.
func (s *StringSchema) Check(code IssueCode, message string, fn func(string) bool) *StringSchema {
	s.checks = append(s.checks, stringCheck{kind: checkFunc, code: code, message: message, fn: fn})
	return s
}

// Optional makes an absent value valid.
func (s *StringSchema) Optional() *StringSchema {
	s.optional = true
	return s
}

// RequiredMessage sets the message reported when the value is absent.
func (s *StringSchema) RequiredMessage(message string) *StringSchema {
	s.requiredMessage = message
	return s
}

func (s *StringSchema) Parse(values []string) (any, []Issue) {
	v, ok := firstValue(values)
	if !ok {
		if s.optional {
			return nil, nil
		}
		return nil, []Issue{{Code: InvalidType, Message: s.requiredMessage, Fatal: true}}
	}

	var issues []Issue
	for _, c := range s.checks {
		switch c.kind {
		case checkTrim:
			v = strings.TrimSpace(v)
		case checkMin:
			if utf8.RuneCountInString(v) < c.limit {
				issues = append(issues, Issue{Code: c.code, Message: c.message})
			}
		case checkMax:
			if utf8.RuneCountInString(v) > c.limit {
				issues = append(issues, Issue{Code: c.code, Message: c.message})
			}
		case checkEmail:
			if !IsEmail(v) {
				issues = append(issues, Issue{Code: c.code, Message: c.message})
			}
		case checkPattern:
			if !c.re.MatchString(v) {
				issues = append(issues, Issue{Code: c.code, Message: c.message})
			}
		case checkFunc:
			if !c.fn(v) {
				issues = append(issues, Issue{Code: c.code, Message: c.message})
			}
		}
	}
	return v, issues
}

func (s *StringSchema) Constraint() Constraint {
	cons := Constraint{Required: !s.optional}
	for _, c := range s.checks {
		switch c.kind {
		case checkMin:
			if cons.MinLength == nil || *cons.MinLength < c.limit {
				cons.MinLength = intPtr(c.limit)
			}
		case checkMax:
			if cons.MaxLength == nil || *cons.MaxLength > c.limit {
				cons.MaxLength = intPtr(c.limit)
			}
		case checkPattern:
			// Native patterns cannot be combined, only the first one is exported.
			if cons.Pattern == "" {
				cons.Pattern = c.expr
			}
		}
	}
	return cons
}

// firstValue returns the first submitted value. Empty strings count as absent.
func firstValue(values []string) (string, bool) {
	if len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}

func first(message []string) string {
	if len(message) == 0 {
		return ""
	}
	return message[0]
}

func intPtr(n int) *int { return &n }
