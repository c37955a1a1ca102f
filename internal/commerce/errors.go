package commerce

import (
	"errors"
	"strings"

	apperrors "github.com/jwalitptl/storefront-api/pkg/errors"
)

type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error is a request the backend answered with GraphQL errors, e.g.
// invalid credentials on login.
type Error struct {
	Operation string
	Errors    []GraphQLError
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return e.Operation + ": " + strings.Join(msgs, "; ")
}

// Messages returns the messages of every GraphQL error.
func (e *Error) Messages() []string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ge := range e.Errors {
		msgs = append(msgs, ge.Message)
	}
	return msgs
}

// UserError is an error a mutation reports in its payload, such as a
// validation failure or an already subscribed email.
type UserError struct {
	Type    string `json:"__typename"`
	Message string `json:"message"`
}

type UserErrors []UserError

func (e UserErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

func (e UserErrors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, ue := range e {
		msgs = append(msgs, ue.Message)
	}
	return msgs
}

// Has reports whether an error of the given GraphQL type was returned.
func (e UserErrors) Has(typename string) bool {
	for _, ue := range e {
		if ue.Type == typename {
			return true
		}
	}
	return false
}

// mutationResult is embedded by every mutation payload.
type mutationResult struct {
	Errors UserErrors `json:"errors"`
}

func (r mutationResult) err() error {
	if len(r.Errors) > 0 {
		return r.Errors
	}
	return nil
}

// IsUnavailable reports whether err means the backend could not be reached.
func IsUnavailable(err error) bool {
	appErr, ok := apperrors.As(err)
	return ok && appErr.Code == apperrors.ErrUnavailable
}

// RejectionMessages returns the customer facing messages of a backend
// rejection: GraphQL errors or mutation errors.
func RejectionMessages(err error) ([]string, bool) {
	var userErrs UserErrors
	if errors.As(err, &userErrs) {
		return userErrs.Messages(), true
	}
	var gqlErr *Error
	if errors.As(err, &gqlErr) {
		return gqlErr.Messages(), true
	}
	return nil, false
}
