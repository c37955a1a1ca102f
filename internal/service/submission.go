// Package service holds the outcome handling shared by the form actions.
package service

import (
	"github.com/jwalitptl/storefront-api/internal/commerce"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/model"
	apperrors "github.com/jwalitptl/storefront-api/pkg/errors"
	"github.com/jwalitptl/storefront-api/pkg/logger"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

// unexpectedErrorKey is shown when the backend fails without a message the
// customer can act on.
const unexpectedErrorKey = "Form.unexpectedError"

// Outcome turns a parsed submission into the state returned to the client
// and records it.
type Outcome struct {
	Form    string
	Hide    []string
	Metrics *metrics.Metrics
	Log     *logger.Logger
}

// Invalid is the state of a submission that failed validation.
func (o Outcome) Invalid(sub *validator.Submission) model.FormState {
	o.Metrics.ObserveSubmission(o.Form, metrics.OutcomeInvalid, sub.Error)
	return model.FormState{LastResult: sub.Reply(validator.HideFields(o.Hide...))}
}

// Rejected is the state of a submission the backend turned down with
// messages for the customer.
func (o Outcome) Rejected(sub *validator.Submission, messages ...string) model.FormState {
	o.Metrics.ObserveSubmission(o.Form, metrics.OutcomeRejected, nil)
	return model.FormState{
		LastResult: sub.Reply(validator.WithFormErrors(messages...), validator.HideFields(o.Hide...)),
	}
}

// Failed handles a backend error. Rejections become form errors; anything
// else is logged and returned as an *errors.AppError next to a generic
// form error.
func (o Outcome) Failed(sub *validator.Submission, tr *i18n.Translator, err error) (model.FormState, error) {
	if msgs, ok := commerce.RejectionMessages(err); ok {
		return o.Rejected(sub, msgs...), nil
	}

	o.Metrics.ObserveSubmission(o.Form, metrics.OutcomeFailed, nil)
	if o.Log != nil {
		o.Log.Error(err, "form submission failed", "form", o.Form)
	}

	state := model.FormState{
		LastResult: sub.Reply(validator.WithFormErrors(tr.T(unexpectedErrorKey)), validator.HideFields(o.Hide...)),
	}
	if _, ok := apperrors.As(err); ok {
		return state, err
	}
	return state, apperrors.NewInternal(err)
}

// Succeeded is the state of an accepted submission. With reset the client
// clears the form.
func (o Outcome) Succeeded(sub *validator.Submission, message string, reset bool) model.FormState {
	o.Metrics.ObserveSubmission(o.Form, metrics.OutcomeSuccess, nil)

	opts := []validator.ReplyOption{validator.HideFields(o.Hide...)}
	if reset {
		opts = append(opts, validator.ResetForm())
	}
	return model.FormState{
		LastResult:     sub.Reply(opts...),
		SuccessMessage: message,
	}
}
