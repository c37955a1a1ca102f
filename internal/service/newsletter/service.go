// Package newsletter implements the inline newsletter sign-up form.
package newsletter

import (
	"context"
	"errors"
	"net/url"

	"github.com/jwalitptl/storefront-api/internal/commerce"
	"github.com/jwalitptl/storefront-api/internal/form"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/model"
	"github.com/jwalitptl/storefront-api/internal/service"
	"github.com/jwalitptl/storefront-api/pkg/logger"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

type Backend interface {
	Subscribe(ctx context.Context, email string) error
}

type Service struct {
	backend Backend
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewService(backend Backend, m *metrics.Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{backend: backend, metrics: m, log: log}
}

// Subscribe adds the submitted email to the newsletter. An email that is
// already subscribed is not an error.
func (s *Service) Subscribe(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := service.Outcome{Form: form.Newsletter, Metrics: s.metrics, Log: s.log}
	t := tr.Namespace(form.NamespaceNewsletter)

	schema := form.InlineEmailSchema(t("FieldErrors.emailRequired"), t("FieldErrors.emailInvalid"))
	sub := validator.ParseWithTranslatedErrors(values, schema, nil)
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	err := s.backend.Subscribe(ctx, sub.String("email"))
	var userErrs commerce.UserErrors
	switch {
	case err == nil:
		return out.Succeeded(sub, t("success"), true), nil
	case errors.As(err, &userErrs) && userErrs.Has(commerce.AlreadySubscribedError):
		return out.Succeeded(sub, t("alreadySubscribed"), true), nil
	default:
		return out.Failed(sub, tr, err)
	}
}
