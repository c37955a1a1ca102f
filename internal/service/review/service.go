// Package review implements the product review form.
package review

import (
	"context"
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
	AddProductReview(ctx context.Context, productID int, review commerce.ReviewInput) error
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

func (s *Service) Page(tr *i18n.Translator) model.FormPage {
	return model.FormPage{
		Locale:      tr.Locale(),
		Constraints: form.ReviewSchema().Constraints(),
	}
}

// SubmitReview sends a review for moderation.
func (s *Service) SubmitReview(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := service.Outcome{Form: form.Review, Metrics: s.metrics, Log: s.log}
	t := tr.Namespace(form.NamespaceReviews)

	sub := validator.ParseWithTranslatedErrors(values, form.ReviewSchema(), form.ReviewErrorTranslations(t))
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	err := s.backend.AddProductReview(ctx, int(sub.Float("productEntityId")), commerce.ReviewInput{
		Title:  sub.String("title"),
		Text:   sub.String("text"),
		Author: sub.String("author"),
		Email:  sub.String("email"),
		Rating: int(sub.Float("rating")),
	})
	if err != nil {
		return out.Failed(sub, tr, err)
	}
	return out.Succeeded(sub, t("success"), true), nil
}
