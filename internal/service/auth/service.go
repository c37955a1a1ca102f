// Package auth implements the sign-in, registration and password recovery
// forms. Credentials are checked by the commerce backend.
package auth

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

// DefaultResetPasswordPath is the storefront page reset links point to.
const DefaultResetPasswordPath = "/change-password"

type Backend interface {
	Login(ctx context.Context, email, password string) (*commerce.LoginResult, error)
	RegisterCustomer(ctx context.Context, input commerce.RegisterCustomerInput) (*commerce.Customer, error)
	RequestResetPassword(ctx context.Context, input commerce.RequestResetPasswordInput) error
	ResetPassword(ctx context.Context, input commerce.ResetPasswordInput) error
}

type SettingsProvider interface {
	PasswordComplexity(ctx context.Context) (*validator.PasswordComplexitySettings, error)
}

type Service struct {
	backend           Backend
	settings          SettingsProvider
	resetPasswordPath string
	metrics           *metrics.Metrics
	log               *logger.Logger
}

func NewService(backend Backend, settings SettingsProvider, resetPasswordPath string, m *metrics.Metrics, log *logger.Logger) *Service {
	if resetPasswordPath == "" {
		resetPasswordPath = DefaultResetPasswordPath
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		backend:           backend,
		settings:          settings,
		resetPasswordPath: resetPasswordPath,
		metrics:           m,
		log:               log,
	}
}

func (s *Service) outcome(name string, hide ...string) service.Outcome {
	return service.Outcome{Form: name, Hide: hide, Metrics: s.metrics, Log: s.log}
}

func (s *Service) passwordSettings(ctx context.Context) *validator.PasswordComplexitySettings {
	settings, err := s.settings.PasswordComplexity(ctx)
	if err != nil {
		s.log.Warn(err, "using default password policy")
		return nil
	}
	return settings
}

// Login signs the customer in. The access token is returned in the state's
// data for the caller to keep.
func (s *Service) Login(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.Login, "password")
	t := tr.Namespace(form.NamespaceLogin)

	sub := validator.ParseWithTranslatedErrors(values, form.LoginSchema(), form.LoginErrorTranslations(t))
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	res, err := s.backend.Login(ctx, sub.String("email"), sub.String("password"))
	if err != nil {
		var gqlErr *commerce.Error
		if errors.As(err, &gqlErr) {
			return out.Rejected(sub, t("invalidCredentials")), nil
		}
		return out.Failed(sub, tr, err)
	}

	state := out.Succeeded(sub, "", true)
	state.Data = res
	return state, nil
}

func (s *Service) ForgotPassword(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.ForgotPassword)
	t := tr.Namespace(form.NamespaceForgotPassword)

	sub := validator.ParseWithTranslatedErrors(values, form.ForgotPasswordSchema(), form.ForgotPasswordErrorTranslations(t))
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	email := sub.String("email")
	err := s.backend.RequestResetPassword(ctx, commerce.RequestResetPasswordInput{
		Email: email,
		Path:  s.resetPasswordPath,
	})
	if err != nil {
		return out.Failed(sub, tr, err)
	}
	return out.Succeeded(sub, t("success", email), true), nil
}

func (s *Service) ResetPasswordPage(ctx context.Context, tr *i18n.Translator) model.FormPage {
	settings := s.passwordSettings(ctx)
	t := tr.Namespace(form.NamespaceResetPassword)
	schema := form.ResetPasswordSchema(settings, form.ResetPasswordErrorTranslations(t, settings))
	return model.FormPage{
		Locale:                     tr.Locale(),
		Constraints:                schema.Constraints(),
		PasswordComplexitySettings: settings,
	}
}

// ResetPassword sets a new password for the customer of a reset link.
func (s *Service) ResetPassword(ctx context.Context, tr *i18n.Translator, token model.ResetPasswordToken, values url.Values) (model.FormState, error) {
	out := s.outcome(form.ResetPassword, form.PasswordFields()...)
	settings := s.passwordSettings(ctx)
	t := tr.Namespace(form.NamespaceResetPassword)

	translations := form.ResetPasswordErrorTranslations(t, settings)
	sub := validator.ParseWithTranslatedErrors(values, form.ResetPasswordSchema(settings, translations), translations)
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	err := s.backend.ResetPassword(ctx, commerce.ResetPasswordInput{
		CustomerEntityID: token.CustomerID,
		Token:            token.Token,
		NewPassword:      sub.String("password"),
	})
	if err != nil {
		return out.Failed(sub, tr, err)
	}
	return out.Succeeded(sub, t("success"), true), nil
}

func (s *Service) RegisterPage(ctx context.Context, tr *i18n.Translator) (model.FormPage, error) {
	settings := s.passwordSettings(ctx)
	t := tr.Namespace(form.NamespaceRegister)

	fields := form.RegisterFields()
	schema, err := form.RegisterSchema(fields, settings, form.RegisterErrorTranslations(t, settings))
	if err != nil {
		return model.FormPage{}, err
	}
	return model.FormPage{
		Locale:                     tr.Locale(),
		Constraints:                schema.Constraints(),
		PasswordComplexitySettings: settings,
		Fields:                     fields,
	}, nil
}

// Register creates a customer account from the registration form.
func (s *Service) Register(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.Register, form.PasswordFields()...)
	settings := s.passwordSettings(ctx)
	t := tr.Namespace(form.NamespaceRegister)

	translations := form.RegisterErrorTranslations(t, settings)
	schema, err := form.RegisterSchema(form.RegisterFields(), settings, translations)
	if err != nil {
		return model.FormState{}, err
	}

	sub := validator.ParseWithTranslatedErrors(values, schema, translations)
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	customer, err := s.backend.RegisterCustomer(ctx, commerce.RegisterCustomerInput{
		FirstName:        sub.String("firstName"),
		LastName:         sub.String("lastName"),
		Email:            sub.String("email"),
		Password:         sub.String("password"),
		Company:          sub.String("company"),
		Phone:            sub.String("phone"),
		AcceptsMarketing: sub.String("acceptsMarketing") == "true",
	})
	if err != nil {
		return out.Failed(sub, tr, err)
	}

	state := out.Succeeded(sub, t("success"), true)
	if customer != nil {
		state.Data = customer
	}
	return state, nil
}
