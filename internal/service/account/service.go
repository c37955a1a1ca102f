// Package account implements the account settings and address book forms.
package account

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/jwalitptl/storefront-api/internal/commerce"
	"github.com/jwalitptl/storefront-api/internal/form"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/model"
	"github.com/jwalitptl/storefront-api/internal/service"
	"github.com/jwalitptl/storefront-api/pkg/logger"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

// customFieldPrefix marks address fields defined in the store's address
// form, e.g. "custom_12".
const customFieldPrefix = "custom_"

// Backend is the part of the commerce API the account pages use. Calls act
// on the customer whose token is in the context.
type Backend interface {
	ChangePassword(ctx context.Context, input commerce.ChangePasswordInput) error
	UpdateCustomer(ctx context.Context, input commerce.UpdateCustomerInput) (*commerce.Customer, error)
	AddAddress(ctx context.Context, input commerce.AddressInput) (int, error)
	UpdateAddress(ctx context.Context, addressID int, input commerce.AddressInput) error
	DeleteAddress(ctx context.Context, addressID int) error
}

type SettingsProvider interface {
	PasswordComplexity(ctx context.Context) (*validator.PasswordComplexitySettings, error)
}

type Service struct {
	backend  Backend
	settings SettingsProvider
	metrics  *metrics.Metrics
	log      *logger.Logger
}

func NewService(backend Backend, settings SettingsProvider, m *metrics.Metrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{backend: backend, settings: settings, metrics: m, log: log}
}

func (s *Service) outcome(name string, hide ...string) service.Outcome {
	return service.Outcome{Form: name, Hide: hide, Metrics: s.metrics, Log: s.log}
}

// passwordSettings falls back to the default policy when the settings
// cannot be loaded.
func (s *Service) passwordSettings(ctx context.Context) *validator.PasswordComplexitySettings {
	settings, err := s.settings.PasswordComplexity(ctx)
	if err != nil {
		s.log.Warn(err, "using default password policy")
		return nil
	}
	return settings
}

// ChangePasswordPage returns what the change password form needs to render.
func (s *Service) ChangePasswordPage(ctx context.Context, tr *i18n.Translator) model.FormPage {
	settings := s.passwordSettings(ctx)
	t := tr.Namespace(form.NamespaceAccountSettings)
	schema := form.ChangePasswordSchema(settings, form.ChangePasswordErrorTranslations(t, settings))
	return model.FormPage{
		Locale:                     tr.Locale(),
		Constraints:                schema.Constraints(),
		PasswordComplexitySettings: settings,
	}
}

func (s *Service) ChangePassword(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.ChangePassword, form.PasswordFields()...)
	settings := s.passwordSettings(ctx)
	t := tr.Namespace(form.NamespaceAccountSettings)

	translations := form.ChangePasswordErrorTranslations(t, settings)
	sub := validator.ParseWithTranslatedErrors(values, form.ChangePasswordSchema(settings, translations), translations)
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	err := s.backend.ChangePassword(ctx, commerce.ChangePasswordInput{
		CurrentPassword: sub.String("currentPassword"),
		NewPassword:     sub.String("password"),
	})
	if err != nil {
		return out.Failed(sub, tr, err)
	}
	return out.Succeeded(sub, t("passwordUpdated"), true), nil
}

func (s *Service) UpdateAccountPage(tr *i18n.Translator) model.FormPage {
	return model.FormPage{
		Locale:      tr.Locale(),
		Constraints: form.UpdateAccountSchema().Constraints(),
	}
}

func (s *Service) UpdateAccount(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.UpdateAccount)
	t := tr.Namespace(form.NamespaceAccountSettings)

	translations := form.UpdateAccountErrorTranslations(t)
	sub := validator.ParseWithTranslatedErrors(values, form.UpdateAccountSchema(), translations)
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	customer, err := s.backend.UpdateCustomer(ctx, commerce.UpdateCustomerInput{
		FirstName: sub.String("firstName"),
		LastName:  sub.String("lastName"),
		Email:     sub.String("email"),
		Company:   sub.String("company"),
	})
	if err != nil {
		return out.Failed(sub, tr, err)
	}

	state := out.Succeeded(sub, t("accountUpdated"), false)
	if customer != nil {
		state.Data = customer
	}
	return state, nil
}

func (s *Service) AddressPage(tr *i18n.Translator) model.FormPage {
	return model.FormPage{
		Locale:      tr.Locale(),
		Constraints: form.AddressSchema().Constraints(),
	}
}

func (s *Service) AddAddress(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.Address)
	t := tr.Namespace(form.NamespaceAddresses)

	schema := form.AddressSchema()
	sub := validator.ParseWithTranslatedErrors(values, schema, form.AddressErrorTranslations(t))
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	id, err := s.backend.AddAddress(ctx, addressInput(sub, schema))
	if err != nil {
		return out.Failed(sub, tr, err)
	}

	state := out.Succeeded(sub, t("created"), false)
	state.Data = map[string]int{"addressId": id}
	return state, nil
}

func (s *Service) UpdateAddress(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.Address)
	t := tr.Namespace(form.NamespaceAddresses)

	schema := form.AddressSchema()
	sub := validator.ParseWithTranslatedErrors(values, schema, form.AddressErrorTranslations(t))
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	id, ok := addressID(sub)
	if !ok {
		return invalidAddressID(out, sub), nil
	}

	if err := s.backend.UpdateAddress(ctx, id, addressInput(sub, schema)); err != nil {
		return out.Failed(sub, tr, err)
	}
	return out.Succeeded(sub, t("updated"), false), nil
}

func (s *Service) DeleteAddress(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error) {
	out := s.outcome(form.DeleteAddress)
	t := tr.Namespace(form.NamespaceAddresses)

	sub := validator.ParseWithTranslatedErrors(values, form.DeleteAddressSchema(), form.AddressErrorTranslations(t))
	if !sub.OK() {
		return out.Invalid(sub), nil
	}

	id, ok := addressID(sub)
	if !ok {
		return invalidAddressID(out, sub), nil
	}

	if err := s.backend.DeleteAddress(ctx, id); err != nil {
		return out.Failed(sub, tr, err)
	}
	return out.Succeeded(sub, t("deleted"), true), nil
}

func addressID(sub *validator.Submission) (int, bool) {
	id, err := strconv.Atoi(sub.String("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidAddressID(out service.Outcome, sub *validator.Submission) model.FormState {
	sub.Status = validator.StatusError
	sub.Error = map[string][]string{"id": {validator.DefaultMessage}}
	return out.Invalid(sub)
}

func addressInput(sub *validator.Submission, schema *validator.ObjectSchema) commerce.AddressInput {
	input := commerce.AddressInput{
		FirstName:       sub.String("firstName"),
		LastName:        sub.String("lastName"),
		Company:         sub.String("company"),
		Address1:        sub.String("address1"),
		Address2:        sub.String("address2"),
		City:            sub.String("city"),
		StateOrProvince: sub.String("stateOrProvince"),
		PostalCode:      sub.String("postalCode"),
		Phone:           sub.String("phone"),
		CountryCode:     sub.String("countryCode"),
	}

	var texts []commerce.TextFormField
	for name := range sub.Value {
		if _, known := schema.Lookup(name); known || !strings.HasPrefix(name, customFieldPrefix) {
			continue
		}
		fieldID, err := strconv.Atoi(strings.TrimPrefix(name, customFieldPrefix))
		if err != nil {
			continue
		}
		texts = append(texts, commerce.TextFormField{FieldEntityID: fieldID, Text: sub.String(name)})
	}
	if len(texts) > 0 {
		sort.Slice(texts, func(i, j int) bool { return texts[i].FieldEntityID < texts[j].FieldEntityID })
		input.FormFields = &commerce.AddressFormFields{Texts: texts}
	}
	return input
}
