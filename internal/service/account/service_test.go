package account

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/storefront-api/internal/commerce"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	apperrors "github.com/jwalitptl/storefront-api/pkg/errors"
	"github.com/jwalitptl/storefront-api/pkg/metrics"
	"github.com/jwalitptl/storefront-api/pkg/validator"
)

type fakeBackend struct {
	err error

	changePassword *commerce.ChangePasswordInput
	updateCustomer *commerce.UpdateCustomerInput
	address        *commerce.AddressInput
	addressID      int
	deleted        int
}

func (f *fakeBackend) ChangePassword(_ context.Context, input commerce.ChangePasswordInput) error {
	f.changePassword = &input
	return f.err
}

func (f *fakeBackend) UpdateCustomer(_ context.Context, input commerce.UpdateCustomerInput) (*commerce.Customer, error) {
	f.updateCustomer = &input
	if f.err != nil {
		return nil, f.err
	}
	return &commerce.Customer{EntityID: 1, FirstName: input.FirstName, LastName: input.LastName, Email: input.Email}, nil
}

func (f *fakeBackend) AddAddress(_ context.Context, input commerce.AddressInput) (int, error) {
	f.address = &input
	return 99, f.err
}

func (f *fakeBackend) UpdateAddress(_ context.Context, id int, input commerce.AddressInput) error {
	f.address = &input
	f.addressID = id
	return f.err
}

func (f *fakeBackend) DeleteAddress(_ context.Context, id int) error {
	f.deleted = id
	return f.err
}

type fakeSettings struct {
	settings *validator.PasswordComplexitySettings
	err      error
}

func (f fakeSettings) PasswordComplexity(context.Context) (*validator.PasswordComplexitySettings, error) {
	return f.settings, f.err
}

func translator(t *testing.T) *i18n.Translator {
	t.Helper()
	catalog, err := i18n.NewCatalog("en")
	require.NoError(t, err)
	return catalog.Translator("en")
}

func newTestService(backend *fakeBackend, settings fakeSettings) (*Service, *metrics.Metrics) {
	m := metrics.NewMetrics(prometheus.NewRegistry(), "test", "account")
	return NewService(backend, settings, m, nil), m
}

func validPassword() url.Values {
	return url.Values{
		"currentPassword": {"old-password"},
		"password":        {"n3w-passw0rd!"},
		"confirmPassword": {"n3w-passw0rd!"},
	}
}

func TestChangePasswordInvalid(t *testing.T) {
	backend := &fakeBackend{}
	svc, m := newTestService(backend, fakeSettings{})

	values := validPassword()
	values.Set("password", "short")
	values.Set("confirmPassword", "short")

	state, err := svc.ChangePassword(context.Background(), translator(t), values)
	require.NoError(t, err)

	require.True(t, state.Failed())
	assert.Equal(t, []string{
		"Password must be at least 0 characters long",
		"Password must contain at least 1 number",
		"Password must contain at least one special character",
	}, state.LastResult.Error["password"])
	assert.NotContains(t, state.LastResult.InitialValue, "password")
	assert.NotContains(t, state.LastResult.InitialValue, "currentPassword")
	assert.Nil(t, backend.changePassword)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FormSubmissions.WithLabelValues("change_password", metrics.OutcomeInvalid)))
}

func TestChangePasswordUsesStoreSettings(t *testing.T) {
	minLength := 14
	svc, _ := newTestService(&fakeBackend{}, fakeSettings{
		settings: &validator.PasswordComplexitySettings{MinimumPasswordLength: &minLength},
	})

	state, err := svc.ChangePassword(context.Background(), translator(t), validPassword())
	require.NoError(t, err)

	require.True(t, state.Failed())
	assert.Equal(t, []string{"Password must be at least 14 characters long"}, state.LastResult.Error["password"])
}

func TestChangePasswordFallsBackToDefaults(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newTestService(backend, fakeSettings{err: errors.New("backend down")})

	state, err := svc.ChangePassword(context.Background(), translator(t), validPassword())
	require.NoError(t, err)
	assert.False(t, state.Failed())
	require.NotNil(t, backend.changePassword)
}

func TestChangePasswordSuccess(t *testing.T) {
	backend := &fakeBackend{}
	svc, m := newTestService(backend, fakeSettings{})

	state, err := svc.ChangePassword(context.Background(), translator(t), validPassword())
	require.NoError(t, err)

	assert.Equal(t, validator.StatusSuccess, state.LastResult.Status)
	assert.Equal(t, "Your password has been updated.", state.SuccessMessage)
	assert.Nil(t, state.LastResult.InitialValue)
	assert.Equal(t, commerce.ChangePasswordInput{CurrentPassword: "old-password", NewPassword: "n3w-passw0rd!"}, *backend.changePassword)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FormSubmissions.WithLabelValues("change_password", metrics.OutcomeSuccess)))
}

func TestChangePasswordRejected(t *testing.T) {
	backend := &fakeBackend{err: commerce.UserErrors{{Type: "ValidationError", Message: "Current password is incorrect"}}}
	svc, _ := newTestService(backend, fakeSettings{})

	state, err := svc.ChangePassword(context.Background(), translator(t), validPassword())
	require.NoError(t, err)

	require.True(t, state.Failed())
	assert.Equal(t, []string{"Current password is incorrect"}, state.LastResult.Error[validator.FormErrorKey])
}

func TestChangePasswordBackendUnavailable(t *testing.T) {
	backend := &fakeBackend{err: apperrors.NewUnavailable("commerce backend", errors.New("timeout"))}
	svc, m := newTestService(backend, fakeSettings{})

	state, err := svc.ChangePassword(context.Background(), translator(t), validPassword())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, appErr.StatusCode())
	assert.Equal(t, []string{"Something went wrong. Please try again later."}, state.LastResult.Error[validator.FormErrorKey])
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FormSubmissions.WithLabelValues("change_password", metrics.OutcomeFailed)))
}

func TestChangePasswordUnexpectedError(t *testing.T) {
	svc, _ := newTestService(&fakeBackend{err: errors.New("boom")}, fakeSettings{})

	_, err := svc.ChangePassword(context.Background(), translator(t), validPassword())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
}

func TestChangePasswordPage(t *testing.T) {
	minLength := 10
	svc, _ := newTestService(&fakeBackend{}, fakeSettings{
		settings: &validator.PasswordComplexitySettings{MinimumPasswordLength: &minLength},
	})

	page := svc.ChangePasswordPage(context.Background(), translator(t))
	assert.Equal(t, "en", page.Locale)
	assert.Equal(t, 10, *page.Constraints["password"].MinLength)
	assert.True(t, page.Constraints["currentPassword"].Required)
	assert.Same(t, &minLength, page.PasswordComplexitySettings.MinimumPasswordLength)
}

func TestUpdateAccount(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newTestService(backend, fakeSettings{})

	state, err := svc.UpdateAccount(context.Background(), translator(t), url.Values{
		"firstName": {"Jane"},
		"lastName":  {"Doe"},
		"email":     {"jane@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Your account details have been updated.", state.SuccessMessage)
	assert.Equal(t, "Jane", state.LastResult.InitialValue["firstName"])
	assert.Equal(t, "jane@example.com", backend.updateCustomer.Email)
	assert.Empty(t, backend.updateCustomer.Company)
	assert.NotNil(t, state.Data)
}

func TestUpdateAccountInvalid(t *testing.T) {
	svc, _ := newTestService(&fakeBackend{}, fakeSettings{})

	state, err := svc.UpdateAccount(context.Background(), translator(t), url.Values{"firstName": {"J"}})
	require.NoError(t, err)

	require.True(t, state.Failed())
	assert.Equal(t, []string{"First name must be at least 2 characters long"}, state.LastResult.Error["firstName"])
	assert.Equal(t, []string{"Last name is required"}, state.LastResult.Error["lastName"])
	assert.Equal(t, []string{"Email is required"}, state.LastResult.Error["email"])
}

func addressValues() url.Values {
	return url.Values{
		"id":          {"12"},
		"firstName":   {"Jane"},
		"lastName":    {"Doe"},
		"address1":    {"1 Main St"},
		"city":        {"Austin"},
		"countryCode": {"US"},
		"custom_7":    {"blue door"},
		"custom_3":    {"gate 42"},
		"custom_x":    {"ignored"},
	}
}

func TestAddAddress(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newTestService(backend, fakeSettings{})

	state, err := svc.AddAddress(context.Background(), translator(t), addressValues())
	require.NoError(t, err)

	assert.Equal(t, "Address added.", state.SuccessMessage)
	assert.Equal(t, map[string]int{"addressId": 99}, state.Data)
	require.NotNil(t, backend.address.FormFields)
	assert.Equal(t, []commerce.TextFormField{
		{FieldEntityID: 3, Text: "gate 42"},
		{FieldEntityID: 7, Text: "blue door"},
	}, backend.address.FormFields.Texts)
}

func TestUpdateAddress(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newTestService(backend, fakeSettings{})

	state, err := svc.UpdateAddress(context.Background(), translator(t), addressValues())
	require.NoError(t, err)

	assert.Equal(t, "Address updated.", state.SuccessMessage)
	assert.Equal(t, 12, backend.addressID)
	assert.Equal(t, "Austin", backend.address.City)
}

func TestUpdateAddressInvalidID(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newTestService(backend, fakeSettings{})

	values := addressValues()
	values.Set("id", "new")

	state, err := svc.UpdateAddress(context.Background(), translator(t), values)
	require.NoError(t, err)

	require.True(t, state.Failed())
	assert.Equal(t, []string{validator.DefaultMessage}, state.LastResult.Error["id"])
	assert.Nil(t, backend.address)
}

func TestDeleteAddress(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newTestService(backend, fakeSettings{})

	state, err := svc.DeleteAddress(context.Background(), translator(t), url.Values{"id": {"12"}})
	require.NoError(t, err)

	assert.Equal(t, "Address deleted.", state.SuccessMessage)
	assert.Equal(t, 12, backend.deleted)
}
