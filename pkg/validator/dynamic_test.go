package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registrationFields() []FieldGroup {
	return []FieldGroup{
		{
			{Type: FieldText, Name: "firstName", Required: true},
			{Type: FieldText, Name: "lastName", Required: true},
		},
		{{Type: FieldEmail, Name: "email", Required: true}},
		{
			{Type: FieldPassword, Name: "password", Required: true},
			{Type: FieldConfirmPassword, Name: "confirmPassword", Required: true},
		},
		{{Type: FieldNumber, Name: "age", Min: ptr(18.0)}},
		{{Type: FieldCheckbox, Name: "terms", Required: true}},
		{{Type: FieldCheckbox, Name: "newsletter"}},
		{{Type: FieldCheckboxGroup, Name: "interests", Required: true}},
		{{Type: FieldText, Name: "postalCode", Pattern: `[0-9]{5}`}},
		{{Type: FieldSelect, Name: "country"}},
	}
}

func TestDynamicSchemaValid(t *testing.T) {
	schema, err := DynamicSchema(registrationFields(), nil, nil)
	require.NoError(t, err)

	res := schema.Parse(formValues(
		"firstName", "Ada",
		"lastName", "Lovelace",
		"email", "ada@example.com",
		"password", "engine#1843",
		"confirmPassword", "engine#1843",
		"terms", "true",
		"interests", "math",
		"interests", "poetry",
	))
	require.True(t, res.OK(), "%v", res.Issues)
	assert.Equal(t, []string{"math", "poetry"}, res.Value["interests"])
	assert.NotContains(t, res.Value, "age")
}

func TestDynamicSchemaErrors(t *testing.T) {
	schema, err := DynamicSchema(registrationFields(), nil, nil)
	require.NoError(t, err)

	res := schema.Parse(formValues(
		"firstName", "Ada",
		"lastName", "Lovelace",
		"email", "ada@",
		"password", "engine#1843",
		"confirmPassword", "engine#1844",
		"age", "12",
		"terms", "true",
		"newsletter", "false",
		"interests", "math",
		"postalCode", "1234",
	))

	byPath := map[string][]IssueCode{}
	for _, is := range res.Issues {
		byPath[is.Path] = append(byPath[is.Path], is.Code)
	}
	assert.Equal(t, []IssueCode{InvalidString}, byPath["email"])
	assert.Equal(t, []IssueCode{TooSmall}, byPath["age"])
	assert.Equal(t, []IssueCode{InvalidString}, byPath["postalCode"])
	assert.Equal(t, []IssueCode{Custom}, byPath["confirmPassword"])
}

func TestDynamicSchemaPasswordsMustMatchMessage(t *testing.T) {
	tr := ErrorTranslationMap{"password": {PasswordsMustMatch: "Passwords differ"}}
	schema, err := DynamicSchema([]FieldGroup{{
		{Type: FieldPassword, Name: "pw", Required: true},
		{Type: FieldConfirmPassword, Name: "pw2", Required: true},
	}}, nil, tr)
	require.NoError(t, err)

	sub := ParseWithTranslatedErrors(formValues("pw", "secret#123", "pw2", "secret#124"), schema, tr)
	assert.Equal(t, []string{"Passwords differ"}, sub.Error["pw2"])
}

func TestDynamicSchemaRequiredCheckbox(t *testing.T) {
	schema, err := DynamicSchema([]FieldGroup{{{Type: FieldCheckbox, Name: "terms", Required: true}}}, nil, nil)
	require.NoError(t, err)

	res := schema.Parse(formValues())
	assert.Equal(t, []IssueCode{InvalidType}, codes(res.Issues))
}

func TestDynamicSchemaBadPattern(t *testing.T) {
	_, err := DynamicSchema([]FieldGroup{{{Type: FieldText, Name: "code", Pattern: "("}}}, nil, nil)
	assert.Error(t, err)
}
