package validator

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formValues(kv ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Add(kv[i], kv[i+1])
	}
	return v
}

func TestObjectParse(t *testing.T) {
	schema := Object().
		Field("firstName", String().Min(2).Trim()).
		Field("email", String().Email().Trim()).
		Field("company", String().Trim().Optional()).
		Field("rating", Number().Min(1).Max(5))

	res := schema.Parse(formValues(
		"firstName", " Jo ",
		"email", "jo@example.com",
		"rating", "4",
	))
	require.True(t, res.OK(), "%v", res.Issues)
	assert.Equal(t, "Jo", res.Value["firstName"])
	assert.Equal(t, float64(4), res.Value["rating"])
	assert.NotContains(t, res.Value, "company")

	res = schema.Parse(formValues("firstName", "J", "email", "nope", "rating", "9"))
	assert.Equal(t, []IssueCode{TooSmall, InvalidString, TooBig}, codes(res.Issues))
	assert.Equal(t, []string{"firstName", "email", "rating"}, []string{res.Issues[0].Path, res.Issues[1].Path, res.Issues[2].Path})
}

func TestObjectEmptyStringIsAbsent(t *testing.T) {
	res := Object().Field("title", String().Min(1)).Parse(formValues("title", ""))
	require.Len(t, res.Issues, 1)
	assert.Equal(t, InvalidType, res.Issues[0].Code)
}

func TestObjectNumberCoercion(t *testing.T) {
	schema := Object().Field("productEntityId", Number().Min(1).Max(5))

	for _, raw := range []string{"abc", "NaN", "nan", "Inf", "-Inf", "Infinity", "1e400"} {
		res := schema.Parse(formValues("productEntityId", raw))
		require.Len(t, res.Issues, 1, raw)
		assert.Equal(t, InvalidType, res.Issues[0].Code, raw)
		assert.True(t, res.Issues[0].Fatal, raw)
		assert.NotContains(t, res.Value, "productEntityId", raw)
	}

	res := schema.Parse(formValues("productEntityId", " 3 "))
	require.True(t, res.OK(), "%v", res.Issues)
	assert.Equal(t, 3.0, res.Value["productEntityId"])
}

func TestObjectRefinementSkippedOnFatal(t *testing.T) {
	calls := 0
	schema := Object().
		Field("password", String().Min(8)).
		Field("confirmPassword", String()).
		Refine(func(map[string]any) []Issue {
			calls++
			return nil
		})

	schema.Parse(formValues("password", "short"))
	assert.Equal(t, 0, calls, "confirmPassword missing is fatal")

	schema.Parse(formValues("password", "short", "confirmPassword", "x"))
	assert.Equal(t, 1, calls, "too_small is not fatal")
}

func TestObjectFieldReplacesInPlace(t *testing.T) {
	schema := Object().Field("a", String()).Field("b", String()).Field("a", Number())
	assert.Equal(t, []string{"a", "b"}, schema.Fields())
	s, ok := schema.Lookup("a")
	require.True(t, ok)
	assert.IsType(t, &NumberSchema{}, s)
}

func TestObjectPassthrough(t *testing.T) {
	values := formValues("id", "1", "custom_field", "x", "tags", "a", "tags", "b")

	res := Object().Field("id", String()).Parse(values)
	assert.NotContains(t, res.Value, "custom_field")

	res = Object().Field("id", String()).Passthrough().Parse(values)
	assert.Equal(t, "x", res.Value["custom_field"])
	assert.Equal(t, []string{"a", "b"}, res.Value["tags"])
}

func TestCollections(t *testing.T) {
	v, issues := StringArray().Nonempty().Parse(nil)
	assert.Equal(t, []string{}, v)
	assert.Equal(t, []IssueCode{TooSmall}, codes(issues))

	v, issues = StringArray().Parse([]string{"a", "", "b"})
	assert.Equal(t, []string{"a", "b"}, v)
	assert.Empty(t, issues)

	_, issues = Literal("true").Parse([]string{"false"})
	assert.Equal(t, []IssueCode{InvalidLiteral}, codes(issues))

	_, issues = Enum("true", "false").Optional().Parse([]string{"maybe"})
	assert.Equal(t, []IssueCode{InvalidEnumValue}, codes(issues))

	v, issues = Enum("true", "false").Optional().Parse(nil)
	assert.Nil(t, v)
	assert.Empty(t, issues)
}

func TestConstraints(t *testing.T) {
	s, err := String().Min(2).Max(10).Min(3).Pattern(`[0-9]{5}`)
	require.NoError(t, err)

	schema := Object().
		Field("zip", s).
		Field("qty", Number().Min(1).Max(5).Optional()).
		Field("tags", StringArray().Nonempty())

	cons := schema.Constraints()
	assert.True(t, cons["zip"].Required)
	assert.Equal(t, 3, *cons["zip"].MinLength)
	assert.Equal(t, 10, *cons["zip"].MaxLength)
	assert.Equal(t, `[0-9]{5}`, cons["zip"].Pattern)

	assert.False(t, cons["qty"].Required)
	assert.Equal(t, 1.0, *cons["qty"].Min)
	assert.Equal(t, 5.0, *cons["qty"].Max)

	assert.True(t, cons["tags"].Multiple)
	assert.True(t, cons["tags"].Required)
}

func TestPatternMatchesAnywhere(t *testing.T) {
	s, err := String().Pattern(`[0-9]+`)
	require.NoError(t, err)

	_, issues := s.Parse([]string{"abc123"})
	assert.Empty(t, issues)
	_, issues = s.Parse([]string{"abc"})
	assert.Equal(t, []IssueCode{InvalidString}, codes(issues))

	anchored, err := String().Pattern(`^[0-9]{5}$`)
	require.NoError(t, err)
	_, issues = anchored.Parse([]string{"123456"})
	assert.Equal(t, []IssueCode{InvalidString}, codes(issues))
	assert.Equal(t, `^[0-9]{5}$`, anchored.Constraint().Pattern)
}

func TestLengthsCountCharacters(t *testing.T) {
	// "日本" and one emoji are 2 and 1 characters however they are encoded.
	s := String().Min(2).Max(2)

	_, issues := s.Parse([]string{"日本"})
	assert.Empty(t, issues)
	_, issues = s.Parse([]string{"😀"})
	assert.Equal(t, []IssueCode{TooSmall}, codes(issues))
	_, issues = s.Parse([]string{"😀😀"})
	assert.Empty(t, issues)
}

func TestStruct(t *testing.T) {
	type cfg struct {
		Endpoint string `mapstructure:"endpoint" validate:"required,url"`
		Port     int    `mapstructure:"port" validate:"min=1"`
	}

	assert.NoError(t, Struct(cfg{Endpoint: "https://store.example.com/graphql", Port: 8080}))

	err := Struct(cfg{})
	var issues Issues
	require.ErrorAs(t, err, &issues)
	assert.Equal(t, []IssueCode{InvalidType, TooSmall}, codes(issues))
	assert.Equal(t, "endpoint", issues[0].Path)
}
