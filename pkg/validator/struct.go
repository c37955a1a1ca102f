package validator

import (
	"errors"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// IsEmail reports whether v is a valid email address.
func IsEmail(v string) bool {
	return validate.Var(v, "email") == nil
}

// Struct validates obj using its `validate` struct tags and returns the
// failures as Issues, or nil.
func Struct(obj any) error {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	issues := make(Issues, 0, len(verrs))
	for _, fe := range verrs {
		// Drop the root struct name: "Config.server.port" -> "server.port".
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		issues = append(issues, Issue{
			Path:    path,
			Code:    codeForTag(fe.Tag()),
			Message: fe.Error(),
		})
	}
	return issues
}

func codeForTag(tag string) IssueCode {
	switch tag {
	case "required":
		return InvalidType
	case "min", "gte", "gt":
		return TooSmall
	case "max", "lte", "lt":
		return TooBig
	case "email", "url", "uri", "hostname_port":
		return InvalidString
	case "oneof":
		return InvalidEnumValue
	default:
		return Custom
	}
}
