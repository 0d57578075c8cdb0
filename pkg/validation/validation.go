package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the shared validator. Field names are reported by their json tag.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		useJSONNames(v)
	})
	return v
}

// Init makes gin's binding engine report json field names as well.
func Init() {
	if gv, ok := binding.Validator.Engine().(*validator.Validate); ok {
		useJSONNames(gv)
	}
}

func useJSONNames(val *validator.Validate) {
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct validates s and returns field details, or nil when s is valid.
func Struct(s any) map[string]string {
	if err := Validator().Struct(s); err != nil {
		return ToDetails(err)
	}
	return nil
}

// ToDetails turns validator and json decoding errors into field -> message pairs.
func ToDetails(err error) map[string]string {
	out := map[string]string{}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		for _, fe := range ves {
			out[fieldPath(fe)] = message(fe)
		}
		return out
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "body"
		}
		out[field] = "must be of type " + ute.Type.String()
		return out
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		out["body"] = "malformed JSON"
		return out
	}
	out["body"] = err.Error()
	return out
}

// fieldPath drops the root struct name: "Portfolio.skills[0].level" becomes "skills[0].level".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("cannot exceed %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a valid URL"
	case "alphanum":
		return "may contain only letters and digits"
	default:
		return "is invalid"
	}
}
