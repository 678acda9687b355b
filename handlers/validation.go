package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// fieldErrors is the 400 body: json field name to messages.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	for _, m := range fe[field] {
		if m == msg {
			return
		}
	}
	fe[field] = append(fe[field], msg)
}

const msgRequired = "This field is required."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateBody checks req and writes field errors on failure. nested maps a
// top-level list field to the single message reported for any bad element.
func validateBody(w http.ResponseWriter, req any, nested map[string]string) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return false
	}

	errs := fieldErrors{}
	for _, fe := range verrs {
		// Namespace is "Struct.field" or "Struct.list[2].field".
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		top, _, isNested := strings.Cut(path, ".")
		if i := strings.Index(top, "["); i >= 0 {
			top, isNested = top[:i], true
		}

		if msg, ok := nested[top]; ok && isNested {
			errs.add(top, msg)
			continue
		}
		errs.add(top, message(fe))
	}
	writeJSON(w, http.StatusBadRequest, errs)
	return false
}

// requireFields reports each named field whose value is absent.
func requireFields(w http.ResponseWriter, present map[string]bool) bool {
	errs := fieldErrors{}
	for field, ok := range present {
		if !ok {
			errs.add(field, msgRequired)
		}
	}
	if len(errs) == 0 {
		return true
	}
	writeJSON(w, http.StatusBadRequest, errs)
	return false
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	}
	return "Invalid value."
}
