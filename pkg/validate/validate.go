// Package validate provides struct-tag validation for crmctl form drafts.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required        field must not be zero/empty
//	nullable        if empty, skip remaining rules for this field
//	email           valid email address
//	numeric         a number, and for float fields non-zero handled by required
//	date            YYYY-MM-DD (the wire format the server stores verbatim)
//	in=a|b|c        value must be one of the listed items (pipe-separated,
//	                because enum members such as "In Progress" contain spaces)
//
// The closed enumerations on every record type are enforced here before a
// draft is ever submitted: the client must never send a value outside the
// enumerated set.
//
// Example:
//
//	errs := validate.Struct(task)
//	if len(errs) > 0 { ... }
package validate

import (
	"fmt"
	"net/mail"
	"reflect"
	"strings"
	"time"
)

// Struct validates all exported fields of v carrying a `validate` tag.
// Returns fieldName → message; an empty map means the draft is clean.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		name := jsonFieldName(field)
		value := rv.Field(i)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			if msg := apply(rule, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

func apply(rule string, value reflect.Value) string {
	name, arg, _ := strings.Cut(rule, "=")
	switch name {
	case "required":
		if isEmpty(value) {
			return "is required"
		}
	case "email":
		if _, err := mail.ParseAddress(asString(value)); err != nil {
			return "must be a valid email address"
		}
	case "numeric":
		switch value.Kind() {
		case reflect.Float32, reflect.Float64,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			// already a number
		default:
			return "must be a number"
		}
	case "date":
		if _, err := time.Parse("2006-01-02", asString(value)); err != nil {
			return "must be a date in YYYY-MM-DD form"
		}
	case "in":
		allowed := strings.Split(arg, "|")
		s := asString(value)
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
	}
	return ""
}

func hasRule(rules []string, name string) bool {
	for _, r := range rules {
		if r == name {
			return true
		}
	}
	return false
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	default:
		return v.IsZero()
	}
}

func asString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

// jsonFieldName prefers the json tag for error keys so messages line up
// with the wire contract.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
