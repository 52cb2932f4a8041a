// Package validation runs declarative rule sets over request DTOs and reports
// failures as field → messages, in field declaration order.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Errors maps a JSON field name to its failure messages.
type Errors struct {
	fields map[string][]string
	order  []string
}

// Add appends msg to field.
func (e *Errors) Add(field, msg string) {
	if e.fields == nil {
		e.fields = make(map[string][]string)
	}
	if _, ok := e.fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.fields[field] = append(e.fields[field], msg)
}

// Empty reports whether no failure was recorded.
func (e *Errors) Empty() bool { return e == nil || len(e.fields) == 0 }

// Fields returns the field → messages map.
func (e *Errors) Fields() map[string][]string { return e.fields }

// Error joins the messages in field order.
func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, f+": "+strings.Join(e.fields[f], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Field returns an *Errors holding a single message.
func Field(field, msg string) *Errors {
	e := &Errors{}
	e.Add(field, msg)
	return e
}

// As extracts *Errors from err.
func As(err error) (*Errors, bool) {
	var ve *Errors
	if errors.As(err, &ve) && !ve.Empty() {
		return ve, true
	}
	return nil, false
}

// ParseDate parses s strictly as yyyy-MM-dd.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

// Validator wraps a configured *validator.Validate.
type Validator struct {
	v *validator.Validate
	// messages overrides the generic tag message for a given "field.tag".
	messages map[string]string
}

// New returns a Validator that reports JSON field names and knows the
// isodate and money tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Decimals are validated through their string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	_ = v.RegisterValidation("scale2", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && FitsMoney(d)
	})
	return &Validator{v: v, messages: make(map[string]string)}
}

// Message overrides the message emitted when tag fails on field (JSON name).
func (val *Validator) Message(field, tag, msg string) *Validator {
	val.messages[field+"."+tag] = msg
	return val
}

// Struct validates s. It returns nil or an *Errors.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Errors{}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := val.messages[field+"."+fe.Tag()]; ok {
			out.Add(field, msg)
			continue
		}
		out.Add(field, genericMessage(fe))
	}
	return out
}

// FitsMoney reports whether d fits NUMERIC(18,2): at most 2 fractional digits
// (trailing zeros ignored) and 16 integer digits.
func FitsMoney(d decimal.Decimal) bool {
	if !d.Equal(d.Round(2)) {
		return false
	}
	limit := decimal.New(1, 16)
	return d.Abs().LessThan(limit)
}

func genericMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("'%s' must not be empty.", f)
	case "max":
		return fmt.Sprintf("The length of '%s' must be %s characters or fewer.", f, fe.Param())
	case "min":
		return fmt.Sprintf("The length of '%s' must be at least %s characters.", f, fe.Param())
	case "gt":
		return fmt.Sprintf("'%s' must be greater than '%s'.", f, fe.Param())
	case "gte":
		return fmt.Sprintf("'%s' must be greater than or equal to '%s'.", f, fe.Param())
	case "lte":
		return fmt.Sprintf("'%s' must be less than or equal to '%s'.", f, fe.Param())
	case "isodate":
		return fmt.Sprintf("'%s' must be in yyyy-MM-dd format.", f)
	case "money":
		return fmt.Sprintf("'%s' cannot be negative.", f)
	case "scale2":
		return fmt.Sprintf("'%s' must not be more than 18 digits in total, with allowance for 2 decimals.", f)
	default:
		return fmt.Sprintf("'%s' is invalid.", f)
	}
}
