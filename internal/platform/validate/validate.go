package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"checador/internal/platform/apperr"
)

var structValidator = newStructValidator()

var (
	timeOfDay = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d:[0-5]\d(?:\.\d{3})?$`)
	clockTime = regexp.MustCompile(`^(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d)?$`)
)

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		return IsTimeOfDay(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockTime.MatchString(fl.Field().String())
	})
	return v
}

// IsTimeOfDay matches HH:MM:SS with optional milliseconds, 24-hour clock.
func IsTimeOfDay(value string) bool {
	return timeOfDay.MatchString(value)
}

// Collector gathers field issues before a single rejection.
type Collector struct {
	issues []apperr.FieldIssue
}

func New() *Collector {
	return &Collector{issues: make([]apperr.FieldIssue, 0, 4)}
}

func (c *Collector) Add(field, reason string) {
	if c == nil {
		return
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	c.issues = append(c.issues, apperr.FieldIssue{Field: strings.TrimSpace(field), Reason: reason})
}

func (c *Collector) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "is required")
	}
}

func (c *Collector) Date(field, raw string) (time.Time, bool) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	if err != nil {
		c.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (c *Collector) TimeOfDay(field, value string) {
	if !IsTimeOfDay(value) {
		c.Add(field, "must match HH:MM:SS")
	}
}

// Struct runs the tag rules on v and records every violation.
func (c *Collector) Struct(v any) {
	err := structValidator.Struct(v)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.Add("", err.Error())
		return
	}
	for _, fe := range verrs {
		c.Add(fieldPath(fe), message(fe))
	}
}

func (c *Collector) HasIssues() bool {
	return c != nil && len(c.issues) > 0
}

func (c *Collector) Issues() []apperr.FieldIssue {
	if c == nil || len(c.issues) == 0 {
		return nil
	}
	out := make([]apperr.FieldIssue, len(c.issues))
	copy(out, c.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Err returns a validation error when issues were collected, nil otherwise.
func (c *Collector) Err() error {
	if !c.HasIssues() {
		return nil
	}
	return apperr.Invalid(c.Issues())
}

// Struct validates v on its own.
func Struct(v any) error {
	c := New()
	c.Struct(v)
	return c.Err()
}

// fieldPath drops the root struct name: "CreateInput.horarios[0].dia_semana" -> "horarios[0].dia_semana".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "timeofday":
		return "must match HH:MM:SS"
	case "clock":
		return "must match HH:MM or HH:MM:SS"
	case "datetime":
		return fmt.Sprintf("must match layout %s", fe.Param())
	case "numeric":
		return "must be numeric"
	}
	return "is invalid"
}
