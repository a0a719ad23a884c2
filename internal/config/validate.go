package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/mathdrill/internal/problemgen"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("drillkind", func(fl validator.FieldLevel) bool {
		_, err := problemgen.ParseKind(fl.Field().String())
		return err == nil
	})
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field string
	Tag   string
	Value any
}

// ValidationError lists every invalid field of a Config.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s=%v fails %q", f.Field, f.Value, f.Tag)
	}
	return "invalid config: " + strings.Join(parts, "; ")
}

// Validate checks struct constraints and returns a *ValidationError listing
// every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace()),
			Tag:   fe.Tag(),
			Value: fe.Value(),
		})
	}
	return out
}

// fieldPath turns "Config.Grading.SlowThreshold" into "Grading.SlowThreshold".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
