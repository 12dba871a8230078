package icd

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agentstation/icdmap/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("componenttype", func(fl validator.FieldLevel) bool {
			_, err := ParseComponentType(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Normalize canonicalizes the component type spelling.
func (m *ComponentModel) Normalize() {
	if t, err := ParseComponentType(string(m.ComponentType)); err == nil {
		m.ComponentType = t
	}
}

// Validate checks the required fields of a component model.
func (m *ComponentModel) Validate() error {
	err := validatorInstance().Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return errors.NewValidationError(fe.Field(), fe.Value(), describeTag(fe.Tag()))
	}
	return errors.NewValidationError("", nil, err.Error())
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "componenttype":
		return fmt.Sprintf("must be one of %s", joinTypes(ComponentTypes))
	default:
		return "failed " + tag + " check"
	}
}
