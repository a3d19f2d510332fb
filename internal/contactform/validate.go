package contactform

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-\s]+$`)

	validate = newValidator()
)

// Field keys used in FieldErrors.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

// MaxMessageLength bounds the optional message, counted in characters.
const MaxMessageLength = 500

// FieldErrors maps a field key to the message shown next to that input.
type FieldErrors map[string]string

// ValidationError is returned by Submit when the gate rejects the form.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for _, k := range []string{FieldName, FieldEmail, FieldPhone, FieldMessage} {
		if _, ok := e.Fields[k]; ok {
			keys = append(keys, k)
		}
	}
	return "contactform: invalid fields: " + strings.Join(keys, ", ")
}

// Fields are the raw values of the contact form inputs.
type Fields struct {
	Name    string `json:"name" validate:"required,min=2,max=50"`
	Email   string `json:"email" validate:"required,leademail"`
	Phone   string `json:"phone" validate:"omitempty,leadphone"`
	Message string `json:"message" validate:"max=500"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f Fields) Trimmed() Fields {
	return Fields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Message: strings.TrimSpace(f.Message),
	}
}

var messages = map[string]map[string]string{
	FieldName: {
		"required": "Por favor ingresa tu nombre",
		"min":      "El nombre debe tener al menos 2 caracteres",
		"max":      "El nombre no puede exceder los 50 caracteres",
	},
	FieldEmail: {
		"required":  "Por favor ingresa tu correo electrónico",
		"leademail": "Ingresa un correo electrónico válido",
	},
	FieldPhone: {
		"leadphone": "Ingresa un número de teléfono válido",
	},
	FieldMessage: {
		"max": "El mensaje no puede exceder los 500 caracteres",
	},
}

// Validate checks the trimmed fields and returns one message per failing
// field, or nil when the form may be sent.
func Validate(f Fields) FieldErrors {
	err := validate.Struct(f.Trimmed())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{FieldName: err.Error()}
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		key := fe.Field()
		if _, seen := out[key]; seen {
			continue
		}
		msg, ok := messages[key][fe.Tag()]
		if !ok {
			msg = "Valor inválido"
		}
		out[key] = msg
	}
	return out
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("leadphone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}
