package forms

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	requiredTag  = "required"
	requiredText = "To pole jest wymagane."

	maxTag  = "max"
	maxText = "Maksymalna długość to {0} znaków."
)

// Validator checks bound forms and reports translated field errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator instantiates the validator for use.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	// Use form field names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerTranslation(validate, translator, requiredTag, requiredText); err != nil {
		return nil, err
	}
	if err := registerTranslation(validate, translator, maxTag, maxText); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, translator: translator}, nil
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) error {
	return validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Param())
			return s
		},
	)
}

// Check validates a form struct. It returns nil when the form is valid.
func (v *Validator) Check(form any) Errors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}

	errs := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = fe.Translate(v.translator)
		}
	}
	return errs
}
