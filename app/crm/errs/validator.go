package errs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// AppValidator represents the validator used for command input validation
type AppValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewAppValidator creates and setup a validator and a translator
func NewAppValidator() (*AppValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	//english translator
	translator, _ := ut.New(en.New(), en.New()).GetTranslator("en")

	err := en_translations.RegisterDefaultTranslations(v, translator)
	if err != nil {
		return nil, fmt.Errorf("registering default translator: %w", err)
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), " ", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	//register custom validators
	v.RegisterValidation("eventDate", validEventDate)
	v.RegisterValidation("contractStatus", validContractStatus)

	return &AppValidator{
		validate:   v,
		translator: translator,
	}, nil
}

// Check is going to validate a struct and in case validation failed, returns
// one message per invalid field.
func (av *AppValidator) Check(val any) (map[string]string, bool) {
	err := av.validate.Struct(val)

	if err != nil {
		//check failed
		var vErrs validator.ValidationErrors

		if !errors.As(err, &vErrs) {
			//return raw err
			return nil, false
		}

		customValidatorsErrMsg := map[string]string{
			"eventDate":      "Invalid date, expected format: YYYY-MM-DD HH:MM.",
			"contractStatus": "Status not in choice.",
		}

		fields := make(map[string]string, len(vErrs))

		for _, vErr := range vErrs {
			msg, ok := customValidatorsErrMsg[vErr.Tag()]
			if ok {
				fields[vErr.Field()] = msg
			} else {
				fields[vErr.Field()] = vErr.Translate(av.translator)
			}
		}
		return fields, false
	}
	//check succeeded
	return nil, true
}

//==============================================================================
// Custom Validators

func validEventDate(field validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02 15:04", field.Field().String())
	return err == nil
}

func validContractStatus(field validator.FieldLevel) bool {
	switch field.Field().String() {
	case "Created", "Signed", "Finished":
		return true
	}
	return false
}
