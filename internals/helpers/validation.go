package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	notBlankTag = "notblank"
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// report JSON names, not Go field names
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})
	_ = Validate.RegisterTranslation(notBlankTag, Translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " cannot be blank"
		})
}

// FieldErrors flattens validator errors into translated messages per field.
// Other errors come back as nil.
func FieldErrors(err error) map[string][]string {
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(ves))
	for _, fe := range ves {
		key := fe.Field()
		if key == "" {
			key = fe.StructField()
		}
		out[key] = append(out[key], fe.Translate(Translator))
	}
	return out
}

// ValidationError renders a validator failure as 422, anything else as 400.
func ValidationError(c *fiber.Ctx, err error) error {
	if fields := FieldErrors(err); fields != nil {
		return JsonValidationError(c, fields)
	}
	return JsonError(c, fiber.StatusBadRequest, err.Error())
}

// ParseAndValidate decodes the body into dst and runs struct validation.
// The returned error is already rendered; handlers just return it.
func ParseAndValidate(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := Validate.Struct(dst); err != nil {
		return false, ValidationError(c, err)
	}
	return true, nil
}
