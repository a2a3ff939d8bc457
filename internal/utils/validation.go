package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const passwordSpecials = "@$!%*?&"

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

	setupOnce  sync.Once
	setupErr   error
	translator ut.Translator
)

// customValidations are registered on gin's validator together with their English messages.
var customValidations = []struct {
	tag     string
	fn      validator.Func
	message string
}{
	{"phone_e164", validatePhone, "{0} must be a valid international phone number"},
	{"us_zip", validateZip, "{0} must be a valid US ZIP code"},
	{"password_strength", validatePassword, "{0} must contain uppercase, lowercase, digit, and special character (" + passwordSpecials + ")"},
}

// SetupValidator registers custom tags, English translations and JSON field
// names on gin's validator engine. It is safe to call more than once.
func SetupValidator() error {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			setupErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		setupErr = configure(v)
	})
	return setupErr
}

func configure(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return err
	}

	for _, cv := range customValidations {
		if err := v.RegisterValidation(cv.tag, cv.fn); err != nil {
			return err
		}
		message := cv.message
		tag := cv.tag
		err := v.RegisterTranslation(tag, trans,
			func(ut ut.Translator) error { return ut.Add(tag, message, true) },
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(fe.Tag(), fe.Field())
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	translator = trans
	return nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateZip(fl validator.FieldLevel) bool {
	return zipPattern.MatchString(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword requires at least 8 characters drawn only from letters,
// digits and @$!%*?&, with at least one of each class.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		errorMessages := make([]string, 0, len(errs))
		for _, e := range errs {
			if translator != nil {
				errorMessages = append(errorMessages, e.Translate(translator))
			} else {
				errorMessages = append(errorMessages, e.Error())
			}
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}

// BindAndValidate binds the request body to a struct and validates it.
// If validation fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := SetupValidator(); err != nil {
		InternalServerError(c, "Validator unavailable")
		return false
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			BadRequest(c, "Validation failed: "+FormatValidationError(err))
			return false
		}
		BadRequest(c, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := SetupValidator(); err != nil {
		InternalServerError(c, "Validator unavailable")
		return false
	}
	if err := c.ShouldBindQuery(obj); err != nil {
		BadRequest(c, "Invalid query parameters: "+FormatValidationError(err))
		return false
	}
	return true
}
