package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"Gin_postgres_redis_lend_tool/models"
	"Gin_postgres_redis_lend_tool/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report form field names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return strings.ToLower(f.Name)
			}
			return name
		})
	}
}

// bindForm binds the request form into obj and turns binding failures into
// a *models.ValidationError.
func bindForm(c *gin.Context, obj any) error {
	if err := c.ShouldBind(obj); err != nil {
		return bindError(err)
	}
	return nil
}

func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return models.Invalid(ve[0].Field(), fieldReason(ve[0]))
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return models.Invalid("input", fmt.Sprintf("%q is not a whole number", ne.Num))
	}
	return models.Invalid("input", "could not be read")
}

// formInt parses a whole-number form value. Blank is reported as missing,
// since gin binds an empty value to 0.
func formInt(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, models.Invalid(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.Invalid(field, fmt.Sprintf("%q is not a whole number", raw))
	}
	return n, nil
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}

// flashFor maps a service error to a flash category and message. subject
// names the thing that was looked up ("Item", "Loan"). known is false for
// errors outside the domain taxonomy.
func flashFor(err error, subject string) (category, msg string, known bool) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return session.FlashWarning, "Invalid input: " + ve.Error() + ".", true
	case errors.Is(err, models.ErrNotFound):
		return session.FlashDanger, subject + " not found.", true
	case errors.Is(err, models.ErrInvalidQuantity):
		return session.FlashWarning, "Invalid quantity requested. Check availability.", true
	case errors.Is(err, models.ErrAlreadyReturned):
		return session.FlashInfo, "Loan already returned.", true
	case errors.Is(err, models.ErrNotAuthorized):
		return session.FlashDanger, "You are not allowed to do that.", true
	case errors.Is(err, models.ErrAuthentication):
		return session.FlashDanger, "Invalid credentials.", true
	default:
		return session.FlashDanger, "Something went wrong.", false
	}
}
