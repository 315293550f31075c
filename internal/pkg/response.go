package pkg

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/soletrade/admin/internal/domain"
)

// Response is the JSON envelope every API endpoint answers with.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ValidationErrorResponse carries per-field messages for rejected input.
type ValidationErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// Success writes a 200 envelope around data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// List writes a 200 envelope around a paginated result, typically a
// PageResult[T].
func List(c *gin.Context, result any) {
	Success(c, result)
}

// Error writes an error envelope. The HTTP status comes from the domain
// error code when err is a *domain.AppError; anything else is a 500 with a
// generic message so internals do not leak to clients.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	msg := "internal error"
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	c.JSON(status, Response{
		Code:    status,
		Message: msg,
		Data:    nil,
	})
}

// ValidationError writes a 400 response with per-field details when err is a
// validator.ValidationErrors, or a plain 400 envelope otherwise.
func ValidationError(c *gin.Context, err error) {
	writeValidationError(c, err, nil)
}

// BindAndValidate binds the request body into obj, writing the validation
// response itself on failure:
//
//	if !pkg.BindAndValidate(c, &req) { return }
//
// Having obj lets the field names in the response use JSON tags instead of
// Go field names.
func BindAndValidate(c *gin.Context, obj any) bool {
	if err := c.ShouldBind(obj); err != nil {
		writeValidationError(c, err, obj)
		return false
	}
	return true
}

func writeValidationError(c *gin.Context, err error, obj any) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		// Malformed body rather than failed rules; don't echo parser internals.
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: "bad request",
			Data:    nil,
		})
		return
	}

	tags := jsonTagNames(obj)

	fieldErrors := make(map[string]string, len(ve))
	for _, fe := range ve {
		name, ok := tags[fe.StructField()]
		if !ok {
			name = strings.ToLower(fe.Field())
		}
		fieldErrors[name] = fieldErrorMessage(fe)
	}

	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Code:    http.StatusBadRequest,
		Message: "validation error",
		Errors:  fieldErrors,
	})
}

// fieldErrorMessage turns a failed validation rule into a message fit for
// showing next to a form field.
func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "gt", "gte":
		return "Must be at least " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		if fe.Param() != "" {
			return fe.Tag() + "=" + fe.Param()
		}
		return fe.Tag()
	}
}

// jsonTagNames maps struct field names to their JSON tag names. Fields
// without a usable tag (missing, empty, or "-") are left out.
func jsonTagNames(obj any) map[string]string {
	if obj == nil {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	m := make(map[string]string, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name != "" && name != "-" {
			m[f.Name] = name
		}
	}
	return m
}
