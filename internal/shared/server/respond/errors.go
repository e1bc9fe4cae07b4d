package respond

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"career-coach/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// FieldIssue names one rejected request field.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	telemetry.Error("http.error", LogFields(c, map[string]any{
		"status":  status,
		"code":    code,
		"message": message,
	}))

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ValidationError sends a 400 validation_error, listing field issues when the
// binding error came from the validator.
func ValidationError(c *gin.Context, err error) {
	var details []FieldIssue
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			issue := fe.Tag()
			if fe.Param() != "" {
				issue += "=" + fe.Param()
			}
			details = append(details, FieldIssue{Field: fe.Field(), Issue: issue})
		}
		Error(c, 400, "validation_error", "request validation failed", details)
		return
	}
	msg := "invalid request body"
	if err != nil && !strings.Contains(err.Error(), "EOF") {
		msg = "invalid request body: " + err.Error()
	}
	Error(c, 400, "validation_error", msg, nil)
}

// UseJSONFieldNames makes validator report fields by their json name.
func UseJSONFieldNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}
