package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	requestIDKey = "requestId"
	profileIDKey = "profileId"
)

// SetRequestID stores the request ID for handlers and logs.
func SetRequestID(c *gin.Context, id string) {
	c.Set(requestIDKey, id)
}

// RequestID returns the ID stored by SetRequestID, or "".
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}

// SetProfileID tags the request with the profile it operates on.
func SetProfileID(c *gin.Context, id string) {
	c.Set(profileIDKey, id)
}

// ProfileID returns the profile tagged by SetProfileID, or "".
func ProfileID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(profileIDKey)
}

// LogFields adds request_id, method, path and, when known, profile_id to fields.
func LogFields(c *gin.Context, fields map[string]any) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 4)
	}
	fields["request_id"] = RequestID(c)
	if c != nil && c.Request != nil {
		fields["method"] = c.Request.Method
		fields["path"] = c.Request.URL.Path
	}
	if profileID := ProfileID(c); profileID != "" {
		fields["profile_id"] = profileID
	}
	return fields
}

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 JSON response.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
