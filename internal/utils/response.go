package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Response defines the error envelope. Successful responses carry the bare
// resource, which is what the web client reads.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    Meta       `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`
}

// OK is the body returned by delete endpoints.
type OK struct {
	OK bool `json:"ok"`
}

// Success writes data as the response body.
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	ErrorWithFields(c, code, errCode, message, nil)
}

// ErrorWithFields writes an error response listing the offending fields.
func ErrorWithFields(c *gin.Context, code int, errCode, message string, fields []FieldError) {
	c.AbortWithStatusJSON(code, Response{
		Success: false,
		Code:    code,
		Message: message,
		Error: &ErrorInfo{
			Code:    errCode,
			Message: message,
			Fields:  fields,
		},
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return NewRequestID()
}
