package response

import "github.com/gin-gonic/gin"

// Body is the wire envelope every endpoint speaks:
// {"success": bool, "message": "...", "data": {...}}.
// Message and Data are omitted when empty so failure bodies stay minimal
// and stable (clients byte-compare them in places).
type Body[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// OK writes a success envelope. Pass message "" to omit it.
func OK[T any](c *gin.Context, status int, data T, message string) {
	c.JSON(status, Body[T]{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope and aborts nothing; handlers return after it.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Body[any]{Success: false, Message: message})
}

// FailWithDetails writes a failure envelope with field-level details.
func FailWithDetails(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Body[any]{Success: false, Message: message, Errors: details})
}

// AbortFail writes a failure envelope and aborts the handler chain.
// For middleware.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Body[any]{Success: false, Message: message})
}
