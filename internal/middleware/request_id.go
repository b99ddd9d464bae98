package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ContextRequestID = "requestID"
	HeaderXRequestID = "X-Request-Id"
)

// RequestIDMiddleware tags every request with an id for log correlation.
// An incoming X-Request-Id is trusted and echoed back, otherwise one is
// generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Writer.Header().Set(HeaderXRequestID, id)
		c.Next()
	}
}
