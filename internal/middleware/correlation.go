package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unations/tax-engine/internal/logger"
	"go.uber.org/zap"
)

const (
	CorrelationIDHeader = "X-Correlation-ID"
	// RequestIDHeader is set by API Gateway and load balancers
	RequestIDHeader = "X-Request-ID"

	maxCorrelationIDLength = 128
	correlationGinKey      = "correlation_id"
)

type correlationCtxKey struct{}

// CorrelationIDMiddleware adopts the caller's correlation ID (or the gateway's
// request ID) and mints a UUID when neither is usable. The ID is echoed on the
// response and stored in both the gin and request contexts.
func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := usableCorrelationID(c.GetHeader(CorrelationIDHeader))
		if id == "" {
			id = usableCorrelationID(c.GetHeader(RequestIDHeader))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(correlationGinKey, id)
		c.Header(CorrelationIDHeader, id)
		c.Request = c.Request.WithContext(WithCorrelationID(c.Request.Context(), id))
		c.Next()
	}
}

// usableCorrelationID accepts up to 128 bytes of printable ASCII, no spaces
func usableCorrelationID(id string) string {
	if id == "" || len(id) > maxCorrelationIDLength {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= ' ' || id[i] > '~' {
			return ""
		}
	}
	return id
}

// GetCorrelationID returns the request's correlation ID
func GetCorrelationID(c *gin.Context) string {
	if id := c.GetString(correlationGinKey); id != "" {
		return id
	}
	return CorrelationIDFromContext(c.Request.Context())
}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationCtxKey{}, id)
}

func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationCtxKey{}).(string)
	return id
}

// LogWithCorrelationID returns a component logger tagged with the correlation ID in ctx
func LogWithCorrelationID(ctx context.Context, component logger.LogComponent) *zap.Logger {
	log := logger.ForComponent(component)
	if id := CorrelationIDFromContext(ctx); id != "" {
		log = log.With(zap.String("correlation_id", id))
	}
	return log
}
