package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/unations/tax-engine/internal/logger"
	"go.uber.org/zap"
)

// Request fields that identify a status card holder. They are masked in
// development body dumps.
var sensitiveBodyFields = map[string]bool{
	"holder_name":        true,
	"date_of_birth":      true,
	"card_number":        true,
	"status_card_number": true,
}

var sensitiveHeaders = map[string]bool{
	"Authorization": true,
	"X-Api-Key":     true,
	"Cookie":        true,
}

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// EnhancedLoggingMiddleware dumps request and response bodies in development.
// It is a no-op otherwise.
func EnhancedLoggingMiddleware(isDevelopment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isDevelopment {
			c.Next()
			return
		}

		start := time.Now()
		log := LogWithCorrelationID(c.Request.Context(), logger.ComponentMiddleware)

		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(requestBody))
		}

		log.Debug("Detailed request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Any("headers", redactHeaders(c.Request.Header)),
			zap.Any("body", redactBody(requestBody)),
			zap.Int("body_size", len(requestBody)),
		)

		blw := &bodyLogWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		var responseJSON interface{}
		if strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") && blw.body.Len() > 0 {
			if err := json.Unmarshal(blw.body.Bytes(), &responseJSON); err != nil {
				responseJSON = blw.body.String()
			}
		}

		log.Debug("Detailed response",
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.Any("body", responseJSON),
			zap.Int("body_size", blw.body.Len()),
		)
	}
}

// RequestLoggingMiddleware logs one line per completed request. Server errors
// log at error level, client errors at warn.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log := LogWithCorrelationID(c.Request.Context(), logger.ComponentAPI)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		for _, err := range c.Errors {
			fields = append(fields, zap.Error(err.Err))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("Request completed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

func redactHeaders(h http.Header) map[string]string {
	headers := make(map[string]string, len(h))
	for key, values := range h {
		if sensitiveHeaders[http.CanonicalHeaderKey(key)] {
			headers[key] = "[REDACTED]"
			continue
		}
		headers[key] = strings.Join(values, ",")
	}
	return headers
}

func redactBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	return redactValue(parsed)
}

func redactValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, inner := range t {
			if sensitiveBodyFields[k] {
				t[k] = "[REDACTED]"
				continue
			}
			t[k] = redactValue(inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = redactValue(inner)
		}
		return t
	default:
		return v
	}
}
