package middleware

import (
	"net/http"
	"strings"
	"time"

	"dealflow_backend/internal/logger"
	"dealflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RequestIDHeader     = "X-Request-ID"
	CorrelationIDHeader = "X-Correlation-ID"

	maxTraceIDLength = 128
)

// RequestIDMiddleware принимает X-Request-ID от прокси или генерирует новый.
// X-Correlation-ID берется от клиента, без него цепочка начинается с этого запроса.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := traceHeader(c, RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		correlationID := traceHeader(c, CorrelationIDHeader)
		if correlationID == "" {
			correlationID = requestID
		}

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		ctx = logger.WithCorrelationID(ctx, correlationID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)
		c.Header(CorrelationIDHeader, correlationID)
		c.Next()
	}
}

func traceHeader(c *gin.Context, name string) string {
	v := strings.TrimSpace(c.GetHeader(name))
	if len(v) > maxTraceIDLength {
		return ""
	}
	return v
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.HTTPLog(c.Request.Context(),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}

// CORSMiddleware - пустой список или "*" разрешает любой origin, но без credentials
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := allowed[origin]; ok || allowAll {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if !allowAll {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, "+RequestIDHeader+", "+CorrelationIDHeader)
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Expose-Headers", RequestIDHeader+", "+CorrelationIDHeader)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// DBMiddleware кладет *gorm.DB в gin.Context. Если в контексте запроса уже есть
// транзакция (тесты), используется она.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbKey := string(contextkeys.DBContextKey)
		tx, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)

		if ok && tx != nil {
			c.Set(dbKey, tx)
		} else {
			c.Set(dbKey, db)
		}

		c.Next()
	}
}
