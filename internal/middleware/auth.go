package middleware

import (
	"strings"

	"dealflow_backend/internal/auth"
	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/models"
	"dealflow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
)

// AuthMiddleware - проверка Bearer JWT. Для websocket токен можно передать в ?token=,
// браузер не умеет ставить заголовки на upgrade-запрос.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		// Сохраняем claims в контекст
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, claims.UserType)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// RequireUserType - доступ только для стартапов или только для инвесторов
func RequireUserType(userType models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(ContextUserType)
		if !exists {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: no user type"))
			return
		}
		if t, ok := val.(models.UserType); !ok || t != userType {
			apperrors.HandleError(c, apperrors.ErrWrongUserType)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if c.IsWebsocket() {
		return c.Query("token")
	}
	return ""
}
