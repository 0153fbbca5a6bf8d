package ws

import (
	"context"
	"net/http"

	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/middleware"
	"dealflow_backend/internal/services"
	"dealflow_backend/pkg/apperrors"
	"dealflow_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // доступ решает токен, а не Origin
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	Manager   *WebSocketManager
	messaging services.MessagingService
}

func NewWebSocketHandler(manager *WebSocketManager, messaging services.MessagingService) *WebSocketHandler {
	return &WebSocketHandler{
		Manager:   manager,
		messaging: messaging,
	}
}

// ServeWS - GET /ws, требует AuthMiddleware
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
	if !ok {
		apperrors.HandleError(c, apperrors.InternalError(nil))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "WebSocket upgrade error", err)
		return
	}

	// Контекст запроса отменяется после возврата из хендлера, клиенту нужен свой
	reqCtx := c.Request.Context()
	ctx := logger.WithRequestID(context.Background(), logger.GetRequestID(reqCtx))
	ctx = logger.WithCorrelationID(ctx, logger.GetCorrelationID(reqCtx))
	ctx = logger.WithUserID(ctx, userID)

	client := &Client{
		UserID:    userID,
		Conn:      conn,
		Send:      make(chan any, sendBufferSize),
		Ctx:       ctx,
		Manager:   h.Manager,
		Messaging: h.messaging,
		DB:        db,
	}

	h.Manager.Register(client)
	logger.CtxInfo(ctx, "WebSocket client connected")

	go client.writePump()
	go client.readPump()
}
