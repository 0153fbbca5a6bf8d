package handlers

import (
	"net/http"

	"dealflow_backend/internal/services"
	"dealflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ConversationHandler - REST для переписки. Живые события идут через /ws.
type ConversationHandler struct {
	*BaseHandler
	messagingService services.MessagingService
}

func NewConversationHandler(base *BaseHandler, messagingService services.MessagingService) *ConversationHandler {
	return &ConversationHandler{
		BaseHandler:      base,
		messagingService: messagingService,
	}
}

func (h *ConversationHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	conversations := r.Group("/conversations")
	conversations.Use(authMW)
	{
		conversations.POST("", h.OpenConversation)
		conversations.GET("", h.ListConversations)
		conversations.GET("/:id/messages", h.ListMessages)
		conversations.POST("/:id/messages", h.SendMessage)
		conversations.POST("/:id/read", h.MarkRead)
	}
}

// OpenConversation godoc
// @Summary Открыть переписку по матчу
// @Description Возвращает существующую переписку, если она уже создана
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.OpenConversationRequest true "ID матча"
// @Success 200 {object} dto.ConversationResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Матч закрыт"
// @Router /conversations [post]
func (h *ConversationHandler) OpenConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.OpenConversationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	conv, err := h.messagingService.OpenConversation(h.GetDB(c), userID, req.MatchID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	convs, err := h.messagingService.ListConversations(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs, "total": len(convs)})
}

func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	messages, err := h.messagingService.ListMessages(h.GetDB(c), userID, c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage godoc
// @Summary Отправить сообщение
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID переписки"
// @Param message body dto.SendMessageRequest true "Текст сообщения"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /conversations/{id}/messages [post]
func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	msg, err := h.messagingService.SendMessage(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	res, err := h.messagingService.MarkRead(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
