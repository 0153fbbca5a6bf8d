package dto

import (
	"time"

	"dealflow_backend/internal/models"
)

// ========================
// Messaging DTOs
// ========================

type OpenConversationRequest struct {
	MatchID string `json:"match_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

type ConversationResponse struct {
	ID              string             `json:"id"`
	MatchID         string             `json:"match_id"`
	MatchStatus     models.MatchStatus `json:"match_status,omitempty"`
	OtherUserID     string             `json:"other_user_id"`
	OtherName       string             `json:"other_name,omitempty"`
	LastMessageText string             `json:"last_message_text,omitempty"`
	LastMessageAt   *time.Time         `json:"last_message_at,omitempty"`
	UnreadCount     int64              `json:"unread_count"`
	CreatedAt       time.Time          `json:"created_at"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}

type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

type MarkReadResponse struct {
	Marked int64 `json:"marked"`
}
