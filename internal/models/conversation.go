package models

import "time"

// Conversation - одна на матч
type Conversation struct {
	BaseModel
	MatchID         string `gorm:"size:36;uniqueIndex;not null"`
	StartupUserID   string `gorm:"size:36;not null;index"`
	InvestorUserID  string `gorm:"size:36;not null;index"`
	LastMessageText string `gorm:"size:255"`
	LastMessageAt   *time.Time
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.StartupUserID == userID || c.InvestorUserID == userID
}

func (c *Conversation) OtherParticipant(userID string) string {
	if c.StartupUserID == userID {
		return c.InvestorUserID
	}
	return c.StartupUserID
}

type Message struct {
	BaseModel
	ConversationID string `gorm:"size:36;not null;index:idx_messages_conversation_created,priority:1"`
	SenderID       string `gorm:"size:36;not null"`
	Content        string `gorm:"type:text;not null"`
	IsRead         bool   `gorm:"not null;default:false"`
}
