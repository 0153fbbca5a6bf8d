package repositories

import (
	"errors"
	"time"
	"unicode/utf8"

	"dealflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound      = errors.New("conversation not found")
	ErrConversationAlreadyExists = errors.New("conversation for this match already exists")
)

type ConversationRepository interface {
	// Conversations
	Create(db *gorm.DB, conversation *models.Conversation) error
	FindByID(db *gorm.DB, id string) (*models.Conversation, error)
	FindByMatchID(db *gorm.DB, matchID string) (*models.Conversation, error)
	FindForUser(db *gorm.DB, userID string) ([]models.Conversation, error)
	UpdatePreview(db *gorm.DB, id, text string, at time.Time) error

	// Messages
	CreateMessage(db *gorm.DB, message *models.Message) error
	ListMessages(db *gorm.DB, conversationID string, limit, offset int) ([]models.Message, int64, error)
	MarkRead(db *gorm.DB, conversationID, readerID string) (int64, error)
	CountUnread(db *gorm.DB, conversationID, readerID string) (int64, error)
}

type ConversationRepositoryImpl struct{}

func NewConversationRepository() ConversationRepository {
	return &ConversationRepositoryImpl{}
}

func (r *ConversationRepositoryImpl) Create(db *gorm.DB, conversation *models.Conversation) error {
	if err := db.Create(conversation).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrConversationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ConversationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := db.First(&conversation, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrConversationNotFound)
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) FindByMatchID(db *gorm.DB, matchID string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := db.Where("match_id = ?", matchID).First(&conversation).Error; err != nil {
		return nil, notFound(err, ErrConversationNotFound)
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) FindForUser(db *gorm.DB, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := db.Where("startup_user_id = ? OR investor_user_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}

func (r *ConversationRepositoryImpl) UpdatePreview(db *gorm.DB, id, text string, at time.Time) error {
	if utf8.RuneCountInString(text) > 255 {
		text = truncateRunes(text, 252) + "..."
	}
	return db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message_text": text,
			"last_message_at":   at,
		}).Error
}

func (r *ConversationRepositoryImpl) CreateMessage(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

// ListMessages - в хронологическом порядке
func (r *ConversationRepositoryImpl) ListMessages(db *gorm.DB, conversationID string, limit, offset int) ([]models.Message, int64, error) {
	var total int64
	query := db.Model(&models.Message{}).Where("conversation_id = ?", conversationID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, total, err
}

// MarkRead помечает прочитанными сообщения собеседника
func (r *ConversationRepositoryImpl) MarkRead(db *gorm.DB, conversationID, readerID string) (int64, error) {
	res := db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *ConversationRepositoryImpl) CountUnread(db *gorm.DB, conversationID, readerID string) (int64, error) {
	var count int64
	err := db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
