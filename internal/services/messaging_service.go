package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	maxMessageLength       = 4000
	defaultMessagePageSize = 50
	maxMessagePageSize     = 100
)

// MessagingService - переписка внутри матча. Первое сообщение переводит матч в connected.
type MessagingService interface {
	OpenConversation(db *gorm.DB, userID, matchID string) (*dto.ConversationResponse, error)
	SendMessage(db *gorm.DB, userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListConversations(db *gorm.DB, userID string) ([]*dto.ConversationResponse, error)
	ListMessages(db *gorm.DB, userID, conversationID string, page, pageSize int) (*dto.MessageListResponse, error)
	MarkRead(db *gorm.DB, userID, conversationID string) (*dto.MarkReadResponse, error)
}

type MessagingServiceImpl struct {
	conversationRepo repositories.ConversationRepository
	matchRepo        repositories.MatchRepository
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	realtime         RealtimeNotifier
}

func NewMessagingService(
	conversationRepo repositories.ConversationRepository,
	matchRepo repositories.MatchRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	realtime RealtimeNotifier,
) MessagingService {
	return &MessagingServiceImpl{
		conversationRepo: conversationRepo,
		matchRepo:        matchRepo,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		realtime:         realtime,
	}
}

// OpenConversation - get-or-create, одна переписка на матч
func (s *MessagingServiceImpl) OpenConversation(db *gorm.DB, userID, matchID string) (*dto.ConversationResponse, error) {
	match, err := s.matchRepo.FindByID(db, matchID)
	if err != nil {
		return nil, handleMessagingError(err)
	}
	if !match.HasUser(userID) {
		return nil, apperrors.ErrNotMatchParticipant
	}
	if !match.Status.Active() {
		return nil, apperrors.ErrMatchClosed
	}

	conv, err := s.conversationRepo.FindByMatchID(db, match.ID)
	if errors.Is(err, repositories.ErrConversationNotFound) {
		conv, err = s.createConversation(db, match)
	}
	if err != nil {
		return nil, handleMessagingError(err)
	}

	names, err := s.displayNames(db, []string{conv.OtherParticipant(userID)})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.conversationRepo.CountUnread(db, conv.ID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buildConversationResponse(conv, match.Status, userID, names, unread), nil
}

func (s *MessagingServiceImpl) createConversation(db *gorm.DB, match *models.Match) (*models.Conversation, error) {
	conv := &models.Conversation{
		MatchID:        match.ID,
		StartupUserID:  match.StartupUserID,
		InvestorUserID: match.InvestorUserID,
	}
	err := s.conversationRepo.Create(db, conv)
	if errors.Is(err, repositories.ErrConversationAlreadyExists) {
		return s.conversationRepo.FindByMatchID(db, match.ID)
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *MessagingServiceImpl) SendMessage(db *gorm.DB, userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperrors.ValidationError(map[string]string{"content": "must be between 1 and 4000 characters"})
	}

	conv, match, err := s.loadConversation(db, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if !match.Status.Active() {
		return nil, apperrors.ErrMatchClosed
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        content,
	}
	if err := s.conversationRepo.CreateMessage(tx, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.conversationRepo.UpdatePreview(tx, conv.ID, content, msg.CreatedAt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if match.Status.CanTransitionTo(models.MatchStatusConnected) {
		if err := s.connectMatch(tx, match); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewMessageResponse(msg)
	if s.realtime != nil {
		s.realtime.SendToUser(conv.OtherParticipant(userID), EventNewMessage, resp)
	}
	logger.CtxDebug(contextOf(db), "Message sent", "conversation_id", conv.ID, "sender_id", userID)
	return resp, nil
}

// connectMatch: matched -> connected. При конфликте статус перечитывается в той же
// транзакции: connected значит второй участник успел раньше, rejected - матч отозван.
func (s *MessagingServiceImpl) connectMatch(tx *gorm.DB, match *models.Match) error {
	err := s.matchRepo.UpdateStatus(tx, match.ID, match.Status, models.MatchStatusConnected)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrMatchStatusConflict) {
		return apperrors.InternalError(err)
	}

	current, err := s.matchRepo.FindByID(tx, match.ID)
	if err != nil {
		return handleMessagingError(err)
	}
	if !current.Status.Active() {
		return apperrors.ErrMatchClosed
	}
	return nil
}

// ListConversations - последние активные сверху
func (s *MessagingServiceImpl) ListConversations(db *gorm.DB, userID string) ([]*dto.ConversationResponse, error) {
	convs, err := s.conversationRepo.FindForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	others := make([]string, 0, len(convs))
	for i := range convs {
		others = append(others, convs[i].OtherParticipant(userID))
	}
	names, err := s.displayNames(db, others)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]*dto.ConversationResponse, 0, len(convs))
	for i := range convs {
		conv := &convs[i]

		var status models.MatchStatus
		if match, err := s.matchRepo.FindByID(db, conv.MatchID); err == nil {
			status = match.Status
		} else if !errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, apperrors.InternalError(err)
		}

		unread, err := s.conversationRepo.CountUnread(db, conv.ID, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		result = append(result, buildConversationResponse(conv, status, userID, names, unread))
	}
	return result, nil
}

func (s *MessagingServiceImpl) ListMessages(db *gorm.DB, userID, conversationID string, page, pageSize int) (*dto.MessageListResponse, error) {
	if _, _, err := s.loadConversation(db, userID, conversationID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultMessagePageSize
	}
	if pageSize > maxMessagePageSize {
		pageSize = maxMessagePageSize
	}

	messages, total, err := s.conversationRepo.ListMessages(db, conversationID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewMessageResponse(&messages[i]))
	}
	return &dto.MessageListResponse{
		Messages: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// MarkRead помечает прочитанными входящие сообщения и уведомляет отправителя
func (s *MessagingServiceImpl) MarkRead(db *gorm.DB, userID, conversationID string) (*dto.MarkReadResponse, error) {
	conv, _, err := s.loadConversation(db, userID, conversationID)
	if err != nil {
		return nil, err
	}

	marked, err := s.conversationRepo.MarkRead(db, conv.ID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if marked > 0 && s.realtime != nil {
		s.realtime.SendToUser(conv.OtherParticipant(userID), EventMessagesRead, map[string]interface{}{
			"conversation_id": conv.ID,
			"reader_id":       userID,
		})
	}
	return &dto.MarkReadResponse{Marked: marked}, nil
}

func (s *MessagingServiceImpl) loadConversation(db *gorm.DB, userID, conversationID string) (*models.Conversation, *models.Match, error) {
	conv, err := s.conversationRepo.FindByID(db, conversationID)
	if err != nil {
		return nil, nil, handleMessagingError(err)
	}
	if !conv.HasParticipant(userID) {
		return nil, nil, apperrors.ErrConversationAccessDenied
	}

	match, err := s.matchRepo.FindByID(db, conv.MatchID)
	if err != nil {
		return nil, nil, handleMessagingError(err)
	}
	return conv, match, nil
}

// displayNames: имя из профиля, иначе имя пользователя
func (s *MessagingServiceImpl) displayNames(db *gorm.DB, userIDs []string) (map[string]string, error) {
	users, err := s.userRepo.FindByIDs(db, userIDs)
	if err != nil {
		return nil, err
	}
	startups, err := s.profileRepo.FindStartupProfilesByUserIDs(db, userIDs)
	if err != nil {
		return nil, err
	}
	investors, err := s.profileRepo.FindInvestorProfilesByUserIDs(db, userIDs)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(users))
	for id, u := range users {
		p := &participant{user: u, startup: startups[id], investor: investors[id]}
		names[id] = p.name()
	}
	return names, nil
}

func buildConversationResponse(conv *models.Conversation, status models.MatchStatus, userID string, names map[string]string, unread int64) *dto.ConversationResponse {
	other := conv.OtherParticipant(userID)
	return &dto.ConversationResponse{
		ID:              conv.ID,
		MatchID:         conv.MatchID,
		MatchStatus:     status,
		OtherUserID:     other,
		OtherName:       names[other],
		LastMessageText: conv.LastMessageText,
		LastMessageAt:   conv.LastMessageAt,
		UnreadCount:     unread,
		CreatedAt:       conv.CreatedAt,
	}
}

func handleMessagingError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrConversationNotFound):
		return apperrors.ErrConversationNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return apperrors.ErrMatchNotFound
	}
	return apperrors.InternalError(err)
}
