package services

import (
	"context"

	"dealflow_backend/internal/email"
	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/models"
)

// События, которые уходят в websocket
const (
	EventMatchCreated = "match.created"
	EventNewMessage   = "message.new"
	EventMessagesRead = "message.read"
)

const matchEmailSubject = "It's a match!"

// RealtimeNotifier доставляет событие пользователю, если он онлайн.
// Реализуется ws-хабом; офлайн-пользователи событие просто не получают.
type RealtimeNotifier interface {
	SendToUser(userID string, eventType string, payload interface{})
}

type MatchEvent struct {
	Match        *models.Match
	Startup      *models.User
	Investor     *models.User
	StartupName  string
	InvestorName string
}

// MatchNotifier вызывается после создания нового матча. Ошибки доставки не возвращаются.
type MatchNotifier interface {
	MatchCreated(ctx context.Context, event MatchEvent)
}

type matchNotifier struct {
	provider email.Provider
	realtime RealtimeNotifier
}

// NewMatchNotifier: любой из каналов может быть nil
func NewMatchNotifier(provider email.Provider, realtime RealtimeNotifier) MatchNotifier {
	return &matchNotifier{provider: provider, realtime: realtime}
}

func (n *matchNotifier) MatchCreated(ctx context.Context, ev MatchEvent) {
	if ev.Match == nil || ev.Startup == nil || ev.Investor == nil {
		return
	}

	n.notify(ctx, ev, ev.Startup, ev.StartupName, ev.Investor.ID, ev.InvestorName)
	n.notify(ctx, ev, ev.Investor, ev.InvestorName, ev.Startup.ID, ev.StartupName)
}

func (n *matchNotifier) notify(ctx context.Context, ev MatchEvent, recipient *models.User, recipientName, otherID, otherName string) {
	if n.realtime != nil {
		n.realtime.SendToUser(recipient.ID, EventMatchCreated, map[string]interface{}{
			"match_id":          ev.Match.ID,
			"mutual_score":      ev.Match.MutualScore,
			"counterparty_id":   otherID,
			"counterparty_name": otherName,
		})
	}

	if n.provider == nil || recipient.Email == "" {
		return
	}

	name := recipient.FullName()
	if name == "" {
		name = recipientName
	}
	err := n.provider.SendTemplate(
		[]string{recipient.Email},
		matchEmailSubject,
		email.TemplateMatchCreated,
		email.TemplateData{
			"RecipientName":    name,
			"CounterpartyName": otherName,
			"MutualScore":      ev.Match.MutualScore,
		},
	)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to send match email", err,
			"match_id", ev.Match.ID,
			"recipient_id", recipient.ID,
		)
	}
}

type noopMatchNotifier struct{}

func (noopMatchNotifier) MatchCreated(context.Context, MatchEvent) {}
