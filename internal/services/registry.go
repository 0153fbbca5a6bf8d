package services

import (
	"dealflow_backend/internal/algorithms"
	"dealflow_backend/internal/email"
	"dealflow_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService      UserService
	ProfileService   ProfileService
	MatchingService  MatchingService
	MessagingService MessagingService
	EmailProvider    email.Provider
}

// Dependencies - внешние зависимости сервисов, которые собирает app
type Dependencies struct {
	Scorer   *algorithms.Scorer
	Email    email.Provider
	Realtime RealtimeNotifier
	Quota    QuotaConfig
	Clock    Clock
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	swipeRepo := repositories.NewSwipeRepository()
	matchRepo := repositories.NewMatchRepository()
	conversationRepo := repositories.NewConversationRepository()

	return &ServiceContainer{
		UserService:    NewUserService(userRepo),
		ProfileService: NewProfileService(profileRepo, userRepo),
		MatchingService: NewMatchingService(
			userRepo,
			profileRepo,
			swipeRepo,
			matchRepo,
			deps.Scorer,
			NewMatchNotifier(deps.Email, deps.Realtime),
			deps.Quota,
			deps.Clock,
		),
		MessagingService: NewMessagingService(conversationRepo, matchRepo, userRepo, profileRepo, deps.Realtime),
		EmailProvider:    deps.Email,
	}
}
