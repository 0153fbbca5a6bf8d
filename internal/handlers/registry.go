package handlers

import "github.com/gin-gonic/gin"

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	UserHandler         *UserHandler
	ProfileHandler      *ProfileHandler
	MatchingHandler     *MatchingHandler
	ConversationHandler *ConversationHandler
}

// RegisterRoutes вешает все REST-маршруты на группу API
func (a *AppHandlers) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	a.UserHandler.RegisterRoutes(api, authMW)
	a.ProfileHandler.RegisterRoutes(api, authMW)
	a.MatchingHandler.RegisterRoutes(api, authMW)
	a.ConversationHandler.RegisterRoutes(api, authMW)
}
