package handlers

import (
	"net/http"

	"dealflow_backend/internal/services"
	"dealflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	matching := r.Group("/matching")
	matching.Use(authMW)
	{
		matching.GET("/feed", h.GetFeed)
		matching.POST("/swipe", h.Swipe)
		matching.GET("/matches", h.GetMatches)
		matching.POST("/matches/:matchId/withdraw", h.WithdrawMatch)
		matching.GET("/compatibility/:targetId", h.GetCompatibility)
		matching.GET("/stats", h.GetSwipeStats)
	}
}

// GetFeed godoc
// @Summary Лента кандидатов
// @Description Кандидаты противоположного типа, отсортированные по совместимости. Уже просмотренные исключаются.
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param limit query int false "1..50, по умолчанию 20"
// @Param sectors query []string false "Фильтр по секторам" collectionFormat(multi)
// @Param stage query string false "Стадия стартапа"
// @Param min_valuation query number false "Минимальная оценка (только для инвесторов)"
// @Param max_valuation query number false "Максимальная оценка (только для инвесторов)"
// @Success 200 {object} dto.FeedResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse "Профиль не заполнен"
// @Failure 429 {object} apperrors.ErrorResponse "Дневной лимит свайпов исчерпан"
// @Router /matching/feed [get]
func (h *MatchingHandler) GetFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filters dto.FeedFilters
	if !h.BindAndValidate_Query(c, &filters) {
		return
	}

	feed, err := h.matchingService.GetFeed(h.GetDB(c), userID, &filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Swipe godoc
// @Summary Свайп
// @Description direction: left или right. Встречный правый свайп создает матч.
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param swipe body dto.SwipeRequest true "Цель и направление"
// @Success 201 {object} dto.SwipeResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Уже свайпнут"
// @Failure 429 {object} apperrors.ErrorResponse
// @Router /matching/swipe [post]
func (h *MatchingHandler) Swipe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SwipeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.matchingService.Swipe(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *MatchingHandler) GetMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchingService.GetMatches(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *MatchingHandler) WithdrawMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	match, err := h.matchingService.WithdrawMatch(h.GetDB(c), userID, c.Param("matchId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}

// GetCompatibility godoc
// @Summary Совместимость с пользователем
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param targetId path string true "ID пользователя противоположного типа"
// @Success 200 {object} dto.CompatibilityResult
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /matching/compatibility/{targetId} [get]
func (h *MatchingHandler) GetCompatibility(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.matchingService.GetCompatibility(h.GetDB(c), userID, c.Param("targetId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MatchingHandler) GetSwipeStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.matchingService.GetSwipeStats(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
