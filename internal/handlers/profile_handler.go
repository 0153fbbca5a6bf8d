package handlers

import (
	"net/http"

	"dealflow_backend/internal/middleware"
	"dealflow_backend/internal/models"
	"dealflow_backend/internal/services"
	"dealflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	profiles := r.Group("/profiles")
	profiles.Use(authMW)
	{
		profiles.GET("/me", h.GetMyProfile)
		profiles.GET("/:userId", h.GetProfile)

		startup := profiles.Group("/startup")
		startup.Use(middleware.RequireUserType(models.UserTypeStartup))
		{
			startup.POST("", h.CreateStartupProfile)
			startup.PUT("", h.UpdateStartupProfile)
		}

		investor := profiles.Group("/investor")
		investor.Use(middleware.RequireUserType(models.UserTypeInvestor))
		{
			investor.POST("", h.CreateInvestorProfile)
			investor.PUT("", h.UpdateInvestorProfile)
		}
	}
}

// CreateStartupProfile godoc
// @Summary Создать профиль стартапа
// @Description Slug генерируется из названия, при коллизии добавляется суффикс
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.CreateStartupProfileRequest true "Профиль стартапа"
// @Success 201 {object} dto.StartupProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse "Пользователь не стартап"
// @Failure 409 {object} apperrors.ErrorResponse "Профиль уже существует"
// @Router /profiles/startup [post]
func (h *ProfileHandler) CreateStartupProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateStartupProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateStartupProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// CreateInvestorProfile godoc
// @Summary Создать профиль инвестора
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.CreateInvestorProfileRequest true "Профиль инвестора"
// @Success 201 {object} dto.InvestorProfileResponse
// @Failure 400 {object} apperrors.ErrorResponse "check_size_min > check_size_max"
// @Failure 409 {object} apperrors.ErrorResponse
// @Router /profiles/investor [post]
func (h *ProfileHandler) CreateInvestorProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvestorProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateInvestorProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) UpdateStartupProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStartupProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateStartupProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateInvestorProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInvestorProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateInvestorProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMyProfile godoc
// @Summary Мой профиль
// @Description Пользователь и его профиль; startup/investor пусты, пока профиль не создан
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Router /profiles/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile - публичная карточка другого пользователя, без email
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	targetID := c.Param("userId")

	profile, err := h.profileService.GetProfile(h.GetDB(c), targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if targetID != userID && profile.User != nil {
		profile.User.Email = ""
	}
	c.JSON(http.StatusOK, profile)
}
