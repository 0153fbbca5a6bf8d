package services

import (
	"errors"
	"fmt"
	"strings"

	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProfileService interface {
	CreateStartupProfile(db *gorm.DB, userID string, req *dto.CreateStartupProfileRequest) (*dto.StartupProfileResponse, error)
	CreateInvestorProfile(db *gorm.DB, userID string, req *dto.CreateInvestorProfileRequest) (*dto.InvestorProfileResponse, error)
	UpdateStartupProfile(db *gorm.DB, userID string, req *dto.UpdateStartupProfileRequest) (*dto.StartupProfileResponse, error)
	UpdateInvestorProfile(db *gorm.DB, userID string, req *dto.UpdateInvestorProfileRequest) (*dto.InvestorProfileResponse, error)
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// ==========================
// Profile Creation
// ==========================

func (s *ProfileServiceImpl) CreateStartupProfile(db *gorm.DB, userID string, req *dto.CreateStartupProfileRequest) (*dto.StartupProfileResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.requireUserType(tx, userID, models.UserTypeStartup); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(tx, req.Name)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile := &models.StartupProfile{
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Slug:           slug,
		Description:    req.Description,
		Sectors:        req.Sectors,
		Stage:          models.StartupStage(req.Stage),
		LastRound:      req.LastRound,
		LastRoundSize:  nullDecimal(req.LastRoundSize),
		Valuation:      nullDecimal(req.Valuation),
		ARR:            nullDecimal(req.ARR),
		MRR:            nullDecimal(req.MRR),
		GrowthYoyPct:   nullDecimal(req.GrowthYoyPct),
		Locations:      req.Locations,
		ValueAddNeeds:  req.ValueAddNeeds,
		NonNegotiables: req.NonNegotiables,
	}

	if err := s.profileRepo.CreateStartupProfile(tx, profile); err != nil {
		return nil, handleProfileError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewStartupProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) CreateInvestorProfile(db *gorm.DB, userID string, req *dto.CreateInvestorProfileRequest) (*dto.InvestorProfileResponse, error) {
	if err := validateCheckSize(req.CheckSizeMin, req.CheckSizeMax); err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.requireUserType(tx, userID, models.UserTypeInvestor); err != nil {
		return nil, err
	}

	profile := &models.InvestorProfile{
		UserID:           userID,
		Name:             strings.TrimSpace(req.Name),
		Type:             models.InvestorType(req.Type),
		FundSize:         nullDecimal(req.FundSize),
		CheckSizeMin:     decimal.NewFromFloat(req.CheckSizeMin),
		CheckSizeMax:     decimal.NewFromFloat(req.CheckSizeMax),
		StagePreferences: req.StagePreferences,
		SectorFocus:      req.SectorFocus,
		GeoFocus:         req.GeoFocus,
		ValueAddOffered:  req.ValueAddOffered,
		Description:      req.Description,
		WillLead:         req.WillLead,
	}

	if err := s.profileRepo.CreateInvestorProfile(tx, profile); err != nil {
		return nil, handleProfileError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewInvestorProfileResponse(profile), nil
}

// ==========================
// Profile Updates
// ==========================

func (s *ProfileServiceImpl) UpdateStartupProfile(db *gorm.DB, userID string, req *dto.UpdateStartupProfileRequest) (*dto.StartupProfileResponse, error) {
	if _, err := s.requireUserType(db, userID, models.UserTypeStartup); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindStartupProfileByUserID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	if req.Name != nil {
		profile.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.Sectors != nil {
		profile.Sectors = req.Sectors
	}
	if req.Stage != nil {
		profile.Stage = models.StartupStage(*req.Stage)
	}
	if req.LastRound != nil {
		profile.LastRound = *req.LastRound
	}
	if req.LastRoundSize != nil {
		profile.LastRoundSize = nullDecimal(req.LastRoundSize)
	}
	if req.Valuation != nil {
		profile.Valuation = nullDecimal(req.Valuation)
	}
	if req.ARR != nil {
		profile.ARR = nullDecimal(req.ARR)
	}
	if req.MRR != nil {
		profile.MRR = nullDecimal(req.MRR)
	}
	if req.GrowthYoyPct != nil {
		profile.GrowthYoyPct = nullDecimal(req.GrowthYoyPct)
	}
	if req.Locations != nil {
		profile.Locations = req.Locations
	}
	if req.ValueAddNeeds != nil {
		profile.ValueAddNeeds = req.ValueAddNeeds
	}
	if req.NonNegotiables != nil {
		profile.NonNegotiables = req.NonNegotiables
	}

	if err := s.profileRepo.UpdateStartupProfile(db, profile); err != nil {
		return nil, handleProfileError(err)
	}
	return dto.NewStartupProfileResponse(profile), nil
}

// UpdateInvestorProfile: ограничение min <= max проверяется на итоговых значениях
func (s *ProfileServiceImpl) UpdateInvestorProfile(db *gorm.DB, userID string, req *dto.UpdateInvestorProfileRequest) (*dto.InvestorProfileResponse, error) {
	if _, err := s.requireUserType(db, userID, models.UserTypeInvestor); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindInvestorProfileByUserID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	if req.Name != nil {
		profile.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		profile.Type = models.InvestorType(*req.Type)
	}
	if req.FundSize != nil {
		profile.FundSize = nullDecimal(req.FundSize)
	}
	if req.CheckSizeMin != nil {
		profile.CheckSizeMin = decimal.NewFromFloat(*req.CheckSizeMin)
	}
	if req.CheckSizeMax != nil {
		profile.CheckSizeMax = decimal.NewFromFloat(*req.CheckSizeMax)
	}
	if req.StagePreferences != nil {
		profile.StagePreferences = req.StagePreferences
	}
	if req.SectorFocus != nil {
		profile.SectorFocus = req.SectorFocus
	}
	if req.GeoFocus != nil {
		profile.GeoFocus = req.GeoFocus
	}
	if req.ValueAddOffered != nil {
		profile.ValueAddOffered = req.ValueAddOffered
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.WillLead != nil {
		profile.WillLead = *req.WillLead
	}

	if profile.CheckSizeMin.GreaterThan(profile.CheckSizeMax) {
		return nil, checkSizeError()
	}

	if err := s.profileRepo.UpdateInvestorProfile(db, profile); err != nil {
		return nil, handleProfileError(err)
	}
	return dto.NewInvestorProfileResponse(profile), nil
}

// ==========================
// Profile Read
// ==========================

func (s *ProfileServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}

	resp := &dto.ProfileResponse{User: dto.NewUserResponse(user)}

	switch user.UserType {
	case models.UserTypeStartup:
		profile, err := s.profileRepo.FindStartupProfileByUserID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		resp.Startup = dto.NewStartupProfileResponse(profile)
	case models.UserTypeInvestor:
		profile, err := s.profileRepo.FindInvestorProfileByUserID(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.InternalError(err)
		}
		resp.Investor = dto.NewInvestorProfileResponse(profile)
	}
	return resp, nil
}

// ==========================
// Helpers
// ==========================

func (s *ProfileServiceImpl) requireUserType(db *gorm.DB, userID string, want models.UserType) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleProfileError(err)
	}
	if user.UserType != want {
		return nil, apperrors.ErrWrongUserType
	}
	return user, nil
}

// slugify: транслитерация, нижний регистр, разделители -> '-'
func slugify(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return "startup"
}

const maxSlugAttempts = 10

func (s *ProfileServiceImpl) uniqueSlug(db *gorm.DB, name string) (string, error) {
	base := slugify(name)
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		exists, err := s.profileRepo.StartupSlugExists(db, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func validateCheckSize(lo, hi float64) error {
	if lo > hi {
		return checkSizeError()
	}
	return nil
}

func checkSizeError() error {
	return apperrors.ValidationError(map[string]string{
		"check_size_min": "must not exceed check_size_max",
	})
}

func nullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}

func handleProfileError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrProfileAlreadyExists):
		return apperrors.ErrProfileAlreadyExists
	}
	return apperrors.InternalError(err)
}
