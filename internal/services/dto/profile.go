package dto

import (
	"time"

	"dealflow_backend/internal/models"

	"github.com/shopspring/decimal"
)

// =======================
// Startup profile
// =======================

type CreateStartupProfileRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=255"`
	Description    string   `json:"description" validate:"max=5000"`
	Sectors        []string `json:"sectors" validate:"required,min=1,max=10,dive,required,max=50"`
	Stage          string   `json:"stage" validate:"required,is-stage"`
	LastRound      string   `json:"last_round" validate:"max=50"`
	LastRoundSize  *float64 `json:"last_round_size" validate:"omitempty,gte=0"`
	Valuation      *float64 `json:"valuation" validate:"omitempty,gte=0"`
	ARR            *float64 `json:"arr" validate:"omitempty,gte=0"`
	MRR            *float64 `json:"mrr" validate:"omitempty,gte=0"`
	GrowthYoyPct   *float64 `json:"growth_yoy_pct"`
	Locations      []string `json:"locations" validate:"max=20"`
	ValueAddNeeds  []string `json:"value_add_needs" validate:"max=20"`
	NonNegotiables []string `json:"non_negotiables" validate:"max=20"`
}

// UpdateStartupProfileRequest - nil означает "не менять"
type UpdateStartupProfileRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Description    *string  `json:"description" validate:"omitempty,max=5000"`
	Sectors        []string `json:"sectors" validate:"omitempty,min=1,max=10,dive,required,max=50"`
	Stage          *string  `json:"stage" validate:"omitempty,is-stage"`
	LastRound      *string  `json:"last_round" validate:"omitempty,max=50"`
	LastRoundSize  *float64 `json:"last_round_size" validate:"omitempty,gte=0"`
	Valuation      *float64 `json:"valuation" validate:"omitempty,gte=0"`
	ARR            *float64 `json:"arr" validate:"omitempty,gte=0"`
	MRR            *float64 `json:"mrr" validate:"omitempty,gte=0"`
	GrowthYoyPct   *float64 `json:"growth_yoy_pct"`
	Locations      []string `json:"locations" validate:"omitempty,max=20"`
	ValueAddNeeds  []string `json:"value_add_needs" validate:"omitempty,max=20"`
	NonNegotiables []string `json:"non_negotiables" validate:"omitempty,max=20"`
}

type StartupProfileResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	Description    string              `json:"description,omitempty"`
	Sectors        []string            `json:"sectors"`
	Stage          models.StartupStage `json:"stage"`
	LastRound      string              `json:"last_round,omitempty"`
	LastRoundSize  decimal.NullDecimal `json:"last_round_size"`
	Valuation      decimal.NullDecimal `json:"valuation"`
	ARR            decimal.NullDecimal `json:"arr"`
	MRR            decimal.NullDecimal `json:"mrr"`
	GrowthYoyPct   decimal.NullDecimal `json:"growth_yoy_pct"`
	Locations      []string            `json:"locations"`
	ValueAddNeeds  []string            `json:"value_add_needs"`
	NonNegotiables []string            `json:"non_negotiables"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func NewStartupProfileResponse(p *models.StartupProfile) *StartupProfileResponse {
	if p == nil {
		return nil
	}
	return &StartupProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Sectors:        nonNil(p.Sectors),
		Stage:          p.Stage,
		LastRound:      p.LastRound,
		LastRoundSize:  p.LastRoundSize,
		Valuation:      p.Valuation,
		ARR:            p.ARR,
		MRR:            p.MRR,
		GrowthYoyPct:   p.GrowthYoyPct,
		Locations:      nonNil(p.Locations),
		ValueAddNeeds:  nonNil(p.ValueAddNeeds),
		NonNegotiables: nonNil(p.NonNegotiables),
		UpdatedAt:      p.UpdatedAt,
	}
}

// =======================
// Investor profile
// =======================

type CreateInvestorProfileRequest struct {
	Name             string   `json:"name" validate:"required,min=2,max=255"`
	Type             string   `json:"type" validate:"required,is-investor-type"`
	FundSize         *float64 `json:"fund_size" validate:"omitempty,gte=0"`
	CheckSizeMin     float64  `json:"check_size_min" validate:"gte=0"`
	CheckSizeMax     float64  `json:"check_size_max" validate:"gte=0"`
	StagePreferences []string `json:"stage_preferences" validate:"required,min=1,dive,is-stage"`
	SectorFocus      []string `json:"sector_focus" validate:"required,min=1,max=20,dive,required,max=50"`
	GeoFocus         []string `json:"geo_focus" validate:"max=20"`
	ValueAddOffered  []string `json:"value_add_offered" validate:"max=20"`
	Description      string   `json:"description" validate:"max=5000"`
	WillLead         bool     `json:"will_lead"`
}

type UpdateInvestorProfileRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Type             *string  `json:"type" validate:"omitempty,is-investor-type"`
	FundSize         *float64 `json:"fund_size" validate:"omitempty,gte=0"`
	CheckSizeMin     *float64 `json:"check_size_min" validate:"omitempty,gte=0"`
	CheckSizeMax     *float64 `json:"check_size_max" validate:"omitempty,gte=0"`
	StagePreferences []string `json:"stage_preferences" validate:"omitempty,min=1,dive,is-stage"`
	SectorFocus      []string `json:"sector_focus" validate:"omitempty,min=1,max=20,dive,required,max=50"`
	GeoFocus         []string `json:"geo_focus" validate:"omitempty,max=20"`
	ValueAddOffered  []string `json:"value_add_offered" validate:"omitempty,max=20"`
	Description      *string  `json:"description" validate:"omitempty,max=5000"`
	WillLead         *bool    `json:"will_lead"`
}

type InvestorProfileResponse struct {
	ID               string              `json:"id"`
	UserID           string              `json:"user_id"`
	Name             string              `json:"name"`
	Type             models.InvestorType `json:"type"`
	FundSize         decimal.NullDecimal `json:"fund_size"`
	CheckSizeMin     decimal.Decimal     `json:"check_size_min"`
	CheckSizeMax     decimal.Decimal     `json:"check_size_max"`
	StagePreferences []string            `json:"stage_preferences"`
	SectorFocus      []string            `json:"sector_focus"`
	GeoFocus         []string            `json:"geo_focus"`
	ValueAddOffered  []string            `json:"value_add_offered"`
	Description      string              `json:"description,omitempty"`
	WillLead         bool                `json:"will_lead"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func NewInvestorProfileResponse(p *models.InvestorProfile) *InvestorProfileResponse {
	if p == nil {
		return nil
	}
	return &InvestorProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Name:             p.Name,
		Type:             p.Type,
		FundSize:         p.FundSize,
		CheckSizeMin:     p.CheckSizeMin,
		CheckSizeMax:     p.CheckSizeMax,
		StagePreferences: nonNil(p.StagePreferences),
		SectorFocus:      nonNil(p.SectorFocus),
		GeoFocus:         nonNil(p.GeoFocus),
		ValueAddOffered:  nonNil(p.ValueAddOffered),
		Description:      p.Description,
		WillLead:         p.WillLead,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ProfileResponse - пользователь и его профиль (один из двух)
type ProfileResponse struct {
	User     *UserResponse            `json:"user"`
	Startup  *StartupProfileResponse  `json:"startup,omitempty"`
	Investor *InvestorProfileResponse `json:"investor,omitempty"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
