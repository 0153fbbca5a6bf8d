package dto

import (
	"time"

	"dealflow_backend/internal/algorithms"
	"dealflow_backend/internal/models"
)

// ========================
// Feed
// ========================

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
)

// FeedFilters - query-параметры ленты. limit=0 означает значение по умолчанию.
type FeedFilters struct {
	Limit        int      `form:"limit" json:"limit" validate:"omitempty,min=1,max=50"`
	Sectors      []string `form:"sectors" json:"sectors" validate:"max=20,dive,max=50"`
	Stage        string   `form:"stage" json:"stage" validate:"omitempty,is-stage"`
	MinValuation *float64 `form:"min_valuation" json:"min_valuation" validate:"omitempty,gte=0"`
	MaxValuation *float64 `form:"max_valuation" json:"max_valuation" validate:"omitempty,gte=0"`
}

// FeedCandidate - карточка в ленте
type FeedCandidate struct {
	UserID   string                   `json:"user_id"`
	UserType models.UserType          `json:"user_type"`
	Name     string                   `json:"name"`
	Score    int                      `json:"score"`
	Factors  algorithms.Factors       `json:"factors"`
	Reasons  []string                 `json:"reasons,omitempty"`
	Startup  *StartupProfileResponse  `json:"startup,omitempty"`
	Investor *InvestorProfileResponse `json:"investor,omitempty"`
}

type FeedResponse struct {
	Candidates []*FeedCandidate `json:"candidates"`
	Total      int              `json:"total"`
	Limit      int              `json:"limit"`
}

// ========================
// Swipes & matches
// ========================

type SwipeRequest struct {
	TargetID  string `json:"target_id" validate:"required,uuid"`
	Direction string `json:"direction" validate:"required,is-swipe-direction"`
}

type SwipeResponse struct {
	SwipeID      string                `json:"swipe_id"`
	TargetID     string                `json:"target_id"`
	Direction    models.SwipeDirection `json:"direction"`
	ScoreAtSwipe int                   `json:"score_at_swipe"`
	IsMatch      bool                  `json:"is_match"`
	Match        *MatchResponse        `json:"match,omitempty"`
}

type MatchParty struct {
	UserID   string                   `json:"user_id"`
	Name     string                   `json:"name"`
	Startup  *StartupProfileResponse  `json:"startup,omitempty"`
	Investor *InvestorProfileResponse `json:"investor,omitempty"`
}

type MatchResponse struct {
	ID            string             `json:"id"`
	Status        models.MatchStatus `json:"status"`
	StartupScore  int                `json:"startup_score"`
	InvestorScore int                `json:"investor_score"`
	MutualScore   float64            `json:"mutual_score"`
	Startup       *MatchParty        `json:"startup"`
	Investor      *MatchParty        `json:"investor"`
	CreatedAt     time.Time          `json:"created_at"`
}

type MatchListResponse struct {
	Matches []*MatchResponse `json:"matches"`
	Total   int              `json:"total"`
}

// ========================
// Compatibility & stats
// ========================

type CompatibilityResult struct {
	UserID   string             `json:"user_id"`
	TargetID string             `json:"target_id"`
	Score    int                `json:"score"`
	Factors  algorithms.Factors `json:"factors"`
	Weights  algorithms.Weights `json:"weights"`
	Reasons  []string           `json:"reasons,omitempty"`
}

type SwipeStats struct {
	SwipesToday  int64     `json:"swipes_today"`
	DailyLimit   int       `json:"daily_limit"`
	Remaining    int       `json:"remaining"`
	TotalMatches int64     `json:"total_matches"`
	ResetsAt     time.Time `json:"resets_at"`
}
