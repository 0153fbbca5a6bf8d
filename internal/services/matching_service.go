package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"dealflow_backend/internal/algorithms"
	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultStartupDailySwipes  = 20
	DefaultInvestorDailySwipes = 50
)

// QuotaConfig - дневные лимиты свайпов по типу пользователя
type QuotaConfig struct {
	StartupDaily  int
	InvestorDaily int
}

func (q QuotaConfig) limitFor(t models.UserType) int {
	if t == models.UserTypeStartup {
		if q.StartupDaily > 0 {
			return q.StartupDaily
		}
		return DefaultStartupDailySwipes
	}
	if q.InvestorDaily > 0 {
		return q.InvestorDaily
	}
	return DefaultInvestorDailySwipes
}

var activeMatchStatuses = []models.MatchStatus{models.MatchStatusMatched, models.MatchStatusConnected}

type MatchingService interface {
	GetFeed(db *gorm.DB, userID string, filters *dto.FeedFilters) (*dto.FeedResponse, error)
	Swipe(db *gorm.DB, userID string, req *dto.SwipeRequest) (*dto.SwipeResponse, error)
	GetMatches(db *gorm.DB, userID string) (*dto.MatchListResponse, error)
	GetCompatibility(db *gorm.DB, userID, targetID string) (*dto.CompatibilityResult, error)
	WithdrawMatch(db *gorm.DB, userID, matchID string) (*dto.MatchResponse, error)
	GetSwipeStats(db *gorm.DB, userID string) (*dto.SwipeStats, error)
}

type MatchingServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	swipeRepo   repositories.SwipeRepository
	matchRepo   repositories.MatchRepository
	scorer      *algorithms.Scorer
	notifier    MatchNotifier
	quota       QuotaConfig
	now         Clock
}

func NewMatchingService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	swipeRepo repositories.SwipeRepository,
	matchRepo repositories.MatchRepository,
	scorer *algorithms.Scorer,
	notifier MatchNotifier,
	quota QuotaConfig,
	clock Clock,
) MatchingService {
	if scorer == nil {
		scorer = algorithms.NewScorer(algorithms.DefaultPlaceholders)
	}
	if notifier == nil {
		notifier = noopMatchNotifier{}
	}
	if clock == nil {
		clock = defaultClock
	}
	return &MatchingServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		scorer:      scorer,
		notifier:    notifier,
		quota:       quota,
		now:         clock,
	}
}

// participant - пользователь вместе с его профилем (ровно один из двух заполнен)
type participant struct {
	user     *models.User
	startup  *models.StartupProfile
	investor *models.InvestorProfile
}

func (p *participant) name() string {
	switch {
	case p.startup != nil:
		return p.startup.Name
	case p.investor != nil:
		return p.investor.Name
	}
	return p.user.FullName()
}

func (p *participant) party() *dto.MatchParty {
	return &dto.MatchParty{
		UserID:   p.user.ID,
		Name:     p.name(),
		Startup:  dto.NewStartupProfileResponse(p.startup),
		Investor: dto.NewInvestorProfileResponse(p.investor),
	}
}

// ==========================
// Feed
// ==========================

func (s *MatchingServiceImpl) GetFeed(db *gorm.DB, userID string, filters *dto.FeedFilters) (*dto.FeedResponse, error) {
	if filters == nil {
		filters = &dto.FeedFilters{}
	}
	limit, stage, err := validateFeedFilters(filters)
	if err != nil {
		return nil, err
	}

	actor, err := s.loadActor(db, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkQuota(db, actor); err != nil {
		return nil, err
	}

	sectors := normalizeSectors(filters.Sectors)
	cards := make([]*dto.FeedCandidate, 0)

	switch actor.user.UserType {
	case models.UserTypeInvestor:
		filter := repositories.CandidateFilter{
			Stage:        stage,
			MinValuation: toDecimal(filters.MinValuation),
			MaxValuation: toDecimal(filters.MaxValuation),
		}
		candidates, err := s.profileRepo.FindStartupCandidates(db, actor.user.ID, filter)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		for _, c := range candidates {
			if !overlaps(c.Profile.Sectors, sectors) {
				continue
			}
			b := s.scorer.Score(c.Profile, actor.investor)
			cards = append(cards, &dto.FeedCandidate{
				UserID:   c.User.ID,
				UserType: c.User.UserType,
				Name:     c.Profile.Name,
				Score:    b.Total,
				Factors:  b.Factors,
				Reasons:  b.Reasons,
				Startup:  dto.NewStartupProfileResponse(c.Profile),
			})
		}

	default:
		candidates, err := s.profileRepo.FindInvestorCandidates(db, actor.user.ID, repositories.CandidateFilter{})
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		for _, c := range candidates {
			if !overlaps(c.Profile.SectorFocus, sectors) {
				continue
			}
			if stage != "" && !c.Profile.PrefersStage(stage) {
				continue
			}
			b := s.scorer.Score(actor.startup, c.Profile)
			cards = append(cards, &dto.FeedCandidate{
				UserID:   c.User.ID,
				UserType: c.User.UserType,
				Name:     c.Profile.Name,
				Score:    b.Total,
				Factors:  b.Factors,
				Reasons:  b.Reasons,
				Investor: dto.NewInvestorProfileResponse(c.Profile),
			})
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Score != cards[j].Score {
			return cards[i].Score > cards[j].Score
		}
		return cards[i].UserID < cards[j].UserID
	})

	total := len(cards)
	if len(cards) > limit {
		cards = cards[:limit]
	}
	return &dto.FeedResponse{Candidates: cards, Total: total, Limit: limit}, nil
}

// ==========================
// Swipes
// ==========================

// Swipe записывает решение пользователя. Правый свайп при встречном правом свайпе
// создает матч; параллельная вставка того же матча возвращает уже существующий.
func (s *MatchingServiceImpl) Swipe(db *gorm.DB, userID string, req *dto.SwipeRequest) (*dto.SwipeResponse, error) {
	direction := models.SwipeDirection(req.Direction)
	if !direction.Valid() {
		return nil, apperrors.ValidationError(map[string]string{"direction": "must be one of: left, right"})
	}

	actor, err := s.loadActor(db, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkQuota(db, actor); err != nil {
		return nil, err
	}

	target, err := s.loadTarget(db, actor, req.TargetID)
	if err != nil {
		return nil, err
	}

	exists, err := s.swipeRepo.Exists(db, actor.user.ID, target.user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadySwiped
	}

	breakdown := s.score(actor, target)
	raw, err := json.Marshal(breakdown)
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to marshal breakdown: %w", err))
	}

	swipe := &models.Swipe{
		ActorUserID:  actor.user.ID,
		TargetUserID: target.user.ID,
		Direction:    direction,
		ScoreAtSwipe: breakdown.Total,
		Breakdown:    datatypes.JSON(raw),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.swipeRepo.Create(db, swipe); err != nil {
		return nil, handleMatchingError(err)
	}

	resp := &dto.SwipeResponse{
		SwipeID:      swipe.ID,
		TargetID:     target.user.ID,
		Direction:    direction,
		ScoreAtSwipe: breakdown.Total,
	}
	if direction != models.SwipeRight {
		return resp, nil
	}

	if _, err := s.swipeRepo.FindReciprocalRight(db, actor.user.ID, target.user.ID); err != nil {
		if errors.Is(err, repositories.ErrSwipeNotFound) {
			return resp, nil
		}
		return nil, apperrors.InternalError(err)
	}

	startup, investor := roles(actor, target)
	match, created, err := s.createOrGetMatch(db, startup, investor, breakdown.Total)
	if err != nil {
		return nil, err
	}

	ctx := contextOf(db)
	if created {
		logger.CtxInfo(ctx, "Match created",
			"match_id", match.ID,
			"startup_id", match.StartupUserID,
			"investor_id", match.InvestorUserID,
			"mutual_score", match.MutualScore,
		)
		s.notifier.MatchCreated(ctx, MatchEvent{
			Match:        match,
			Startup:      startup.user,
			Investor:     investor.user,
			StartupName:  startup.name(),
			InvestorName: investor.name(),
		})
	}

	resp.IsMatch = true
	resp.Match = buildMatchResponse(match, startup, investor)
	return resp, nil
}

// createOrGetMatch полагается на уникальный индекс пары: проигравший гонку
// получает строку, вставленную победителем.
func (s *MatchingServiceImpl) createOrGetMatch(db *gorm.DB, startup, investor *participant, score int) (*models.Match, bool, error) {
	// Score симметричен, поэтому обе стороны получают одно значение
	startupScore, investorScore := score, score

	match := &models.Match{
		StartupUserID:  startup.user.ID,
		InvestorUserID: investor.user.ID,
		StartupScore:   startupScore,
		InvestorScore:  investorScore,
		MutualScore:    algorithms.MutualScore(startupScore, investorScore),
		Status:         models.MatchStatusMatched,
	}

	err := s.matchRepo.Create(db, match)
	if err == nil {
		return match, true, nil
	}
	if !errors.Is(err, repositories.ErrMatchAlreadyExists) {
		return nil, false, apperrors.InternalError(err)
	}

	existing, err := s.matchRepo.FindByPair(db, startup.user.ID, investor.user.ID)
	if err != nil {
		return nil, false, handleMatchingError(err)
	}
	return existing, false, nil
}

// ==========================
// Matches
// ==========================

func (s *MatchingServiceImpl) GetMatches(db *gorm.DB, userID string) (*dto.MatchListResponse, error) {
	if _, err := s.userRepo.FindByID(db, userID); err != nil {
		return nil, handleMatchingError(err)
	}

	matches, err := s.matchRepo.FindForUser(db, userID, activeMatchStatuses)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses, err := s.matchResponses(db, matches)
	if err != nil {
		return nil, err
	}
	return &dto.MatchListResponse{Matches: responses, Total: len(responses)}, nil
}

// WithdrawMatch: matched -> rejected, только участником матча
func (s *MatchingServiceImpl) WithdrawMatch(db *gorm.DB, userID, matchID string) (*dto.MatchResponse, error) {
	match, err := s.matchRepo.FindByID(db, matchID)
	if err != nil {
		return nil, handleMatchingError(err)
	}
	if !match.HasUser(userID) {
		return nil, apperrors.ErrNotMatchParticipant
	}
	if !match.Status.CanTransitionTo(models.MatchStatusRejected) {
		return nil, apperrors.ErrInvalidStatus("matching", fmt.Sprintf("Cannot withdraw a %s match", match.Status))
	}

	if err := s.matchRepo.UpdateStatus(db, match.ID, match.Status, models.MatchStatusRejected); err != nil {
		return nil, handleMatchingError(err)
	}
	match.Status = models.MatchStatusRejected

	logger.CtxInfo(contextOf(db), "Match withdrawn", "match_id", match.ID, "user_id", userID)

	responses, err := s.matchResponses(db, []models.Match{*match})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// matchResponses подгружает обе стороны всех матчей тремя запросами
func (s *MatchingServiceImpl) matchResponses(db *gorm.DB, matches []models.Match) ([]*dto.MatchResponse, error) {
	responses := make([]*dto.MatchResponse, 0, len(matches))
	if len(matches) == 0 {
		return responses, nil
	}

	userIDs := make([]string, 0, len(matches)*2)
	startupIDs := make([]string, 0, len(matches))
	investorIDs := make([]string, 0, len(matches))
	for _, m := range matches {
		userIDs = append(userIDs, m.StartupUserID, m.InvestorUserID)
		startupIDs = append(startupIDs, m.StartupUserID)
		investorIDs = append(investorIDs, m.InvestorUserID)
	}

	users, err := s.userRepo.FindByIDs(db, userIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	startups, err := s.profileRepo.FindStartupProfilesByUserIDs(db, startupIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	investors, err := s.profileRepo.FindInvestorProfilesByUserIDs(db, investorIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i := range matches {
		m := &matches[i]
		startup := &participant{user: users[m.StartupUserID], startup: startups[m.StartupUserID]}
		investor := &participant{user: users[m.InvestorUserID], investor: investors[m.InvestorUserID]}
		if startup.user == nil || investor.user == nil {
			logger.CtxWarn(contextOf(db), "Match references a missing user", "match_id", m.ID)
			continue
		}
		responses = append(responses, buildMatchResponse(m, startup, investor))
	}
	return responses, nil
}

// ==========================
// Compatibility & stats
// ==========================

func (s *MatchingServiceImpl) GetCompatibility(db *gorm.DB, userID, targetID string) (*dto.CompatibilityResult, error) {
	actor, err := s.loadActor(db, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.loadTarget(db, actor, targetID)
	if err != nil {
		return nil, err
	}

	b := s.score(actor, target)
	return &dto.CompatibilityResult{
		UserID:   actor.user.ID,
		TargetID: target.user.ID,
		Score:    b.Total,
		Factors:  b.Factors,
		Weights:  s.scorer.Weights(),
		Reasons:  b.Reasons,
	}, nil
}

func (s *MatchingServiceImpl) GetSwipeStats(db *gorm.DB, userID string) (*dto.SwipeStats, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleMatchingError(err)
	}

	dayStart := startOfDay(s.now())
	count, err := s.swipeRepo.CountSince(db, user.ID, dayStart)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	matches, err := s.matchRepo.CountForUser(db, user.ID, activeMatchStatuses)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	limit := s.quota.limitFor(user.UserType)
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &dto.SwipeStats{
		SwipesToday:  count,
		DailyLimit:   limit,
		Remaining:    remaining,
		TotalMatches: matches,
		ResetsAt:     dayStart.AddDate(0, 0, 1),
	}, nil
}

// ==========================
// Helpers
// ==========================

// loadActor: пользователь должен существовать, быть активным и иметь профиль
func (s *MatchingServiceImpl) loadActor(db *gorm.DB, userID string) (*participant, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleMatchingError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	p := &participant{user: user}
	if err := s.loadProfile(db, p); err != nil {
		return nil, handleMatchingError(err)
	}
	return p, nil
}

// loadTarget: любая непригодная цель (нет, неактивна, тот же тип, без профиля) - NotFound
func (s *MatchingServiceImpl) loadTarget(db *gorm.DB, actor *participant, targetID string) (*participant, error) {
	if targetID == "" || targetID == actor.user.ID {
		return nil, apperrors.ErrTargetNotFound
	}

	user, err := s.userRepo.FindByID(db, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrTargetNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive || user.UserType != actor.user.UserType.Opposite() {
		return nil, apperrors.ErrTargetNotFound
	}

	p := &participant{user: user}
	if err := s.loadProfile(db, p); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrTargetNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return p, nil
}

func (s *MatchingServiceImpl) loadProfile(db *gorm.DB, p *participant) error {
	var err error
	switch p.user.UserType {
	case models.UserTypeStartup:
		p.startup, err = s.profileRepo.FindStartupProfileByUserID(db, p.user.ID)
	case models.UserTypeInvestor:
		p.investor, err = s.profileRepo.FindInvestorProfileByUserID(db, p.user.ID)
	default:
		err = repositories.ErrProfileNotFound
	}
	return err
}

// checkQuota считает свайпы с полуночи по часам сервиса
func (s *MatchingServiceImpl) checkQuota(db *gorm.DB, actor *participant) (int64, error) {
	count, err := s.swipeRepo.CountSince(db, actor.user.ID, startOfDay(s.now()))
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	if count >= int64(s.quota.limitFor(actor.user.UserType)) {
		return count, apperrors.ErrQuotaExceeded
	}
	return count, nil
}

func (s *MatchingServiceImpl) score(a, b *participant) algorithms.Breakdown {
	startup, investor := roles(a, b)
	return s.scorer.Score(startup.startup, investor.investor)
}

// roles раскладывает пару по типам пользователей
func roles(a, b *participant) (startup, investor *participant) {
	if a.user.UserType == models.UserTypeStartup {
		return a, b
	}
	return b, a
}

func buildMatchResponse(m *models.Match, startup, investor *participant) *dto.MatchResponse {
	return &dto.MatchResponse{
		ID:            m.ID,
		Status:        m.Status,
		StartupScore:  m.StartupScore,
		InvestorScore: m.InvestorScore,
		MutualScore:   m.MutualScore,
		Startup:       startup.party(),
		Investor:      investor.party(),
		CreatedAt:     m.CreatedAt,
	}
}

func validateFeedFilters(f *dto.FeedFilters) (int, models.StartupStage, error) {
	details := map[string]string{}

	limit := f.Limit
	if limit == 0 {
		limit = dto.DefaultFeedLimit
	}
	if limit < 1 || limit > dto.MaxFeedLimit {
		details["limit"] = fmt.Sprintf("must be between 1 and %d", dto.MaxFeedLimit)
	}

	stage := models.StartupStage(strings.ToLower(strings.TrimSpace(f.Stage)))
	if stage != "" && !stage.Valid() {
		details["stage"] = "unknown stage"
	}

	if f.MinValuation != nil && f.MaxValuation != nil && *f.MinValuation > *f.MaxValuation {
		details["min_valuation"] = "must not exceed max_valuation"
	}

	if len(details) > 0 {
		return 0, "", apperrors.ValidationError(details)
	}
	return limit, stage, nil
}

// normalizeSectors принимает как повторяющийся параметр, так и "a,b,c"
func normalizeSectors(raw []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			s := strings.ToLower(strings.TrimSpace(part))
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// overlaps: пустой фильтр пропускает всех
func overlaps(values []string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		for _, f := range filter {
			if v == f {
				return true
			}
		}
	}
	return false
}

func toDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}

func handleMatchingError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrProfileNotFound):
		return apperrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrSwipeAlreadyExists):
		return apperrors.ErrAlreadySwiped
	case errors.Is(err, repositories.ErrMatchNotFound):
		return apperrors.ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchStatusConflict):
		return apperrors.ErrInvalidStatus("matching", "Match status has already changed")
	}
	return apperrors.InternalError(err)
}
