package services_test

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"dealflow_backend/internal/algorithms"
	"dealflow_backend/internal/email"
	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/internal/services"
	"dealflow_backend/internal/services/dto"
	"dealflow_backend/pkg/apperrors"
	"dealflow_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentEvent struct {
	userID    string
	eventType string
}

type recordingRealtime struct {
	mu     sync.Mutex
	events []sentEvent
}

func (r *recordingRealtime) SendToUser(userID string, eventType string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sentEvent{userID: userID, eventType: eventType})
}

func (r *recordingRealtime) count(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

// fakeClock - управляемые часы для проверки дневной квоты
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type matchingEnv struct {
	db       *gorm.DB
	svc      services.MatchingService
	clock    *fakeClock
	mailer   *email.LogProvider
	realtime *recordingRealtime
}

func newMatchingEnv(t *testing.T, quota services.QuotaConfig) *matchingEnv {
	t.Helper()
	db := helpers.NewTestDB(t)

	templates, err := email.NewDefaultTemplates()
	require.NoError(t, err)

	env := &matchingEnv{
		db:       db,
		clock:    &fakeClock{now: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)},
		mailer:   email.NewLogProvider(templates),
		realtime: &recordingRealtime{},
	}
	env.svc = services.NewMatchingService(
		repositories.NewUserRepository(),
		repositories.NewProfileRepository(),
		repositories.NewSwipeRepository(),
		repositories.NewMatchRepository(),
		algorithms.NewScorer(algorithms.DefaultPlaceholders),
		services.NewMatchNotifier(env.mailer, env.realtime),
		quota,
		env.clock.Now,
	)
	return env
}

func (e *matchingEnv) swipe(t *testing.T, actorID, targetID string, dir models.SwipeDirection) *dto.SwipeResponse {
	t.Helper()
	resp, err := e.svc.Swipe(e.db, actorID, &dto.SwipeRequest{TargetID: targetID, Direction: string(dir)})
	require.NoError(t, err)
	return resp
}

func appCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestSwipe_MutualRightSwipesCreateMatch(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)

	first := env.swipe(t, investor.ID, startup.ID, models.SwipeRight)
	assert.Equal(t, 82, first.ScoreAtSwipe)
	assert.False(t, first.IsMatch)
	assert.Nil(t, first.Match)

	second := env.swipe(t, startup.ID, investor.ID, models.SwipeRight)
	require.True(t, second.IsMatch)
	require.NotNil(t, second.Match)

	m := second.Match
	assert.Equal(t, models.MatchStatusMatched, m.Status)
	assert.Equal(t, 82, m.StartupScore)
	assert.Equal(t, 82, m.InvestorScore)
	assert.Equal(t, 82.0, m.MutualScore)
	assert.Equal(t, startup.ID, m.Startup.UserID)
	assert.Equal(t, investor.ID, m.Investor.UserID)
	assert.NotNil(t, m.Startup.Startup)
	assert.NotNil(t, m.Investor.Investor)

	t.Run("breakdown is frozen on the swipe", func(t *testing.T) {
		var swipe models.Swipe
		require.NoError(t, env.db.First(&swipe, "id = ?", first.SwipeID).Error)
		assert.Equal(t, 82, swipe.ScoreAtSwipe)
		assert.Contains(t, string(swipe.Breakdown), `"check_size":0.5`)
	})

	t.Run("both parties are notified", func(t *testing.T) {
		sent := env.mailer.Sent()
		require.Len(t, sent, 2)
		recipients := []string{sent[0].To[0], sent[1].To[0]}
		assert.ElementsMatch(t, []string{startup.Email, investor.Email}, recipients)
		assert.Contains(t, sent[0].HTMLBody, "82%")
		assert.Equal(t, 2, env.realtime.count(services.EventMatchCreated))
	})
}

func TestSwipe_NoMatchWithoutReciprocalRight(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)

	env.swipe(t, investor.ID, startup.ID, models.SwipeLeft)
	resp := env.swipe(t, startup.ID, investor.ID, models.SwipeRight)
	assert.False(t, resp.IsMatch)

	var count int64
	require.NoError(t, env.db.Model(&models.Match{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, env.mailer.Sent())
}

func TestSwipe_DuplicateRejected(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)

	env.swipe(t, investor.ID, startup.ID, models.SwipeLeft)

	_, err := env.svc.Swipe(env.db, investor.ID, &dto.SwipeRequest{TargetID: startup.ID, Direction: "right"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadySwiped)
	assert.Equal(t, apperrors.CodeAlreadySwiped, appCode(t, err))
}

func TestSwipe_Preconditions(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	investor, _ := helpers.CreateInvestor(t, env.db)
	otherInvestor, _ := helpers.CreateInvestor(t, env.db)
	inactive, _ := helpers.CreateStartup(t, env.db)
	require.NoError(t, repositories.NewUserRepository().SetActive(env.db, inactive.ID, false))
	noProfile := helpers.CreateUser(t, env.db, models.UserTypeStartup)

	cases := []struct {
		name     string
		actorID  string
		targetID string
		dir      string
		want     error
	}{
		{"self", investor.ID, investor.ID, "right", apperrors.ErrTargetNotFound},
		{"same type", investor.ID, otherInvestor.ID, "right", apperrors.ErrTargetNotFound},
		{"inactive target", investor.ID, inactive.ID, "right", apperrors.ErrTargetNotFound},
		{"unknown target", investor.ID, "00000000-0000-0000-0000-000000000000", "right", apperrors.ErrTargetNotFound},
		{"target without profile", investor.ID, noProfile.ID, "right", apperrors.ErrTargetNotFound},
		{"actor without profile", noProfile.ID, investor.ID, "right", apperrors.ErrProfileNotFound},
		{"unknown actor", "00000000-0000-0000-0000-000000000000", investor.ID, "right", apperrors.ErrUserNotFound},
		{"inactive actor", inactive.ID, investor.ID, "right", apperrors.ErrUserInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Swipe(env.db, tc.actorID, &dto.SwipeRequest{TargetID: tc.targetID, Direction: tc.dir})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("invalid direction", func(t *testing.T) {
		_, err := env.svc.Swipe(env.db, investor.ID, &dto.SwipeRequest{TargetID: inactive.ID, Direction: "up"})
		assert.Equal(t, apperrors.CodeValidationFailed, appCode(t, err))
	})

	var swipes int64
	require.NoError(t, env.db.Model(&models.Swipe{}).Count(&swipes).Error)
	assert.Zero(t, swipes)
}

func TestSwipe_DailyQuota(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)

	investors := make([]*models.User, 0, 22)
	for i := 0; i < 22; i++ {
		u, _ := helpers.CreateInvestor(t, env.db)
		investors = append(investors, u)
	}

	for i := 0; i < services.DefaultStartupDailySwipes; i++ {
		env.swipe(t, startup.ID, investors[i].ID, models.SwipeLeft)
	}

	_, err := env.svc.Swipe(env.db, startup.ID, &dto.SwipeRequest{TargetID: investors[20].ID, Direction: "left"})
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)

	var count int64
	require.NoError(t, env.db.Model(&models.Swipe{}).Where("actor_user_id = ?", startup.ID).Count(&count).Error)
	assert.EqualValues(t, 20, count, "rejected swipe must not be written")

	t.Run("feed is blocked too", func(t *testing.T) {
		_, err := env.svc.GetFeed(env.db, startup.ID, nil)
		assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)
	})

	t.Run("quota resets at midnight", func(t *testing.T) {
		env.clock.Advance(9 * time.Hour) // 00:00 следующего дня
		resp := env.swipe(t, startup.ID, investors[20].ID, models.SwipeLeft)
		assert.NotEmpty(t, resp.SwipeID)
	})
}

func TestSwipe_QuotaIsConfigurable(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{InvestorDaily: 1})
	investor, _ := helpers.CreateInvestor(t, env.db)
	a, _ := helpers.CreateStartup(t, env.db)
	b, _ := helpers.CreateStartup(t, env.db)

	env.swipe(t, investor.ID, a.ID, models.SwipeRight)
	_, err := env.svc.Swipe(env.db, investor.ID, &dto.SwipeRequest{TargetID: b.ID, Direction: "right"})
	assert.ErrorIs(t, err, apperrors.ErrQuotaExceeded)

	stats, err := env.svc.GetSwipeStats(env.db, investor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.SwipesToday)
	assert.Equal(t, 1, stats.DailyLimit)
	assert.Zero(t, stats.Remaining)
}

func TestSwipe_ConcurrentMutualSwipesCreateOneMatch(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})

	for round := 0; round < 5; round++ {
		startup, _ := helpers.CreateStartup(t, env.db)
		investor, _ := helpers.CreateInvestor(t, env.db)

		var wg sync.WaitGroup
		results := make([]*dto.SwipeResponse, 2)
		errs := make([]error, 2)
		pairs := [][2]string{{startup.ID, investor.ID}, {investor.ID, startup.ID}}

		for i, p := range pairs {
			wg.Add(1)
			go func(i int, actor, target string) {
				defer wg.Done()
				results[i], errs[i] = env.svc.Swipe(env.db, actor, &dto.SwipeRequest{TargetID: target, Direction: "right"})
			}(i, p[0], p[1])
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])

		var matches []models.Match
		require.NoError(t, env.db.Where("startup_user_id = ? AND investor_user_id = ?", startup.ID, investor.ID).Find(&matches).Error)
		require.Len(t, matches, 1)

		matched := 0
		for _, r := range results {
			if r.IsMatch {
				matched++
				assert.Equal(t, matches[0].ID, r.Match.ID)
			}
		}
		assert.GreaterOrEqual(t, matched, 1)
	}
}

func TestSwipe_ExistingMatchIsReturned(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)

	existing := &models.Match{
		StartupUserID:  startup.ID,
		InvestorUserID: investor.ID,
		StartupScore:   70,
		InvestorScore:  70,
		MutualScore:    70,
		Status:         models.MatchStatusMatched,
	}
	require.NoError(t, env.db.Create(existing).Error)

	env.swipe(t, investor.ID, startup.ID, models.SwipeRight)
	resp := env.swipe(t, startup.ID, investor.ID, models.SwipeRight)

	require.True(t, resp.IsMatch)
	assert.Equal(t, existing.ID, resp.Match.ID)
	assert.Equal(t, 70, resp.Match.StartupScore)
	assert.Empty(t, env.mailer.Sent(), "no notification for a match that already existed")
}

func TestGetFeed_RankingAndExclusions(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	investor, _ := helpers.CreateInvestor(t, env.db)

	top1, _ := helpers.CreateStartup(t, env.db)
	top2, _ := helpers.CreateStartup(t, env.db)
	laterStage, _ := helpers.CreateStartup(t, env.db, func(p *models.StartupProfile) {
		p.Stage = models.StageSeriesB
	})
	offSector, _ := helpers.CreateStartup(t, env.db, func(p *models.StartupProfile) {
		p.Sectors = []string{"biotech"}
	})
	swiped, _ := helpers.CreateStartup(t, env.db)
	inactive, _ := helpers.CreateStartup(t, env.db)
	require.NoError(t, repositories.NewUserRepository().SetActive(env.db, inactive.ID, false))
	helpers.CreateUser(t, env.db, models.UserTypeStartup) // без профиля
	helpers.CreateInvestor(t, env.db)

	env.swipe(t, investor.ID, swiped.ID, models.SwipeLeft)

	feed, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{})
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultFeedLimit, feed.Limit)
	require.Equal(t, 4, feed.Total)

	tied := []string{top1.ID, top2.ID}
	sort.Strings(tied)

	ids := make([]string, 0, len(feed.Candidates))
	scores := make([]int, 0, len(feed.Candidates))
	for _, c := range feed.Candidates {
		ids = append(ids, c.UserID)
		scores = append(scores, c.Score)
		assert.NotNil(t, c.Startup)
		assert.Nil(t, c.Investor)
	}
	assert.Equal(t, []string{tied[0], tied[1], laterStage.ID, offSector.ID}, ids)
	assert.Equal(t, []int{82, 82, 68, 64}, scores)

	t.Run("limit truncates after sorting", func(t *testing.T) {
		feed, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{Limit: 1})
		require.NoError(t, err)
		require.Len(t, feed.Candidates, 1)
		assert.Equal(t, tied[0], feed.Candidates[0].UserID)
		assert.Equal(t, 4, feed.Total)
	})

	t.Run("limit out of range", func(t *testing.T) {
		for _, limit := range []int{-1, 51} {
			_, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{Limit: limit})
			assert.Equal(t, apperrors.CodeValidationFailed, appCode(t, err), "limit %d", limit)
		}
	})

	t.Run("sector filter is case-insensitive", func(t *testing.T) {
		feed, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{Sectors: []string{"BioTech"}})
		require.NoError(t, err)
		require.Len(t, feed.Candidates, 1)
		assert.Equal(t, offSector.ID, feed.Candidates[0].UserID)
	})

	t.Run("stage filter", func(t *testing.T) {
		feed, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{Stage: "series-b"})
		require.NoError(t, err)
		require.Len(t, feed.Candidates, 1)
		assert.Equal(t, laterStage.ID, feed.Candidates[0].UserID)
	})

	t.Run("read-only", func(t *testing.T) {
		var count int64
		require.NoError(t, env.db.Model(&models.Swipe{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func TestGetFeed_ValuationFilterAppliesToStartups(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	investor, _ := helpers.CreateInvestor(t, env.db)
	cheap, _ := helpers.CreateStartup(t, env.db, func(p *models.StartupProfile) {
		p.Valuation = helpers.Money(2_000_000)
	})
	helpers.CreateStartup(t, env.db, func(p *models.StartupProfile) {
		p.Valuation = helpers.Money(20_000_000)
	})
	helpers.CreateStartup(t, env.db) // без оценки

	maxValuation := 5_000_000.0
	feed, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{MaxValuation: &maxValuation})
	require.NoError(t, err)
	require.Len(t, feed.Candidates, 1)
	assert.Equal(t, cheap.ID, feed.Candidates[0].UserID)

	t.Run("min above max", func(t *testing.T) {
		minValuation := 10_000_000.0
		_, err := env.svc.GetFeed(env.db, investor.ID, &dto.FeedFilters{MinValuation: &minValuation, MaxValuation: &maxValuation})
		assert.Equal(t, apperrors.CodeValidationFailed, appCode(t, err))
	})
}

func TestGetFeed_StartupSeesInvestors(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	seedFund, _ := helpers.CreateInvestor(t, env.db)
	growthFund, _ := helpers.CreateInvestor(t, env.db, func(p *models.InvestorProfile) {
		p.StagePreferences = []string{"series-c", "growth"}
	})

	feed, err := env.svc.GetFeed(env.db, startup.ID, nil)
	require.NoError(t, err)
	require.Len(t, feed.Candidates, 2)
	assert.Equal(t, seedFund.ID, feed.Candidates[0].UserID)
	assert.NotNil(t, feed.Candidates[0].Investor)

	feed, err = env.svc.GetFeed(env.db, startup.ID, &dto.FeedFilters{Stage: "growth"})
	require.NoError(t, err)
	require.Len(t, feed.Candidates, 1)
	assert.Equal(t, growthFund.ID, feed.Candidates[0].UserID)
}

func TestGetFeed_RequiresProfile(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	user := helpers.CreateUser(t, env.db, models.UserTypeInvestor)

	_, err := env.svc.GetFeed(env.db, user.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestMatches_ListAndWithdraw(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)
	outsider, _ := helpers.CreateInvestor(t, env.db)

	env.swipe(t, investor.ID, startup.ID, models.SwipeRight)
	match := env.swipe(t, startup.ID, investor.ID, models.SwipeRight).Match

	list, err := env.svc.GetMatches(env.db, investor.ID)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, match.ID, list.Matches[0].ID)
	assert.Equal(t, startup.ID, list.Matches[0].Startup.UserID)

	_, err = env.svc.WithdrawMatch(env.db, outsider.ID, match.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotMatchParticipant)

	_, err = env.svc.WithdrawMatch(env.db, investor.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrMatchNotFound)

	withdrawn, err := env.svc.WithdrawMatch(env.db, startup.ID, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusRejected, withdrawn.Status)

	_, err = env.svc.WithdrawMatch(env.db, investor.ID, match.ID)
	assert.Equal(t, apperrors.CodeInvalidStatus, appCode(t, err))

	list, err = env.svc.GetMatches(env.db, investor.ID)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
	assert.NotNil(t, list.Matches)
}

func TestGetCompatibility(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)

	fromStartup, err := env.svc.GetCompatibility(env.db, startup.ID, investor.ID)
	require.NoError(t, err)
	fromInvestor, err := env.svc.GetCompatibility(env.db, investor.ID, startup.ID)
	require.NoError(t, err)

	assert.Equal(t, 82, fromStartup.Score)
	assert.Equal(t, fromStartup.Score, fromInvestor.Score)
	assert.Equal(t, algorithms.DefaultWeights, fromStartup.Weights)
	assert.Equal(t, 0.8, fromStartup.Factors.Geography)

	_, err = env.svc.GetCompatibility(env.db, startup.ID, startup.ID)
	assert.ErrorIs(t, err, apperrors.ErrTargetNotFound)
}

func TestGetSwipeStats(t *testing.T) {
	env := newMatchingEnv(t, services.QuotaConfig{})
	startup, _ := helpers.CreateStartup(t, env.db)
	investor, _ := helpers.CreateInvestor(t, env.db)

	env.swipe(t, investor.ID, startup.ID, models.SwipeRight)
	env.swipe(t, startup.ID, investor.ID, models.SwipeRight)

	stats, err := env.svc.GetSwipeStats(env.db, startup.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.SwipesToday)
	assert.Equal(t, services.DefaultStartupDailySwipes, stats.DailyLimit)
	assert.Equal(t, services.DefaultStartupDailySwipes-1, stats.Remaining)
	assert.EqualValues(t, 1, stats.TotalMatches)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), stats.ResetsAt)

	_, err = env.svc.GetSwipeStats(env.db, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
