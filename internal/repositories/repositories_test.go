package repositories_test

import (
	"testing"
	"time"

	"dealflow_backend/internal/models"
	"dealflow_backend/internal/repositories"
	"dealflow_backend/test/helpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewUserRepository()

	user := &models.User{Email: "founder@acme.dev", UserType: models.UserTypeStartup, IsActive: true}
	require.NoError(t, repo.Create(db, user))
	assert.NotEmpty(t, user.ID)

	t.Run("duplicate email", func(t *testing.T) {
		dup := &models.User{Email: "founder@acme.dev", UserType: models.UserTypeInvestor}
		assert.ErrorIs(t, repo.Create(db, dup), repositories.ErrUserAlreadyExists)
	})

	t.Run("find", func(t *testing.T) {
		found, err := repo.FindByEmail(db, "founder@acme.dev")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		_, err = repo.FindByID(db, "missing")
		assert.ErrorIs(t, err, repositories.ErrUserNotFound)

		byID, err := repo.FindByIDs(db, []string{user.ID, "missing"})
		require.NoError(t, err)
		assert.Len(t, byID, 1)
	})

	t.Run("deactivate", func(t *testing.T) {
		require.NoError(t, repo.SetActive(db, user.ID, false))
		found, err := repo.FindByID(db, user.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)

		assert.ErrorIs(t, repo.SetActive(db, "missing", false), repositories.ErrUserNotFound)
	})
}

func TestSwipeRepository(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewSwipeRepository()

	startup, _ := helpers.CreateStartup(t, db)
	investor, _ := helpers.CreateInvestor(t, db)
	now := time.Now().UTC()

	require.NoError(t, repo.Create(db, &models.Swipe{
		ActorUserID:  investor.ID,
		TargetUserID: startup.ID,
		Direction:    models.SwipeRight,
		ScoreAtSwipe: 82,
		CreatedAt:    now,
	}))

	t.Run("unique per actor and target", func(t *testing.T) {
		err := repo.Create(db, &models.Swipe{
			ActorUserID:  investor.ID,
			TargetUserID: startup.ID,
			Direction:    models.SwipeLeft,
			CreatedAt:    now,
		})
		assert.ErrorIs(t, err, repositories.ErrSwipeAlreadyExists)
	})

	t.Run("exists is directional", func(t *testing.T) {
		ok, err := repo.Exists(db, investor.ID, startup.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(db, startup.ID, investor.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("reciprocal right", func(t *testing.T) {
		swipe, err := repo.FindReciprocalRight(db, startup.ID, investor.ID)
		require.NoError(t, err)
		assert.Equal(t, investor.ID, swipe.ActorUserID)

		_, err = repo.FindReciprocalRight(db, investor.ID, startup.ID)
		assert.ErrorIs(t, err, repositories.ErrSwipeNotFound)
	})

	t.Run("count since", func(t *testing.T) {
		n, err := repo.CountSince(db, investor.ID, now.Add(-time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.CountSince(db, investor.ID, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestMatchRepository(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewMatchRepository()

	startup, _ := helpers.CreateStartup(t, db)
	investorA, _ := helpers.CreateInvestor(t, db)
	investorB, _ := helpers.CreateInvestor(t, db)

	older := &models.Match{StartupUserID: startup.ID, InvestorUserID: investorA.ID, StartupScore: 80, InvestorScore: 45, MutualScore: 60, Status: models.MatchStatusMatched}
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Create(db, older))

	newer := &models.Match{StartupUserID: startup.ID, InvestorUserID: investorB.ID, StartupScore: 70, InvestorScore: 70, MutualScore: 70, Status: models.MatchStatusMatched}
	require.NoError(t, repo.Create(db, newer))

	t.Run("pair is unique", func(t *testing.T) {
		dup := &models.Match{StartupUserID: startup.ID, InvestorUserID: investorA.ID, Status: models.MatchStatusMatched}
		assert.ErrorIs(t, repo.Create(db, dup), repositories.ErrMatchAlreadyExists)

		found, err := repo.FindByPair(db, startup.ID, investorA.ID)
		require.NoError(t, err)
		assert.Equal(t, older.ID, found.ID)
		assert.Equal(t, 60.0, found.MutualScore)
	})

	t.Run("newest first", func(t *testing.T) {
		matches, err := repo.FindForUser(db, startup.ID, []models.MatchStatus{models.MatchStatusMatched})
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, newer.ID, matches[0].ID)
		assert.Equal(t, older.ID, matches[1].ID)
	})

	t.Run("status compare and set", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(db, older.ID, models.MatchStatusMatched, models.MatchStatusRejected))
		err := repo.UpdateStatus(db, older.ID, models.MatchStatusMatched, models.MatchStatusConnected)
		assert.ErrorIs(t, err, repositories.ErrMatchStatusConflict)

		n, err := repo.CountForUser(db, startup.ID, []models.MatchStatus{models.MatchStatusMatched, models.MatchStatusConnected})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestProfileRepository_Candidates(t *testing.T) {
	db := helpers.NewTestDB(t)
	profiles := repositories.NewProfileRepository()
	swipes := repositories.NewSwipeRepository()
	users := repositories.NewUserRepository()

	investor, _ := helpers.CreateInvestor(t, db)
	seed, _ := helpers.CreateStartup(t, db, func(p *models.StartupProfile) {
		p.Valuation = helpers.Money(4_000_000)
	})
	seriesA, _ := helpers.CreateStartup(t, db, func(p *models.StartupProfile) {
		p.Stage = models.StageSeriesA
		p.Valuation = helpers.Money(20_000_000)
	})
	swiped, _ := helpers.CreateStartup(t, db)
	inactive, _ := helpers.CreateStartup(t, db)
	helpers.CreateUser(t, db, models.UserTypeStartup) // без профиля

	require.NoError(t, users.SetActive(db, inactive.ID, false))
	require.NoError(t, swipes.Create(db, &models.Swipe{
		ActorUserID:  investor.ID,
		TargetUserID: swiped.ID,
		Direction:    models.SwipeLeft,
		CreatedAt:    time.Now().UTC(),
	}))

	ids := func(cs []repositories.StartupCandidate) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.User.ID)
		}
		return out
	}

	t.Run("excludes swiped, inactive and profileless", func(t *testing.T) {
		cs, err := profiles.FindStartupCandidates(db, investor.ID, repositories.CandidateFilter{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{seed.ID, seriesA.ID}, ids(cs))
		for _, c := range cs {
			assert.NotNil(t, c.Profile)
			assert.Equal(t, c.User.ID, c.Profile.UserID)
		}
	})

	t.Run("stage filter", func(t *testing.T) {
		cs, err := profiles.FindStartupCandidates(db, investor.ID, repositories.CandidateFilter{Stage: models.StageSeriesA})
		require.NoError(t, err)
		assert.Equal(t, []string{seriesA.ID}, ids(cs))
	})

	t.Run("valuation range", func(t *testing.T) {
		hi := decimal.NewFromInt(10_000_000)
		cs, err := profiles.FindStartupCandidates(db, investor.ID, repositories.CandidateFilter{MaxValuation: &hi})
		require.NoError(t, err)
		assert.Equal(t, []string{seed.ID}, ids(cs))

		lo := decimal.NewFromInt(10_000_000)
		cs, err = profiles.FindStartupCandidates(db, investor.ID, repositories.CandidateFilter{MinValuation: &lo})
		require.NoError(t, err)
		assert.Equal(t, []string{seriesA.ID}, ids(cs))
	})

	t.Run("investor candidates for a startup", func(t *testing.T) {
		cs, err := profiles.FindInvestorCandidates(db, seed.ID, repositories.CandidateFilter{})
		require.NoError(t, err)
		require.Len(t, cs, 1)
		assert.Equal(t, investor.ID, cs[0].User.ID)
	})
}

func TestConversationRepository(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := repositories.NewConversationRepository()

	startup, _ := helpers.CreateStartup(t, db)
	investor, _ := helpers.CreateInvestor(t, db)

	conv := &models.Conversation{MatchID: "match-1", StartupUserID: startup.ID, InvestorUserID: investor.ID}
	require.NoError(t, repo.Create(db, conv))
	assert.ErrorIs(t, repo.Create(db, &models.Conversation{MatchID: "match-1", StartupUserID: startup.ID, InvestorUserID: investor.ID}),
		repositories.ErrConversationAlreadyExists)

	for _, text := range []string{"hi", "hello", "let's talk"} {
		require.NoError(t, repo.CreateMessage(db, &models.Message{ConversationID: conv.ID, SenderID: startup.ID, Content: text}))
	}

	msgs, total, err := repo.ListMessages(db, conv.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, msgs, 2)

	unread, err := repo.CountUnread(db, conv.ID, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	n, err := repo.MarkRead(db, conv.ID, investor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// свои сообщения отправитель не "читает"
	unread, err = repo.CountUnread(db, conv.ID, startup.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}
