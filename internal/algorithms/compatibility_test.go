package algorithms

import (
	"testing"

	"dealflow_backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func seedFintech() *models.StartupProfile {
	return &models.StartupProfile{
		Name:          "Ledgerly",
		Sectors:       []string{"fintech"},
		Stage:         models.StageSeed,
		LastRoundSize: money(500_000),
		ARR:           money(600_000),
	}
}

func seedInvestor() *models.InvestorProfile {
	return &models.InvestorProfile{
		Name:             "Northwind Ventures",
		Type:             models.InvestorTypeVC,
		CheckSizeMin:     decimal.NewFromInt(250_000),
		CheckSizeMax:     decimal.NewFromInt(2_000_000),
		StagePreferences: []string{"seed"},
		SectorFocus:      []string{"fintech", "ai"},
	}
}

func TestScore_ReferenceExample(t *testing.T) {
	scorer := NewScorer(DefaultPlaceholders)

	t.Run("valuation absent gives neutral check size", func(t *testing.T) {
		b := scorer.Score(seedFintech(), seedInvestor())

		assert.Equal(t, 1.0, b.Factors.Stage)
		assert.Equal(t, 1.0, b.Factors.Sector)
		assert.Equal(t, 0.5, b.Factors.CheckSize)
		assert.Equal(t, 1.0, b.Factors.KPI)
		assert.Equal(t, 0.5, b.Factors.ValueAdd)
		// 20 + 18 + 7.5 + 8 + 12 + 4 + 4.2 + 3 + 4.8 = 81.5
		assert.Equal(t, 82, b.Total)
	})

	t.Run("valuation present gives full check size", func(t *testing.T) {
		startup := seedFintech()
		startup.Valuation = money(5_000_000)

		b := scorer.Score(startup, seedInvestor())
		assert.Equal(t, 1.0, b.Factors.CheckSize)
		assert.Equal(t, 89, b.Total)
	})
}

func TestScore_Factors(t *testing.T) {
	scorer := NewScorer(DefaultPlaceholders)

	t.Run("stage mismatch", func(t *testing.T) {
		startup := seedFintech()
		startup.Stage = models.StageSeriesB
		b := scorer.Score(startup, seedInvestor())
		assert.Equal(t, 0.3, b.Factors.Stage)
	})

	t.Run("sector overlap is case-insensitive and partial", func(t *testing.T) {
		startup := seedFintech()
		startup.Sectors = []string{"FinTech", "biotech"}
		b := scorer.Score(startup, seedInvestor())
		assert.Equal(t, 0.5, b.Factors.Sector)
	})

	t.Run("empty sectors score zero", func(t *testing.T) {
		startup := seedFintech()
		startup.Sectors = nil
		b := scorer.Score(startup, seedInvestor())
		assert.Equal(t, 0.0, b.Factors.Sector)
	})

	t.Run("round below minimum falls off linearly", func(t *testing.T) {
		startup := seedFintech()
		startup.Valuation = money(1_000_000)
		startup.LastRoundSize = money(125_000)
		b := scorer.Score(startup, seedInvestor())
		assert.InDelta(t, 0.5, b.Factors.CheckSize, 1e-9)
	})

	t.Run("round above maximum falls off linearly", func(t *testing.T) {
		startup := seedFintech()
		startup.Valuation = money(20_000_000)
		startup.LastRoundSize = money(3_000_000)
		b := scorer.Score(startup, seedInvestor())
		assert.InDelta(t, 0.5, b.Factors.CheckSize, 1e-9)
	})

	t.Run("round far above maximum floors at zero", func(t *testing.T) {
		startup := seedFintech()
		startup.Valuation = money(90_000_000)
		startup.LastRoundSize = money(10_000_000)
		b := scorer.Score(startup, seedInvestor())
		assert.Equal(t, 0.0, b.Factors.CheckSize)
	})

	t.Run("kpi tiers", func(t *testing.T) {
		cases := []struct {
			arr  decimal.NullDecimal
			want float64
		}{
			{decimal.NullDecimal{}, 0.5},
			{money(0), 0.5},
			{money(49_999), 0.5},
			{money(50_000), 0.6},
			{money(100_000), 0.8},
			{money(499_999), 0.8},
			{money(500_000), 1.0},
		}
		for _, c := range cases {
			startup := seedFintech()
			startup.ARR = c.arr
			assert.Equal(t, c.want, scorer.Score(startup, seedInvestor()).Factors.KPI, "arr=%v", c.arr)
		}
	})

	t.Run("value add needs offered", func(t *testing.T) {
		startup := seedFintech()
		startup.ValueAddNeeds = []string{"hiring", "go-to-market"}
		investor := seedInvestor()
		investor.ValueAddOffered = []string{"go-to-market"}
		b := scorer.Score(startup, investor)
		assert.Equal(t, 1.0, b.Factors.ValueAdd)
	})
}

func TestScore_Bounds(t *testing.T) {
	scorer := NewScorer(DefaultPlaceholders)

	// худший вариант: ничего не совпадает
	worst := scorer.Score(&models.StartupProfile{Stage: models.StageGrowth}, &models.InvestorProfile{})
	assert.GreaterOrEqual(t, worst.Total, 0)

	best := NewScorer(Placeholders{Geography: 1, Culture: 1, Reputation: 1, Timing: 1})
	startup := seedFintech()
	startup.Valuation = money(4_000_000)
	startup.ValueAddNeeds = []string{"hiring"}
	investor := seedInvestor()
	investor.ValueAddOffered = []string{"hiring"}
	assert.Equal(t, 100, best.Score(startup, investor).Total)
}

func TestScore_Deterministic(t *testing.T) {
	scorer := NewScorer(DefaultPlaceholders)
	first := scorer.Score(seedFintech(), seedInvestor())
	for i := 0; i < 10; i++ {
		require.Equal(t, first, scorer.Score(seedFintech(), seedInvestor()))
	}
}

func TestNewScorer_ClampsPlaceholders(t *testing.T) {
	s := NewScorer(Placeholders{Geography: 2, Culture: -1, Reputation: 0.5, Timing: 1})
	b := s.Score(seedFintech(), seedInvestor())
	assert.Equal(t, 1.0, b.Factors.Geography)
	assert.Equal(t, 0.0, b.Factors.Culture)
	assert.Equal(t, 0.5, b.Factors.Reputation)
}

func TestMutualScore(t *testing.T) {
	assert.Equal(t, 60.0, MutualScore(80, 45))
	assert.Equal(t, 100.0, MutualScore(100, 100))
	assert.Equal(t, 0.0, MutualScore(0, 90))
	assert.Equal(t, 70.71, MutualScore(100, 50))
}
