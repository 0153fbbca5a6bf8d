package algorithms

import (
	"math"
	"strings"

	"dealflow_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Weights - вес каждого фактора в итоговом score (сумма 100)
type Weights struct {
	Stage      float64 `json:"stage"`
	Sector     float64 `json:"sector"`
	CheckSize  float64 `json:"check_size"`
	Geography  float64 `json:"geography"`
	KPI        float64 `json:"kpi"`
	ValueAdd   float64 `json:"value_add"`
	Culture    float64 `json:"culture"`
	Reputation float64 `json:"reputation"`
	Timing     float64 `json:"timing"`
}

var DefaultWeights = Weights{
	Stage:      20,
	Sector:     18,
	CheckSize:  15,
	Geography:  10,
	KPI:        12,
	ValueAdd:   8,
	Culture:    6,
	Reputation: 5,
	Timing:     6,
}

// Placeholders - фиксированные значения факторов, для которых пока нет источника данных
type Placeholders struct {
	Geography  float64
	Culture    float64
	Reputation float64
	Timing     float64
}

var DefaultPlaceholders = Placeholders{
	Geography:  0.8,
	Culture:    0.7,
	Reputation: 0.6,
	Timing:     0.8,
}

// Factors - значения факторов в диапазоне [0,1]
type Factors struct {
	Stage      float64 `json:"stage"`
	Sector     float64 `json:"sector"`
	CheckSize  float64 `json:"check_size"`
	Geography  float64 `json:"geography"`
	KPI        float64 `json:"kpi"`
	ValueAdd   float64 `json:"value_add"`
	Culture    float64 `json:"culture"`
	Reputation float64 `json:"reputation"`
	Timing     float64 `json:"timing"`
}

type Breakdown struct {
	Factors Factors  `json:"factors"`
	Total   int      `json:"total"`
	Reasons []string `json:"reasons,omitempty"`
}

// Scorer не меняется после создания, безопасен для параллельного использования
type Scorer struct {
	weights      Weights
	placeholders Placeholders
}

func NewScorer(p Placeholders) *Scorer {
	return &Scorer{
		weights: DefaultWeights,
		placeholders: Placeholders{
			Geography:  clamp01(p.Geography),
			Culture:    clamp01(p.Culture),
			Reputation: clamp01(p.Reputation),
			Timing:     clamp01(p.Timing),
		},
	}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score считает совместимость стартапа и инвестора (0-100).
// Результат не зависит от того, кто из них смотрит ленту.
func (s *Scorer) Score(startup *models.StartupProfile, investor *models.InvestorProfile) Breakdown {
	var f Factors
	var reasons []string

	// Stage (20)
	f.Stage = 0.3
	if investor.PrefersStage(startup.Stage) {
		f.Stage = 1.0
		reasons = append(reasons, "Stage matches investor preferences")
	}

	// Sector (18)
	f.Sector = sectorOverlap(startup.Sectors, investor.SectorFocus)
	if f.Sector > 0 {
		reasons = append(reasons, "Matching sectors")
	}

	// Check size (15)
	f.CheckSize = checkSizeFit(startup, investor)
	if f.CheckSize == 1.0 {
		reasons = append(reasons, "Round size within check range")
	}

	// KPI (12)
	f.KPI = kpiStrength(startup.ARR)
	if f.KPI >= 0.8 {
		reasons = append(reasons, "Strong revenue traction")
	}

	// Value-add (8)
	f.ValueAdd = 0.5
	if containsAny(investor.ValueAddOffered, startup.ValueAddNeeds) {
		f.ValueAdd = 1.0
		reasons = append(reasons, "Investor offers needed support")
	}

	f.Geography = s.placeholders.Geography
	f.Culture = s.placeholders.Culture
	f.Reputation = s.placeholders.Reputation
	f.Timing = s.placeholders.Timing

	w := s.weights
	total := f.Stage*w.Stage +
		f.Sector*w.Sector +
		f.CheckSize*w.CheckSize +
		f.Geography*w.Geography +
		f.KPI*w.KPI +
		f.ValueAdd*w.ValueAdd +
		f.Culture*w.Culture +
		f.Reputation*w.Reputation +
		f.Timing*w.Timing

	return Breakdown{
		Factors: f,
		Total:   roundScore(total),
		Reasons: reasons,
	}
}

// MutualScore - геометрическое среднее двух score, 2 знака после запятой
func MutualScore(startupScore, investorScore int) float64 {
	if startupScore <= 0 || investorScore <= 0 {
		return 0
	}
	m := math.Sqrt(float64(startupScore) * float64(investorScore))
	return math.Round(m*100) / 100
}

// roundScore сначала убирает float-шум, чтобы x.5 округлялось от нуля
func roundScore(total float64) int {
	total = math.Round(total*1e6) / 1e6
	r := int(math.Round(total))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}

func sectorOverlap(sectors, focus []string) float64 {
	focusSet := make(map[string]struct{}, len(focus))
	for _, f := range focus {
		focusSet[strings.ToLower(strings.TrimSpace(f))] = struct{}{}
	}

	matches := 0
	for _, s := range sectors {
		if _, ok := focusSet[strings.ToLower(strings.TrimSpace(s))]; ok {
			matches++
		}
	}

	denom := len(sectors)
	if denom < 1 {
		denom = 1
	}
	return math.Min(float64(matches)/float64(denom), 1.0)
}

func checkSizeFit(startup *models.StartupProfile, investor *models.InvestorProfile) float64 {
	if absent(startup.LastRoundSize) || absent(startup.Valuation) {
		return 0.5
	}

	size := startup.LastRoundSize.Decimal.InexactFloat64()
	lo := investor.CheckSizeMin.InexactFloat64()
	hi := investor.CheckSizeMax.InexactFloat64()

	switch {
	case size >= lo && size <= hi:
		return 1.0
	case size < lo:
		return math.Max(0, 1-(lo-size)/lo)
	case hi <= 0:
		return 0
	default:
		return math.Max(0, 1-(size-hi)/hi)
	}
}

func kpiStrength(arr decimal.NullDecimal) float64 {
	if absent(arr) {
		return 0.5
	}
	v := arr.Decimal.InexactFloat64()
	switch {
	case v >= 500_000:
		return 1.0
	case v >= 100_000:
		return 0.8
	case v >= 50_000:
		return 0.6
	default:
		return 0.5
	}
}

// absent: NULL и 0 считаются отсутствующими значениями
func absent(d decimal.NullDecimal) bool {
	return !d.Valid || d.Decimal.IsZero()
}

func containsAny(offered, needs []string) bool {
	set := make(map[string]struct{}, len(offered))
	for _, o := range offered {
		set[o] = struct{}{}
	}
	for _, n := range needs {
		if _, ok := set[n]; ok {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
