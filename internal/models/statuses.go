package models

type UserType string
type StartupStage string
type InvestorType string
type SwipeDirection string
type MatchStatus string

const (
	UserTypeStartup  UserType = "startup"
	UserTypeInvestor UserType = "investor"

	StagePreSeed StartupStage = "pre-seed"
	StageSeed    StartupStage = "seed"
	StageSeriesA StartupStage = "series-a"
	StageSeriesB StartupStage = "series-b"
	StageSeriesC StartupStage = "series-c"
	StageGrowth  StartupStage = "growth"

	InvestorTypeAngel        InvestorType = "angel"
	InvestorTypeVC           InvestorType = "vc"
	InvestorTypePE           InvestorType = "pe"
	InvestorTypeFamilyOffice InvestorType = "family-office"
	InvestorTypeCorporate    InvestorType = "corporate"

	SwipeLeft  SwipeDirection = "left"
	SwipeRight SwipeDirection = "right"

	MatchStatusPending   MatchStatus = "pending"
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusConnected MatchStatus = "connected"
	MatchStatusRejected  MatchStatus = "rejected"
)

// Stages in funding order.
var Stages = []StartupStage{StagePreSeed, StageSeed, StageSeriesA, StageSeriesB, StageSeriesC, StageGrowth}

var InvestorTypes = []InvestorType{
	InvestorTypeAngel, InvestorTypeVC, InvestorTypePE, InvestorTypeFamilyOffice, InvestorTypeCorporate,
}

func (t UserType) Valid() bool {
	return t == UserTypeStartup || t == UserTypeInvestor
}

// Opposite возвращает тип контрагента
func (t UserType) Opposite() UserType {
	if t == UserTypeStartup {
		return UserTypeInvestor
	}
	return UserTypeStartup
}

func (s StartupStage) Valid() bool {
	for _, st := range Stages {
		if st == s {
			return true
		}
	}
	return false
}

func (t InvestorType) Valid() bool {
	for _, it := range InvestorTypes {
		if it == t {
			return true
		}
	}
	return false
}

func (d SwipeDirection) Valid() bool {
	return d == SwipeLeft || d == SwipeRight
}

var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusPending: {MatchStatusMatched},
	MatchStatusMatched: {MatchStatusConnected, MatchStatusRejected},
}

// CanTransitionTo: connected и rejected терминальные
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active - матчи, которые видны в списке
func (s MatchStatus) Active() bool {
	return s == MatchStatusMatched || s == MatchStatusConnected
}
