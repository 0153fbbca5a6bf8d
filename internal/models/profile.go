package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type StartupProfile struct {
	BaseModel
	UserID         string                      `gorm:"size:36;uniqueIndex;not null"`
	Name           string                      `gorm:"size:255;not null"`
	Slug           string                      `gorm:"size:255;uniqueIndex;not null"`
	Description    string                      `gorm:"type:text"`
	Sectors        datatypes.JSONSlice[string] `gorm:"not null"`
	Stage          StartupStage                `gorm:"type:varchar(20);not null;index"`
	LastRound      string                      `gorm:"size:50"`
	LastRoundSize  decimal.NullDecimal         `gorm:"type:numeric(15,2)"`
	Valuation      decimal.NullDecimal         `gorm:"type:numeric(15,2)"`
	ARR            decimal.NullDecimal         `gorm:"column:arr;type:numeric(15,2)"`
	MRR            decimal.NullDecimal         `gorm:"column:mrr;type:numeric(15,2)"`
	GrowthYoyPct   decimal.NullDecimal         `gorm:"type:numeric(6,2)"`
	Locations      datatypes.JSONSlice[string]
	ValueAddNeeds  datatypes.JSONSlice[string]
	NonNegotiables datatypes.JSONSlice[string]
}

type InvestorProfile struct {
	BaseModel
	UserID           string                      `gorm:"size:36;uniqueIndex;not null"`
	Name             string                      `gorm:"size:255;not null"`
	Type             InvestorType                `gorm:"type:varchar(20);not null"`
	FundSize         decimal.NullDecimal         `gorm:"type:numeric(15,2)"`
	CheckSizeMin     decimal.Decimal             `gorm:"type:numeric(15,2);not null"`
	CheckSizeMax     decimal.Decimal             `gorm:"type:numeric(15,2);not null"`
	StagePreferences datatypes.JSONSlice[string] `gorm:"not null"`
	SectorFocus      datatypes.JSONSlice[string] `gorm:"not null"`
	GeoFocus         datatypes.JSONSlice[string]
	ValueAddOffered  datatypes.JSONSlice[string]
	Description      string `gorm:"type:text"`
	WillLead         bool   `gorm:"default:false"`
}

// PrefersStage - точное совпадение стадии
func (p *InvestorProfile) PrefersStage(stage StartupStage) bool {
	for _, s := range p.StagePreferences {
		if StartupStage(s) == stage {
			return true
		}
	}
	return false
}
