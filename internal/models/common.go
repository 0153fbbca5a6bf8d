package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"size:36;primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate генерирует UUID на стороне приложения (sqlite/mysql не умеют uuid_generate_v4)
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels перечисляет таблицы для AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&StartupProfile{},
		&InvestorProfile{},
		&Swipe{},
		&Match{},
		&Conversation{},
		&Message{},
	}
}
