package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Swipe is append-only: one row per (actor, target), never updated or deleted.
type Swipe struct {
	ID           string         `gorm:"size:36;primaryKey"`
	ActorUserID  string         `gorm:"size:36;not null;uniqueIndex:idx_swipes_actor_target,priority:1;index:idx_swipes_actor_created,priority:1"`
	TargetUserID string         `gorm:"size:36;not null;uniqueIndex:idx_swipes_actor_target,priority:2;index"`
	Direction    SwipeDirection `gorm:"type:varchar(10);not null"`
	ScoreAtSwipe int            `gorm:"not null"`
	Breakdown    datatypes.JSON
	CreatedAt    time.Time `gorm:"not null;index:idx_swipes_actor_created,priority:2"`
}

func (s *Swipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
