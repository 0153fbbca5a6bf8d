package repositories

import (
	"errors"
	"time"

	"dealflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrSwipeNotFound      = errors.New("swipe not found")
	ErrSwipeAlreadyExists = errors.New("swipe already exists for this pair")
)

type SwipeRepository interface {
	Create(db *gorm.DB, swipe *models.Swipe) error
	Exists(db *gorm.DB, actorID, targetID string) (bool, error)
	FindReciprocalRight(db *gorm.DB, actorID, targetID string) (*models.Swipe, error)
	CountSince(db *gorm.DB, actorID string, since time.Time) (int64, error)
}

type SwipeRepositoryImpl struct{}

func NewSwipeRepository() SwipeRepository {
	return &SwipeRepositoryImpl{}
}

// Create полагается на уникальный индекс (actor, target): второй свайп на ту же цель
// отклоняется базой даже при гонке.
func (r *SwipeRepositoryImpl) Create(db *gorm.DB, swipe *models.Swipe) error {
	if err := db.Create(swipe).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSwipeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *SwipeRepositoryImpl) Exists(db *gorm.DB, actorID, targetID string) (bool, error) {
	var count int64
	err := db.Model(&models.Swipe{}).
		Where("actor_user_id = ? AND target_user_id = ?", actorID, targetID).
		Count(&count).Error
	return count > 0, err
}

// FindReciprocalRight ищет правый свайп target -> actor
func (r *SwipeRepositoryImpl) FindReciprocalRight(db *gorm.DB, actorID, targetID string) (*models.Swipe, error) {
	var swipe models.Swipe
	err := db.Where("actor_user_id = ? AND target_user_id = ? AND direction = ?", targetID, actorID, models.SwipeRight).
		First(&swipe).Error
	if err != nil {
		return nil, notFound(err, ErrSwipeNotFound)
	}
	return &swipe, nil
}

func (r *SwipeRepositoryImpl) CountSince(db *gorm.DB, actorID string, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.Swipe{}).
		Where("actor_user_id = ? AND created_at >= ?", actorID, since.UTC()).
		Count(&count).Error
	return count, err
}
