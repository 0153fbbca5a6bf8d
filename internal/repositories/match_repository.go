package repositories

import (
	"errors"

	"dealflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchAlreadyExists  = errors.New("match already exists for this pair")
	ErrMatchStatusConflict = errors.New("match status changed concurrently")
)

type MatchRepository interface {
	Create(db *gorm.DB, match *models.Match) error
	FindByID(db *gorm.DB, id string) (*models.Match, error)
	FindByPair(db *gorm.DB, startupUserID, investorUserID string) (*models.Match, error)
	FindForUser(db *gorm.DB, userID string, statuses []models.MatchStatus) ([]models.Match, error)
	CountForUser(db *gorm.DB, userID string, statuses []models.MatchStatus) (int64, error)
	UpdateStatus(db *gorm.DB, id string, from, to models.MatchStatus) error
}

type MatchRepositoryImpl struct{}

func NewMatchRepository() MatchRepository {
	return &MatchRepositoryImpl{}
}

func (r *MatchRepositoryImpl) Create(db *gorm.DB, match *models.Match) error {
	if err := db.Create(match).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrMatchAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MatchRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Match, error) {
	var match models.Match
	if err := db.First(&match, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrMatchNotFound)
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) FindByPair(db *gorm.DB, startupUserID, investorUserID string) (*models.Match, error) {
	var match models.Match
	err := db.Where("startup_user_id = ? AND investor_user_id = ?", startupUserID, investorUserID).
		First(&match).Error
	if err != nil {
		return nil, notFound(err, ErrMatchNotFound)
	}
	return &match, nil
}

// FindForUser - новые сверху
func (r *MatchRepositoryImpl) FindForUser(db *gorm.DB, userID string, statuses []models.MatchStatus) ([]models.Match, error) {
	var matches []models.Match
	err := r.forUser(db, userID, statuses).
		Order("created_at DESC").
		Order("id DESC").
		Find(&matches).Error
	return matches, err
}

func (r *MatchRepositoryImpl) CountForUser(db *gorm.DB, userID string, statuses []models.MatchStatus) (int64, error) {
	var count int64
	err := r.forUser(db, userID, statuses).Count(&count).Error
	return count, err
}

// UpdateStatus - compare-and-set, чтобы параллельные переходы не затирали друг друга
func (r *MatchRepositoryImpl) UpdateStatus(db *gorm.DB, id string, from, to models.MatchStatus) error {
	res := db.Model(&models.Match{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMatchStatusConflict
	}
	return nil
}

func (r *MatchRepositoryImpl) forUser(db *gorm.DB, userID string, statuses []models.MatchStatus) *gorm.DB {
	query := db.Model(&models.Match{}).
		Where("startup_user_id = ? OR investor_user_id = ?", userID, userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	return query
}
