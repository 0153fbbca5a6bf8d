package repositories

import (
	"errors"

	"dealflow_backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

type ProfileRepository interface {
	// Startup profiles
	CreateStartupProfile(db *gorm.DB, profile *models.StartupProfile) error
	FindStartupProfileByUserID(db *gorm.DB, userID string) (*models.StartupProfile, error)
	UpdateStartupProfile(db *gorm.DB, profile *models.StartupProfile) error
	StartupSlugExists(db *gorm.DB, slug string) (bool, error)
	FindStartupProfilesByUserIDs(db *gorm.DB, userIDs []string) (map[string]*models.StartupProfile, error)

	// Investor profiles
	CreateInvestorProfile(db *gorm.DB, profile *models.InvestorProfile) error
	FindInvestorProfileByUserID(db *gorm.DB, userID string) (*models.InvestorProfile, error)
	UpdateInvestorProfile(db *gorm.DB, profile *models.InvestorProfile) error
	FindInvestorProfilesByUserIDs(db *gorm.DB, userIDs []string) (map[string]*models.InvestorProfile, error)

	// Feed
	FindStartupCandidates(db *gorm.DB, viewerID string, filter CandidateFilter) ([]StartupCandidate, error)
	FindInvestorCandidates(db *gorm.DB, viewerID string, filter CandidateFilter) ([]InvestorCandidate, error)
}

// CandidateFilter - SQL-часть фильтров ленты.
// Сектора и stage preferences хранятся в JSON и фильтруются в сервисе.
type CandidateFilter struct {
	Stage        models.StartupStage
	MinValuation *decimal.Decimal
	MaxValuation *decimal.Decimal
}

type StartupCandidate struct {
	User    *models.User
	Profile *models.StartupProfile
}

type InvestorCandidate struct {
	User    *models.User
	Profile *models.InvestorProfile
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

// --- Startup ---

func (r *ProfileRepositoryImpl) CreateStartupProfile(db *gorm.DB, profile *models.StartupProfile) error {
	if err := db.Create(profile).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindStartupProfileByUserID(db *gorm.DB, userID string) (*models.StartupProfile, error) {
	var profile models.StartupProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateStartupProfile(db *gorm.DB, profile *models.StartupProfile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) StartupSlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.StartupProfile{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *ProfileRepositoryImpl) FindStartupProfilesByUserIDs(db *gorm.DB, userIDs []string) (map[string]*models.StartupProfile, error) {
	result := make(map[string]*models.StartupProfile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []models.StartupProfile
	if err := db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].UserID] = &profiles[i]
	}
	return result, nil
}

// --- Investor ---

func (r *ProfileRepositoryImpl) CreateInvestorProfile(db *gorm.DB, profile *models.InvestorProfile) error {
	if err := db.Create(profile).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ProfileRepositoryImpl) FindInvestorProfileByUserID(db *gorm.DB, userID string) (*models.InvestorProfile, error) {
	var profile models.InvestorProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateInvestorProfile(db *gorm.DB, profile *models.InvestorProfile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) FindInvestorProfilesByUserIDs(db *gorm.DB, userIDs []string) (map[string]*models.InvestorProfile, error) {
	result := make(map[string]*models.InvestorProfile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var profiles []models.InvestorProfile
	if err := db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].UserID] = &profiles[i]
	}
	return result, nil
}

// --- Feed candidates ---

// FindStartupCandidates returns active startups with a profile that viewerID has never swiped.
func (r *ProfileRepositoryImpl) FindStartupCandidates(db *gorm.DB, viewerID string, filter CandidateFilter) ([]StartupCandidate, error) {
	query := db.Model(&models.StartupProfile{}).
		Select("startup_profiles.*").
		Joins("JOIN users ON users.id = startup_profiles.user_id").
		Where("users.user_type = ? AND users.is_active = ?", models.UserTypeStartup, true).
		Where("startup_profiles.user_id <> ?", viewerID).
		Where("startup_profiles.user_id NOT IN (?)", swipedTargets(db, viewerID))

	if filter.Stage != "" {
		query = query.Where("startup_profiles.stage = ?", filter.Stage)
	}
	if filter.MinValuation != nil {
		query = query.Where("startup_profiles.valuation >= ?", *filter.MinValuation)
	}
	if filter.MaxValuation != nil {
		query = query.Where("startup_profiles.valuation <= ?", *filter.MaxValuation)
	}

	var profiles []models.StartupProfile
	if err := query.Order("startup_profiles.user_id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	users, err := usersForProfiles(db, len(profiles), func(i int) string { return profiles[i].UserID })
	if err != nil {
		return nil, err
	}

	candidates := make([]StartupCandidate, 0, len(profiles))
	for i := range profiles {
		if u, ok := users[profiles[i].UserID]; ok {
			candidates = append(candidates, StartupCandidate{User: u, Profile: &profiles[i]})
		}
	}
	return candidates, nil
}

func (r *ProfileRepositoryImpl) FindInvestorCandidates(db *gorm.DB, viewerID string, filter CandidateFilter) ([]InvestorCandidate, error) {
	query := db.Model(&models.InvestorProfile{}).
		Select("investor_profiles.*").
		Joins("JOIN users ON users.id = investor_profiles.user_id").
		Where("users.user_type = ? AND users.is_active = ?", models.UserTypeInvestor, true).
		Where("investor_profiles.user_id <> ?", viewerID).
		Where("investor_profiles.user_id NOT IN (?)", swipedTargets(db, viewerID))

	var profiles []models.InvestorProfile
	if err := query.Order("investor_profiles.user_id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	users, err := usersForProfiles(db, len(profiles), func(i int) string { return profiles[i].UserID })
	if err != nil {
		return nil, err
	}

	candidates := make([]InvestorCandidate, 0, len(profiles))
	for i := range profiles {
		if u, ok := users[profiles[i].UserID]; ok {
			candidates = append(candidates, InvestorCandidate{User: u, Profile: &profiles[i]})
		}
	}
	return candidates, nil
}

func swipedTargets(db *gorm.DB, actorID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Swipe{}).
		Select("target_user_id").
		Where("actor_user_id = ?", actorID)
}

func usersForProfiles(db *gorm.DB, n int, userID func(i int) string) (map[string]*models.User, error) {
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = userID(i)
	}
	return NewUserRepository().FindByIDs(db.Session(&gorm.Session{NewDB: true}), ids)
}
