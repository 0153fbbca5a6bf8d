package helpers

import (
	"fmt"
	"strings"
	"testing"

	"dealflow_backend/database"
	"dealflow_backend/internal/logger"
	"dealflow_backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB - отдельная in-memory sqlite база на каждый тест, с миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Discard()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString()[:8])

	db, err := database.Open(database.Options{Driver: "sqlite", DSN: dsn, Env: "test"})
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db), "AutoMigrate для тестовой БД")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func Money(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// CreateUser создает активного пользователя нужного типа
func CreateUser(t *testing.T, db *gorm.DB, userType models.UserType) *models.User {
	t.Helper()
	user := &models.User{
		Email:     fmt.Sprintf("%s-%s@test.dev", userType, uuid.NewString()[:8]),
		UserType:  userType,
		FirstName: "Test",
		LastName:  string(userType),
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error, "Создание тестового пользователя")
	return user
}

// CreateStartup: seed / fintech / раунд 500k / ARR 600k, без оценки
func CreateStartup(t *testing.T, db *gorm.DB, mutate ...func(*models.StartupProfile)) (*models.User, *models.StartupProfile) {
	t.Helper()
	user := CreateUser(t, db, models.UserTypeStartup)
	profile := &models.StartupProfile{
		UserID:        user.ID,
		Name:          "Startup " + user.ID[:8],
		Slug:          "startup-" + user.ID[:8],
		Sectors:       []string{"fintech"},
		Stage:         models.StageSeed,
		LastRoundSize: Money(500_000),
		ARR:           Money(600_000),
	}
	for _, m := range mutate {
		m(profile)
	}
	require.NoError(t, db.Create(profile).Error, "Создание профиля стартапа")
	return user, profile
}

// CreateInvestor: seed, fintech+ai, чек 250k-2M
func CreateInvestor(t *testing.T, db *gorm.DB, mutate ...func(*models.InvestorProfile)) (*models.User, *models.InvestorProfile) {
	t.Helper()
	user := CreateUser(t, db, models.UserTypeInvestor)
	profile := &models.InvestorProfile{
		UserID:           user.ID,
		Name:             "Investor " + user.ID[:8],
		Type:             models.InvestorTypeVC,
		CheckSizeMin:     decimal.NewFromInt(250_000),
		CheckSizeMax:     decimal.NewFromInt(2_000_000),
		StagePreferences: []string{string(models.StageSeed)},
		SectorFocus:      []string{"fintech", "ai"},
	}
	for _, m := range mutate {
		m(profile)
	}
	require.NoError(t, db.Create(profile).Error, "Создание профиля инвестора")
	return user, profile
}
