package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/picshare/picshare/pkg/internal/cache"
	"github.com/picshare/picshare/pkg/internal/database"
	"github.com/picshare/picshare/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigration(db))

	return db
}

func newTestDirectory(t *testing.T, db *gorm.DB) *Directory {
	t.Helper()

	store, err := cache.NewStore()
	require.NoError(t, err)

	return NewDirectory(db, store)
}

func seedAccount(t *testing.T, db *gorm.DB, id, name, username string) models.Account {
	t.Helper()

	account := models.Account{
		ID:        id,
		Name:      name,
		Username:  username,
		Password:  "unused",
		Followers: datatypes.NewJSONSlice([]string{}),
		Following: datatypes.NewJSONSlice([]string{}),
	}
	require.NoError(t, db.Create(&account).Error)

	return account
}

func reloadAccount(t *testing.T, db *gorm.DB, id string) models.Account {
	t.Helper()

	var account models.Account
	require.NoError(t, db.Where("id = ?", id).First(&account).Error)

	return account
}
