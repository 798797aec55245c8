package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/feedtamer/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库是连接私有的，并发查询不能另开连接
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Account{}, &model.Content{}, &model.UserInteraction{}))
	return db
}

func setupBenchDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Account{}, &model.Content{}, &model.UserInteraction{}); err != nil {
		return nil, err
	}
	return db, nil
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{ID: uuid.New().String(), Email: email, Password: "hash", Name: email, Active: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAccount(t *testing.T, db *gorm.DB, userID, platform, remoteID string) *model.Account {
	t.Helper()
	account := &model.Account{
		ID:        uuid.New().String(),
		UserID:    userID,
		Platform:  platform,
		AccountID: remoteID,
		Username:  remoteID,
		IsActive:  true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedContent(t *testing.T, db *gorm.DB, accountID, platform, remoteID string, publishedAt time.Time) *model.Content {
	t.Helper()
	content := &model.Content{
		ID:          uuid.New().String(),
		AccountID:   accountID,
		Platform:    platform,
		ContentID:   remoteID,
		ContentType: model.ContentTypePost,
		Text:        "post " + remoteID,
		PublishedAt: publishedAt,
		RetrievedAt: time.Now(),
	}
	require.NoError(t, db.Create(content).Error)
	return content
}
