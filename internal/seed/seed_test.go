package seed

import (
	"testing"

	"pulseboard/internal/database"
	"pulseboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestSeedPopulatesBothTables(t *testing.T) {
	db := setupTestDB(t)

	err := Seed(db, Options{NumAccounts: 10, NumPosts: 30})
	require.NoError(t, err)

	var accountCount, postCount int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accountCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)

	assert.Equal(t, int64(10), accountCount)
	assert.Equal(t, int64(30), postCount)
}

func TestSeedPostsReferenceSeededAccounts(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumAccounts: 5, NumPosts: 20}))

	var orphans int64
	err := db.Model(&models.Post{}).
		Where("account_id NOT IN (?)", db.Model(&models.Account{}).Select("id")).
		Count(&orphans).Error
	require.NoError(t, err)
	assert.Zero(t, orphans)
}

func TestSeedCleanRemovesOldData(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{NumAccounts: 3, NumPosts: 5}))
	require.NoError(t, Seed(db, Options{NumAccounts: 2, NumPosts: 4, ShouldClean: true}))

	var accountCount, postCount int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accountCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)

	assert.Equal(t, int64(2), accountCount)
	assert.Equal(t, int64(4), postCount)
}

func TestSeedZeroCountsIsNoop(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Seed(db, Options{}))

	var accountCount int64
	require.NoError(t, db.Model(&models.Account{}).Count(&accountCount).Error)
	assert.Zero(t, accountCount)
}
