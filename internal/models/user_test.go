package models

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Feedback{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestUserCreateHashesPassword(t *testing.T) {
	db := testDB(t)

	u := &User{Email: "alex@example.com", Password: "correct horse"}
	require.NoError(t, db.Create(u).Error)

	assert.Empty(t, u.Password)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "correct horse", u.PasswordHash)

	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong horse"))
}

func TestUserDefaultRole(t *testing.T) {
	db := testDB(t)

	u := &User{Email: "alex@example.com", Password: "password123"}
	require.NoError(t, db.Create(u).Error)
	assert.Equal(t, DefaultRole, u.Role)

	admin := &User{Email: "admin@example.com", Password: "password123", Role: "admin"}
	require.NoError(t, db.Create(admin).Error)
	assert.Equal(t, "admin", admin.Role)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := testDB(t)

	first := &User{Email: "alex@example.com", Password: "password123"}
	require.NoError(t, db.Create(first).Error)

	second := &User{Email: "alex@example.com", Password: "password456"}
	err := db.Create(second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserPublicOmitsCredentials(t *testing.T) {
	u := &User{ID: 3, Email: "alex@example.com", Role: "student", PasswordHash: "hash"}
	pub := u.Public()

	assert.Equal(t, uint(3), pub.ID)
	assert.Equal(t, "alex@example.com", pub.Email)
	assert.Equal(t, "student", pub.Role)
}

func TestFeedbackDefaultCategory(t *testing.T) {
	db := testDB(t)

	f := &Feedback{Content: "uncategorized"}
	require.NoError(t, db.Create(f).Error)
	assert.Equal(t, CategoryConcerns, f.Category)
}

func TestCategoryCanonical(t *testing.T) {
	assert.True(t, CategoryAppreciation.Canonical())
	assert.True(t, CategoryConcerns.Canonical())
	assert.True(t, CategorySuggestions.Canonical())
	assert.False(t, CategoryError.Canonical())
	assert.False(t, Category("Anything").Canonical())
}
