package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Pranesh1009/BNConnect/database"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/repositories"
)

func paginationParams(page, limit int, search string) pagination.Params {
	return pagination.Params{Page: page, Limit: limit, Search: search}
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSessionRepository(t *testing.T) {
	db := setupDB(t)
	sessions := repositories.NewSessionRepository(db)

	user := models.User{Name: "Sess", Email: "sess@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, sessions.Create(&models.Session{Token: "tok-1", UserID: user.ID, IsActive: true}))

	t.Run("find active matches token and user", func(t *testing.T) {
		found, err := sessions.FindActive("tok-1", user.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.UserID)

		// The right token under the wrong user is no session at all.
		found, err = sessions.FindActive("tok-1", user.ID+1)
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = sessions.FindActive("unknown", user.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("deactivate keeps the row", func(t *testing.T) {
		require.NoError(t, sessions.Deactivate("tok-1"))

		found, err := sessions.FindActive("tok-1", user.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		var row models.Session
		require.NoError(t, db.Where("token = ?", "tok-1").First(&row).Error)
		assert.False(t, row.IsActive)

		// Deactivating again, or a token that never existed, is fine.
		assert.NoError(t, sessions.Deactivate("tok-1"))
		assert.NoError(t, sessions.Deactivate("never-there"))
	})

	t.Run("deactivate for user sweeps every session", func(t *testing.T) {
		require.NoError(t, sessions.Create(&models.Session{Token: "tok-2", UserID: user.ID, IsActive: true}))
		require.NoError(t, sessions.Create(&models.Session{Token: "tok-3", UserID: user.ID, IsActive: true}))

		require.NoError(t, sessions.DeactivateForUser(user.ID))

		var active int64
		require.NoError(t, db.Model(&models.Session{}).
			Where("user_id = ? AND is_active = ?", user.ID, true).
			Count(&active).Error)
		assert.Zero(t, active)
	})

	t.Run("delete for user removes the rows", func(t *testing.T) {
		require.NoError(t, sessions.DeleteForUser(user.ID))

		var count int64
		require.NoError(t, db.Unscoped().Model(&models.Session{}).
			Where("user_id = ?", user.ID).
			Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestUserRepositoryList(t *testing.T) {
	db := setupDB(t)
	users := repositories.NewUserRepository(db)

	for _, u := range []models.User{
		{Name: "Anand", Email: "anand@example.com", Password: "x"},
		{Name: "Brianna", Email: "brianna@example.com", Password: "x"},
		{Name: "Chris", Email: "chris@other.org", Password: "x"},
	} {
		u := u
		require.NoError(t, db.Create(&u).Error)
	}

	t.Run("count ignores the page window", func(t *testing.T) {
		got, total, err := users.List(paginationParams(1, 2, ""))
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(3), total)
	})

	t.Run("search narrows both rows and count", func(t *testing.T) {
		got, total, err := users.List(paginationParams(1, 10, "an"))
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(2), total)
	})
}
