package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranesh1009/BNConnect/services"
)

func TestProfileLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "Nora", "nora@example.com")

	t.Run("get before create", func(t *testing.T) {
		_, err := env.profileSvc.Get(user.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
		assert.Contains(t, err.Error(), "Profile not found")
	})

	t.Run("create", func(t *testing.T) {
		profile, err := env.profileSvc.Create(user.ID, &services.ProfileInput{
			Bio:     "community builder",
			Company: "Acme",
			City:    "Pune",
		})
		require.NoError(t, err)
		assert.Equal(t, user.ID, profile.UserID)
		assert.Equal(t, "Acme", profile.Company)
	})

	t.Run("second create conflicts", func(t *testing.T) {
		_, err := env.profileSvc.Create(user.ID, &services.ProfileInput{Bio: "again"})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err))
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("update", func(t *testing.T) {
		profile, err := env.profileSvc.Update(user.ID, &services.UpdateProfileInput{
			Bio:  strPtr("connector"),
			City: strPtr("Mumbai"),
		})
		require.NoError(t, err)
		assert.Equal(t, "connector", profile.Bio)
		assert.Equal(t, "Mumbai", profile.City)
	})

	t.Run("omitted fields survive a partial update", func(t *testing.T) {
		profile, err := env.profileSvc.Update(user.ID, &services.UpdateProfileInput{
			Website: strPtr("https://acme.example"),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://acme.example", profile.Website)
		assert.Equal(t, "connector", profile.Bio)
		assert.Equal(t, "Acme", profile.Company)
		assert.Equal(t, "Mumbai", profile.City)

		stored, err := env.profileSvc.Get(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", stored.Company)
		assert.Equal(t, "connector", stored.Bio)
	})

	t.Run("delete then get", func(t *testing.T) {
		require.NoError(t, env.profileSvc.Delete(user.ID))

		_, err := env.profileSvc.Get(user.ID)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))

		err = env.profileSvc.Delete(user.ID)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
	})
}

func TestProfilesAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	a := env.register(t, "Pat", "pat@example.com")
	b := env.register(t, "Quil", "quil@example.com")

	_, err := env.profileSvc.Create(a.ID, &services.ProfileInput{Bio: "a's bio"})
	require.NoError(t, err)

	_, err = env.profileSvc.Get(b.ID)
	assert.Error(t, err)

	_, err = env.profileSvc.Create(b.ID, &services.ProfileInput{Bio: "b's bio"})
	assert.NoError(t, err)
}
