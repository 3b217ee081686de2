package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/services"
)

func TestChapterCreate(t *testing.T) {
	env := newTestEnv(t)
	leader := env.register(t, "Lia", "lia@example.com")

	t.Run("super admin only", func(t *testing.T) {
		_, err := env.chapterSvc.Create(leader.ID, &services.ChapterInput{Title: "Denied"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appStatus(t, err))
		assert.Contains(t, err.Error(), "super admin")
	})

	t.Run("title required", func(t *testing.T) {
		_, err := env.chapterSvc.Create(env.admin.ID, &services.ChapterInput{})
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err))
	})

	t.Run("unknown president", func(t *testing.T) {
		_, err := env.chapterSvc.Create(env.admin.ID, &services.ChapterInput{
			Title:       "West Chapter",
			PresidentID: uintPtr(99999),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
		assert.Contains(t, err.Error(), "President not found")
	})

	t.Run("creator becomes owner by default", func(t *testing.T) {
		resp, err := env.chapterSvc.Create(env.admin.ID, &services.ChapterInput{
			Title:       "East Chapter",
			Description: "the east side",
			PresidentID: uintPtr(leader.ID),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.UserID)
		assert.Equal(t, env.admin.ID, *resp.UserID)
		assert.True(t, resp.IsActive)
		assert.Zero(t, resp.MemberCount)
	})
}

func TestChapterOwnerOnlyMutation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Omar", "omar@example.com")
	other := env.register(t, "Nina", "nina@example.com")
	chapter := env.createChapter(t, "South Chapter", owner.ID)

	t.Run("owner updates", func(t *testing.T) {
		resp, err := env.chapterSvc.Update(chapter.ID, owner.ID, &services.ChapterInput{Description: "renewed"})
		require.NoError(t, err)
		assert.Equal(t, "renewed", resp.Description)
		assert.Equal(t, "South Chapter", resp.Title)
	})

	t.Run("non-owner denied, even super admin", func(t *testing.T) {
		_, err := env.chapterSvc.Update(chapter.ID, other.ID, &services.ChapterInput{Description: "nope"})
		assert.Equal(t, http.StatusForbidden, appStatus(t, err))

		_, err = env.chapterSvc.Update(chapter.ID, env.admin.ID, &services.ChapterInput{Description: "nope"})
		assert.Equal(t, http.StatusForbidden, appStatus(t, err))
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		err := env.chapterSvc.Delete(chapter.ID, other.ID)
		assert.Equal(t, http.StatusForbidden, appStatus(t, err))
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, env.chapterSvc.Delete(chapter.ID, owner.ID))
		_, err := env.chapterSvc.Get(chapter.ID)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
	})
}

func TestChapterAddMember(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Opal", "opal@example.com")
	member := env.register(t, "Milo", "milo@example.com")
	outsider := env.register(t, "Xena", "xena@example.com")
	chapter := env.createChapter(t, "Harbor Chapter", owner.ID)

	t.Run("outsider denied", func(t *testing.T) {
		_, err := env.chapterSvc.AddMember(chapter.ID, outsider.ID, &services.AddMemberInput{
			UserID: member.ID, Role: models.ChapterRoleMember,
		})
		assert.Equal(t, http.StatusForbidden, appStatus(t, err))
	})

	t.Run("invalid role name", func(t *testing.T) {
		_, err := env.chapterSvc.AddMember(chapter.ID, owner.ID, &services.AddMemberInput{
			UserID: member.ID, Role: "TREASURER",
		})
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.chapterSvc.AddMember(chapter.ID, owner.ID, &services.AddMemberInput{
			UserID: 99999, Role: models.ChapterRoleMember,
		})
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
	})

	t.Run("owner adds, count reflects it", func(t *testing.T) {
		added, err := env.chapterSvc.AddMember(chapter.ID, owner.ID, &services.AddMemberInput{
			UserID: member.ID, Role: models.ChapterRoleLeader,
		})
		require.NoError(t, err)
		assert.Equal(t, models.ChapterRoleLeader, added.Role)

		resp, err := env.chapterSvc.Get(chapter.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.MemberCount)
	})

	t.Run("super admin may add to any chapter", func(t *testing.T) {
		_, err := env.chapterSvc.AddMember(chapter.ID, env.admin.ID, &services.AddMemberInput{
			UserID: outsider.ID, Role: models.ChapterRoleMember,
		})
		require.NoError(t, err)

		resp, err := env.chapterSvc.Get(chapter.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.MemberCount)
	})
}

func TestChapterListSearch(t *testing.T) {
	env := newTestEnv(t)
	env.createChapter(t, "Riverside Network", env.admin.ID)
	env.createChapter(t, "Hilltop Network", env.admin.ID)
	env.createChapter(t, "Downtown Circle", env.admin.ID)

	result, err := env.chapterSvc.List(pagination.Params{Page: 1, Limit: 10, Search: "network"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Metadata.Total)

	all, err := env.chapterSvc.List(pagination.Params{Page: pagination.AllPages, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all.Data, 3)
}

func TestGeoLookups(t *testing.T) {
	env := newTestEnv(t)

	states, err := env.chapterSvc.States(pagination.Params{Page: pagination.AllPages})
	require.NoError(t, err)
	require.NotEmpty(t, states.Data)
	// Sorted by name ascending.
	assert.Equal(t, "Delhi", states.Data[0].Name)

	t.Run("state search", func(t *testing.T) {
		result, err := env.chapterSvc.States(pagination.Params{Page: 1, Limit: 10, Search: "karna"})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, "Karnataka", result.Data[0].Name)
	})

	t.Run("cities require a state", func(t *testing.T) {
		_, err := env.chapterSvc.Cities(0, pagination.Params{Page: 1, Limit: 10})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appStatus(t, err))
		assert.Contains(t, err.Error(), "State ID is required")
	})

	t.Run("cities are scoped to their state", func(t *testing.T) {
		var karnataka models.State
		require.NoError(t, env.db.Where("code = ?", "KA").First(&karnataka).Error)

		result, err := env.chapterSvc.Cities(karnataka.ID, pagination.Params{Page: pagination.AllPages})
		require.NoError(t, err)
		require.Len(t, result.Data, 3)
		for _, city := range result.Data {
			assert.Equal(t, karnataka.ID, city.StateID)
		}
	})
}
