package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/services"
)

func TestItemOwnerScoping(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Ivy", "ivy@example.com")
	other := env.register(t, "Jack", "jack@example.com")

	created, err := env.itemSvc.Create(owner.ID, &services.ItemInput{Name: "Notebook", Description: "ruled"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)

	t.Run("owner reads", func(t *testing.T) {
		item, err := env.itemSvc.Get(created.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Notebook", item.Name)
	})

	t.Run("foreign items look absent, not forbidden", func(t *testing.T) {
		_, err := env.itemSvc.Get(created.ID, other.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
		assert.Contains(t, err.Error(), "Item not found")
	})

	t.Run("foreign update and delete fail the same way", func(t *testing.T) {
		_, err := env.itemSvc.Update(created.ID, other.ID, &services.UpdateItemInput{Name: strPtr("Stolen")})
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))

		err = env.itemSvc.Delete(created.ID, other.ID)
		assert.Equal(t, http.StatusNotFound, appStatus(t, err))
	})

	t.Run("lists are per owner", func(t *testing.T) {
		_, err := env.itemSvc.Create(other.ID, &services.ItemInput{Name: "Pen"})
		require.NoError(t, err)

		mine, err := env.itemSvc.List(owner.ID, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, mine.Data, 1)
		assert.Equal(t, "Notebook", mine.Data[0].Name)

		theirs, err := env.itemSvc.List(other.ID, pagination.Params{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, theirs.Data, 1)
		assert.Equal(t, "Pen", theirs.Data[0].Name)
	})
}

func TestItemUpdate(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Kara", "kara@example.com")

	created, err := env.itemSvc.Create(owner.ID, &services.ItemInput{Name: "Lamp", Description: "desk lamp"})
	require.NoError(t, err)

	t.Run("omitted fields keep their stored value", func(t *testing.T) {
		updated, err := env.itemSvc.Update(created.ID, owner.ID, &services.UpdateItemInput{Name: strPtr("Torch")})
		require.NoError(t, err)
		assert.Equal(t, "Torch", updated.Name)
		assert.Equal(t, "desk lamp", updated.Description)

		// Round-trip through storage, not just the returned struct.
		stored, err := env.itemSvc.Get(created.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "desk lamp", stored.Description)

		updated, err = env.itemSvc.Update(created.ID, owner.ID, &services.UpdateItemInput{Description: strPtr("floor lamp")})
		require.NoError(t, err)
		assert.Equal(t, "Torch", updated.Name)
		assert.Equal(t, "floor lamp", updated.Description)
	})

	t.Run("explicit empty description clears it", func(t *testing.T) {
		updated, err := env.itemSvc.Update(created.ID, owner.ID, &services.UpdateItemInput{Description: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "Torch", updated.Name)
		assert.Empty(t, updated.Description)
	})
}

func TestItemListSearch(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Liam", "liam@example.com")

	for _, name := range []string{"Blue Folder", "Red Folder", "Stapler"} {
		_, err := env.itemSvc.Create(owner.ID, &services.ItemInput{Name: name})
		require.NoError(t, err)
	}

	result, err := env.itemSvc.List(owner.ID, pagination.Params{Page: 1, Limit: 10, Search: "folder"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Metadata.Total)
}

func TestItemDelete(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "Mona", "mona@example.com")

	created, err := env.itemSvc.Create(owner.ID, &services.ItemInput{Name: "Chair"})
	require.NoError(t, err)

	require.NoError(t, env.itemSvc.Delete(created.ID, owner.ID))
	_, err = env.itemSvc.Get(created.ID, owner.ID)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}
