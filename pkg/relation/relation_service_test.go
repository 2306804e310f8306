package relation_test

import (
	"context"
	"sync"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/pkg/relation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := relation.NewRelationService(relation.NewRelationRepository(db))
	ctx := context.Background()

	cook := testutil.CreateUser(t, db, "cook")
	reader := testutil.CreateUser(t, db, "reader")
	recipe := testutil.CreateRecipe(t, db, cook, "pancakes", nil)

	require.NoError(t, svc.Add(ctx, relation.Favorite, reader.ID, recipe.ID))
	ok, err := svc.Exists(ctx, relation.Favorite, reader.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	err = svc.Add(ctx, relation.Favorite, reader.ID, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrRelationExists)

	require.NoError(t, svc.Remove(ctx, relation.Favorite, reader.ID, recipe.ID))
	ok, err = svc.Exists(ctx, relation.Favorite, reader.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.Remove(ctx, relation.Favorite, reader.ID, recipe.ID)
	assert.ErrorIs(t, err, domain.ErrRelationNotFound)
}

func TestCartAndFavoriteAreIndependent(t *testing.T) {
	db := testutil.NewDB(t)
	svc := relation.NewRelationService(relation.NewRelationRepository(db))
	ctx := context.Background()

	cook := testutil.CreateUser(t, db, "cook")
	recipe := testutil.CreateRecipe(t, db, cook, "soup", nil)

	require.NoError(t, svc.Add(ctx, relation.ShoppingCart, cook.ID, recipe.ID))
	require.NoError(t, svc.Add(ctx, relation.Favorite, cook.ID, recipe.ID))
	require.NoError(t, svc.Remove(ctx, relation.ShoppingCart, cook.ID, recipe.ID))

	ok, err := svc.Exists(ctx, relation.Favorite, cook.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMissingTargetIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	svc := relation.NewRelationService(relation.NewRelationRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "reader")

	assert.ErrorIs(t, svc.Add(ctx, relation.Favorite, user.ID, 404), domain.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, relation.ShoppingCart, user.ID, 404), domain.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.Add(ctx, relation.Follow, user.ID, 404), domain.ErrUserNotFound)
}

func TestSelfFollowRejectedRegardlessOfRows(t *testing.T) {
	db := testutil.NewDB(t)
	svc := relation.NewRelationService(relation.NewRelationRepository(db))
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "narcissus")

	assert.ErrorIs(t, svc.Add(ctx, relation.Follow, user.ID, user.ID), domain.ErrSelfFollow)

	// a self edge written directly still does not make the add succeed
	require.NoError(t, db.Create(&entities.Follow{UserID: user.ID, AuthorID: user.ID}).Error)
	assert.ErrorIs(t, svc.Add(ctx, relation.Follow, user.ID, user.ID), domain.ErrSelfFollow)
}

func TestFollowToggle(t *testing.T) {
	db := testutil.NewDB(t)
	svc := relation.NewRelationService(relation.NewRelationRepository(db))
	ctx := context.Background()
	reader := testutil.CreateUser(t, db, "reader")
	author := testutil.CreateUser(t, db, "author")

	require.NoError(t, svc.Add(ctx, relation.Follow, reader.ID, author.ID))
	assert.ErrorIs(t, svc.Add(ctx, relation.Follow, reader.ID, author.ID), domain.ErrRelationExists)

	// the edge is directed
	require.NoError(t, svc.Add(ctx, relation.Follow, author.ID, reader.ID))
	require.NoError(t, svc.Remove(ctx, relation.Follow, reader.ID, author.ID))
	assert.ErrorIs(t, svc.Remove(ctx, relation.Follow, reader.ID, author.ID), domain.ErrRelationNotFound)
}

func TestConcurrentAddsLeaveOneRow(t *testing.T) {
	db := testutil.NewDB(t)
	svc := relation.NewRelationService(relation.NewRelationRepository(db))
	ctx := context.Background()
	cook := testutil.CreateUser(t, db, "cook")
	recipe := testutil.CreateRecipe(t, db, cook, "bread", nil)

	const workers = 4
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Add(ctx, relation.Favorite, cook.ID, recipe.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, db.Model(&entities.FavoriteRecipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
