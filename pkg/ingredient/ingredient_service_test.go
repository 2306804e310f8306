package ingredient_test

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/internal/cache"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/pkg/ingredient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []domain.Ingredient) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestPrefixSearchIsCaseInsensitiveAndOrdered(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateIngredient(t, db, "Sugar", "g")
	testutil.CreateIngredient(t, db, "salt", "g")
	testutil.CreateIngredient(t, db, "Молоко", "мл")
	testutil.CreateIngredient(t, db, "butter", "g")
	svc := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db), &cache.RedisCache{})
	ctx := context.Background()

	got, err := svc.GetIngredients(ctx, "S")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sugar", "salt"}, names(got))

	got, err = svc.GetIngredients(ctx, "мол")
	require.NoError(t, err)
	assert.Equal(t, []string{"Молоко"}, names(got))

	got, err = svc.GetIngredients(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = svc.GetIngredients(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateIngredientRejectsDuplicatePair(t *testing.T) {
	db := testutil.NewDB(t)
	svc := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db), &cache.RedisCache{})
	ctx := context.Background()

	_, err := svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "egg", MeasurementUnit: "pcs"})
	require.NoError(t, err)
	_, err = svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "egg", MeasurementUnit: "g"})
	require.NoError(t, err)
	_, err = svc.CreateIngredient(ctx, domain.CreateIngredientRequest{Name: "egg", MeasurementUnit: "pcs"})
	assert.ErrorIs(t, err, domain.ErrIngredientExists)

	_, err = svc.GetIngredient(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}
