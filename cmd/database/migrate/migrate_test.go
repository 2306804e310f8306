package migration_test

import (
	"os"
	"path/filepath"
	"testing"

	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, migration.Seed(db))
	require.NoError(t, migration.Seed(db))

	var count int64
	require.NoError(t, db.Model(&entities.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestLoadIngredientsSkipsExisting(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateIngredient(t, db, "flour", "g")

	path := filepath.Join(t.TempDir(), "ingredients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"},
		{"name": "egg", "measurement_unit": "pcs"}
	]`), 0o644))

	_, err := migration.LoadIngredients(db, path)
	require.NoError(t, err)

	var names []string
	require.NoError(t, db.Model(&entities.Ingredient{}).Order("name").Pluck("name", &names).Error)
	assert.Equal(t, []string{"egg", "flour", "milk"}, names)
}
