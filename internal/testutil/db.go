package testutil

import (
	"path/filepath"
	"testing"

	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in a temp dir with foreign keys on.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "foodgram.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "Cook",
		Password:  "x",
		Role:      "user",
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateTag(t *testing.T, db *gorm.DB, slug string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{Name: slug, Color: "#FFFFFF", Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// IngredientAmount pairs an ingredient with its amount in a recipe.
type IngredientAmount struct {
	Ingredient *entities.Ingredient
	Amount     int
}

func CreateRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, tags []*entities.Tag, items ...IngredientAmount) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "recipes/" + name + ".png",
		Text:        name + " text",
		CookingTime: 10,
	}
	for _, tag := range tags {
		recipe.Tags = append(recipe.Tags, entities.RecipeTag{TagID: tag.ID})
	}
	for _, item := range items {
		recipe.Ingredients = append(recipe.Ingredients, entities.IngredientInRecipe{
			IngredientID: item.Ingredient.ID,
			Amount:       item.Amount,
		})
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
