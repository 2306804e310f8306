package migration

import (
	"encoding/json"
	"fmt"
	"os"

	"foodgram-backend/entities"
	"foodgram-backend/internal/logging"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeTag{},
		&entities.IngredientInRecipe{},
		&entities.FavoriteRecipe{},
		&entities.ShoppingCart{},
		&entities.Follow{},
		&entities.RevokedToken{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			logging.Error().Err(err).Str("model", fmt.Sprintf("%T", model)).Msg("error migrating database")
			return err
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}

var initialTags = []entities.Tag{
	{Name: "Breakfast", Color: "#FAFF01", Slug: "breakfast"},
	{Name: "Lunch", Color: "#80FF7E", Slug: "lunch"},
	{Name: "Dinner", Color: "#7071FF", Slug: "dinner"},
}

// Seed inserts the reference tags when they are missing.
func Seed(db *gorm.DB) error {
	for _, tag := range initialTags {
		if err := db.Where(entities.Tag{Slug: tag.Slug}).FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("seed tag %s: %w", tag.Slug, err)
		}
	}
	return nil
}

// LoadIngredients imports a JSON array of {name, measurement_unit} objects.
// Pairs that already exist are skipped.
func LoadIngredients(db *gorm.DB, path string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var ingredients []entities.Ingredient
	if err := json.Unmarshal(raw, &ingredients); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(ingredients) == 0 {
		return 0, nil
	}
	for i := range ingredients {
		ingredients[i].ID = 0
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(ingredients, 500)
	if res.Error != nil {
		return 0, res.Error
	}
	logging.Info().Int64("rows", res.RowsAffected).Str("file", path).Msg("ingredients loaded")
	return res.RowsAffected, nil
}
