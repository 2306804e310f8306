package recipe

import (
	"context"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"gorm.io/gorm"
)

// AnnotatedRecipe is a fully loaded recipe with the flags computed for the
// requesting user.
type AnnotatedRecipe struct {
	entities.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	IsSubscribed     bool
}

// RecipeChanges carries the fields of a partial update. Nil slices leave the
// tag or ingredient set untouched; non-nil ones replace it.
type RecipeChanges struct {
	Fields      map[string]any
	TagIDs      *[]uint
	Ingredients *[]entities.IngredientInRecipe
}

type (
	RecipeRepository interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewer *uint) ([]AnnotatedRecipe, int64, error)
		GetRecipe(ctx context.Context, id uint, viewer *uint) (*AnnotatedRecipe, error)
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, id uint, changes RecipeChanges) error
		DeleteRecipe(ctx context.Context, id uint) error
		GetShortRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]entities.Recipe, error)
		CountByAuthor(ctx context.Context, authorID uint) (int64, error)
		GetShoppingList(ctx context.Context, userID uint) ([]domain.ShoppingListItem, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) composed(ctx context.Context, filter domain.RecipeFilter, viewer *uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(Compose(filter, viewer)...)
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewer *uint) ([]AnnotatedRecipe, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Table("(?) AS q", r.composed(ctx, filter, viewer)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.composed(ctx, filter, viewer)
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var rows []annotatedRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	recipes, err := r.load(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

func (r *recipeRepository) GetRecipe(ctx context.Context, id uint, viewer *uint) (*AnnotatedRecipe, error) {
	var rows []annotatedRow
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(Annotate(viewer)).
		Where("recipes.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	recipes, err := r.load(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &recipes[0], nil
}

// load fetches the full recipes for rows and keeps the order of rows.
func (r *recipeRepository) load(ctx context.Context, rows []annotatedRow) ([]AnnotatedRecipe, error) {
	if len(rows) == 0 {
		return []AnnotatedRecipe{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var recipes []entities.Recipe
	if err := r.preloaded(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]entities.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}

	res := make([]AnnotatedRecipe, 0, len(rows))
	for _, row := range rows {
		recipe, ok := byID[row.ID]
		if !ok {
			continue
		}
		res = append(res, AnnotatedRecipe{
			Recipe:           recipe,
			IsFavorited:      row.IsFavorited,
			IsInShoppingCart: row.IsInShoppingCart,
			IsSubscribed:     row.IsSubscribed,
		})
	}
	return res, nil
}

func (r *recipeRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag_id") }).
		Preload("Tags.Tag").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Ingredients.Ingredient")
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe writes the recipe row, its tag links and ingredient amounts in
// one transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, ingredients := recipe.Tags, recipe.Ingredients
		recipe.Tags, recipe.Ingredients = nil, nil

		if err := tx.Omit("Author").Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceTags(tx, recipe.ID, tagIDs(tags)); err != nil {
			return err
		}
		if err := replaceIngredients(tx, recipe.ID, ingredients); err != nil {
			return err
		}

		recipe.Tags, recipe.Ingredients = tags, ingredients
		return nil
	})
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, id uint, changes RecipeChanges) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{}
		for k, v := range changes.Fields {
			fields[k] = v
		}
		if len(fields) > 0 {
			res := tx.Model(&entities.Recipe{ID: id}).Updates(fields)
			if res.Error != nil {
				return res.Error
			}
		}
		if changes.TagIDs != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := replaceTags(tx, id, *changes.TagIDs); err != nil {
				return err
			}
		}
		if changes.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&entities.IngredientInRecipe{}).Error; err != nil {
				return err
			}
			if err := replaceIngredients(tx, id, *changes.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
}

func tagIDs(tags []entities.RecipeTag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.TagID)
	}
	return ids
}

func replaceTags(tx *gorm.DB, recipeID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	links := make([]entities.RecipeTag, 0, len(ids))
	for _, id := range ids {
		links = append(links, entities.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return tx.Create(&links).Error
}

func replaceIngredients(tx *gorm.DB, recipeID uint, items []entities.IngredientInRecipe) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]entities.IngredientInRecipe, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.IngredientInRecipe{
			RecipeID:     recipeID,
			IngredientID: item.IngredientID,
			Amount:       item.Amount,
		})
	}
	return tx.Create(&rows).Error
}

// DeleteRecipe removes the recipe row; tag links, ingredient amounts,
// favorites and cart entries go with it through ON DELETE CASCADE.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Recipe{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) GetShortRecipesByAuthor(ctx context.Context, authorID uint, limit int) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	query := r.db.WithContext(ctx).
		Select("id", "name", "image", "cooking_time", "pub_date").
		Where("author_id = ?", authorID).
		Scopes(OrderByNewest())
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetShoppingList sums ingredient amounts over every recipe in the user's
// cart, grouped by ingredient name and unit.
func (r *recipeRepository) GetShoppingList(ctx context.Context, userID uint) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Table("shopping_carts sc").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, SUM(iir.amount) AS total").
		Joins("JOIN ingredient_in_recipes iir ON iir.recipe_id = sc.recipe_id").
		Joins("JOIN ingredients i ON i.id = iir.ingredient_id").
		Where("sc.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Order("total DESC").
		Order("i.name").
		Order("i.measurement_unit").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
