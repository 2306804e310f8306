package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/logging"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/ingredient"
	"foodgram-backend/pkg/tag"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewer *uint) (domain.RecipeListResponse, error)
		GetRecipe(ctx context.Context, id uint, viewer *uint) (domain.Recipe, error)
		GetShortRecipe(ctx context.Context, id uint) (domain.ShortRecipe, error)
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, actor domain.Actor) (domain.Recipe, error)
		UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest, actor domain.Actor) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, id uint, actor domain.Actor) error
		GetShoppingList(ctx context.Context, userID uint) ([]domain.ShoppingListItem, error)
		DownloadShoppingCart(ctx context.Context, userID uint) ([]byte, error)
		SendShoppingCart(ctx context.Context, userID uint, email string) error
		ShortRecipes(ctx context.Context, authorID uint, limit int) ([]domain.ShortRecipe, int64, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		tagRepository        tag.TagRepository
		ingredientRepository ingredient.IngredientRepository
		storage              storage.Storage
		mailer               mailing.Mailer
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagRepository tag.TagRepository,
	ingredientRepository ingredient.IngredientRepository,
	storage storage.Storage,
	mailer mailing.Mailer,
) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
		storage:              storage,
		mailer:               mailer,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewer *uint) (domain.RecipeListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultPageSize
	}

	recipes, total, err := s.recipeRepository.GetRecipes(ctx, filter, viewer)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	results := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		results = append(results, s.toDomain(recipe))
	}
	return domain.RecipeListResponse{
		Results:    results,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id uint, viewer *uint) (domain.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipe(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}
	return s.toDomain(*recipe), nil
}

func (s *recipeService) GetShortRecipe(ctx context.Context, id uint) (domain.ShortRecipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipe{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipe{}, err
	}
	return s.toShort(*recipe), nil
}

func (s *recipeService) ShortRecipes(ctx context.Context, authorID uint, limit int) ([]domain.ShortRecipe, int64, error) {
	recipes, err := s.recipeRepository.GetShortRecipesByAuthor(ctx, authorID, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.recipeRepository.CountByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.ShortRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, s.toShort(recipe))
	}
	return res, count, nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, actor domain.Actor) (domain.Recipe, error) {
	tagIDs, err := uniqueTags(req.Tags)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := validateCookingTime(req.CookingTime); err != nil {
		return domain.Recipe{}, err
	}
	if err := validateIngredients(req.Ingredients); err != nil {
		return domain.Recipe{}, err
	}
	if err := s.requireReferences(ctx, tagIDs, ingredientIDs(req.Ingredients)); err != nil {
		return domain.Recipe{}, err
	}

	imageKey, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		AuthorID:    actor.UserID,
		Name:        strings.TrimSpace(req.Name),
		Image:       imageKey,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	for _, id := range tagIDs {
		recipe.Tags = append(recipe.Tags, entities.RecipeTag{TagID: id})
	}
	for _, item := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, entities.IngredientInRecipe{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		s.discardImage(ctx, imageKey)
		return domain.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", recipe.ID).Uint("author_id", actor.UserID).Msg("recipe created")
	return s.GetRecipe(ctx, recipe.ID, &actor.UserID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id uint, req domain.UpdateRecipeRequest, actor domain.Actor) (domain.Recipe, error) {
	current, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}
	if !actor.CanModify(current.AuthorID) {
		return domain.Recipe{}, domain.ErrForbidden
	}

	changes := RecipeChanges{Fields: map[string]any{}}

	var tagIDs []uint
	if req.Tags != nil {
		if tagIDs, err = uniqueTags(*req.Tags); err != nil {
			return domain.Recipe{}, err
		}
		changes.TagIDs = &tagIDs
	}
	if req.CookingTime != nil {
		if err := validateCookingTime(*req.CookingTime); err != nil {
			return domain.Recipe{}, err
		}
		changes.Fields["cooking_time"] = *req.CookingTime
	}
	var newIngredientIDs []uint
	if req.Ingredients != nil {
		if err := validateIngredients(*req.Ingredients); err != nil {
			return domain.Recipe{}, err
		}
		items := make([]entities.IngredientInRecipe, 0, len(*req.Ingredients))
		for _, item := range *req.Ingredients {
			items = append(items, entities.IngredientInRecipe{IngredientID: item.ID, Amount: item.Amount})
		}
		changes.Ingredients = &items
		newIngredientIDs = ingredientIDs(*req.Ingredients)
	}
	if err := s.requireReferences(ctx, tagIDs, newIngredientIDs); err != nil {
		return domain.Recipe{}, err
	}
	if req.Name != nil {
		changes.Fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Text != nil {
		changes.Fields["text"] = *req.Text
	}

	var newImage string
	if req.Image != nil {
		if newImage, err = s.uploadImage(ctx, *req.Image); err != nil {
			return domain.Recipe{}, err
		}
		changes.Fields["image"] = newImage
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, id, changes); err != nil {
		s.discardImage(ctx, newImage)
		return domain.Recipe{}, fmt.Errorf("update recipe: %w", err)
	}
	if newImage != "" {
		s.discardImage(ctx, current.Image)
	}

	logging.Ctx(ctx).Info().Uint("recipe_id", id).Uint("user_id", actor.UserID).Msg("recipe updated")
	return s.GetRecipe(ctx, id, &actor.UserID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id uint, actor domain.Actor) error {
	current, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if !actor.CanModify(current.AuthorID) {
		return domain.ErrForbidden
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	s.discardImage(ctx, current.Image)

	logging.Ctx(ctx).Info().Uint("recipe_id", id).Uint("user_id", actor.UserID).Msg("recipe deleted")
	return nil
}

func (s *recipeService) GetShoppingList(ctx context.Context, userID uint) ([]domain.ShoppingListItem, error) {
	items, err := s.recipeRepository.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	SortShoppingList(items)
	return items, nil
}

func (s *recipeService) DownloadShoppingCart(ctx context.Context, userID uint) ([]byte, error) {
	items, err := s.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	return []byte(RenderShoppingList(items)), nil
}

func (s *recipeService) SendShoppingCart(ctx context.Context, userID uint, email string) error {
	content, err := s.DownloadShoppingCart(ctx, userID)
	if err != nil {
		return err
	}

	err = s.mailer.Send(email, "Your Foodgram shopping list",
		"Your shopping list is attached.",
		mailing.Attachment{Filename: domain.ShoppingCartFilename, Content: content},
	)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Uint("user_id", userID).Msg("failed to mail shopping list")
		return err
	}
	return nil
}

// requireReferences checks that every tag and ingredient id exists.
func (s *recipeService) requireReferences(ctx context.Context, tagIDs, ingredientIDs []uint) error {
	if len(tagIDs) > 0 {
		count, err := s.tagRepository.CountByIDs(ctx, tagIDs)
		if err != nil {
			return err
		}
		if count != int64(len(tagIDs)) {
			return domain.NewValidationError("tags", "unknown tag id")
		}
	}
	if len(ingredientIDs) > 0 {
		count, err := s.ingredientRepository.CountByIDs(ctx, ingredientIDs)
		if err != nil {
			return err
		}
		if count != int64(len(ingredientIDs)) {
			return domain.NewValidationError("ingredients", "unknown ingredient id")
		}
	}
	return nil
}

func (s *recipeService) uploadImage(ctx context.Context, dataURI string) (string, error) {
	data, ext, err := storage.DecodeImage(dataURI)
	if err != nil {
		return "", domain.NewValidationError("image", domain.ErrInvalidImageFormat.Error())
	}
	key, err := s.storage.UploadFile(ctx, uuid.NewString()+"."+ext, data, imageFolder, "image/"+ext)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return key, nil
}

func (s *recipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.DeleteFile(ctx, key); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to delete image")
	}
}

func (s *recipeService) toShort(recipe entities.Recipe) domain.ShortRecipe {
	return domain.ShortRecipe{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       s.storage.GetPublicLinkKey(recipe.Image),
		CookingTime: recipe.CookingTime,
	}
}

func (s *recipeService) toDomain(recipe AnnotatedRecipe) domain.Recipe {
	res := domain.Recipe{
		ID:               recipe.ID,
		Tags:             make([]domain.Tag, 0, len(recipe.Tags)),
		Ingredients:      make([]domain.RecipeIngredient, 0, len(recipe.Ingredients)),
		IsFavorited:      recipe.IsFavorited,
		IsInShoppingCart: recipe.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            s.storage.GetPublicLinkKey(recipe.Image),
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		PubDate:          recipe.PubDate,
	}
	if recipe.Author != nil {
		res.Author = domain.User{
			ID:           recipe.Author.ID,
			Email:        recipe.Author.Email,
			Username:     recipe.Author.Username,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: recipe.IsSubscribed,
		}
	}
	for _, link := range recipe.Tags {
		if link.Tag != nil {
			res.Tags = append(res.Tags, tag.ToDomain(*link.Tag))
		}
	}
	for _, item := range recipe.Ingredients {
		if item.Ingredient == nil {
			continue
		}
		res.Ingredients = append(res.Ingredients, domain.RecipeIngredient{
			ID:              item.IngredientID,
			Name:            item.Ingredient.Name,
			MeasurementUnit: item.Ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}
	return res
}
