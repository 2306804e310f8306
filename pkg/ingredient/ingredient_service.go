package ingredient

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/cache"
	"foodgram-backend/internal/logging"

	"gorm.io/gorm"
)

const (
	cacheKeyIngredients = "ingredients:all"
	cacheTTL            = 30 * time.Minute
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, name string) ([]domain.Ingredient, error)
		GetIngredient(ctx context.Context, id uint) (domain.Ingredient, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.Ingredient, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		cache                cache.Cache
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, cache cache.Cache) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		cache:                cache,
	}
}

// GetIngredients returns ingredients whose name starts with name, ignoring
// case. The prefix match runs in Go because SQLite's LOWER only folds ASCII.
func (s *ingredientService) GetIngredients(ctx context.Context, name string) ([]domain.Ingredient, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	prefix := strings.ToLower(strings.TrimSpace(name))
	if prefix == "" {
		return all, nil
	}

	res := make([]domain.Ingredient, 0)
	for _, ingredient := range all {
		if strings.HasPrefix(strings.ToLower(ingredient.Name), prefix) {
			res = append(res, ingredient)
		}
	}
	return res, nil
}

func (s *ingredientService) all(ctx context.Context) ([]domain.Ingredient, error) {
	var res []domain.Ingredient
	if hit, err := s.cache.Get(ctx, cacheKeyIngredients, &res); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("ingredient cache read failed")
	} else if hit {
		return res, nil
	}

	ingredients, err := s.ingredientRepository.GetIngredients(ctx)
	if err != nil {
		return nil, err
	}

	res = make([]domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, ToDomain(ingredient))
	}

	if err := s.cache.Set(ctx, cacheKeyIngredients, res, cacheTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("ingredient cache write failed")
	}
	return res, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id uint) (domain.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Ingredient{}, domain.ErrIngredientNotFound
		}
		return domain.Ingredient{}, err
	}
	return ToDomain(*ingredient), nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest) (domain.Ingredient, error) {
	ingredient := &entities.Ingredient{
		Name:            strings.TrimSpace(req.Name),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Ingredient{}, domain.ErrIngredientExists
		}
		return domain.Ingredient{}, err
	}

	if err := s.cache.Delete(ctx, cacheKeyIngredients); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("ingredient cache invalidation failed")
	}
	return ToDomain(*ingredient), nil
}

func ToDomain(ingredient entities.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
