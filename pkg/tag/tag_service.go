package tag

import (
	"context"
	"errors"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/cache"
	"foodgram-backend/internal/logging"

	"gorm.io/gorm"
)

const (
	cacheKeyTags = "tags:all"
	cacheTTL     = 10 * time.Minute
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.Tag, error)
		GetTag(ctx context.Context, id uint) (domain.Tag, error)
		CreateTag(ctx context.Context, req domain.CreateTagRequest) (domain.Tag, error)
	}

	tagService struct {
		tagRepository TagRepository
		cache         cache.Cache
	}
)

func NewTagService(tagRepository TagRepository, cache cache.Cache) TagService {
	return &tagService{
		tagRepository: tagRepository,
		cache:         cache,
	}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.Tag, error) {
	var res []domain.Tag
	if hit, err := s.cache.Get(ctx, cacheKeyTags, &res); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("tag cache read failed")
	} else if hit {
		return res, nil
	}

	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res = make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		res = append(res, ToDomain(tag))
	}

	if err := s.cache.Set(ctx, cacheKeyTags, res, cacheTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("tag cache write failed")
	}
	return res, nil
}

func (s *tagService) GetTag(ctx context.Context, id uint) (domain.Tag, error) {
	tag, err := s.tagRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tag{}, domain.ErrTagNotFound
		}
		return domain.Tag{}, err
	}
	return ToDomain(*tag), nil
}

func (s *tagService) CreateTag(ctx context.Context, req domain.CreateTagRequest) (domain.Tag, error) {
	tag := &entities.Tag{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}
	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Tag{}, domain.ErrTagExists
		}
		return domain.Tag{}, err
	}

	if err := s.cache.Delete(ctx, cacheKeyTags); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("tag cache invalidation failed")
	}
	return ToDomain(*tag), nil
}

func ToDomain(tag entities.Tag) domain.Tag {
	return domain.Tag{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}
