package relation

import (
	"context"
	"errors"
	"fmt"

	"foodgram-backend/domain"
	"foodgram-backend/internal/logging"

	"gorm.io/gorm"
)

type (
	RelationService interface {
		Add(ctx context.Context, rel Relation, userID, targetID uint) error
		Remove(ctx context.Context, rel Relation, userID, targetID uint) error
		Exists(ctx context.Context, rel Relation, userID, targetID uint) (bool, error)
	}

	relationService struct {
		relationRepository RelationRepository
	}
)

func NewRelationService(relationRepository RelationRepository) RelationService {
	return &relationService{relationRepository: relationRepository}
}

func (s *relationService) requireTarget(ctx context.Context, rel Relation, targetID uint) error {
	ok, err := s.relationRepository.TargetExists(ctx, rel, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return rel.NotFound
	}
	return nil
}

// Add inserts the (user, target) row. The unique index is the only guard
// against concurrent adds, so a constraint violation is reported as
// domain.ErrRelationExists rather than an internal error.
func (s *relationService) Add(ctx context.Context, rel Relation, userID, targetID uint) error {
	if err := s.requireTarget(ctx, rel, targetID); err != nil {
		return err
	}
	if !rel.AllowSelf && userID == targetID {
		return domain.ErrSelfFollow
	}

	err := s.relationRepository.Create(ctx, rel, userID, targetID)
	switch {
	case err == nil:
		logging.Ctx(ctx).Debug().
			Str("relation", rel.Name).
			Uint("user_id", userID).
			Uint("target_id", targetID).
			Msg("relation added")
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", rel.Name, domain.ErrRelationExists)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return rel.NotFound
	default:
		return err
	}
}

func (s *relationService) Remove(ctx context.Context, rel Relation, userID, targetID uint) error {
	if err := s.requireTarget(ctx, rel, targetID); err != nil {
		return err
	}

	affected, err := s.relationRepository.Delete(ctx, rel, userID, targetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", rel.Name, domain.ErrRelationNotFound)
	}
	return nil
}

func (s *relationService) Exists(ctx context.Context, rel Relation, userID, targetID uint) (bool, error) {
	return s.relationRepository.Exists(ctx, rel, userID, targetID)
}
