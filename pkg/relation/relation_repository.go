package relation

import (
	"context"

	"gorm.io/gorm"
)

type (
	RelationRepository interface {
		TargetExists(ctx context.Context, rel Relation, targetID uint) (bool, error)
		Create(ctx context.Context, rel Relation, userID, targetID uint) error
		Delete(ctx context.Context, rel Relation, userID, targetID uint) (int64, error)
		Exists(ctx context.Context, rel Relation, userID, targetID uint) (bool, error)
	}

	relationRepository struct {
		db *gorm.DB
	}
)

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) TargetExists(ctx context.Context, rel Relation, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(rel.target()).
		Where("id = ?", targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create relies on the unique (user, target) index; a second insert fails
// with gorm.ErrDuplicatedKey when the connection translates errors.
func (r *relationRepository) Create(ctx context.Context, rel Relation, userID, targetID uint) error {
	return r.db.WithContext(ctx).Create(rel.row(userID, targetID)).Error
}

func (r *relationRepository) Delete(ctx context.Context, rel Relation, userID, targetID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND "+rel.TargetColumn+" = ?", userID, targetID).
		Delete(rel.row(0, 0))
	return res.RowsAffected, res.Error
}

func (r *relationRepository) Exists(ctx context.Context, rel Relation, userID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(rel.row(0, 0)).
		Where("user_id = ? AND "+rel.TargetColumn+" = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
