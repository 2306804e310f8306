package jwt

import (
	"context"
	"time"

	"foodgram-backend/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	TokenRepository interface {
		Revoke(ctx context.Context, token entities.RevokedToken) error
		IsRevoked(ctx context.Context, jti string) (bool, error)
		PurgeExpired(ctx context.Context, now time.Time) (int64, error)
	}

	tokenRepository struct {
		db *gorm.DB
	}
)

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Revoke(ctx context.Context, token entities.RevokedToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&token).Error
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entities.RevokedToken{})
	return res.RowsAffected, res.Error
}
