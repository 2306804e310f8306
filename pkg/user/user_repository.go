package user

import (
	"context"

	"foodgram-backend/entities"

	"gorm.io/gorm"
)

const followExists = "EXISTS (SELECT 1 FROM follows fw WHERE fw.author_id = users.id AND fw.user_id = ?)"

// AnnotatedUser is a user with the viewer's follow state.
type AnnotatedUser struct {
	entities.User
	IsSubscribed bool
}

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetAnnotatedUser(ctx context.Context, id uint, viewer *uint) (*AnnotatedUser, error)
		GetUsers(ctx context.Context, viewer *uint, page, limit int) ([]AnnotatedUser, int64, error)
		GetFollowedAuthors(ctx context.Context, userID uint, page, limit int) ([]entities.User, int64, error)
		ExistsByEmail(ctx context.Context, email string) (bool, error)
		ExistsByUsername(ctx context.Context, username string) (bool, error)
		UpdatePassword(ctx context.Context, id uint, hash string) error
		UpdateRole(ctx context.Context, email, role string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func annotate(viewer *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer == nil {
			return db.Select("users.*, false AS is_subscribed")
		}
		return db.Select("users.*, "+followExists+" AS is_subscribed", *viewer)
	}
}

func (r *userRepository) GetAnnotatedUser(ctx context.Context, id uint, viewer *uint) (*AnnotatedUser, error) {
	var users []AnnotatedUser
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Scopes(annotate(viewer)).
		Where("users.id = ?", id).
		Limit(1).
		Scan(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &users[0], nil
}

func (r *userRepository) GetUsers(ctx context.Context, viewer *uint, page, limit int) ([]AnnotatedUser, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []AnnotatedUser
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Scopes(annotate(viewer)).
		Order("users.id").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (r *userRepository) GetFollowedAuthors(ctx context.Context, userID uint, page, limit int) ([]entities.User, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []entities.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{ID: id}).
		Update("password", hash).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, email, role string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", email).
		Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
