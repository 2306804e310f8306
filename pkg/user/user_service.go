package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/logging"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/recipe"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, token string) error
		GetUsers(ctx context.Context, viewer *uint, page, limit int) (domain.UserListResponse, error)
		GetUser(ctx context.Context, id uint, viewer *uint) (domain.User, error)
		Me(ctx context.Context, userID uint) (domain.User, error)
		SetPassword(ctx context.Context, userID uint, req domain.SetPasswordRequest) error
		GetSubscriptions(ctx context.Context, userID uint, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error)
		GetSubscription(ctx context.Context, userID, authorID uint, recipesLimit int) (domain.Subscription, error)
		PromoteAdmin(ctx context.Context, email string) error
	}

	userService struct {
		userRepository UserRepository
		recipeService  recipe.RecipeService
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, recipeService recipe.RecipeService, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		recipeService:  recipeService,
		jwtService:     jwtService,
	}
}

func isReserved(username string) bool {
	for _, reserved := range domain.ReservedUsernames {
		if strings.EqualFold(username, reserved) {
			return true
		}
	}
	return false
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if isReserved(username) {
		return domain.RegisterResponse{}, domain.NewValidationError("username", "this username is reserved")
	}
	if !usernameRegex.MatchString(username) {
		return domain.RegisterResponse{}, domain.NewValidationError("username", "username may contain only letters, digits and @/./+/-/_")
	}

	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrEmailExists
	}
	exists, err = s.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		Email:     email,
		Username:  username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      domain.RoleUser,
		IsActive:  true,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, domain.ErrUsernameExists
		}
		return domain.RegisterResponse{}, err
	}

	logging.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("user registered")
	return domain.RegisterResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.LoginResponse{}, domain.ErrInactiveUser
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID, user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	return s.jwtService.RevokeToken(ctx, token)
}

func (s *userService) GetUsers(ctx context.Context, viewer *uint, page, limit int) (domain.UserListResponse, error) {
	page, limit = normalizePage(page, limit)

	users, total, err := s.userRepository.GetUsers(ctx, viewer, page, limit)
	if err != nil {
		return domain.UserListResponse{}, err
	}

	results := make([]domain.User, 0, len(users))
	for _, user := range users {
		results = append(results, toDomain(user.User, user.IsSubscribed))
	}
	return domain.UserListResponse{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id uint, viewer *uint) (domain.User, error) {
	user, err := s.userRepository.GetAnnotatedUser(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return toDomain(user.User, user.IsSubscribed), nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.User, error) {
	return s.GetUser(ctx, userID, &userID)
}

func (s *userService) SetPassword(ctx context.Context, userID uint, req domain.SetPasswordRequest) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.NewValidationError("current_password", "wrong password")
	}
	if req.CurrentPassword == req.NewPassword {
		return domain.NewValidationError("new_password", "new password must differ from the current one")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, string(hash))
}

func (s *userService) GetSubscriptions(ctx context.Context, userID uint, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error) {
	page, limit = normalizePage(page, limit)

	authors, total, err := s.userRepository.GetFollowedAuthors(ctx, userID, page, limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	results := make([]domain.Subscription, 0, len(authors))
	for _, author := range authors {
		sub, err := s.subscription(ctx, author, recipesLimit)
		if err != nil {
			return domain.SubscriptionListResponse{}, err
		}
		results = append(results, sub)
	}
	return domain.SubscriptionListResponse{
		Results:    results,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

func (s *userService) GetSubscription(ctx context.Context, userID, authorID uint, recipesLimit int) (domain.Subscription, error) {
	author, err := s.userRepository.GetAnnotatedUser(ctx, authorID, &userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Subscription{}, domain.ErrUserNotFound
		}
		return domain.Subscription{}, err
	}

	sub, err := s.subscription(ctx, author.User, recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	sub.IsSubscribed = author.IsSubscribed
	return sub, nil
}

// subscription renders a followed author with up to recipesLimit of their
// newest recipes; a non-positive limit returns all of them.
func (s *userService) subscription(ctx context.Context, author entities.User, recipesLimit int) (domain.Subscription, error) {
	recipes, count, err := s.recipeService.ShortRecipes(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.Subscription{}, err
	}
	return domain.Subscription{
		User:         toDomain(author, true),
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}

func (s *userService) PromoteAdmin(ctx context.Context, email string) error {
	if err := s.userRepository.UpdateRole(ctx, strings.ToLower(email), domain.RoleAdmin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultPageSize
	}
	return page, limit
}

func toDomain(user entities.User, isSubscribed bool) domain.User {
	return domain.User{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
