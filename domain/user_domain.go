package domain

import "errors"

var (
	MessageSuccessRegister    = "user registered successfully"
	MessageSuccessLogin       = "login successful"
	MessageSuccessLogout      = "logout successful"
	MessageSuccessGetUsers    = "success get users"
	MessageSuccessGetUser     = "success get user"
	MessageSuccessSetPassword = "password changed successfully"

	MessageFailedRegister    = "failed to register user"
	MessageFailedLogin       = "failed to login"
	MessageFailedGetUsers    = "failed to get users"
	MessageFailedGetUser     = "failed to get user"
	MessageFailedSetPassword = "failed to change password"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrUsernameExists     = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
)

// ReservedUsernames collide with routes under /users.
var ReservedUsernames = []string{"me", "set_password", "subscriptions"}

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID        uint   `json:"id"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	User struct {
		ID           uint   `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	Subscription struct {
		User
		Recipes      []ShortRecipe `json:"recipes"`
		RecipesCount int64         `json:"recipes_count"`
	}

	UserListResponse struct {
		Results    []User     `json:"results"`
		Pagination Pagination `json:"pagination"`
	}

	SubscriptionListResponse struct {
		Results    []Subscription `json:"results"`
		Pagination Pagination     `json:"pagination"`
	}
)
