package user_test

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/testutil"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/ingredient"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/recipe"
	"foodgram-backend/pkg/relation"
	"foodgram-backend/pkg/tag"
	"foodgram-backend/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopMailer struct{}

func (noopMailer) Send(string, string, string, ...mailing.Attachment) error { return nil }

func newService(t *testing.T) (user.UserService, jwt.JWTService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	recipes := recipe.NewRecipeService(
		recipe.NewRecipeRepository(db),
		tag.NewTagRepository(db),
		ingredient.NewIngredientRepository(db),
		storage.NewLocalStorage(t.TempDir(), "http://testserver/media"),
		noopMailer{},
	)
	jwtService := jwt.NewJWTServiceWithSecret("secret", jwt.NewTokenRepository(db))
	return user.NewUserService(user.NewUserRepository(db), recipes, jwtService), jwtService, db
}

func register(t *testing.T, svc user.UserService, username string) domain.RegisterResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "secret-password",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterRules(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	register(t, svc, "cook")

	for _, name := range []string{"me", "set_password", "subscriptions"} {
		_, err := svc.Register(ctx, domain.RegisterRequest{
			Email: name + "@example.com", Username: name, FirstName: "a", LastName: "b", Password: "secret-password",
		})
		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr, name)
		assert.Equal(t, "username", validationErr.Field)
	}

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Email: "COOK@example.com", Username: "another", FirstName: "a", LastName: "b", Password: "secret-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Email: "other@example.com", Username: "cook", FirstName: "a", LastName: "b", Password: "secret-password",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestLoginLogout(t *testing.T) {
	svc, jwtService, _ := newService(t)
	ctx := context.Background()
	registered := register(t, svc, "cook")

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "secret-password"})
	require.NoError(t, err)

	id, role, err := jwtService.GetUserIDByToken(ctx, res.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, id)
	assert.Equal(t, domain.RoleUser, role)

	require.NoError(t, svc.Logout(ctx, res.AuthToken))
	_, _, err = jwtService.GetUserIDByToken(ctx, res.AuthToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestSetPassword(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	registered := register(t, svc, "cook")
	var validationErr *domain.ValidationError

	err := svc.SetPassword(ctx, registered.ID, domain.SetPasswordRequest{CurrentPassword: "nope", NewPassword: "another-password"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "current_password", validationErr.Field)

	err = svc.SetPassword(ctx, registered.ID, domain.SetPasswordRequest{CurrentPassword: "secret-password", NewPassword: "secret-password"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "new_password", validationErr.Field)

	require.NoError(t, svc.SetPassword(ctx, registered.ID, domain.SetPasswordRequest{CurrentPassword: "secret-password", NewPassword: "another-password"}))
	_, err = svc.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "another-password"})
	assert.NoError(t, err)
}

func TestSubscriptions(t *testing.T) {
	svc, _, db := newService(t)
	ctx := context.Background()
	toggles := relation.NewRelationService(relation.NewRelationRepository(db))

	reader := register(t, svc, "reader")
	author := register(t, svc, "author")
	quiet := register(t, svc, "quiet")

	authorEntity := &entities.User{ID: author.ID}
	for _, name := range []string{"one", "two", "three"} {
		testutil.CreateRecipe(t, db, authorEntity, name, nil)
	}

	require.NoError(t, toggles.Add(ctx, relation.Follow, reader.ID, author.ID))
	require.NoError(t, toggles.Add(ctx, relation.Follow, reader.ID, quiet.ID))

	subs, err := svc.GetSubscriptions(ctx, reader.ID, 1, 10, 2)
	require.NoError(t, err)
	require.Len(t, subs.Results, 2)
	assert.Equal(t, int64(2), subs.Pagination.Total)

	byName := map[string]domain.Subscription{}
	for _, sub := range subs.Results {
		byName[sub.Username] = sub
	}
	assert.True(t, byName["author"].IsSubscribed)
	assert.Len(t, byName["author"].Recipes, 2)
	assert.Equal(t, int64(3), byName["author"].RecipesCount)
	assert.Empty(t, byName["quiet"].Recipes)

	sub, err := svc.GetSubscription(ctx, reader.ID, author.ID, 0)
	require.NoError(t, err)
	assert.Len(t, sub.Recipes, 3)

	got, err := svc.GetUser(ctx, author.ID, &reader.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSubscribed)
	got, err = svc.GetUser(ctx, author.ID, nil)
	require.NoError(t, err)
	assert.False(t, got.IsSubscribed)

	list, err := svc.GetUsers(ctx, &reader.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Pagination.Total)
}

func TestPromoteAdmin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	register(t, svc, "boss")

	require.NoError(t, svc.PromoteAdmin(ctx, "boss@example.com"))
	assert.ErrorIs(t, svc.PromoteAdmin(ctx, "ghost@example.com"), domain.ErrUserNotFound)
}
