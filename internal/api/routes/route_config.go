package routes

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const apiPrefix = "/api"

type Access int

const (
	// Public endpoints resolve the viewer when a token is sent.
	Public Access = iota
	Authenticated
	Admin
)

type Endpoint struct {
	Method  string
	Path    string
	Access  Access
	Handler fiber.Handler
}

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	TagHandler        handlers.TagHandler
	IngredientHandler handlers.IngredientHandler
	RecipeHandler     handlers.RecipeHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
	MediaRoot         string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Middleware.RequestID())
	if c.MediaRoot != "" {
		c.App.Static("/media", c.MediaRoot)
	}
	c.GuestRoute()

	api := c.App.Group(apiPrefix)
	for _, e := range c.Endpoints() {
		api.Add(e.Method, e.Path, append(c.guard(e.Access), e.Handler)...)
	}
}

func (c *Config) guard(access Access) []fiber.Handler {
	switch access {
	case Authenticated:
		return []fiber.Handler{c.Middleware.AuthMiddleware(c.JWTService)}
	case Admin:
		return []fiber.Handler{c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminOnly()}
	default:
		return []fiber.Handler{c.Middleware.OptionalAuth(c.JWTService)}
	}
}

func (c *Config) GuestRoute() {
	c.App.Get(apiPrefix+"/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

// Endpoints lists every API route. Fixed paths come before their /:id
// siblings because Fiber matches in registration order.
func (c *Config) Endpoints() []Endpoint {
	u, t, i, r := c.UserHandler, c.TagHandler, c.IngredientHandler, c.RecipeHandler
	return []Endpoint{
		// auth
		{fiber.MethodPost, "/auth/token/login", Public, u.Login},
		{fiber.MethodPost, "/auth/token/logout", Authenticated, u.Logout},

		// users
		{fiber.MethodPost, "/users", Public, u.Register},
		{fiber.MethodGet, "/users", Public, u.GetUsers},
		{fiber.MethodGet, "/users/me", Authenticated, u.Me},
		{fiber.MethodPost, "/users/set_password", Authenticated, u.SetPassword},
		{fiber.MethodGet, "/users/subscriptions", Authenticated, u.GetSubscriptions},
		{fiber.MethodGet, "/users/:id", Public, u.GetUser},
		{fiber.MethodPost, "/users/:id/subscribe", Authenticated, u.Subscribe},
		{fiber.MethodDelete, "/users/:id/subscribe", Authenticated, u.Unsubscribe},

		// reference data
		{fiber.MethodGet, "/tags", Public, t.GetTags},
		{fiber.MethodPost, "/tags", Admin, t.CreateTag},
		{fiber.MethodGet, "/tags/:id", Public, t.GetTag},
		{fiber.MethodGet, "/ingredients", Public, i.GetIngredients},
		{fiber.MethodPost, "/ingredients", Admin, i.CreateIngredient},
		{fiber.MethodGet, "/ingredients/:id", Public, i.GetIngredient},

		// recipes
		{fiber.MethodGet, "/recipes", Public, r.GetRecipes},
		{fiber.MethodPost, "/recipes", Authenticated, r.CreateRecipe},
		{fiber.MethodGet, "/recipes/download_shopping_cart", Authenticated, r.DownloadShoppingCart},
		{fiber.MethodPost, "/recipes/send_shopping_cart", Authenticated, r.SendShoppingCart},
		{fiber.MethodGet, "/recipes/:id", Public, r.GetRecipe},
		{fiber.MethodPatch, "/recipes/:id", Authenticated, r.UpdateRecipe},
		{fiber.MethodDelete, "/recipes/:id", Authenticated, r.DeleteRecipe},
		{fiber.MethodPost, "/recipes/:id/favorite", Authenticated, r.AddFavorite},
		{fiber.MethodDelete, "/recipes/:id/favorite", Authenticated, r.RemoveFavorite},
		{fiber.MethodPost, "/recipes/:id/shopping_cart", Authenticated, r.AddToShoppingCart},
		{fiber.MethodDelete, "/recipes/:id/shopping_cart", Authenticated, r.RemoveFromShoppingCart},
	}
}
