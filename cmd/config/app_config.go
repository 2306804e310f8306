package config

import (
	"io"
	"os"
	"time"

	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/api/routes"
	"foodgram-backend/internal/cache"
	"foodgram-backend/internal/logging"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/internal/utils"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/ingredient"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/recipe"
	"foodgram-backend/pkg/relation"
	"foodgram-backend/pkg/tag"
	"foodgram-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Options carries the outside-world dependencies of the app. Zero fields are
// filled from configuration by NewApp.
type Options struct {
	Cache     cache.Cache
	Storage   storage.Storage
	Mailer    mailing.Mailer
	JWTSecret string
	MediaRoot string
	// AccessLog receives one line per request; nil disables request logging.
	AccessLog io.Writer
	// RateLimit is requests per second per client; 0 disables the limiter.
	RateLimit int
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	file, err := openAccessLog()
	if err != nil {
		return nil, err
	}

	return NewAppWithOptions(db, Options{
		Cache:     cache.NewRedisCache(),
		Storage:   storage.New(),
		Mailer:    mailing.NewMailer(),
		JWTSecret: utils.GetConfig("JWT_SECRET"),
		MediaRoot: utils.GetConfig("MEDIA_ROOT"),
		AccessLog: file,
		RateLimit: 10,
	}), nil
}

func openAccessLog() (*os.File, error) {
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		logging.Error().Err(err).Msg("error creating logs directory")
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		logging.Error().Err(err).Msg("error opening access log")
		return nil, err
	}
	return file, nil
}

func NewAppWithOptions(db *gorm.DB, opts Options) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: 16 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	app.Use(recover.New())
	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format:     "${time} ${locals:request_id} ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
			Output:     opts.AccessLog,
		}))
	}
	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	if opts.Cache == nil {
		opts.Cache = &cache.RedisCache{}
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	relationRepository := relation.NewRelationRepository(db)
	tokenRepository := jwt.NewTokenRepository(db)

	// Service
	jwtService := jwt.NewJWTServiceWithSecret(opts.JWTSecret, tokenRepository)
	tagService := tag.NewTagService(tagRepository, opts.Cache)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, opts.Cache)
	recipeService := recipe.NewRecipeService(recipeRepository, tagRepository, ingredientRepository, opts.Storage, opts.Mailer)
	relationService := relation.NewRelationService(relationRepository)
	userService := user.NewUserService(userRepository, recipeService, jwtService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, relationService, validator)
	tagHandler := handlers.NewTagHandler(tagService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, relationService, userService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		TagHandler:        tagHandler,
		IngredientHandler: ingredientHandler,
		RecipeHandler:     recipeHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
		MediaRoot:         opts.MediaRoot,
	}
	routesConfig.Setup()
	return app
}
