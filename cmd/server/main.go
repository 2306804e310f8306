package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram-backend/cmd/config"
	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/internal/logging"
	"foodgram-backend/internal/utils"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/user"

	"gorm.io/gorm"
)

const purgeInterval = time.Hour

func main() {
	ingredients := flag.String("ingredients", "", "load ingredients from a JSON file and exit")
	promote := flag.String("promote", "", "grant the admin role to the user with this email and exit")
	flag.Parse()

	utils.LoadConfig()
	logging.Init(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})

	db, err := config.ConnectDB()
	if err != nil {
		os.Exit(1)
	}
	if err := migration.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}
	if err := migration.Seed(db); err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}

	switch {
	case *ingredients != "":
		n, err := migration.LoadIngredients(db, *ingredients)
		if err != nil {
			logging.Fatal().Err(err).Str("file", *ingredients).Msg("loading ingredients failed")
		}
		logging.Info().Int64("created", n).Msg("ingredients loaded")
		return
	case *promote != "":
		if err := promoteAdmin(db, *promote); err != nil {
			logging.Fatal().Err(err).Str("email", *promote).Msg("promotion failed")
		}
		logging.Info().Str("email", *promote).Msg("user promoted to admin")
		return
	}

	app, err := config.NewApp(db)
	if err != nil {
		logging.Fatal().Err(err).Msg("building app failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go purgeRevokedTokens(ctx, jwt.NewTokenRepository(db))

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logging.Error().Err(err).Msg("shutdown failed")
		}
	}()

	port := utils.GetConfig("APP_PORT")
	logging.Info().Str("port", port).Msg("starting server")
	if err := app.Listen(":" + port); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func promoteAdmin(db *gorm.DB, email string) error {
	// PromoteAdmin only touches the user repository.
	users := user.NewUserService(user.NewUserRepository(db), nil, nil)
	return users.PromoteAdmin(context.Background(), email)
}

// purgeRevokedTokens drops revocation rows whose token has expired anyway.
func purgeRevokedTokens(ctx context.Context, tokens jwt.TokenRepository) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := tokens.PurgeExpired(ctx, now)
			if err != nil {
				logging.Error().Err(err).Msg("purging revoked tokens failed")
				continue
			}
			if n > 0 {
				logging.Debug().Int64("purged", n).Msg("revoked tokens purged")
			}
		}
	}
}
