package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/foodgram-backend/internal/ingredients"
	"github.com/angelmondragon/foodgram-backend/internal/tags"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	pkgAuth "github.com/angelmondragon/foodgram-backend/pkg/auth"
	"github.com/angelmondragon/foodgram-backend/pkg/config"
	"github.com/angelmondragon/foodgram-backend/pkg/db"
	"github.com/angelmondragon/foodgram-backend/pkg/env"
	"github.com/angelmondragon/foodgram-backend/pkg/logger"
	"github.com/angelmondragon/foodgram-backend/pkg/migrate"
)

const (
	envFixturePath     = "FOODGRAM_SEED_FIXTURE"
	defaultFixturePath = "data/fixture.json"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	path := flag.String("fixture", env.Get(envFixturePath, defaultFixturePath), "JSON fixture with ingredients, tags and users, or a bare ingredients array")
	printTokens := flag.Bool("print-tokens", false, "print a dev access token for every seeded user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "fixture": *path})

	fixture, err := loadFixture(*path)
	if err != nil {
		logg.Error(ctx, "failed to load fixture", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	s, err := newSeeder(dbClient, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to build seeder", err)
		os.Exit(1)
	}

	summary, runErr := s.run(ctx, fixture)
	logg.Info(logg.WithFields(ctx, map[string]any{
		"ingredients_inserted": summary.IngredientsInserted,
		"tags_created":         summary.TagsCreated,
		"tags_skipped":         summary.TagsSkipped,
		"users":                len(summary.Users),
	}), "seed.completed")

	for _, u := range summary.Users {
		if u.Password != "" {
			fmt.Printf("user %s (id=%d) password: %s\n", u.Email, u.ID, u.Password)
		}
		if !*printTokens {
			continue
		}
		role := pkgAuth.RoleUser
		if u.IsAdmin {
			role = pkgAuth.RoleAdmin
		}
		token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{UserID: u.ID, Role: role})
		if err != nil {
			logg.Error(ctx, "failed to mint token", err)
			continue
		}
		fmt.Printf("user %s (id=%d) token: %s\n", u.Email, u.ID, token)
	}

	if runErr != nil {
		logg.Error(ctx, "seed finished with errors", runErr)
		os.Exit(1)
	}
}

func newSeeder(dbClient *db.Client, password config.PasswordConfig) (*seeder, error) {
	conn := dbClient.DB()
	ingredientsService, err := ingredients.NewService(ingredients.NewRepository(conn))
	if err != nil {
		return nil, err
	}
	tagsService, err := tags.NewService(tags.NewRepository(conn))
	if err != nil {
		return nil, err
	}
	return &seeder{
		ingredients: ingredientsService,
		tags:        tagsService,
		users:       users.NewRepository(conn),
		password:    password,
	}, nil
}
