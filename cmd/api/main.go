package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/foodgram-backend/api"
	"github.com/angelmondragon/foodgram-backend/api/routes"
	"github.com/angelmondragon/foodgram-backend/internal/cart"
	"github.com/angelmondragon/foodgram-backend/internal/favorites"
	"github.com/angelmondragon/foodgram-backend/internal/follows"
	"github.com/angelmondragon/foodgram-backend/internal/ingredients"
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/internal/tags"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	"github.com/angelmondragon/foodgram-backend/pkg/config"
	"github.com/angelmondragon/foodgram-backend/pkg/db"
	"github.com/angelmondragon/foodgram-backend/pkg/instance"
	"github.com/angelmondragon/foodgram-backend/pkg/logger"
	"github.com/angelmondragon/foodgram-backend/pkg/metrics"
	"github.com/angelmondragon/foodgram-backend/pkg/migrate"
	"github.com/angelmondragon/foodgram-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	infra := routes.Infra{DB: dbClient}
	if cfg.Redis.Enabled() {
		redisClient, redisErr := redis.New(ctx, cfg.Redis, logg)
		if redisErr != nil {
			return redisErr
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		infra.Redis = redisClient
	} else {
		logg.Warn(ctx, "redis not configured, rate limiting and idempotent replay disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	infra.Metrics = metrics.NewHTTPMetrics(registry)
	infra.Gatherer = registry

	services, err := buildServices(dbClient)
	if err != nil {
		return err
	}

	server := api.NewServer(cfg.App, routes.NewRouter(cfg, logg, infra, services))

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     server.Addr,
		"driver":   cfg.DB.Driver,
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(dbClient *db.Client) (routes.Services, error) {
	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	tagsRepo := tags.NewRepository(conn)
	ingredientsRepo := ingredients.NewRepository(conn)
	recipesRepo := recipes.NewRepository(conn)

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		return routes.Services{}, err
	}
	tagsService, err := tags.NewService(tagsRepo)
	if err != nil {
		return routes.Services{}, err
	}
	ingredientsService, err := ingredients.NewService(ingredientsRepo)
	if err != nil {
		return routes.Services{}, err
	}
	recipesService, err := recipes.NewService(recipes.ServiceParams{
		Tx:          dbClient,
		Repo:        recipesRepo,
		Users:       usersRepo,
		Tags:        tagsRepo,
		Ingredients: ingredientsRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}
	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		Tx:          dbClient,
		Repo:        favorites.NewRepository(conn),
		RecipesRepo: recipesRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}
	cartService, err := cart.NewService(cart.ServiceParams{
		Tx:          dbClient,
		Repo:        cart.NewRepository(conn),
		RecipesRepo: recipesRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}
	followsService, err := follows.NewService(follows.ServiceParams{
		Tx:          dbClient,
		Repo:        follows.NewRepository(conn),
		UsersRepo:   usersRepo,
		RecipesRepo: recipesRepo,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Recipes:     recipesService,
		Favorites:   favoritesService,
		Cart:        cartService,
		Follows:     followsService,
		Users:       usersService,
		Tags:        tagsService,
		Ingredients: ingredientsService,
	}, nil
}
