package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/foodgram-backend/api/controllers"
	"github.com/angelmondragon/foodgram-backend/api/middleware"
	"github.com/angelmondragon/foodgram-backend/internal/cart"
	"github.com/angelmondragon/foodgram-backend/internal/favorites"
	"github.com/angelmondragon/foodgram-backend/internal/follows"
	"github.com/angelmondragon/foodgram-backend/internal/ingredients"
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/internal/tags"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	"github.com/angelmondragon/foodgram-backend/pkg/config"
	"github.com/angelmondragon/foodgram-backend/pkg/logger"
	"github.com/angelmondragon/foodgram-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/foodgram-backend/pkg/redis"
)

// RedisStore is the Redis surface the router wires into probes, throttling
// and idempotent replays. Leave it nil to run without Redis.
type RedisStore interface {
	pkgredis.Pinger
	pkgredis.IdempotencyStore
	pkgredis.RateLimiter
}

type Services struct {
	Recipes     recipes.Service
	Favorites   favorites.Service
	Cart        cart.Service
	Follows     follows.Service
	Users       users.Service
	Tags        tags.Service
	Ingredients ingredients.Service
}

type Infra struct {
	DB       controllers.Pinger
	Redis    RedisStore
	Metrics  *metrics.HTTPMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Metrics(infra.Metrics),
		chimiddleware.StripSlashes,
	)

	var redisPinger controllers.Pinger
	var idempotencyStore pkgredis.IdempotencyStore
	var rateStore pkgredis.RateLimiter
	if infra.Redis != nil {
		redisPinger = infra.Redis
		idempotencyStore = infra.Redis
		rateStore = infra.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    infra.DB,
			"redis": redisPinger,
		}))
	})
	if infra.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	apiPolicy := middleware.NewRateLimitPolicy("api", cfg.RateLimit.Window, cfg.RateLimit.Limit)
	requireUser := middleware.RequireUser(logg)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RateLimit(apiPolicy, rateStore, logg))

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", controllers.RecipesList(svc.Recipes, logg))
			r.With(requireUser, middleware.Idempotency(idempotencyStore, middleware.DefaultIdempotencyTTL, logg)).
				Post("/", controllers.RecipeCreate(svc.Recipes, logg))
			r.With(requireUser).Get("/download_shopping_cart", controllers.ShoppingCartDownload(svc.Cart, logg))

			r.Route("/{recipeId}", func(r chi.Router) {
				r.Get("/", controllers.RecipeGet(svc.Recipes, logg))
				r.Group(func(r chi.Router) {
					r.Use(requireUser)
					r.Patch("/", controllers.RecipeUpdate(svc.Recipes, logg))
					r.Delete("/", controllers.RecipeDelete(svc.Recipes, logg))
					r.Post("/favorite", controllers.FavoriteAdd(svc.Favorites, logg))
					r.Delete("/favorite", controllers.FavoriteRemove(svc.Favorites, logg))
					r.Post("/shopping_cart", controllers.ShoppingCartAdd(svc.Cart, logg))
					r.Delete("/shopping_cart", controllers.ShoppingCartRemove(svc.Cart, logg))
				})
			})
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", controllers.TagsList(svc.Tags, logg))
			r.Get("/{tagId}", controllers.TagGet(svc.Tags, logg))
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", controllers.IngredientsList(svc.Ingredients, logg))
			r.Get("/{ingredientId}", controllers.IngredientGet(svc.Ingredients, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UsersList(svc.Users, logg))
			r.With(requireUser).Get("/me", controllers.UserMe(svc.Users, logg))
			r.With(requireUser).Get("/subscriptions", controllers.Subscriptions(svc.Follows, logg))

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", controllers.UserGet(svc.Users, logg))
				r.With(requireUser).Post("/subscribe", controllers.Subscribe(svc.Follows, logg))
				r.With(requireUser).Delete("/subscribe", controllers.Unsubscribe(svc.Follows, logg))
			})
		})
	})

	return r
}
