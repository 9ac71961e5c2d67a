package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/ecotech-backend/api/controllers"
	"github.com/angelmondragon/ecotech-backend/api/middleware"
	"github.com/angelmondragon/ecotech-backend/internal/analytics"
	"github.com/angelmondragon/ecotech-backend/internal/cascade"
	"github.com/angelmondragon/ecotech-backend/internal/entries"
	"github.com/angelmondragon/ecotech-backend/internal/locations"
	"github.com/angelmondragon/ecotech-backend/internal/users"
	"github.com/angelmondragon/ecotech-backend/pkg/config"
	"github.com/angelmondragon/ecotech-backend/pkg/logger"
	"github.com/angelmondragon/ecotech-backend/pkg/metrics"
	"github.com/angelmondragon/ecotech-backend/pkg/redis"
)

// NewRouter wires every HTTP route. A nil redisClient disables idempotent
// replays; a nil gatherer disables /metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	userService users.Service,
	locationService locations.Service,
	entryService entries.Service,
	analyticsService analytics.Service,
	cascadeService cascade.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
	)

	readyDeps := map[string]controllers.Pinger{"database": dbP, "redis": nil}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyDeps, logg))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		var store redis.IdempotencyStore
		if redisClient != nil {
			store = redisClient
		}
		r.Use(middleware.Idempotency(store, cfg.Redis.IdempotencyTTL, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.UserList(userService, logg))
			r.Post("/", controllers.UserCreate(userService, logg))
			r.Get("/{uid}", controllers.UserGet(userService, logg))
			r.Put("/{uid}", controllers.UserUpdate(userService, logg))
			r.Delete("/{uid}", controllers.UserDelete(cascadeService, logg))
		})

		r.Route("/locais", func(r chi.Router) {
			r.Get("/", controllers.LocationList(locationService, logg))
			r.Post("/", controllers.LocationCreate(locationService, logg))
			r.Get("/mais-proximo", controllers.LocationNearest(locationService, logg))
			r.Post("/instalar-nova-lixeira/{id}", controllers.LocationInstallBin(locationService, logg))
			r.Get("/{id}", controllers.LocationGet(locationService, logg))
			r.Put("/{id}", controllers.LocationUpdate(locationService, logg))
			r.Delete("/{id}", controllers.LocationDelete(cascadeService, logg))
		})

		r.Route("/eletronicos", func(r chi.Router) {
			r.Get("/", controllers.EntryList(entryService, logg))
			r.Post("/", controllers.EntryCreate(entryService, logg))
			r.Get("/usuario/{uid}", controllers.EntryListByOwner(entryService, logg))
			r.Get("/usuario/{uid}/visiveis", controllers.EntryListVisibleByOwner(entryService, logg))
			r.Delete("/usuario/{uid}/historico", controllers.EntryHideHistory(cascadeService, logg))
			r.Get("/{id}", controllers.EntryGet(entryService, logg))
			r.Put("/{id}", controllers.EntryUpdate(entryService, logg))
			r.Delete("/{id}", controllers.EntryPurge(cascadeService, logg))
			r.Patch("/{id}/ocultar", controllers.EntryHide(cascadeService, logg))
			r.Patch("/{id}/restaurar", controllers.EntryRestore(cascadeService, logg))
		})

		r.Route("/relatorio", func(r chi.Router) {
			r.Get("/lixo-reciclado/{id}", controllers.ReportLocation(analyticsService, logg))
			r.Get("/lixo-reciclado/{id}/{localId}", controllers.ReportUserAtLocation(analyticsService, logg))
			r.Get("/{uid}", controllers.ReportUser(analyticsService, logg))
		})
	})

	return r
}
