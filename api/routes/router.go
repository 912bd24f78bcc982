package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ingenio-organico-app/ingenio-organico-app/api/controllers"
	"github.com/ingenio-organico-app/ingenio-organico-app/api/middleware"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/adminauth"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/catalog"
	checkoutsvc "github.com/ingenio-organico-app/ingenio-organico-app/internal/checkout"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/media"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/orders"
	"github.com/ingenio-organico-app/ingenio-organico-app/internal/stats"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/logger"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/metrics"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/redis"
)

// Dependencies collects everything the router wires into handlers.
type Dependencies struct {
	Config *config.Config
	Logger *logger.Logger

	Redis   *redis.Client
	Pingers map[string]controllers.Pinger

	AuthService     adminauth.Service
	CatalogService  catalog.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
	StatsService    stats.Service
	MediaService    media.Service

	MetricsRegistry *prometheus.Registry
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	logg := deps.Logger
	httpMetrics := metrics.NewHTTPMetrics(deps.MetricsRegistry)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, deps.Pingers))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/storefront", controllers.Storefront(deps.CatalogService, logg))
		r.Post("/checkout/quote", controllers.CheckoutQuote(deps.CheckoutService, logg))
		r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))

		loginLimit := middleware.LoginRateLimit(deps.Redis, middleware.DefaultLoginRateLimitPolicy(), logg)
		r.With(loginLimit).Post("/auth/login", controllers.AdminLogin(deps.AuthService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(deps.Config.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.CatalogService, logg))
			r.Post("/", controllers.CreateProduct(deps.CatalogService, logg))
			r.Post("/seed", controllers.SeedProducts(deps.CatalogService, logg))
			r.Post("/reorder", controllers.ReorderProducts(deps.CatalogService, logg))
			r.Route("/{productID}", func(r chi.Router) {
				r.Patch("/", controllers.UpdateProduct(deps.CatalogService, logg))
				r.Delete("/", controllers.DeleteProduct(deps.CatalogService, logg))
				r.Put("/availability", controllers.SetProductAvailability(deps.CatalogService, logg))
				r.Post("/move", controllers.MoveProduct(deps.CatalogService, logg))
				r.Post("/image", controllers.UploadProductImage(deps.MediaService, logg))
				r.Delete("/image", controllers.DeleteProductImage(deps.MediaService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/weeks", controllers.ListOrderWeeks(deps.OrdersService, logg))
			r.Route("/weeks/{weekID}", func(r chi.Router) {
				r.Get("/", controllers.ListWeekOrders(deps.OrdersService, logg))
				r.Post("/reorder", controllers.ReorderOrders(deps.OrdersService, logg))
			})
			r.Route("/{orderID}", func(r chi.Router) {
				r.Patch("/customer", controllers.RenameOrderCustomer(deps.OrdersService, logg))
				r.Post("/move", controllers.MoveOrder(deps.OrdersService, logg))
				r.Delete("/", controllers.DeleteOrder(deps.OrdersService, logg))
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/{weekID}", controllers.WeeklyStats(deps.StatsService, logg))
			r.Get("/{weekID}/share", controllers.WeeklyShareMessage(deps.StatsService, logg))
			r.Get("/{weekID}/stream", controllers.StreamWeeklyStats(deps.StatsService, logg))
		})
	})

	return r
}
