package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campuseats/ordering-gateway/api/controllers"
	"github.com/campuseats/ordering-gateway/api/middleware"
	"github.com/campuseats/ordering-gateway/internal/auth"
	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/internal/catalog"
	"github.com/campuseats/ordering-gateway/internal/checkout"
	"github.com/campuseats/ordering-gateway/internal/media"
	"github.com/campuseats/ordering-gateway/internal/orders"
	"github.com/campuseats/ordering-gateway/internal/restaurants"
	"github.com/campuseats/ordering-gateway/internal/session"
	"github.com/campuseats/ordering-gateway/internal/state"
	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Registry *prometheus.Registry

	State       state.Store
	StatePinger controllers.Pinger
	Upstream    controllers.Pinger
	Blob        controllers.Pinger

	Guard       *session.Guard
	Auth        *auth.Service
	Cart        *cart.Service
	Checkout    *checkout.Orchestrator
	Catalog     *catalog.Service
	Restaurants *restaurants.Service
	Orders      *orders.Service
	Media       *media.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.SessionID(cfg.Session, logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg,
			controllers.ReadyCheck{Name: "session state", Pinger: d.StatePinger},
			controllers.ReadyCheck{Name: "upstream", Pinger: d.Upstream},
			controllers.ReadyCheck{Name: "blob store", Pinger: d.Blob},
		))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(d.Auth, logg))
		r.Post("/register", controllers.Register(d.Auth, logg))
		r.Post("/forgot-password", controllers.ForgotPassword(d.Auth, logg))
		r.Post("/reset-password", controllers.ResetPassword(d.Auth, logg))
		r.Post("/logout", controllers.Logout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog reads, open to any signed-in role.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(d.Guard, "", logg))

			r.Get("/products", controllers.ProductList(d.Catalog, logg))
			r.Get("/products/{id}", controllers.ProductDetail(d.Catalog, logg))
			r.Get("/restaurants", controllers.RestaurantList(d.Restaurants, logg))
			r.Get("/restaurants/{id}", controllers.RestaurantDetail(d.Restaurants, logg))
		})

		// Customer surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(d.Guard, enums.RoleCliente, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(d.Cart, logg))
				r.Post("/items", controllers.CartAddItem(d.Cart, logg))
				r.Put("/items/{productId}", controllers.CartChangeQuantity(d.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Cart, logg))
				r.Delete("/", controllers.CartClear(d.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(d.Checkout, logg))
			r.Get("/checkout/notice", controllers.CheckoutNotice(d.State, logg))
			r.Get("/orders/history", controllers.OrderList(d.Orders, logg))
		})

		// POS surface.
		r.Route("/pos", func(r chi.Router) {
			r.Use(middleware.Guard(d.Guard, enums.RolePOS, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ProductList(d.Catalog, logg))
				r.Post("/", controllers.ProductCreate(d.Catalog, logg))
				r.Get("/{id}", controllers.ProductDetail(d.Catalog, logg))
				r.Put("/{id}", controllers.ProductUpdate(d.Catalog, logg))
				r.Delete("/{id}", controllers.ProductDelete(d.Catalog, logg))
			})

			r.Route("/restaurants", func(r chi.Router) {
				r.Get("/", controllers.RestaurantList(d.Restaurants, logg))
				r.Post("/", controllers.RestaurantCreate(d.Restaurants, logg))
				r.Get("/{id}", controllers.RestaurantDetail(d.Restaurants, logg))
				r.Put("/{id}", controllers.RestaurantUpdate(d.Restaurants, logg))
				r.Delete("/{id}", controllers.RestaurantDelete(d.Restaurants, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(d.Orders, logg))
				r.Put("/{id}/status", controllers.OrderUpdateStatus(d.Orders, logg))
				r.Put("/{id}/cancel", controllers.OrderCancel(d.Orders, logg))
			})

			r.Post("/media/{folder}", controllers.MediaUpload(d.Media, cfg.Blob, logg))
		})
	})

	return r
}
