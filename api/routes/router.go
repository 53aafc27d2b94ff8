package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/visionhut/visionhut-backend/api/controllers"
	"github.com/visionhut/visionhut-backend/api/middleware"
	categorysvc "github.com/visionhut/visionhut-backend/internal/categories"
	couponsvc "github.com/visionhut/visionhut-backend/internal/coupons"
	"github.com/visionhut/visionhut-backend/internal/offers"
	rulesvc "github.com/visionhut/visionhut-backend/internal/rules"
	"github.com/visionhut/visionhut-backend/internal/staff"
	"github.com/visionhut/visionhut-backend/pkg/bigquery"
	"github.com/visionhut/visionhut-backend/pkg/config"
	"github.com/visionhut/visionhut-backend/pkg/db"
	"github.com/visionhut/visionhut-backend/pkg/enums"
	"github.com/visionhut/visionhut-backend/pkg/logger"
	"github.com/visionhut/visionhut-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	BigQuery        bigquery.Pinger
	Registry        *prometheus.Registry
	StaffService    staff.Service
	OffersService   offers.Service
	RuleService     rulesvc.Service
	CouponService   couponsvc.Service
	CategoryService categorysvc.Service
}

// NewRouter mounts the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.BigQuery))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.StaffService, logg))
	})

	r.Route("/api/v1/offers", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))
		r.Post("/calculate", controllers.Calculate(deps.OffersService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRoles(logg, enums.StaffRoleAdmin, enums.StaffRoleManager))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", controllers.ListRules(deps.RuleService, logg))
			r.Post("/", controllers.CreateRule(deps.RuleService, logg))
			r.Get("/{id}", controllers.GetRule(deps.RuleService, logg))
			r.Put("/{id}", controllers.UpdateRule(deps.RuleService, logg))
			r.Delete("/{id}", controllers.DeleteRule(deps.RuleService, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.ListCoupons(deps.CouponService, logg))
			r.Post("/", controllers.CreateCoupon(deps.CouponService, logg))
			r.Put("/{id}", controllers.UpdateCoupon(deps.CouponService, logg))
			r.Delete("/{id}", controllers.DeleteCoupon(deps.CouponService, logg))
		})

		r.Route("/category-discounts", func(r chi.Router) {
			r.Get("/", controllers.ListCategoryDiscounts(deps.CategoryService, logg))
			r.Post("/", controllers.CreateCategoryDiscount(deps.CategoryService, logg))
			r.Put("/{id}", controllers.UpdateCategoryDiscount(deps.CategoryService, logg))
			r.Delete("/{id}", controllers.DeleteCategoryDiscount(deps.CategoryService, logg))
		})
	})

	return r
}
