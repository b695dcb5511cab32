package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/auth"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/semantic"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Products   *service.ProductService
	Categories *service.CategoryService
	Reviews    *service.ReviewService
	Users      *service.UserService
	Orders     *service.OrderService
	Search     *service.SearchService
	Semantic   *semantic.Client
	JWT        *auth.JWTManager
	Health     *health.Handler
	Logger     *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))

	// Operational endpoints
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())

	validate := tokenValidator(deps.JWT)
	requireAuth := middleware.Auth(validate)
	optionalAuth := middleware.OptionalAuth(validate)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	productHandler := NewProductHandler(deps.Products, deps.Logger)
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Logger)
	reviewHandler := NewReviewHandler(deps.Reviews, deps.Logger)
	authHandler := NewAuthHandler(deps.Users, deps.Logger)
	orderHandler := NewOrderHandler(deps.Orders, deps.Logger)
	searchHandler := NewSearchHandler(deps.Search, deps.Logger)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/slug/{slug}", productHandler.GetProductBySlug)
		r.Get("/{id}", productHandler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})
	})

	r.Route("/api/products/{productId}/reviews", func(r chi.Router) {
		r.Get("/", reviewHandler.ListReviews)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", reviewHandler.CreateReview)
			r.Put("/{reviewId}", reviewHandler.UpdateReview)
			r.Delete("/{reviewId}", reviewHandler.DeleteReview)
		})
	})

	r.Route("/api/brands", func(r chi.Router) {
		r.With(middleware.CacheControl(300)).Get("/", productHandler.ListBrands)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", productHandler.CreateBrand)
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.With(middleware.CacheControl(300)).Get("/", categoryHandler.ListCategories)
		r.With(middleware.CacheControl(300)).Get("/tree", categoryHandler.CategoryTree)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)
			r.Post("/", categoryHandler.CreateCategory)
			r.Put("/{id}", categoryHandler.UpdateCategory)
		})
	})

	r.Route("/api/search", func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", searchHandler.Search)
		r.Get("/autosuggest", searchHandler.Autosuggest)

		if deps.Semantic != nil {
			semanticHandler := NewSemanticHandler(deps.Semantic, deps.Logger)
			r.Get("/semantic", semanticHandler.SemanticSearch)
			r.Get("/seasonal", semanticHandler.Seasonal)
			r.Post("/spell-correct", semanticHandler.SpellCorrect)
			r.Post("/caption", semanticHandler.Caption)
		}
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
	})

	return r
}

func tokenValidator(jwt *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
}
