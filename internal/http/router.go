package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"ginsengcms/internal/config"
	"ginsengcms/internal/domain/user"
	"ginsengcms/internal/http/handlers"
	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/auth"
	"ginsengcms/internal/services/careers"
	"ginsengcms/internal/services/catalog"
	"ginsengcms/internal/services/companyinfo"
	"ginsengcms/internal/services/inbox"
	"ginsengcms/internal/services/newsletters"
	"ginsengcms/internal/services/newsroom"
	"ginsengcms/internal/services/projects"
	"ginsengcms/internal/services/users"
	"ginsengcms/internal/storage"
)

// RouterDependencies holds everything the HTTP surface needs.
type RouterDependencies struct {
	Config      config.Cfg
	Redis       *redis.Client
	Auth        *auth.Service
	Users       *users.Service
	Projects    *projects.Service
	Catalog     *catalog.Service
	Newsroom    *newsroom.Service
	Careers     *careers.Service
	Inbox       *inbox.Service
	Newsletters *newsletters.Service
	Company     *companyinfo.Service
	Storage     storage.Storage
}

// NewRouter wires the public site API, the auth endpoints and the
// role-guarded admin API.
func NewRouter(deps RouterDependencies) http.Handler {
	cfg := deps.Config
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public site API: read-only content plus the handful of open
		// write endpoints, which are rate limited.
		r.Get("/projects", handlers.ListProjects(deps.Projects, true))
		r.Get("/projects/{slug}", handlers.GetProjectBySlug(deps.Projects))
		r.Get("/products", handlers.ListProducts(deps.Catalog, true))
		r.Get("/products/{slug}", handlers.GetProductBySlug(deps.Catalog))
		r.Get("/categories", handlers.ListCategories(deps.Catalog))
		r.Get("/origins", handlers.ListOrigins(deps.Catalog))
		r.Get("/news", handlers.ListArticles(deps.Newsroom, true))
		r.Get("/news/{slug}", handlers.GetArticleBySlug(deps.Newsroom))
		r.Get("/careers", handlers.ListPositions(deps.Careers, true))
		r.Get("/careers/{slug}", handlers.GetPositionBySlug(deps.Careers))
		r.Get("/company", handlers.GetCompanyInfo(deps.Company))

		r.Group(func(r chi.Router) {
			r.Use(middlewarex.RateLimit(deps.Redis, "public-write", cfg.Auth.RateLimitPerMin))
			r.Post("/careers/{id}/apply", handlers.Apply(deps.Careers))
			r.Post("/contacts", handlers.SubmitContact(deps.Inbox))
			r.Post("/newsletter/subscribe", handlers.Subscribe(deps.Newsletters))
			r.Post("/newsletter/unsubscribe", handlers.Unsubscribe(deps.Newsletters))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarex.RateLimit(deps.Redis, "auth", cfg.Auth.RateLimitPerMin))
			r.Post("/auth/login", handlers.Login(deps.Auth, cfg.Auth.CookieName, cfg.Auth.TokenTTL))
			r.Post("/auth/refresh", handlers.Refresh(deps.Auth, cfg.Auth.CookieName, cfg.Auth.TokenTTL))
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarex.Authenticate(deps.Auth, cfg.Auth.CookieName))
			r.Get("/auth/me", handlers.Me())
			r.Post("/auth/logout", handlers.Logout(cfg.Auth.CookieName))
			r.Post("/auth/change-password", handlers.ChangePassword(deps.Auth))
		})

		// Admin API: everything requires a session; mutating content
		// needs editor, account and subscriber management needs admin.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarex.Authenticate(deps.Auth, cfg.Auth.CookieName))

			r.Group(func(r chi.Router) {
				r.Use(middlewarex.RequireRole(user.RoleAdmin, user.RoleEditor, user.RoleViewer))

				r.Get("/projects", handlers.ListProjects(deps.Projects, false))
				r.Get("/projects/{id}", handlers.GetProject(deps.Projects))
				r.Get("/products", handlers.ListProducts(deps.Catalog, false))
				r.Get("/products/{id}", handlers.GetProduct(deps.Catalog))
				r.Get("/news", handlers.ListArticles(deps.Newsroom, false))
				r.Get("/news/{id}", handlers.GetArticle(deps.Newsroom))
				r.Get("/careers", handlers.ListPositions(deps.Careers, false))
				r.Get("/careers/{id}", handlers.GetPosition(deps.Careers))
				r.Get("/applications", handlers.ListApplications(deps.Careers))
				r.Get("/applications/{id}", handlers.GetApplication(deps.Careers))
				r.Get("/contacts", handlers.ListContacts(deps.Inbox))
				r.Get("/contacts/{id}", handlers.GetContact(deps.Inbox))
				r.Get("/campaigns", handlers.ListCampaigns(deps.Newsletters))
				r.Get("/campaigns/{id}", handlers.GetCampaign(deps.Newsletters))
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarex.RequireRole(user.RoleAdmin, user.RoleEditor))

				r.Post("/projects", handlers.CreateProject(deps.Projects))
				r.Put("/projects/{id}", handlers.UpdateProject(deps.Projects))
				r.Delete("/projects/{id}", handlers.DeleteProject(deps.Projects))

				r.Post("/products", handlers.CreateProduct(deps.Catalog))
				r.Put("/products/{id}", handlers.UpdateProduct(deps.Catalog))
				r.Post("/products/{id}/images", handlers.AddProductImage(deps.Catalog))
				r.Delete("/products/{id}", handlers.DeleteProduct(deps.Catalog))

				r.Post("/categories", handlers.CreateCategory(deps.Catalog))
				r.Put("/categories/{id}", handlers.UpdateCategory(deps.Catalog))
				r.Delete("/categories/{id}", handlers.DeleteCategory(deps.Catalog))
				r.Post("/origins", handlers.CreateOrigin(deps.Catalog))
				r.Put("/origins/{id}", handlers.UpdateOrigin(deps.Catalog))
				r.Delete("/origins/{id}", handlers.DeleteOrigin(deps.Catalog))

				r.Post("/news", handlers.CreateArticle(deps.Newsroom))
				r.Put("/news/{id}", handlers.UpdateArticle(deps.Newsroom))
				r.Delete("/news/{id}", handlers.DeleteArticle(deps.Newsroom))

				r.Post("/careers", handlers.CreatePosition(deps.Careers))
				r.Put("/careers/{id}", handlers.UpdatePosition(deps.Careers))
				r.Post("/careers/{id}/close", handlers.ClosePosition(deps.Careers))
				r.Delete("/careers/{id}", handlers.DeletePosition(deps.Careers))
				r.Patch("/applications/{id}/status", handlers.UpdateApplicationStatus(deps.Careers))
				r.Delete("/applications/{id}", handlers.DeleteApplication(deps.Careers))

				r.Patch("/contacts/{id}/status", handlers.UpdateContactStatus(deps.Inbox))
				r.Delete("/contacts/{id}", handlers.DeleteContact(deps.Inbox))

				r.Post("/campaigns", handlers.CreateCampaign(deps.Newsletters))
				r.Post("/campaigns/{id}/send", handlers.SendCampaign(deps.Newsletters))

				r.Put("/company", handlers.UpdateCompanyInfo(deps.Company))

				r.Group(func(r chi.Router) {
					r.Use(middlewarex.RateLimit(deps.Redis, "upload", cfg.Auth.RateLimitPerMin))
					r.Post("/uploads", handlers.Upload(deps.Storage, cfg.Upload))
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middlewarex.RequireRole(user.RoleAdmin))

				r.Get("/users", handlers.ListUsers(deps.Users))
				r.Get("/users/stats", handlers.UserStats(deps.Users))
				r.Get("/users/{id}", handlers.GetUser(deps.Users))
				r.Post("/users", handlers.CreateUser(deps.Users))
				r.Put("/users/{id}", handlers.UpdateUser(deps.Users))
				r.Delete("/users/{id}", handlers.DeleteUser(deps.Users))
				r.Get("/subscribers", handlers.ListSubscribers(deps.Newsletters))
			})
		})
	})

	// Locally stored uploads are served straight off disk.
	if cfg.Upload.Dir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir))))
	}

	return r
}
