package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/contact-api/internal/api/handlers"
	"github.com/baharkarakas/contact-api/internal/api/httpx"
	"github.com/baharkarakas/contact-api/internal/config"
	"github.com/baharkarakas/contact-api/internal/metrics"
	"github.com/baharkarakas/contact-api/internal/middleware"
	"github.com/baharkarakas/contact-api/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	UserSvc    *services.UserService
	ContactSvc *services.ContactService
	AddressSvc *services.AddressService
}

func NewRouter(d RouterDeps) http.Handler {
	metrics.Init()

	users := handlers.NewUserHandler(d.UserSvc)
	contacts := handlers.NewContactHandler(d.ContactSvc)
	addresses := handlers.NewAddressHandler(d.AddressSvc)
	authMW := middleware.NewAuthMiddleware(d.UserSvc)

	origins := d.Cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.HTTPMetrics, middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.TokenHeader},
		ExposedHeaders: []string{httpx.RequestIDHeader},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	r.Route("/api", func(r chi.Router) {
		// ---------- public ----------
		r.Post("/users", users.Register)
		r.Post("/users/login", users.Login)

		// ---------- authenticated ----------
		r.Group(func(r chi.Router) {
			r.Use(authMW.Auth)

			r.Get("/users/current", users.Current)
			r.Patch("/users/current", users.Update)
			r.Delete("/users/current", users.Logout)

			r.Route("/contacts", func(r chi.Router) {
				r.Post("/", contacts.Create)
				r.Get("/", contacts.Search)

				r.Route("/{contactId}", func(r chi.Router) {
					r.Get("/", contacts.Get)
					r.Put("/", contacts.Update)
					r.Delete("/", contacts.Delete)

					r.Post("/addresses", addresses.Create)
					r.Get("/addresses", addresses.List)
					r.Get("/addresses/{addressId}", addresses.Get)
					r.Put("/addresses/{addressId}", addresses.Update)
					r.Delete("/addresses/{addressId}", addresses.Delete)
				})
			})
		})
	})

	return r
}
