package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withAudit)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)

		r.Post("/auth/signup", h.signup)
		r.Post("/auth/login", h.login)
		r.Post("/auth/password-strength", h.passwordStrength)
		r.Post("/auth/request-reset", h.requestReset)
		r.Post("/auth/reset", h.resetPassword)

		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/invest", h.invest)
		r.Get("/invest", h.listInvestments)
		r.Get("/invest/wallet", h.wallet)
		r.Post("/invest/wallet/deposit", h.deposit)
		r.Get("/invest/portfolio", h.portfolio)
		r.Get("/invest/portfolio/insights", h.insights)

		r.Get("/profile", h.getProfile)
		r.Put("/profile", h.updateProfile)

		r.Get("/logs", h.logs)
	})

	// catalog writes require an admin identity
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.admin)

		r.Post("/products", h.createProduct)
		r.Put("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)
	})

	return router
}
