package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/approval-workflow/internal/category"
	"github.com/frahmantamala/approval-workflow/internal/directory"
	"github.com/frahmantamala/approval-workflow/internal/expense"
	"github.com/frahmantamala/approval-workflow/internal/transport/middleware"
	"github.com/frahmantamala/approval-workflow/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes wires the REST surface. Everything behind the acting
// user middleware assumes an upstream already authenticated the caller.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	users middleware.ActorDirectory,
	directoryHandler *directory.Handler,
	expenseHandler *expense.Handler,
	categoryHandler *category.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// category catalog stays open: the submission form loads it before
		// any acting user is chosen
		if categoryHandler != nil {
			r.Get("/categories", categoryHandler.GetCategories)
		}

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.ActingUser(users, logger))

			if directoryHandler != nil {
				pr.Route("/users", func(ur chi.Router) {
					ur.Post("/", directoryHandler.CreateUser)
					ur.Get("/", directoryHandler.ListUsers)
					ur.Get("/managers", directoryHandler.ListManagers)
				})
			}

			if expenseHandler != nil {
				pr.Route("/expenses", func(er chi.Router) {
					er.Post("/", expenseHandler.SubmitExpense)
					er.Get("/", expenseHandler.OwnClaims)
					er.Get("/pending", expenseHandler.PendingActions)
					er.Get("/{id}", expenseHandler.GetExpense)
					er.Patch("/{id}/approve", expenseHandler.ApproveExpense)
					er.Patch("/{id}/reject", expenseHandler.RejectExpense)
				})
			}
		})
	})
}
