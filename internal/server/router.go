// Package server assembles the repositories, services and handlers behind the
// request pipeline.
package server

import (
	"database/sql"
	"net/http"

	"github.com/georgemunganga/hospo-ops/internal/config"
	"github.com/georgemunganga/hospo-ops/internal/middleware"
	"github.com/georgemunganga/hospo-ops/internal/modules/employee"
	"github.com/georgemunganga/hospo-ops/internal/modules/eod"
	"github.com/georgemunganga/hospo-ops/internal/modules/square"
	"github.com/georgemunganga/hospo-ops/internal/modules/store"
	"github.com/georgemunganga/hospo-ops/internal/modules/system"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Repositories holds one storage backend per resource.
type Repositories struct {
	Stores    store.Repository
	Employees employee.Repository
	Eod       eod.Repository
	Square    square.Repository
}

// PostgresRepositories returns repositories backed by conn.
func PostgresRepositories(conn *sql.DB) Repositories {
	return Repositories{
		Stores:    store.NewPostgresRepository(conn),
		Employees: employee.NewPostgresRepository(conn),
		Eod:       eod.NewPostgresRepository(conn),
		Square:    square.NewPostgresRepository(conn),
	}
}

// MemoryRepositories returns in-process repositories with store deletes
// cascading to employees and EOD reports.
func MemoryRepositories() Repositories {
	stores := store.NewMemoryRepository()
	employees := employee.NewMemoryRepository(stores)
	reports := eod.NewMemoryRepository(stores)
	stores.OnDelete(employees.DeleteByStore)
	stores.OnDelete(reports.DeleteByStore)
	return Repositories{
		Stores:    stores,
		Employees: employees,
		Eod:       reports,
		Square:    square.NewMemoryRepository(),
	}
}

// New constructs the root http.Handler with the pipeline and every route applied.
func New(cfg *config.Config, logger *logrus.Logger, repos Repositories) http.Handler {
	router := chi.NewRouter()

	// ── Pipeline ────────────────────────────────────────────
	router.Use(middleware.Pipeline(middleware.Options{
		Logger:         logger,
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:        middleware.NewFixedWindowLimiter(cfg.RateLimitPermits, cfg.RateLimitWindow),
	})...)
	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// ── System ──────────────────────────────────────────────
	system.NewHandler().RegisterRoutes(router)

	// ── Resources ───────────────────────────────────────────
	store.NewHandler(store.NewService(repos.Stores)).RegisterRoutes(router)
	employee.NewHandler(employee.NewService(repos.Employees, repos.Stores)).RegisterRoutes(router)
	eod.NewHandler(eod.NewService(repos.Eod, repos.Stores)).RegisterRoutes(router)

	// ── Square ──────────────────────────────────────────────
	verifier := square.NewVerifier(cfg.SquareSignatureKey, cfg.IsDevelopment())
	squareService := square.NewService(repos.Square, verifier, cfg.SquareDefaultStoreID)
	square.NewHandler(squareService).RegisterRoutes(router)

	return router
}
