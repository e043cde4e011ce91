package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ldrlegend/backend-pro/internal/attributes"
	"github.com/ldrlegend/backend-pro/internal/auth"
	"github.com/ldrlegend/backend-pro/internal/masterdata/countries"
	"github.com/ldrlegend/backend-pro/internal/masterdata/operators"
	"github.com/ldrlegend/backend-pro/internal/masterdata/vendors"
	"github.com/ldrlegend/backend-pro/internal/products"
	"github.com/ldrlegend/backend-pro/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthHandler       *auth.Handler
	UsersHandler      *users.Handler
	ProductsHandler   *products.Handler
	VendorsHandler    *vendors.Handler
	OperatorsHandler  *operators.Handler
	CountriesHandler  *countries.Handler
	AttributesHandler *attributes.Handler
}

// NewRouter constructs the chi.Router with catalog defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	r.Route("/users", params.UsersHandler.MountRoutes)
	r.Route("/products", params.ProductsHandler.MountRoutes)
	r.Route("/vendors", params.VendorsHandler.MountRoutes)
	r.Route("/operators", params.OperatorsHandler.MountRoutes)
	r.Route("/countries", params.CountriesHandler.MountRoutes)
	params.AttributesHandler.MountRoutes(r)

	return r
}
