package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"dropxcult-admin/app/controller"
	"dropxcult-admin/app/middleware"
)

type Controllers struct {
	Stats         *controller.StatsController
	Product       *controller.ProductController
	Order         *controller.OrderController
	User          *controller.UserController
	CustomRequest *controller.CustomRequestController
}

// Options carries the non-controller pieces of the routing table
type Options struct {
	// StaticDir serves /templates/*; empty disables it
	StaticDir string
	// PreviewLimiter guards the raster, thumbnail and PDF endpoints; nil disables limiting
	PreviewLimiter *middleware.RateLimiter
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Instrument)

	limit := func(h http.HandlerFunc) http.HandlerFunc {
		if opts.PreviewLimiter == nil {
			return h
		}
		return opts.PreviewLimiter.Limit(h)
	}

	// Ping endpoint
	r.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)

	// Prometheus scrape endpoint
	r.Handle("/metrics", middleware.MetricsHandler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Dashboard
	api.HandleFunc("/stats", controllers.Stats.GetStats).Methods(http.MethodGet)

	// Products
	api.HandleFunc("/products", controllers.Product.List).Methods(http.MethodGet)
	api.HandleFunc("/products", controllers.Product.Create).Methods(http.MethodPost)
	api.HandleFunc("/products/{id}", controllers.Product.Get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", controllers.Product.Update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", controllers.Product.Delete).Methods(http.MethodDelete)

	// Orders and users
	api.HandleFunc("/orders", controllers.Order.List).Methods(http.MethodGet)
	api.HandleFunc("/users", controllers.User.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", controllers.User.Delete).Methods(http.MethodDelete)

	// Custom design requests
	custom := controllers.CustomRequest
	api.HandleFunc("/customize", custom.List).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}", custom.Get).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/action", custom.Action).Methods(http.MethodPost)
	api.HandleFunc("/customize/{id}/plan", custom.Plan).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/preview.png", limit(custom.PreviewPNG)).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/preview.html", custom.PreviewHTML).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/scene", custom.Scene).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/sheet.html", custom.SheetHTML).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/sheet.pdf", limit(custom.SheetPDF)).Methods(http.MethodGet)
	api.HandleFunc("/customize/{id}/thumbnail", limit(custom.Thumbnail)).Methods(http.MethodGet)

	// Garment templates referenced by render plans
	if opts.StaticDir != "" {
		r.PathPrefix("/templates/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods(http.MethodGet)
	}

	return r
}
