package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"esports-schedule/internal/http/handlers"
)

// Routes groups the handlers mounted by NewRouter. Settings and Admin are optional.
type Routes struct {
	Handler      *handlers.Handler
	Settings     *handlers.SettingsHandler
	Admin        *handlers.AdminHandler
	AllowOrigins []string
	Logger       *slog.Logger
}

// NewRouter registers HTTP routes and wraps them with CORS.
func NewRouter(routes Routes) nethttp.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = handlers.NotFound(routes.Logger)
	r.MethodNotAllowedHandler = handlers.MethodNotAllowed(routes.Logger)

	h := routes.Handler
	r.HandleFunc("/", h.Root).Methods(nethttp.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = handlers.NotFound(routes.Logger)
	api.MethodNotAllowedHandler = handlers.MethodNotAllowed(routes.Logger)
	api.HandleFunc("/schedule", h.Schedule).Methods(nethttp.MethodGet)
	api.HandleFunc("/schedule/manifest", h.Manifest).Methods(nethttp.MethodGet)
	api.HandleFunc("/cards", h.Cards).Methods(nethttp.MethodGet)

	if s := routes.Settings; s != nil {
		api.HandleFunc("/settings/backend", s.GetBackend).Methods(nethttp.MethodGet)
		api.HandleFunc("/settings/backend", s.PutBackend).Methods(nethttp.MethodPut)
		api.HandleFunc("/clubs", s.ListClubs).Methods(nethttp.MethodGet)
		api.HandleFunc("/clubs", s.AddClub).Methods(nethttp.MethodPost)
		api.HandleFunc("/clubs/{index}", s.UpdateClub).Methods(nethttp.MethodPut)
		api.HandleFunc("/clubs/{index}", s.DeleteClub).Methods(nethttp.MethodDelete)
	}
	if routes.Admin != nil {
		r.HandleFunc("/admin/refresh", routes.Admin.RefreshSchedule).Methods(nethttp.MethodPost)
	}

	origins := routes.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			nethttp.MethodHead,
			nethttp.MethodGet,
			nethttp.MethodPost,
			nethttp.MethodPut,
			nethttp.MethodDelete,
		},
		AllowedOrigins: origins,
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	})
	return c.Handler(r)
}
