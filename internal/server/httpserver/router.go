package httpserver

import (
	"net/http"

	"github.com/yndnr/simple-redis/internal/server/httpserver/handler"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

// RouterConfig holds the dependencies of the admin router.
type RouterConfig struct {
	// Keyspace reports the key count for /healthz.
	Keyspace handler.Keyspace

	// Connections reports open RESP connections for /healthz.
	Connections handler.Connections

	// Metrics serves /metrics. Nil leaves the route unregistered.
	Metrics http.Handler

	// Logger for request logging.
	Logger logger.Logger
}

// NewRouter creates the admin router with all routes and middleware.
//
// Order: Logger -> RequestID -> Recover -> AccessLog -> Handler
func NewRouter(cfg *RouterConfig) http.Handler {
	l := cfg.Logger
	if l == nil {
		l = logger.Default()
	}

	h := handler.New(cfg.Keyspace, cfg.Connections, l)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", h)
	mux.Handle("GET /version", h)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.HandleFunc("/", h.NotFound)

	return Chain(mux,
		WithLogger(l),
		RequestID(),
		Recover(),
		AccessLog(),
	)
}
