package httpapi

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"donationledger/internal/http/handlers"
	"donationledger/internal/middleware"
)

// Options configures the router. Gatherer may be nil to hide /metrics.
// TrustedProxies lists the peers whose X-Forwarded-For is believed.
type Options struct {
	JWTSecret          string
	JWTIssuer          string
	RateLimitPerMinute int
	TrustedProxies     []*net.IPNet
	Gatherer           prometheus.Gatherer
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID(app.Logger),
		chimw.Recoverer,
		middleware.Logger(app.Logger),
	)

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	auth := middleware.AuthJWT(opts.JWTSecret, opts.JWTIssuer)
	limit := middleware.RateLimit(opts.RateLimitPerMinute, time.Minute, opts.TrustedProxies)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/query", app.Query)
			r.Get("/balances/{address}", app.Balance)
			r.Get("/projects/{address}/donations", app.DonationsList)
			r.Get("/projects/{address}/donations/total", app.DonationsTotal)
		})

		// limit runs after auth so callers are keyed by address
		r.Group(func(r chi.Router) {
			r.Use(auth, limit)
			r.Post("/execute", app.Execute)
			r.Post("/withdraw", app.Withdraw)
			r.Post("/projects/{address}/donations", app.DonationsCreate)
		})
	})

	return r
}
