package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/prometheus"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
const ShutdownTimeout = 5 * time.Second

// Server serves sanitised content, menus and the sitemap.
type Server struct {
	Addr string

	ContentService rooftop.ContentService
	MenuService    rooftop.MenuService
	Sanitiser      rooftop.ResponseSanitiser

	Logger *slog.Logger

	// Metrics, if set, instruments every route and serves /metrics.
	Metrics *prometheus.Metrics

	// Limiter, if set, rate limits requests per client address.
	Limiter *ClientLimiter
}

// NewServer returns a new Server listening on addr.
func NewServer(addr string) *Server {
	return &Server{Addr: addr, Logger: slog.Default()}
}

// Handler returns the root handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.route(mux, "GET /wp-json/wp/v2/{base}", "content_list", s.handleContentIndex)
	s.route(mux, "GET /wp-json/wp/v2/{base}/{id}", "content", s.handleContentView)
	s.route(mux, "GET /wp-json/wp-api-menus/v2/menus", "menu_list", s.handleMenuIndex)
	s.route(mux, "GET /wp-json/wp-api-menus/v2/menus/{id}", "menu", s.handleMenuView)
	s.route(mux, "GET /wp-sitemap.xml", "sitemap", s.handleSitemap)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.Metrics != nil {
		mux.Handle("GET /metrics", s.Metrics.Handler())
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.Error(w, r, rooftop.Errorf(rooftop.ENOTFOUND, "No route was found matching the URL and request method."))
	})

	var h http.Handler = mux
	if s.Limiter != nil {
		h = s.Limiter.Middleware(h)
	}
	h = s.recoverPanics(h)
	h = s.logRequests(h)
	return requestID(h)
}

func (s *Server) route(mux *http.ServeMux, pattern, name string, fn http.HandlerFunc) {
	var h http.Handler = fn
	if s.Metrics != nil {
		h = s.Metrics.Middleware(name, h)
	}
	mux.Handle(pattern, h)
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// request builds the sanitising context of r. The scheme honours
// X-Forwarded-Proto so links keep matching behind a TLS terminating proxy.
func request(r *http.Request, c *rooftop.Content) *rooftop.Request {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := r.Header.Get("X-Forwarded-Proto"); proto {
	case "http", "https":
		scheme = proto
	}
	return &rooftop.Request{Scheme: scheme, Host: r.Host, Content: c}
}
