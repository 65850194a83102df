package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/igarnier/cosetta/pkg/cache"
	"github.com/igarnier/cosetta/pkg/catalog"
	"github.com/igarnier/cosetta/pkg/coset"
	"github.com/igarnier/cosetta/pkg/pipeline"
)

// serveMaxCosets caps per-request enumeration size on the server. A request
// may ask for less but never more.
const serveMaxCosets = 5_000_000

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the enumeration HTTP API",
		Long: `Run the enumeration HTTP API.

The server exposes:

  POST /api/v1/enumerate      run an enumeration (pipeline options as JSON)
  GET  /api/v1/catalog        list recorded enumerations
  GET  /api/v1/catalog/{hash} fetch one recorded enumeration
  GET  /healthz               liveness probe

With --redis-url, finished tables are cached in Redis so multiple instances
share results; otherwise the local file cache is used. With --mongo-url (or
COSETTA_MONGO_URL), every completed enumeration is recorded in the catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis connection URL for the shared table cache")
	cmd.Flags().StringVar(&mongoURL, "mongo-url", "", "MongoDB connection URL for the catalog (default $COSETTA_MONGO_URL)")

	return cmd
}

// server holds the dependencies of the HTTP handlers.
type server struct {
	cli    *CLI
	runner *pipeline.Runner
	store  *catalog.Store
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURL string) error {
	srvCache, err := c.serveCache(ctx, redisURL)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(srvCache, serveKeyer(), c.Logger)
	defer runner.Close()

	s := &server{cli: c, runner: runner}
	if mongoURL != "" || os.Getenv("COSETTA_MONGO_URL") != "" {
		store, err := catalogStore(ctx, mongoURL)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())
		s.store = store
		c.Logger.Info("catalog enabled")
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

// serveKeyer namespaces server cache entries under the application name, so
// a Redis instance shared with other applications stays collision-free.
func serveKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, appName+":")
}

func (c *CLI) serveCache(ctx context.Context, redisURL string) (cache.Cache, error) {
	if redisURL == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	c.Logger.Info("redis cache enabled")
	return rc, nil
}

// routes builds the chi router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/enumerate", s.handleEnumerate)
		r.Get("/catalog", s.handleCatalogList)
		r.Get("/catalog/{hash}", s.handleCatalogShow)
	})

	return r
}

// logRequests attaches the CLI logger to the request context and logs each
// request on completion. Handlers retrieve it with loggerFromContext.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(withLogger(r.Context(), s.cli.Logger))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		loggerFromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// enumerateResponse is the body returned by POST /api/v1/enumerate.
type enumerateResponse struct {
	PresentationHash string          `json:"presentation_hash"`
	Index            int             `json:"index"`
	Allocated        int             `json:"allocated"`
	Cached           bool            `json:"cached"`
	Table            *coset.Snapshot `json:"table"`
}

func (s *server) handleEnumerate(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())

	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	if opts.MaxCosets <= 0 || opts.MaxCosets > serveMaxCosets {
		opts.MaxCosets = serveMaxCosets
	}
	// The table is the only artifact the API returns inline.
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, coset.ErrCosetLimit) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err)
		return
	}

	if s.store != nil {
		compiled, err := s.runner.Load(opts)
		if err == nil {
			entry := catalog.NewEntry(result.Snapshot, compiled.CanonicalBytes())
			if err := s.store.Save(r.Context(), entry); err != nil {
				logger.Warn("catalog save failed", "err", err)
			}
		}
	}

	writeJSON(w, http.StatusOK, enumerateResponse{
		PresentationHash: result.PresentationHash,
		Index:            result.Snapshot.Index,
		Allocated:        result.Snapshot.Allocated,
		Cached:           result.CacheInfo.TableHit,
		Table:            result.Snapshot,
	})
}

func (s *server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("catalog not configured"))
		return
	}
	entries, err := s.store.List(r.Context(), 100)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *server) handleCatalogShow(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("catalog not configured"))
		return
	}
	entry, err := s.store.FindByHash(r.Context(), chi.URLParam(r, "hash"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
