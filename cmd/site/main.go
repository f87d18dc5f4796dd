// cmd/site/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "folio/internal/infra/config"
	"folio/internal/infra/logging"
	shared "folio/internal/platform/di/shared"
	siteDI "folio/internal/platform/di/site"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.v.Load().(http.Handler).ServeHTTP(w, r)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func main() {
	cfg := appcfg.Load()

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("boot")

	// ─────────────────────────────────────────────────────────────
	// Start listening ASAP with a healthz-only mux
	// ─────────────────────────────────────────────────────────────
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", healthz)
	switcher := newAtomicHandler(healthMux)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           switcher,
		ReadHeaderTimeout: 10 * time.Second,
		// uploads of 3D models need more than the default
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var contHolder atomic.Pointer[siteDI.Container]

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// ─────────────────────────────────────────────────────────────
	// DI init in background; then swap handler to the site router
	// ─────────────────────────────────────────────────────────────
	go func() {
		initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		infra, err := shared.NewInfra(initCtx, cfg, logger)
		if err != nil {
			log.Error("shared infra init failed; serving /healthz only", zap.Error(err))
			return
		}
		cont, err := siteDI.NewContainer(initCtx, infra, logger)
		if err != nil {
			_ = infra.Close()
			log.Error("site di init failed; serving /healthz only", zap.Error(err))
			return
		}

		select {
		case <-ctx.Done():
			_ = cont.Close()
			return
		default:
		}

		contHolder.Store(cont)
		cont.Start(ctx)
		switcher.Store(cont.Router())
		log.Info("handler switched to site router")
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	}
	if cont := contHolder.Load(); cont != nil {
		if err := cont.Close(); err != nil {
			log.Error("container close error", zap.Error(err))
		}
	}
	log.Info("server stopped")
}
