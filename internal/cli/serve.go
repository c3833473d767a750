package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/bracket-backend/internal/engine"
	"github.com/DoyleJ11/bracket-backend/internal/httpapi"
	"github.com/DoyleJ11/bracket-backend/internal/hub"
	"github.com/DoyleJ11/bracket-backend/internal/metrics"
	"github.com/DoyleJ11/bracket-backend/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	// Sessions outlive the signal until in-flight requests have drained.
	hubCtx, stopHub := context.WithCancel(context.WithoutCancel(ctx))
	defer stopHub()
	h := hub.NewHub(hubCtx, hub.Config{
		Deps:             engine.Deps{Catalog: cat},
		NewRand:          randFactory(cfg.Random.Seed),
		Store:            st,
		Metrics:          m,
		Logger:           log,
		AutoAdvance:      cfg.AutoAdvance.Enabled,
		AutoAdvanceDelay: cfg.AutoAdvance.Delay,
	})

	srv := &http.Server{
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Hub:     h,
			Catalog: cat,
			Rules:   cfg.Tournament,
			Store:   st,
			Logger:  log,
		}, m, cfg.CORS.Origins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	log.Info("listening", zap.String("addr", ln.Addr().String()), zap.String("store", cfg.Store.Driver))
	return serveUntilDone(ctx, srv, ln, log, stopHub)
}

// serveUntilDone serves on ln until ctx ends, then drains in-flight requests
// and only after that calls afterShutdown.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener, log *zap.Logger, afterShutdown func()) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		defer afterShutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
