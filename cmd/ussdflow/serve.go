package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yawmintah/ussdflow"
	"github.com/yawmintah/ussdflow/internal/config"
	"github.com/yawmintah/ussdflow/internal/logging"
	"github.com/yawmintah/ussdflow/internal/metrics"
	redisadapter "github.com/yawmintah/ussdflow/pkg/adapters/redis"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/menu"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway-facing HTTP server",
	Long:  `Starts the dialog engine behind the JSON-over-HTTP contract USSD gateways speak.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		menuPath, _ := cmd.Flags().GetString("menu")
		addrFlag, _ := cmd.Flags().GetString("addr")

		// A .env file is optional.
		_ = godotenv.Load()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if addrFlag != "" {
			cfg.Addr = addrFlag
		}
		if menuPath != "" {
			cfg.MenuFile = menuPath
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))
		metrics.Init()

		m := menu.Feelings()
		if cfg.MenuFile != "" {
			m, err = menu.FromFile(cfg.MenuFile)
			if err != nil {
				return err
			}
		}

		opts := []ussdflow.Option{
			ussdflow.WithMenu(m),
			ussdflow.WithServiceAddress(cfg.ShortCode, cfg.Extension),
			ussdflow.WithLogger(logger),
			ussdflow.WithHooks(observe(logger)),
		}

		if cfg.Redis.Addr != "" {
			store := redisadapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
				redisadapter.WithTTL(time.Duration(cfg.Redis.TTL)))
			defer store.Close()
			opts = append(opts,
				ussdflow.WithStore(store),
				ussdflow.WithLocker(redisadapter.NewLocker(store.Client(), "ussd:")),
			)
			logger.Info("using redis session store", "addr", cfg.Redis.Addr, "ttl", time.Duration(cfg.Redis.TTL))
		} else {
			logger.Info("using in-memory session store")
		}

		svc := ussdflow.New(opts...)

		metrics.RegisterActiveSessions(func() int {
			ids, err := svc.Sessions.List(context.Background())
			if err != nil {
				return 0
			}
			return len(ids)
		})

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: svc.Handler(),
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting ussdflow server",
				"addr", srv.Addr,
				"service_address", fmt.Sprintf("*%s*%s#", cfg.ShortCode, cfg.Extension),
			)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("server stopped")
		}
		return nil
	},
}

// observe bridges engine lifecycle events to the logger and the
// Prometheus collectors.
func observe(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnScreenEnter: func(_ context.Context, e *domain.ScreenEvent) {
			logger.Debug("screen_enter", "session_id", e.SessionID, "screen", string(e.Screen))
			metrics.ScreenVisits.WithLabelValues(string(e.Screen)).Inc()
		},
		OnInvalidInput: func(_ context.Context, e *domain.ScreenEvent) {
			logger.Debug("invalid_input", "session_id", e.SessionID, "screen", string(e.Screen), "input", e.Input)
			metrics.InvalidSelections.WithLabelValues(string(e.Screen)).Inc()
		},
		OnDialogEnd: func(_ context.Context, e *domain.DialogEndEvent) {
			logger.Info("dialog_end", "session_id", e.SessionID, "outcome", e.Outcome)
			metrics.DialogsEnded.WithLabelValues(e.Outcome).Inc()
		},
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
}
