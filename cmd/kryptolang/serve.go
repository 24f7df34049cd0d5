package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/TheusHen/kryptolang/kryptolang/config"
	"github.com/TheusHen/kryptolang/kryptolang/service"
	httptransport "github.com/TheusHen/kryptolang/kryptolang/transport/http"
	quictransport "github.com/TheusHen/kryptolang/kryptolang/transport/quic"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the collaborator services and the gateway",
	Long: `Serve the parser, lexicon, grammar and crypto services together with the
gateway on one address, over HTTP or QUIC.

With --remote-collaborators the gateway calls the collaborator addresses from
the configuration instead of the in-process services.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		local := service.NewLocal(cfg.SessionTTL, logger)
		go local.RunSweeper(ctx, cfg.SweepInterval)

		var upstream service.Collaborators = local
		if remote, _ := cmd.Flags().GetBool("remote-collaborators"); remote {
			c, closeFn := collaboratorClient(cfg)
			defer closeFn()
			upstream = c
		}
		gateway := service.NewGateway(upstream, logger)

		switch cfg.Transport {
		case config.TransportQUIC:
			return serveQUIC(ctx, cfg, local, gateway, logger)
		default:
			return serveHTTP(ctx, cfg, local, gateway, logger)
		}
	},
}

func init() {
	serveCmd.Flags().StringP("listen", "l", "", "listen address (default from config, :5000)")
	serveCmd.Flags().Bool("remote-collaborators", false, "run the gateway against the configured collaborator addresses")
	rootCmd.AddCommand(serveCmd)
}

func collaboratorClient(cfg *config.Config) (service.Collaborators, func() error) {
	if cfg.Transport == config.TransportQUIC {
		c := quictransport.NewClient(cfg.Resolver())
		return c, c.Close
	}
	return httptransport.NewClient(cfg.Resolver(), nil), func() error { return nil }
}

func serveHTTP(ctx context.Context, cfg *config.Config, local *service.Local, gateway *service.Gateway, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           httptransport.NewHandler(local, gateway, reg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("serving", "transport", config.TransportHTTP, "addr", cfg.Listen)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			return srv.Close()
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("server stopped")
		return nil
	}
}

func serveQUIC(ctx context.Context, cfg *config.Config, local *service.Local, gateway *service.Gateway, logger *slog.Logger) error {
	ln, err := quictransport.Listen(cfg.Listen)
	if err != nil {
		return err
	}
	defer ln.Close()

	logger.Info("serving", "transport", config.TransportQUIC, "addr", ln.AddrString())
	if err := quictransport.NewServer(local, gateway, logger).Serve(ctx, ln); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
