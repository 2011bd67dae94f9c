package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/server"
	"github.com/jonathan/career-compass/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the option catalog, recommendations (plain and streamed) and dashboard grouping.`,
	RunE:  runServe,
}

var serveOrigins []string

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "allowed-origin", nil, "CORS origin allowed to call the API, repeatable (default any)")
	bindFlags(serveCmd, map[string]string{"port": config.KeyPort})
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(v, configFile)
	if err != nil {
		return err
	}
	defer rt.sync()

	jwtConfig, err := rt.cfg.JWT()
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	if rt.cfg.GeminiAPIKey == "" {
		rt.logger.Warn("GEMINI_API_KEY is not set; recommendation requests will fail")
	}

	srv, err := server.New(server.Config{
		Addr:           rt.cfg.Addr(),
		Recommender:    rt.requester(nil),
		RateLimit:      ratelimit.NewConfig(rt.cfg.RateLimitEnabled, rt.cfg.RateLimitPerHour, rt.cfg.RateLimitBurst),
		JWT:            jwtConfig,
		AllowedOrigins: serveOrigins,
		Logger:         rt.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		rt.logger.Error("server exited", zap.Error(err))
		return err
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
