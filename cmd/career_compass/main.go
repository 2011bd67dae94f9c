// Package main provides the career_compass command line: one-shot and interactive
// recommendation runs, a response diagnostic, and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/career-compass/internal/config"
	"github.com/jonathan/career-compass/internal/logging"
	"github.com/jonathan/career-compass/internal/recommend"
)

var (
	configFile string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:           "career_compass",
	Short:         "Career recommendations grounded in live search",
	Long:          "Career Compass collects an education profile and preferences, asks Gemini for 15-20 grounded job recommendations, and groups them by sector and competition level.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().String("api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().String("model", "", "Model used for recommendations")

	bindFlags(rootCmd, map[string]string{
		"log-level":  config.KeyLogLevel,
		"log-format": config.KeyLogFormat,
		"api-key":    config.KeyGeminiAPIKey,
		"model":      config.KeyModel,
	})
}

// bindFlags lets each named flag override its config key when set.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for name, key := range keys {
		flag := cmd.PersistentFlags().Lookup(name)
		if flag == nil {
			flag = cmd.Flags().Lookup(name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtime is what every command needs once flags are parsed.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// loadRuntime merges defaults, the config file, the environment and flags.
func loadRuntime(vp *viper.Viper, path string) (*runtime, error) {
	cfg, err := config.Load(vp, path)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

// requester builds a Gemini-backed requester from the loaded configuration.
func (rt *runtime) requester(factory recommend.ClientFactory) *recommend.Requester {
	return recommend.NewRequester(rt.cfg.GeminiAPIKey, recommend.Options{
		Model:          rt.cfg.Model,
		ThinkingBudget: int32(rt.cfg.ThinkingBudget), // bounded by Config.Validate
		MaxSources:     rt.cfg.MaxSources,
		MaxAttempts:    rt.cfg.MaxAttempts,
		RequestTimeout: rt.cfg.RequestTimeout,
	}, factory, rt.logger)
}

func (rt *runtime) sync() {
	_ = rt.logger.Sync()
}
