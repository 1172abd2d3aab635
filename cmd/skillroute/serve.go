package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillroute/pkg/api"
	"github.com/jingkaihe/skillroute/pkg/logger"
	"github.com/jingkaihe/skillroute/pkg/presenter"
	"github.com/jingkaihe/skillroute/pkg/resolver"
	"github.com/jingkaihe/skillroute/pkg/skills"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Host  string
	Port  int
	Watch bool
}

// NewServeConfig creates a new ServeConfig with default values
func NewServeConfig() *ServeConfig {
	return &ServeConfig{
		Host:  "localhost",
		Port:  8080,
		Watch: true,
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the skill registry over HTTP",
	Long: `Start a local HTTP server exposing the skill registry: listing skills,
fetching a single skill, resolving requests, and triggering a registry
refresh. The registry snapshot is refreshed automatically when the skill
directories change, or on demand via POST /api/refresh.

The server will be available at http://localhost:8080 by default.`,
	Run: func(cmd *cobra.Command, _ []string) {
		config := getServeConfigFromFlags(cmd)
		runServeCommand(cmd.Context(), config)
	},
}

func init() {
	defaults := NewServeConfig()
	serveCmd.Flags().String("host", defaults.Host, "Host to bind the server to")
	serveCmd.Flags().Int("port", defaults.Port, "Port to bind the server to")
	serveCmd.Flags().Bool("watch", defaults.Watch, "Refresh the registry when skill directories change")
}

// getServeConfigFromFlags extracts serve configuration from command flags
func getServeConfigFromFlags(cmd *cobra.Command) *ServeConfig {
	config := NewServeConfig()

	if host, err := cmd.Flags().GetString("host"); err == nil {
		config.Host = host
	}
	if port, err := cmd.Flags().GetInt("port"); err == nil {
		config.Port = port
	}
	if watch, err := cmd.Flags().GetBool("watch"); err == nil {
		config.Watch = watch
	}

	return config
}

// validateServeConfig validates the serve configuration
func validateServeConfig(ctx context.Context, config *ServeConfig) error {
	if config.Host == "" {
		return errors.New("host cannot be empty")
	}

	if config.Host != "localhost" && config.Host != "0.0.0.0" {
		if ip := net.ParseIP(config.Host); ip == nil {
			if strings.Contains(config.Host, " ") || strings.Contains(config.Host, ":") {
				return errors.Errorf("invalid host: %s", config.Host)
			}
		}
	}

	if config.Port < 1 || config.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.Port < 1024 {
		logger.G(ctx).WithField("port", config.Port).Warn("using privileged port (< 1024) may require elevated permissions")
	}

	return nil
}

func runServeCommand(ctx context.Context, config *ServeConfig) {
	if err := validateServeConfig(ctx, config); err != nil {
		presenter.Error(err, "Invalid server configuration")
		os.Exit(1)
	}

	// Lenient load: one broken document should not take the server down.
	store, err := skills.NewStore(skillDirs(), skills.WithStoreLoadOptions(skills.WithLenient()))
	if err != nil {
		presenter.Error(err, "Failed to load skill registry")
		os.Exit(1)
	}

	logger.G(ctx).WithFields(map[string]any{
		"host":   config.Host,
		"port":   config.Port,
		"skills": store.Snapshot().Len(),
	}).Info("Starting skill API server")

	res := resolver.New(resolver.WithSemanticThreshold(viper.GetFloat64("resolver.semantic_threshold")))

	server, err := api.NewServer(&api.ServerConfig{Host: config.Host, Port: config.Port}, store, res)
	if err != nil {
		presenter.Error(err, "Failed to create API server")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if config.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.G(ctx).WithError(err).Warn("skill directory watch stopped")
			}
		}()
	}

	if err := server.Start(ctx); err != nil {
		presenter.Error(err, "Server shutdown failed")
		os.Exit(1)
	}

	presenter.Info("Server stopped")
}
