package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tilecraft/isocam/pkg/config"
	"github.com/tilecraft/isocam/pkg/preset"
	"github.com/tilecraft/isocam/pkg/server"
)

// newServeCmd creates the serve command, which runs the HTTP API.
func newServeCmd() *cobra.Command {
	var addr, storeName, configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for settings and presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			// Flags override the config file.
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if storeName != "" {
				cfg.Server.Store = storeName
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")
	cmd.Flags().StringVar(&storeName, "store", "", "preset store backend: memory, file, redis, mongo")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")
	return cmd
}

// loadConfig loads the config from the given path, falling back to the
// default location when none was given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// runServe builds the preset store, starts the HTTP server and blocks until
// the context is canceled, then shuts down gracefully.
func runServe(ctx context.Context, cfg config.Config) error {
	logger := loggerFromContext(ctx)

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(store, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", cfg.Server.Addr, "store", cfg.Server.Store)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildStore constructs the preset store backend named in the config.
func buildStore(ctx context.Context, cfg config.Config) (preset.Store, error) {
	switch cfg.Server.Store {
	case "memory":
		return preset.NewMemoryStore(), nil
	case "file":
		dir, err := cfg.PresetDir()
		if err != nil {
			return nil, err
		}
		return preset.NewFileStore(dir)
	case "redis":
		return preset.NewRedisStore(ctx, preset.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case "mongo":
		return preset.NewMongoStore(ctx, preset.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %s (must be 'memory', 'file', 'redis', or 'mongo')", cfg.Server.Store)
	}
}
