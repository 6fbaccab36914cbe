package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/abcall/clients/internal/adapter/usersvc"
	"github.com/abcall/clients/internal/core/application"
	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/facade"
	"github.com/abcall/clients/internal/core/service"
	"github.com/abcall/clients/internal/infrastructure/database"
	"github.com/abcall/clients/internal/infrastructure/logging"
	"github.com/abcall/clients/internal/infrastructure/metrics"
	"github.com/abcall/clients/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clients",
	Short: "ABCall clients - client management service",
	Long: `The clients service manages the business customers of the ABCall platform.

It provides:
- Create, read, update and delete of client records
- Lookup of the client the calling user belongs to
- REST API guarded by bearer tokens and a superadmin role
- SQLite or PostgreSQL storage`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// Services holds all initialized services
type Services struct {
	Logger      *slog.Logger
	Store       *database.Store
	Factory     *dependency.Factory
	Bus         *dispatch.Bus
	AuthService *service.AuthService
	Metrics     *prometheus.Registry

	closers []io.Closer
}

// initServices wires storage, the user service and the dispatch bus
func initServices(ctx context.Context) (*Services, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	services := &Services{Logger: logger, closers: []io.Closer{logCloser}}

	// Initialize database
	store, err := database.Open(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.DBPath,
		MaxConns:   cfg.DBMaxConns,
	})
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	services.Store = store
	services.closers = append(services.closers, store)
	logger.Info("database ready", "driver", store.Driver())

	users, err := services.userFacade(ctx)
	if err != nil {
		services.Close()
		return nil, err
	}

	// Bind the capabilities handlers resolve on every dispatch
	factory := dependency.NewFactory()
	bindErr := errors.Join(
		factory.Bind(dependency.ClientRepository, func(context.Context) (any, error) {
			return store.ClientRepository()
		}),
		factory.BindInstance(dependency.UserFacade, users),
	)
	if bindErr != nil {
		services.Close()
		return nil, fmt.Errorf("failed to bind dependencies: %w", bindErr)
	}
	services.Factory = factory

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	services.Metrics = registry

	bus, err := application.Bootstrap(factory,
		dispatch.WithObserver(metrics.NewDispatchObserver(registry)),
		dispatch.WithObserver(logging.DispatchObserver(logger)),
	)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to bootstrap dispatcher: %w", err)
	}
	services.Bus = bus

	services.AuthService = service.NewAuthService(service.AuthConfig{
		JWTSecret:    cfg.JWTSecretKey,
		JWTAlgorithm: cfg.JWTAlgorithm,
		RoleClaim:    cfg.RoleClaim,
		RequiredRole: cfg.RequiredRole,
	})

	return services, nil
}

// userFacade builds the user-service client, fronted by redis when configured
func (s *Services) userFacade(ctx context.Context) (facade.UserFacade, error) {
	client := usersvc.NewClient(usersvc.Config{
		BaseURL:          cfg.UserServiceURL,
		Timeout:          cfg.UserServiceTimeout,
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenTimeout:      cfg.BreakerTimeout,
	}, s.Logger)

	if cfg.RedisURL == "" {
		return client, nil
	}

	cache, err := usersvc.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.closers = append(s.closers, cache)

	return usersvc.NewCachedFacade(client, cache, cfg.UserCacheTTL, s.Logger), nil
}

// Close closes all resources in reverse order of creation
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && s.Logger != nil {
			s.Logger.Warn("failed to close resource", "error", err)
		}
	}
	s.closers = nil
}
