package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/freightprint/internal/config"
	"github.com/rshade/freightprint/internal/emission"
	"github.com/rshade/freightprint/internal/engine"
	"github.com/rshade/freightprint/internal/service"
	"github.com/rshade/freightprint/internal/store"
)

// app bundles the configured service and its store for one command run.
type app struct {
	cfg    *config.Config
	svc    *service.Service
	store  store.Store
	userID string
}

// buildApp loads config, opens the record store, and assembles the
// calculation service. Callers must Close the returned app.
func buildApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.DatabasePath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	st, err := store.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}

	calc := engine.NewCalculator(
		engine.WithResolver(emission.NewResolverWithTables(cfg.ResolverTables())),
		engine.WithCostEstimator(engine.NewCostEstimator(cfg.Rates)),
		engine.WithFallbackDistanceKm(cfg.Calculation.FallbackDistanceKm),
		engine.WithLogger(config.ComponentLogger(cfg.Logging.NewLogger(), "calculator")),
	)

	svc := service.New(calc, st, cfg.ValidationPolicy(),
		config.ComponentLogger(cfg.Logging.NewLogger(), "service"))

	return &app{
		cfg:    cfg,
		svc:    svc,
		store:  st,
		userID: resolveUserID(cmd),
	}, nil
}

// Close releases the app's store.
func (a *app) Close() error {
	return a.store.Close()
}
