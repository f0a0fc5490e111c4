package migrate

import (
	"context"
	"fmt"

	"github.com/clearlane/settleledger/pkg/config"
	"github.com/clearlane/settleledger/pkg/db"
	"github.com/clearlane/settleledger/pkg/logger"
)

// MaybeRunDev applies pending migrations automatically when the node runs in
// dev mode with auto-migrate enabled. Production deployments run cmd/migrate
// explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.App.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"dir": DefaultDir,
	})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, cfg.DB.Driver, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
