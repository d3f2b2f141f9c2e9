package database

import (
	"fmt"
	"path/filepath"

	"github.com/it407/it-assets/internal/database/migration"

	"go.uber.org/zap"
)

// RunMigrations applies the SQL files in migrationsDir to the database at dbURL.
func RunMigrations(dbURL, migrationsDir string, logger *zap.Logger) error {
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	return migration.Migrate(dbURL, "file://"+absPath, true, logger)
}
