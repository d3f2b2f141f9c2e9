package container

import (
	"context"
	"fmt"

	"github.com/it407/it-assets/internal/core/config"
	"github.com/it407/it-assets/internal/credentials"
	"github.com/it407/it-assets/internal/dashboard"
	"github.com/it407/it-assets/internal/database"
	"github.com/it407/it-assets/internal/employees"
	"github.com/it407/it-assets/internal/integrations/googlesheets"
	"github.com/it407/it-assets/internal/inventory/assets"
	"github.com/it407/it-assets/internal/lifecycle"
	"github.com/it407/it-assets/internal/repository"
	"github.com/it407/it-assets/internal/software"
	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/internal/store/memory"
	"github.com/it407/it-assets/internal/store/postgres"
	"github.com/it407/it-assets/internal/users"
	"github.com/it407/it-assets/pkg/auditlog"
	"github.com/it407/it-assets/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Tables              store.TableStore
	AuditLog            *auditlog.Auditlog
	TokenIssuer         *security.TokenIssuer
	LoginHandler        *security.LoginHandler
	AssetHandler        *assets.AssetHandler
	AssetAssignments    *lifecycle.Handler
	SoftwareHandler     *software.SoftwareHandler
	SoftwareAssignments *lifecycle.Handler
	CredentialHandler   *credentials.CredentialHandler
	EmployeeHandler     *employees.EmployeeHandler
	UserHandler         *users.UsersHandler
	DashboardHandler    *dashboard.DashboardHandler
	close               func() error
}

func NewAppContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	tables, closeFn, err := NewTableStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	auditLog := auditlog.NewAuditLog(tables, logger.Named("auditlog"))
	issuer := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	employeeRepo := employees.NewRepository(tables)

	assetManager := lifecycle.NewManager(tables, lifecycle.AssetKind, auditLog, logger.Named("lifecycle"))
	softwareManager := lifecycle.NewManager(tables, lifecycle.SoftwareKind, auditLog, logger.Named("lifecycle"))
	dashboardService := dashboard.NewDashboardService(tables, dashboard.Pipelines(cfg.AttendanceSheet), logger.Named("dashboard"))

	return &Container{
		Tables:              tables,
		AuditLog:            auditLog,
		TokenIssuer:         issuer,
		LoginHandler:        security.NewLoginHandler(tables, issuer, logger.Named("auth")),
		AssetHandler:        assets.NewAssetHandler(assets.NewAssetService(tables, auditLog, logger.Named("assets"))),
		AssetAssignments:    lifecycle.NewHandler(assetManager, logger.Named("lifecycle")),
		SoftwareHandler:     software.NewSoftwareHandler(software.NewSoftwareService(tables, auditLog, logger.Named("software"))),
		SoftwareAssignments: lifecycle.NewHandler(softwareManager, logger.Named("lifecycle")),
		CredentialHandler:   credentials.NewCredentialHandler(credentials.NewCredentialService(tables, auditLog, logger.Named("credentials"))),
		EmployeeHandler:     employees.NewHandler(employeeRepo),
		UserHandler:         users.NewHandler(employeeRepo, logger.Named("users")),
		DashboardHandler:    dashboard.NewDashboardHandler(dashboardService, logger.Named("dashboard")),
		close:               closeFn,
	}, nil
}

// NewTableStore opens the backend named by STORE_DRIVER. The returned
// function releases it.
func NewTableStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.TableStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("Serving from the in-memory table store, data is lost on exit")
		return memory.NewStore(), noop, nil

	case config.DriverPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir, logger.Named("migration")); err != nil {
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		db, err := database.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to the database")
		return postgres.NewStore(repository.NewRepository(db)), db.Close, nil

	case config.DriverSheets:
		service, err := googlesheets.NewSheetsService(ctx, cfg.CredentialsJSON, cfg.CredentialsFile, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Connected to Google Sheets", zap.String("spreadsheet_id", cfg.SpreadsheetID))
		return googlesheets.NewStore(service, cfg.SpreadsheetID, cfg.SheetsRetryAttempts, logger.Named("sheets")), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (c *Container) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}
