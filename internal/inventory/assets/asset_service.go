package assets

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/pkg/auditlog"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/security"
	"github.com/it407/it-assets/pkg/table"
	"github.com/it407/it-assets/pkg/validation"

	"go.uber.org/zap"
)

type AssetService struct {
	tables   store.TableStore
	auditLog *auditlog.Auditlog
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

func NewAssetService(tables store.TableStore, auditLog *auditlog.Auditlog, logger *zap.Logger) *AssetService {
	return &AssetService{
		tables:   tables,
		auditLog: auditLog,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateAssets registers Quantity identical units (one when Quantity is 0)
// under consecutive AST- ids. Units appended before a failed write stay in
// the catalog and are returned with the error.
func (s *AssetService) CreateAssets(ctx context.Context, actor security.Principal, req models.CreateAssetRequest) ([]models.Asset, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Location = strings.TrimSpace(req.Location)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := store.Load(ctx, s.tables, store.AssetsMaster)
	if err != nil {
		return nil, err
	}

	createdAt := table.FormatTimestamp(s.now())
	created := make([]models.Asset, 0, quantity)
	for _, id := range metadata.AssetID.Next(catalog.Column("asset_id"), quantity) {
		asset := models.Asset{
			ID:           id,
			Name:         req.Name,
			Category:     req.Category,
			Brand:        strings.TrimSpace(req.Brand),
			Model:        strings.TrimSpace(req.Model),
			PurchaseDate: req.PurchaseDate,
			WarrantyEnd:  req.WarrantyEnd,
			Location:     req.Location,
			IsActive:     isActive,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}

		if err := s.tables.AppendRow(ctx, store.AssetsMaster, asset.ToRow()); err != nil {
			s.logger.Error("Asset creation stopped",
				zap.String("asset_id", id),
				zap.Int("created", len(created)),
				zap.Int("requested", quantity),
				zap.Error(err),
			)
			return created, custom_error.WrapBackend("append", store.AssetsMaster, err)
		}
		created = append(created, asset)

		s.auditLog.Log(ctx, actor.UserID, "create", map[string]interface{}{
			"asset_name": asset.Name,
			"category":   asset.Category,
			"location":   asset.Location,
		}, asset)
	}

	s.logger.Info("Assets created",
		zap.String("first_id", created[0].ID),
		zap.String("last_id", created[len(created)-1].ID),
		zap.Int("quantity", len(created)),
	)

	return created, nil
}

func (s *AssetService) ListAssets(ctx context.Context) ([]models.Asset, error) {
	catalog, err := store.Load(ctx, s.tables, store.AssetsMaster)
	if err != nil {
		return nil, err
	}

	assets := make([]models.Asset, 0, len(catalog.Rows))
	for _, row := range catalog.Rows {
		assets = append(assets, models.AssetFromRow(row))
	}
	return assets, nil
}

// Options lists the categories and locations already used in the catalog.
func (s *AssetService) Options(ctx context.Context) (*models.AssetOptions, error) {
	catalog, err := store.Load(ctx, s.tables, store.AssetsMaster)
	if err != nil {
		return nil, err
	}

	return &models.AssetOptions{
		Categories: table.Distinct(catalog.Rows, "category"),
		Locations:  table.Distinct(catalog.Rows, "location"),
	}, nil
}
