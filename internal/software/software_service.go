package software

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

type SoftwareService struct {
	tables   store.TableStore
	auditLog *auditlog.Auditlog
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

func NewSoftwareService(tables store.TableStore, auditLog *auditlog.Auditlog, logger *zap.Logger) *SoftwareService {
	return &SoftwareService{
		tables:   tables,
		auditLog: auditLog,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateSoftware adds a license to the catalog under the next SOFT- id. New
// licenses are Active unless the request says otherwise.
func (s *SoftwareService) CreateSoftware(ctx context.Context, actor security.Principal, req models.CreateSoftwareRequest) (*models.Software, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	status := metadata.SoftwareActive
	if req.Status != "" {
		parsed, err := metadata.NewSoftwareStatus(req.Status)
		if err != nil {
			return nil, custom_error.NewValidationError("status", "%s", err.Error())
		}
		status = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catalog, err := store.Load(ctx, s.tables, store.SoftwareMaster)
	if err != nil {
		return nil, err
	}

	createdAt := table.FormatTimestamp(s.now())
	software := models.Software{
		ID:             metadata.SoftwareID.Next(catalog.Column("soft_id"), 1)[0],
		Name:           req.Name,
		Status:         status,
		MonthlyPrice:   req.MonthlyPrice,
		YearlyPrice:    req.YearlyPrice,
		RegisteredID:   req.RegisteredID,
		RegisteredPass: req.RegisteredPass,
		LoginID:        req.LoginID,
		LoginPass:      req.LoginPass,
		Links:          req.Links,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}

	if err := s.tables.AppendRow(ctx, store.SoftwareMaster, software.ToRow()); err != nil {
		return nil, custom_error.WrapBackend("append", store.SoftwareMaster, err)
	}

	s.logger.Info("Software registered", zap.String("soft_id", software.ID), zap.String("status", status.String()))
	s.auditLog.Log(ctx, actor.UserID, "create", map[string]interface{}{
		"soft_name": software.Name,
		"status":    software.Status.String(),
	}, software)

	return &software, nil
}

// ListSoftware returns the catalog, optionally narrowed to one status.
func (s *SoftwareService) ListSoftware(ctx context.Context, status string) ([]models.Software, error) {
	catalog, err := store.Load(ctx, s.tables, store.SoftwareMaster)
	if err != nil {
		return nil, err
	}

	list := make([]models.Software, 0, len(catalog.Rows))
	for _, row := range catalog.Rows {
		software := models.SoftwareFromRow(row)
		if status != "" && software.Status.String() != status {
			continue
		}
		list = append(list, software)
	}
	return list, nil
}
