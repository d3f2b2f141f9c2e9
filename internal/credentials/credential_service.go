package credentials

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

type CredentialService struct {
	tables   store.TableStore
	auditLog *auditlog.Auditlog
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

func NewCredentialService(tables store.TableStore, auditLog *auditlog.Auditlog, logger *zap.Logger) *CredentialService {
	return &CredentialService{
		tables:   tables,
		auditLog: auditLog,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CredentialService) CreateCredential(ctx context.Context, actor security.Principal, req models.CreateCredentialRequest) (*models.Credential, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := store.Load(ctx, s.tables, store.CredentialsMaster)
	if err != nil {
		return nil, err
	}

	credential := models.Credential{
		ID:        metadata.CredentialID.Next(vault.Column("credential_id"), 1)[0],
		Name:      req.Name,
		Category:  req.Category,
		LoginID:   req.LoginID,
		Password:  req.Password,
		LinkURL:   req.LinkURL,
		Remark:    req.Remark,
		CreatedAt: table.FormatTimestamp(s.now()),
	}

	if err := s.tables.AppendRow(ctx, store.CredentialsMaster, credential.ToRow()); err != nil {
		return nil, custom_error.WrapBackend("append", store.CredentialsMaster, err)
	}

	s.logger.Info("Credential stored", zap.String("credential_id", credential.ID), zap.String("category", credential.Category))
	s.auditLog.Log(ctx, actor.UserID, "create", map[string]interface{}{
		"name":     credential.Name,
		"category": credential.Category,
	}, credential)

	return &credential, nil
}

func (s *CredentialService) ListCredentials(ctx context.Context) ([]models.Credential, error) {
	vault, err := store.Load(ctx, s.tables, store.CredentialsMaster)
	if err != nil {
		return nil, err
	}

	list := make([]models.Credential, 0, len(vault.Rows))
	for _, row := range vault.Rows {
		list = append(list, models.CredentialFromRow(row))
	}
	return list, nil
}

// CreateNetworkCredential stores the access details of a CCTV recorder or
// Wi-Fi access point. These rows carry no identifier.
func (s *CredentialService) CreateNetworkCredential(ctx context.Context, actor security.Principal, req models.CreateNetworkCredentialRequest) (*models.NetworkCredential, error) {
	req.Location = strings.TrimSpace(req.Location)
	req.DeviceType = strings.TrimSpace(req.DeviceType)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	credential := models.NetworkCredential{
		Location:   req.Location,
		DeviceType: req.DeviceType,
		Username:   req.Username,
		Password:   req.Password,
		IPAddress:  req.IPAddress,
		SSID:       req.SSID,
		SSPassword: req.SSPassword,
		MAC:        req.MAC,
		Remarks:    req.Remarks,
		CreatedAt:  table.FormatTimestamp(s.now()),
	}

	if err := s.tables.AppendRow(ctx, store.NetworkCredentials, credential.ToRow()); err != nil {
		return nil, custom_error.WrapBackend("append", store.NetworkCredentials, err)
	}

	s.auditLog.Log(ctx, actor.UserID, "create", map[string]interface{}{
		"location":    credential.Location,
		"device_type": credential.DeviceType,
	}, credential)

	return &credential, nil
}

func (s *CredentialService) ListNetworkCredentials(ctx context.Context, location string) ([]models.NetworkCredential, error) {
	devices, err := store.Load(ctx, s.tables, store.NetworkCredentials)
	if err != nil {
		return nil, err
	}

	list := make([]models.NetworkCredential, 0, len(devices.Rows))
	for _, row := range devices.Rows {
		credential := models.NetworkCredentialFromRow(row)
		if location != "" && credential.Location != location {
			continue
		}
		list = append(list, credential)
	}
	return list, nil
}
