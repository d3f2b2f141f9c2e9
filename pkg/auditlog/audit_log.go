package auditlog

import (
	"context"
	"time"

	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/table"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auditlog struct {
	tables store.TableStore
	logger *zap.Logger
	now    func() time.Time
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log appends an entry to the audit_log table. A failed write is logged and
// never fails the operation being audited.
func (a *Auditlog) Log(ctx context.Context, userID, action string, data map[string]interface{}, item Auditable) {
	entry := item.CreateLogView()
	entry.EntryID = uuid.NewString()
	entry.Action = action
	entry.Data = data
	entry.UserID = userID
	entry.CreatedAt = table.FormatTimestamp(a.now())

	row, err := entry.ToRow()
	if err != nil {
		a.logger.Warn("Unable to encode audit log entry", zap.String("resource_id", entry.ResourceID), zap.Error(err))
		return
	}

	if err := a.tables.AppendRow(ctx, store.AuditLog, row); err != nil {
		a.logger.Warn("Unable to create audit log entry", zap.String("resource_id", entry.ResourceID), zap.Error(err))
		return
	}

	a.logger.Debug("Created audit log entry",
		zap.String("resource_type", entry.ResourceType),
		zap.String("resource_id", entry.ResourceID),
		zap.String("action", action),
	)
}

func NewAuditLog(tables store.TableStore, logger *zap.Logger) *Auditlog {
	return &Auditlog{
		tables: tables,
		logger: logger,
		now:    time.Now,
	}
}
