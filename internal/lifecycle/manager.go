package lifecycle

import (
	"context"
	"fmt"
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

// Manager runs assign and return for one Kind. Each operation reads fresh
// tables and holds an in-process lock from the first read to the last write,
// so two requests served by the same process cannot both assign one item.
type Manager struct {
	tables   store.TableStore
	kind     Kind
	auditLog *auditlog.Auditlog
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

func NewManager(tables store.TableStore, kind Kind, auditLog *auditlog.Auditlog, logger *zap.Logger) *Manager {
	return &Manager{
		tables:   tables,
		kind:     kind,
		auditLog: auditLog,
		logger:   logger.With(zap.String("kind", kind.Name)),
		now:      time.Now,
	}
}

func (m *Manager) Kind() Kind {
	return m.kind
}

// Assign creates a new Assigned row. It fails without writing anything when
// the item or employee is unknown or inactive, or when the item already has
// an Assigned row.
func (m *Manager) Assign(ctx context.Context, actor security.Principal, req models.AssignRequest) (*models.Assignment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tables, err := store.LoadAll(ctx, m.tables, m.kind.CatalogTable, m.kind.AssignmentTable, store.EmployeeMaster)
	if err != nil {
		return nil, err
	}
	catalog := tables[m.kind.CatalogTable]
	assignments := tables[m.kind.AssignmentTable]
	employees := tables[store.EmployeeMaster]

	itemIdx := catalog.Index(m.kind.ItemKey, req.ItemID)
	if itemIdx < 0 {
		return nil, custom_error.NewValidationError("item_id", "unknown %s %s", m.kind.Name, req.ItemID)
	}
	item := catalog.Rows[itemIdx]
	if err := m.kind.Assignable(item); err != nil {
		return nil, err
	}

	employeeIdx := employees.Index("employee_id", req.EmployeeID)
	if employeeIdx < 0 {
		return nil, custom_error.NewValidationError("employee_id", "unknown employee %s", req.EmployeeID)
	}
	employee := models.EmployeeFromRow(employees.Rows[employeeIdx])
	if employee.EmploymentStatus != metadata.EmploymentActive {
		return nil, custom_error.NewValidationError("employee_id", "employee %s is not active", req.EmployeeID)
	}

	if holder, ok := currentHolder(assignments, m.kind.ItemKey, req.ItemID); ok {
		return nil, custom_error.NewConflictError("%s %s is already assigned (%s to %s)",
			m.kind.Name, req.ItemID, holder.Get("assignment_id"), holder.Get("employee_id"))
	}

	now := m.now()
	assignedOn := req.AssignedOn
	if assignedOn == "" {
		assignedOn = table.FormatDate(now)
	}

	assignment := models.Assignment{
		ID:           m.kind.IDFormat.Next(assignments.Column("assignment_id"), 1)[0],
		ItemKey:      m.kind.ItemKey,
		ItemID:       req.ItemID,
		ItemName:     item.Get(m.kind.ItemNameKey),
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		AssignedOn:   assignedOn,
		Status:       metadata.StatusAssigned,
		Remarks:      req.Remarks,
		CreatedAt:    table.FormatTimestamp(now),
	}

	if err := m.tables.AppendRow(ctx, m.kind.AssignmentTable, assignment.ToRow(m.kind.ItemNameKey)); err != nil {
		return nil, custom_error.WrapBackend("append", m.kind.AssignmentTable, err)
	}

	m.logger.Info("Item assigned",
		zap.String("assignment_id", assignment.ID),
		zap.String("item_id", assignment.ItemID),
		zap.String("employee_id", assignment.EmployeeID),
	)
	m.auditLog.Log(ctx, actor.UserID, "assign", map[string]interface{}{
		m.kind.ItemKey: assignment.ItemID,
		"employee_id":  assignment.EmployeeID,
		"assigned_on":  assignment.AssignedOn,
	}, assignment)

	return &assignment, nil
}

// PendingDeactivationError means the return was recorded but the catalog row
// is still active and has to be reconciled by hand.
type PendingDeactivationError struct {
	AssignmentID string
	ItemID       string
	Err          error
}

func (e *PendingDeactivationError) Error() string {
	return fmt.Sprintf("assignment %s returned but %s was not deactivated: %v", e.AssignmentID, e.ItemID, e.Err)
}

func (e *PendingDeactivationError) Unwrap() error {
	return e.Err
}

// Return closes an Assigned row. When the reason takes the item out of
// service the catalog row is deactivated in a second write; if that write
// fails the returned assignment comes back together with a
// PendingDeactivationError.
func (m *Manager) Return(ctx context.Context, actor security.Principal, req models.ReturnRequest) (*models.Assignment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	reason, deactivate, err := m.kind.ParseReason(req.Reason)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	assignments, err := store.Load(ctx, m.tables, m.kind.AssignmentTable)
	if err != nil {
		return nil, err
	}

	idx, err := m.locate(assignments, req)
	if err != nil {
		return nil, err
	}
	row := assignments.Rows[idx]
	if row.Get("assignment_status") != metadata.StatusAssigned.String() {
		return nil, custom_error.NewConflictError("assignment %s is not currently assigned (status %q)",
			row.Get("assignment_id"), row.Get("assignment_status"))
	}

	now := m.now()
	returnedOn := req.ReturnedOn
	if returnedOn == "" {
		returnedOn = table.FormatDate(now)
	}

	row["assignment_status"] = metadata.StatusReturned.String()
	row["returned_on"] = returnedOn
	row["return_reason"] = reason

	if err := m.tables.WriteTable(ctx, m.kind.AssignmentTable, assignments); err != nil {
		return nil, custom_error.WrapBackend("write", m.kind.AssignmentTable, err)
	}

	assignment := models.AssignmentFromRow(row, m.kind.ItemKey, m.kind.ItemNameKey)
	m.logger.Info("Item returned",
		zap.String("assignment_id", assignment.ID),
		zap.String("item_id", assignment.ItemID),
		zap.String("reason", reason),
	)
	m.auditLog.Log(ctx, actor.UserID, "return", map[string]interface{}{
		m.kind.ItemKey:  assignment.ItemID,
		"employee_id":   assignment.EmployeeID,
		"returned_on":   returnedOn,
		"return_reason": reason,
	}, assignment)

	if deactivate && m.kind.Deactivate != nil {
		if err := m.deactivate(ctx, actor, assignment.ItemID, now); err != nil {
			m.logger.Error("Assignment returned but item was not deactivated",
				zap.String("assignment_id", assignment.ID),
				zap.String("item_id", assignment.ItemID),
				zap.Error(err),
			)
			return &assignment, &PendingDeactivationError{
				AssignmentID: assignment.ID,
				ItemID:       assignment.ItemID,
				Err:          err,
			}
		}
	}

	return &assignment, nil
}

func (m *Manager) deactivate(ctx context.Context, actor security.Principal, itemID string, now time.Time) error {
	catalog, err := store.Load(ctx, m.tables, m.kind.CatalogTable)
	if err != nil {
		return err
	}

	idx := catalog.Index(m.kind.ItemKey, itemID)
	if idx < 0 {
		m.logger.Warn("Returned item is missing from the catalog", zap.String("item_id", itemID))
		return nil
	}
	m.kind.Deactivate(catalog.Rows[idx], now)

	if err := m.tables.WriteTable(ctx, m.kind.CatalogTable, catalog); err != nil {
		return custom_error.WrapBackend("write", m.kind.CatalogTable, err)
	}

	m.auditLog.Log(ctx, actor.UserID, "deactivate", map[string]interface{}{
		"reason": metadata.ReasonDamaged.String(),
	}, catalogItem{kind: m.kind.Name, id: itemID})

	return nil
}

type catalogItem struct {
	kind string
	id   string
}

func (c catalogItem) CreateLogView() models.AuditLog {
	return models.AuditLog{ResourceID: c.id, ResourceType: c.kind}
}

func (m *Manager) locate(assignments table.Table, req models.ReturnRequest) (int, error) {
	if req.AssignmentID != "" {
		idx := assignments.Index("assignment_id", req.AssignmentID)
		if idx < 0 {
			return -1, custom_error.NewLookupError(m.kind.AssignmentTable, "assignment_id", req.AssignmentID)
		}
		return idx, nil
	}

	for i, row := range assignments.Rows {
		if row.Get(m.kind.ItemKey) == req.ItemID &&
			row.Get("employee_id") == req.EmployeeID &&
			row.Get("assignment_status") == metadata.StatusAssigned.String() {
			return i, nil
		}
	}
	return -1, custom_error.NewLookupError(m.kind.AssignmentTable, m.kind.ItemKey, req.ItemID)
}

// Available returns catalog rows that are assignable and not currently assigned.
func (m *Manager) Available(ctx context.Context) ([]table.Row, error) {
	tables, err := store.LoadAll(ctx, m.tables, m.kind.CatalogTable, m.kind.AssignmentTable)
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]bool)
	for _, row := range tables[m.kind.AssignmentTable].Rows {
		if row.Get("assignment_status") == metadata.StatusAssigned.String() {
			assigned[row.Get(m.kind.ItemKey)] = true
		}
	}

	available := make([]table.Row, 0)
	for _, item := range tables[m.kind.CatalogTable].Rows {
		if assigned[item.Get(m.kind.ItemKey)] || m.kind.Assignable(item) != nil {
			continue
		}
		available = append(available, item)
	}
	return available, nil
}

func currentHolder(assignments table.Table, itemKey, itemID string) (table.Row, bool) {
	for _, row := range assignments.Rows {
		if row.Get(itemKey) == itemID && row.Get("assignment_status") == metadata.StatusAssigned.String() {
			return row, true
		}
	}
	return nil, false
}
