package lifecycle

import (
	"strings"
	"time"

	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/metadata"
	"github.com/it407/it-assets/pkg/table"
)

// Kind binds the assignment state machine to one catalog.
type Kind struct {
	Name            string
	CatalogTable    string
	AssignmentTable string
	ItemKey         string
	ItemNameKey     string
	IDFormat        metadata.IdentifierFormat

	// Assignable rejects catalog rows that may not be handed out.
	Assignable func(item table.Row) error
	// ParseReason validates a return reason and reports whether the item
	// must be taken out of service.
	ParseReason func(reason string) (string, bool, error)
	// Deactivate marks a catalog row out of service.
	Deactivate func(item table.Row, now time.Time)
}

var AssetKind = Kind{
	Name:            "asset",
	CatalogTable:    store.AssetsMaster,
	AssignmentTable: store.AssetAssignments,
	ItemKey:         "asset_id",
	ItemNameKey:     "asset_name",
	IDFormat:        metadata.AssetAssignmentID,
	Assignable: func(item table.Row) error {
		if table.IsFalsy(item.Get("is_active")) {
			return custom_error.NewConflictError("asset %s is out of service", item.Get("asset_id"))
		}
		return nil
	},
	ParseReason: func(reason string) (string, bool, error) {
		r, err := metadata.NewReturnReason(reason)
		if err != nil {
			return "", false, custom_error.NewValidationError("return_reason", "%s", err.Error())
		}
		return r.String(), r.DeactivatesItem(), nil
	},
	Deactivate: func(item table.Row, now time.Time) {
		item["is_active"] = "false"
		item["updated_at"] = table.FormatTimestamp(now)
	},
}

var SoftwareKind = Kind{
	Name:            "software",
	CatalogTable:    store.SoftwareMaster,
	AssignmentTable: store.SoftwareAssignments,
	ItemKey:         "soft_id",
	ItemNameKey:     "soft_name",
	IDFormat:        metadata.SoftwareAssignmentID,
	Assignable: func(item table.Row) error {
		if item.Get("status") != metadata.SoftwareActive.String() {
			return custom_error.NewConflictError("software %s is not active", item.Get("soft_id"))
		}
		return nil
	},
	ParseReason: func(reason string) (string, bool, error) {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return "", false, custom_error.NewValidationError("return_reason", "is required")
		}
		return reason, false, nil
	},
}
