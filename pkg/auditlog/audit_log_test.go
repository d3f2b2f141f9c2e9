package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/internal/store/memory"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/table"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct {
	*memory.Store
}

func (f failingStore) AppendRow(ctx context.Context, name string, row table.Row) error {
	return errors.New("quota exceeded")
}

func TestLog(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	audit := NewAuditLog(s, zap.NewNop())

	audit.Log(ctx, "U1", "create", map[string]interface{}{"category": "Laptop"}, models.Asset{ID: "AST-001"})

	entries, err := store.Load(ctx, s, store.AuditLog)
	require.NoError(t, err)
	require.Len(t, entries.Rows, 1)

	entry := entries.Rows[0]
	assert.Equal(t, "AST-001", entry["resource_id"])
	assert.Equal(t, "asset", entry["resource_type"])
	assert.Equal(t, "create", entry["action"])
	assert.Equal(t, "U1", entry["user_id"])
	_, err = uuid.Parse(entry["entry_id"])
	assert.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry["data"]), &data))
	assert.Equal(t, "Laptop", data["category"])
}

func TestLogSwallowsStoreErrors(t *testing.T) {
	audit := NewAuditLog(failingStore{memory.NewStore()}, zap.NewNop())

	assert.NotPanics(t, func() {
		audit.Log(context.Background(), "U1", "assign", nil, models.Assignment{ID: "ASN-0001"})
	})
}
