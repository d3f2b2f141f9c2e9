package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRowAlignsToHeader(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.WriteTable(ctx, "people", table.Table{
		Header: []string{"Employee_ID", "employee_name", "location"},
	}))

	require.NoError(t, s.AppendRow(ctx, "people", table.Row{
		"employee_id":   "E1",
		"employee_name": "Asha",
		"unknown":       "dropped",
	}))

	tbl, err := s.ReadTable(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee_ID", "employee_name", "location"}, tbl.Header)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, table.Row{"Employee_ID": "E1", "employee_name": "Asha", "location": ""}, tbl.Rows[0])
}

func TestAppendRowUsesSchemaForEmptyTable(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.AppendRow(ctx, store.AssetsMaster, table.Row{"asset_id": "AST-001", "asset_name": "ThinkPad"}))

	tbl, err := s.ReadTable(ctx, store.AssetsMaster)
	require.NoError(t, err)
	expected, _ := store.Schema(store.AssetsMaster)
	assert.Equal(t, expected, tbl.Header)
	assert.Equal(t, "ThinkPad", tbl.Rows[0]["asset_name"])
	assert.Equal(t, "", tbl.Rows[0]["is_active"])
}

func TestWriteTableRejectsStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.AppendRow(ctx, "t", table.Row{"id": "1"}))

	snapshot, err := s.ReadTable(ctx, "t")
	require.NoError(t, err)

	require.NoError(t, s.AppendRow(ctx, "t", table.Row{"id": "2"}))

	snapshot.Rows[0]["id"] = "changed"
	err = s.WriteTable(ctx, "t", snapshot)

	var conflict *custom_error.ConflictError
	assert.ErrorAs(t, err, &conflict)

	current, err := s.ReadTable(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, current.Column("id"))
}

func TestWriteTableWithFreshSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.AppendRow(ctx, "t", table.Row{"id": "1", "status": "Assigned"}))

	snapshot, err := s.ReadTable(ctx, "t")
	require.NoError(t, err)
	snapshot.Rows[0]["status"] = "Returned"

	require.NoError(t, s.WriteTable(ctx, "t", snapshot))

	current, err := s.ReadTable(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, "Returned", current.Rows[0]["status"])
	assert.NotEqual(t, snapshot.Revision, current.Revision)
}

func TestWriteTableKeepsNewColumns(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.WriteTable(ctx, store.AssetAssignments, table.Table{
		Header: []string{"assignment_id", "asset_id", "assignment_status"},
		Rows:   []table.Row{{"assignment_id": "ASN-0001", "asset_id": "AST-001", "assignment_status": "Assigned"}},
	}))

	snapshot, err := store.Load(ctx, s, store.AssetAssignments)
	require.NoError(t, err)
	snapshot.Rows[0]["assignment_status"] = "Returned"
	snapshot.Rows[0]["returned_on"] = "2024-05-10"
	snapshot.Rows[0]["return_reason"] = "Upgrade"
	require.NoError(t, s.WriteTable(ctx, store.AssetAssignments, snapshot))

	current, err := s.ReadTable(ctx, store.AssetAssignments)
	require.NoError(t, err)
	assert.Equal(t, []string{"assignment_id", "asset_id", "assignment_status", "returned_on", "return_reason"}, current.Header)
	assert.Equal(t, table.Row{
		"assignment_id":     "ASN-0001",
		"asset_id":          "AST-001",
		"assignment_status": "Returned",
		"returned_on":       "2024-05-10",
		"return_reason":     "Upgrade",
	}, current.Rows[0])
}

func TestReadMissingTable(t *testing.T) {
	tbl, err := NewStore().ReadTable(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, "0", tbl.Revision)
}

func TestConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AppendRow(ctx, "t", table.Row{"id": "x"})
		}()
	}
	wg.Wait()

	tbl, err := s.ReadTable(ctx, "t")
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 50)
	assert.Equal(t, "50", tbl.Revision)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().ReadTable(ctx, "t")
	assert.ErrorIs(t, err, context.Canceled)
}
