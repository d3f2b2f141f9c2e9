package googlesheets

import (
	"context"
	"errors"
	"testing"
	"time"

	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

type MockValuesClient struct {
	mock.Mock
}

func (m *MockValuesClient) Get(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	args := m.Called(spreadsheetID, readRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]interface{}), args.Error(1)
}

func (m *MockValuesClient) Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error {
	args := m.Called(spreadsheetID, writeRange, values)
	return args.Error(0)
}

func (m *MockValuesClient) Clear(ctx context.Context, spreadsheetID, clearRange string) error {
	args := m.Called(spreadsheetID, clearRange)
	return args.Error(0)
}

func (m *MockValuesClient) Append(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}) error {
	args := m.Called(spreadsheetID, appendRange, values)
	return args.Error(0)
}

func newTestStore(m *MockValuesClient) *Store {
	return newStore(m, "sheet-id", 3, time.Millisecond, zap.NewNop())
}

func TestReadTable(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'assets_master'").Return([][]interface{}{
		{"Asset_ID", "Category", "Location"},
		{"AST-001", "Laptop", "HO"},
		{"AST-002", "Laptop"},
	}, nil)

	tbl, err := s.ReadTable(context.Background(), "assets_master")

	require.NoError(t, err)
	assert.Equal(t, []string{"Asset_ID", "Category", "Location"}, tbl.Header)
	assert.Equal(t, table.Row{"Asset_ID": "AST-002", "Category": "Laptop", "Location": ""}, tbl.Rows[1])
	assert.NotEmpty(t, tbl.Revision)
	m.AssertExpectations(t)
}

func TestReadTableRetriesThrottledCalls(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'employee_master'").Return(nil, &googleapi.Error{Code: 429}).Once()
	m.On("Get", "sheet-id", "'employee_master'").Return([][]interface{}{{"employee_id"}, {"E1"}}, nil).Once()

	tbl, err := s.ReadTable(context.Background(), "employee_master")

	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)
	m.AssertExpectations(t)
}

func TestReadTableDoesNotRetryClientErrors(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'missing'").Return(nil, &googleapi.Error{Code: 400}).Once()

	_, err := s.ReadTable(context.Background(), "missing")

	var backend *custom_error.BackendError
	assert.ErrorAs(t, err, &backend)
	m.AssertExpectations(t)
}

func TestAppendRowAlignsToSheetHeader(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'asset_assignments'!1:1").Return([][]interface{}{
		{"assignment_id", "asset_id", "employee_id", "remarks"},
	}, nil)
	m.On("Append", "sheet-id", "'asset_assignments'", [][]interface{}{
		{"ASN-0001", "AST-001", "E1", ""},
	}).Return(nil)

	err := s.AppendRow(context.Background(), "asset_assignments", table.Row{
		"assignment_id": "ASN-0001",
		"asset_id":      "AST-001",
		"employee_id":   "E1",
		"not_a_column":  "dropped",
	})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestAppendRowWritesHeaderToEmptySheet(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'audit_log'!1:1").Return([][]interface{}{}, nil)
	m.On("Append", "sheet-id", "'audit_log'", mock.MatchedBy(func(values [][]interface{}) bool {
		return len(values) == 2 && values[0][0] == "entry_id" && values[1][0] == "abc"
	})).Return(nil)

	err := s.AppendRow(context.Background(), "audit_log", table.Row{"entry_id": "abc"})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestWriteTableRejectsStaleRevision(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'assets_master'").Return([][]interface{}{
		{"asset_id", "is_active"},
		{"AST-001", "false"},
	}, nil)

	err := s.WriteTable(context.Background(), "assets_master", table.Table{
		Header:   []string{"asset_id", "is_active"},
		Rows:     []table.Row{{"asset_id": "AST-001", "is_active": "true"}},
		Revision: "stale",
	})

	var conflict *custom_error.ConflictError
	assert.ErrorAs(t, err, &conflict)
	m.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestWriteTableOverwritesAndClearsTrailingRows(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	current := [][]interface{}{
		{"asset_id", "is_active"},
		{"AST-001", "true"},
		{"AST-002", "true"},
	}
	m.On("Get", "sheet-id", "'assets_master'").Return(current, nil)
	m.On("Update", "sheet-id", "'assets_master'!A1", [][]interface{}{
		{"asset_id", "is_active"},
		{"AST-001", "false"},
	}).Return(nil)
	m.On("Clear", "sheet-id", "'assets_master'!A3:ZZZ").Return(nil)

	err := s.WriteTable(context.Background(), "assets_master", table.Table{
		Header:   []string{"asset_id", "is_active"},
		Rows:     []table.Row{{"asset_id": "AST-001", "is_active": "false"}},
		Revision: revision(current),
	})

	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestWriteTableExtendsHeaderWithNewKeys(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	current := [][]interface{}{
		{"asset_id", "is_active"},
		{"AST-001", "true"},
	}
	m.On("Get", "sheet-id", "'assets_master'").Return(current, nil)
	m.On("Update", "sheet-id", "'assets_master'!A1", [][]interface{}{
		{"asset_id", "is_active", "updated_at", "note"},
		{"AST-001", "false", "2024-05-10T09:00:00", "screen cracked"},
	}).Return(nil)

	err := s.WriteTable(context.Background(), "assets_master", table.Table{
		Header: []string{"asset_id", "is_active"},
		Rows: []table.Row{{
			"asset_id":   "AST-001",
			"is_active":  "false",
			"note":       "screen cracked",
			"updated_at": "2024-05-10T09:00:00",
		}},
		Revision: revision(current),
	})

	require.NoError(t, err)
	m.AssertExpectations(t)
	m.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestWriteTableDoesNotRetryServerErrors(t *testing.T) {
	m := new(MockValuesClient)
	s := newTestStore(m)

	m.On("Get", "sheet-id", "'t'").Return([][]interface{}{{"id"}}, nil)
	m.On("Update", "sheet-id", "'t'!A1", mock.Anything).Return(&googleapi.Error{Code: 503}).Once()

	err := s.WriteTable(context.Background(), "t", table.Table{Header: []string{"id"}})

	var backend *custom_error.BackendError
	assert.ErrorAs(t, err, &backend)
	m.AssertExpectations(t)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		idempotent bool
		expected   bool
	}{
		{"throttled write", &googleapi.Error{Code: 429}, false, true},
		{"server error read", &googleapi.Error{Code: 500}, true, true},
		{"server error write", &googleapi.Error{Code: 500}, false, false},
		{"bad request", &googleapi.Error{Code: 400}, true, false},
		{"plain error", errors.New("dial tcp"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryable(tt.err, tt.idempotent))
		})
	}
}

func TestSheetRange(t *testing.T) {
	assert.Equal(t, "'assets_master'", sheetRange("assets_master", ""))
	assert.Equal(t, "'o''data'!1:1", sheetRange("o'data", "1:1"))
}
