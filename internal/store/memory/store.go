package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/table"
)

type sheet struct {
	header   []string
	cells    [][]string
	revision int64
}

// Store keeps tables in process memory, laid out like a spreadsheet: one
// header row plus positional cells.
type Store struct {
	mu     sync.RWMutex
	sheets map[string]*sheet
}

func NewStore() *Store {
	return &Store{sheets: make(map[string]*sheet)}
}

func (s *Store) ReadTable(ctx context.Context, name string) (table.Table, error) {
	if err := ctx.Err(); err != nil {
		return table.Table{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sh, ok := s.sheets[name]
	if !ok {
		return table.Table{Header: []string{}, Rows: []table.Row{}, Revision: "0"}, nil
	}

	rows := make([]table.Row, 0, len(sh.cells))
	for _, cells := range sh.cells {
		row := make(table.Row, len(sh.header))
		for i, h := range sh.header {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return table.Table{
		Header:   append([]string(nil), sh.header...),
		Rows:     rows,
		Revision: strconv.FormatInt(sh.revision, 10),
	}, nil
}

// WriteTable overwrites the table. An empty Revision skips the staleness check.
func (s *Store) WriteTable(ctx context.Context, name string, t table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh := s.sheet(name)
	if t.Revision != "" && t.Revision != strconv.FormatInt(sh.revision, 10) {
		return custom_error.NewConflictError("table %s changed since it was read (revision %s, stored %d)", name, t.Revision, sh.revision)
	}

	header := store.OverwriteHeader(name, t.Header, t.Rows)

	cells := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, store.AlignRow(header, row))
	}

	sh.header = append([]string(nil), header...)
	sh.cells = cells
	sh.revision++

	return nil
}

func (s *Store) AppendRow(ctx context.Context, name string, row table.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh := s.sheet(name)
	if len(sh.header) == 0 {
		sh.header = store.HeaderFor(name, nil, row)
	}
	sh.cells = append(sh.cells, store.AlignRow(sh.header, row))
	sh.revision++

	return nil
}

func (s *Store) sheet(name string) *sheet {
	sh, ok := s.sheets[name]
	if !ok {
		sh = &sheet{}
		s.sheets[name] = sh
	}
	return sh
}
