package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/it407/it-assets/internal/repository"
	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/table"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
)

const (
	tablesTable = "sheet_tables"
	rowsTable   = "sheet_rows"
)

type tableRecord struct {
	Name     string `db:"name"`
	Header   string `db:"header"`
	Revision int64  `db:"revision"`
}

type rowRecord struct {
	Position int    `db:"position"`
	Cells    string `db:"cells"`
}

// Store keeps every sheet as a header plus positional JSON rows, with a
// revision counter per table bumped on each write.
type Store struct {
	repo *repository.Repository
}

func NewStore(repo *repository.Repository) *Store {
	return &Store{repo: repo}
}

func (s *Store) ReadTable(ctx context.Context, name string) (table.Table, error) {
	var result table.Table

	err := repository.WithTransaction(ctx, s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var rec tableRecord
		found, err := tx.From(tablesTable).
			Select("name", "header", "revision").
			Where(goqu.Ex{"name": name}).
			ForShare(exp.Wait).
			ScanStructContext(ctx, &rec)
		if err != nil {
			return err
		}
		if !found {
			result = table.Table{Header: []string{}, Rows: []table.Row{}, Revision: "0"}
			return nil
		}

		header, err := decodeCells(rec.Header)
		if err != nil {
			return fmt.Errorf("decode header: %w", err)
		}

		var records []rowRecord
		err = tx.From(rowsTable).
			Select("position", "cells").
			Where(goqu.Ex{"table_name": name}).
			Order(goqu.C("position").Asc()).
			ScanStructsContext(ctx, &records)
		if err != nil {
			return err
		}

		rows := make([]table.Row, 0, len(records))
		for _, r := range records {
			cells, err := decodeCells(r.Cells)
			if err != nil {
				return fmt.Errorf("decode row %d: %w", r.Position, err)
			}
			rows = append(rows, toRow(header, cells))
		}

		result = table.Table{Header: header, Rows: rows, Revision: strconv.FormatInt(rec.Revision, 10)}
		return nil
	})
	if err != nil {
		return table.Table{}, wrapError("read", name, err)
	}

	return result, nil
}

// WriteTable replaces all rows of the table. An empty Revision skips the staleness check.
func (s *Store) WriteTable(ctx context.Context, name string, t table.Table) error {
	err := repository.WithTransaction(ctx, s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		rec, err := lockTable(ctx, tx, name)
		if err != nil {
			return err
		}
		if t.Revision != "" && t.Revision != strconv.FormatInt(rec.Revision, 10) {
			return custom_error.NewConflictError("table %s changed since it was read (revision %s, stored %d)", name, t.Revision, rec.Revision)
		}

		header := store.OverwriteHeader(name, t.Header, t.Rows)

		if _, err := tx.Delete(rowsTable).Where(goqu.Ex{"table_name": name}).Executor().ExecContext(ctx); err != nil {
			return err
		}

		if len(t.Rows) > 0 {
			records := make([]interface{}, 0, len(t.Rows))
			for i, row := range t.Rows {
				cells, err := encodeCells(store.AlignRow(header, row))
				if err != nil {
					return err
				}
				records = append(records, goqu.Record{
					"table_name": name,
					"position":   i + 1,
					"cells":      cells,
				})
			}
			if _, err := tx.Insert(rowsTable).Rows(records...).Executor().ExecContext(ctx); err != nil {
				return err
			}
		}

		return bumpRevision(ctx, tx, name, header)
	})

	return wrapError("write", name, err)
}

func (s *Store) AppendRow(ctx context.Context, name string, row table.Row) error {
	err := repository.WithTransaction(ctx, s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		rec, err := lockTable(ctx, tx, name)
		if err != nil {
			return err
		}

		stored, err := decodeCells(rec.Header)
		if err != nil {
			return fmt.Errorf("decode header: %w", err)
		}
		header := store.HeaderFor(name, stored, row)

		var position int
		_, err = tx.From(rowsTable).
			Select(goqu.COALESCE(goqu.MAX("position"), 0)).
			Where(goqu.Ex{"table_name": name}).
			ScanValContext(ctx, &position)
		if err != nil {
			return err
		}

		cells, err := encodeCells(store.AlignRow(header, row))
		if err != nil {
			return err
		}
		_, err = tx.Insert(rowsTable).Rows(goqu.Record{
			"table_name": name,
			"position":   position + 1,
			"cells":      cells,
		}).Executor().ExecContext(ctx)
		if err != nil {
			return err
		}

		return bumpRevision(ctx, tx, name, header)
	})

	return wrapError("append", name, err)
}

// lockTable makes sure the table exists and holds its row lock until the transaction ends.
func lockTable(ctx context.Context, tx *goqu.TxDatabase, name string) (tableRecord, error) {
	_, err := tx.Insert(tablesTable).
		Rows(goqu.Record{"name": name}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx)
	if err != nil {
		return tableRecord{}, err
	}

	var rec tableRecord
	_, err = tx.From(tablesTable).
		Select("name", "header", "revision").
		Where(goqu.Ex{"name": name}).
		ForUpdate(exp.Wait).
		ScanStructContext(ctx, &rec)

	return rec, err
}

func bumpRevision(ctx context.Context, tx *goqu.TxDatabase, name string, header []string) error {
	encoded, err := encodeCells(header)
	if err != nil {
		return err
	}

	_, err = tx.Update(tablesTable).
		Set(goqu.Record{
			"header":     encoded,
			"revision":   goqu.L("revision + 1"),
			"updated_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"name": name}).
		Executor().ExecContext(ctx)

	return err
}

func encodeCells(cells []string) (exp.CastExpression, error) {
	raw, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("encode cells: %w", err)
	}
	return goqu.Cast(goqu.V(string(raw)), "JSONB"), nil
}

func decodeCells(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return nil, err
	}
	return cells, nil
}

// toRow maps positional cells onto the header. Short rows are padded with
// empty values and cells beyond the header are dropped.
func toRow(header, cells []string) table.Row {
	row := make(table.Row, len(header))
	for i, h := range header {
		if i < len(cells) {
			row[h] = cells[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func wrapError(op, name string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return custom_error.WrapDBError(fmt.Sprintf("%s %s: %s", op, name, pqErr.Message), string(pqErr.Code))
	}

	return custom_error.WrapBackend(op, name, err)
}
