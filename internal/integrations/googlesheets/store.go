package googlesheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/it407/it-assets/internal/store"
	custom_error "github.com/it407/it-assets/pkg/errors"
	"github.com/it407/it-assets/pkg/table"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

// Store reads and writes one worksheet per table of a spreadsheet.
type Store struct {
	values        valuesClient
	spreadsheetID string
	attempts      uint
	delay         time.Duration
	logger        *zap.Logger
}

func NewStore(service *sheets.Service, spreadsheetID string, attempts uint, logger *zap.Logger) *Store {
	return newStore(&sheetsValues{values: service.Spreadsheets.Values}, spreadsheetID, attempts, time.Second, logger)
}

func newStore(values valuesClient, spreadsheetID string, attempts uint, delay time.Duration, logger *zap.Logger) *Store {
	if attempts == 0 {
		attempts = 1
	}
	return &Store{
		values:        values,
		spreadsheetID: spreadsheetID,
		attempts:      attempts,
		delay:         delay,
		logger:        logger,
	}
}

func (s *Store) ReadTable(ctx context.Context, name string) (table.Table, error) {
	values, err := s.get(ctx, sheetRange(name, ""))
	if err != nil {
		return table.Table{}, custom_error.WrapBackend("read", name, err)
	}

	t := parseValues(values)
	t.Revision = revision(values)

	s.logger.Debug("Read sheet", zap.String("sheet", name), zap.Int("rows", len(t.Rows)))
	return t, nil
}

// WriteTable overwrites the sheet in place and then clears whatever the
// previous content had beyond the new rows and columns. The sheet is re-read
// first and the write is refused when its fingerprint differs from t.Revision.
func (s *Store) WriteTable(ctx context.Context, name string, t table.Table) error {
	current, err := s.get(ctx, sheetRange(name, ""))
	if err != nil {
		return custom_error.WrapBackend("write", name, err)
	}
	if t.Revision != "" && t.Revision != revision(current) {
		return custom_error.NewConflictError("sheet %s changed since it was read", name)
	}

	header := store.OverwriteHeader(name, t.Header, t.Rows)

	width := len(header)
	for _, cells := range current {
		if len(cells) > width {
			width = len(cells)
		}
	}

	values := make([][]interface{}, 0, len(t.Rows)+1)
	values = append(values, toValues(header, width))
	for _, row := range t.Rows {
		values = append(values, toValues(store.AlignRow(header, row), width))
	}

	err = s.do(ctx, "update", name, false, func() error {
		return s.values.Update(ctx, s.spreadsheetID, sheetRange(name, "A1"), values)
	})
	if err != nil {
		return custom_error.WrapBackend("write", name, err)
	}

	if len(current) > len(values) {
		trailing := sheetRange(name, fmt.Sprintf("A%d:ZZZ", len(values)+1))
		err = s.do(ctx, "clear", name, false, func() error {
			return s.values.Clear(ctx, s.spreadsheetID, trailing)
		})
		if err != nil {
			return custom_error.WrapBackend("write", name, err)
		}
	}

	s.logger.Info("Wrote sheet", zap.String("sheet", name), zap.Int("rows", len(t.Rows)))
	return nil
}

func (s *Store) AppendRow(ctx context.Context, name string, row table.Row) error {
	headerValues, err := s.get(ctx, sheetRange(name, "1:1"))
	if err != nil {
		return custom_error.WrapBackend("append", name, err)
	}

	var stored []string
	if len(headerValues) > 0 {
		for _, cell := range headerValues[0] {
			stored = append(stored, toString(cell))
		}
	}

	header := store.HeaderFor(name, stored, row)
	values := [][]interface{}{}
	if len(stored) == 0 {
		values = append(values, toValues(header, 0))
	}
	values = append(values, toValues(store.AlignRow(header, row), 0))

	err = s.do(ctx, "append", name, false, func() error {
		return s.values.Append(ctx, s.spreadsheetID, sheetRange(name, ""), values)
	})
	if err != nil {
		return custom_error.WrapBackend("append", name, err)
	}

	return nil
}

func (s *Store) get(ctx context.Context, readRange string) ([][]interface{}, error) {
	var values [][]interface{}
	err := s.do(ctx, "get", readRange, true, func() error {
		v, err := s.values.Get(ctx, s.spreadsheetID, readRange)
		if err != nil {
			return err
		}
		values = v
		return nil
	})
	return values, err
}

// do retries throttled calls. Reads are also retried on server errors; writes
// are not, since a failed write may still have been applied.
func (s *Store) do(ctx context.Context, op, target string, idempotent bool, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return isRetryable(err, idempotent)
		}),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("Retrying Google Sheets call",
				zap.String("op", op),
				zap.String("target", target),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
}

func isRetryable(err error, idempotent bool) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	return idempotent && apiErr.Code >= http.StatusInternalServerError
}
