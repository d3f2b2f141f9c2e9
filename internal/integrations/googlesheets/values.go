package googlesheets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/it407/it-assets/pkg/table"
)

func toString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// parseValues turns a sheet range into a table. The first row is the header;
// short rows are padded and cells under an empty header are ignored.
func parseValues(values [][]interface{}) table.Table {
	if len(values) == 0 {
		return table.Table{Header: []string{}, Rows: []table.Row{}}
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = toString(cell)
	}

	rows := make([]table.Row, 0, len(values)-1)
	for _, cells := range values[1:] {
		row := make(table.Row, len(header))
		for i, h := range header {
			if strings.TrimSpace(h) == "" {
				continue
			}
			if i < len(cells) {
				row[h] = toString(cells[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return table.Table{Header: header, Rows: rows}
}

// revision fingerprints the raw cell values of a sheet.
func revision(values [][]interface{}) string {
	h := sha256.New()
	for _, cells := range values {
		for _, cell := range cells {
			h.Write([]byte(toString(cell)))
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func toValues(cells []string, width int) []interface{} {
	if width < len(cells) {
		width = len(cells)
	}
	out := make([]interface{}, width)
	for i := range out {
		if i < len(cells) {
			out[i] = cells[i]
		} else {
			out[i] = ""
		}
	}
	return out
}

func sheetRange(name, cells string) string {
	quoted := "'" + strings.ReplaceAll(name, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}
