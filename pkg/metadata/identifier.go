package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// IdentifierFormat describes a prefixed, zero padded sequential key such as AST-001.
type IdentifierFormat struct {
	Prefix string
	Width  int
}

var (
	AssetID              = IdentifierFormat{Prefix: "AST-", Width: 3}
	AssetAssignmentID    = IdentifierFormat{Prefix: "ASN-", Width: 4}
	CredentialID         = IdentifierFormat{Prefix: "CRED-", Width: 3}
	SoftwareID           = IdentifierFormat{Prefix: "SOFT-", Width: 3}
	SoftwareAssignmentID = IdentifierFormat{Prefix: "SASN-", Width: 3}
)

// Format renders n with the prefix. Numbers wider than Width are not truncated.
func (f IdentifierFormat) Format(n int) string {
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, n)
}

// Parse returns the numeric suffix of id. Identifiers with another prefix or
// a suffix that is not a plain non-negative integer are rejected.
func (f IdentifierFormat) Parse(id string) (int, bool) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, f.Prefix) {
		return 0, false
	}

	suffix := id[len(f.Prefix):]
	if suffix == "" {
		return 0, false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}

	return n, true
}

// Next returns count consecutive identifiers following the highest one in existing.
func (f IdentifierFormat) Next(existing []string, count int) []string {
	return AllocateIDs(existing, f.Prefix, count, f.Width)
}

// AllocateIDs scans existing for identifiers with prefix and returns count new
// ones starting at max+1, or at 1 when none parse. Gaps are never filled.
func AllocateIDs(existing []string, prefix string, count, width int) []string {
	if count <= 0 {
		return []string{}
	}

	format := IdentifierFormat{Prefix: prefix, Width: width}
	highest := 0
	for _, id := range existing {
		if n, ok := format.Parse(id); ok && n > highest {
			highest = n
		}
	}

	ids := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		ids = append(ids, format.Format(highest+i))
	}

	return ids
}
