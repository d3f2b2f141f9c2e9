package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateIDs(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		count    int
		width    int
		expected []string
	}{
		{
			name:     "Empty table starts at one",
			existing: nil,
			prefix:   "AST-",
			count:    1,
			width:    3,
			expected: []string{"AST-001"},
		},
		{
			name:     "Continues after the highest suffix",
			existing: []string{"ASN-0007", "ASN-0002"},
			prefix:   "ASN-",
			count:    1,
			width:    4,
			expected: []string{"ASN-0008"},
		},
		{
			name:     "Gaps are not filled",
			existing: []string{"AST-001", "AST-005"},
			prefix:   "AST-",
			count:    2,
			width:    3,
			expected: []string{"AST-006", "AST-007"},
		},
		{
			name:     "Malformed and foreign identifiers are ignored",
			existing: []string{"AST-00X", "SOFT-009", "", "AST-", "ast-100", "AST-002"},
			prefix:   "AST-",
			count:    1,
			width:    3,
			expected: []string{"AST-003"},
		},
		{
			name:     "Only malformed identifiers start at one",
			existing: []string{"CRED-abc", "CRED-1.5"},
			prefix:   "CRED-",
			count:    1,
			width:    3,
			expected: []string{"CRED-001"},
		},
		{
			name:     "Numbers wider than the pad are kept whole",
			existing: []string{"AST-999"},
			prefix:   "AST-",
			count:    2,
			width:    3,
			expected: []string{"AST-1000", "AST-1001"},
		},
		{
			name:     "Zero count",
			existing: []string{"AST-001"},
			prefix:   "AST-",
			count:    0,
			width:    3,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := AllocateIDs(tt.existing, tt.prefix, tt.count, tt.width)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestAllocateIDsNeverCollides(t *testing.T) {
	existing := []string{"SASN-001", "SASN-017", "SASN-004"}

	next := SoftwareAssignmentID.Next(existing, 5)

	assert.Len(t, next, 5)
	for _, id := range next {
		n, ok := SoftwareAssignmentID.Parse(id)
		assert.True(t, ok)
		assert.Greater(t, n, 17)
		assert.NotContains(t, existing, id)
	}
}

func TestIdentifierFormats(t *testing.T) {
	assert.Equal(t, "AST-001", AssetID.Format(1))
	assert.Equal(t, "ASN-0001", AssetAssignmentID.Format(1))
	assert.Equal(t, "CRED-012", CredentialID.Format(12))
	assert.Equal(t, "SOFT-003", SoftwareID.Format(3))
	assert.Equal(t, "SASN-100", SoftwareAssignmentID.Format(100))
}
