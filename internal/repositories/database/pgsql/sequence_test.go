package pgsql

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSequencedNumber(t *testing.T) {
	tests := []struct {
		name      string
		prefix    string
		maxSuffix int
		expected  string
	}{
		{"first of the day", "JE-20240115-", 0, "JE-20240115-001"},
		{"mid-sequence", "JE-20240115-", 41, "JE-20240115-042"},
		{"last padded value", "JE-20240115-", 998, "JE-20240115-999"},
		{"grows past three digits", "JE-20240115-", 999, "JE-20240115-1000"},
		{"keeps growing", "TXN-20240115-", 9999, "TXN-20240115-10000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nextSequencedNumber(tc.prefix, tc.maxSuffix)
			assert.Equal(t, tc.expected, got)

			// The segment after the last dash must parse back to the
			// allocated sequence, whatever its width.
			parts := strings.Split(got, "-")
			suffix, err := strconv.Atoi(parts[len(parts)-1])
			assert.NoError(t, err)
			assert.Equal(t, tc.maxSuffix+1, suffix)
		})
	}
}
