package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"01:30", 90},
		{"00:05", 5},
		{"10:00", 600},
		{"01:02:03", 3723},
		{"00:00:45", 45},
		{"2.5", 150},
		{"0.5", 30},
		{"", 0},
		{"garbage", 0},
		{"5", 0},
		{"a:b", 0},
		{"1:2:3:4", 0},
		{"1.2.3", 0},
		{" 01:30 ", 90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationSeconds(tt.in), "input %q", tt.in)
	}
}
