package counts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1.2K", 1200},
		{"50M", 50_000_000},
		{"423", 423},
		{"  17k ", 17000},
		{"3.7m", 3_700_000},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"1,234", 0},
		{"12B", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Parse(tt.in), "Parse(%q)", tt.in)
	}
}

func TestParseFloors(t *testing.T) {
	// 1.2345K = 1234.5, floored
	assert.Equal(t, 1234, Parse("1.2345K"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1500, "1.5K"},
		{2_300_000, "2.3M"},
		{42, "42"},
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1_000_000, "1.0M"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "Format(%d)", tt.in)
	}
}
