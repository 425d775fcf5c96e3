package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		ellipsis bool
		want     string
	}{
		{"fits", "lighthouse", 20, true, "lighthouse"},
		{"exact", "lighthouse", 10, true, "lighthouse"},
		{"truncated with ellipsis", "lighthouse-extra", 10, true, "lightho..."},
		{"truncated without ellipsis", "lighthouse", 5, false, "light"},
		{"zero width", "lighthouse", 0, true, ""},
		{"trims whitespace", "  babette  ", 20, false, "babette"},
		{"narrow width skips ellipsis", "lighthouse", 3, true, "lig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.width, tt.ellipsis))
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "babette   ", TruncateAndPad("babette", 10, false))
	assert.Equal(t, "light", TruncateAndPad("lighthouse", 5, false))
	assert.Len(t, TruncateAndPad("lighthouse", 8, true), 8)
}
