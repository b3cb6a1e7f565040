package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"", ModeChip8},
		{"chip8", ModeChip8},
		{"schip", ModeSuperChip},
		{"superchip", ModeSuperChip},
		{"xochip", ModeXOChip},
		{"xo-chip", ModeXOChip},
	}

	for _, tt := range tests {
		mode, err := ParseMode(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, mode)
	}

	_, err := ParseMode("gameboy")
	assert.Error(t, err)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "chip8", ModeChip8.String())
	assert.Equal(t, "schip", ModeSuperChip.String())
	assert.Equal(t, "xochip", ModeXOChip.String())
}
