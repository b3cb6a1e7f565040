package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassembleOpcode(t *testing.T) {
	tests := []struct {
		op   uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP   #234"},
		{0x6A2B, "LD   VA, #2B"},
		{0xA300, "LD   I, #300"},
		{0xD125, "DRW  V1, V2, 5"},
		{0xF533, "LD   B, V5"},
		{0xF155, "LD   [I], V1"},
		{0x00C3, "SCD  3"},
		{0x00FB, "SCR"},
		{0x00FD, "EXIT"},
		{0x00FF, "HIGH"},
		{0xFFFF, "?? #FFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DisassembleOpcode(tt.op))
		})
	}
}

func TestDisassembleReadsMemoryAtAddress(t *testing.T) {
	vm := newVM(t, ModeChip8, []byte{0x12, 0x34})
	got := vm.Disassemble(ProgramStart)
	assert.True(t, strings.HasPrefix(got, "0200 - "))
	assert.True(t, strings.Contains(got, "#234"))
}

func TestDisassemblePastEndOfMemory(t *testing.T) {
	vm := newVM(t, ModeChip8, nil)
	assert.Equal(t, "0FFF -", vm.Disassemble(0x0FFF))
}
