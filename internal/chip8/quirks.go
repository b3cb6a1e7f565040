package chip8

import "fmt"

// Mode selects one of the three interpreter variants. It is fixed for the
// lifetime of a VM and decides how the handful of mode-sensitive opcodes
// behave, plus whether the extended (Super-CHIP era) opcodes are legal at all.
type Mode int

const (
	// ModeChip8 is the classic Cosmac VIP interpreter.
	ModeChip8 Mode = iota
	// ModeSuperChip is the HP48 Super-CHIP variant.
	ModeSuperChip
	// ModeXOChip is the extended-memory XO-CHIP variant.
	ModeXOChip
)

func (m Mode) String() string {
	switch m {
	case ModeChip8:
		return "chip8"
	case ModeSuperChip:
		return "schip"
	case ModeXOChip:
		return "xochip"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a CLI name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "chip8", "":
		return ModeChip8, nil
	case "schip", "superchip":
		return ModeSuperChip, nil
	case "xochip", "xo-chip":
		return ModeXOChip, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want chip8, schip or xochip)", s)
}

// quirks collects the per-mode behavior switches. Opcode handlers consult
// these flags instead of re-testing the mode.
type quirks struct {
	resetVF      bool // 8xy1/8xy2/8xy3 zero VF as a side effect
	shiftCopiesY bool // 8xy6/8xyE copy Vy into Vx before shifting
	jumpUsesVX   bool // Bnnn adds Vx (x = high nibble of nnn) instead of V0
	spriteWraps  bool // Dxyn wraps rows/bits instead of clipping at the edges
	incrementI   bool // Fx55/Fx65 advance I by x+1 after the transfer
	extendedOps  bool // scrolls, resolution switch, exit and 16x16 sprites are legal
}

var quirkTable = map[Mode]quirks{
	ModeChip8:     {resetVF: true, shiftCopiesY: true, incrementI: true},
	ModeSuperChip: {jumpUsesVX: true, extendedOps: true},
	ModeXOChip:    {shiftCopiesY: true, spriteWraps: true, incrementI: true, extendedOps: true},
}
