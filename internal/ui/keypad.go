package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
)

var _ chip8.Input = (*Keypad)(nil)

// keymap lays the 16-key hex pad over the 1234/QWER/ASDF/ZXCV block.
var keymap = map[ebiten.Key]byte{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Keypad is the windowed input source. Key releases are captured only after
// the VM starts polling for one, so a stale release cannot satisfy a later
// wait-for-key instruction.
type Keypad struct {
	keys        [16]bool
	armed       bool
	released    byte
	hasReleased bool
	quit        bool
}

// NewKeypad returns an idle keypad.
func NewKeypad() *Keypad { return &Keypad{} }

// poll refreshes key state from ebiten. Called once per app update.
func (k *Keypad) poll() {
	for key, hex := range keymap {
		k.keys[hex] = ebiten.IsKeyPressed(key)
		if k.armed && inpututil.IsKeyJustReleased(key) {
			k.released = hex
			k.hasReleased = true
			k.armed = false
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		k.quit = true
	}
}

// IsKeyPressed reports whether the hex key is currently held.
func (k *Keypad) IsKeyPressed(key byte) bool { return k.keys[key&0xF] }

// PollForRelease returns a captured key release, arming capture otherwise.
func (k *Keypad) PollForRelease() (byte, bool) {
	if k.hasReleased {
		k.hasReleased = false
		return k.released, true
	}
	k.armed = true
	return 0, false
}

// ShouldQuit reports whether Escape was pressed.
func (k *Keypad) ShouldQuit() bool { return k.quit }
