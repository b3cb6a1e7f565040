package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// setPixels counts set pixels over the whole grid.
func setPixels(vm *VM) int {
	w, h := vm.fb.Size()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if vm.fb.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestDrawGlyphAndEraseReportsCollision(t *testing.T) {
	vm := newVM(t, ModeChip8, nil)
	vm.V[0] = 4 // digit to draw
	vm.V[1] = 8 // x
	vm.V[2] = 4 // y
	assert.NoError(t, vm.execute(0xF029)) // I = glyph for 4
	assert.NoError(t, vm.execute(0xD125)) // DRW V1, V2, 5
	assert.Equal(t, byte(0), vm.V[0xF])

	// glyph 4 row 0 is 0x90
	assert.True(t, vm.fb.Pixel(8, 4))
	assert.False(t, vm.fb.Pixel(9, 4))
	assert.True(t, vm.fb.Pixel(11, 4))

	// drawing the same sprite again erases it and reports the collision
	assert.NoError(t, vm.execute(0xD125))
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.Equal(t, 0, setPixels(vm))
}

func TestDrawOverlapCollidesOnlyOnSetBits(t *testing.T) {
	vm := newVM(t, ModeChip8, nil)
	vm.Mem[0x300] = 0xF0
	vm.Mem[0x301] = 0x0F
	vm.I = 0x300

	assert.NoError(t, vm.execute(0xD001)) // one row: F0 at (0,0)
	assert.Equal(t, byte(0), vm.V[0xF])

	vm.I = 0x301
	assert.NoError(t, vm.execute(0xD001)) // 0F at (0,0): disjoint bits
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.Equal(t, 8, setPixels(vm))
}

func TestDrawAnchorWrapsInEveryMode(t *testing.T) {
	for _, mode := range []Mode{ModeChip8, ModeSuperChip, ModeXOChip} {
		t.Run(mode.String(), func(t *testing.T) {
			vm := newVM(t, mode, nil)
			vm.Mem[0x300] = 0x80
			vm.I = 0x300
			vm.V[0] = 64 // one full width: anchor lands at 0
			vm.V[1] = 32
			assert.NoError(t, vm.execute(0xD011))
			assert.True(t, vm.fb.Pixel(0, 0))
		})
	}
}

func TestDrawClipsAtRightEdgeInClassicMode(t *testing.T) {
	vm := newVM(t, ModeChip8, nil)
	vm.Mem[0x300] = 0xFF
	vm.I = 0x300
	vm.V[0] = 60
	vm.V[1] = 0
	assert.NoError(t, vm.execute(0xD011))

	assert.Equal(t, 4, setPixels(vm)) // bits past x=63 are dropped
	assert.True(t, vm.fb.Pixel(63, 0))
	assert.False(t, vm.fb.Pixel(0, 0))
}

func TestDrawWrapsAtRightEdgeInXOChipMode(t *testing.T) {
	vm := newVM(t, ModeXOChip, nil)
	vm.Mem[0x300] = 0xFF
	vm.I = 0x300
	vm.V[0] = 60
	vm.V[1] = 0
	assert.NoError(t, vm.execute(0xD011))

	assert.Equal(t, 8, setPixels(vm))
	assert.True(t, vm.fb.Pixel(63, 0))
	assert.True(t, vm.fb.Pixel(0, 0))
	assert.True(t, vm.fb.Pixel(3, 0))
}

func TestDrawClipsAtBottomEdgeInClassicMode(t *testing.T) {
	vm := newVM(t, ModeChip8, nil)
	vm.Mem[0x300] = 0x80
	vm.Mem[0x301] = 0x80
	vm.I = 0x300
	vm.V[0] = 0
	vm.V[1] = 31
	assert.NoError(t, vm.execute(0xD012))

	assert.Equal(t, 1, setPixels(vm))
	assert.True(t, vm.fb.Pixel(0, 31))
}

func TestDrawWrapsAtBottomEdgeInXOChipMode(t *testing.T) {
	vm := newVM(t, ModeXOChip, nil)
	vm.Mem[0x300] = 0x80
	vm.Mem[0x301] = 0x80
	vm.I = 0x300
	vm.V[0] = 0
	vm.V[1] = 31
	assert.NoError(t, vm.execute(0xD012))

	assert.True(t, vm.fb.Pixel(0, 31))
	assert.True(t, vm.fb.Pixel(0, 0))
}

func TestLargeSpriteInExtendedModes(t *testing.T) {
	vm := newVM(t, ModeSuperChip, nil)
	assert.NoError(t, vm.execute(0x00FF)) // HIGH
	w, h := vm.fb.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 64, h)

	// 16x16 sprite, all bits set: two bytes per row
	for i := 0; i < 32; i++ {
		vm.Mem[0x300+i] = 0xFF
	}
	vm.I = 0x300
	vm.V[0] = 0
	vm.V[1] = 0
	assert.NoError(t, vm.execute(0xD010)) // n=0: 16x16
	assert.Equal(t, 256, setPixels(vm))
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestZeroHeightDrawIsANoOpInClassicMode(t *testing.T) {
	vm := newVM(t, ModeChip8, nil)
	vm.V[0xF] = 1
	vm.I = 0x300
	assert.NoError(t, vm.execute(0xD010))
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.Equal(t, 0, setPixels(vm))
}

func TestResolutionSwitchClearsTheGrid(t *testing.T) {
	vm := newVM(t, ModeSuperChip, nil)
	vm.Mem[0x300] = 0x80
	vm.I = 0x300
	assert.NoError(t, vm.execute(0xD001))
	assert.Equal(t, 1, setPixels(vm))

	assert.NoError(t, vm.execute(0x00FF)) // HIGH
	assert.Equal(t, 0, setPixels(vm))

	assert.NoError(t, vm.execute(0x00FE)) // LOW
	w, _ := vm.fb.Size()
	assert.Equal(t, 64, w)
}

func TestScrollOpcodes(t *testing.T) {
	vm := newVM(t, ModeSuperChip, nil)
	assert.NoError(t, vm.execute(0x00FF)) // HIGH
	vm.Mem[0x300] = 0x80
	vm.I = 0x300
	vm.V[0] = 8
	vm.V[1] = 8
	assert.NoError(t, vm.execute(0xD011)) // pixel at (8, 8)

	assert.NoError(t, vm.execute(0x00C2)) // SCD 2
	assert.True(t, vm.fb.Pixel(8, 10))

	assert.NoError(t, vm.execute(0x00D2)) // SCU 2
	assert.True(t, vm.fb.Pixel(8, 8))

	assert.NoError(t, vm.execute(0x00FB)) // SCR
	assert.True(t, vm.fb.Pixel(12, 8))

	assert.NoError(t, vm.execute(0x00FC)) // SCL
	assert.True(t, vm.fb.Pixel(8, 8))
}

func TestHorizontalScrollRequiresHighRes(t *testing.T) {
	for _, op := range []uint16{0x00FB, 0x00FC} {
		vm := newVM(t, ModeSuperChip, nil)
		err := vm.execute(op)
		var opErr *OpcodeError
		assert.True(t, errors.As(err, &opErr))
	}
}
