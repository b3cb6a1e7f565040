// Package chip8 implements the fetch-decode-execute core shared by the
// classic CHIP-8, Super-CHIP and XO-CHIP interpreter variants. The VM owns
// all mutable state (memory, registers, stack, timers); display, input and
// audio are collaborator interfaces supplied at construction.
package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

const (
	// MemorySize is the fixed size of the addressable memory image.
	MemorySize = 4096
	// ProgramStart is the address programs are loaded at and start from.
	ProgramStart = 0x200
	// StackDepth is the maximum call depth.
	StackDepth = 16
	// GlyphSize is the height in bytes of one built-in font digit.
	GlyphSize = 5
)

// Input is the keypad collaborator. PollForRelease is non-blocking and
// consumed once per key-wait cycle.
type Input interface {
	IsKeyPressed(key byte) bool
	PollForRelease() (key byte, ok bool)
	ShouldQuit() bool
}

// Audio is the tone collaborator. Start and Stop are called exactly on the
// rising and falling edge of "sound timer nonzero".
type Audio interface {
	Start()
	Stop()
}

// VM is one CHIP-8 family virtual machine.
type VM struct {
	Mem   [MemorySize]byte
	V     [16]byte
	I     uint16
	PC    uint16
	Stack [StackDepth]uint16
	SP    int
	DT    byte
	ST    byte

	mode   Mode
	quirks quirks
	fb     *display.Framebuffer
	input  Input
	audio  Audio
	rng    *rand.Rand

	// key-wait state: while waiting is set, cycles poll for a key release
	// destined for V[waitReg] instead of fetching instructions.
	waiting bool
	waitReg byte
}

// New builds a VM from a complete memory image (font at 0, program at 0x200)
// as produced by the rom package. The image length must match MemorySize.
func New(image []byte, mode Mode, fb *display.Framebuffer, input Input, audio Audio) (*VM, error) {
	if len(image) != MemorySize {
		return nil, fmt.Errorf("memory image is %d bytes, want %d", len(image), MemorySize)
	}
	q, ok := quirkTable[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %v", mode)
	}

	vm := &VM{
		PC:     ProgramStart,
		mode:   mode,
		quirks: q,
		fb:     fb,
		input:  input,
		audio:  audio,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	copy(vm.Mem[:], image)
	return vm, nil
}

// Mode returns the variant the VM was constructed with.
func (vm *VM) Mode() Mode { return vm.mode }

// Waiting reports whether the VM is suspended in the key-wait state.
func (vm *VM) Waiting() bool { return vm.waiting }

// SeedRand re-seeds the RND opcode's generator. Useful for reproducible runs.
func (vm *VM) SeedRand(seed int64) {
	vm.rng = rand.New(rand.NewSource(seed))
}

// Cycle performs one fetch-decode-execute pass. While in the key-wait state
// it polls the input collaborator instead; no instruction fetch occurs.
func (vm *VM) Cycle() error {
	if vm.waiting {
		if key, ok := vm.input.PollForRelease(); ok {
			vm.V[vm.waitReg] = key
			vm.waiting = false
		}
		return nil
	}

	op, err := vm.fetch()
	if err != nil {
		return err
	}
	return vm.execute(op)
}

// TickTimers decrements the delay and sound timers once. Called at the fixed
// frame rate. Reaching zero on the sound timer is the falling audio edge.
func (vm *VM) TickTimers() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
		if vm.ST == 0 {
			vm.audio.Stop()
		}
	}
}

// fetch reads the 16-bit big-endian instruction at PC and advances PC by 2.
func (vm *VM) fetch() (uint16, error) {
	if int(vm.PC)+1 >= MemorySize {
		return 0, &MemoryError{Addr: int(vm.PC)}
	}
	op := uint16(vm.Mem[vm.PC])<<8 | uint16(vm.Mem[vm.PC+1])
	vm.PC += 2
	return op, nil
}

// setSoundTimer writes the sound timer and drives the audio edges: 0 to
// nonzero starts the tone, nonzero to 0 stops it.
func (vm *VM) setSoundTimer(v byte) {
	prev := vm.ST
	vm.ST = v
	switch {
	case prev == 0 && v > 0:
		vm.audio.Start()
	case prev > 0 && v == 0:
		vm.audio.Stop()
	}
}
