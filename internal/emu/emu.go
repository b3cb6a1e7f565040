// Package emu wires the interpreter core, framebuffer and collaborator
// interfaces into a Machine and schedules the two clocks: instruction cycles
// at the configured rate and timer/present ticks at the fixed frame rate.
package emu

import (
	"context"
	"errors"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

// NullInput is an input source with no keys and no quit request. Used for
// headless runs and tests.
type NullInput struct{}

func (NullInput) IsKeyPressed(byte) bool       { return false }
func (NullInput) PollForRelease() (byte, bool) { return 0, false }
func (NullInput) ShouldQuit() bool             { return false }

// NullAudio discards the tone edges.
type NullAudio struct{}

func (NullAudio) Start() {}
func (NullAudio) Stop()  {}

// Machine owns one VM plus its framebuffer and drives them per frame.
type Machine struct {
	cfg    Config
	vm     *chip8.VM
	fb     *display.Framebuffer
	input  chip8.Input
	logger *log.Logger

	cyclesPerFrame int
	frames         int
}

// New builds a Machine around a loaded memory image. Nil collaborators fall
// back to the null implementations; a nil sink renders nowhere.
func New(cfg Config, image []byte, sink display.Sink, input chip8.Input, audio chip8.Audio, logger *log.Logger) (*Machine, error) {
	cfg.Defaults()
	if input == nil {
		input = NullInput{}
	}
	if audio == nil {
		audio = NullAudio{}
	}

	fb := display.New(sink)
	vm, err := chip8.New(image, cfg.Mode, fb, input, audio)
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		vm.SeedRand(cfg.Seed)
	}

	// round to the nearest whole cycle share; rates below the frame rate
	// still execute one cycle per frame
	cyclesPerFrame := (cfg.CycleHz + FrameRate/2) / FrameRate
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}

	return &Machine{
		cfg:            cfg,
		vm:             vm,
		fb:             fb,
		input:          input,
		logger:         logger,
		cyclesPerFrame: cyclesPerFrame,
	}, nil
}

// VM exposes the interpreter core, mainly for tests and trace tooling.
func (m *Machine) VM() *chip8.VM { return m.vm }

// Framebuffer exposes the pixel grid for presentation and checksums.
func (m *Machine) Framebuffer() *display.Framebuffer { return m.fb }

// Frames returns how many frame ticks have run.
func (m *Machine) Frames() int { return m.frames }

// StepFrame runs one frame: the frame's share of instruction cycles, one
// timer decrement and one batched present. All cycles scheduled for the
// frame complete before the timers tick. The first failing cycle aborts
// the frame and is returned.
func (m *Machine) StepFrame() error {
	for i := 0; i < m.cyclesPerFrame; i++ {
		if m.cfg.Trace && m.logger != nil && !m.vm.Waiting() {
			m.logger.Debug(m.vm.Disassemble(m.vm.PC))
		}
		if err := m.vm.Cycle(); err != nil {
			return err
		}
	}
	m.vm.TickTimers()
	m.fb.Render()
	m.frames++
	return nil
}

// Run drives frames at the fixed rate until the context is cancelled, the
// input source requests quitting, the program exits or a cycle faults.
// The quit signal is observed once per frame.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if m.input.ShouldQuit() {
				return nil
			}
			if err := m.StepFrame(); err != nil {
				if errors.Is(err, chip8.ErrExited) {
					return nil
				}
				return err
			}
		}
	}
}
