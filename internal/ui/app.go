// Package ui implements the windowed frontend over ebiten: the render sink,
// the hex keypad input source and the square wave beeper, plus the app glue
// that drives one emulated frame per ebiten update.
package ui

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
)

// App runs a Machine in a window. Ebiten calls Update at the frame rate,
// which maps directly onto the scheduler's frame tick.
type App struct {
	cfg    Config
	m      *emu.Machine
	screen *Screen
	keypad *Keypad
	paused bool
}

// NewApp builds the collaborators and the machine around a memory image.
func NewApp(cfg Config, mcfg emu.Config, image []byte, logger *log.Logger) (*App, error) {
	cfg.Defaults()

	screen := NewScreen()
	keypad := NewKeypad()
	beeper, err := NewBeeper(cfg)
	if err != nil {
		return nil, err
	}

	m, err := emu.New(mcfg, image, screen, keypad, beeper, logger)
	if err != nil {
		return nil, err
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.HighWidth*cfg.Scale, display.HighHeight*cfg.Scale)

	return &App{cfg: cfg, m: m, screen: screen, keypad: keypad}, nil
}

// Machine exposes the wired machine.
func (a *App) Machine() *emu.Machine { return a.m }

// Run enters the ebiten main loop until quit.
func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	a.keypad.poll()
	if a.keypad.ShouldQuit() {
		return ebiten.Termination
	}

	// Pause toggle (P), frame-step when paused (N)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if a.paused && !inpututil.IsKeyJustPressed(ebiten.KeyN) {
		return nil
	}

	if err := a.m.StepFrame(); err != nil {
		if errors.Is(err, chip8.ErrExited) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (a *App) Draw(target *ebiten.Image) {
	w, h := a.m.Framebuffer().Size()
	src := a.screen.tex.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(display.HighWidth*a.cfg.Scale)/float64(w),
		float64(display.HighHeight*a.cfg.Scale)/float64(h),
	)
	target.DrawImage(src, op)
}

func (a *App) Layout(_, _ int) (int, int) {
	return display.HighWidth * a.cfg.Scale, display.HighHeight * a.cfg.Scale
}
