package ui

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

var _ display.Sink = (*Screen)(nil)

// Screen is the windowed render sink. It keeps an RGBA buffer sized for the
// high-resolution grid; pixel updates land in the buffer and Present uploads
// it to the texture the app draws from. Low-resolution frames simply use the
// top-left quadrant.
type Screen struct {
	pix []byte // RGBA, HighWidth x HighHeight
	tex *ebiten.Image
}

// NewScreen creates the render target.
func NewScreen() *Screen {
	s := &Screen{
		pix: make([]byte, display.HighWidth*display.HighHeight*4),
		tex: ebiten.NewImage(display.HighWidth, display.HighHeight),
	}
	s.Clear()
	return s
}

// SetPixel stores one monochrome pixel in the buffer.
func (s *Screen) SetPixel(x, y int, on bool) {
	i := (y*display.HighWidth + x) * 4
	v := byte(0)
	if on {
		v = 0xFF
	}
	s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3] = v, v, v, 0xFF
}

// Clear blanks the buffer.
func (s *Screen) Clear() {
	for i := 0; i < len(s.pix); i += 4 {
		s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3] = 0, 0, 0, 0xFF
	}
}

// Present uploads the buffer to the texture. Called once per dirty frame.
func (s *Screen) Present() {
	s.tex.WritePixels(s.pix)
}
