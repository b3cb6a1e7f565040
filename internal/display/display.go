// Package display implements the 1-bit framebuffer shared by all interpreter
// modes: XOR pixel writes with collision reporting, row/column scrolling,
// the low/high resolution switch and batched presentation to a render sink.
package display

// Framebuffer dimensions per resolution.
const (
	LowWidth   = 64
	LowHeight  = 32
	HighWidth  = 128
	HighHeight = 64
)

// Sink receives per-pixel updates and batched present requests. The windowed
// frontend implements it over ebiten; NopSink serves headless runs and tests.
type Sink interface {
	SetPixel(x, y int, on bool)
	Clear()
	Present()
}

// NopSink discards all output.
type NopSink struct{}

func (NopSink) SetPixel(int, int, bool) {}
func (NopSink) Clear()                  {}
func (NopSink) Present()                {}

// Framebuffer holds the pixel grid. One byte per pixel (0 or 1), row-major.
// Mutating calls mark the surface dirty; Render forwards a present request to
// the sink only while dirty, so a multi-pixel sprite draw presents once.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
	dirty  bool
	sink   Sink
}

// New returns a low-resolution framebuffer attached to the given sink.
func New(sink Sink) *Framebuffer {
	if sink == nil {
		sink = NopSink{}
	}
	return &Framebuffer{
		width:  LowWidth,
		height: LowHeight,
		pix:    make([]byte, LowWidth*LowHeight),
		sink:   sink,
	}
}

// Size returns the current grid dimensions.
func (f *Framebuffer) Size() (w, h int) { return f.width, f.height }

// HighRes reports whether the 128x64 grid is active.
func (f *Framebuffer) HighRes() bool { return f.width == HighWidth }

// Pixel reports whether the pixel at (x, y) is set. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pix[(y%f.height)*f.width+(x%f.width)] != 0
}

// Pixels exposes the raw grid, row-major, one byte per pixel. Callers must
// treat it as read-only; it is reallocated on a resolution switch.
func (f *Framebuffer) Pixels() []byte { return f.pix }

// SetPixel XORs bit into the pixel at (x mod width, y mod height), forwards
// the updated value to the sink and reports whether the pixel already held
// that same bit value before the XOR. The interpreter folds this into the
// collision flag for set sprite bits.
func (f *Framebuffer) SetPixel(x, y int, bit byte) bool {
	x %= f.width
	y %= f.height
	i := y*f.width + x

	prev := f.pix[i]
	f.pix[i] ^= bit & 1
	f.dirty = true
	f.sink.SetPixel(x, y, f.pix[i] != 0)

	return prev == bit&1
}

// Clear zeros the grid.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = 0
	}
	f.dirty = true
	f.sink.Clear()
}

// ScrollDown shifts every row down by rows, zero-filling the vacated rows at
// the top. Content shifted past the bottom edge is lost.
func (f *Framebuffer) ScrollDown(rows int) {
	if rows <= 0 {
		return
	}
	for y := f.height - 1; y >= 0; y-- {
		src := y - rows
		for x := 0; x < f.width; x++ {
			if src >= 0 {
				f.pix[y*f.width+x] = f.pix[src*f.width+x]
			} else {
				f.pix[y*f.width+x] = 0
			}
		}
	}
	f.flush()
}

// ScrollUp shifts every row up by rows, zero-filling the vacated rows at the
// bottom.
func (f *Framebuffer) ScrollUp(rows int) {
	if rows <= 0 {
		return
	}
	for y := 0; y < f.height; y++ {
		src := y + rows
		for x := 0; x < f.width; x++ {
			if src < f.height {
				f.pix[y*f.width+x] = f.pix[src*f.width+x]
			} else {
				f.pix[y*f.width+x] = 0
			}
		}
	}
	f.flush()
}

// ScrollLeft shifts every column left by 4, zero-filling on the right.
func (f *Framebuffer) ScrollLeft() {
	for y := 0; y < f.height; y++ {
		row := f.pix[y*f.width : (y+1)*f.width]
		copy(row, row[4:])
		for x := f.width - 4; x < f.width; x++ {
			row[x] = 0
		}
	}
	f.flush()
}

// ScrollRight shifts every column right by 4, zero-filling on the left.
func (f *Framebuffer) ScrollRight() {
	for y := 0; y < f.height; y++ {
		row := f.pix[y*f.width : (y+1)*f.width]
		copy(row[4:], row[:f.width-4])
		for x := 0; x < 4; x++ {
			row[x] = 0
		}
	}
	f.flush()
}

// SetHighRes switches between the 64x32 and 128x64 grids. The old grid is
// discarded; the sink is cleared along with it.
func (f *Framebuffer) SetHighRes(on bool) {
	w, h := LowWidth, LowHeight
	if on {
		w, h = HighWidth, HighHeight
	}
	f.width, f.height = w, h
	f.pix = make([]byte, w*h)
	f.dirty = true
	f.sink.Clear()
}

// Render forwards a present request to the sink if anything changed since the
// last call, then clears the dirty flag.
func (f *Framebuffer) Render() {
	if f.dirty {
		f.sink.Present()
	}
	f.dirty = false
}

// flush re-forwards the whole grid to the sink after a bulk mutation.
func (f *Framebuffer) flush() {
	f.dirty = true
	f.sink.Clear()
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.pix[y*f.width+x] != 0 {
				f.sink.SetPixel(x, y, true)
			}
		}
	}
}
