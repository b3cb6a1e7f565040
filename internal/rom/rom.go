// Package rom builds the fixed-size memory image the VM executes: the
// built-in glyph font at address 0 and the program bytes at 0x200. Loader
// failures are reported to the caller; no VM is constructed from a bad image.
package rom

import (
	"errors"
	"fmt"
	"os"
)

const (
	// ImageSize is the size of the produced memory image.
	ImageSize = 4096
	// ProgramStart is the offset program bytes are copied to.
	ProgramStart = 0x200
	// MaxProgramSize is the room left for program bytes.
	MaxProgramSize = ImageSize - ProgramStart
)

// ErrTooLarge is returned for programs that do not fit above 0x200.
var ErrTooLarge = errors.New("program too large")

// fontset holds the 16 built-in 5-byte digit glyphs, 0 through F.
var fontset = [80]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Image builds a complete memory image from raw program bytes.
func Image(program []byte) ([]byte, error) {
	if len(program) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrTooLarge, len(program), MaxProgramSize)
	}
	image := make([]byte, ImageSize)
	copy(image, fontset[:])
	copy(image[ProgramStart:], program)
	return image, nil
}

// Load reads a program file and builds its memory image.
func Load(path string) ([]byte, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	return Image(program)
}
