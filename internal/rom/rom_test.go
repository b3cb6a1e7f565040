package rom

import (
	"os"
	"path/filepath"
	"testing"
)

func TestImageLayout(t *testing.T) {
	program := []byte{0x12, 0x00, 0xAB}
	image, err := Image(program)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if len(image) != ImageSize {
		t.Fatalf("expected %d byte image, got %d", ImageSize, len(image))
	}

	// font glyphs at the bottom of memory
	if image[0] != 0xF0 || image[4] != 0xF0 {
		t.Fatalf("expected glyph 0 at address 0, got % X", image[:5])
	}
	if image[79] != 0x80 {
		t.Fatalf("expected last glyph byte 0x80, got %02X", image[79])
	}

	// program bytes at 0x200, zero fill elsewhere
	for i, b := range program {
		if image[ProgramStart+i] != b {
			t.Fatalf("expected program byte %02X at %04X, got %02X", b, ProgramStart+i, image[ProgramStart+i])
		}
	}
	if image[ProgramStart-1] != 0 || image[ProgramStart+len(program)] != 0 {
		t.Fatalf("expected zero fill around the program bytes")
	}
}

func TestImageRejectsOversizedProgram(t *testing.T) {
	if _, err := Image(make([]byte, MaxProgramSize)); err != nil {
		t.Fatalf("expected max-size program to fit: %v", err)
	}
	_, err := Image(make([]byte, MaxProgramSize+1))
	if err == nil {
		t.Fatalf("expected oversized program to be rejected")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(path, []byte{0x60, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}

	image, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if image[ProgramStart] != 0x60 || image[ProgramStart+1] != 0x01 {
		t.Fatalf("expected program bytes at %04X", ProgramStart)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ch8")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
