package emu

import "github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"

// FrameRate is the fixed timer/present rate in Hz.
const FrameRate = 60

// Config contains settings that affect emulation behavior.
type Config struct {
	Mode    chip8.Mode // interpreter variant, fixed for the run
	CycleHz int        // instruction cycles per second
	Trace   bool       // log each executed instruction
	Seed    int64      // RND seed; 0 keeps the time-based default
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.CycleHz <= 0 {
		c.CycleHz = 540 // a few hundred Hz, divisible by the frame rate
	}
}
