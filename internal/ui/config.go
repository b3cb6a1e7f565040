package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title      string  // window title
	Scale      int     // integer upscaling factor per high-res pixel
	SampleRate int     // beeper sample rate in Hz
	ToneHz     float64 // beeper square wave frequency
	Volume     float64 // beeper volume, 0..1
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 8
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 44100
	}
	if c.ToneHz <= 0 {
		c.ToneHz = 440
	}
	if c.Volume <= 0 || c.Volume > 1 {
		c.Volume = 0.25
	}
}
