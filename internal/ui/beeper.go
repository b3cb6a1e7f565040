package ui

import (
	"encoding/binary"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
)

var _ chip8.Audio = (*Beeper)(nil)

// Beeper is the audio sink: an endless square wave behind a player that the
// sound timer edges resume and pause.
type Beeper struct {
	player *audio.Player
}

// NewBeeper opens the audio context (reusing one if it already exists) and
// prepares a paused square wave player.
func NewBeeper(cfg Config) (*Beeper, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(cfg.SampleRate)
	}
	p, err := ctx.NewPlayer(&squareWave{
		freq:       cfg.ToneHz,
		volume:     cfg.Volume,
		sampleRate: cfg.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	// small buffer keeps the tone edges close to the timer edges
	p.SetBufferSize(40 * time.Millisecond)
	return &Beeper{player: p}, nil
}

// Start resumes the tone. Called on the rising edge of the sound timer.
func (b *Beeper) Start() {
	if !b.player.IsPlaying() {
		b.player.Play()
	}
}

// Stop pauses the tone. Called on the falling edge of the sound timer.
func (b *Beeper) Stop() {
	b.player.Pause()
}

// squareWave implements io.Reader producing an endless 16-bit LE stereo
// square wave.
type squareWave struct {
	freq       float64
	volume     float64
	sampleRate int
	phase      float64
}

func (s *squareWave) Read(p []byte) (int, error) {
	if len(p) < 4 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		v := int16(s.volume * 32767)
		if s.phase >= 0.5 {
			v = -v
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
		s.phase += s.freq / float64(s.sampleRate)
		if s.phase >= 1 {
			s.phase--
		}
	}
	return n, nil
}
