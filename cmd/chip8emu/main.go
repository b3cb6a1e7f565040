package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/chip8"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/rom"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/ui"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
)

type CLIFlags struct {
	ROMPath string
	Mode    string
	Speed   int
	Scale   int
	Title   string
	Trace   bool
	Debug   bool
	Quiet   bool
	Seed    int64

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.ch8)")
	flag.StringVar(&f.Mode, "mode", "chip8", "interpreter mode: chip8, schip, xochip")
	flag.IntVar(&f.Speed, "speed", 0, "instruction cycles per second, rounded to whole cycles per frame (0 uses the default)")
	flag.IntVar(&f.Scale, "scale", 8, "window scale")
	flag.StringVar(&f.Title, "title", "chip8emu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "instruction trace log")
	flag.BoolVar(&f.Debug, "debug", false, "debug log level")
	flag.BoolVar(&f.Quiet, "quiet", false, "errors only")
	flag.Int64Var(&f.Seed, "seed", 0, "RND seed for reproducible runs (0 uses a time-based seed)")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func runHeadless(ctx context.Context, m *emu.Machine, frames int, pngPath, expectCRC string, logger *log.Logger) error {
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	ran := 0
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if err := m.StepFrame(); err != nil {
			if errors.Is(err, chip8.ErrExited) {
				break
			}
			return err
		}
		ran++
	}
	dur := time.Since(start)

	fb := m.Framebuffer()
	crc := crc32.ChecksumIEEE(fb.Pixels())
	fps := float64(ran) / dur.Seconds()

	logger.Info("headless run finished",
		log.String("frames", fmt.Sprintf("%d", ran)),
		log.String("elapsed", dur.Truncate(time.Millisecond).String()),
		log.String("fps", fmt.Sprintf("%.2f", fps)),
		log.String("fb_crc32", fmt.Sprintf("%08x", crc)),
	)

	if pngPath != "" {
		if err := saveFramePNG(fb, pngPath); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		logger.Info("wrote framebuffer", log.String("path", pngPath))
	}

	if expectCRC != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(expectCRC), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(fb *display.Framebuffer, path string) error {
	w, h := fb.Size()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb.Pixel(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func pickROM() (string, error) {
	return dialog.File().Filter("CHIP-8 ROMs", "ch8").Title("Open ROM").Load()
}

func main() {
	ctx := app.Context()
	f := parseFlags()
	logger := createLogger(f.Debug || f.Trace, f.Quiet)

	mode, err := chip8.ParseMode(f.Mode)
	if err != nil {
		logger.Fatal("invalid mode", log.Err(err))
	}

	romPath := f.ROMPath
	if romPath == "" {
		if f.Headless {
			logger.Fatal("headless mode needs -rom")
		}
		romPath, err = pickROM()
		if err != nil {
			logger.Fatal("no ROM selected", log.Err(err))
		}
	}

	img, err := rom.Load(romPath)
	if err != nil {
		logger.Fatal("loading ROM failed", log.Err(err))
	}
	logger.Info("loaded ROM",
		log.String("path", romPath),
		log.String("mode", mode.String()),
	)

	emuCfg := emu.Config{
		Mode:    mode,
		CycleHz: f.Speed,
		Trace:   f.Trace,
		Seed:    f.Seed,
	}

	if f.Headless {
		m, err := emu.New(emuCfg, img, nil, nil, nil, logger)
		if err != nil {
			logger.Fatal("machine setup failed", log.Err(err))
		}
		if err := runHeadless(ctx, m, f.Frames, f.PNGOut, f.Expect, logger); err != nil {
			reportError(logger, err)
		}
		return
	}

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale}
	a, err := ui.NewApp(uiCfg, emuCfg, img, logger)
	if err != nil {
		logger.Fatal("app setup failed", log.Err(err))
	}
	if err := a.Run(); err != nil {
		reportError(logger, err)
	}
}

func reportError(logger *log.Logger, err error) {
	var opErr *chip8.OpcodeError
	if errors.As(err, &opErr) {
		logger.Fatal("emulation stopped",
			log.String("opcode", fmt.Sprintf("%04X", opErr.Opcode)),
			log.String("pc", fmt.Sprintf("%04X", opErr.PC)),
		)
	}
	logger.Fatal(err.Error())
}
