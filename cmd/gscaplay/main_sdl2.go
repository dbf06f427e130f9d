//go:build sdl2

// Command gscaplay is a small SDL2-backed demo host: it loads a .gsca score
// file, starts one named entry playing, and pumps the engine/APU pair into
// a real audio device so the result can actually be heard. Host audio
// output sits outside the library's scope; this binary is the optional
// demo that exercises it, the same way the teacher repo's own SDL2 backend
// is gated behind this build tag and kept out of the default build.
package main

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/urfave/cli"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dgdev1024/gsca/apu"
	"github.com/dgdev1024/gsca/engine"
	"github.com/dgdev1024/gsca/internal/ilog"
	"github.com/dgdev1024/gsca/store"
)

// masterClockTicksPerFrame is the real Game Boy's cycle count per video
// frame (70224 cycles at a 4,194,304 Hz master clock), which is what the
// engine's per-frame Update is paced against at roughly 59.7 Hz.
const masterClockTicksPerFrame = 70224

// targetQueuedBytes caps how far ahead of the audio device the mixing loop
// gets, matching the teacher's own ~2048-stereo-sample buffering target in
// jeebie/backend/sdl2/sdl2.go's queueAudioSamples.
const targetQueuedBytes = 2048 * 4

func main() {
	app := cli.NewApp()
	app.Name = "gscaplay"
	app.Description = "Plays a score entry from a .gsca file through a real audio device"
	app.Usage = "gscaplay [options] <score.gsca> <entry name>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "sample-rate", Value: 44100, Usage: "Output sample rate in Hz"},
		cli.BoolFlag{Name: "verbose", Usage: "Enable debug-level logging"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := ilog.Setup(c.Bool("verbose"))

	if c.NArg() < 2 {
		cli.ShowAppHelp(c)
		return nil
	}
	scorePath := c.Args().Get(0)
	entryName := c.Args().Get(1)
	sampleRate := c.Int("sample-rate")

	store.SetLogger(logger)

	s := store.NewStore(0)
	if err := s.ReadAudioFile(scorePath); err != nil {
		return fmt.Errorf("gscaplay: loading %q: %w", scorePath, err)
	}

	a := apu.New(sampleRate)
	e := engine.NewEngine(a, s)
	if err := e.PlayMusic(entryName); err != nil {
		return fmt.Errorf("gscaplay: playing %q: %w", entryName, err)
	}

	if err := sdl.Init(sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("gscaplay: initializing SDL2: %w", err)
	}
	defer sdl.Quit()

	spec := &sdl.AudioSpec{Freq: int32(sampleRate), Format: sdl.AUDIO_S16LSB, Channels: 2, Samples: 512}
	obtained := &sdl.AudioSpec{}
	device, err := sdl.OpenAudioDevice("", false, spec, obtained, 0)
	if err != nil {
		return fmt.Errorf("gscaplay: opening audio device: %w", err)
	}
	defer sdl.CloseAudioDevice(device)
	sdl.PauseAudioDevice(device, false)

	logger.Info("playing score", "file", scorePath, "entry", entryName, "sample_rate", obtained.Freq)

	ticksPerSample := masterClockTicksPerFrame * int(obtained.Freq) / apu.MasterClockHz
	if ticksPerSample == 0 {
		ticksPerSample = 1
	}

	for {
		queued := sdl.GetQueuedAudioSize(device)
		if queued >= targetQueuedBytes {
			sdl.Delay(5)
			continue
		}

		e.Update()
		samples := mixFrame(a)
		if len(samples) == 0 {
			continue
		}

		buf := (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[: len(samples)*2 : len(samples)*2]
		if err := sdl.QueueAudio(device, buf); err != nil {
			logger.Error("queueing audio failed", "error", err)
		}
	}
}

// mixFrame ticks the APU through one engine frame's worth of master clock
// cycles and collects the resulting interleaved stereo samples as signed
// 16-bit PCM, matching the teacher's own float-to-int16 conversion in
// jeebie/backend/sdl2/sdl2.go's queueAudioSamples (there mono duplicated to
// stereo; here the APU already produces a stereo pair per tick).
func mixFrame(a *apu.APU) []int16 {
	var out []int16
	for i := 0; i < masterClockTicksPerFrame; i++ {
		if !a.Tick() {
			continue
		}
		left, right := a.CurrentSample()
		out = append(out, floatToPCM(left), floatToPCM(right))
	}
	return out
}

func floatToPCM(sample float32) int16 {
	if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}
	return int16(sample * 32767)
}
