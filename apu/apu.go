// Package apu implements a faithful software model of the Game Boy Color
// Audio Processing Unit: four hardware-style channels, the shared frame
// sequencer, DAC mixing and a stereo DC-blocking high-pass filter. The APU
// is driven one master-clock tick at a time; it performs no I/O and never
// blocks.
package apu

import (
	"fmt"
	"strconv"
)

// MasterClockHz is the emulated Game Boy master clock frequency in Hz.
const MasterClockHz = 4_194_304

// hpfAlpha is the single-pole high-pass filter coefficient used to remove
// DC offset from the mixed output, matching the reference hardware model.
const hpfAlpha = 0.999958

// APU is the Audio Processing Unit. It owns all four channel generators,
// the shared wave RAM, the frame sequencer divider and the DC blocker
// state. Nothing here schedules work or blocks; every tick is synchronous.
type APU struct {
	pulse1, pulse2 pulseChannel
	wave           waveChannel
	noise          noiseChannel
	waveRAM        [32]uint8

	masterEnable bool
	pan          panRegister
	volume       masterVolumeRegister

	ticks        uint64
	divider      uint16
	prevBit12    bool

	sampleRate      int
	ticksPerSample  uint64
	sampleTickCount uint64

	prevInputL, prevOutputL   float32
	prevInputR, prevOutputR   float32
	currentLeft, currentRight float32
}

// New creates an APU configured for the given host sample rate (e.g.
// 44100) and resets it to the documented power-on state.
func New(sampleRate int) *APU {
	a := &APU{sampleRate: sampleRate}
	a.ticksPerSample = uint64(MasterClockHz) / uint64(sampleRate)
	if a.ticksPerSample == 0 {
		a.ticksPerSample = 1
	}
	a.Reset()
	return a
}

// Reset zeros all channel state and reinitialises every register to the
// documented power-on values for a Game Boy Color.
func (a *APU) Reset() {
	a.pulse1 = pulseChannel{}
	a.pulse2 = pulseChannel{}
	a.wave = waveChannel{}
	a.noise = noiseChannel{}
	a.waveRAM = [32]uint8{}

	a.ticks = 0
	a.divider = 0
	a.prevBit12 = false
	a.sampleTickCount = 0
	a.prevInputL, a.prevOutputL = 0, 0
	a.prevInputR, a.prevOutputR = 0, 0
	a.currentLeft, a.currentRight = 0, 0

	a.WriteRegister(NR52, 0xF1)
	a.WriteRegister(NR51, 0xF3)
	a.WriteRegister(NR50, 0x77)
	a.WriteRegister(NR10, 0x80)
	a.WriteRegister(NR11, 0xBF)
	a.WriteRegister(NR12, 0xF3)
	a.WriteRegister(NR13, 0xFF)
	a.WriteRegister(NR14, 0xBF)
	a.WriteRegister(NR21, 0x3F)
	a.WriteRegister(NR22, 0x00)
	a.WriteRegister(NR23, 0xFF)
	a.WriteRegister(NR24, 0xBF)
	a.WriteRegister(NR30, 0x7F)
	a.WriteRegister(NR31, 0xFF)
	a.WriteRegister(NR32, 0x9F)
	a.WriteRegister(NR33, 0xFF)
	a.WriteRegister(NR34, 0xBF)
	a.WriteRegister(NR41, 0xFF)
	a.WriteRegister(NR42, 0x00)
	a.WriteRegister(NR43, 0x00)
	a.WriteRegister(NR44, 0xBF)
}

// Tick advances the APU by one master-clock cycle. It returns true exactly
// on the ticks where a new stereo sample was produced and is available via
// CurrentSample.
func (a *APU) Tick() bool {
	a.ticks++

	bit12 := (a.ticks & (1 << 12)) != 0
	if a.prevBit12 && !bit12 {
		a.divider++
		a.tickSequencer()
	}
	a.prevBit12 = bit12

	if a.ticks%2 == 0 {
		a.wave.tick(&a.waveRAM)
	}
	if a.ticks%4 == 0 {
		a.pulse1.tick()
		a.pulse2.tick()
	}
	a.noise.tick()

	a.sampleTickCount += uint64(a.sampleRate)
	if a.sampleTickCount < MasterClockHz {
		return false
	}
	a.sampleTickCount -= MasterClockHz
	a.mixSample()
	return true
}

// tickSequencer runs the DIV-APU frame-sequencer steps gated on the current
// divider value.
func (a *APU) tickSequencer() {
	if a.divider%2 == 0 {
		a.tickLengthTimers()
	}
	if a.divider%4 == 0 {
		a.tickFrequencySweep()
	}
	if a.divider%8 == 0 {
		a.tickEnvelopeSweeps()
	}
}

func (a *APU) tickLengthTimers() {
	if a.pulse1.tickLength() {
		a.disableChannel(0)
	}
	if a.pulse2.tickLength() {
		a.disableChannel(1)
	}
	if a.wave.tickLength() {
		a.disableChannel(2)
	}
	if a.noise.tickLength() {
		a.disableChannel(3)
	}
}

func (a *APU) tickFrequencySweep() {
	if !a.pulse1.sweepEnabled {
		return
	}
	if a.pulse1.tickSweep() {
		a.disableChannel(0)
	}
}

func (a *APU) tickEnvelopeSweeps() {
	a.pulse1.tickEnvelope()
	a.pulse2.tickEnvelope()
	a.noise.tickEnvelope()
}

// channelEnabled reports whether NR52's bit for the given hardware channel
// index (0=pulse1 .. 3=noise) is currently set. dacEnable already folds in
// both DAC-disable writes and length-timer termination (disableChannel
// clears it on overflow), so it is the single source of truth for the bit.
func (a *APU) channelEnabled(idx int) bool {
	switch idx {
	case 0:
		return a.pulse1.dacEnable
	case 1:
		return a.pulse2.dacEnable
	case 2:
		return a.wave.dacEnable
	case 3:
		return a.noise.dacEnable
	}
	return false
}

func (a *APU) disableChannel(idx int) {
	switch idx {
	case 0:
		a.pulse1.dacEnable = false
	case 1:
		a.pulse2.dacEnable = false
	case 2:
		a.wave.dacEnable = false
	case 3:
		a.noise.dacEnable = false
	}
}

// mixSample sums the DAC outputs of every channel routed to each side by
// NR51, applies the NR50 per-side gain, then runs the DC-blocking
// high-pass filter and headroom scale documented in the component design.
func (a *APU) mixSample() {
	channels := [4]struct {
		output  float32
		enabled bool
	}{
		{a.pulse1.dacOutput, a.pulse1.dacEnable},
		{a.pulse2.dacOutput, a.pulse2.dacEnable},
		{a.wave.dacOutput, a.wave.dacEnable},
		{a.noise.dacOutput, a.noise.dacEnable},
	}

	var left, right float32
	for i, c := range channels {
		if !c.enabled {
			continue
		}
		if a.pan.left[i] {
			left += c.output
		}
		if a.pan.right[i] {
			right += c.output
		}
	}

	left *= masterGain(a.volume.leftLevel)
	right *= masterGain(a.volume.rightLevel)

	outL := left - a.prevInputL + hpfAlpha*a.prevOutputL
	a.prevInputL = left
	a.prevOutputL = outL

	outR := right - a.prevInputR + hpfAlpha*a.prevOutputR
	a.prevInputR = right
	a.prevOutputR = outR

	a.currentLeft = outL / 4.0
	a.currentRight = outR / 4.0
}

// CurrentSample returns the most recently produced stereo sample.
func (a *APU) CurrentSample() (left, right float32) {
	return a.currentLeft, a.currentRight
}

// SetWavePattern loads a 32-character hex string into wave RAM, one nibble
// per wave sample.
func (a *APU) SetWavePattern(hex string) error {
	if len(hex) != 32 {
		return fmt.Errorf("apu: wave pattern must be 32 hex characters, got %d", len(hex))
	}
	var pattern [32]uint8
	for i := 0; i < 32; i++ {
		v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
		if err != nil {
			return fmt.Errorf("apu: wave pattern contains non-hex character %q: %w", hex[i:i+1], err)
		}
		pattern[i] = uint8(v)
	}
	a.waveRAM = pattern
	return nil
}
