package apu

import "github.com/dgdev1024/gsca/internal/bit"

// Register identifies one of the APU's memory-mapped sound registers, using
// the same addresses a DMG/CGB exposes on the bus. The APU itself is
// address-agnostic (a host maps these onto its own memory bus); the values
// only need to be stable and distinct.
type Register uint16

const (
	NR10 Register = 0xFF10 // Channel 1 sweep
	NR11 Register = 0xFF11 // Channel 1 length timer & duty cycle
	NR12 Register = 0xFF12 // Channel 1 volume & envelope
	NR13 Register = 0xFF13 // Channel 1 period low
	NR14 Register = 0xFF14 // Channel 1 period high & control

	NR21 Register = 0xFF16 // Channel 2 length timer & duty cycle
	NR22 Register = 0xFF17 // Channel 2 volume & envelope
	NR23 Register = 0xFF18 // Channel 2 period low
	NR24 Register = 0xFF19 // Channel 2 period high & control

	NR30 Register = 0xFF1A // Channel 3 DAC enable
	NR31 Register = 0xFF1B // Channel 3 length timer
	NR32 Register = 0xFF1C // Channel 3 output level
	NR33 Register = 0xFF1D // Channel 3 period low
	NR34 Register = 0xFF1E // Channel 3 period high & control

	NR41 Register = 0xFF20 // Channel 4 length timer
	NR42 Register = 0xFF21 // Channel 4 volume & envelope
	NR43 Register = 0xFF22 // Channel 4 frequency & randomness
	NR44 Register = 0xFF23 // Channel 4 control

	NR50 Register = 0xFF24 // Master volume & VIN panning
	NR51 Register = 0xFF25 // Sound panning
	NR52 Register = 0xFF26 // Sound on/off and channel status
)

// WaveRAMStart and WaveRAMEnd bound the 16-byte (32-nibble) wave pattern RAM.
const (
	WaveRAMStart Register = 0xFF30
	WaveRAMEnd   Register = 0xFF3F
)

// sweepRegister is the NR10 bit layout: 3-bit step, direction, 3-bit pace.
type sweepRegister struct {
	step      uint8
	decrease  bool
	pace      uint8
}

func unpackSweep(v uint8) sweepRegister {
	return sweepRegister{
		step:     bit.ExtractBits(v, 2, 0),
		decrease: bit.IsSet(3, v),
		pace:     bit.ExtractBits(v, 6, 4),
	}
}

func (s sweepRegister) pack() uint8 {
	v := s.step & 0x7
	if s.decrease {
		v = bit.Set(3, v)
	}
	v |= (s.pace & 0x7) << 4
	return v
}

// lengthDutyRegister is the NR11/NR21 bit layout: 6-bit initial length,
// 2-bit duty selector. NR41 has no duty bits and does not use this type: its
// write keeps only the low 6 bits, and it always reads back as 0xFF.
type lengthDutyRegister struct {
	initialLength uint8
	duty          uint8
}

func unpackLengthDuty(v uint8) lengthDutyRegister {
	return lengthDutyRegister{
		initialLength: bit.ExtractBits(v, 5, 0),
		duty:          bit.ExtractBits(v, 7, 6),
	}
}

func (l lengthDutyRegister) pack() uint8 {
	return (l.initialLength & 0x3F) | ((l.duty & 0x3) << 6)
}

// envelopeRegister is the NR12/NR22/NR42 bit layout.
type envelopeRegister struct {
	pace          uint8
	increase      bool
	initialVolume uint8
}

func unpackEnvelope(v uint8) envelopeRegister {
	return envelopeRegister{
		pace:          bit.ExtractBits(v, 2, 0),
		increase:      bit.IsSet(3, v),
		initialVolume: bit.ExtractBits(v, 7, 4),
	}
}

func (e envelopeRegister) pack() uint8 {
	v := e.pace & 0x7
	if e.increase {
		v = bit.Set(3, v)
	}
	v |= (e.initialVolume & 0xF) << 4
	return v
}

// controlRegister is the NR14/NR24/NR34/NR44 bit layout: 3-bit period-high,
// length-enable (bit 6), trigger (bit 7, write-only).
type controlRegister struct {
	periodHigh   uint8
	lengthEnable bool
	trigger      bool
}

func unpackControl(v uint8) controlRegister {
	return controlRegister{
		periodHigh:   bit.ExtractBits(v, 2, 0),
		lengthEnable: bit.IsSet(6, v),
		trigger:      bit.IsSet(7, v),
	}
}

// pack renders the register, with trigger always reporting 0 per hardware
// (it self-clears immediately and is never observable on read).
func (c controlRegister) pack() uint8 {
	v := c.periodHigh & 0x7
	if c.lengthEnable {
		v = bit.Set(6, v)
	}
	return v
}

// waveOutputLevel is the NR32 bit layout: 2-bit level selector (bits 5-6).
type waveOutputLevel uint8

const (
	waveOutputMute    waveOutputLevel = 0
	waveOutputFull    waveOutputLevel = 1
	waveOutputHalf    waveOutputLevel = 2
	waveOutputQuarter waveOutputLevel = 3
)

func unpackWaveOutput(v uint8) waveOutputLevel {
	return waveOutputLevel(bit.ExtractBits(v, 6, 5))
}

func (l waveOutputLevel) pack() uint8 {
	return uint8(l&0x3) << 5
}

// noiseFrequencyRegister is the NR43 bit layout.
type noiseFrequencyRegister struct {
	divider  uint8
	short    bool // true = 7-bit LFSR width
	shift    uint8
}

func unpackNoiseFrequency(v uint8) noiseFrequencyRegister {
	return noiseFrequencyRegister{
		divider: bit.ExtractBits(v, 2, 0),
		short:   bit.IsSet(3, v),
		shift:   bit.ExtractBits(v, 7, 4),
	}
}

func (n noiseFrequencyRegister) pack() uint8 {
	v := n.divider & 0x7
	if n.short {
		v = bit.Set(3, v)
	}
	v |= (n.shift & 0xF) << 4
	return v
}

// panRegister is the NR51 layout: four right bits then four left bits.
type panRegister struct {
	right [4]bool
	left  [4]bool
}

func unpackPan(v uint8) panRegister {
	var p panRegister
	for ch := 0; ch < 4; ch++ {
		p.right[ch] = bit.IsSet(uint8(ch), v)
		p.left[ch] = bit.IsSet(uint8(ch+4), v)
	}
	return p
}

func (p panRegister) pack() uint8 {
	var v uint8
	for ch := 0; ch < 4; ch++ {
		if p.right[ch] {
			v = bit.Set(uint8(ch), v)
		}
		if p.left[ch] {
			v = bit.Set(uint8(ch+4), v)
		}
	}
	return v
}

// masterVolumeRegister is the NR50 layout: 3-bit right level, external-right
// flag, 3-bit left level, external-left flag.
type masterVolumeRegister struct {
	rightLevel    uint8
	rightVinPanIn bool
	leftLevel     uint8
	leftVinPanIn  bool
}

func unpackMasterVolume(v uint8) masterVolumeRegister {
	return masterVolumeRegister{
		rightLevel:    bit.ExtractBits(v, 2, 0),
		rightVinPanIn: bit.IsSet(3, v),
		leftLevel:     bit.ExtractBits(v, 6, 4),
		leftVinPanIn:  bit.IsSet(7, v),
	}
}

func (m masterVolumeRegister) pack() uint8 {
	v := m.rightLevel & 0x7
	if m.rightVinPanIn {
		v = bit.Set(3, v)
	}
	v |= (m.leftLevel & 0x7) << 4
	if m.leftVinPanIn {
		v = bit.Set(7, v)
	}
	return v
}

// masterGain returns the per-side gain fraction, (levelBits+1)/8, for a 3-bit
// master volume level.
func masterGain(level uint8) float32 {
	return float32(level+1) / 8.0
}

// masterControlRegister is the NR52 layout: four read-only channel-enable
// bits and the writable master-enable bit.
type masterControlRegister struct {
	pulse1On, pulse2On, waveOn, noiseOn bool
	masterEnable                       bool
}

func unpackMasterControl(v uint8) masterControlRegister {
	return masterControlRegister{
		pulse1On:      bit.IsSet(0, v),
		pulse2On:      bit.IsSet(1, v),
		waveOn:        bit.IsSet(2, v),
		noiseOn:       bit.IsSet(3, v),
		masterEnable:  bit.IsSet(7, v),
	}
}

func (m masterControlRegister) pack() uint8 {
	var v uint8
	if m.pulse1On {
		v = bit.Set(0, v)
	}
	if m.pulse2On {
		v = bit.Set(1, v)
	}
	if m.waveOn {
		v = bit.Set(2, v)
	}
	if m.noiseOn {
		v = bit.Set(3, v)
	}
	if m.masterEnable {
		v = bit.Set(7, v)
	}
	return v
}
