package apu

import "github.com/dgdev1024/gsca/internal/bit"

// ReadRegister returns the externally observable value of a sound register.
// Write-only and unused bits read back as 1, matching the documented
// read-masks for each register (NR13/23/33 and the length registers NR11's
// low bits are among the write-only fields); this only affects diagnostic
// reads, never internal state.
func (a *APU) ReadRegister(r Register) uint8 {
	switch r {
	case NR10:
		return a.pulse1.packSweep() | 0b1000_0000
	case NR11:
		return a.pulse1.packLengthDuty() | 0b0011_1111
	case NR12:
		return a.pulse1.packEnvelope()
	case NR13:
		return 0xFF
	case NR14:
		return a.pulse1.packControl() | 0b1011_1111

	case NR21:
		return a.pulse2.packLengthDuty() | 0b0011_1111
	case NR22:
		return a.pulse2.packEnvelope()
	case NR23:
		return 0xFF
	case NR24:
		return a.pulse2.packControl() | 0b1011_1111

	case NR30:
		return a.wave.packDAC() | 0b0111_1111
	case NR31:
		return 0xFF
	case NR32:
		return a.wave.outputLevel.pack() | 0b1001_1111
	case NR33:
		return 0xFF
	case NR34:
		return a.wave.packControl() | 0b1011_1111

	case NR41:
		return 0xFF
	case NR42:
		return a.noise.packEnvelope()
	case NR43:
		return a.noise.packFrequency()
	case NR44:
		return a.noise.packControl() | 0b1011_1111

	case NR50:
		return a.volume.pack()
	case NR51:
		return a.pan.pack()
	case NR52:
		mc := masterControlRegister{
			pulse1On:     a.pulse1.dacEnable,
			pulse2On:     a.pulse2.dacEnable,
			waveOn:       a.wave.dacEnable,
			noiseOn:      a.noise.dacEnable,
			masterEnable: a.masterEnable,
		}
		return mc.pack() | 0b0111_0000
	}

	if r >= WaveRAMStart && r <= WaveRAMEnd {
		return (a.waveRAM[(r-WaveRAMStart)*2] << 4) | a.waveRAM[(r-WaveRAMStart)*2+1]
	}

	return 0xFF
}

// WriteRegister stores a value into a sound register and applies the side
// effects documented for that register (trigger, DAC-disable, period
// reload, noise clock recomputation, NR52 master-enable semantics).
//
// While the master enable bit of NR52 is clear, writes to every register
// other than NR52 itself are ignored.
func (a *APU) WriteRegister(r Register, value uint8) {
	if !a.masterEnable && r != NR52 {
		return
	}

	switch r {
	case NR10:
		s := unpackSweep(value)
		a.pulse1.sweepStep = s.step
		a.pulse1.sweepDecrease = s.decrease
		a.pulse1.sweepPace = s.pace

	case NR11:
		l := unpackLengthDuty(value)
		a.pulse1.duty = l.duty
		a.pulse1.lengthTimer = l.initialLength
	case NR12:
		a.writePulseEnvelope(&a.pulse1, value)
	case NR13:
		a.pulse1.period = bit.Combine(bit.High(a.pulse1.period), value) & 0x7FF
	case NR14:
		a.writePulseControl(&a.pulse1, value, true)

	case NR21:
		l := unpackLengthDuty(value)
		a.pulse2.duty = l.duty
		a.pulse2.lengthTimer = l.initialLength
	case NR22:
		a.writePulseEnvelope(&a.pulse2, value)
	case NR23:
		a.pulse2.period = bit.Combine(bit.High(a.pulse2.period), value) & 0x7FF
	case NR24:
		a.writePulseControl(&a.pulse2, value, false)

	case NR30:
		enable := bit.IsSet(7, value)
		a.wave.dacEnable = enable
	case NR31:
		a.wave.lengthTimer = value
	case NR32:
		a.wave.outputLevel = unpackWaveOutput(value)
	case NR33:
		a.wave.period = bit.Combine(bit.High(a.wave.period), value) & 0x7FF
	case NR34:
		c := unpackControl(value)
		a.wave.period = bit.Combine(c.periodHigh, bit.Low(a.wave.period)) & 0x7FF
		a.wave.lengthEnable = c.lengthEnable
		if c.trigger {
			a.wave.trigger()
		}

	case NR41:
		a.noise.lengthTimer = bit.ExtractBits(value, 5, 0)
	case NR42:
		a.writeNoiseEnvelope(value)
	case NR43:
		nf := unpackNoiseFrequency(value)
		a.noise.divider = nf.divider
		a.noise.short = nf.short
		a.noise.shift = nf.shift
		a.noise.recomputeClock(MasterClockHz)
	case NR44:
		c := unpackControl(value)
		a.noise.lengthEnable = c.lengthEnable
		if c.trigger {
			a.noise.trigger()
		}

	case NR50:
		a.volume = unpackMasterVolume(value)
	case NR51:
		a.pan = unpackPan(value)
	case NR52:
		a.writeMasterControl(value)

	default:
		if r >= WaveRAMStart && r <= WaveRAMEnd {
			i := (r - WaveRAMStart) * 2
			a.waveRAM[i] = bit.ExtractBits(value, 7, 4)
			a.waveRAM[i+1] = bit.ExtractBits(value, 3, 0)
		}
	}
}

func (a *APU) writePulseEnvelope(p *pulseChannel, value uint8) {
	e := unpackEnvelope(value)
	p.envelopePace = e.pace
	p.envelopeIncrease = e.increase
	p.initialVolume = e.initialVolume

	if !e.increase && e.initialVolume == 0 {
		p.dacEnable = false
	} else {
		p.dacEnable = true
	}
}

func (a *APU) writeNoiseEnvelope(value uint8) {
	e := unpackEnvelope(value)
	a.noise.envelopePace = e.pace
	a.noise.envelopeIncrease = e.increase
	a.noise.initialVolume = e.initialVolume

	if !e.increase && e.initialVolume == 0 {
		a.noise.dacEnable = false
	} else {
		a.noise.dacEnable = true
	}
}

func (a *APU) writePulseControl(p *pulseChannel, value uint8, hasSweep bool) {
	c := unpackControl(value)
	p.period = bit.Combine(c.periodHigh, bit.Low(p.period)) & 0x7FF
	p.lengthEnable = c.lengthEnable
	if c.trigger {
		p.trigger(hasSweep)
	}
}

// writeMasterControl implements NR52's semantics: only bit 7 is writable.
// Clearing it zeroes every other audio register; raising it re-enables
// normal operation without altering channel state.
func (a *APU) writeMasterControl(value uint8) {
	mc := unpackMasterControl(value)
	if !mc.masterEnable {
		a.pulse1 = pulseChannel{}
		a.pulse2 = pulseChannel{}
		a.wave = waveChannel{}
		a.noise = noiseChannel{}
		a.pan = panRegister{}
		a.volume = masterVolumeRegister{}
		a.masterEnable = false
		return
	}
	a.masterEnable = true
}

// Small per-channel packers used only by ReadRegister, kept next to the
// register unions above rather than duplicated per channel type.

func (p *pulseChannel) packSweep() uint8 {
	return sweepRegister{step: p.sweepStep, decrease: p.sweepDecrease, pace: p.sweepPace}.pack()
}

func (p *pulseChannel) packLengthDuty() uint8 {
	return lengthDutyRegister{initialLength: p.lengthTimer, duty: p.duty}.pack()
}

func (p *pulseChannel) packEnvelope() uint8 {
	return envelopeRegister{pace: p.envelopePace, increase: p.envelopeIncrease, initialVolume: p.initialVolume}.pack()
}

func (p *pulseChannel) packControl() uint8 {
	return controlRegister{periodHigh: bit.High(p.period) & 0x7, lengthEnable: p.lengthEnable}.pack()
}

func (w *waveChannel) packDAC() uint8 {
	if w.dacEnable {
		return 0b1000_0000
	}
	return 0
}

func (w *waveChannel) packControl() uint8 {
	return controlRegister{periodHigh: bit.High(w.period) & 0x7, lengthEnable: w.lengthEnable}.pack()
}

func (n *noiseChannel) packEnvelope() uint8 {
	return envelopeRegister{pace: n.envelopePace, increase: n.envelopeIncrease, initialVolume: n.initialVolume}.pack()
}

func (n *noiseChannel) packFrequency() uint8 {
	return noiseFrequencyRegister{divider: n.divider, short: n.short, shift: n.shift}.pack()
}

func (n *noiseChannel) packControl() uint8 {
	return controlRegister{lengthEnable: n.lengthEnable}.pack()
}
