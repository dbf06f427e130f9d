package engine

import "github.com/dgdev1024/gsca/apu"

// hwChannelRegisters names the four sound registers touched by the engine
// for a given hardware channel (0=pulse1 .. 3=noise). Not every channel
// uses every field (wave has no envelope, noise has no duty/period).
type hwChannelRegisters struct {
	lengthDuty apu.Register
	envelope   apu.Register
	periodLow  apu.Register
	control    apu.Register
}

var hwRegisters = [4]hwChannelRegisters{
	{apu.NR11, apu.NR12, apu.NR13, apu.NR14},
	{apu.NR21, apu.NR22, apu.NR23, apu.NR24},
	{apu.NR31, apu.NR30, apu.NR33, apu.NR34}, // envelope slot reused for NR30 (DAC enable)
	{apu.NR41, apu.NR42, 0, apu.NR44},
}

func (e *Engine) writeDuty(hw int, duty uint8) {
	if hw != 0 && hw != 1 {
		return
	}
	r := hwRegisters[hw]
	current := e.a.ReadRegister(r.lengthDuty)
	e.a.WriteRegister(r.lengthDuty, (current&0x3F)|duty)
}

func (e *Engine) writeEnvelope(hw int, env uint8) {
	if hw == 2 {
		return
	}
	e.a.WriteRegister(hwRegisters[hw].envelope, env)
}

// writeFrequency updates a channel's period bytes without triggering a new
// note, used for per-frame vibrato/pitch-slide/pitch-offset modulation.
func (e *Engine) writeFrequency(hw int, freq uint16) {
	if hw == 3 {
		return
	}
	r := hwRegisters[hw]
	e.a.WriteRegister(r.periodLow, uint8(freq))
	current := e.a.ReadRegister(r.control)
	hi := uint8((freq >> 8) & 0x07)
	e.a.WriteRegister(r.control, hi|(current&0x40))
}

// writeFrequencyTriggered updates the period bytes and sets the trigger bit,
// starting a new note on the channel.
func (e *Engine) writeFrequencyTriggered(hw int, freq uint16) {
	if hw == 3 {
		return
	}
	if hw == 2 {
		e.a.WriteRegister(apu.NR30, 0x80)
	}
	r := hwRegisters[hw]
	e.a.WriteRegister(r.periodLow, uint8(freq))
	current := e.a.ReadRegister(r.control)
	hi := uint8((freq >> 8) & 0x07)
	e.a.WriteRegister(r.control, hi|(current&0x40)|0x80)
}

// writeNoiseNote triggers a drum hit on the hardware noise channel. The
// engine lets any of the four music tracks toggle "noise" mode to borrow
// the noise channel for percussion, but there is only one physical noise
// generator, so this always targets NR42-NR44 regardless of which virtual
// track produced the hit.
func (e *Engine) writeNoiseNote(t *track) {
	e.a.WriteRegister(apu.NR42, t.volumeEnvelope)
	e.a.WriteRegister(apu.NR43, uint8(t.frequency))
	e.a.WriteRegister(apu.NR44, 0x80)
}

// clearChannel silences the hardware channel's DAC, the mechanism the real
// register model uses to drop it out of NR52's status bits.
func (e *Engine) clearChannel(hw int) {
	switch hw {
	case 0:
		e.a.WriteRegister(apu.NR12, 0x00)
	case 1:
		e.a.WriteRegister(apu.NR22, 0x00)
	case 2:
		e.a.WriteRegister(apu.NR30, 0x00)
	case 3:
		e.a.WriteRegister(apu.NR42, 0x00)
	}
}

// updateChannel maps a virtual channel's per-note latched flags onto
// concrete register writes, in priority order: rest, then a noise drum hit,
// then ordinary note/vibrato/duty updates.
func (e *Engine) updateChannel(ch int) {
	t := &e.tracks[ch]
	hw := hwChannel(ch)

	if t.rest {
		e.clearChannel(hw)
		return
	}

	if t.noiseSampling {
		e.writeNoiseNote(t)
		return
	}

	if t.dutyOverride {
		e.writeDuty(hw, t.dutyCycle)
	}

	switch {
	case t.freqOverride:
		e.writeEnvelope(hw, t.volumeEnvelope)
		e.writeFrequencyTriggered(hw, t.frequency)
	case t.vibratoOverride:
		e.writeFrequency(hw, t.frequency)
	}
}
