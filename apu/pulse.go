package apu

// dutyPatterns are the four pulse waveforms (12.5%, 25%, 50%, 75% high time),
// read low bit first as wavePointer advances.
var dutyPatterns = [4]uint8{0b00000001, 0b00000011, 0b00001111, 0b00111111}

// pulseChannel models one of the two square-wave generators. Pulse 1 also
// owns a frequency sweep unit (sweepEnabled is only ever true for it); pulse
// 2 leaves the sweep fields at their zero value and never ticks them.
type pulseChannel struct {
	dacOutput float32
	dacInput  uint8
	dacEnable bool

	period        uint16 // 11-bit period, (2048 - period) cycles per waveform step
	periodDivider uint16
	wavePointer   uint8 // 3-bit position within the duty pattern

	duty uint8 // 2-bit duty selector (NR11/NR21 bits 6-7)

	lengthTimer uint8 // 6-bit
	lengthEnable bool

	volume         uint8
	initialVolume  uint8
	envelopeIncrease bool
	envelopePace   uint8
	envelopeTicks  uint8

	// Sweep (pulse 1 only).
	sweepEnabled bool
	sweepStep    uint8
	sweepDecrease bool
	sweepPace    uint8
	sweepTicks   uint8
}

// tick advances the pulse generator by one pulse-rate step (the caller gates
// this to run once every 4 APU ticks, per the shared master clock divide).
func (p *pulseChannel) tick() {
	if p.periodDivider++; p.periodDivider <= 0x7FF {
		return
	}

	p.periodDivider = p.period
	p.wavePointer = (p.wavePointer + 1) % 8

	bitValue := (dutyPatterns[p.duty] >> p.wavePointer) & 1
	p.dacInput = bitValue * p.volume
	p.updateDAC()
}

func (p *pulseChannel) updateDAC() {
	if !p.dacEnable {
		p.dacOutput = 0
		return
	}
	p.dacOutput = -(float32(p.dacInput)/7.5 - 1.0)
}

// tickLength advances the 6-bit length timer; returns true if the channel
// should be disabled (timer overflowed while length is enabled).
func (p *pulseChannel) tickLength() bool {
	if !p.lengthEnable {
		return false
	}
	p.lengthTimer++
	return p.lengthTimer >= 64
}

// tickEnvelope advances the volume envelope by one DIV-APU envelope step.
func (p *pulseChannel) tickEnvelope() {
	if p.envelopePace == 0 {
		return
	}
	p.envelopeTicks++
	if p.envelopeTicks < p.envelopePace {
		return
	}
	p.envelopeTicks = 0

	if p.envelopeIncrease {
		if p.volume < 15 {
			p.volume++
		}
	} else {
		if p.volume > 0 {
			p.volume--
		}
	}
}

// tickSweep advances pulse 1's frequency sweep. Returns true if the channel
// should be disabled (overflow past the 11-bit period range).
func (p *pulseChannel) tickSweep() bool {
	if p.sweepStep == 0 {
		return false
	}

	delta := p.period >> p.sweepStep
	var newPeriod uint16
	if p.sweepDecrease {
		newPeriod = p.period - delta
	} else {
		newPeriod = p.period + delta
		if newPeriod > 0x7FF {
			return true
		}
	}

	if p.sweepPace == 0 {
		return false
	}
	p.sweepTicks++
	if p.sweepTicks < p.sweepPace {
		return false
	}
	p.sweepTicks = 0

	p.period = newPeriod & 0x7FF
	p.periodDivider = p.period
	return false
}

// trigger runs the channel reset sequence performed on a write of
// control.trigger=1: reload length/volume/period, clear position, zero the
// sweep/envelope counters.
func (p *pulseChannel) trigger(hasSweep bool) {
	if p.lengthTimer >= 64 {
		p.lengthTimer = 0
	}
	p.periodDivider = p.period
	p.wavePointer = 0
	p.envelopeTicks = 0
	p.volume = p.initialVolume
	p.dacEnable = p.initialVolume > 0 || p.envelopeIncrease

	if hasSweep {
		p.sweepTicks = 0
		p.sweepEnabled = p.sweepStep > 0 || p.sweepPace > 0
	}

	p.updateDAC()
}
