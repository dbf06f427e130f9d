package apu

// waveChannel models the custom wave (channel 3) generator. Its sample
// memory is owned by the APU (waveRAM), since it is independently
// addressable/writable on the bus even while the channel is silent.
type waveChannel struct {
	dacOutput float32
	dacInput  uint8
	dacEnable bool

	period        uint16
	periodDivider uint16
	sampleIndex   uint8 // 5-bit position within the 32-nibble wave RAM

	lengthTimer  uint8 // 8-bit
	lengthEnable bool

	outputLevel waveOutputLevel
}

// tick advances the wave generator by one wave-rate step (the caller gates
// this to run once every 2 APU ticks).
func (w *waveChannel) tick(waveRAM *[32]uint8) {
	if w.periodDivider++; w.periodDivider <= 0x7FF {
		return
	}

	w.periodDivider = w.period
	w.sampleIndex = (w.sampleIndex + 1) % 32

	sample := waveRAM[w.sampleIndex]
	switch w.outputLevel {
	case waveOutputMute:
		sample = 0
	case waveOutputHalf:
		sample >>= 1
	case waveOutputQuarter:
		sample >>= 2
	}

	w.dacInput = sample
	w.updateDAC()
}

func (w *waveChannel) updateDAC() {
	if !w.dacEnable {
		w.dacOutput = 0
		return
	}
	w.dacOutput = -(float32(w.dacInput)/7.5 - 1.0)
}

func (w *waveChannel) tickLength() bool {
	if !w.lengthEnable {
		return false
	}
	w.lengthTimer++
	return w.lengthTimer == 0 // 8-bit wraps to 0 on overflow from 255
}

// trigger resets sample position and period divider; wave has no envelope
// or sweep, only the DAC enable gate from NR30.
func (w *waveChannel) trigger() {
	w.periodDivider = w.period
	w.sampleIndex = 0
	w.updateDAC()
}
