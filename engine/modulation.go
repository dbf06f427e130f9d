package engine

import "github.com/dgdev1024/gsca/apu"

// applyPitchSlide steps an in-progress pitch_slide by one frame: move the
// frequency by pitchSlideAmount, carry the fractional remainder in field25,
// and stop once the frequency has crossed the target.
func (e *Engine) applyPitchSlide(ch int) {
	t := &e.tracks[ch]
	if !t.pitchSlide {
		return
	}

	step := uint16(t.pitchSlideAmount)
	if t.pitchSlideDir {
		if step > t.frequency {
			t.frequency = 0
		} else {
			t.frequency -= step
		}
	} else {
		t.frequency += step
	}

	t.field25 += uint16(t.pitchSlideAmountFraction)
	if t.field25 > 0xFF {
		t.field25 &= 0xFF
		if t.pitchSlideDir {
			if t.frequency > 0 {
				t.frequency--
			}
		} else {
			t.frequency++
		}
	}

	crossed := (t.pitchSlideDir && t.frequency <= t.pitchSlideTarget) ||
		(!t.pitchSlideDir && t.frequency >= t.pitchSlideTarget)
	if crossed {
		t.frequency = t.pitchSlideTarget
		t.pitchSlide = false
		t.pitchSlideDir = false
	}

	t.freqOverride = true
}

// handleTrackVibrato applies the per-frame vibrato wobble once the initial
// delay has elapsed: every vibratoRate low nibble frames it flips direction
// and nudges the frequency's low byte by the asymmetric extent, saturating
// at 0/0xFF rather than wrapping.
func (e *Engine) handleTrackVibrato(ch int) {
	t := &e.tracks[ch]
	if !t.vibrato {
		return
	}
	if t.vibratoDelayCount > 0 {
		t.vibratoDelayCount--
		return
	}

	rate := t.vibratoRate & 0x0F
	if rate == 0 {
		rate = 1
	}

	t.field29++
	if t.field29 < rate {
		return
	}
	t.field29 = 0
	t.vibratoDir = !t.vibratoDir

	lo := uint8(t.frequency)
	if t.vibratoDir {
		extent := (t.vibratoExtent >> 4) & 0x0F
		if uint16(lo)+uint16(extent) > 0xFF {
			lo = 0xFF
		} else {
			lo += extent
		}
	} else {
		extent := t.vibratoExtent & 0x0F
		if int16(lo)-int16(extent) < 0 {
			lo = 0
		} else {
			lo -= extent
		}
	}
	t.frequency = (t.frequency &^ 0xFF) | uint16(lo)
	t.vibratoOverride = true
}

// handleNoise advances a noise-music track's drum script cursor by one
// frame, re-seeding notes from the drumkit on demand (done in parseNote)
// and emitting a fresh triggerable note each time a triple's delay lapses.
func (e *Engine) handleNoise(ch int) {
	t := &e.tracks[ch]
	if !t.noise || t.sfx || t.cry {
		return
	}
	if len(t.drumCursor) == 0 {
		return
	}
	if t.drumDelay > 0 {
		t.drumDelay--
		return
	}
	if t.drumCursor[0] == 0xFF {
		t.drumCursor = nil
		return
	}
	if len(t.drumCursor) < 3 {
		t.drumCursor = nil
		return
	}

	duration, env, freq := t.drumCursor[0], t.drumCursor[1], t.drumCursor[2]
	t.volumeEnvelope = env
	t.frequency = uint16(freq)
	t.freqOverride = true
	t.noiseSampling = true
	t.drumDelay = duration & 0x0F
	t.drumCursor = t.drumCursor[3:]
}

// handleLowHealthAlarm writes a warning tone on pulse 1 whenever armed and
// no SFX is currently playing, matching gscaPlayDangerTone: the tone is
// routed to both stereo sides every frame regardless of the frame's own
// panning, but the channel registers themselves are only rewritten once
// every 16 frames (lowHealthAlarmStep is a 4-bit counter).
func (e *Engine) handleLowHealthAlarm() {
	if !e.lowHealthAlarmOn || e.IsPlayingSFX() {
		return
	}

	e.soundOutput |= 0x11

	e.lowHealthAlarmStep = (e.lowHealthAlarmStep + 1) & 0x0F
	if e.lowHealthAlarmStep != 0 {
		return
	}

	freq := uint16(0x6EE)
	if e.lowHealthAlarmPitch {
		freq = uint16(0x750)
	}

	e.a.WriteRegister(apu.NR10, 0x00)
	e.a.WriteRegister(apu.NR11, 0x80)
	e.a.WriteRegister(apu.NR12, 0xE2)
	e.a.WriteRegister(apu.NR13, uint8(freq))
	e.a.WriteRegister(apu.NR14, uint8((freq>>8)&0x07)|0x80)
}

// stepMusicFade advances the fade-in/fade-out state machine by one frame.
// A fade-out that reaches silence reinitialises the engine and starts the
// queued target score; a fade-in that reaches full volume simply stops.
func (e *Engine) stepMusicFade() {
	if !e.musicFadeActive {
		return
	}

	e.musicFadeFrames++
	if e.musicFadeFrames < 4 {
		return
	}
	e.musicFadeFrames = 0

	right := e.nr50 & 0x07
	left := (e.nr50 >> 4) & 0x07

	if e.musicFadeIn {
		if right < 7 {
			right++
		}
		if left < 7 {
			left++
		}
		e.nr50 = (left << 4) | right
		if right >= 7 && left >= 7 {
			e.musicFadeActive = false
		}
		return
	}

	if right > 0 {
		right--
	}
	if left > 0 {
		left--
	}
	e.nr50 = (left << 4) | right

	if right == 0 && left == 0 {
		target := e.musicFadeTarget
		e.musicFadeActive = false
		if h, ok := e.s.HandleByID(target); ok {
			e.Init()
			_ = e.loadScore(h.ID, h.Offset)
		}
	}
}
