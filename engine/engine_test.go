package engine

import (
	"testing"

	"github.com/dgdev1024/gsca/apu"
	"github.com/dgdev1024/gsca/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, score []byte) (*Engine, *store.Store) {
	t.Helper()
	s := store.NewStore(64)
	_, err := s.AddAudio("test", score)
	require.NoError(t, err)

	a := apu.New(44100)
	a.Reset()
	e := NewEngine(a, s)
	return e, s
}

// header9 builds a single-channel score header: one byte of
// (channelCount-1)<<6 | channelID, followed by an 8-byte little-endian
// address.
func header9(channelID int, addr uint64) []byte {
	rec := make([]byte, 9)
	rec[0] = uint8(channelID)
	for i := 0; i < 8; i++ {
		rec[1+i] = uint8(addr >> (8 * i))
	}
	return rec
}

func TestPlayMusicStartsChannelZero(t *testing.T) {
	body := []byte{opNoteType, 4, 0xF0, 0x41, opSoundRet}
	score := append(header9(0, 9), body...)

	e, _ := newTestEngine(t, score)
	require.NoError(t, e.PlayMusic("test"))

	assert.True(t, e.tracks[0].channelOn)
	assert.Equal(t, uint64(9), e.tracks[0].musicAddress)
}

func TestSoundJumpIfTakesBranchOnMatch(t *testing.T) {
	// channel 0 program, starting at offset 9:
	//   set_condition 1
	//   sound_jump_if 1, -> offset 23 (a rest note, then ret)
	//   octave + sound_ret (never reached if the branch is taken)
	const (
		startOffset  = 9
		targetOffset = startOffset + 1 + 1 + 1 + 1 + 8 + 2 // past set_condition, sound_jump_if and the two skipped bytes
	)
	body := []byte{
		opSetCondition, 1,
		opSoundJumpIf, 1, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	// Pad the jump address to targetOffset relative to the start of the data
	// buffer as a whole (header occupies the first 9 bytes).
	addrBytes := make([]byte, 8)
	for i := 0; i < 8; i++ {
		addrBytes[i] = uint8(targetOffset >> (8 * i))
	}
	copy(body[4:12], addrBytes)
	body = append(body, 0xD0) // never-reached opcode if branch taken (would set octave=7)
	body = append(body, opSoundRet)
	// at targetOffset: a rest note then ret
	body = append(body, 0x00, opSoundRet)

	score := append(header9(0, startOffset), body...)

	e, _ := newTestEngine(t, score)
	require.NoError(t, e.PlayMusic("test"))

	e.Update() // consumes set_condition + sound_jump_if, lands on the rest note
	assert.Equal(t, uint8(1), e.tracks[0].condition)
	assert.True(t, e.tracks[0].channelOn)

	e.Update() // the rest note's 1-frame duration lapses, reaching sound_ret
	assert.False(t, e.tracks[0].channelOn, "track should have hit sound_ret after the taken branch's rest note")
}

func TestNoteParsingSetsFrequencyAndDuration(t *testing.T) {
	body := []byte{0x41, opSoundRet} // pitch=4, duration=1
	score := append(header9(0, 9), body...)

	e, _ := newTestEngine(t, score)
	require.NoError(t, e.PlayMusic("test"))

	// Parse directly: Update clears the per-note latched flags at frame end.
	e.parseMusic(0)

	tr := &e.tracks[0]
	assert.True(t, tr.freqOverride)
	assert.Equal(t, getFrequency(4, 0, 0), tr.frequency)
	assert.NotZero(t, tr.noteDuration)
}

func TestRestNoteSilencesChannel(t *testing.T) {
	body := []byte{0x01, opSoundRet} // pitch=0 (rest), duration=1
	score := append(header9(0, 9), body...)

	e, _ := newTestEngine(t, score)
	require.NoError(t, e.PlayMusic("test"))

	e.Update()

	assert.True(t, e.tracks[0].rest || e.a.ReadRegister(apu.NR12) == 0x00)
}

func TestGetFrequencyWrapsOnOverflow(t *testing.T) {
	// note + transposition overflowing the table must wrap rather than panic.
	freq := getFrequency(0x0F, 7, 0xFF)
	assert.LessOrEqual(t, freq, uint16(0x7FF))
	// 0x0F + 0x0F = 30 wraps to 30 - len(frequencyTable).
	assert.Equal(t, getFrequency(30-uint8(len(frequencyTable)), 7, 0xF0), freq)
}

func TestSetNoteDurationScalesByLengthAndTempo(t *testing.T) {
	e, _ := newTestEngine(t, append(header9(0, 9), opSoundRet))
	require.NoError(t, e.PlayMusic("test"))

	e.tracks[0].tempo = 0x180
	e.tracks[0].noteLength = 2
	e.setNoteDuration(0, 3)

	assert.NotZero(t, e.tracks[0].noteDuration)
}

func TestFadeToMusicQueuesTarget(t *testing.T) {
	s := store.NewStore(64)
	firstBase := uint64(s.DataSize())
	_, err := s.AddAudio("first", append(header9(0, firstBase+9), opSoundRet))
	require.NoError(t, err)
	secondBase := uint64(s.DataSize())
	secondHandle, err := s.AddAudio("second", append(header9(0, secondBase+9), opSoundRet))
	require.NoError(t, err)

	a := apu.New(44100)
	a.Reset()
	e := NewEngine(a, s)
	require.NoError(t, e.PlayMusic("first"))

	require.NoError(t, e.FadeToMusic("second", 1))
	assert.True(t, e.musicFadeActive)
	assert.False(t, e.musicFadeIn)
	assert.Equal(t, secondHandle.ID, e.musicFadeTarget)

	e.nr50 = 0x00
	for i := 0; i < 8; i++ {
		e.stepMusicFade()
	}
	assert.False(t, e.musicFadeActive)
}

func TestSFXTrackPlaysWithPriorityOn(t *testing.T) {
	musicBody := []byte{0x41, opSoundRet}
	sfxBody := []byte{opToggleSFX, 4, 0xF0, 0x41, 0x42, opSoundRet}

	s := store.NewStore(64)
	_, err := s.AddAudio("music", append(header9(0, 9), musicBody...))
	require.NoError(t, err)
	sfxBase := uint64(s.DataSize())
	_, err = s.AddAudio("sfx", append(header9(4, sfxBase+9), sfxBody...))
	require.NoError(t, err)

	a := apu.New(44100)
	a.Reset()
	e := NewEngine(a, s)
	e.sfxPriority = true

	require.NoError(t, e.PlayMusic("music"))
	require.NoError(t, e.PlaySFX("sfx"))

	e.Update()

	assert.True(t, e.tracks[4].channelOn)
	assert.True(t, e.tracks[4].sfx)
}

func TestSoundLoopWithCountOneNeverJumpsBack(t *testing.T) {
	body := []byte{0x01, 0x2A, 0, 0, 0, 0, 0, 0, 0, opSoundRet} // count=1, addr=42, filler
	score := append(header9(0, 9), body...)

	e, _ := newTestEngine(t, score)
	require.NoError(t, e.PlayMusic("test"))

	tr := &e.tracks[0]
	tr.musicAddress = 9 // positioned at the count byte, as if opSoundLoop's opcode was just read
	tr.looping = false

	e.parseMusicCommand(0, opSoundLoop)

	assert.True(t, tr.looping)
	assert.Equal(t, uint8(0), tr.loopCount)
	// loopCount is checked on this same encounter: count=1 arms a loop that
	// is already exhausted, so it must fall through to the byte right after
	// the address operand (offset 18) instead of jumping back to addr=42.
	assert.EqualValues(t, 18, tr.musicAddress)
}

func TestSoundLoopWithHigherCountJumpsBack(t *testing.T) {
	body := []byte{0x02, 0x2A, 0, 0, 0, 0, 0, 0, 0, opSoundRet} // count=2, addr=42
	score := append(header9(0, 9), body...)

	e, _ := newTestEngine(t, score)
	require.NoError(t, e.PlayMusic("test"))

	tr := &e.tracks[0]
	tr.musicAddress = 9
	tr.looping = false

	e.parseMusicCommand(0, opSoundLoop)

	assert.True(t, tr.looping)
	assert.Equal(t, uint8(1), tr.loopCount)
	assert.EqualValues(t, 42, tr.musicAddress)
}
