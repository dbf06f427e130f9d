package store

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAudioAndLookup(t *testing.T) {
	s := NewStore(0)

	h1, err := s.AddAudio("Song1", []byte{0xC0, 0x00, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, uint16(1), h1.ID)
	assert.Equal(t, uint64(0), h1.Offset)

	h2, err := s.AddAudio("Song2", []byte{0xC0, 0x01, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, uint16(2), h2.ID)
	assert.Equal(t, uint64(3), h2.Offset)

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 6, s.DataSize())

	got, ok := s.HandleByName("Song1")
	require.True(t, ok)
	assert.Equal(t, h1, got)

	got, ok = s.HandleByID(2)
	require.True(t, ok)
	assert.Equal(t, h2, got)

	_, ok = s.HandleByName("missing")
	assert.False(t, ok)
}

func TestAddAudioRejectsDuplicateAndEmpty(t *testing.T) {
	s := NewStore(0)
	_, err := s.AddAudio("Song1", []byte{0xFF})
	require.NoError(t, err)

	_, err = s.AddAudio("Song1", []byte{0xFF})
	assert.Error(t, err)

	_, err = s.AddAudio("Song2", nil)
	assert.Error(t, err)

	_, err = s.AddAudio("", []byte{0xFF})
	assert.Error(t, err)
}

func TestWriteThenReadAudioFileRoundTrips(t *testing.T) {
	s := NewStore(0)
	_, err := s.AddAudio("Intro", []byte{0xC0, 0x00, 0xC1, 0x00, 0xFF})
	require.NoError(t, err)
	_, err = s.AddAudio("Loop", []byte{0xC0, 0x01, 0xFF})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WriteAudioWriter(&buf))

	loaded := NewStore(0)
	require.NoError(t, loaded.ReadAudioReader(&buf))

	assert.Equal(t, 2, loaded.Count())
	h, ok := loaded.HandleByName("Intro")
	require.True(t, ok)
	assert.Equal(t, uint64(0), h.Offset)
	assert.Equal(t, uint16(1), h.ID)

	h2, ok := loaded.HandleByName("Loop")
	require.True(t, ok)
	assert.Equal(t, uint64(5), h2.Offset)

	assert.Equal(t, []byte{0xC0, 0x00, 0xC1, 0x00, 0xFF}, loaded.Data(h))
	assert.Equal(t, []byte{0xC0, 0x01, 0xFF}, loaded.Data(h2))
}

func TestReadAudioFileMergeBiasesOffsets(t *testing.T) {
	s := NewStore(0)
	_, err := s.AddAudio("First", []byte{0x01, 0x02, 0x03})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.WriteAudioWriter(&buf))

	merged := NewStore(0)
	_, err = merged.AddAudio("Existing", []byte{0xAA, 0xBB})
	require.NoError(t, err)

	require.NoError(t, merged.ReadAudioBuffer(buf.Bytes()))

	h, ok := merged.HandleByName("First")
	require.True(t, ok)
	assert.Equal(t, uint64(2), h.Offset, "merged handle offsets must be biased by existing data length")
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, merged.Data(h))
}

func TestReadAudioFileRejectsBadMagic(t *testing.T) {
	s := NewStore(0)
	err := s.ReadAudioBuffer([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	assert.Error(t, err)
}

func TestWriteThenReadAudioFilePathRoundTrips(t *testing.T) {
	s := NewStore(0)
	_, err := s.AddAudio("Theme", []byte{0xC0, 0x00, 0xFF})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "test.gsca")
	require.NoError(t, s.WriteAudioFile(path))

	loaded := NewStore(0)
	require.NoError(t, loaded.ReadAudioFile(path))

	h, ok := loaded.HandleByName("Theme")
	require.True(t, ok)
	assert.Equal(t, []byte{0xC0, 0x00, 0xFF}, loaded.Data(h))
}
