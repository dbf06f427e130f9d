// Package store implements the score container: an append-only byte buffer
// addressed by a handle table, serialised to and from the GSCA file format.
package store

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgdev1024/gsca/internal/ilog"
)

// logger is this package's diagnostic sink. nil until SetLogger is called,
// in which case every log call falls back to slog.Default() via ilog.Or.
var logger *slog.Logger

// SetLogger installs l as the logger used for store-level diagnostics
// (malformed file headers, merge details). Passing nil reverts to the
// process-wide default.
func SetLogger(l *slog.Logger) { logger = l }

const (
	magicNumber  = 0x41435347 // little-endian decode of the on-disk bytes 'G','S','C','A'
	majorVersion = 1
	minorVersion = 0

	handleNameLen = 64
	// handleRecordLen is the on-disk size of one handle table entry: a
	// fixed-width name plus an 8-byte little-endian offset. The in-memory
	// id field is never persisted; it is assigned fresh on every load.
	handleRecordLen = handleNameLen + 8
)

// Handle names one contiguous score byte-stream living inside a Store's
// buffer. Offset is stable for the life of the store; ID is assigned at
// load/add time and is unique only within this Store instance.
type Handle struct {
	Name   string
	Offset uint64
	ID     uint16
}

// Store is an append-only byte buffer of score bytecode plus the handle
// table addressing it. A Store never shrinks; AddAudio and ReadAudioFile
// only ever append.
type Store struct {
	handles []Handle
	data    []byte
	nextID  uint16
}

// NewStore creates an empty store. initialCapacity is a hint, not a limit;
// it mirrors the original implementation's growable-buffer constructor but
// Go's append already amortises growth, so it only pre-sizes the backing
// slice.
func NewStore(initialCapacity int) *Store {
	return &Store{
		data:   make([]byte, 0, initialCapacity),
		nextID: 1,
	}
}

// fileHeader is the fixed 8-byte prefix of a GSCA file: magic, then version,
// then the audio (handle) count, in that on-disk order.
type fileHeader struct {
	Magic        uint32
	MajorVersion uint8
	MinorVersion uint8
	AudioCount   uint16
}

// ReadAudioBuffer parses a GSCA file already held in memory and merges its
// handles and score bytes into the store. Handle offsets are biased by the
// store's current data length so multiple files can be merged into one
// store without colliding.
func (s *Store) ReadAudioBuffer(buf []byte) error {
	r := bytes.NewReader(buf)

	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("store: reading header: %w", err)
	}
	if hdr.Magic != magicNumber {
		ilog.Or(logger).Warn("store: rejecting file with bad magic number", "got", hdr.Magic, "want", magicNumber)
		return fmt.Errorf("store: bad magic number %#x", hdr.Magic)
	}
	if hdr.MajorVersion != majorVersion {
		ilog.Or(logger).Warn("store: rejecting file with mismatched major version",
			"file_version", hdr.MajorVersion, "supported_version", majorVersion)
		return fmt.Errorf("store: file major version %d does not match supported %d", hdr.MajorVersion, majorVersion)
	}
	if hdr.MinorVersion > minorVersion {
		ilog.Or(logger).Warn("store: rejecting file from a newer minor version",
			"file_version", hdr.MinorVersion, "supported_version", minorVersion)
		return fmt.Errorf("store: file minor version %d newer than supported %d", hdr.MinorVersion, minorVersion)
	}

	bias := uint64(len(s.data))

	type rawHandle struct {
		name   [handleNameLen]byte
		offset uint64
	}

	raw := make([]rawHandle, hdr.AudioCount)
	for i := range raw {
		if _, err := io.ReadFull(r, raw[i].name[:]); err != nil {
			return fmt.Errorf("store: reading handle %d name: %w", i, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &raw[i].offset); err != nil {
			return fmt.Errorf("store: reading handle %d offset: %w", i, err)
		}
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("store: reading score data: %w", err)
	}

	for _, rh := range raw {
		name := string(bytes.TrimRight(rh.name[:], "\x00"))
		s.handles = append(s.handles, Handle{
			Name:   name,
			Offset: rh.offset + bias,
			ID:     s.nextID,
		})
		s.nextID++
	}
	s.data = append(s.data, rest...)

	return nil
}

// AssembledEntry names one offset produced directly by the assembler, for
// scores built in-process rather than read back from a GSCA file.
type AssembledEntry struct {
	Name   string
	Offset uint64
}

// LoadAssembled merges an assembler's output directly into the store: the
// concatenated score bytes plus the label offsets the assembler marked as
// audio entry points. Offsets are biased the same way ReadAudioBuffer
// biases a merged file's offsets, so assembler output can be loaded
// alongside (or before) score files without colliding.
func (s *Store) LoadAssembled(entries []AssembledEntry, data []byte) error {
	bias := uint64(len(s.data))
	for _, e := range entries {
		if len(e.Name) == 0 || len(e.Name) >= handleNameLen {
			return fmt.Errorf("store: assembled entry name %q must be 1-%d bytes", e.Name, handleNameLen-1)
		}
		s.handles = append(s.handles, Handle{Name: e.Name, Offset: e.Offset + bias, ID: s.nextID})
		s.nextID++
	}
	s.data = append(s.data, data...)
	return nil
}

// ReadAudioReader reads and merges a GSCA file from r.
func (s *Store) ReadAudioReader(r io.Reader) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("store: reading file: %w", err)
	}
	return s.ReadAudioBuffer(buf)
}

// ReadAudioFile opens path and merges its GSCA contents into the store.
func (s *Store) ReadAudioFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("store: opening %q: %w", path, err)
	}
	defer f.Close()
	return s.ReadAudioReader(f)
}

// WriteAudioWriter serialises every handle and the full score buffer to w in
// GSCA file format.
func (s *Store) WriteAudioWriter(w io.Writer) error {
	hdr := fileHeader{
		Magic:        magicNumber,
		AudioCount:   uint16(len(s.handles)),
		MajorVersion: majorVersion,
		MinorVersion: minorVersion,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("store: writing header: %w", err)
	}

	for _, h := range s.handles {
		var name [handleNameLen]byte
		copy(name[:], h.Name)
		if _, err := w.Write(name[:]); err != nil {
			return fmt.Errorf("store: writing handle name %q: %w", h.Name, err)
		}
		if err := binary.Write(w, binary.LittleEndian, h.Offset); err != nil {
			return fmt.Errorf("store: writing handle offset %q: %w", h.Name, err)
		}
	}

	if _, err := w.Write(s.data); err != nil {
		return fmt.Errorf("store: writing score data: %w", err)
	}
	return nil
}

// WriteAudioFile creates (or truncates) path and writes the store to it in
// GSCA file format.
func (s *Store) WriteAudioFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: creating %q: %w", path, err)
	}
	if err := s.WriteAudioWriter(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// AddAudio appends a named score byte-stream to the store and returns its
// new handle. Names must be 1-63 bytes and unique within the store;
// duplicate names are rejected rather than silently shadowed.
func (s *Store) AddAudio(name string, data []byte) (Handle, error) {
	if len(name) == 0 || len(name) >= handleNameLen {
		return Handle{}, fmt.Errorf("store: name %q must be 1-%d bytes", name, handleNameLen-1)
	}
	if len(data) == 0 {
		return Handle{}, fmt.Errorf("store: audio %q has zero length", name)
	}
	if _, ok := s.findByName(name); ok {
		return Handle{}, fmt.Errorf("store: name %q already exists", name)
	}

	h := Handle{
		Name:   name,
		Offset: uint64(len(s.data)),
		ID:     s.nextID,
	}
	s.nextID++
	s.data = append(s.data, data...)
	s.handles = append(s.handles, h)
	return h, nil
}

// HandleByIndex returns the handle at position i in table order.
func (s *Store) HandleByIndex(i int) (Handle, bool) {
	if i < 0 || i >= len(s.handles) {
		return Handle{}, false
	}
	return s.handles[i], true
}

// HandleByID returns the handle with the given load-assigned ID.
func (s *Store) HandleByID(id uint16) (Handle, bool) {
	for _, h := range s.handles {
		if h.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// HandleByName returns the handle with the given name.
func (s *Store) HandleByName(name string) (Handle, bool) {
	return s.findByName(name)
}

func (s *Store) findByName(name string) (Handle, bool) {
	for _, h := range s.handles {
		if h.Name == name {
			return h, true
		}
	}
	return Handle{}, false
}

// Count returns the number of handles registered in the store.
func (s *Store) Count() int {
	return len(s.handles)
}

// DataSize returns the total size of the score byte buffer.
func (s *Store) DataSize() int {
	return len(s.data)
}

// Data returns the score bytes for a handle, from its offset to the next
// handle's offset (or the end of the buffer for the last handle).
func (s *Store) Data(h Handle) []byte {
	end := uint64(len(s.data))
	for _, other := range s.handles {
		if other.Offset > h.Offset && other.Offset < end {
			end = other.Offset
		}
	}
	return s.data[h.Offset:end]
}

// Bytes exposes the raw score buffer starting at the given offset, for
// callers (the engine) that walk the command stream directly rather than
// through a Handle's bounded slice.
func (s *Store) Bytes(offset uint64) []byte {
	return s.data[offset:]
}
