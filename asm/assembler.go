package asm

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgdev1024/gsca/internal/ilog"
	"github.com/dgdev1024/gsca/store"
)

// logger is this package's diagnostic sink; see store.SetLogger for the
// same nil-safe pattern.
var logger *slog.Logger

// SetLogger installs l as the logger used for assembler diagnostics (lex
// errors, pass failures). Passing nil reverts to the process-wide default.
func SetLogger(l *slog.Logger) { logger = l }

// excludedSourceNames are file names skipped before lexing: the original
// toolchain treats these as always-present virtual sources (their content
// lives in static Go tables, not .asm text) rather than real input files.
var excludedSourceNames = map[string]bool{
	"drumkits.asm":      true,
	"wave_samples.asm":  true,
}

// AssembleFolder lexes and assembles every .asm file under root (in
// lexicographic walk order, for deterministic output) into a single
// combined token stream, then runs the two-pass builder over it and loads
// the result into a new store.Store.
func AssembleFolder(root string) (*store.Store, error) {
	var combined []token

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if excludedSourceNames[d.Name()] {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".asm") {
			return nil
		}

		toks, err := lexFile(path)
		if err != nil {
			ilog.Or(logger).Error("asm: lexing source failed", "path", path, "error", err)
			return fmt.Errorf("asm: lexing %q: %w", path, err)
		}
		combined = append(combined, toks...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return Assemble(combined)
}

// lexFile reads and tokenizes a single source file.
func lexFile(path string) ([]token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l := newLexer(string(data))
	if err := l.tokenize(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

// Assemble runs the two-pass builder over an already-lexed token stream
// (AssembleSource/AssembleFolder's combined stream, or a hand-built one in
// tests) and loads the result into a new store.Store.
func Assemble(tokens []token) (*store.Store, error) {
	b := newBuilder(tokens)
	if err := b.passOne(); err != nil {
		ilog.Or(logger).Error("asm: pass one failed", "error", err)
		return nil, fmt.Errorf("asm: builder pass one: %w", err)
	}
	if err := b.passTwo(); err != nil {
		ilog.Or(logger).Error("asm: pass two failed", "error", err)
		return nil, fmt.Errorf("asm: builder pass two: %w", err)
	}

	var entries []store.AssembledEntry
	for _, l := range b.labels {
		if l.start {
			entries = append(entries, store.AssembledEntry{Name: l.name, Offset: uint64(l.offset)})
		}
	}

	s := store.NewStore(len(b.binary))
	if err := s.LoadAssembled(entries, b.binary); err != nil {
		return nil, fmt.Errorf("asm: loading assembled output: %w", err)
	}
	return s, nil
}

// AssembleSource assembles a single in-memory source string, useful for
// tests and for the drumkits/wave_samples virtual sources that never exist
// as real files on disk.
func AssembleSource(src string) (*store.Store, error) {
	l := newLexer(src)
	if err := l.tokenize(); err != nil {
		return nil, fmt.Errorf("asm: tokenizing source: %w", err)
	}
	return Assemble(l.tokens)
}
