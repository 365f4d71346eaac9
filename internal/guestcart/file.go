package guestcart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/dukerupert/njord/internal/domain"
	"github.com/rs/zerolog"
)

// fileStore is a JSON-file-backed Store. Lines survive restarts. Every
// mutation rewrites the file via a temp-file rename; a failed write keeps
// the in-memory lines as they were before the mutation, so a broken disk
// degrades the operation to a no-op instead of corrupting the cart.
type fileStore struct {
	mu     sync.Mutex
	path   string
	lines  []domain.GuestCartLine
	logger zerolog.Logger
}

// guestCartFile is the on-disk shape. Versioned so the format can evolve.
type guestCartFile struct {
	Version int                    `json:"version"`
	Lines   []domain.GuestCartLine `json:"lines"`
}

const fileVersion = 1

// NewFileStore opens (or creates) the guest cart file at path. A missing
// file means an empty cart. An unreadable or malformed file is logged and
// treated as empty rather than failing startup.
func NewFileStore(path string, logger zerolog.Logger) Store {
	s := &fileStore{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("guest cart file unreadable, starting empty")
		}
		return s
	}

	var f guestCartFile
	if err := json.Unmarshal(data, &f); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("guest cart file malformed, starting empty")
		return s
	}

	s.lines = f.Lines
	return s
}

func (s *fileStore) Lines() []domain.GuestCartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

func (s *fileStore) Add(productID string, qty int32) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(addLine(copyLines(s.lines), productID, qty))
}

func (s *fileStore) SetQuantity(productID string, qty int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(setLine(copyLines(s.lines), productID, qty))
}

func (s *fileStore) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(removeLine(copyLines(s.lines), productID))
}

func (s *fileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(nil)
}

func (s *fileStore) Count() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countLines(s.lines)
}

// apply persists the candidate line set, committing it in memory only when
// the write succeeds. Callers must hold s.mu.
func (s *fileStore) apply(candidate []domain.GuestCartLine) {
	if err := s.save(candidate); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("guest cart write failed, keeping previous lines")
		return
	}
	s.lines = candidate
}

// save writes the candidate lines atomically (temp file + rename).
func (s *fileStore) save(lines []domain.GuestCartLine) error {
	data, err := json.Marshal(guestCartFile{Version: fileVersion, Lines: lines})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
