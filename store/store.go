package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"fivem-community/types"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigFastest

// Store owns the persisted document. Every read and write goes through View
// or Update so that "read document, mutate, write document" sequences from
// different handlers cannot race each other; there is exactly one logical
// writer for the whole process.
type Store struct {
	path   string
	logger *zap.Logger

	mu  sync.Mutex
	doc *types.Document
}

// Open loads the document at path, creating and persisting a default-shaped
// one if the file does not exist yet.
func Open(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
	}

	bt, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.doc = types.DefaultDocument()

		if err := s.save(); err != nil {
			return nil, fmt.Errorf("error persisting default document: %w", err)
		}

		logger.Info("Created new data file", zap.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("error reading data file: %w", err)
	default:
		var doc types.Document

		if err := json.Unmarshal(bt, &doc); err != nil {
			return nil, fmt.Errorf("error decoding data file: %w", err)
		}

		doc.Normalize()
		s.doc = &doc

		logger.Info("Loaded data file", zap.String("path", path), zap.Int("tickets", len(doc.Tickets)))
	}

	return s, nil
}

// View calls fn with the current document under the store lock. fn must not
// retain the document or anything inside it past the call.
func (s *Store) View(fn func(d *types.Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.doc)
}

// Update applies fn to the document and rewrites the whole file. If fn or the
// write fails the in-memory document is rolled back to the last persisted
// state, so a failed save never reports success and never leaves dirty state
// behind for the next save to silently commit.
func (s *Store) Update(fn func(d *types.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, err := json.Marshal(s.doc)

	if err != nil {
		return fmt.Errorf("error snapshotting document: %w", err)
	}

	if err := fn(s.doc); err != nil {
		s.restore(prev)
		return err
	}

	if err := s.save(); err != nil {
		s.restore(prev)
		return fmt.Errorf("error persisting document: %w", err)
	}

	return nil
}

func (s *Store) restore(prev []byte) {
	var doc types.Document

	if err := json.Unmarshal(prev, &doc); err != nil {
		// The snapshot came from marshalling the same struct, this cannot
		// fail outside of memory corruption.
		s.logger.Error("Error restoring document snapshot", zap.Error(err))
		return
	}

	doc.Normalize()
	s.doc = &doc
}

// save writes the full document, replacing the previous file only once the
// new content is fully on disk. jsoniter does not escape non-ASCII, so the
// category names and emojis survive the round trip verbatim.
func (s *Store) save() error {
	bt, err := json.MarshalIndent(s.doc, "", "  ")

	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}

	tmp := s.path + ".tmp"

	if err := os.WriteFile(tmp, bt, 0644); err != nil {
		return fmt.Errorf("error writing data file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error replacing data file: %w", err)
	}

	return nil
}

// Ping verifies the document can still be rewritten. Used by the health
// endpoint.
func (s *Store) Ping() error {
	return s.Update(func(*types.Document) error { return nil })
}
