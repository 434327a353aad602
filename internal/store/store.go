// Package store persists the conversation log as a single JSON array file
// plus an append-only log of unanswered questions.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hanibassam/hanibot/backend/internal/model/message"
)

var ErrNotFound = errors.New("message not found")

// Patch carries the optional fields of an update. Nil means "leave as is".
// Values are expected to be sanitized and validated by the caller.
type Patch struct {
	Text   *string
	Sender *string
}

// Store is a read-modify-write snapshot store over one JSON file. It does no
// locking of its own: the owning service must serialize mutations (there is a
// lost-update hazard otherwise).
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// ReadAll returns every persisted message in insertion order. A missing data
// file is not an error: the store initializes an empty durable collection and
// returns empty.
func (s *Store) ReadAll() ([]message.Message, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := s.save(nil); err != nil {
				return nil, err
			}
			return []message.Message{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []message.Message{}, nil
	}

	var msgs []message.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return msgs, nil
}

// Append adds the given messages at the end of the collection in one write,
// so a multi-message turn is persisted all-or-nothing.
func (s *Store) Append(msgs ...message.Message) error {
	existing, err := s.ReadAll()
	if err != nil {
		return err
	}
	return s.save(append(existing, msgs...))
}

// UpdateByID merges the provided patch fields into the message with the given
// id and persists the collection.
func (s *Store) UpdateByID(id string, patch Patch) (message.Message, error) {
	msgs, err := s.ReadAll()
	if err != nil {
		return message.Message{}, err
	}

	for i := range msgs {
		if msgs[i].ID != id {
			continue
		}
		if patch.Text != nil {
			msgs[i].Text = *patch.Text
		}
		if patch.Sender != nil {
			msgs[i].Sender = *patch.Sender
		}
		if err := s.save(msgs); err != nil {
			return message.Message{}, err
		}
		return msgs[i], nil
	}

	return message.Message{}, ErrNotFound
}

// DeleteByID removes the message with the given id and persists the
// remainder, returning the removed record.
func (s *Store) DeleteByID(id string) (message.Message, error) {
	msgs, err := s.ReadAll()
	if err != nil {
		return message.Message{}, err
	}

	for i := range msgs {
		if msgs[i].ID != id {
			continue
		}
		deleted := msgs[i]
		if err := s.save(append(msgs[:i:i], msgs[i+1:]...)); err != nil {
			return message.Message{}, err
		}
		return deleted, nil
	}

	return message.Message{}, ErrNotFound
}

// save writes the whole collection atomically: temp file in the same
// directory, fsync, rename over the target, best-effort directory sync.
func (s *Store) save(msgs []message.Message) error {
	if msgs == nil {
		msgs = []message.Message{}
	}

	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", s.path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp for %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp for %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp for %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename temp for %s: %w", s.path, err)
	}

	// Best effort directory sync for durability; ignore failures.
	if dirFD, err := os.Open(dir); err == nil {
		_ = dirFD.Sync()
		_ = dirFD.Close()
	}
	return nil
}
