package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// UnansweredEntry is one logged question the rule table had no answer for.
type UnansweredEntry struct {
	TS       time.Time `json:"ts"`
	Name     string    `json:"name"`
	Question string    `json:"question"`
}

// UnansweredLog appends unanswered questions as newline-delimited JSON.
type UnansweredLog struct {
	path string
	mu   sync.Mutex
}

func NewUnansweredLog(path string) *UnansweredLog {
	return &UnansweredLog{path: path}
}

// Append writes one entry. Each call opens, appends and closes the file so a
// crash loses at most the entry being written.
func (l *UnansweredLog) Append(entry UnansweredEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode unanswered entry: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("ensure dir for %s: %w", l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("append %s: %w", l.path, err)
	}
	return nil
}
