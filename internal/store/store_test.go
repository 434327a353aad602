package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hanibassam/hanibot/backend/internal/model/message"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "messages.json"))
}

func testMessage(id, text, sender string) message.Message {
	return message.Message{
		ID:     id,
		Date:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Text:   text,
		Sender: sender,
	}
}

func TestReadAllInitializesMissingFile(t *testing.T) {
	st := newTestStore(t)

	msgs, err := st.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll err: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty collection, got %d", len(msgs))
	}

	// The empty collection must now be durable.
	if _, err := os.Stat(st.path); err != nil {
		t.Fatalf("data file not created: %v", err)
	}
}

func TestAppendPersistsInOrder(t *testing.T) {
	st := newTestStore(t)

	if err := st.Append(testMessage("a", "hej", "Maria"), testMessage("b", "svar", "Hanibot")); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	if err := st.Append(testMessage("c", "farvel", "Maria")); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	msgs, err := st.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll err: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if msgs[i].ID != want {
			t.Fatalf("position %d: got id %s want %s", i, msgs[i].ID, want)
		}
	}
}

func TestUpdateByIDMergesOnlyProvidedFields(t *testing.T) {
	st := newTestStore(t)
	if err := st.Append(testMessage("a", "hej", "Maria")); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	newText := "hej igen"
	updated, err := st.UpdateByID("a", Patch{Text: &newText})
	if err != nil {
		t.Fatalf("UpdateByID err: %v", err)
	}
	if updated.Text != "hej igen" || updated.Sender != "Maria" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	msgs, _ := st.ReadAll()
	if msgs[0].Text != "hej igen" {
		t.Fatal("update not persisted")
	}
}

func TestUpdateByIDNotFound(t *testing.T) {
	st := newTestStore(t)
	text := "x"
	if _, err := st.UpdateByID("missing", Patch{Text: &text}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteByID(t *testing.T) {
	st := newTestStore(t)
	if err := st.Append(testMessage("a", "hej", "Maria"), testMessage("b", "svar", "Hanibot")); err != nil {
		t.Fatalf("Append err: %v", err)
	}

	deleted, err := st.DeleteByID("a")
	if err != nil {
		t.Fatalf("DeleteByID err: %v", err)
	}
	if deleted.ID != "a" {
		t.Fatalf("unexpected deleted record: %+v", deleted)
	}

	msgs, _ := st.ReadAll()
	if len(msgs) != 1 || msgs[0].ID != "b" {
		t.Fatalf("unexpected remainder: %+v", msgs)
	}

	if _, err := st.DeleteByID("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
