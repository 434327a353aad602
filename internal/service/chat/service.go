// Package chat orchestrates the reply pipeline: validation, keyword
// matching, escalation, and the paired store/history persistence of a turn.
package chat

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hanibassam/hanibot/backend/internal/config"
	"github.com/hanibassam/hanibot/backend/internal/model/message"
	"github.com/hanibassam/hanibot/backend/internal/sanitize"
	"github.com/hanibassam/hanibot/backend/internal/service/reply"
	"github.com/hanibassam/hanibot/backend/internal/store"
)

// DefaultSender is used when a request carries no sender field at all.
const DefaultSender = "Anonym"

// Generator produces a reply for a question no rule matched. Implemented by
// the ai service; nil means the collaborator is not configured.
type Generator interface {
	Reply(ctx context.Context, question, sender string) (string, error)
}

// Turn is one accepted conversational exchange: the user message and the bot
// reply, persisted together.
type Turn struct {
	UserMessage message.Message `json:"userMessage"`
	BotMessage  message.Message `json:"botMessage"`
}

// Service owns the message store, the in-memory history cache, the keyword
// responder and the optional external collaborator. One mutex serializes all
// mutations so a store write and its history mirror land in the same critical
// section; the store itself performs read-modify-write and is not safe for
// concurrent writers.
type Service struct {
	mu         sync.RWMutex
	store      *store.Store
	unanswered *store.UnansweredLog
	responder  *reply.Responder
	generator  Generator

	botName   string
	maxText   int
	maxSender int

	history []message.HistoryEntry
}

// NewService hydrates the history cache from the store and wires the
// pipeline. It is the only reader of the persisted collection at startup;
// afterwards the cache is kept in sync on every mutation.
func NewService(cfg config.ChatConfig, st *store.Store, unanswered *store.UnansweredLog, responder *reply.Responder, generator Generator) (*Service, error) {
	msgs, err := st.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("hydrate history: %w", err)
	}

	history := make([]message.HistoryEntry, 0, len(msgs))
	for _, msg := range msgs {
		history = append(history, message.NewHistoryEntry(msg, cfg.BotName))
	}

	return &Service{
		store:      st,
		unanswered: unanswered,
		responder:  responder,
		generator:  generator,
		botName:    cfg.BotName,
		maxText:    cfg.MaxMessageLen,
		maxSender:  cfg.MaxSenderLen,
		history:    history,
	}, nil
}

// Post runs the full reply pipeline for one inbound message. Validation
// failures surface to the caller with no side effects; once validation
// passes, the turn always succeeds (escalation failures are recovered with
// the canned reply) unless the store itself cannot be written.
func (s *Service) Post(ctx context.Context, text, sender string) (Turn, error) {
	text, sender, err := sanitize.ValidateMessage(text, sender, s.maxText, s.maxSender)
	if err != nil {
		return Turn{}, err
	}

	var answer string
	if rule, ok := s.responder.Match(text); ok {
		answer = s.responder.Answer(rule, sender)
	} else {
		answer = s.escalate(ctx, text, sender)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	userTS := time.Now().UTC()
	botTS := time.Now().UTC()
	if botTS.Before(userTS) {
		botTS = userTS
	}

	userMsg := message.Message{ID: uuid.NewString(), Date: userTS, Text: text, Sender: sender}
	botMsg := message.Message{ID: uuid.NewString(), Date: botTS, Text: answer, Sender: s.botName}

	// One write for both records: either the whole turn is persisted or
	// nothing is.
	if err := s.store.Append(userMsg, botMsg); err != nil {
		return Turn{}, fmt.Errorf("persist turn: %w", err)
	}

	s.history = append(s.history,
		message.NewHistoryEntry(userMsg, s.botName),
		message.NewHistoryEntry(botMsg, s.botName),
	)

	return Turn{UserMessage: userMsg, BotMessage: botMsg}, nil
}

// escalate handles an unmatched question: log it, ask the collaborator if
// one is configured, and otherwise (or on any failure) fall back to the
// canned reply. It never fails the turn.
func (s *Service) escalate(ctx context.Context, text, sender string) string {
	entry := store.UnansweredEntry{TS: time.Now().UTC(), Name: sender, Question: text}
	if err := s.unanswered.Append(entry); err != nil {
		log.Printf("[unanswered] failed to log question: %v", err)
	}

	if s.generator == nil {
		return reply.CannedReply(sender)
	}

	answer, err := s.generator.Reply(ctx, text, sender)
	if err != nil {
		log.Printf("[llm] falling back to canned reply: %v", err)
		return reply.CannedReply(sender)
	}
	return answer
}

// Messages returns the persisted collection in insertion order.
func (s *Service) Messages(_ context.Context) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.ReadAll()
}

// History returns a copy of the in-memory conversational view.
func (s *Service) History(_ context.Context) []message.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]message.HistoryEntry, len(s.history))
	copy(copied, s.history)
	return copied
}

// Update re-validates the provided fields, merges them into the stored
// message and mirrors the change into the history cache. Nil fields are left
// untouched. Returns store.ErrNotFound when the id is absent.
func (s *Service) Update(_ context.Context, id string, text, sender *string) (message.Message, error) {
	patch := store.Patch{}

	if text != nil {
		cleaned := sanitize.Clean(*text)
		if cleaned == "" {
			return message.Message{}, &sanitize.FieldError{Field: "text", Err: sanitize.ErrEmpty}
		}
		if utf8.RuneCountInString(cleaned) > s.maxText {
			return message.Message{}, &sanitize.FieldError{Field: "text", Limit: s.maxText, Err: sanitize.ErrTooLong}
		}
		patch.Text = &cleaned
	}

	if sender != nil {
		cleaned := sanitize.Clean(*sender)
		if cleaned == "" {
			return message.Message{}, &sanitize.FieldError{Field: "sender", Err: sanitize.ErrEmpty}
		}
		if utf8.RuneCountInString(cleaned) > s.maxSender {
			return message.Message{}, &sanitize.FieldError{Field: "sender", Limit: s.maxSender, Err: sanitize.ErrTooLong}
		}
		patch.Sender = &cleaned
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.store.UpdateByID(id, patch)
	if err != nil {
		return message.Message{}, err
	}

	for i := range s.history {
		if s.history[i].ID == id {
			s.history[i] = message.NewHistoryEntry(updated, s.botName)
			break
		}
	}

	return updated, nil
}

// Delete removes a message from both the store and the history cache.
// Returns store.ErrNotFound when the id is absent.
func (s *Service) Delete(_ context.Context, id string) (message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.store.DeleteByID(id)
	if err != nil {
		return message.Message{}, err
	}

	for i := range s.history {
		if s.history[i].ID == id {
			s.history = append(s.history[:i], s.history[i+1:]...)
			break
		}
	}

	return deleted, nil
}
