// Package message exposes the REST surface over the conversation log.
package message

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hanibassam/hanibot/backend/internal/model/message"
	"github.com/hanibassam/hanibot/backend/internal/sanitize"
	chatService "github.com/hanibassam/hanibot/backend/internal/service/chat"
	"github.com/hanibassam/hanibot/backend/internal/store"
	"github.com/hanibassam/hanibot/backend/pkg/utils"
)

// Handler adapts the chat service to HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the message handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes wires the message routes onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/messages", h.handleList)
	r.Post("/messages", h.handlePost)
	r.Put("/messages/{id}", h.handleUpdate)
	r.Delete("/messages/{id}", h.handleDelete)
	r.Get("/history", h.handleHistory)
}

// handleList returns the persisted collection in insertion order.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.chatSvc.Messages(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, msgs)
}

// handleHistory returns the in-memory conversational view.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.chatSvc.History(r.Context()))
}

// handlePost runs the full reply pipeline and returns the persisted turn.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text   string  `json:"text"`
		Sender *string `json:"sender"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// An absent sender field defaults; an explicitly empty one is rejected
	// by validation.
	sender := chatService.DefaultSender
	if payload.Sender != nil {
		sender = *payload.Sender
	}

	turn, err := h.chatSvc.Post(r.Context(), payload.Text, sender)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, turn)
}

// handleUpdate merges the provided fields into a stored message.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text   *string `json:"text"`
		Sender *string `json:"sender"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.chatSvc.Update(r.Context(), chi.URLParam(r, "id"), payload.Text, payload.Sender)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, updated)
}

// handleDelete removes a message from the store and the history view.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.chatSvc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, struct {
		Success bool            `json:"success"`
		Deleted message.Message `json:"deleted"`
	}{Success: true, Deleted: deleted})
}

// respondError maps service errors onto HTTP statuses. Validation errors are
// user-correctable and never logged; anything unexpected collapses to a
// generic 500 with the detail kept in the operational log.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var fieldErr *sanitize.FieldError
	switch {
	case errors.As(err, &fieldErr):
		status := http.StatusBadRequest
		if errors.Is(fieldErr, sanitize.ErrTooLong) {
			status = http.StatusRequestEntityTooLarge
		}
		utils.RespondError(w, status, fieldErr.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, "Message not found")
	default:
		log.Printf("[http] request failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Server error")
	}
}
