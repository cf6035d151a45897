// Package api exposes the advisor over HTTP: stateless resolution plus
// in-memory chat sessions with ordered history.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ppiankov/evadvisor/internal/model"
	"github.com/ppiankov/evadvisor/internal/session"
)

// maxBodyBytes caps request bodies; messages are a single line of text
const maxBodyBytes = 64 << 10

// Advisor answers one message
type Advisor interface {
	Handle(message string, role model.Role) model.Reply
	Mode() string
}

// Handler serves the advisor API
type Handler struct {
	advisor Advisor
	store   *session.Store
	logger  *slog.Logger
}

// NewHandler creates a new Handler
func NewHandler(advisor Advisor, store *session.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		advisor: advisor,
		store:   store,
		logger:  logger,
	}
}

// MessageRequest is the body of resolve and message calls
type MessageRequest struct {
	Message string `json:"message"`
	Role    string `json:"role,omitempty"`
}

// CreateSessionRequest is the optional body of session creation
type CreateSessionRequest struct {
	Role string `json:"role,omitempty"`
}

// MessageResponse is returned when a message is added to a session
type MessageResponse struct {
	SessionID string         `json:"session_id"`
	Reply     model.Reply    `json:"reply"`
	Turns     int            `json:"turns"`
	Last      model.ChatTurn `json:"last"`
}

// RegisterRoutes registers the advisor routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/resolve", h.Resolve)
		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/messages", h.PostMessage)
			r.Get("/history", h.History)
			r.Get("/export.csv", h.ExportCSV)
		})
	})
}

// Resolve answers a message without touching any session
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	reply := h.advisor.Handle(req.Message, role)
	h.logger.Info("Resolved message", "intent", reply.Intent.String(), "source", string(reply.Source), "role", role.String())
	JSON(w, http.StatusOK, reply)
}

// CreateSession starts a chat session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decode(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sess := h.store.Create(role)
	h.logger.Info("Session created", "session_id", sess.ID, "role", role.String())
	JSON(w, http.StatusCreated, sess)
}

// GetSession returns session metadata
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"id":         sess.ID,
		"role":       sess.Role,
		"created_at": sess.CreatedAt,
		"turns":      sess.History.Len(),
		"mode":       h.advisor.Mode(),
	})
}

// DeleteSession ends a session
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(id); err != nil {
		Error(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostMessage answers a message and appends both turns to the history.
// A role in the body overrides the session role for this message only.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req MessageRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	role := sess.Role
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}

	reply := h.advisor.Handle(req.Message, role)
	sess.History.Record(reply)

	turns := sess.History.Turns()
	resp := MessageResponse{
		SessionID: sess.ID,
		Reply:     reply,
		Turns:     len(turns),
	}
	if len(turns) > 0 {
		resp.Last = turns[len(turns)-1]
	}

	h.logger.Info("Message answered",
		"session_id", sess.ID,
		"intent", reply.Intent.String(),
		"source", string(reply.Source),
		"cluster", reply.Cluster.String(),
	)
	JSON(w, http.StatusOK, resp)
}

// History returns the session's ordered turns
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	turns := sess.History.Turns()
	if turns == nil {
		turns = []model.ChatTurn{}
	}
	JSON(w, http.StatusOK, turns)
}

// ExportCSV streams the session history as CSV
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="chat-%s.csv"`, sess.ID))
	if err := session.WriteCSV(w, sess.History.Turns()); err != nil {
		h.logger.Error("CSV export failed", "session_id", sess.ID, "error", err)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			Error(w, http.StatusNotFound, err.Error())
		} else {
			Error(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return sess, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
