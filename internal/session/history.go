// Package session keeps the ordered chat history of an interactive session.
// History belongs to the collaborator (CLI or HTTP API); the intent and
// response core never reads or writes it.
package session

import (
	"sync"
	"time"

	"github.com/ppiankov/evadvisor/internal/model"
)

// History is an append-only ordered log of chat turns
type History struct {
	mu       sync.RWMutex
	turns    []model.ChatTurn
	next     int // position of the next appended turn
	maxTurns int
	now      func() time.Time
}

// NewHistory creates an empty history. maxTurns > 0 keeps only the most
// recent turns; positions keep counting from the first turn ever appended.
func NewHistory(maxTurns int) *History {
	return &History{
		maxTurns: maxTurns,
		now:      time.Now,
	}
}

// AppendUser records a user message
func (h *History) AppendUser(text string) model.ChatTurn {
	return h.append(model.SpeakerUser, text, nil)
}

// AppendAssistant records an assistant reply and the intent behind it
func (h *History) AppendAssistant(text string, in model.Intent) model.ChatTurn {
	return h.append(model.SpeakerAssistant, text, &in)
}

// Record appends both turns of one exchange
func (h *History) Record(reply model.Reply) {
	h.mu.Lock()
	defer h.mu.Unlock()
	in := reply.Intent
	h.appendLocked(model.SpeakerUser, reply.Message, nil)
	h.appendLocked(model.SpeakerAssistant, reply.Response, &in)
}

func (h *History) append(speaker model.Speaker, text string, in *model.Intent) model.ChatTurn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.appendLocked(speaker, text, in)
}

func (h *History) appendLocked(speaker model.Speaker, text string, in *model.Intent) model.ChatTurn {
	turn := model.ChatTurn{
		Position: h.next,
		Speaker:  speaker,
		Text:     text,
		Intent:   in,
		At:       h.now().UTC(),
	}
	h.next++
	h.turns = append(h.turns, turn)

	if h.maxTurns > 0 && len(h.turns) > h.maxTurns {
		drop := len(h.turns) - h.maxTurns
		h.turns = append([]model.ChatTurn(nil), h.turns[drop:]...)
	}
	return turn
}

// Turns returns a copy of the history in order
func (h *History) Turns() []model.ChatTurn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]model.ChatTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of retained turns
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
