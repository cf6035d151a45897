package model

import "time"

// Source records which path produced an intent
type Source string

const (
	SourceRules    Source = "rules"    // A keyword rule fired
	SourceLearned  Source = "learned"  // The trained classifier decided
	SourceFallback Source = "fallback" // Nothing matched; fallback label used
)

// Reply is what the core hands back to a collaborator for one message
type Reply struct {
	Message    string  `json:"message"`
	Intent     Intent  `json:"intent"`
	Source     Source  `json:"source"`
	Trigger    string  `json:"trigger,omitempty"`    // Matched substring in rule mode
	Confidence float64 `json:"confidence,omitempty"` // Arg-max probability in learned mode
	Role       Role    `json:"role"`
	Cluster    Cluster `json:"cluster"`
	Response   string  `json:"response"`
}

// Speaker identifies who produced a chat turn
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// ChatTurn is one entry of a session's ordered history
type ChatTurn struct {
	Position int       `json:"position"` // 0-based ordinal within the session
	Speaker  Speaker   `json:"speaker"`
	Text     string    `json:"text"`
	Intent   *Intent   `json:"intent,omitempty"` // Set on assistant turns
	At       time.Time `json:"at"`
}
