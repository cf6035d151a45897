package model

import (
	"fmt"
	"strings"
)

// Intent is the discrete purpose category assigned to a user message
type Intent uint8

const (
	IntentUnknown        Intent = iota // Fallback for messages nothing else claims
	IntentGreeting                     // Hello / opening of a conversation
	IntentRecommendation               // Which EV should I buy
	IntentPolicy                       // Government, incentives, infrastructure
	IntentFleet                        // Company fleet transition
	IntentSelling                      // Selling or trading in a vehicle
	IntentFarewell                     // Goodbye / thanks
)

var intentNames = [...]string{
	IntentUnknown:        "unknown",
	IntentGreeting:       "greeting",
	IntentRecommendation: "recommendation",
	IntentPolicy:         "policy",
	IntentFleet:          "fleet",
	IntentSelling:        "selling",
	IntentFarewell:       "farewell",
}

// Intents returns the closed enumeration in declaration order
func Intents() []Intent {
	return []Intent{
		IntentUnknown,
		IntentGreeting,
		IntentRecommendation,
		IntentPolicy,
		IntentFleet,
		IntentSelling,
		IntentFarewell,
	}
}

// Valid reports whether i is a member of the enumeration
func (i Intent) Valid() bool {
	return int(i) < len(intentNames)
}

func (i Intent) String() string {
	if !i.Valid() {
		return fmt.Sprintf("intent(%d)", uint8(i))
	}
	return intentNames[i]
}

// MarshalText encodes the intent by name
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText decodes an intent name
func (i *Intent) UnmarshalText(b []byte) error {
	parsed, err := ParseIntent(string(b))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ParseIntent parses an intent name. "general" is accepted for the fallback
// label, which is what older keyword tables called it.
func ParseIntent(s string) (Intent, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "general" {
		return IntentUnknown, nil
	}
	for i, n := range intentNames {
		if n == name {
			return Intent(i), nil
		}
	}
	return IntentUnknown, fmt.Errorf("unknown intent: %q", s)
}

// TrainingExample is one labelled phrase of the static training corpus
type TrainingExample struct {
	Intent Intent `json:"intent"`
	Phrase string `json:"phrase"`
}
