// Package respond maps a resolved intent (and optionally a role and the
// message's vehicle cluster) to response text.
package respond

import (
	"fmt"

	"github.com/ppiankov/evadvisor/internal/intent"
	"github.com/ppiankov/evadvisor/internal/model"
)

// Response is the selector's answer for one message
type Response struct {
	Text    string
	Cluster model.Cluster
	// Fallback is set when the lookup had no entry and the unknown entry
	// answered instead
	Fallback bool
}

// Selector picks a response from the intent or role tables
type Selector struct {
	intents  map[model.Intent]Entry
	roles    map[model.Role]map[model.Cluster]Entry
	clusters *intent.ClusterMatcher
	fallback Entry
}

// NewSelector creates a selector over the default tables
func NewSelector() *Selector {
	return NewSelectorWithTables(DefaultIntentTable(), DefaultRoleTable(), intent.NewClusterMatcher(nil))
}

// NewSelectorWithTables creates a selector over custom tables. The unknown
// intent's entry is the fallback for any missing cell.
func NewSelectorWithTables(intents map[model.Intent]Entry, roles map[model.Role]map[model.Cluster]Entry, clusters *intent.ClusterMatcher) *Selector {
	fallback, ok := intents[model.IntentUnknown]
	if !ok || !fallback.defined() {
		fallback = Static(HelpText)
	}
	if clusters == nil {
		clusters = intent.NewClusterMatcher(nil)
	}
	return &Selector{
		intents:  intents,
		roles:    roles,
		clusters: clusters,
		fallback: fallback,
	}
}

// Respond selects the response for a message. With role == RoleNone the
// intent table answers; otherwise the role x cluster table does and the
// intent is ignored.
func (s *Selector) Respond(in model.Intent, message string, role model.Role) Response {
	cluster := s.clusters.Match(message)

	var entry Entry
	var ok bool
	if role == model.RoleNone {
		entry, ok = s.intents[in]
	} else {
		entry, ok = s.roles[role][cluster]
	}

	if !ok || !entry.defined() {
		return Response{Text: s.fallback.Render(message), Cluster: cluster, Fallback: true}
	}
	return Response{Text: entry.Render(message), Cluster: cluster}
}

// Verify checks that every reachable (intent) and (role, cluster) cell is
// defined and renders non-empty text
func (s *Selector) Verify() error {
	for _, in := range model.Intents() {
		entry, ok := s.intents[in]
		if !ok || !entry.defined() {
			return fmt.Errorf("no response for intent %s", in)
		}
		if entry.Render("") == "" {
			return fmt.Errorf("empty response for intent %s", in)
		}
	}

	for _, role := range model.Roles() {
		for _, cluster := range model.Clusters() {
			entry, ok := s.roles[role][cluster]
			if !ok || !entry.defined() {
				return fmt.Errorf("no response for role %s, %s", role, cluster)
			}
			if entry.Render("") == "" {
				return fmt.Errorf("empty response for role %s, %s", role, cluster)
			}
		}
	}

	return nil
}
