// Package intent resolves a free-text message to exactly one intent label.
//
// Two strategies share one contract:
//  1. RuleResolver: ordered substring keywords, first match wins
//  2. LearnedResolver: TF-IDF + multinomial logistic regression, arg-max
//
// Both always return a member of the enumeration; unmatched input maps to
// model.IntentUnknown.
package intent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/evadvisor/internal/classify"
	"github.com/ppiankov/evadvisor/internal/model"
)

// ErrUnknownMode is returned by NewResolver for an unsupported mode
var ErrUnknownMode = errors.New("unknown resolver mode")

// Resolution is the outcome of resolving one message
type Resolution struct {
	Intent     model.Intent
	Source     model.Source
	Trigger    string  // Rule mode: the substring that fired
	Confidence float64 // Learned mode: probability of Intent
}

// Resolver maps a raw message to an intent
type Resolver interface {
	Resolve(message string) Resolution
}

// RuleResolver resolves intents with an ordered keyword table
type RuleResolver struct {
	rules *RuleSet[model.Intent]
}

// NewRuleResolver creates a rule resolver; nil rules selects the default table
func NewRuleResolver(rules *RuleSet[model.Intent]) *RuleResolver {
	if rules == nil {
		rules = DefaultIntentRules()
	}
	return &RuleResolver{rules: rules}
}

// Resolve returns the first rule that fires, or the fallback intent
func (r *RuleResolver) Resolve(message string) Resolution {
	label, trigger, ok := r.rules.Match(Normalize(message))
	if !ok {
		return Resolution{Intent: label, Source: model.SourceFallback}
	}
	return Resolution{Intent: label, Source: model.SourceRules, Trigger: trigger}
}

// LearnedResolver resolves intents with a trained classifier.
// The model is injected and never retrained.
type LearnedResolver struct {
	model         *classify.Model
	minConfidence float64
}

// NewLearnedResolver wraps a trained model. Predictions with probability
// below minConfidence resolve to the fallback intent.
func NewLearnedResolver(m *classify.Model, minConfidence float64) *LearnedResolver {
	return &LearnedResolver{model: m, minConfidence: minConfidence}
}

// Resolve returns the arg-max label. A message with no in-vocabulary term
// carries no evidence and resolves to the fallback intent.
func (r *LearnedResolver) Resolve(message string) Resolution {
	pred := r.model.Predict(Normalize(message))
	if pred.Known == 0 || pred.Confidence < r.minConfidence || !pred.Intent.Valid() {
		return Resolution{Intent: model.IntentUnknown, Source: model.SourceFallback, Confidence: pred.Confidence}
	}
	return Resolution{Intent: pred.Intent, Source: model.SourceLearned, Confidence: pred.Confidence}
}

// NewResolver creates a resolver for the configured mode. The learned mode
// requires a model; the rules mode ignores it.
func NewResolver(cfg model.ResolverConfig, m *classify.Model) (Resolver, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))

	switch mode {
	case model.ModeRules, "":
		return NewRuleResolver(nil), nil

	case model.ModeLearned:
		if m == nil {
			return nil, fmt.Errorf("learned resolver requires a trained model")
		}
		return NewLearnedResolver(m, cfg.MinConfidence), nil

	default:
		return nil, fmt.Errorf("%w: %s (supported: rules, learned)", ErrUnknownMode, cfg.Mode)
	}
}

// ClusterMatcher assigns a coarse vehicle segment with the same
// first-match policy as RuleResolver, over its own table
type ClusterMatcher struct {
	rules *RuleSet[model.Cluster]
}

// NewClusterMatcher creates a matcher; nil rules selects the default table
func NewClusterMatcher(rules *RuleSet[model.Cluster]) *ClusterMatcher {
	if rules == nil {
		rules = DefaultClusterRules()
	}
	return &ClusterMatcher{rules: rules}
}

// Match returns the cluster for a raw message
func (c *ClusterMatcher) Match(message string) model.Cluster {
	return c.rules.Resolve(message)
}
