package intent

import "strings"

// Normalize lower-cases a message. Nothing else is stripped: no stemming,
// no punctuation removal, keywords match as raw substrings.
func Normalize(message string) string {
	return strings.ToLower(message)
}

// Rule maps a set of trigger substrings to a label. When Then is set, a hit
// on this rule is refined by the nested set instead of returning Label.
type Rule[L comparable] struct {
	Label    L
	Triggers []string
	Then     *RuleSet[L]
}

// RuleSet is an ordered list of rules with a fallback label.
// The first rule with any trigger present wins; declaration order is the
// only tie-break between rules.
type RuleSet[L comparable] struct {
	Rules    []Rule[L]
	Fallback L
}

// Match returns the label of the first rule that fires on an already
// normalized message, the trigger that fired it, and whether any rule fired.
func (s *RuleSet[L]) Match(normalized string) (L, string, bool) {
	for _, rule := range s.Rules {
		trigger, hit := rule.fires(normalized)
		if !hit {
			continue
		}
		if rule.Then != nil {
			if label, nested, ok := rule.Then.Match(normalized); ok {
				return label, nested, true
			}
			return rule.Then.Fallback, trigger, true
		}
		return rule.Label, trigger, true
	}
	return s.Fallback, "", false
}

// Resolve is Match with the fallback folded in
func (s *RuleSet[L]) Resolve(message string) L {
	label, _, _ := s.Match(Normalize(message))
	return label
}

// Labels returns every label the set can produce, fallback included
func (s *RuleSet[L]) Labels() []L {
	seen := make(map[L]bool)
	var labels []L
	add := func(l L) {
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}

	var walk func(*RuleSet[L])
	walk = func(rs *RuleSet[L]) {
		for _, r := range rs.Rules {
			if r.Then != nil {
				walk(r.Then)
				continue
			}
			add(r.Label)
		}
		add(rs.Fallback)
	}
	walk(s)

	return labels
}

func (r Rule[L]) fires(normalized string) (string, bool) {
	for _, trigger := range r.Triggers {
		if strings.Contains(normalized, trigger) {
			return trigger, true
		}
	}
	return "", false
}
