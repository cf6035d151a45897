package intent

import "github.com/ppiankov/evadvisor/internal/model"

// DefaultIntentRules returns the intent keyword table.
// Order is significant: "buy" wins over "fleet" in "buy for our fleet".
func DefaultIntentRules() *RuleSet[model.Intent] {
	return &RuleSet[model.Intent]{
		Rules: []Rule[model.Intent]{
			{Label: model.IntentRecommendation, Triggers: []string{"recommend", "best", "buy", "choose", "under"}},
			{Label: model.IntentPolicy, Triggers: []string{"policy", "infrastructure", "government"}},
			{Label: model.IntentFleet, Triggers: []string{"fleet", "replace", "upgrade"}},
			{Label: model.IntentSelling, Triggers: []string{"sell", "resale", "trade-in", "trade in", "dealership"}},
			{Label: model.IntentGreeting, Triggers: []string{"hello", "good morning", "good afternoon", "good evening", "howdy"}},
			{Label: model.IntentFarewell, Triggers: []string{"goodbye", "bye", "see you", "thank"}},
		},
		Fallback: model.IntentUnknown,
	}
}

// DefaultClusterRules returns the vehicle-segment table. A bare mention of
// "range" is refined by what else the message says about it.
func DefaultClusterRules() *RuleSet[model.Cluster] {
	return &RuleSet[model.Cluster]{
		Rules: []Rule[model.Cluster]{
			{Label: model.Cluster2, Triggers: []string{"model y", "modern"}},
			{Label: model.Cluster0, Triggers: []string{"model 3", "older", "2018"}},
			{Label: model.Cluster1, Triggers: []string{"pacifica", "phev", "short range"}},
			{
				Triggers: []string{"range"},
				Then: &RuleSet[model.Cluster]{
					Rules: []Rule[model.Cluster]{
						{Label: model.Cluster0, Triggers: []string{"200", "long"}},
						{Label: model.Cluster1, Triggers: []string{"30", "short"}},
					},
					Fallback: model.Cluster2,
				},
			},
		},
		Fallback: model.ClusterGeneral,
	}
}
