package respond

import (
	"github.com/ppiankov/evadvisor/internal/intent"
	"github.com/ppiankov/evadvisor/internal/model"
)

// Response texts. Vehicle names, ranges and prices are fixed copy.
const (
	HelpText = "Hi! I'm your EV assistant. Ask me about EV models, prices, range, fleets, or policy suggestions."

	PolicyText = "Governments should focus on charging infrastructure, battery recycling incentives, and phasing out fossil subsidies."
	FleetText  = "Fleet managers should prioritize BEVs with high uptime and low cost of ownership, such as the Tesla Model Y or Kia EV6."

	GreetingText = "Hello! I can help you pick an EV, plan a fleet transition, or review EV policy. What would you like to know?"
	SellingText  = "EVs like the Tesla Model 3 hold their resale value well. Compare a dealership trade-in quote with private-sale listings before you sell."
	FarewellText = "Thanks for chatting! Come back any time you have EV questions."

	RangeText    = "I recommend the Tesla Model 3 Long Range (~358 miles) or Hyundai Ioniq 6 (~361 miles). Both are ideal for distance driving."
	BudgetText   = "Consider the Nissan Leaf, Chevy Bolt, or Hyundai Kona Electric — all are priced under $40,000 and perform well for everyday use."
	FamilyText   = "Try the Tesla Model Y or Kia EV6. Both offer great space and safety for families."
	PHEVText     = "Plug-in hybrids like the Chrysler Pacifica or Toyota Prius Prime are good for mixed use but have limited electric range."
	CompactText  = "The Mini Electric or Fiat 500e are compact and ideal for city driving."
	BalancedText = "For a balanced option, Tesla Model 3 offers great range, performance, and value in the EV space."

	PolicyPHEVPhaseoutText = "Phase out PHEV subsidies and redirect them to full BEV incentives: most PHEVs in this segment, like the Pacifica, deliver only a short electric range."
)

// DefaultRecommendationRules returns the recommendation sub-branch table.
// Labels are the response texts themselves.
func DefaultRecommendationRules() *intent.RuleSet[string] {
	return &intent.RuleSet[string]{
		Rules: []intent.Rule[string]{
			{Label: RangeText, Triggers: []string{"long range", "200", "high range"}},
			{Label: BudgetText, Triggers: []string{"cheap", "affordable", "under 40k", "under $40k", "budget"}},
			{Label: FamilyText, Triggers: []string{"family", "big"}},
			{Label: PHEVText, Triggers: []string{"phev"}},
			{Label: CompactText, Triggers: []string{"small"}},
		},
		Fallback: BalancedText,
	}
}

// DefaultIntentTable returns the response for each intent
func DefaultIntentTable() map[model.Intent]Entry {
	recommendations := DefaultRecommendationRules()

	return map[model.Intent]Entry{
		model.IntentUnknown:        Static(HelpText),
		model.IntentGreeting:       Static(GreetingText),
		model.IntentRecommendation: Templated(recommendations.Resolve),
		model.IntentPolicy:         Static(PolicyText),
		model.IntentFleet:          Static(FleetText),
		model.IntentSelling:        Static(SellingText),
		model.IntentFarewell:       Static(FarewellText),
	}
}

// DefaultRoleTable returns the role x cluster responses. The general column
// of every role is the help text.
func DefaultRoleTable() map[model.Role]map[model.Cluster]Entry {
	return map[model.Role]map[model.Cluster]Entry{
		model.RoleConsumer: {
			model.Cluster0:       Static("Legacy BEVs like the Tesla Model 3 offer proven range and strong resale value, a solid pick if you buy used."),
			model.Cluster1:       Static("PHEVs like the Chrysler Pacifica suit short daily commutes, with a petrol engine as backup for longer trips."),
			model.Cluster2:       Static("Modern BEVs like the Tesla Model Y give you the best performance and access to the newest charging networks."),
			model.ClusterGeneral: Static(HelpText),
		},
		model.RolePolicymaker: {
			model.Cluster0:       Static("Legacy BEVs dominate the used market: support battery health certification and second-life battery recycling programs."),
			model.Cluster1:       Static(PolicyPHEVPhaseoutText),
			model.Cluster2:       Static("Modern BEVs depend on fast charging: prioritize public charging infrastructure and grid upgrades along highway corridors."),
			model.ClusterGeneral: Static(HelpText),
		},
		model.RoleFleetManager: {
			model.Cluster0:       Static("Legacy BEVs like the Tesla Model 3 make cost-effective pool cars with 200+ mile range and low maintenance."),
			model.Cluster1:       Static("PHEVs like the Pacifica work for short-range urban fleet routes; plan the move to BEVs as depot charging comes online."),
			model.Cluster2:       Static("Modern BEVs like the Tesla Model Y or Kia EV6 offer high uptime and low cost of ownership for fleet duty."),
			model.ClusterGeneral: Static(HelpText),
		},
		model.RoleDealer: {
			model.Cluster0:       Static("Legacy BEVs like the Tesla Model 3 keep strong resale demand; price certified pre-owned stock competitively."),
			model.Cluster1:       Static("PHEV demand softens as incentives shift to BEVs; move Pacifica-class inventory with trade-in offers."),
			model.Cluster2:       Static("Modern BEVs like the Tesla Model Y are in demand; keep demo units available and highlight charging access."),
			model.ClusterGeneral: Static(HelpText),
		},
	}
}
