package insights

// MockReport is the canned analysis used in demo mode, when no backend
// is reachable.
var MockReport = Report{
	Verdict:    VerdictMaybe,
	Confidence: 62,
	Problem: Dimension{
		Score:     7.5,
		Label:     "Real but tolerated",
		Reasoning: "The customer loses roughly two hours a week to manual spreadsheet work and calls it annoying, yet has never budgeted time or money to fix it.",
	},
	Market: Dimension{
		Score:     5.0,
		Label:     "Crowded, fragmented",
		Reasoning: "Several incumbents already serve adjacent workflows; differentiation rests entirely on the simplicity claim, which every incumbent also makes.",
	},
	WillingnessToPay: Dimension{
		Score:     3.5,
		Label:     "Weak",
		Reasoning: "No past spending on alternatives and an explicit 'too busy to learn a new system' objection suggest switching costs outweigh the felt pain.",
	},
	PositiveSignals: []string{
		"Concrete, recurring time cost named without prompting",
		"Frustration with tool fragmentation across the team",
		"Clear articulation of the desired outcome",
	},
	RiskSignals: []string{
		"Current alternative is 'fine' in the customer's own words",
		"No evidence of an active search for a solution",
		"Learning-curve objection raised before price was mentioned",
	},
	ExecutionChallenges: []string{
		"Onboarding must be near-zero effort to beat the spreadsheet",
		"Incumbent switching costs compound with team size",
	},
	NextSteps: []string{
		"Interview five more people who recently churned off a competitor",
		"Test a concierge pilot that removes setup work entirely",
		"Probe for budget by asking what they last paid to save time",
	},
	Quotes: []string{
		"Honestly? Just Excel spreadsheets. It's fine.",
		"Maybe 2 hours? It's annoying but I'm too busy to learn a new system right now.",
	},
}
