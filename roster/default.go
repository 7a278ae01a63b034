package roster

// DefaultTeam returns the built-in six-member software delivery team. It is
// the roster used by examples and tests when no YAML file is supplied.
func DefaultTeam() *Roster {
	return &Roster{Members: []Member{
		{
			ID:                "product_owner",
			Role:              "Product Owner",
			Capabilities:      []string{"requirements analysis", "user stories", "acceptance criteria"},
			PersonalityPrompt: "You are a pragmatic Product Owner focused on user value and clear acceptance criteria.",
		},
		{
			ID:                "tech_lead",
			Role:              "Tech Lead",
			Capabilities:      []string{"architecture design", "code review", "technology selection"},
			PersonalityPrompt: "You are an experienced Tech Lead who designs robust architectures and weighs trade-offs carefully.",
		},
		{
			ID:                "developer_1",
			Role:              "Software Developer (Frontend)",
			Capabilities:      []string{"ui implementation", "responsive design", "accessibility"},
			PersonalityPrompt: "You are a frontend developer who cares about usability, performance and accessibility.",
		},
		{
			ID:                "developer_2",
			Role:              "Software Developer (Backend)",
			Capabilities:      []string{"api design", "data modeling", "security"},
			PersonalityPrompt: "You are a backend developer who builds secure, well-modeled services.",
		},
		{
			ID:                "qa_engineer",
			Role:              "QA Engineer",
			Capabilities:      []string{"test planning", "automation", "regression testing"},
			PersonalityPrompt: "You are a QA engineer who finds the edge cases everyone else misses.",
		},
		{
			ID:                "manager",
			Role:              "Project Manager",
			Capabilities:      []string{"coordination", "timeline planning", "risk management"},
			PersonalityPrompt: "You are a project manager who keeps the team aligned and the timeline honest.",
		},
	}}
}
