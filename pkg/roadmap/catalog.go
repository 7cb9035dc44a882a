package roadmap

import (
	"fmt"

	"github.com/esgcopilot/esgcore/pkg/scoring"
)

// CatalogVersion identifies the action catalog shipped with this package.
const CatalogVersion = "2024.1"

var catalog = []Action{
	// Environmental
	{
		ID: "E001", Category: scoring.Environmental, Priority: PriorityHigh, Effort: EffortLow, Timeline: "Q1",
		Title:       "Switch to 100% renewable electricity tariff",
		Description: "Contract a certified renewable electricity tariff (Guarantees of Origin / RECs). No infrastructure required; the fastest way to reduce Scope 2 emissions.",
		SmartGoal:   "Source 100% of purchased electricity from certified renewable tariffs by the end of Q1.",
		Steps: []string{
			"Request renewable tariff quotes from current and alternative suppliers",
			"Verify Guarantees of Origin certification",
			"Sign the contract and update the Scope 2 market-based calculation",
		},
		KPIs:                     []string{"Renewable electricity %", "Scope 2 CO2e tonnes"},
		EstimatedCO2ReductionPct: 12, ScoreImprovementPts: 12,
	},
	{
		ID: "E002", Category: scoring.Environmental, Priority: PriorityHigh, Effort: EffortMedium, Timeline: "Q2",
		Title:       "Set a science-based GHG reduction target",
		Description: "Commit to a measurable reduction target aligned with a 1.5°C pathway. Register with SBTi or document an internally validated target with a base year.",
		SmartGoal:   "Publish a board-approved 1.5°C-aligned reduction target with a base year and target year by the end of Q2.",
		Steps: []string{
			"Fix the base year and baseline inventory",
			"Model a reduction pathway for Scope 1, 2 and material Scope 3",
			"Obtain board approval and publish the target",
		},
		KPIs:                []string{"Target reduction % vs base year", "Target year", "Baseline tCO2e"},
		ScoreImprovementPts: 15,
	},
	{
		ID: "E003", Category: scoring.Environmental, Priority: PriorityMedium, Effort: EffortMedium, Timeline: "Q1",
		Title:       "Commission an energy efficiency audit",
		Description: "Engage an accredited energy auditor (required under the EU Energy Efficiency Directive for large companies). Typically reveals 10–25% energy savings opportunities.",
		SmartGoal:   "Complete an accredited energy audit of all sites and adopt a savings plan by the end of Q1.",
		Steps: []string{
			"Select an accredited energy auditor",
			"Provide twelve months of meter data",
			"Prioritise the recommended measures by payback",
		},
		KPIs:                     []string{"Energy intensity kWh/€M revenue", "Savings identified kWh/year"},
		EstimatedCO2ReductionPct: 8,
	},
	{
		ID: "E004", Category: scoring.Environmental, Priority: PriorityHigh, Effort: EffortLow, Timeline: "Q1",
		Title:       "Document a waste management policy",
		Description: "Identify and document waste streams, set recycling targets, assign responsibility. Required by most ESG frameworks and CSRD ESRS E5.",
		SmartGoal:   "Adopt a written waste policy with a 50% recycling target and a named owner by the end of Q1.",
		Steps: []string{
			"Map waste streams and current contractors",
			"Set recycling targets per stream",
			"Assign an owner and publish the policy",
		},
		KPIs:                []string{"Waste recycled %", "Total waste generated kg"},
		ScoreImprovementPts: 5,
	},
	{
		ID: "E005", Category: scoring.Environmental, Priority: PriorityMedium, Effort: EffortLow, Timeline: "Q1",
		Title:       "Implement a business travel policy (virtual-first)",
		Description: "Mandate video calls as default and require approval for air travel. Set an annual CO2 budget per employee for travel.",
		SmartGoal:   "Reduce air travel emissions per employee by 20% within twelve months under a virtual-first policy.",
		Steps: []string{
			"Draft the virtual-first travel policy",
			"Introduce pre-approval for flights",
			"Report travel CO2 against budget each quarter",
		},
		KPIs:                     []string{"Air travel km per employee", "Travel Scope 3 tCO2e"},
		EstimatedCO2ReductionPct: 5,
	},
	{
		ID: "E006", Category: scoring.Environmental, Priority: PriorityLow, Effort: EffortHigh, Timeline: "Q4",
		Title:       "Assess on-site renewable energy (solar PV)",
		Description: "Get a feasibility assessment for rooftop solar. Reduces Scope 2 and energy costs over the long term.",
		SmartGoal:   "Obtain a solar PV feasibility study with a payback estimate for the main site by the end of Q4.",
		Steps: []string{
			"Request feasibility studies from two installers",
			"Assess roof suitability and grid connection",
			"Decide on investment based on payback",
		},
		KPIs:                     []string{"On-site renewable generation kWh", "Payback period years"},
		EstimatedCO2ReductionPct: 6,
	},
	{
		ID: "E007", Category: scoring.Environmental, Priority: PriorityMedium, Effort: EffortLow, Timeline: "Q2",
		Title:       "Introduce a water use policy",
		Description: "Document water consumption, set a reduction target, and implement basic water efficiency measures. Required for CSRD ESRS E3.",
		SmartGoal:   "Adopt a water policy with a 10% consumption reduction target by the end of Q2.",
		Steps: []string{
			"Collect twelve months of water bills",
			"Set a reduction target",
			"Install basic efficiency measures",
		},
		KPIs:                []string{"Water consumption m³/year", "Water intensity m³/€M revenue"},
		ScoreImprovementPts: 3,
	},

	// Social
	{
		ID: "S001", Category: scoring.Social, Priority: PriorityHigh, Effort: EffortMedium, Timeline: "Q1",
		Title:       "Implement a formal Health & Safety policy",
		Description: "Document H&S procedures, conduct workplace risk assessments, establish incident reporting. Required under the EU OSH Framework Directive and CSRD ESRS S1.",
		SmartGoal:   "Adopt a written H&S policy, complete risk assessments for all roles and start LTIR tracking by the end of Q1.",
		Steps: []string{
			"Run workplace risk assessments",
			"Document procedures and the incident reporting process",
			"Start monthly lost-time injury tracking",
		},
		KPIs:                []string{"Lost time injury rate (LTIR)", "Near-miss reports", "H&S training hours"},
		ScoreImprovementPts: 20,
	},
	{
		ID: "S002", Category: scoring.Social, Priority: PriorityHigh, Effort: EffortMedium, Timeline: "Q2",
		Title:       "Launch a structured employee training programme",
		Description: "Implement onboarding, role-specific training, and annual professional development. Target minimum 20 hours per employee per year.",
		SmartGoal:   "Deliver at least 20 training hours per employee within twelve months of launch.",
		Steps: []string{
			"Define role-specific training plans",
			"Set up a training log",
			"Review hours per employee every quarter",
		},
		KPIs:                []string{"Avg training hours per employee/year", "Employee satisfaction score"},
		ScoreImprovementPts: 12,
	},
	{
		ID: "S003", Category: scoring.Social, Priority: PriorityMedium, Effort: EffortLow, Timeline: "Q2",
		Title:       "Adopt a Diversity & Inclusion policy",
		Description: "Write and publish a D&I policy, set gender representation targets for management (minimum 30% target), and track progress annually.",
		SmartGoal:   "Publish a D&I policy with a 30% female management target by the end of Q2.",
		Steps: []string{
			"Baseline gender representation by level",
			"Set representation targets",
			"Publish the policy and run a pay gap analysis",
		},
		KPIs:                []string{"Female management %", "D&I policy in place", "Pay gap analysis"},
		ScoreImprovementPts: 15,
	},
	{
		ID: "S004", Category: scoring.Social, Priority: PriorityMedium, Effort: EffortMedium, Timeline: "Q3",
		Title:       "Conduct a living wage assessment",
		Description: "Benchmark all roles against the local living wage. Document and commit to paying above minimum living wage thresholds.",
		SmartGoal:   "Benchmark 100% of roles against the local living wage and publish a commitment by the end of Q3.",
		Steps: []string{
			"Collect local living wage benchmarks",
			"Compare every role against the benchmark",
			"Close gaps and publish the commitment",
		},
		KPIs:                []string{"% employees paid at/above living wage"},
		ScoreImprovementPts: 8,
	},

	// Governance
	{
		ID: "G001", Category: scoring.Governance, Priority: PriorityHigh, Effort: EffortLow, Timeline: "Q1",
		Title:       "Publish a formal ESG policy",
		Description: "Document the company's ESG commitments, governance structure, targets, and reporting approach. Foundation for all ESG frameworks.",
		SmartGoal:   "Publish a board-approved ESG policy on the company website by the end of Q1.",
		Steps: []string{
			"Draft commitments, responsibilities and targets",
			"Obtain board approval",
			"Publish the policy",
		},
		KPIs:                []string{"ESG policy published", "Policy approved by board"},
		ScoreImprovementPts: 15,
	},
	{
		ID: "G002", Category: scoring.Governance, Priority: PriorityHigh, Effort: EffortLow, Timeline: "Q1",
		Title:       "Adopt a Code of Conduct",
		Description: "Develop a company-wide Code of Conduct covering ethics, conflicts of interest, anti-corruption, and business conduct. Required for CSRD ESRS G1.",
		SmartGoal:   "Adopt a Code of Conduct signed by 100% of employees by the end of Q1.",
		Steps: []string{
			"Draft the code covering ethics, conflicts of interest and anti-corruption",
			"Approve and publish internally",
			"Collect employee sign-off",
		},
		KPIs:                []string{"Code of conduct published", "Employee sign-off %"},
		ScoreImprovementPts: 10,
	},
	{
		ID: "G003", Category: scoring.Governance, Priority: PriorityHigh, Effort: EffortMedium, Timeline: "Q1",
		Title:       "Implement a GDPR-compliant data privacy policy",
		Description: "Audit all data processing activities, complete a Record of Processing Activities (ROPA), and publish a GDPR-compliant privacy policy.",
		SmartGoal:   "Complete the ROPA and publish a GDPR-compliant privacy policy by the end of Q1.",
		Steps: []string{
			"Inventory personal data processing",
			"Complete the ROPA and DPIAs for high-risk processing",
			"Publish the privacy policy",
		},
		KPIs:                []string{"Privacy policy published", "ROPA completed", "DPIA for high-risk processing"},
		ScoreImprovementPts: 30,
	},
	{
		ID: "G004", Category: scoring.Governance, Priority: PriorityMedium, Effort: EffortLow, Timeline: "Q2",
		Title:       "Assign board-level ESG responsibility",
		Description: "Name a board sponsor for ESG. Include ESG performance on board meeting agendas at least twice per year.",
		SmartGoal:   "Name a board ESG sponsor and hold two ESG board agenda items within twelve months.",
		Steps: []string{
			"Nominate a board sponsor",
			"Add ESG to the board agenda calendar",
		},
		KPIs:                []string{"ESG board sponsor named", "ESG board agenda items per year"},
		ScoreImprovementPts: 5,
	},
	{
		ID: "G005", Category: scoring.Governance, Priority: PriorityMedium, Effort: EffortMedium, Timeline: "Q3",
		Title:       "Implement a supplier code of conduct",
		Description: "Create a supplier CoC covering environmental requirements, labour standards, and anti-corruption. Required for CSRD supply chain due diligence.",
		SmartGoal:   "Have the top 80% of suppliers by spend sign the supplier code of conduct by the end of Q3.",
		Steps: []string{
			"Draft the supplier code",
			"Rank suppliers by spend",
			"Collect signatures and ESG questionnaires",
		},
		KPIs:                []string{"Suppliers signed CoC %", "Supplier ESG questionnaires completed"},
		ScoreImprovementPts: 10,
	},
}

// DefaultCatalog returns a copy of the built-in action catalog.
func DefaultCatalog() []Action {
	out := make([]Action, len(catalog))
	for i, a := range catalog {
		out[i] = a.clone()
	}
	return out
}

// ValidateCatalog checks that every action has a known category, priority,
// effort and quarter.
func ValidateCatalog(actions []Action) error {
	quarters := make(map[string]bool, len(Quarters))
	for _, q := range Quarters {
		quarters[q] = true
	}
	for _, a := range actions {
		if a.ID == "" {
			return fmt.Errorf("action %q: missing id", a.Title)
		}
		switch a.Category {
		case scoring.Environmental, scoring.Social, scoring.Governance:
		default:
			return fmt.Errorf("action %s: unknown category %q", a.ID, a.Category)
		}
		switch a.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return fmt.Errorf("action %s: unknown priority %q", a.ID, a.Priority)
		}
		switch a.Effort {
		case EffortLow, EffortMedium, EffortHigh:
		default:
			return fmt.Errorf("action %s: unknown effort %q", a.ID, a.Effort)
		}
		if !quarters[a.Timeline] {
			return fmt.Errorf("action %s: unknown timeline %q", a.ID, a.Timeline)
		}
	}
	return nil
}
