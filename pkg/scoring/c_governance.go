package scoring

// FlagCriterion awards full points when a yes/no answer is satisfied and none
// otherwise. Governance criteria and fair wages are flags.
type FlagCriterion struct {
	CriterionKey  string
	CriterionName string
	Pillar        Category
	MaxPoints     float64
	Satisfied     func(*Input) bool
	Met           string // detail when satisfied
	Missing       string // gap when not satisfied
}

func (c *FlagCriterion) Key() string        { return c.CriterionKey }
func (c *FlagCriterion) Name() string       { return c.CriterionName }
func (c *FlagCriterion) Category() Category { return c.Pillar }
func (c *FlagCriterion) Max() float64       { return c.MaxPoints }

func (c *FlagCriterion) Evaluate(in *Input) CriterionResult {
	if c.Satisfied(in) {
		return newResult(c, 1, c.Met, "")
	}
	return newResult(c, 0, c.Missing, c.Missing)
}

func governanceCriteria(w Weights) []Criterion {
	flag := func(key, name string, ok func(*Input) bool, met, missing string) Criterion {
		return &FlagCriterion{
			CriterionKey:  key,
			CriterionName: name,
			Pillar:        Governance,
			MaxPoints:     w[key],
			Satisfied:     ok,
			Met:           met,
			Missing:       missing,
		}
	}

	return []Criterion{
		flag(KeyESGPolicy, "ESG policy",
			func(in *Input) bool { return in.HasESGPolicy },
			"ESG policy published", "No formal ESG policy"),
		flag(KeyCodeOfConduct, "Code of conduct",
			func(in *Input) bool { return in.HasCodeOfConduct },
			"Code of conduct adopted", "No code of conduct"),
		flag(KeyAntiCorruption, "Anti-corruption",
			func(in *Input) bool { return in.HasAntiCorruptionPolicy },
			"Anti-corruption policy in place", "No anti-corruption and bribery policy"),
		flag(KeyDataPrivacy, "Data privacy",
			func(in *Input) bool { return in.HasDataPrivacyPolicy },
			"GDPR data privacy policy in place", "No GDPR-compliant data privacy policy"),
		flag(KeyBoardOversight, "Board oversight",
			func(in *Input) bool { return in.HasBoardESGOversight },
			"Board-level ESG oversight assigned", "No board-level ESG oversight"),
		flag(KeyESGReporting, "ESG reporting",
			func(in *Input) bool { return in.ESGReportingYear != nil && *in.ESGReportingYear > 0 },
			"Prior ESG reporting", "No prior ESG reporting year"),
		flag(KeySupplyChain, "Supply chain",
			func(in *Input) bool { return in.SupplyChainCodeOfConduct },
			"Supplier code of conduct in place", "No supplier code of conduct"),
	}
}
