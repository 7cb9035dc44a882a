package submission

import "math"

// Section names in reporting order.
const (
	SectionEnergy      = "energy"
	SectionTravel      = "travel"
	SectionProcurement = "procurement"
	SectionPolicies    = "policies"
)

// Sections lists the submission sections in reporting order.
var Sections = []string{SectionEnergy, SectionTravel, SectionProcurement, SectionPolicies}

// SectionStatus reports whether a section is complete and what is missing.
type SectionStatus struct {
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

// Completeness is the readiness of a submission for report generation. Energy
// and policy data are required; travel and procurement are recommended.
type Completeness struct {
	IsComplete     bool                     `json:"is_complete"`
	CompletionPct  int                      `json:"completion_pct"`
	Sections       map[string]SectionStatus `json:"sections"`
	BlockingIssues []string                 `json:"blocking_issues"`
}

// Completeness checks which sections are filled in.
func (s *Submission) Completeness() Completeness {
	c := Completeness{
		Sections:       make(map[string]SectionStatus, len(Sections)),
		BlockingIssues: []string{},
	}

	energy := SectionStatus{Missing: []string{}}
	switch {
	case s.Energy == nil:
		energy.Missing = append(energy.Missing, "No energy data entered")
		c.BlockingIssues = append(c.BlockingIssues, "Energy data is required: at minimum, electricity consumption (kWh)")
	case s.Energy.total() == 0:
		energy.Missing = append(energy.Missing, "All energy inputs are zero: enter at least electricity_kwh")
		c.BlockingIssues = append(c.BlockingIssues, "At least one energy source must be non-zero")
	}
	energy.Complete = len(energy.Missing) == 0
	c.Sections[SectionEnergy] = energy

	travel := SectionStatus{Complete: s.Travel != nil, Missing: []string{}}
	if s.Travel == nil {
		travel.Missing = append(travel.Missing, "No travel data entered (Scope 3 Cat 6 and Cat 7 will be zero)")
	}
	c.Sections[SectionTravel] = travel

	procurement := SectionStatus{Complete: s.Procurement != nil, Missing: []string{}}
	if s.Procurement == nil {
		procurement.Missing = append(procurement.Missing, "No procurement data entered (Scope 3 Cat 1 will be zero)")
	}
	c.Sections[SectionProcurement] = procurement

	policies := SectionStatus{Complete: s.Policies != nil, Missing: []string{}}
	if s.Policies == nil {
		policies.Missing = append(policies.Missing, "No policy answers entered: ESG score will be minimal")
		c.BlockingIssues = append(c.BlockingIssues, "Policy questionnaire is required for ESG scoring")
	}
	c.Sections[SectionPolicies] = policies

	complete := 0
	for _, st := range c.Sections {
		if st.Complete {
			complete++
		}
	}
	c.CompletionPct = int(math.Round(float64(complete) / float64(len(Sections)) * 100))
	c.IsComplete = len(c.BlockingIssues) == 0
	return c
}
