package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/esgcopilot/esgcore/pkg/pipeline"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
)

// maxMarkdownActions caps the recommendations listed in a summary.
const maxMarkdownActions = 5

// MarkdownRenderer produces a Markdown summary suitable for pasting into a
// sustainability report draft.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, result *pipeline.Result) error {
	_, err := io.WriteString(w, BuildMarkdownSummary(result))
	return err
}

// BuildMarkdownSummary creates the Markdown body for a Result.
func BuildMarkdownSummary(result *pipeline.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s: %d carbon footprint and ESG assessment\n\n", companyName(result), result.ReportingYear)

	co2 := result.CO2
	sb.WriteString("### Greenhouse gas emissions\n\n")
	sb.WriteString("| Scope | t CO2e |\n|-------|--------|\n")
	fmt.Fprintf(&sb, "| Scope 1 | %.2f |\n", co2.Scope1Tonnes())
	fmt.Fprintf(&sb, "| Scope 2 | %.2f |\n", co2.Scope2Tonnes())
	fmt.Fprintf(&sb, "| Scope 3 | %.2f |\n", co2.Scope3Tonnes())
	fmt.Fprintf(&sb, "| **Total** | **%.2f** |\n", co2.TotalTonnes())
	sb.WriteString("\n")

	if len(co2.Warnings) > 0 {
		sb.WriteString("> **Data quality notes**\n")
		for _, w := range co2.Warnings {
			fmt.Fprintf(&sb, "> - %s\n", w)
		}
		sb.WriteString("\n")
	}

	if s := result.ESG; s != nil {
		fmt.Fprintf(&sb, "### ESG score: %.1f (rating %s)\n\n", s.Total, s.Rating)
		sb.WriteString("| Pillar | Score | Rating |\n|--------|-------|--------|\n")
		for _, c := range scoring.Categories {
			cs := s.Category(c)
			fmt.Fprintf(&sb, "| %s | %.1f | %s |\n", pillarName(c), cs.Score, cs.Rating)
		}
		fmt.Fprintf(&sb, "\nIndustry percentile: %.0f\n\n", s.IndustryPercentile)

		if s.GapCount() > 0 {
			sb.WriteString("#### Identified gaps\n\n")
			for _, c := range scoring.Categories {
				for _, g := range s.Category(c).Gaps {
					fmt.Fprintf(&sb, "- %s %s\n", pillarIcon(c), g)
				}
			}
			sb.WriteString("\n")
		}
	}

	if g := result.Gaps; g != nil && len(g.Actions) > 0 {
		sb.WriteString("### Recommended actions\n\n")
		n := min(len(g.Actions), maxMarkdownActions)
		for _, a := range g.Actions[:n] {
			fmt.Fprintf(&sb, "- %s **%s** (%s, %s): %s\n", priorityIcon(a.Priority), a.Title, a.Timeline, priorityLabel(a.Priority), a.SmartGoal)
		}
		if len(g.Actions) > n {
			fmt.Fprintf(&sb, "\n_... and %d more actions_\n", len(g.Actions)-n)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "_Calculation engine %s, emission factors %s._\n", result.EngineVersion, result.ReferenceDataVersion)
	return sb.String()
}

func companyName(result *pipeline.Result) string {
	if result.Company.Name == "" {
		return "Unnamed company"
	}
	return result.Company.Name
}

func pillarIcon(c scoring.Category) string {
	switch c {
	case scoring.Environmental:
		return ":seedling:"
	case scoring.Social:
		return ":busts_in_silhouette:"
	default:
		return ":classical_building:"
	}
}

func priorityIcon(p roadmap.Priority) string {
	switch p {
	case roadmap.PriorityHigh:
		return ":red_circle:"
	case roadmap.PriorityMedium:
		return ":orange_circle:"
	default:
		return ":yellow_circle:"
	}
}

func priorityLabel(p roadmap.Priority) string {
	return strings.ToUpper(string(p))
}
