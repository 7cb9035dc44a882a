package surface

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/pipeline"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
	"github.com/esgcopilot/esgcore/pkg/submission"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func ratingColor(rating string) string {
	if noColor() {
		return ""
	}
	switch rating {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	case "D", "E":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *pipeline.Result) error {
	name := result.Company.Name
	if name == "" {
		name = "Unnamed company"
	}
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("%s (%d)", name, result.ReportingYear)))

	if !result.Completeness.IsComplete {
		r.RenderCompleteness(w, result.Completeness)
	}

	if err := r.RenderReport(w, result.CO2); err != nil {
		return err
	}
	if result.ESG != nil {
		renderScore(w, result.ESG)
	}
	if result.Gaps != nil {
		renderRoadmap(w, result.Gaps)
	}

	fmt.Fprintln(w, dim(fmt.Sprintf("run %s · engine %s · factors %s · actions %s",
		result.RunID, result.EngineVersion, result.ReferenceDataVersion, result.ActionCatalogVersion)))
	return nil
}

// RenderReport writes the emission totals, line items and warnings.
func (r *TerminalRenderer) RenderReport(w io.Writer, report emissions.Report) error {
	fmt.Fprintf(w, "%s %s t CO2e\n",
		bold("Carbon footprint:"), formatTonnes(report.TotalTonnes()))
	fmt.Fprintf(w, "  Scope 1 %s t  ·  Scope 2 %s t  ·  Scope 3 %s t\n\n",
		formatTonnes(report.Scope1Tonnes()), formatTonnes(report.Scope2Tonnes()), formatTonnes(report.Scope3Tonnes()))

	if report.LineItemCount() == 0 {
		fmt.Fprintln(w, "No emission sources reported.")
		fmt.Fprintln(w)
	}
	for _, scope := range []struct {
		label string
		items emissions.Breakdown
	}{
		{"Scope 1", report.Scope1Breakdown},
		{"Scope 2", report.Scope2Breakdown},
		{"Scope 3", report.Scope3Breakdown},
	} {
		if len(scope.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", scope.label)
		for _, item := range sortedItems(scope.items) {
			label := item.SourceKey
			if item.Scope3Category != "" {
				label = item.Scope3Category + " " + label
			}
			if item.CountryApplied != "" {
				label += " [" + item.CountryApplied + "]"
			}
			fmt.Fprintf(w, "  %-40s %12s kg  %s\n", label, fmt.Sprintf("%.1f", item.KgCO2e),
				dim(fmt.Sprintf("%g %s × %g %s", item.InputValue, item.InputUnit, item.FactorValue, item.FactorUnit)))
		}
		fmt.Fprintln(w)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintln(w, "Data quality warnings:")
		for _, msg := range report.Warnings {
			fmt.Fprintf(w, "  %s %s\n", colored("!", yellow()), msg)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// RenderCompleteness writes section status and blocking issues.
func (r *TerminalRenderer) RenderCompleteness(w io.Writer, c submission.Completeness) {
	status := colored("ready", green())
	if !c.IsComplete {
		status = colored("incomplete", red())
	}
	fmt.Fprintf(w, "%s %s (%d%% of sections)\n", bold("Submission:"), status, c.CompletionPct)
	for _, name := range submission.Sections {
		st := c.Sections[name]
		mark := colored("✓", green())
		if !st.Complete {
			mark = colored("✗", red())
		}
		fmt.Fprintf(w, "  %s %s\n", mark, name)
		for _, m := range st.Missing {
			fmt.Fprintf(w, "      %s\n", dim(m))
		}
	}
	if len(c.BlockingIssues) > 0 {
		fmt.Fprintln(w, "Blocking issues:")
		for _, issue := range c.BlockingIssues {
			fmt.Fprintf(w, "  %s %s\n", colored("●", red()), issue)
		}
	}
	fmt.Fprintln(w)
}

func renderScore(w io.Writer, s *scoring.ESGScore) {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("ESG rating %s: score %.1f (industry percentile %.0f)",
		colored(s.Rating, ratingColor(s.Rating)), s.Total, s.IndustryPercentile)))

	for _, c := range scoring.Categories {
		cs := s.Category(c)
		fmt.Fprintf(w, "  %-14s %5.1f  %s\n", pillarName(c), cs.Score, colored(cs.Rating, ratingColor(cs.Rating)))
		for _, key := range sortedKeys(cs.Breakdown) {
			e := cs.Breakdown[key]
			fmt.Fprintf(w, "      %-28s %5.1f / %-5.1f %s\n", key, e.Score, e.Max, dim(e.Detail))
		}
	}
	fmt.Fprintln(w)

	if s.GapCount() == 0 {
		fmt.Fprintln(w, "No gaps identified.")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "Gaps:")
	for _, c := range scoring.Categories {
		for _, g := range s.Category(c).Gaps {
			fmt.Fprintf(w, "  %s [%s] %s\n", colored("●", red()), c, g)
		}
	}
	fmt.Fprintln(w)
}

func renderRoadmap(w io.Writer, g *roadmap.GapReport) {
	if len(g.Actions) == 0 {
		return
	}
	fmt.Fprintf(w, "%s %d actions, %d high priority, up to +%.1f points\n",
		bold("Roadmap:"), g.TotalGaps, g.HighPriorityCount, g.TotalPotentialScoreGain)

	if len(g.QuickWins) > 0 {
		fmt.Fprintln(w, "Quick wins:")
		for _, a := range g.QuickWins {
			fmt.Fprintf(w, "  • %s\n", a.Title)
		}
	}
	for _, q := range roadmap.Quarters {
		actions := g.RoadmapByQuarter[q]
		if len(actions) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", q)
		for _, a := range actions {
			fmt.Fprintf(w, "  • %s %s\n", a.Title, dim(fmt.Sprintf("(%s priority, %s effort, +%.1f pts)", a.Priority, a.Effort, a.ScoreImprovementPts)))
			for _, line := range wrapText(a.SmartGoal, 70) {
				fmt.Fprintf(w, "    %s\n", dim(line))
			}
		}
	}
	fmt.Fprintln(w)
}

func pillarName(c scoring.Category) string {
	switch c {
	case scoring.Environmental:
		return "Environmental"
	case scoring.Social:
		return "Social"
	default:
		return "Governance"
	}
}

func formatTonnes(t float64) string {
	return fmt.Sprintf("%.2f", t)
}

func green() string  { return ratingColor("A") }
func yellow() string { return ratingColor("C") }
func red() string    { return ratingColor("E") }

// sortedItems orders line items by emissions, largest first.
func sortedItems(bd emissions.Breakdown) []emissions.LineItem {
	items := make([]emissions.LineItem, 0, len(bd))
	for _, item := range bd {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].KgCO2e != items[j].KgCO2e {
			return items[i].KgCO2e > items[j].KgCO2e
		}
		return items[i].SourceKey < items[j].SourceKey
	})
	return items
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
