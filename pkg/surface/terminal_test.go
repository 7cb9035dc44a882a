package surface_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/pipeline"
	"github.com/esgcopilot/esgcore/pkg/roadmap"
	"github.com/esgcopilot/esgcore/pkg/scoring"
	"github.com/esgcopilot/esgcore/pkg/submission"
	"github.com/esgcopilot/esgcore/pkg/surface"
)

func sampleResult() *pipeline.Result {
	action := roadmap.Action{
		ID:                  "E-01",
		Category:            scoring.Environmental,
		Priority:            roadmap.PriorityHigh,
		Effort:              roadmap.EffortLow,
		Timeline:            "Q1",
		Title:               "Switch to a renewable electricity tariff",
		SmartGoal:           "Source 100% renewable electricity by the end of Q1.",
		ScoreImprovementPts: 6,
	}
	return &pipeline.Result{
		RunID:                "run-42",
		CalculatedAt:         time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		EngineVersion:        "1.0.0",
		ReferenceDataVersion: "2024.1",
		ActionCatalogVersion: "2024.1",
		Company:              submission.Company{Name: "Acme GmbH"},
		ReportingYear:        2024,
		Completeness: submission.Completeness{
			IsComplete:    true,
			CompletionPct: 100,
		},
		CO2: emissions.Report{
			Scope1TotalKg: 2040.2,
			Scope2TotalKg: 3660,
			TotalKg:       5700.2,
			Scope1Breakdown: emissions.Breakdown{
				"natural_gas": {SourceKey: "natural_gas", KgCO2e: 2040.2, InputValue: 1000, InputUnit: "m3", FactorValue: 2.0402, FactorUnit: "kg CO2e/m3"},
			},
			Scope2Breakdown: emissions.Breakdown{
				"electricity": {SourceKey: "electricity", KgCO2e: 3660, InputValue: 10000, InputUnit: "kWh", FactorValue: 0.366, FactorUnit: "kg CO2e/kWh", CountryApplied: "DE"},
			},
			Scope3Breakdown: emissions.Breakdown{},
			Warnings:        []string{"Grid emission factor not found for country 'XX'."},
		},
		ESG: &scoring.ESGScore{
			Total:              58.4,
			Rating:             "B",
			IndustryPercentile: 61,
			Environmental: scoring.CategoryScore{
				Score:  48,
				Rating: "C",
				Breakdown: map[string]scoring.BreakdownEntry{
					"renewable_energy": {Score: 0, Max: 25, Detail: "0% renewable electricity"},
				},
				Gaps: []string{"No renewable electricity"},
			},
			Social:     scoring.CategoryScore{Score: 70, Rating: "A", Breakdown: map[string]scoring.BreakdownEntry{}, Gaps: []string{}},
			Governance: scoring.CategoryScore{Score: 65, Rating: "B", Breakdown: map[string]scoring.BreakdownEntry{}, Gaps: []string{}},
		},
		Gaps: &roadmap.GapReport{
			TotalGaps:               1,
			HighPriorityCount:       1,
			Actions:                 []roadmap.Action{action},
			QuickWins:               []roadmap.Action{action},
			RoadmapByQuarter:        map[string][]roadmap.Action{"Q1": {action}, "Q2": {}, "Q3": {}, "Q4": {}},
			TotalPotentialScoreGain: 6,
		},
	}
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	t.Setenv("NO_COLOR", "1")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Acme GmbH (2024)",
		"Carbon footprint: 5.70 t CO2e",
		"Scope 1 2.04 t",
		"natural_gas",
		"electricity [DE]",
		"Data quality warnings:",
		"country 'XX'",
		"ESG rating B: score 58.4",
		"Environmental",
		"renewable_energy",
		"[E] No renewable electricity",
		"Quick wins:",
		"Q1:",
		"Switch to a renewable electricity tariff",
		"run run-42",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if strings.Contains(output, "\033[") {
		t.Error("expected no ANSI escape codes with NO_COLOR set")
	}
	if strings.Contains(output, "Submission:") {
		t.Error("complete submissions should not print the completeness block")
	}
}

func TestTerminalRenderer_Incomplete(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	res := sampleResult()
	res.Completeness = (&submission.Submission{}).Completeness()

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, res); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Submission: incomplete") {
		t.Error("expected incomplete status")
	}
	if !strings.Contains(output, "Blocking issues:") {
		t.Error("expected blocking issues")
	}
}

func TestTerminalRenderer_EmptyReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).RenderReport(&buf, emissions.Report{}); err != nil {
		t.Fatalf("RenderReport() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No emission sources reported") {
		t.Error("expected 'No emission sources reported' message")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	t.Setenv("NO_COLOR", "")
	unsetNoColor(t)

	var buf bytes.Buffer
	if err := (&surface.TerminalRenderer{}).Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestJSONRenderers(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).Render(&buf, res); err != nil {
		t.Fatalf("JSONRenderer: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc["run_id"] != "run-42" {
		t.Errorf("run_id = %v", doc["run_id"])
	}
	if _, ok := doc["co2_result"].(map[string]any)["total_tonnes"]; !ok {
		t.Error("expected total_tonnes in co2_result")
	}

	buf.Reset()
	if err := (&surface.RecordRenderer{}).Render(&buf, res); err != nil {
		t.Fatalf("RecordRenderer: %v", err)
	}
	var row map[string]any
	if err := json.Unmarshal(buf.Bytes(), &row); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if row["esg_rating"] != "B" {
		t.Errorf("esg_rating = %v", row["esg_rating"])
	}
	if gaps, _ := row["identified_gaps"].([]any); len(gaps) != 1 {
		t.Errorf("identified_gaps = %v", row["identified_gaps"])
	}
}

func TestMarkdownSummary(t *testing.T) {
	md := surface.BuildMarkdownSummary(sampleResult())

	for _, want := range []string{
		"## Acme GmbH: 2024 carbon footprint",
		"| Scope 1 | 2.04 |",
		"| **Total** | **5.70** |",
		"> - Grid emission factor not found",
		"### ESG score: 58.4 (rating B)",
		"| Environmental | 48.0 | C |",
		":seedling: No renewable electricity",
		":red_circle: **Switch to a renewable electricity tariff** (Q1, HIGH)",
		"_Calculation engine 1.0.0, emission factors 2024.1._",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in summary:\n%s", want, md)
		}
	}
}

func TestMarkdownSummaryCapsActions(t *testing.T) {
	res := sampleResult()
	a := res.Gaps.Actions[0]
	res.Gaps.Actions = []roadmap.Action{a, a, a, a, a, a, a}

	md := surface.BuildMarkdownSummary(res)
	if got := strings.Count(md, a.Title); got != 5 {
		t.Errorf("expected 5 listed actions, got %d", got)
	}
	if !strings.Contains(md, "and 2 more actions") {
		t.Error("expected overflow note")
	}
}

func TestForFormat(t *testing.T) {
	for format, want := range map[string]string{
		"":         "*surface.TerminalRenderer",
		"text":     "*surface.TerminalRenderer",
		"json":     "*surface.JSONRenderer",
		"record":   "*surface.RecordRenderer",
		"markdown": "*surface.MarkdownRenderer",
	} {
		r, err := surface.ForFormat(format)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", format, err)
		}
		if got := typeName(r); got != want {
			t.Errorf("ForFormat(%q) = %s, want %s", format, got, want)
		}
	}
	if _, err := surface.ForFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func unsetNoColor(t *testing.T) {
	t.Helper()
	if err := os.Unsetenv("NO_COLOR"); err != nil {
		t.Fatalf("unset NO_COLOR: %v", err)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
