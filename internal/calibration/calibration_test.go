package calibration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esgcopilot/esgcore/internal/calibration"
	"github.com/esgcopilot/esgcore/pkg/emissions"
	"github.com/esgcopilot/esgcore/pkg/refdata"
)

func TestSuitePassesWithEmbeddedTables(t *testing.T) {
	r := calibration.Run(emissions.New(refdata.MustDefault()))

	for _, c := range r.Failed() {
		t.Errorf("%s / %s: got %.4f, want %.4f (%.2f%%)", c.Section, c.Name, c.Got, c.Expected, c.DiffPct())
	}
	assert.True(t, r.Passed())
	assert.Len(t, r.Checks, 19)
}

func TestSuiteDetectsDrift(t *testing.T) {
	// Doubling Poland's grid factor keeps the ordering but misses the reference.
	doc := strings.Replace(string(refdata.DefaultYAML()), "value: 0.773", "value: 1.546", 1)
	drifted, err := refdata.Parse([]byte(doc))
	require.NoError(t, err)

	r := calibration.Run(emissions.New(drifted))
	assert.False(t, r.Passed())
	assert.Equal(t, 1, r.Failures)
	require.Len(t, r.Failed(), 1)
	assert.Equal(t, "PL 1,000 kWh", r.Failed()[0].Name)
}

func TestCheckPassed(t *testing.T) {
	tests := []struct {
		name  string
		check calibration.Check
		want  bool
	}{
		{"exact", calibration.Check{Got: 100, Expected: 100, TolerancePct: 1}, true},
		{"within tolerance", calibration.Check{Got: 100.9, Expected: 100, TolerancePct: 1}, true},
		{"outside tolerance", calibration.Check{Got: 101.1, Expected: 100, TolerancePct: 1}, false},
		{"below reference", calibration.Check{Got: 98.9, Expected: 100, TolerancePct: 1}, false},
		{"zero expectation", calibration.Check{Got: 0.0005, Expected: 0}, true},
		{"zero expectation missed", calibration.Check{Got: 1, Expected: 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.check.Passed())
		})
	}
}
