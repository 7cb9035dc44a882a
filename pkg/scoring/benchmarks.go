package scoring

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/esgcopilot/esgcore/pkg/refdata"
)

// GHG intensity benchmarks in tonnes CO2e per million EUR revenue.
var intensityBenchmarks = map[string]float64{
	refdata.FallbackIndustry: 100,

	"technology":            18,
	"professional_services": 20,
	"finance":               10,
	"healthcare":            45,
	"retail":                60,
	"hospitality":           80,
	"manufacturing":         150,
	"construction":          120,
	"transport":             300,
	"agriculture":           350,
	"energy":                500,
}

// PeerDistribution describes the ESG total scores of an industry's peers.
type PeerDistribution struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

var peerDistributions = map[string]PeerDistribution{
	refdata.FallbackIndustry: {Mean: 45, StdDev: 15},
	"technology":             {Mean: 50, StdDev: 15},
	"manufacturing":          {Mean: 42, StdDev: 14},
	"retail":                 {Mean: 44, StdDev: 15},
	"construction":           {Mean: 38, StdDev: 14},
	"transport":              {Mean: 36, StdDev: 14},
	"hospitality":            {Mean: 40, StdDev: 15},
	"healthcare":             {Mean: 48, StdDev: 14},
	"finance":                {Mean: 55, StdDev: 14},
	"professional_services":  {Mean: 50, StdDev: 15},
	"agriculture":            {Mean: 35, StdDev: 14},
	"energy":                 {Mean: 45, StdDev: 16},
}

// IntensityBenchmark returns the benchmark for an industry and the industry
// key actually applied. Unknown industries use the general benchmark.
func IntensityBenchmark(industry string) (float64, string) {
	key := refdata.NormalizeIndustry(industry)
	if b, ok := intensityBenchmarks[key]; ok {
		return b, key
	}
	return intensityBenchmarks[refdata.FallbackIndustry], refdata.FallbackIndustry
}

// Peers returns the peer distribution for an industry, falling back to general.
func Peers(industry string) PeerDistribution {
	if p, ok := peerDistributions[refdata.NormalizeIndustry(industry)]; ok {
		return p
	}
	return peerDistributions[refdata.FallbackIndustry]
}

// Percentile places a total score within the industry's peer distribution.
// The result is a percentage rounded to one decimal and kept within [1, 99].
func Percentile(total float64, industry string) float64 {
	p := Peers(industry)
	dist := distuv.Normal{Mu: p.Mean, Sigma: p.StdDev}
	return clamp(round1(dist.CDF(total)*100), 1, 99)
}
