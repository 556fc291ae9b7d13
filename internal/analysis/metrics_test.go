package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRampUp(t *testing.T) {
	tests := []struct {
		name     string
		facts    RepoFacts
		expected float64
	}{
		{
			name:     "no data scores zero",
			facts:    RepoFacts{},
			expected: 0,
		},
		{
			name: "fully documented repository",
			facts: RepoFacts{
				Description: "a well described project",
				HasWiki:     true,
				Topics:      3,
				ReadmeBytes: 20000,
			},
			expected: 1.0,
		},
		{
			name: "readme signal saturates",
			facts: RepoFacts{
				ReadmeBytes: 1000000,
			},
			expected: 0.4,
		},
		{
			name: "partial readme only",
			facts: RepoFacts{
				ReadmeBytes: 5000,
			},
			expected: 0.2,
		},
		{
			name: "description and topics without readme",
			facts: RepoFacts{
				Description: "x",
				Topics:      1,
			},
			expected: 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, RampUp(tt.facts), 1e-9)
		})
	}
}

func TestCorrectness(t *testing.T) {
	tests := []struct {
		name     string
		facts    RepoFacts
		expected float64
	}{
		{
			name:     "no issue history is neutral",
			facts:    RepoFacts{},
			expected: 0.5,
		},
		{
			name:     "all issues closed",
			facts:    RepoFacts{OpenIssues: 0, ClosedIssues: 40},
			expected: 1.0,
		},
		{
			name:     "all issues open",
			facts:    RepoFacts{OpenIssues: 12, ClosedIssues: 0},
			expected: 0,
		},
		{
			name:     "three quarters closed",
			facts:    RepoFacts{OpenIssues: 25, ClosedIssues: 75},
			expected: 0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Correctness(tt.facts), 1e-9)
		})
	}
}

func TestResponsiveMaintainer(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		pushedAt time.Time
		expected float64
	}{
		{
			name:     "unknown push time scores zero",
			pushedAt: time.Time{},
			expected: 0,
		},
		{
			name:     "pushed yesterday",
			pushedAt: now.Add(-24 * time.Hour),
			expected: 1.0,
		},
		{
			name:     "pushed exactly a week ago",
			pushedAt: now.AddDate(0, 0, -7),
			expected: 1.0,
		},
		{
			name:     "pushed six months ago",
			pushedAt: now.AddDate(0, 0, -180),
			expected: 0,
		},
		{
			name:     "pushed years ago",
			pushedAt: now.AddDate(-3, 0, 0),
			expected: 0,
		},
		{
			name:     "midway through the decay window",
			pushedAt: now.AddDate(0, 0, -94), // (7+180)/2 ≈ 93.5 days
			expected: 1.0 - (94.0-7.0)/173.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResponsiveMaintainer(RepoFacts{PushedAt: tt.pushedAt}, now)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestLicenseScore(t *testing.T) {
	tests := []struct {
		name     string
		license  License
		expected float64
	}{
		{name: "MIT is compatible", license: License{SPDXID: "MIT", Name: "MIT License"}, expected: 1},
		{name: "Apache-2.0 is compatible", license: License{SPDXID: "Apache-2.0"}, expected: 1},
		{name: "LGPL-2.1 is compatible", license: License{SPDXID: "LGPL-2.1"}, expected: 1},
		{name: "GPL-3.0 is not on the allowlist", license: License{SPDXID: "GPL-3.0"}, expected: 0},
		{name: "no detected license", license: License{}, expected: 0},
		{name: "NOASSERTION", license: License{SPDXID: "NOASSERTION"}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LicenseScore(tt.license))
		})
	}
}

func TestMetricScoresStayInRange(t *testing.T) {
	cases := []RepoFacts{
		{},
		{Description: "d", HasWiki: true, Topics: 99, ReadmeBytes: 1 << 30},
		{OpenIssues: 100000, ClosedIssues: 3},
		{Stars: -5, Forks: -5, OpenIssues: -1, ClosedIssues: 10},
		{PushedAt: time.Now().Add(24 * time.Hour)}, // clock skew: pushed "in the future"
	}

	now := time.Now()
	for _, facts := range cases {
		for _, score := range []float64{
			RampUp(facts),
			Correctness(facts),
			ResponsiveMaintainer(facts, now),
		} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}
