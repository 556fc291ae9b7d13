package analysis

import (
	"math"
	"time"
)

const (
	// readmeSaturation is the README size (bytes) at which the
	// documentation signal maxes out.
	readmeSaturation = 10000.0

	// Responsiveness decays linearly between these bounds on the age of
	// the last push.
	responsiveFullDays = 7.0
	responsiveZeroDays = 180.0
)

// licenseAllowlist holds the SPDX identifiers considered compatible with
// the project's LGPL-2.1 redistribution policy.
var licenseAllowlist = map[string]bool{
	"MIT":          true,
	"Apache-2.0":   true,
	"BSD-2-Clause": true,
	"BSD-3-Clause": true,
	"LGPL-2.1":     true,
	"LGPL-3.0":     true,
	"MPL-2.0":      true,
	"ISC":          true,
	"Unlicense":    true,
}

// RampUp scores how quickly a new contributor can get productive, from
// documentation and discoverability signals. A repository with no data
// scores 0.
func RampUp(f RepoFacts) float64 {
	score := 0.4 * math.Min(float64(f.ReadmeBytes)/readmeSaturation, 1.0)
	if f.Description != "" {
		score += 0.2
	}
	if f.HasWiki {
		score += 0.2
	}
	if f.Topics > 0 {
		score += 0.2
	}
	return clamp01(score)
}

// Correctness scores issue hygiene as the fraction of tracked issues
// that have been closed. With no issue history at all there is no
// evidence either way, so the score is a neutral 0.5.
func Correctness(f RepoFacts) float64 {
	total := f.OpenIssues + f.ClosedIssues
	if total == 0 {
		return 0.5
	}
	return clamp01(float64(f.ClosedIssues) / float64(total))
}

// ResponsiveMaintainer scores maintainer activity from the age of the
// last push: 1.0 within a week, decaying linearly to 0 at six months.
// An unknown push time scores 0.
func ResponsiveMaintainer(f RepoFacts, now time.Time) float64 {
	if f.PushedAt.IsZero() {
		return 0
	}
	days := now.Sub(f.PushedAt).Hours() / 24
	if days <= responsiveFullDays {
		return 1.0
	}
	if days >= responsiveZeroDays {
		return 0
	}
	return clamp01(1.0 - (days-responsiveFullDays)/(responsiveZeroDays-responsiveFullDays))
}

// LicenseScore is 1 when the detected SPDX identifier is on the
// compatibility allowlist, 0 otherwise (including no detected license).
func LicenseScore(l License) float64 {
	if licenseAllowlist[l.SPDXID] {
		return 1.0
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
