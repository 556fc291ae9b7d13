package analysis

import "sort"

// DefaultBusFactorThreshold is the cumulative contribution share (in
// percent) the top contributors must reach.
const DefaultBusFactorThreshold = 50.0

// BusFactor counts how many of the top contributors it takes for their
// cumulative contributions to reach threshold percent of the total.
// The result is a raw head count, not a normalized score; see
// NormalizeBusFactor for the [0,1] mapping applied at the aggregation
// boundary. An empty contributor list (or zero total) yields 0.
func BusFactor(contributors []Contributor, threshold float64) int {
	total := 0
	for _, c := range contributors {
		total += c.Contributions
	}
	if total == 0 {
		return 0
	}

	sorted := make([]Contributor, len(contributors))
	copy(sorted, contributors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Contributions > sorted[j].Contributions
	})

	need := threshold / 100.0 * float64(total)
	cumulative := 0
	for i, c := range sorted {
		cumulative += c.Contributions
		if float64(cumulative) >= need {
			return i + 1
		}
	}
	return len(sorted)
}
