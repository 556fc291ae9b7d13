package analysis

// Net score weights. Policy constants, not derived at runtime; they sum
// to 1 so the composite stays in [0,1] by construction.
const (
	weightBusFactor  = 0.3
	weightResponsive = 0.3
	weightCorrect    = 0.2
	weightRampUp     = 0.2

	// busFactorHalfPoint tunes the saturating map in NormalizeBusFactor:
	// a raw bus factor equal to this value maps to 0.5.
	busFactorHalfPoint = 2.0
)

// NormalizeBusFactor maps the raw bus-factor head count onto [0,1] via
// n/(n+k): 0 stays 0, 2 maps to 0.5, and large counts approach 1. This
// is the only place the raw count is converted to a score.
func NormalizeBusFactor(busFactor int) float64 {
	if busFactor <= 0 {
		return 0
	}
	n := float64(busFactor)
	return n / (n + busFactorHalfPoint)
}

// NetScore combines the four normalized metric scores with the fixed
// weighting policy. Inputs within [0,1] yield an output within [0,1];
// the result is clamped regardless.
func NetScore(busFactor, rampUp, correctness, responsive float64) float64 {
	s := weightBusFactor*busFactor +
		weightRampUp*rampUp +
		weightCorrect*correctness +
		weightResponsive*responsive
	return clamp01(s)
}
