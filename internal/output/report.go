package output

import "math"

// Report is one scored repository, assembled once per input URL and
// never mutated afterwards. Field names follow the established grader
// output format. License is a pointer so a transport failure on the
// license endpoint degrades that one metric to null instead of
// discarding the row.
type Report struct {
	URL                         string   `json:"URL"`
	NetScore                    float64  `json:"NetScore"`
	NetScoreLatency             float64  `json:"NetScore_Latency"`
	RampUp                      float64  `json:"RampUp"`
	RampUpLatency               float64  `json:"RampUp_Latency"`
	Correctness                 float64  `json:"Correctness"`
	CorrectnessLatency          float64  `json:"Correctness_Latency"`
	BusFactor                   float64  `json:"BusFactor"`
	BusFactorLatency            float64  `json:"BusFactor_Latency"`
	ResponsiveMaintainer        float64  `json:"ResponsiveMaintainer"`
	ResponsiveMaintainerLatency float64  `json:"ResponsiveMaintainer_Latency"`
	License                     *float64 `json:"License"`
	LicenseLatency              float64  `json:"License_Latency"`
}

// Rounded returns a copy with every numeric field rounded to 5
// significant digits.
func (r Report) Rounded() Report {
	out := r
	out.NetScore = RoundSig(r.NetScore)
	out.NetScoreLatency = RoundSig(r.NetScoreLatency)
	out.RampUp = RoundSig(r.RampUp)
	out.RampUpLatency = RoundSig(r.RampUpLatency)
	out.Correctness = RoundSig(r.Correctness)
	out.CorrectnessLatency = RoundSig(r.CorrectnessLatency)
	out.BusFactor = RoundSig(r.BusFactor)
	out.BusFactorLatency = RoundSig(r.BusFactorLatency)
	out.ResponsiveMaintainer = RoundSig(r.ResponsiveMaintainer)
	out.ResponsiveMaintainerLatency = RoundSig(r.ResponsiveMaintainerLatency)
	if r.License != nil {
		v := RoundSig(*r.License)
		out.License = &v
	}
	out.LicenseLatency = RoundSig(r.LicenseLatency)
	return out
}

const significantDigits = 5

// RoundSig rounds v to 5 significant digits.
func RoundSig(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	magnitude := math.Ceil(math.Log10(math.Abs(v)))
	power := float64(significantDigits) - magnitude
	scale := math.Pow(10, power)
	return math.Round(v*scale) / scale
}
