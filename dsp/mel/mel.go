package mel

import "math"

// Scale selects the mel formula.
type Scale int

const (
	// ScaleSlaney is the piecewise linear/log scale of the Auditory Toolbox.
	ScaleSlaney Scale = iota
	// ScaleHTK is the 2595*log10(1+f/700) scale of the HTK toolkit.
	ScaleHTK
)

// String returns the lower-case formula name.
func (s Scale) String() string {
	if s == ScaleHTK {
		return "htk"
	}

	return "slaney"
}

// ScaleFor maps the conventional htk flag to a Scale.
func ScaleFor(htk bool) Scale {
	if htk {
		return ScaleHTK
	}

	return ScaleSlaney
}

const (
	htkFactor = 2595.0
	htkBreak  = 700.0

	slaneyMinHz   = 0.0
	slaneySpacing = 200.0 / 3
	minLogHz      = 1000.0
	minLogMel     = (minLogHz - slaneyMinHz) / slaneySpacing
)

// logStep is ln(6.4)/27, the per-mel log increment above the breakpoint.
var logStep = math.Log(6.4) / 27.0

// HertzToMel converts a frequency in Hz to mel.
func HertzToMel(hz float64, htk bool) float64 {
	if htk {
		return htkFactor * math.Log10(1+hz/htkBreak)
	}

	if hz >= minLogHz {
		return minLogMel + math.Log(hz/minLogHz)/logStep
	}

	return (hz - slaneyMinHz) / slaneySpacing
}

// MelToHertz converts a mel value to Hz. It is the inverse of [HertzToMel].
func MelToHertz(mel float64, htk bool) float64 {
	if htk {
		return htkBreak * (math.Pow(10, mel/htkFactor) - 1)
	}

	if mel >= minLogMel {
		return minLogHz * math.Exp(logStep*(mel-minLogMel))
	}

	return slaneyMinHz + slaneySpacing*mel
}

// HertzToMels converts every element of hz and returns a new slice.
func HertzToMels(hz []float64, htk bool) []float64 {
	out := make([]float64, len(hz))
	for i, v := range hz {
		out[i] = HertzToMel(v, htk)
	}

	return out
}

// MelsToHertz converts every element of mels and returns a new slice.
func MelsToHertz(mels []float64, htk bool) []float64 {
	out := make([]float64, len(mels))
	for i, v := range mels {
		out[i] = MelToHertz(v, htk)
	}

	return out
}
