package pipeline

import "math"

// Params holds the parsed parameters for a single chain stage.
type Params struct {
	Type string             `json:"type"`
	Num  map[string]float64 `json:"num,omitempty"`
	Str  map[string]string  `json:"str,omitempty"`
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// GetInt is GetNum rounded to the nearest integer.
func (p Params) GetInt(key string, def int) int {
	return int(math.Round(p.GetNum(key, float64(def))))
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	if v, ok := p.Str[key]; ok {
		return v
	}

	return def
}
