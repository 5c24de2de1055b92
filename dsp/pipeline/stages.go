package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/codec"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/filterbank"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/stretch"
)

type frameStage struct{ f *stft.Framer }

// Frame wraps a Framer: (..., time) -> (..., bins, frames, 2).
func Frame(f *stft.Framer) Stage { return frameStage{f: f} }

func (s frameStage) Process(in *core.Array) (*core.Array, error) { return s.f.Frame(in) }
func (s frameStage) String() string                              { return s.f.String() }

type normStage struct{ power float64 }

// Norm computes |z|^power: (..., 2) -> (...).
func Norm(power float64) Stage { return normStage{power: power} }

func (s normStage) Process(in *core.Array) (*core.Array, error) {
	return spectrum.ComplexNorm(in, s.power)
}

func (s normStage) String() string { return fmt.Sprintf("ComplexNorm(power=%g)", s.power) }

type downmixStage struct{ axis int }

// Downmix averages over axis keeping it with size 1.
func Downmix(axis int) Stage { return downmixStage{axis: axis} }

func (s downmixStage) Process(in *core.Array) (*core.Array, error) {
	return spectrum.Downmix(in, s.axis)
}

func (s downmixStage) String() string { return fmt.Sprintf("Downmix(axis=%d)", s.axis) }

type filterStage struct{ fb *filterbank.Matrix }

// Filter applies a filterbank: (..., freqs, frames) -> (..., bands, frames).
func Filter(fb *filterbank.Matrix) Stage { return filterStage{fb: fb} }

func (s filterStage) Process(in *core.Array) (*core.Array, error) {
	return filterbank.Apply(in, s.fb)
}

func (s filterStage) String() string {
	if s.fb == nil {
		return "ApplyFilterbank(nil)"
	}

	return fmt.Sprintf("ApplyFilterbank(num_freqs=%d, num_bands=%d)", s.fb.NumFreqs(), s.fb.NumBands())
}

type stretchStage struct{ s *stretch.Stretcher }

// Stretch wraps a Stretcher applied at its default rate.
func Stretch(s *stretch.Stretcher) Stage { return stretchStage{s: s} }

func (s stretchStage) Process(in *core.Array) (*core.Array, error) { return s.s.Stretch(in) }
func (s stretchStage) String() string                              { return s.s.String() }

type dbStage struct {
	ref  float64
	amin float64
}

// DB converts amplitudes to decibels relative to ref with floor amin.
func DB(ref, amin float64) (Stage, error) {
	if _, err := codec.AmplitudeToDB(nil, ref, amin); err != nil {
		return nil, err
	}

	return dbStage{ref: ref, amin: amin}, nil
}

func (s dbStage) Process(in *core.Array) (*core.Array, error) {
	db, err := codec.AmplitudeToDB(in.Data(), s.ref, s.amin)
	if err != nil {
		return nil, err
	}

	return core.FromSlice(db, in.Shape()...)
}

func (s dbStage) String() string { return fmt.Sprintf("AmplitudeToDB(ref=%g, amin=%g)", s.ref, s.amin) }
