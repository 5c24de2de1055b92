package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Factory builds one stage from its parameters.
type Factory func(p Params) (Stage, error)

// Registry maps stage type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateStage = errors.New("duplicate stage type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given stage type.
func (r *Registry) Register(stageType string, factory Factory) error {
	if stageType == "" {
		return fmt.Errorf("pipeline: empty stage type: %w", core.ErrInvalidConfiguration)
	}

	if factory == nil {
		return fmt.Errorf("pipeline: nil factory for %q: %w", stageType, core.ErrInvalidConfiguration)
	}

	if _, exists := r.factories[stageType]; exists {
		return fmt.Errorf("pipeline: %w %q: %w", errDuplicateStage, stageType, core.ErrInvalidConfiguration)
	}

	r.factories[stageType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(stageType string, factory Factory) {
	err := r.Register(stageType, factory)
	if err != nil {
		panic(err)
	}
}

// Lookup returns the factory for the given stage type, or nil.
func (r *Registry) Lookup(stageType string) Factory {
	return r.factories[stageType]
}

// Build creates a chain from parsed stage parameters.
func (r *Registry) Build(stages []Params) (*Chain, error) {
	c := New()

	for i, p := range stages {
		factory := r.Lookup(p.Type)
		if factory == nil {
			return nil, fmt.Errorf("pipeline: stage %d: unknown type %q: %w", i, p.Type, core.ErrInvalidConfiguration)
		}

		s, err := factory(p)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %d (%s): %w", i, p.Type, err)
		}

		c.Append(s)
	}

	return c, nil
}

// Load parses a JSON array of stages and builds the chain, for example
//
//	[{"type":"stft","num":{"fft_len":1024,"hop_len":256}},
//	 {"type":"norm","num":{"power":2}},
//	 {"type":"mel","num":{"num_freqs":513,"num_mels":40,"sample_rate":16000}}]
func Load(r *Registry, jsonChain string) (*Chain, error) {
	var stages []Params
	if err := json.Unmarshal([]byte(jsonChain), &stages); err != nil {
		return nil, fmt.Errorf("pipeline: invalid chain JSON: %w", err)
	}

	return r.Build(stages)
}
