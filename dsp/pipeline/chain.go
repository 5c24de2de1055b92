package pipeline

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Stage transforms one array into another. Stages must not modify their input.
type Stage interface {
	Process(in *core.Array) (*core.Array, error)
	String() string
}

// Chain runs stages sequentially.
type Chain struct {
	stages []Stage
}

// New creates a chain from stages. Nil stages are skipped.
func New(stages ...Stage) *Chain {
	c := &Chain{}
	c.Append(stages...)

	return c
}

// Append adds stages to the end of the chain and returns c.
func (c *Chain) Append(stages ...Stage) *Chain {
	for _, s := range stages {
		if s != nil {
			c.stages = append(c.stages, s)
		}
	}

	return c
}

// Stages returns a copy of the stage list.
func (c *Chain) Stages() []Stage {
	return append([]Stage(nil), c.stages...)
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Process feeds in through every stage. An empty chain returns in unchanged.
func (c *Chain) Process(in *core.Array) (*core.Array, error) {
	if in == nil {
		return nil, fmt.Errorf("pipeline: nil input: %w", core.ErrShapeMismatch)
	}

	out := in
	for i, s := range c.stages {
		next, err := s.Process(out)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %d (%s): %w", i, s, err)
		}

		out = next
	}

	return out, nil
}

// String lists the stages in order.
func (c *Chain) String() string {
	parts := make([]string, len(c.stages))
	for i, s := range c.stages {
		parts[i] = s.String()
	}

	return "Chain[" + strings.Join(parts, " -> ") + "]"
}
