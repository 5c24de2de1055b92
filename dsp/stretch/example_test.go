package stretch_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/stretch"
)

func ExampleStretcher_Stretch() {
	spec, err := core.NewArray(1, 513, 60, 2)
	if err != nil {
		panic(err)
	}

	s, err := stretch.New(stretch.WithHopLen(256), stretch.WithNumBins(513), stretch.WithRate(1.5))
	if err != nil {
		panic(err)
	}

	out, err := s.Stretch(spec)
	if err != nil {
		panic(err)
	}

	fmt.Println(core.FormatShape(out.Shape()))
	// Output: (1, 513, 40, 2)
}
