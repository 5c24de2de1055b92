package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

func ExampleMagPhase() {
	spec, _ := core.FromSlice([]float64{0, 2, -3, 0}, 2, 2)
	mag, phase, _ := spectrum.MagPhase(spec, 1)
	fmt.Printf("%.1f %.1f | %.4f %.4f\n", mag.Data()[0], mag.Data()[1], phase.Data()[0], phase.Data()[1])
	// Output:
	// 2.0 3.0 | 1.5708 3.1416
}
