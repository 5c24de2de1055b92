package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

func ExampleFramer_Frame() {
	waveform, err := core.NewArray(1, 16000)
	if err != nil {
		panic(err)
	}

	f, err := stft.New(stft.WithFFTLen(1024), stft.WithHopLen(256), stft.WithPad(64))
	if err != nil {
		panic(err)
	}

	spec, err := f.Frame(waveform)
	if err != nil {
		panic(err)
	}

	fmt.Println(core.FormatShape(spec.Shape()))
	// Output: (1, 513, 60, 2)
}

func ExamplePadRows() {
	rows, _ := core.FromSlice([]float64{1, 2, 3, 4}, 1, 4)
	padded, _ := stft.PadRows(rows, 2, stft.PadReflect)

	fmt.Println(padded.Data())
	// Output: [3 2 1 2 3 4 3 2]
}
