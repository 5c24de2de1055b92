package stft

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func BenchmarkFramer_Frame(b *testing.B) {
	sizes := []int{256, 1024, 2048}
	for _, fftLen := range sizes {
		b.Run(strconv.Itoa(fftLen), func(b *testing.B) {
			f, err := New(WithFFTLen(fftLen), WithWorkers(1))
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}

			wave, err := core.FromSlice(testutil.DeterministicNoise(7, 0.5, 16000), 1, 16000)
			if err != nil {
				b.Fatalf("FromSlice() error = %v", err)
			}

			b.SetBytes(int64(16000 * 8))
			b.ResetTimer()

			for range b.N {
				if _, err := f.Frame(wave); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBackends(b *testing.B) {
	const n = 1024

	src := testutil.DeterministicNoise(3, 1, n)
	dst := make([]complex128, n/2+1)

	for _, tc := range []struct {
		name    string
		factory BackendFactory
	}{
		{"algofft", AlgoFFT},
		{"gonum", Gonum},
		{"godsp", GoDSP},
	} {
		b.Run(tc.name, func(b *testing.B) {
			backend, err := tc.factory(n)
			if err != nil {
				b.Fatalf("factory error = %v", err)
			}

			b.ResetTimer()

			for range b.N {
				if err := backend.Forward(dst, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
