package pipeline

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/filterbank"
	"github.com/cwbudde/algo-spectral/dsp/signal"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func sineWaveform(t *testing.T, freq float64, sampleRate float64, samples int) *core.Array {
	t.Helper()

	x := testutil.DeterministicSine(freq, sampleRate, 0.5, samples)

	a, err := signal.Stack(x)
	if err != nil {
		t.Fatalf("Stack() error = %v", err)
	}

	return a
}

func TestSpectrogramPeakBin(t *testing.T) {
	in := sineWaveform(t, 1000, 16000, 16000)

	c, err := NewSpectrogram(WithSTFT(stft.WithFFTLen(1024), stft.WithHopLen(256)))
	if err != nil {
		t.Fatalf("NewSpectrogram() error = %v", err)
	}

	out, err := c.Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireShape(t, out, 1, 1, 513, 59)

	peak := 0
	for k := range 513 {
		if out.At(0, 0, k, 30) > out.At(0, 0, peak, 30) {
			peak = k
		}
	}

	// 1000 Hz at 16 kHz with 1024 points sits exactly on bin 64.
	if peak != 64 {
		t.Fatalf("peak bin = %d, want 64", peak)
	}
}

func TestSpectrogramMonoDownmix(t *testing.T) {
	left := testutil.DeterministicSine(440, 8000, 1, 2048)
	right := testutil.DeterministicNoise(3, 1, 2048)
	in, _ := signal.Stack(left, right)

	stereo, err := NewSpectrogram(WithSTFT(stft.WithFFTLen(256)), WithMono(false))
	if err != nil {
		t.Fatalf("NewSpectrogram(mono=false) error = %v", err)
	}

	mono, err := NewSpectrogram(WithSTFT(stft.WithFFTLen(256)))
	if err != nil {
		t.Fatalf("NewSpectrogram() error = %v", err)
	}

	s, err := stereo.Process(in)
	if err != nil {
		t.Fatalf("stereo Process() error = %v", err)
	}

	m, err := mono.Process(in)
	if err != nil {
		t.Fatalf("mono Process() error = %v", err)
	}

	frames := stft.NumFrames(2048, 256, 64)
	testutil.RequireShape(t, s, 1, 2, 129, frames)
	testutil.RequireShape(t, m, 1, 1, 129, frames)

	half := 129 * frames
	for i := range half {
		want := (s.Data()[i] + s.Data()[half+i]) / 2
		if d := m.Data()[i] - want; d > 1e-9 || d < -1e-9 {
			t.Fatalf("mono[%d] = %v, want %v", i, m.Data()[i], want)
		}
	}
}

func TestMelSpectrogramEndToEndShape(t *testing.T) {
	in, err := sineWaveform(t, 440, 16000, 16000).Reshape(1, 16000)
	if err != nil {
		t.Fatalf("Reshape() error = %v", err)
	}

	tests := []struct {
		pad    int
		frames int
	}{
		{pad: 0, frames: 59},
		{pad: 64, frames: 60},
	}

	for _, tt := range tests {
		c, err := NewMelSpectrogram(
			WithSTFT(stft.WithFFTLen(1024), stft.WithHopLen(256), stft.WithPad(tt.pad)),
			WithNumMels(40),
			WithSampleRate(16000),
		)
		if err != nil {
			t.Fatalf("NewMelSpectrogram() error = %v", err)
		}

		if c.Len() != 4 {
			t.Fatalf("Len() = %d, want 4 stages", c.Len())
		}

		out, err := c.Process(in)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		testutil.RequireShape(t, out, 1, 40, tt.frames)
		testutil.RequireFinite(t, out.Data())
	}
}

func TestMelSpectrogramCustomFilterbank(t *testing.T) {
	in := sineWaveform(t, 440, 8000, 1024)

	c, err := NewMelSpectrogram(
		WithSTFT(stft.WithFFTLen(64)),
		WithFilterbank(filterbank.Identity(33)),
	)
	if err != nil {
		t.Fatalf("NewMelSpectrogram() error = %v", err)
	}

	spec, err := NewSpectrogram(WithSTFT(stft.WithFFTLen(64)), WithPower(2))
	if err != nil {
		t.Fatalf("NewSpectrogram() error = %v", err)
	}

	got, err := c.Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want, err := spec.Process(in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, got.Data(), want.Data(), 1e-9)
}

func TestMelSpectrogramErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{name: "filterbank rows mismatch", opts: []Option{WithSTFT(stft.WithFFTLen(64)), WithFilterbank(filterbank.Identity(10))}, want: core.ErrShapeMismatch},
		{name: "power not two", opts: []Option{WithPower(1)}, want: core.ErrInvalidConfiguration},
		{name: "no frequency bound", opts: []Option{WithSampleRate(0)}, want: core.ErrInvalidConfiguration},
		{name: "bad stft", opts: []Option{WithSTFT(stft.WithFFTLen(-1))}, want: core.ErrInvalidConfiguration},
		{name: "zero mels", opts: []Option{WithNumMels(0)}, want: core.ErrDomainViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMelSpectrogram(tt.opts...); !errors.Is(err, tt.want) {
				t.Fatalf("NewMelSpectrogram() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := NewSpectrogram(WithPower(0)); !errors.Is(err, core.ErrDomainViolation) {
		t.Fatalf("NewSpectrogram(power=0) error = %v, want ErrDomainViolation", err)
	}
}
