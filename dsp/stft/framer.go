package stft

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

const defaultFFTLen = 2048

// Option configures a Framer.
type Option func(*config)

type config struct {
	fftLen   int
	hopLen   int
	hopSet   bool
	frameLen int
	window   []float64
	pad      int
	padMode  PadMode
	backend  BackendFactory
	workers  int
}

func defaultConfig() config {
	return config{
		fftLen:  defaultFFTLen,
		padMode: PadReflect,
		backend: DefaultBackend,
	}
}

// WithFFTLen sets the FFT size.
func WithFFTLen(n int) Option {
	return func(c *config) { c.fftLen = n }
}

// WithHopLen sets the hop between frames. Defaults to fftLen/4.
func WithHopLen(n int) Option {
	return func(c *config) {
		c.hopLen = n
		c.hopSet = true
	}
}

// WithFrameLen sets the length of the default Hann window. Defaults to
// fftLen. Ignored when WithWindow is given.
func WithFrameLen(n int) Option {
	return func(c *config) { c.frameLen = n }
}

// WithWindow sets explicit window coefficients. The slice is copied.
func WithWindow(coeffs []float64) Option {
	copyCoeffs := append([]float64(nil), coeffs...)

	return func(c *config) { c.window = copyCoeffs }
}

// WithPad pads both ends of the time axis by n samples before framing.
func WithPad(n int) Option {
	return func(c *config) { c.pad = n }
}

// WithPadMode selects the edge extension policy used by WithPad.
func WithPadMode(m PadMode) Option {
	return func(c *config) { c.padMode = m }
}

// WithBackend selects the FFT backend.
func WithBackend(f BackendFactory) Option {
	return func(c *config) {
		if f != nil {
			c.backend = f
		}
	}
}

// WithWorkers bounds the number of rows transformed in parallel.
// Zero selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// Framer turns (..., time) waveforms into (..., bins, frames, 2) spectrograms.
//
// A Framer is immutable after New and safe for concurrent use.
type Framer struct {
	fftLen  int
	hopLen  int
	window  []float64
	pad     int
	padMode PadMode
	backend BackendFactory
	workers int
}

// New resolves defaults, builds the window and validates the configuration.
func New(opts ...Option) (*Framer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.fftLen <= 0 {
		return nil, fmt.Errorf("stft: fft length must be > 0: %d: %w", cfg.fftLen, core.ErrInvalidConfiguration)
	}

	if !cfg.hopSet {
		cfg.hopLen = cfg.fftLen / 4
	}

	if cfg.hopLen <= 0 {
		return nil, fmt.Errorf("stft: hop length must be > 0: %d: %w", cfg.hopLen, core.ErrInvalidConfiguration)
	}

	if cfg.window == nil {
		frameLen := cfg.frameLen
		if frameLen == 0 {
			frameLen = cfg.fftLen
		}

		if frameLen < 0 || frameLen > cfg.fftLen {
			return nil, fmt.Errorf("stft: frame length must be in [1, %d]: %d: %w",
				cfg.fftLen, frameLen, core.ErrInvalidConfiguration)
		}

		w, err := window.Hann(frameLen)
		if err != nil {
			return nil, err
		}

		cfg.window = w
	}

	if err := window.Validate(cfg.window, cfg.fftLen); err != nil {
		return nil, err
	}

	if cfg.pad < 0 {
		return nil, fmt.Errorf("stft: pad must be >= 0: %d: %w", cfg.pad, core.ErrInvalidConfiguration)
	}

	if _, ok := padModeNames[cfg.padMode]; !ok {
		return nil, fmt.Errorf("stft: unknown pad mode %d: %w", cfg.padMode, core.ErrInvalidConfiguration)
	}

	if cfg.workers < 0 {
		return nil, fmt.Errorf("stft: workers must be >= 0: %d: %w", cfg.workers, core.ErrInvalidConfiguration)
	}

	return &Framer{
		fftLen:  cfg.fftLen,
		hopLen:  cfg.hopLen,
		window:  cfg.window,
		pad:     cfg.pad,
		padMode: cfg.padMode,
		backend: cfg.backend,
		workers: cfg.workers,
	}, nil
}

// FFTLen returns the FFT size.
func (f *Framer) FFTLen() int { return f.fftLen }

// HopLen returns the hop between frames in samples.
func (f *Framer) HopLen() int { return f.hopLen }

// FrameLen returns the window length.
func (f *Framer) FrameLen() int { return len(f.window) }

// NumBins returns fftLen/2+1.
func (f *Framer) NumBins() int { return f.fftLen/2 + 1 }

// Window returns a copy of the analysis window.
func (f *Framer) Window() []float64 { return append([]float64(nil), f.window...) }

// NumFrames returns the frame count produced for a signal of length samples.
func (f *Framer) NumFrames(length int) int {
	return NumFrames(length+2*f.pad, f.fftLen, f.hopLen)
}

// Frame computes the spectrogram of a (..., time) waveform with rank >= 2.
// The result has shape (..., fftLen/2+1, frames, 2). The input is not modified.
func (f *Framer) Frame(waveform *core.Array) (*core.Array, error) {
	if waveform == nil || waveform.Rank() < 2 {
		rank := 0
		if waveform != nil {
			rank = waveform.Rank()
		}

		return nil, fmt.Errorf("stft: waveform must have rank >= 2 (channel, time), got %d: %w",
			rank, core.ErrShapeMismatch)
	}

	shape := waveform.Shape()
	leading := shape[:len(shape)-1]

	rows, err := waveform.Reshape(-1, shape[len(shape)-1])
	if err != nil {
		return nil, err
	}

	if f.pad > 0 {
		rows, err = PadRows(rows, f.pad, f.padMode)
		if err != nil {
			return nil, err
		}
	}

	spec, err := Transform(rows, Params{
		FFTLen:  f.fftLen,
		HopLen:  f.hopLen,
		Window:  f.window,
		Center:  false,
		Backend: f.backend,
		Workers: f.workers,
	})
	if err != nil {
		return nil, err
	}

	return spec.Reshape(append(leading, spec.Shape()[1:]...)...)
}

// String describes the framer parameters.
func (f *Framer) String() string {
	return fmt.Sprintf("STFT(fft_len=%d, hop_len=%d, frame_len=%d, pad=%d, pad_mode=%s)",
		f.fftLen, f.hopLen, len(f.window), f.pad, f.padMode)
}
