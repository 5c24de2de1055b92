package pipeline

import (
	"github.com/cwbudde/algo-spectral/dsp/codec"
	"github.com/cwbudde/algo-spectral/dsp/filterbank"
	"github.com/cwbudde/algo-spectral/dsp/mel"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/stretch"
)

// DefaultRegistry returns a registry with the built-in stage types:
// stft, norm, downmix, mel, stretch and db.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("stft", newFrameStage)
	r.MustRegister("norm", func(p Params) (Stage, error) {
		return Norm(p.GetNum("power", defaultPower)), nil
	})
	r.MustRegister("downmix", func(p Params) (Stage, error) {
		return Downmix(p.GetInt("axis", -3)), nil
	})
	r.MustRegister("mel", newMelStage)
	r.MustRegister("stretch", newStretchStage)
	r.MustRegister("db", func(p Params) (Stage, error) {
		return DB(p.GetNum("ref", 1), p.GetNum("amin", codec.DefaultAmin))
	})

	return r
}

func newFrameStage(p Params) (Stage, error) {
	mode, err := stft.ParsePadMode(p.GetStr("pad_mode", stft.PadReflect.String()))
	if err != nil {
		return nil, err
	}

	backend, err := stft.ParseBackend(p.GetStr("backend", "auto"))
	if err != nil {
		return nil, err
	}

	opts := []stft.Option{
		stft.WithFFTLen(p.GetInt("fft_len", 2048)),
		stft.WithPad(p.GetInt("pad", 0)),
		stft.WithPadMode(mode),
		stft.WithBackend(backend),
		stft.WithWorkers(p.GetInt("workers", 0)),
	}
	if _, ok := p.Num["hop_len"]; ok {
		opts = append(opts, stft.WithHopLen(p.GetInt("hop_len", 0)))
	}

	if _, ok := p.Num["frame_len"]; ok {
		opts = append(opts, stft.WithFrameLen(p.GetInt("frame_len", 0)))
	}

	f, err := stft.New(opts...)
	if err != nil {
		return nil, err
	}

	return Frame(f), nil
}

func newMelStage(p Params) (Stage, error) {
	m, err := filterbank.NewMel(
		filterbank.WithNumFreqs(p.GetInt("num_freqs", 1025)),
		filterbank.WithNumMels(p.GetInt("num_mels", defaultNumMels)),
		filterbank.WithFreqRange(p.GetNum("min_freq", 0), p.GetNum("max_freq", 0)),
		filterbank.WithSampleRate(p.GetInt("sample_rate", defaultSampleRate)),
		filterbank.WithScale(mel.ScaleFor(p.GetNum("htk", 0) != 0)),
	)
	if err != nil {
		return nil, err
	}

	fb, err := m.Filterbank()
	if err != nil {
		return nil, err
	}

	return Filter(fb), nil
}

func newStretchStage(p Params) (Stage, error) {
	s, err := stretch.New(
		stretch.WithRate(p.GetNum("rate", 1)),
		stretch.WithHopLen(p.GetInt("hop_len", 512)),
		stretch.WithNumBins(p.GetInt("num_bins", 1025)),
		stretch.WithWorkers(p.GetInt("workers", 0)),
	)
	if err != nil {
		return nil, err
	}

	return Stretch(s), nil
}
