// Command specinfo runs a spectral pipeline on a synthetic signal and prints
// the shape and value range after every stage.
//
// Usage:
//
//	specinfo [flags]
//
// By default the chain is STFT -> ComplexNorm(power=2) -> mel filterbank.
// -rate inserts a phase-vocoder time stretch after the STFT, -db appends a
// decibel conversion and -chain replaces the whole chain with a JSON
// description. A second table lists the mean spectral descriptors of the
// linear magnitude spectrogram.
//
// Examples:
//
//	specinfo
//	specinfo -sr 22050 -fft 2048 -mels 128 -db
//	specinfo -signal chirp -rate 1.5 -v
//	specinfo -chain '[{"type":"stft","num":{"fft_len":512}},{"type":"norm"}]'
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/filterbank"
	"github.com/cwbudde/algo-spectral/dsp/pipeline"
	"github.com/cwbudde/algo-spectral/dsp/signal"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/stretch"
	frequencystats "github.com/cwbudde/algo-spectral/stats/frequency"
	timestats "github.com/cwbudde/algo-spectral/stats/time"
)

type options struct {
	sampleRate int
	duration   float64
	freq       float64
	kind       string
	channels   int
	fftLen     int
	hopLen     int
	pad        int
	padMode    string
	backend    string
	mels       int
	htk        bool
	rate       float64
	db         bool
	chain      string
	workers    int
	features   bool
	verbose    bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("specinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.sampleRate, "sr", 16000, "sample rate in Hz")
	fs.Float64Var(&o.duration, "duration", 1, "signal duration in seconds")
	fs.Float64Var(&o.freq, "freq", 440, "sine frequency or chirp start frequency in Hz")
	fs.StringVar(&o.kind, "signal", "sine", "test signal: sine, chirp or noise")
	fs.IntVar(&o.channels, "channels", 1, "number of identical channels")
	fs.IntVar(&o.fftLen, "fft", 1024, "FFT length")
	fs.IntVar(&o.hopLen, "hop", 0, "hop length (0 = fft/4)")
	fs.IntVar(&o.pad, "pad", 0, "edge padding in samples")
	fs.StringVar(&o.padMode, "pad-mode", "reflect", "padding: reflect, replicate, circular or constant")
	fs.StringVar(&o.backend, "backend", "auto", "FFT backend: auto, algofft, gonum or godsp")
	fs.IntVar(&o.mels, "mels", 40, "number of mel bands (0 = skip the filterbank)")
	fs.BoolVar(&o.htk, "htk", false, "use the HTK mel formula")
	fs.Float64Var(&o.rate, "rate", 1, "time-stretch rate (1 = no stretch)")
	fs.BoolVar(&o.db, "db", false, "convert the result to decibels")
	fs.StringVar(&o.chain, "chain", "", "JSON chain description, overrides the chain flags")
	fs.IntVar(&o.workers, "workers", 0, "parallel rows (0 = GOMAXPROCS)")
	fs.BoolVar(&o.features, "features", true, "print mean spectral descriptors of the magnitude spectrogram")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: specinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Runs a spectral pipeline on a synthetic signal and prints per-stage shapes.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	waveform, err := makeSignal(o)
	if err != nil {
		return err
	}

	logger.Debug("signal generated",
		"kind", o.kind,
		"shape", core.FormatShape(waveform.Shape()),
		"sample_rate", o.sampleRate)

	chain, err := buildChain(o)
	if err != nil {
		return err
	}

	logger.Debug("chain built", "chain", chain.String())

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STAGE\tSHAPE\tMIN\tMAX\tMEAN\tRMS")
	printRow(tw, "input", waveform)

	cur := waveform
	for _, s := range chain.Stages() {
		next, err := s.Process(cur)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}

		logger.Debug("stage done", "stage", s.String(), "shape", core.FormatShape(next.Shape()))
		printRow(tw, s.String(), next)
		cur = next
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if !o.features {
		return nil
	}

	fmt.Fprintln(stdout)

	ftw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	if err := printFeatures(ftw, o, waveform); err != nil {
		return err
	}

	return ftw.Flush()
}

func makeSignal(o options) (*core.Array, error) {
	if o.channels < 1 {
		return nil, fmt.Errorf("channels must be >= 1: %d", o.channels)
	}

	g, err := signal.NewGenerator(signal.WithSampleRate(float64(o.sampleRate)))
	if err != nil {
		return nil, err
	}

	n := g.Samples(o.duration)

	var x []float64

	switch o.kind {
	case "sine":
		x, err = g.Sine(o.freq, 0.5, n)
	case "chirp":
		x, err = g.Chirp(o.freq, float64(o.sampleRate)/4, 0.5, n)
	case "noise":
		x, err = g.WhiteNoise(0.5, n)
	default:
		return nil, fmt.Errorf("unknown signal %q", o.kind)
	}

	if err != nil {
		return nil, err
	}

	channels := make([][]float64, o.channels)
	for i := range channels {
		channels[i] = x
	}

	return signal.Stack(channels...)
}

func buildChain(o options) (*pipeline.Chain, error) {
	if o.chain != "" {
		return pipeline.Load(pipeline.DefaultRegistry(), o.chain)
	}

	opts, err := stftOptions(o)
	if err != nil {
		return nil, err
	}

	framer, err := stft.New(opts...)
	if err != nil {
		return nil, err
	}

	c := pipeline.New(pipeline.Frame(framer))

	if o.rate != 1 {
		s, err := stretch.New(
			stretch.WithRate(o.rate),
			stretch.WithHopLen(framer.HopLen()),
			stretch.WithNumBins(framer.NumBins()),
			stretch.WithWorkers(o.workers),
		)
		if err != nil {
			return nil, err
		}

		c.Append(pipeline.Stretch(s))
	}

	c.Append(pipeline.Norm(2), pipeline.Downmix(-3))

	if o.mels > 0 {
		m, err := filterbank.NewMel(
			filterbank.WithNumFreqs(framer.NumBins()),
			filterbank.WithNumMels(o.mels),
			filterbank.WithSampleRate(o.sampleRate),
			filterbank.WithHTK(o.htk),
		)
		if err != nil {
			return nil, err
		}

		fb, err := m.Filterbank()
		if err != nil {
			return nil, err
		}

		c.Append(pipeline.Filter(fb))
	}

	if o.db {
		s, err := pipeline.DB(1, 1e-10)
		if err != nil {
			return nil, err
		}

		c.Append(s)
	}

	return c, nil
}

func stftOptions(o options) ([]stft.Option, error) {
	mode, err := stft.ParsePadMode(o.padMode)
	if err != nil {
		return nil, err
	}

	backend, err := stft.ParseBackend(o.backend)
	if err != nil {
		return nil, err
	}

	opts := []stft.Option{
		stft.WithFFTLen(o.fftLen),
		stft.WithPad(o.pad),
		stft.WithPadMode(mode),
		stft.WithBackend(backend),
		stft.WithWorkers(o.workers),
	}
	if o.hopLen > 0 {
		opts = append(opts, stft.WithHopLen(o.hopLen))
	}

	return opts, nil
}

// printFeatures reports the mean spectral descriptors of the mono magnitude
// spectrogram of waveform.
func printFeatures(w io.Writer, o options, waveform *core.Array) error {
	opts, err := stftOptions(o)
	if err != nil {
		return err
	}

	spec, err := pipeline.NewSpectrogram(pipeline.WithSTFT(opts...))
	if err != nil {
		return err
	}

	mag, err := spec.Process(waveform)
	if err != nil {
		return err
	}

	track, err := frequencystats.Spectrogram(mag, float64(o.sampleRate))
	if err != nil {
		return err
	}

	m := track.Mean()

	fmt.Fprintln(w, "FEATURE\tMEAN")
	fmt.Fprintf(w, "peak_hz\t%.1f\n", m.PeakHz)
	fmt.Fprintf(w, "centroid_hz\t%.1f\n", m.Centroid)
	fmt.Fprintf(w, "spread_hz\t%.1f\n", m.Spread)
	fmt.Fprintf(w, "rolloff_hz\t%.1f\n", m.Rolloff)
	fmt.Fprintf(w, "bandwidth_hz\t%.1f\n", m.Bandwidth)
	fmt.Fprintf(w, "flatness\t%.4f\n", m.Flatness)

	return nil
}

func printRow(w io.Writer, name string, a *core.Array) {
	s := timestats.Calculate(a.Data())
	fmt.Fprintf(w, "%s\t%s\t%.4g\t%.4g\t%.4g\t%.4g\n",
		name, core.FormatShape(a.Shape()), s.Min, s.Max, s.Mean, s.RMS)
}
