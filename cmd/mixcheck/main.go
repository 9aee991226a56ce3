// Command mixcheck measures WAV files and compares them with genre
// targets.
//
// Usage:
//
//	mixcheck [flags] file.wav ...
//
// Examples:
//
//	mixcheck -genre edm master.wav
//	mixcheck -targets club.json -workers 4 a.wav b.wav
//	mixcheck -tone -18
//
// The exit code is 1 when any file could not be analyzed.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"

	"github.com/cwbudde/algo-mixcheck/analysis"
	"github.com/cwbudde/algo-mixcheck/diagnose"
	"github.com/cwbudde/algo-mixcheck/dsp/fftpool"
	"github.com/cwbudde/algo-mixcheck/dsp/signal"
	"github.com/cwbudde/algo-mixcheck/logging"
)

const (
	toneFreq     = 1000.0
	toneRate     = 48000
	toneDuration = 10
)

func main() {
	os.Exit(run())
}

func run() int {
	genre := flag.String("genre", "pop", "built-in target genre ("+strings.Join(diagnose.Genres(), ", ")+")")
	targetsPath := flag.String("targets", "", "JSON target file, overrides -genre")
	workers := flag.Int("workers", fftpool.DefaultWorkers, "FFT worker count, 0 disables the pool")
	verbose := flag.Bool("v", false, "verbose logging")
	tone := flag.Float64("tone", math.NaN(), "analyze a built-in 1 kHz test tone at this level in dBFS")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mixcheck [flags] file.wav ...\n\n")
		fmt.Fprintf(os.Stderr, "Measures loudness, true peak, stereo image and spectral balance\n")
		fmt.Fprintf(os.Stderr, "and compares them with genre targets.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logging.NewDefaultLogger()
	logger.SetLevel(logging.WarnLevel)
	if *verbose {
		logger.SetLevel(logging.DebugLevel)
	}
	logging.SetGlobalLogger(logger)

	targets, err := loadTargets(*genre, *targetsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	type input struct {
		name string
		load func() (signal.Stereo, error)
	}

	var inputs []input
	if !math.IsNaN(*tone) {
		level := *tone
		inputs = append(inputs, input{
			name: fmt.Sprintf("tone %.1f dBFS", level),
			load: func() (signal.Stereo, error) { return testTone(level) },
		})
	}

	for _, path := range flag.Args() {
		inputs = append(inputs, input{name: path, load: func() (signal.Stereo, error) { return readWAV(path) }})
	}

	if len(inputs) == 0 {
		flag.Usage()
		return 2
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []analysis.Option{analysis.WithLogger(logger)}

	if *workers > 0 {
		pool := fftpool.New(fftpool.WithWorkers(*workers), fftpool.WithLogger(logger))
		if err := pool.Spawn(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		defer pool.Shutdown()
		pool.ShutdownOnDone(ctx)

		opts = append(opts, analysis.WithFFTPool(pool))
	}

	failed := 0

	for _, in := range inputs {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "interrupted\n")
			return 1
		}

		log := logger.WithFields(logging.Fields{"input": in.name})

		sig, err := in.load()
		if err != nil {
			log.Error(err, "could not read input")
			fmt.Fprintf(os.Stderr, "%s: %v\n", in.name, err)
			failed++
			continue
		}

		rep, err := analysis.Analyze(ctx, sig, opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", in.name, err)
			failed++
			continue
		}

		if err := printReport(os.Stdout, in.name, rep, diagnose.Diagnose(rep, targets)); err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to write report: %v\n", err)
			return 1
		}
	}

	if failed > 0 {
		return 1
	}

	return 0
}

func loadTargets(genre, path string) (diagnose.Targets, error) {
	if path == "" {
		return diagnose.DefaultTargets(genre)
	}

	f, err := os.Open(path)
	if err != nil {
		return diagnose.Targets{}, fmt.Errorf("open targets: %w", err)
	}
	defer f.Close()

	return diagnose.DecodeTargets(f)
}

func testTone(level float64) (signal.Stereo, error) {
	gen := signal.NewGenerator(toneRate)

	x, err := gen.SineDBFS(toneFreq, level, toneDuration*toneRate)
	if err != nil {
		return signal.Stereo{}, err
	}

	return gen.Stereo(x, x)
}
