// Command wininfo prints the analysis windows and the frequency
// resolution they give the spectral band analyzer.
//
// Usage:
//
//	wininfo [flags] [window-name ...]
//
// Without arguments it prints info for all known window types.
//
// Examples:
//
//	wininfo hann
//	wininfo -size 8192 -rate 44100 hann blackman
//	wininfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-mixcheck/dsp/spectrum"
	"github.com/cwbudde/algo-mixcheck/dsp/window"
)

var registry = []window.Type{
	window.TypeRectangular,
	window.TypeHann,
	window.TypeHamming,
	window.TypeBlackman,
}

func main() {
	size := flag.Int("size", 4096, "frame length in samples")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	list := flag.Bool("list", false, "list available window names")
	periodic := flag.Bool("periodic", true, "use periodic (FFT) form instead of symmetric")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wininfo [flags] [window-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints window properties and the resulting band resolution.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *list {
		for _, t := range registry {
			marker := ""
			if t == window.Default {
				marker = " (default)"
			}
			fmt.Printf("%s%s\n", t, marker)
		}
		return
	}

	if *size < 2 || *rate <= 0 {
		fmt.Fprintf(os.Stderr, "error: size must be >= 2 and rate > 0\n")
		os.Exit(1)
	}

	types := registry
	if names := flag.Args(); len(names) > 0 {
		types = nil
		for _, name := range names {
			t, err := window.ParseType(name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v (use -list to see available)\n", err)
				continue
			}
			types = append(types, t)
		}
	}

	if len(types) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching window types\n")
		os.Exit(1)
	}

	var opts []window.Option
	if *periodic {
		opts = append(opts, window.WithPeriodic())
	}

	printAnalysis(types, *size, *rate, opts)
}

func printAnalysis(types []window.Type, size int, rate float64, opts []window.Option) {
	binHz := spectrum.BinWidth(rate, size)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tENBW [Hz]\tSidelobe [dB]\tBin [Hz]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, t := range types {
		coeffs := window.Generate(t, size, opts...)

		sum := 0.0
		for _, c := range coeffs {
			sum += c
		}

		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %s: %v\n", t, err)
			continue
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.2f\t%.1f\t%.3f\n",
			t,
			size,
			sum/float64(size),
			enbw,
			enbw*binHz,
			window.Info(t).HighestSidelobe,
			binHz,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
