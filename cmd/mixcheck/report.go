package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-mixcheck/analysis"
	"github.com/cwbudde/algo-mixcheck/diagnose"
)

func printReport(w io.Writer, name string, rep *analysis.Report, d diagnose.Diagnosis) error {
	if _, err := fmt.Fprintf(w, "%s (%d Hz, %s, genre %s)\n", name, rep.SampleRate, rep.Duration, d.Genre); err != nil {
		return err
	}

	if rep.ReplacedSamples > 0 {
		if _, err := fmt.Fprintf(w, "warning: %d non-finite samples replaced with silence\n", rep.ReplacedSamples); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Metric\tValue\tTarget\tRange\tStatus\tAction\n")
	fmt.Fprintf(tw, "------\t-----\t------\t-----\t------\t------\n")

	for _, r := range d.Metrics {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Metric.Name(),
			formatValue(r.Value, r.Range.Unit),
			formatValue(r.Range.Target, r.Range.Unit),
			formatRange(r.Range),
			r.Status,
			r.Action,
		)
	}

	for _, r := range d.Bands {
		fmt.Fprintf(tw, "band %s\t%s\t%s\t%s\t%s\t%s\n",
			r.Band,
			formatValue(r.Value, r.Range.Unit),
			formatValue(r.Range.Target, r.Range.Unit),
			formatRange(r.Range),
			r.Status,
			r.Action,
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "overall: %s\n\n", d.Worst())

	return err
}

func formatValue(v float64, unit string) string {
	s := fmt.Sprintf("%.2f", v)
	switch {
	case math.IsInf(v, -1):
		s = "-inf"
	case math.IsNaN(v):
		s = "n/a"
	}

	if unit != "" {
		s += " " + unit
	}

	return s
}

func formatRange(tr diagnose.TargetRange) string {
	return fmt.Sprintf("%.2f..%.2f", tr.Min, tr.Max)
}
