// Package diagnose grades analysis measurements against genre targets.
//
// [Evaluate] is the only place a status or severity is derived from a
// value and a [TargetRange]. Comparison tables, scoring and suggestion
// text all read its [Evaluation] instead of re-deriving thresholds.
//
// Metrics form a closed set ([Metric]); each one knows its configuration
// key, unit and how to read its value from an [analysis.Report]. Band
// targets may use localized or legacy names and are resolved to the
// canonical names of [spectral.DefaultBands] before evaluation.
package diagnose
