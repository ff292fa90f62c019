// Package results loads, validates and summarizes the prediction files a
// trainer writes after evaluating a split.
//
// A result set is a JSON file with three parallel arrays: sample IDs,
// sigmoid predictions and binary targets. Summaries report thresholded
// accuracy plus per-class ROC AUC statistics, optionally after grouping
// the views of a well into a single averaged row.
package results
