// Package metrics implements the evaluation math for multi-label
// classification runs: batch averaging, thresholded accuracy, per-class
// ROC AUC, and grouping of per-view predictions into per-well predictions.
//
// Targets are expected in {0,1}; predictions are sigmoid outputs in [0,1].
// A class whose targets contain only one label is degenerate and scores an
// AUC of 0.5 instead of erroring, so evaluation of a sparse split never
// aborts.
package metrics
