package metrics

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// threshold separates positive from negative for both predictions and
// targets.
const threshold = 0.5

// Accuracy returns the fraction of prediction elements whose thresholded
// value matches the thresholded target. Rows are samples, columns are
// classes; ragged or empty input scores zero.
func Accuracy(preds, targets [][]float64) float64 {
	correct, total := 0, 0
	for i := range preds {
		if i >= len(targets) || len(preds[i]) != len(targets[i]) {
			return 0
		}
		for j := range preds[i] {
			if (preds[i][j] >= threshold) == (targets[i][j] >= threshold) {
				correct++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// AUC computes the area under the ROC curve for one class. Degenerate
// input (all positive or all negative) scores 0.5.
func AUC(scores []float64, positives []bool) float64 {
	if len(scores) == 0 || len(scores) != len(positives) {
		return 0.5
	}

	hasPos, hasNeg := false, false
	for _, p := range positives {
		if p {
			hasPos = true
		} else {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return 0.5
	}

	// stat.ROC wants scores ascending with classes aligned
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	y := make([]float64, len(scores))
	classes := make([]bool, len(scores))
	for i, j := range idx {
		y[i] = scores[j]
		classes[i] = positives[j]
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// PerClassAUC computes the AUC of every class column. Rows are samples.
// A target that is neither 0 nor 1 marks the label as unknown for that
// class, and the sample is left out of the class's curve.
func PerClassAUC(preds, targets [][]float64) []float64 {
	if len(preds) == 0 {
		return nil
	}
	nClasses := len(preds[0])
	aucs := make([]float64, nClasses)

	scores := make([]float64, 0, len(preds))
	positives := make([]bool, 0, len(preds))
	for c := 0; c < nClasses; c++ {
		scores = scores[:0]
		positives = positives[:0]
		for i := range preds {
			t := targets[i][c]
			if t != 0 && t != 1 {
				continue
			}
			scores = append(scores, preds[i][c])
			positives = append(positives, t == 1)
		}
		aucs[c] = AUC(scores, positives)
	}
	return aucs
}

// MeanAUC is the unweighted mean of the per-class AUCs.
func MeanAUC(preds, targets [][]float64) float64 {
	aucs := PerClassAUC(preds, targets)
	if len(aucs) == 0 {
		return 0
	}
	return stat.Mean(aucs, nil)
}
