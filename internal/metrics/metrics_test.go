package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageMeter(t *testing.T) {
	var m AverageMeter

	m.Update(1.0, 2)
	assert.Equal(t, 1.0, m.Val)
	assert.Equal(t, 1.0, m.Avg)

	m.Update(4.0, 2)
	assert.Equal(t, 4.0, m.Val)
	assert.InDelta(t, 2.5, m.Avg, 1e-12)
	assert.Equal(t, 4, m.Count)

	// zero-sample updates are ignored
	m.Update(100.0, 0)
	assert.Equal(t, 4, m.Count)
	assert.InDelta(t, 2.5, m.Avg, 1e-12)

	m.Reset()
	assert.Equal(t, AverageMeter{}, m)
}

func TestAccuracy(t *testing.T) {
	preds := [][]float64{
		{0.9, 0.2},
		{0.4, 0.8},
	}
	targets := [][]float64{
		{1, 0},
		{1, 1},
	}
	// 3 of 4 thresholded elements agree
	assert.InDelta(t, 0.75, Accuracy(preds, targets), 1e-12)
}

func TestAccuracyEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(nil, nil))
	assert.Equal(t, 0.0, Accuracy([][]float64{{0.5}}, [][]float64{{1, 0}}), "ragged input")
}

func TestAUCPerfectSeparation(t *testing.T) {
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	positives := []bool{false, false, true, true}
	assert.InDelta(t, 1.0, AUC(scores, positives), 1e-12)
}

func TestAUCInverted(t *testing.T) {
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	positives := []bool{false, false, true, true}
	assert.InDelta(t, 0.0, AUC(scores, positives), 1e-12)
}

func TestAUCPartialRanking(t *testing.T) {
	// one of four positive/negative pairs is ranked wrong
	scores := []float64{0.1, 0.4, 0.5, 0.8}
	positives := []bool{false, true, false, true}
	assert.InDelta(t, 0.75, AUC(scores, positives), 1e-12)
}

func TestAUCChance(t *testing.T) {
	// identical scores for both classes is chance performance
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	positives := []bool{false, true, false, true}
	assert.InDelta(t, 0.5, AUC(scores, positives), 1e-12)
}

func TestAUCDegenerateFallback(t *testing.T) {
	assert.Equal(t, 0.5, AUC([]float64{0.1, 0.9}, []bool{true, true}), "all positive")
	assert.Equal(t, 0.5, AUC([]float64{0.1, 0.9}, []bool{false, false}), "all negative")
	assert.Equal(t, 0.5, AUC(nil, nil), "empty")
}

func TestAUCUnsortedInput(t *testing.T) {
	// AUC must not depend on the input order
	a := AUC([]float64{0.9, 0.1, 0.8, 0.2}, []bool{true, false, true, false})
	b := AUC([]float64{0.1, 0.2, 0.8, 0.9}, []bool{false, false, true, true})
	assert.InDelta(t, b, a, 1e-12)
}

func TestPerClassAUC(t *testing.T) {
	preds := [][]float64{
		{0.9, 0.1, 0.3},
		{0.8, 0.3, 0.6},
		{0.2, 0.7, 0.1},
		{0.1, 0.9, 0.8},
	}
	targets := [][]float64{
		{1, 0, 1},
		{1, 0, 1},
		{0, 1, 1},
		{0, 1, 1},
	}

	aucs := PerClassAUC(preds, targets)
	require.Len(t, aucs, 3)
	assert.InDelta(t, 1.0, aucs[0], 1e-12, "class 0 separates perfectly")
	assert.InDelta(t, 1.0, aucs[1], 1e-12, "class 1 separates perfectly")
	assert.Equal(t, 0.5, aucs[2], "class 2 is degenerate (all positive)")
}

func TestPerClassAUCUnknownLabels(t *testing.T) {
	// a target of 0.5 is an unknown label; the sample must not enter the
	// class's curve as a positive
	preds := [][]float64{
		{0.2},
		{0.8},
		{0.9},
	}
	targets := [][]float64{
		{1},
		{0},
		{0.5},
	}

	aucs := PerClassAUC(preds, targets)
	require.Len(t, aucs, 1)
	assert.InDelta(t, 0.0, aucs[0], 1e-12, "only the labeled pair counts")
}

func TestPerClassAUCAllUnknown(t *testing.T) {
	preds := [][]float64{{0.2}, {0.8}}
	targets := [][]float64{{0.5}, {0.5}}
	assert.Equal(t, []float64{0.5}, PerClassAUC(preds, targets))
}

func TestMeanAUC(t *testing.T) {
	preds := [][]float64{
		{0.9, 0.1},
		{0.1, 0.9},
	}
	targets := [][]float64{
		{1, 0},
		{0, 1},
	}
	assert.InDelta(t, 1.0, MeanAUC(preds, targets), 1e-12)
	assert.Equal(t, 0.0, MeanAUC(nil, nil))
}
