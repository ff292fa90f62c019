package schedule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cellvision/trainctl/internal/config"
)

func TestConstant(t *testing.T) {
	s := Constant{Initial: 0.01}
	for _, epoch := range []int{0, 1, 50, 1000} {
		assert.Equal(t, 0.01, s.LR(epoch), "epoch %d", epoch)
	}
	assert.Equal(t, "constant", s.Name())
}

func TestStepDecay(t *testing.T) {
	s := StepDecay{Initial: 0.1, DecayEpoch: 30, DecayRate: 0.1}

	tests := []struct {
		epoch int
		want  float64
	}{
		{0, 0.1},
		{29, 0.1},
		{30, 0.01},
		{59, 0.01},
		{60, 0.001},
		{119, 0.0001},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, s.LR(tt.epoch), 1e-12, "epoch %d", tt.epoch)
	}
}

func TestCyclicCosine(t *testing.T) {
	s := CyclicCosine{Initial: 0.1, CycleLength: 20}

	// cycle start is the full initial rate
	assert.InDelta(t, 0.1, s.LR(0), 1e-12)
	assert.InDelta(t, 0.1, s.LR(20), 1e-12, "restart at the next cycle")
	assert.InDelta(t, 0.1, s.LR(100), 1e-12)

	// midway through a cycle the rate is half the initial
	assert.InDelta(t, 0.05, s.LR(10), 1e-12)

	// the rate decreases monotonically within a cycle and stays positive
	prev := math.Inf(1)
	for epoch := 0; epoch < 20; epoch++ {
		lr := s.LR(epoch)
		assert.Less(t, lr, prev, "epoch %d", epoch)
		assert.Greater(t, lr, 0.0, "epoch %d", epoch)
		prev = lr
	}
}

func TestFromDocumentSnapshotEnsemble(t *testing.T) {
	doc := &config.Document{
		OptimizerParams: config.OptimizerParams{LR: 0.01},
		LRSchedule:      &config.LRSchedule{Enabled: true, DecayEpoch: 30, DecayRate: 0.1},
		Ensemble: &config.Ensemble{
			EnsembleType: config.EnsembleSnapshot,
			EnsembleSize: 6,
			CycleLength:  20,
			InitialLR:    0.1,
		},
	}

	s := FromDocument(doc)
	require.IsType(t, CyclicCosine{}, s, "snapshot ensemble wins over lr_schedule")
	assert.InDelta(t, 0.1, s.LR(0), 1e-12, "anneals from the ensemble's initial_lr")
}

func TestFromDocumentStepDecay(t *testing.T) {
	doc := &config.Document{
		OptimizerParams: config.OptimizerParams{LR: 0.01},
		LRSchedule:      &config.LRSchedule{Enabled: true, DecayEpoch: 30, DecayRate: 0.1},
	}

	s := FromDocument(doc)
	require.IsType(t, StepDecay{}, s)
	assert.InDelta(t, 0.01, s.LR(0), 1e-12)
	assert.InDelta(t, 0.001, s.LR(30), 1e-12)
}

func TestFromDocumentDisabledScheduleIsConstant(t *testing.T) {
	doc := &config.Document{
		OptimizerParams: config.OptimizerParams{LR: 0.01},
		LRSchedule:      &config.LRSchedule{Enabled: false, DecayEpoch: 30, DecayRate: 0.1},
	}

	s := FromDocument(doc)
	require.IsType(t, Constant{}, s, "a disabled block means no schedule")
	assert.Equal(t, 0.01, s.LR(75))
}

func TestFromDocumentDeepEnsembleFollowsLRSchedule(t *testing.T) {
	doc := &config.Document{
		OptimizerParams: config.OptimizerParams{LR: 0.05},
		Ensemble: &config.Ensemble{
			EnsembleType: config.EnsembleDeep,
			EnsembleSize: 3,
			CycleLength:  10,
			InitialLR:    0.1,
		},
	}

	s := FromDocument(doc)
	require.IsType(t, Constant{}, s, "deep ensembles do not anneal cyclically")
	assert.Equal(t, 0.05, s.LR(0))
}
