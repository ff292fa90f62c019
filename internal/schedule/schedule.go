package schedule

import (
	"math"

	"github.com/cellvision/trainctl/internal/config"
)

// Schedule yields the learning rate for a given zero-based epoch.
type Schedule interface {
	LR(epoch int) float64
	Name() string
}

// Constant keeps the initial learning rate for the whole run.
type Constant struct {
	Initial float64
}

func (c Constant) LR(epoch int) float64 { return c.Initial }

func (c Constant) Name() string { return "constant" }

// StepDecay multiplies the initial rate by DecayRate every DecayEpoch
// epochs.
type StepDecay struct {
	Initial    float64
	DecayEpoch int
	DecayRate  float64
}

func (s StepDecay) LR(epoch int) float64 {
	if epoch < 0 {
		epoch = 0
	}
	return s.Initial * math.Pow(s.DecayRate, float64(epoch/s.DecayEpoch))
}

func (s StepDecay) Name() string { return "step_decay" }

// CyclicCosine anneals the rate from Initial to zero over each cycle and
// restarts, the warm-restart scheme snapshot ensembles are built on.
type CyclicCosine struct {
	Initial     float64
	CycleLength int
}

func (c CyclicCosine) LR(epoch int) float64 {
	if epoch < 0 {
		epoch = 0
	}
	pos := float64(epoch%c.CycleLength) / float64(c.CycleLength)
	return c.Initial / 2 * (math.Cos(math.Pi*pos) + 1)
}

func (c CyclicCosine) Name() string { return "cyclic_cosine" }

// FromDocument returns the schedule the document implies. A snapshot
// ensemble anneals from its own initial_lr; deep ensembles and plain runs
// follow lr_schedule when enabled and otherwise hold the optimizer's lr.
func FromDocument(doc *config.Document) Schedule {
	if e := doc.Ensemble; e != nil && e.EnsembleType == config.EnsembleSnapshot {
		return CyclicCosine{Initial: e.InitialLR, CycleLength: e.CycleLength}
	}
	if doc.HasLRSchedule() {
		return StepDecay{
			Initial:    doc.OptimizerParams.LR,
			DecayEpoch: doc.LRSchedule.DecayEpoch,
			DecayRate:  doc.LRSchedule.DecayRate,
		}
	}
	return Constant{Initial: doc.OptimizerParams.LR}
}
