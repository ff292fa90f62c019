package schedule

import "github.com/cellvision/trainctl/internal/config"

// Plan is the snapshot bookkeeping of an ensemble run: Size member
// checkpoints, one at the end of each cycle of CycleLength epochs.
type Plan struct {
	Size        int
	CycleLength int
}

// PlanFromDocument returns the ensemble plan, or ok=false for plain runs.
func PlanFromDocument(doc *config.Document) (Plan, bool) {
	if doc.Ensemble == nil {
		return Plan{}, false
	}
	return Plan{
		Size:        doc.Ensemble.EnsembleSize,
		CycleLength: doc.Ensemble.CycleLength,
	}, true
}

// TotalEpochs is the number of epochs the ensemble run trains.
func (p Plan) TotalEpochs() int {
	return p.Size * p.CycleLength
}

// Checkpoints returns the one-based epoch numbers after which a member
// checkpoint is saved: cycle, 2*cycle, ..., size*cycle.
func (p Plan) Checkpoints() []int {
	cps := make([]int, p.Size)
	for i := range cps {
		cps[i] = p.CycleLength * (i + 1)
	}
	return cps
}

// IsCheckpoint reports whether a member checkpoint is due after the given
// zero-based epoch finishes.
func (p Plan) IsCheckpoint(epoch int) bool {
	done := epoch + 1
	return done > 0 && done%p.CycleLength == 0 && done <= p.TotalEpochs()
}

// MemberAt returns the zero-based index of the ensemble member being
// trained at the given zero-based epoch.
func (p Plan) MemberAt(epoch int) int {
	if epoch < 0 {
		return 0
	}
	m := epoch / p.CycleLength
	if m >= p.Size {
		m = p.Size - 1
	}
	return m
}
