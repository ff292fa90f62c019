// Package schedule computes learning-rate schedules and ensemble plans.
//
// The trainer adjusts its learning rate once per epoch. This package owns
// the arithmetic so that `trainctl plan` can preview a run and the trainer
// integration can be checked against known values:
//
//   - StepDecay: the classic epoch-step schedule declared by lr_schedule
//     (lr = initial * rate^(epoch/decayEpoch), integer division).
//   - CyclicCosine: cosine annealing restarted every cycle, used by
//     snapshot ensembles (lr = initial/2 * (cos(pi*(epoch mod cycle)/cycle)+1)).
//   - Constant: no schedule declared.
//
// FromDocument selects the schedule a config document implies: an ensemble
// block wins over lr_schedule, which wins over constant.
//
// Plan describes the snapshot bookkeeping of an ensemble run: the epochs at
// which member checkpoints are saved and which member is being trained at a
// given epoch.
package schedule
