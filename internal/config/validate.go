package config

import (
	"fmt"

	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/registry"
)

// validate enforces the schema invariants. It returns the first violation
// found; non-fatal findings are appended to d.Warnings.
func (d *Document) validate() error {
	// training (required)
	if d.Training.Epochs <= 0 {
		return errors.Validationf("training.epochs", "must be a positive integer (got %d)", d.Training.Epochs)
	}
	if d.Training.Batchsize <= 0 {
		return errors.Validationf("training.batchsize", "must be a positive integer (got %d)", d.Training.Batchsize)
	}

	// reference strings
	if err := registry.Validate(registry.KindModel, "model", d.Model); err != nil {
		return err
	}
	if err := registry.Validate(registry.KindOptimizer, "optimizer", d.Optimizer); err != nil {
		return err
	}
	if err := registry.Validate(registry.KindReader, "dataset.reader", d.Dataset.Reader); err != nil {
		return err
	}
	for i, tr := range d.Dataset.Transforms {
		field := fmt.Sprintf("dataset.transforms[%d]", i)
		if err := registry.Validate(registry.KindTransform, field, tr); err != nil {
			return err
		}
	}

	// optimizer params
	if d.OptimizerParams.LR < 0 {
		return errors.Validationf("optimizer_params.lr", "must be non-negative (got %g)", d.OptimizerParams.LR)
	}
	if d.OptimizerParams.Momentum < 0 {
		return errors.Validationf("optimizer_params.momentum", "must be non-negative (got %g)", d.OptimizerParams.Momentum)
	}
	if d.OptimizerParams.WeightDecay < 0 {
		return errors.Validationf("optimizer_params.weight_decay", "must be non-negative (got %g)", d.OptimizerParams.WeightDecay)
	}

	// lr schedule
	if s := d.LRSchedule; s != nil && s.Enabled {
		if s.DecayEpoch <= 0 {
			return errors.Validationf("lr_schedule.decay_epoch", "must be a positive integer (got %d)", s.DecayEpoch)
		}
		if s.DecayRate <= 0 {
			return errors.Validationf("lr_schedule.decay_rate", "must be positive (got %g)", s.DecayRate)
		}
	}

	// gradient clipping
	if c := d.GradientClipping; c != nil {
		if c.MaxNorm <= 0 {
			return errors.Validationf("gradient_clipping.max_norm", "must be positive (got %g)", c.MaxNorm)
		}
		if c.NormType < 1 {
			return errors.Validationf("gradient_clipping.norm_type", "must be a positive integer (got %d)", c.NormType)
		}
	}

	// model params
	if d.ModelParams.FCUnits < 0 {
		return errors.Validationf("model_params.fc_units", "must be non-negative (got %d)", d.ModelParams.FCUnits)
	}
	if d.ModelParams.Dropout < 0 || d.ModelParams.Dropout > 1 {
		return errors.Validationf("model_params.dropout", "must be in [0,1] (got %g)", d.ModelParams.Dropout)
	}

	// ensemble
	if e := d.Ensemble; e != nil {
		switch e.EnsembleType {
		case EnsembleSnapshot, EnsembleDeep:
		default:
			return errors.Validationf("ensemble.ensemble_type",
				"must be %q or %q (got %q)", EnsembleSnapshot, EnsembleDeep, e.EnsembleType)
		}
		if e.EnsembleSize < 1 {
			return errors.Validationf("ensemble.ensemble_size", "must be at least 1 (got %d)", e.EnsembleSize)
		}
		if e.CycleLength <= 0 {
			return errors.Validationf("ensemble.cycle_length", "must be a positive integer (got %d)", e.CycleLength)
		}
		if e.InitialLR <= 0 {
			return errors.Validationf("ensemble.initial_lr", "must be positive (got %g)", e.InitialLR)
		}
		// The driver trains cycle_length*ensemble_size epochs regardless of
		// training.epochs; a mismatch is almost always a config oversight,
		// but the sample documents show it is not an error.
		if want := e.CycleLength * e.EnsembleSize; d.Training.Epochs != want {
			d.Warnings = append(d.Warnings, fmt.Sprintf(
				"training.epochs (%d) does not equal ensemble cycle_length*ensemble_size (%d); the ensemble plan wins",
				d.Training.Epochs, want))
		}
	}

	// evaluation (required)
	if _, err := ParseSplit("evaluation.dataset_to_eval", string(d.Evaluation.DatasetToEval)); err != nil {
		return err
	}
	if d.Evaluation.Batchsize < 0 {
		return errors.Validationf("evaluation.batchsize", "must be positive when set (got %d)", d.Evaluation.Batchsize)
	}

	// every declared split must carry a sample index file
	for _, split := range Splits() {
		if d.SampleIndexFile(split) == "" {
			return errors.Validationf(
				fmt.Sprintf("dataset.%s.sample_index_file", split), "path must not be empty")
		}
	}

	if d.Workers < 0 {
		return errors.Validationf("workers", "must be non-negative (got %d)", d.Workers)
	}
	if d.Workers == 0 {
		d.Workers = DefaultWorkers
	}
	if d.PrintFreq < 0 {
		return errors.Validationf("print_freq", "must be non-negative (got %d)", d.PrintFreq)
	}
	if d.PrintFreq == 0 {
		d.PrintFreq = DefaultPrintFreq
	}

	return nil
}
