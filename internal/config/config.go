package config

import (
	"github.com/cellvision/trainctl/internal/errors"
)

// Ensemble types understood by the training stack.
const (
	EnsembleSnapshot = "snapshot_ensemble"
	EnsembleDeep     = "deep_ensemble"
)

// Defaults applied when a document omits the corresponding field.
const (
	DefaultWorkers   = 4
	DefaultPrintFreq = 10
)

// Split identifies one of the three declared dataset splits.
type Split string

const (
	SplitTrain Split = "train"
	SplitVal   Split = "val"
	SplitTest  Split = "test"
)

// Splits returns the declared splits in canonical order.
func Splits() []Split {
	return []Split{SplitTrain, SplitVal, SplitTest}
}

// ParseSplit validates a split name from a document field.
func ParseSplit(field, s string) (Split, error) {
	switch Split(s) {
	case SplitTrain, SplitVal, SplitTest:
		return Split(s), nil
	}
	return "", errors.Validationf(field, "must be one of train, val, test (got %q)", s)
}

// Document is a validated training configuration. It is created by Load,
// is immutable afterwards, and may be shared freely across goroutines.
type Document struct {
	// identity
	Name    string `json:"name" toml:"name"`
	Comment string `json:"comment,omitempty" toml:"comment"`

	// Workspace is the root directory for run state. Relative paths are
	// resolved against the directory of the config file at load time.
	Workspace string `json:"workspace" toml:"workspace"`

	Dataset Dataset `json:"dataset" toml:"dataset"`

	// Optimizer is a reference string resolved by the external framework.
	Optimizer       string          `json:"optimizer" toml:"optimizer"`
	OptimizerParams OptimizerParams `json:"optimizer_params" toml:"optimizer_params"`

	// LRSchedule is nil when the document declares no schedule. A present
	// block is only active when Enabled is true.
	LRSchedule *LRSchedule `json:"lr_schedule,omitempty" toml:"lr_schedule"`

	GradientClipping *GradientClipping `json:"gradient_clipping,omitempty" toml:"gradient_clipping"`

	// Model is a reference string resolved by the external framework.
	Model       string      `json:"model" toml:"model"`
	ModelParams ModelParams `json:"model_params" toml:"model_params"`

	Training Training `json:"training" toml:"training"`

	// Ensemble is nil for plain single-model training.
	Ensemble *Ensemble `json:"ensemble,omitempty" toml:"ensemble"`

	Evaluation Evaluation `json:"evaluation" toml:"evaluation"`

	// Workers is the data-loader worker count handed to the framework.
	Workers int `json:"workers,omitempty" toml:"workers"`

	// PrintFreq is the batch interval for progress reporting.
	PrintFreq int `json:"print_freq,omitempty" toml:"print_freq"`

	// Warnings collects non-fatal findings from validation, such as an
	// ensemble whose epochs do not match cycle_length*ensemble_size.
	Warnings []string `json:"-" toml:"-"`

	// path is the absolute path of the source file.
	path string
}

// Dataset describes where the cell-imaging data lives and how to read it.
type Dataset struct {
	// Reader is a reference string naming the dataset reader class.
	Reader string `json:"reader" toml:"reader"`

	// GroupViews requests averaging predictions over the views of a well.
	GroupViews bool `json:"group_views,omitempty" toml:"group_views"`

	LabelMatrixFile   string `json:"label_matrix_file" toml:"label_matrix_file"`
	LabelRowIndexFile string `json:"label_row_index_file" toml:"label_row_index_file"`
	LabelColIndexFile string `json:"label_col_index_file" toml:"label_col_index_file"`
	DataDirectoryPath string `json:"data_directory_path" toml:"data_directory_path"`

	Train SplitFiles `json:"train" toml:"train"`
	Val   SplitFiles `json:"val" toml:"val"`
	Test  SplitFiles `json:"test" toml:"test"`

	// Transforms is an ordered sequence of transform reference strings.
	Transforms []string `json:"transforms,omitempty" toml:"transforms"`
}

// SplitFiles holds the per-split file references.
type SplitFiles struct {
	SampleIndexFile string `json:"sample_index_file" toml:"sample_index_file"`
}

// OptimizerParams are the scalar hyperparameters handed to the optimizer.
type OptimizerParams struct {
	LR          float64 `json:"lr" toml:"lr"`
	Momentum    float64 `json:"momentum,omitempty" toml:"momentum"`
	WeightDecay float64 `json:"weight_decay,omitempty" toml:"weight_decay"`
}

// LRSchedule declares epoch-step learning-rate decay. Activation is the
// explicit Enabled flag; a block that is present but disabled is kept as
// declared so `show` can display it.
type LRSchedule struct {
	Enabled    bool    `json:"enabled" toml:"enabled"`
	DecayEpoch int     `json:"decay_epoch" toml:"decay_epoch"`
	DecayRate  float64 `json:"decay_rate" toml:"decay_rate"`
}

// GradientClipping bounds the gradient norm during training.
type GradientClipping struct {
	MaxNorm  float64 `json:"max_norm" toml:"max_norm"`
	NormType int     `json:"norm_type" toml:"norm_type"`
}

// ModelParams are the scalar hyperparameters of the model head.
type ModelParams struct {
	FCUnits int     `json:"fc_units" toml:"fc_units"`
	Dropout float64 `json:"dropout" toml:"dropout"`
}

// Training holds the required core training parameters.
type Training struct {
	Epochs    int `json:"epochs" toml:"epochs"`
	Batchsize int `json:"batchsize" toml:"batchsize"`
}

// Ensemble wraps training in a snapshot or deep ensemble scheme.
type Ensemble struct {
	EnsembleType string  `json:"ensemble_type" toml:"ensemble_type"`
	EnsembleSize int     `json:"ensemble_size" toml:"ensemble_size"`
	CycleLength  int     `json:"cycle_length" toml:"cycle_length"`
	InitialLR    float64 `json:"initial_lr" toml:"initial_lr"`
}

// Evaluation selects the split to evaluate and the statistics to export.
type Evaluation struct {
	DatasetToEval   Split `json:"dataset_to_eval" toml:"dataset_to_eval"`
	ClassStatistics bool  `json:"class_statistics,omitempty" toml:"class_statistics"`

	// Batchsize overrides training.batchsize for evaluation when positive.
	Batchsize int `json:"batchsize,omitempty" toml:"batchsize"`
}

// Path returns the absolute path of the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// HasEnsemble reports whether the document declares an ensemble block.
func (d *Document) HasEnsemble() bool {
	return d.Ensemble != nil
}

// HasLRSchedule reports whether an epoch-step LR schedule is active.
// A present but disabled block counts as absent.
func (d *Document) HasLRSchedule() bool {
	return d.LRSchedule != nil && d.LRSchedule.Enabled
}

// HasGradientClipping reports whether gradient clipping is declared.
func (d *Document) HasGradientClipping() bool {
	return d.GradientClipping != nil
}

// EvalBatchsize returns the evaluation batch size, falling back to the
// training batch size when the evaluation block does not override it.
func (d *Document) EvalBatchsize() int {
	if d.Evaluation.Batchsize > 0 {
		return d.Evaluation.Batchsize
	}
	return d.Training.Batchsize
}

// SampleIndexFile returns the sample index file for the given split.
func (d *Document) SampleIndexFile(split Split) string {
	switch split {
	case SplitTrain:
		return d.Dataset.Train.SampleIndexFile
	case SplitVal:
		return d.Dataset.Val.SampleIndexFile
	case SplitTest:
		return d.Dataset.Test.SampleIndexFile
	}
	return ""
}

// TotalEpochs returns the effective epoch count: for ensembles the product
// of cycle length and ensemble size takes precedence over training.epochs,
// matching the training driver.
func (d *Document) TotalEpochs() int {
	if d.Ensemble != nil {
		return d.Ensemble.CycleLength * d.Ensemble.EnsembleSize
	}
	return d.Training.Epochs
}
