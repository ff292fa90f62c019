package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/config"
	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a training configuration interactively",
	Long: `Walks through workspace, model and run settings in an interactive
wizard and writes a starter configuration document. The dataset paths in
the scaffold are placeholders; edit them before running the trainer.`,
	RunE: runInit,
}

var initOutput string

// scaffoldEnsembleSize is the member count written for ensemble scaffolds.
const scaffoldEnsembleSize = 6

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Output file (default: <name>.json)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	opts, err := tui.RunWizard()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}
	if opts == nil {
		logInfo("Cancelled")
		return nil
	}

	doc := scaffoldDocument(opts)

	out := initOutput
	if out == "" {
		out = opts.Name + ".json"
	}
	if _, err := os.Stat(out); err == nil {
		return errors.UsageError(fmt.Sprintf("%s already exists", out))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
		return errors.WorkspaceError("write config", err)
	}

	logSuccess("Wrote %s", out)
	fmt.Printf("  Edit the dataset paths, then check it with: trainctl validate %s\n", out)
	return nil
}

// scaffoldDocument builds a starter document from wizard answers. The
// dataset block carries the conventional relative layout under the
// workspace.
func scaffoldDocument(opts *tui.ScaffoldOptions) *config.Document {
	doc := &config.Document{
		Name:      opts.Name,
		Workspace: opts.Workspace,
		Dataset: config.Dataset{
			Reader:            "cell_image_reader",
			GroupViews:        true,
			LabelMatrixFile:   "labels/label_matrix.csv",
			LabelRowIndexFile: "labels/row_index.txt",
			LabelColIndexFile: "labels/col_index.txt",
			DataDirectoryPath: "images",
			Train:             config.SplitFiles{SampleIndexFile: "splits/train.txt"},
			Val:               config.SplitFiles{SampleIndexFile: "splits/val.txt"},
			Test:              config.SplitFiles{SampleIndexFile: "splits/test.txt"},
			Transforms:        []string{"resize", "random_crop", "random_flip", "normalize"},
		},
		Optimizer: "sgd",
		OptimizerParams: config.OptimizerParams{
			LR:          opts.LR,
			Momentum:    0.9,
			WeightDecay: 0.0001,
		},
		Model: opts.Model,
		ModelParams: config.ModelParams{
			FCUnits: 512,
			Dropout: 0.5,
		},
		Training: config.Training{
			Epochs:    opts.Epochs,
			Batchsize: opts.Batchsize,
		},
		Evaluation: config.Evaluation{
			DatasetToEval:   config.SplitVal,
			ClassStatistics: true,
		},
		Workers:   config.DefaultWorkers,
		PrintFreq: config.DefaultPrintFreq,
	}

	if opts.Ensemble {
		cycle := opts.Epochs / scaffoldEnsembleSize
		if cycle < 1 {
			cycle = 1
		}
		doc.Ensemble = &config.Ensemble{
			EnsembleType: config.EnsembleSnapshot,
			EnsembleSize: scaffoldEnsembleSize,
			CycleLength:  cycle,
			InitialLR:    0.1,
		}
	}

	return doc
}
