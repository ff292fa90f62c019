package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <config>",
	Short: "Show a resolved configuration document",
	Long: `Loads a configuration document and prints it with all defaults applied
and all paths resolved to absolute form.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the resolved document as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	if showJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Name: %s\n", doc.Name)
	if doc.Comment != "" {
		fmt.Printf("Comment: %s\n", doc.Comment)
	}
	fmt.Printf("Workspace: %s\n", doc.Workspace)
	fmt.Println()

	fmt.Printf("Model: %s (fc_units=%d, dropout=%g)\n",
		doc.Model, doc.ModelParams.FCUnits, doc.ModelParams.Dropout)
	fmt.Printf("Optimizer: %s (lr=%g, momentum=%g, weight_decay=%g)\n",
		doc.Optimizer, doc.OptimizerParams.LR, doc.OptimizerParams.Momentum,
		doc.OptimizerParams.WeightDecay)
	if doc.HasLRSchedule() {
		fmt.Printf("LR Schedule: decay %g every %d epochs\n",
			doc.LRSchedule.DecayRate, doc.LRSchedule.DecayEpoch)
	}
	if doc.HasGradientClipping() {
		fmt.Printf("Gradient Clipping: max_norm=%g (L%d)\n",
			doc.GradientClipping.MaxNorm, doc.GradientClipping.NormType)
	}
	fmt.Println()

	fmt.Printf("Training: %d epochs, batchsize %d\n",
		doc.Training.Epochs, doc.Training.Batchsize)
	if doc.HasEnsemble() {
		fmt.Printf("Ensemble: %s, %d members, cycle %d, initial_lr %g\n",
			doc.Ensemble.EnsembleType, doc.Ensemble.EnsembleSize,
			doc.Ensemble.CycleLength, doc.Ensemble.InitialLR)
	}
	fmt.Printf("Effective epochs: %d\n", doc.TotalEpochs())
	fmt.Println()

	fmt.Printf("Dataset: %s\n", doc.Dataset.Reader)
	fmt.Printf("  Data: %s\n", doc.Dataset.DataDirectoryPath)
	fmt.Printf("  Labels: %s\n", doc.Dataset.LabelMatrixFile)
	fmt.Printf("  Group views: %v\n", doc.Dataset.GroupViews)
	if len(doc.Dataset.Transforms) > 0 {
		fmt.Printf("  Transforms: %s\n", strings.Join(doc.Dataset.Transforms, ", "))
	}
	fmt.Println()

	fmt.Printf("Evaluation: %s split, batchsize %d, class statistics %v\n",
		doc.Evaluation.DatasetToEval, doc.EvalBatchsize(),
		doc.Evaluation.ClassStatistics)
	fmt.Printf("Workers: %d, print every %d batches\n", doc.Workers, doc.PrintFreq)

	return nil
}
