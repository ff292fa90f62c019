package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/results"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <run>",
	Short: "Summarize a run's exported predictions",
	Long: `Loads the prediction export for one split of a run and reports
multi-label accuracy and ROC AUC statistics across classes.

With --grouped, predictions are first averaged over the views of each
well, matching the group_views evaluation mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

var (
	summarizeWorkspace string
	summarizeSplit     string
	summarizeGrouped   bool
	summarizePerClass  bool
	summarizeJSON      bool
)

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeWorkspace, "workspace", "w", ".", "Workspace root")
	summarizeCmd.Flags().StringVar(&summarizeSplit, "split", "val", "Split to summarize (train, val, test)")
	summarizeCmd.Flags().BoolVar(&summarizeGrouped, "grouped", false, "Average predictions over the views of each well")
	summarizeCmd.Flags().BoolVar(&summarizePerClass, "per-class", false, "Include the per-class AUC vector")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "Output the summary as JSON")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	run, err := loadRun(summarizeWorkspace, args[0])
	if err != nil {
		return err
	}

	rs, err := results.Load(run.ResultsFile(summarizeSplit))
	if err != nil {
		return err
	}

	if summarizeGrouped {
		rs = rs.Grouped()
	}

	summary, err := results.Summarize(rs, summarizePerClass)
	if err != nil {
		return err
	}

	if summarizeJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Run: %s (%s split)\n", run.Name(), summarizeSplit)
	fmt.Printf("Samples: %d\n", summary.Samples)
	fmt.Printf("Classes: %d\n", summary.Classes)
	fmt.Printf("Accuracy: %.4f\n", summary.Accuracy)
	fmt.Println()
	fmt.Printf("AUC: mean %.4f, median %.4f, stddev %.4f\n",
		summary.AUC.Mean, summary.AUC.Median, summary.AUC.StdDev)
	fmt.Printf("     min %.4f, max %.4f\n", summary.AUC.Min, summary.AUC.Max)

	if summarizePerClass {
		fmt.Println()
		fmt.Println("Per-class AUC:")
		for i, auc := range summary.PerClassAUC {
			fmt.Printf("  class %d: %.4f\n", i, auc)
		}
	}

	return nil
}
