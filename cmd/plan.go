package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cellvision/trainctl/internal/config"
	"github.com/cellvision/trainctl/internal/schedule"
	"github.com/cellvision/trainctl/internal/workspace"
)

var planCmd = &cobra.Command{
	Use:   "plan <config>",
	Short: "Preview the learning-rate schedule and checkpoint plan",
	Long: `Shows the training plan a configuration document implies: the effective
epoch count, the learning-rate schedule, and for ensemble runs the member
checkpoint schedule.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

var planAllEpochs bool

func init() {
	planCmd.Flags().BoolVar(&planAllEpochs, "all-epochs", false, "Show the learning rate for every epoch")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	sched := schedule.FromDocument(doc)
	total := doc.TotalEpochs()

	fmt.Printf("Run: %s\n", doc.Name)
	fmt.Printf("Schedule: %s\n", sched.Name())
	fmt.Printf("Epochs: %d\n", total)
	fmt.Println()

	fmt.Println("Learning rate:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  EPOCH\tLR")
	for _, epoch := range previewEpochs(doc, total) {
		fmt.Fprintf(w, "  %d\t%g\n", epoch, sched.LR(epoch))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	plan, ok := schedule.PlanFromDocument(doc)
	if !ok {
		return nil
	}

	fmt.Println()
	fmt.Println("Ensemble checkpoints:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  MEMBER\tAFTER EPOCH\tFILE")
	for i, epoch := range plan.Checkpoints() {
		fmt.Fprintf(w, "  %d\t%d\t%s\n", i, epoch, workspace.EnsembleCheckpoint(i))
	}
	return w.Flush()
}

// previewEpochs picks the epochs worth printing: every epoch when asked
// (or when the run is short), otherwise the epochs where the rate steps.
// Cyclic schedules repeat, so one full cycle covers them.
func previewEpochs(doc *config.Document, total int) []int {
	period := total
	switch {
	case doc.HasEnsemble() && doc.Ensemble.EnsembleType == config.EnsembleSnapshot:
		period = doc.Ensemble.CycleLength
	case doc.HasLRSchedule():
		period = doc.LRSchedule.DecayEpoch
	}
	if period <= 0 || period > total {
		period = total
	}

	if planAllEpochs || total <= 20 {
		period = 1
	} else if doc.HasEnsemble() {
		// One annealing cycle epoch by epoch, then only cycle starts.
		epochs := make([]int, 0, period+total/period)
		for e := 0; e < period; e++ {
			epochs = append(epochs, e)
		}
		for e := period; e < total; e += period {
			epochs = append(epochs, e)
		}
		return epochs
	}

	epochs := []int{}
	for e := 0; e < total; e += period {
		epochs = append(epochs, e)
	}
	return epochs
}
