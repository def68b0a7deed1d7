package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/services"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past audit runs",
	Long:  `Lists and shows audit runs recorded in the local history database.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show a single run with its findings",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", services.DefaultHistoryLimit, "maximum number of runs to list")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	svc, err := ensureHistory()
	if err != nil {
		return err
	}

	runs, err := svc.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, runs)
	}

	if len(runs) == 0 {
		cmd.Println("No audit runs recorded yet.")
		return nil
	}

	for i := range runs {
		run := &runs[i]
		cmd.Printf("  %s  %s\n", run.ID, run.SourcePath)
		cmd.Printf("      %s · %d rows × %d columns · %d critical / %d errors / %d warnings / %d info · %s\n",
			humanize.Time(run.CreatedAt),
			run.Rows, run.Columns,
			run.Summary.Critical, run.Summary.Errors, run.Summary.Warnings, run.Summary.Info,
			run.Assessment.Label())
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	svc, err := ensureHistory()
	if err != nil {
		return err
	}

	run, err := svc.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no run with id %s", args[0])
		}
		return fmt.Errorf("loading run: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, run)
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Source:     %s\n", run.SourcePath)
	cmd.Printf("  Recorded:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	cmd.Printf("  Shape:      %d rows × %d columns\n", run.Rows, run.Columns)
	cmd.Printf("  Summary:    %d critical / %d errors / %d warnings / %d info\n",
		run.Summary.Critical, run.Summary.Errors, run.Summary.Warnings, run.Summary.Info)
	cmd.Printf("  Assessment: %s\n", run.Assessment.Label())

	if len(run.Findings) > 0 {
		cmd.Println("  Findings:")
		for i := range run.Findings {
			f := &run.Findings[i]
			cmd.Printf("    [%s] %s", f.Severity, f.Message)
			if f.Column != "" {
				cmd.Printf(" (%s)", f.Column)
			}
			cmd.Println()
		}
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
