// Package cli implements the cobra command tree driving the audit
// core. Commands talk to the core through the driving ports; package
// level service variables allow tests to inject mocks.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridata-labs/veridata-cli/internal/adapters/driven/rules/file"
	"github.com/veridata-labs/veridata-cli/internal/adapters/driven/storage/sqlite"
	"github.com/veridata-labs/veridata-cli/internal/checks"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
	"github.com/veridata-labs/veridata-cli/internal/core/services"
	csvloader "github.com/veridata-labs/veridata-cli/internal/loaders/csv"
	"github.com/veridata-labs/veridata-cli/internal/logger"
)

var (
	version = "dev"
	verbose bool
	dataDir string

	auditorService driving.AuditorService
	historyService driving.HistoryService
	ruleStore      driven.RuleStore
	runStore       driven.RunStore
)

var rootCmd = &cobra.Command{
	Use:   "veridata",
	Short: "Audit tabular data files for quality problems",
	Long: `veridata validates delimited data files: structure, missing values,
type and format consistency, duplicates, statistical outliers, and
user-defined business rules. Findings are aggregated into a report
with severity counts, recommendations, and an overall assessment.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the run history database (default ~/.veridata/data)")
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	version = v
	defer closeRunStore()
	return rootCmd.Execute()
}

// ensureRuleStore wires the default file-backed rule store.
func ensureRuleStore() driven.RuleStore {
	if ruleStore == nil {
		ruleStore = file.NewRuleStore()
	}
	return ruleStore
}

// openRunStore opens the history database once per process.
func openRunStore() (driven.RunStore, error) {
	if runStore == nil {
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening run history: %w", err)
		}
		runStore = store
	}
	return runStore, nil
}

func closeRunStore() {
	if runStore != nil {
		runStore.Close() //nolint:errcheck
		runStore = nil
	}
}

// ensureAuditor wires the default audit pipeline. When withHistory is
// true and the history database cannot be opened, the audit still
// proceeds without persistence.
func ensureAuditor(withHistory bool) driving.AuditorService {
	if auditorService != nil {
		return auditorService
	}

	var store driven.RunStore
	if withHistory {
		s, err := openRunStore()
		if err != nil {
			logger.Warn("run history unavailable: %v", err)
		} else {
			store = s
		}
	}

	auditorService = services.NewAuditor(csvloader.New(), checks.NewFactory(), store)
	return auditorService
}

// ensureHistory wires the default history service.
func ensureHistory() (driving.HistoryService, error) {
	if historyService == nil {
		store, err := openRunStore()
		if err != nil {
			return nil, err
		}
		historyService = services.NewHistory(store)
	}
	return historyService, nil
}
