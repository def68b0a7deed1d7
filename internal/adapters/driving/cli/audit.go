package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/veridata-labs/veridata-cli/internal/adapters/driven/report"
	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
	"github.com/veridata-labs/veridata-cli/internal/logger"
)

// watchDebounce coalesces bursts of file events into one re-audit.
const watchDebounce = 500 * time.Millisecond

var (
	auditDelimiter string
	auditRulesPath string
	auditFormat    string
	auditOutput    string
	auditFailOn    string
	auditWatch     bool
	auditNoHistory bool
)

var auditCmd = &cobra.Command{
	Use:   "audit [path]",
	Short: "Audit a delimited data file",
	Long: `Audits a delimited data file and reports quality findings:
structural problems, missing values, type and format inconsistencies,
duplicate rows and keys, statistical outliers, and business rule
violations when a rule file is given.

Examples:
  # Plain audit with terminal output
  veridata audit orders.csv

  # Semicolon-delimited file, JSON report to a file
  veridata audit -d ';' --format json --output report.json orders.csv

  # Evaluate business rules and fail the build on any error finding
  veridata audit --rules rules.toml --fail-on error orders.csv

  # Re-audit whenever the file changes
  veridata audit --watch orders.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&auditDelimiter, "delimiter", "d", ",", `field delimiter (single character, or \t)`)
	auditCmd.Flags().StringVarP(&auditRulesPath, "rules", "r", "", "business rule file (.toml or .json)")
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", "terminal", "report format: terminal, markdown, json")
	auditCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "write the report to a file instead of stdout")
	auditCmd.Flags().StringVar(&auditFailOn, "fail-on", "", "exit non-zero when findings reach this severity: info, warning, error, critical")
	auditCmd.Flags().BoolVarP(&auditWatch, "watch", "w", false, "re-audit whenever the file changes")
	auditCmd.Flags().BoolVar(&auditNoHistory, "no-history", false, "do not record this run in the history database")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, err := buildAuditOptions(cmd.Context())
	if err != nil {
		return err
	}

	var failAt *domain.Severity
	if auditFailOn != "" {
		sev, err := domain.ParseSeverity(auditFailOn)
		if err != nil {
			return fmt.Errorf("invalid --fail-on severity %q", auditFailOn)
		}
		failAt = &sev
	}

	writer, err := report.NewWriter(auditFormat)
	if err != nil {
		return fmt.Errorf("invalid --format %q", auditFormat)
	}

	svc := ensureAuditor(!auditNoHistory)

	if auditWatch {
		return watchAudit(cmd, svc, path, opts, writer)
	}

	rep, err := svc.Audit(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	if err := emitReport(cmd, writer, rep); err != nil {
		return err
	}
	if failAt != nil && countAtOrAbove(rep, *failAt) > 0 {
		return fmt.Errorf("%d findings at or above %s severity", countAtOrAbove(rep, *failAt), *failAt)
	}
	return nil
}

// buildAuditOptions resolves the audit flags into service options,
// loading the rule file when one was given.
func buildAuditOptions(ctx context.Context) (driving.AuditOptions, error) {
	var opts driving.AuditOptions

	delim, err := parseDelimiter(auditDelimiter)
	if err != nil {
		return opts, err
	}
	opts.Load.Delimiter = delim
	opts.SkipHistory = auditNoHistory

	if auditRulesPath != "" {
		rules, err := ensureRuleStore().Load(ctx, auditRulesPath)
		if err != nil {
			return opts, fmt.Errorf("loading rules: %w", err)
		}
		opts.Rules = rules
	}
	return opts, nil
}

// emitReport renders the report to --output or stdout.
func emitReport(cmd *cobra.Command, writer driven.ReportWriter, rep *domain.Report) error {
	if auditOutput == "" {
		return writer.Write(cmd.OutOrStdout(), rep)
	}

	f, err := os.Create(auditOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := writer.Write(f, rep); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	cmd.Printf("Report written to %s\n", auditOutput)
	return nil
}

// watchAudit audits once, then re-audits on every change to the file
// until interrupted. Audit failures in watch mode are reported but do
// not end the loop; the file may be mid-rewrite.
func watchAudit(
	cmd *cobra.Command,
	svc driving.AuditorService,
	path string,
	opts driving.AuditOptions,
	writer driven.ReportWriter,
) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file, which
	// drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	auditOnce := func() {
		rep, err := svc.Audit(ctx, path, opts)
		if err != nil {
			cmd.PrintErrf("audit failed: %v\n", err)
			return
		}
		if err := emitReport(cmd, writer, rep); err != nil {
			cmd.PrintErrf("writing report: %v\n", err)
		}
	}

	auditOnce()
	cmd.PrintErrf("Watching %s for changes (ctrl-c to stop)\n", path)

	var debounce *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			auditOnce()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file event %s, scheduling re-audit", event.Op)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("watch error: %v\n", err)
		}
	}
}

// countAtOrAbove counts findings at or above the given severity.
func countAtOrAbove(rep *domain.Report, sev domain.Severity) int {
	n := 0
	for i := range rep.Findings {
		if rep.Findings[i].Severity >= sev {
			n++
		}
	}
	return n
}

// parseDelimiter resolves the delimiter flag to a single rune,
// accepting the literal \t escape for tab-separated files.
func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, errors.New("delimiter must be a single character")
	}
	return r, nil
}
