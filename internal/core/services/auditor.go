package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driven"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
	"github.com/veridata-labs/veridata-cli/internal/logger"
)

// imputationThreshold is the missing-value percentage above which a
// column drives the imputation recommendation.
const imputationThreshold = 20.0

// Ensure Auditor implements the interface.
var _ driving.AuditorService = (*Auditor)(nil)

// Auditor runs the validation pipeline: structural check first (which
// may short-circuit the run), then the independent value-level passes
// concurrently, then aggregation into a Report. The table is never
// mutated; each pass accumulates findings into its own local list and
// the lists are merged in pass order after the barrier, so output is
// deterministic regardless of scheduling.
type Auditor struct {
	loader   driven.TableLoader
	factory  driven.CheckFactory
	runStore driven.RunStore
}

// NewAuditor creates an auditor. runStore is optional; when nil, runs
// are not recorded.
func NewAuditor(loader driven.TableLoader, factory driven.CheckFactory, runStore driven.RunStore) *Auditor {
	return &Auditor{
		loader:   loader,
		factory:  factory,
		runStore: runStore,
	}
}

// Audit loads the source at path and validates it.
func (a *Auditor) Audit(ctx context.Context, path string, opts driving.AuditOptions) (*domain.Report, error) {
	logger.Section("audit")

	tbl, err := a.loader.Load(ctx, path, opts.Load)
	if err != nil {
		return nil, fmt.Errorf("loading table: %w", err)
	}
	logger.Debug("loaded %d rows x %d columns from %s (encoding %s)",
		tbl.RowCount(), tbl.ColumnCount(), tbl.Source.Path, tbl.Source.Encoding)

	findings := a.factory.Structural().Run(ctx, tbl)

	if hasEmptyTable(findings) {
		logger.Info("table is empty, skipping value-level checks")
	} else {
		findings = append(findings, a.runPasses(ctx, tbl, opts.Rules)...)
	}

	rep := buildReport(tbl.Source, findings)
	logger.Info("audit complete: %d findings, assessment %s", rep.Summary.Total, rep.Assessment)

	if a.runStore != nil && !opts.SkipHistory {
		a.recordRun(ctx, rep)
	}
	return rep, nil
}

// runPasses executes the value-level checks concurrently over the
// immutable table and merges their findings in pass order.
func (a *Auditor) runPasses(ctx context.Context, tbl *domain.Table, rules []domain.BusinessRule) []domain.Finding {
	passes := a.factory.Passes(rules)
	results := make([][]domain.Finding, len(passes))

	var wg sync.WaitGroup
	for i, chk := range passes {
		wg.Add(1)
		go func(i int, chk driven.Check) {
			defer wg.Done()
			results[i] = chk.Run(ctx, tbl)
			logger.Debug("check %s produced %d findings", chk.Name(), len(results[i]))
		}(i, chk)
	}
	wg.Wait()

	var merged []domain.Finding
	for _, fs := range results {
		merged = append(merged, fs...)
	}
	return merged
}

// recordRun persists the run. History failure is not an audit
// failure; the report has already been produced.
func (a *Auditor) recordRun(ctx context.Context, rep *domain.Report) {
	rec := &domain.RunRecord{
		ID:         uuid.New().String(),
		SourcePath: rep.Source.Path,
		CreatedAt:  time.Now().UTC(),
		Rows:       rep.Source.Rows,
		Columns:    rep.Source.Columns,
		Summary:    rep.Summary,
		Assessment: rep.Assessment,
		Findings:   rep.Findings,
	}
	if err := a.runStore.SaveRun(ctx, rec); err != nil {
		logger.Warn("could not record audit run: %v", err)
	}
}

// hasEmptyTable reports whether the structural pass flagged an empty
// table, which short-circuits the rest of the pipeline.
func hasEmptyTable(findings []domain.Finding) bool {
	for i := range findings {
		if findings[i].Kind == domain.FindingEmptyTable {
			return true
		}
	}
	return false
}

// buildReport is a pure function of the source statistics and the
// accumulated findings.
func buildReport(src domain.SourceInfo, findings []domain.Finding) *domain.Report {
	ordered := make([]domain.Finding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity > ordered[j].Severity
	})

	summary := summarise(ordered)
	return &domain.Report{
		Source:          src,
		Summary:         summary,
		Findings:        ordered,
		Recommendations: recommend(ordered),
		Assessment:      domain.AssessSummary(summary),
	}
}

// summarise tallies findings by severity.
func summarise(findings []domain.Finding) domain.Summary {
	var s domain.Summary
	for i := range findings {
		switch findings[i].Severity {
		case domain.SeverityCritical:
			s.Critical++
		case domain.SeverityError:
			s.Errors++
		case domain.SeverityWarning:
			s.Warnings++
		case domain.SeverityInfo:
			s.Info++
		}
	}
	s.Total = len(findings)
	return s
}

// recommend derives advisory text from which finding kinds are
// present, in fixed order. Recommendations are never findings.
func recommend(findings []domain.Finding) []string {
	var highMissing []string
	var hasKeys, hasTypes, hasOutliers bool
	for i := range findings {
		f := &findings[i]
		switch f.Kind {
		case domain.FindingMissingValues:
			if f.Percentage > imputationThreshold {
				highMissing = append(highMissing, f.Column)
			}
		case domain.FindingDuplicateKeys:
			hasKeys = true
		case domain.FindingMixedTypes, domain.FindingPotentialDate:
			hasTypes = true
		case domain.FindingOutliers:
			hasOutliers = true
		}
	}

	var recs []string
	if len(highMissing) > 0 {
		sort.Strings(highMissing)
		recs = append(recs, fmt.Sprintf(
			"Consider data imputation or collection strategies for columns with high missing values: %s",
			strings.Join(highMissing, ", ")))
	}
	if hasKeys {
		recs = append(recs, "Remove or investigate duplicate identifiers to ensure data integrity")
	}
	if hasTypes {
		recs = append(recs, "Standardise column types for consistent analysis")
	}
	if hasOutliers {
		recs = append(recs, "Investigate outliers - they may indicate data entry errors or legitimate special cases")
	}
	if len(recs) == 0 {
		recs = append(recs, "Data quality appears good - consider automating validation for future deliveries")
	}
	return recs
}
