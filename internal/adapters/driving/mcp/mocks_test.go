package mcp

import (
	"context"

	"github.com/veridata-labs/veridata-cli/internal/core/domain"
	"github.com/veridata-labs/veridata-cli/internal/core/ports/driving"
)

// mockAuditorService is a mock implementation of driving.AuditorService.
type mockAuditorService struct {
	report   *domain.Report
	err      error
	lastPath string
	lastOpts driving.AuditOptions
}

func (m *mockAuditorService) Audit(
	_ context.Context,
	path string,
	opts driving.AuditOptions,
) (*domain.Report, error) {
	m.lastPath = path
	m.lastOpts = opts
	return m.report, m.err
}

// mockRuleStore is a mock implementation of driven.RuleStore.
type mockRuleStore struct {
	rules []domain.BusinessRule
	err   error
}

func (m *mockRuleStore) Load(_ context.Context, _ string) ([]domain.BusinessRule, error) {
	return m.rules, m.err
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	runs []domain.RunRecord
	err  error
}

func (m *mockHistoryService) Recent(_ context.Context, _ int) ([]domain.RunRecord, error) {
	return m.runs, m.err
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
