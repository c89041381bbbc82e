package stats

import (
	"testing"

	"github.com/paiban/nurseplan/pkg/model"
)

func TestAnalyzeCoverage(t *testing.T) {
	metrics := AnalyzeCoverage(rosterFixture())

	if metrics.TotalShifts != 4 || metrics.AssignedShifts != 3 {
		t.Fatalf("Total/Assigned = %d/%d", metrics.TotalShifts, metrics.AssignedShifts)
	}
	if metrics.OverallCoverage != 75 {
		t.Errorf("OverallCoverage = %v, expected 75", metrics.OverallCoverage)
	}
	if len(metrics.UncoveredShifts) != 1 || metrics.UncoveredShifts[0].ID != 4 {
		t.Errorf("UncoveredShifts = %+v", metrics.UncoveredShifts)
	}
}

func TestAnalyzeCoverage_DailyCoverage(t *testing.T) {
	metrics := AnalyzeCoverage(rosterFixture())

	if len(metrics.DailyCoverage) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(metrics.DailyCoverage))
	}
	fri, sat := metrics.DailyCoverage[0], metrics.DailyCoverage[1]
	if fri.Date != "2025-02-21" || fri.CoverageRate != 100 || fri.TotalHours != 18 {
		t.Errorf("周五覆盖错误: %+v", fri)
	}
	if sat.CoverageRate != 50 {
		t.Errorf("周六覆盖率 = %v, expected 50", sat.CoverageRate)
	}
	if metrics.ShiftTypeCoverage[model.ShiftAfternoon] != 0 {
		t.Errorf("午班覆盖率应为 0")
	}
}

func TestAnalyzeCoverage_EmptyInput(t *testing.T) {
	metrics := AnalyzeCoverage(model.NewCandidate(model.NewSnapshot(nil, nil)))
	if metrics.OverallCoverage != 100 {
		t.Errorf("Expected 100%% coverage for empty horizon, got %f", metrics.OverallCoverage)
	}
}
