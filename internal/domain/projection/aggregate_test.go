package projection

import (
	"encoding/json"
	"testing"
)

func reportSnapshot() Snapshot {
	return Snapshot{
		Categories: []Category{
			{ID: "c1", Name: "Production"},
			{ID: "c2", Name: "Logistics"},
		},
		SubCategories: []SubCategory{
			{ID: "sc1", Name: "Machinery", CategoryID: "c1"},
			{ID: "sc2", Name: "Transport", CategoryID: "c2"},
		},
		Skills: []Skill{
			{ID: "s1", Name: "Hydraulics", SubCategoryID: "sc1"},
			{ID: "s2", Name: "Forklift", SubCategoryID: "sc2"},
		},
		Roles: []Role{
			{ID: "r1", Name: "Operator", RequiredSkills: []RoleRequirement{{SkillID: "s1", Level: 100}}},
		},
		Employees: []Employee{
			{ID: "e1", Name: "Anna", Department: "Plant A", Roles: []string{"Operator"}},
			{ID: "e2", Name: "Ben", Department: "Plant A"},
		},
		Assessments: []Assessment{
			{EmployeeID: "e1", SkillID: "s1", Level: 50},
			{EmployeeID: "e1", SkillID: "s2", Level: 75},
			{EmployeeID: "e2", SkillID: "s2", Level: 25, TargetLevel: intPtr(50)},
		},
		Plans: []Plan{
			{ID: "p1", EmployeeID: "e1", Status: PlanStatusActive},
		},
		Measures: []Measure{
			{ID: "m1", PlanID: "p1", SkillID: "s1", CurrentLevel: 50, TargetLevel: 100,
				Status: MeasureStatusPending, TargetDate: timePtr(testNow().AddDate(0, 2, 0))},
		},
	}
}

func TestReportForecastKPIs(t *testing.T) {
	engine := mustEngine(t, reportSnapshot())
	report := engine.ForecastMonths(3)

	// Current: e1/s1 50 of 100 => 50, e1/s2 raw 75, e2/s2 25 of 50 => 50.
	// Target-bearing class: {50, 50} => 50.
	if report.KPIs.CurrentAvg == nil || *report.KPIs.CurrentAvg != 50 {
		t.Fatalf("expected current avg 50, got %v", report.KPIs.CurrentAvg)
	}
	// Forecast: e1/s1 completes to 100 => 100, e2/s2 stays 50 => avg 75.
	if report.KPIs.ForecastAvg == nil || *report.KPIs.ForecastAvg != 75 {
		t.Fatalf("expected forecast avg 75, got %v", report.KPIs.ForecastAvg)
	}
	if report.KPIs.AvgDelta == nil || *report.KPIs.AvgDelta != 25 {
		t.Fatalf("expected delta 25, got %v", report.KPIs.AvgDelta)
	}
	if report.KPIs.CurrentDeficits != 2 {
		t.Fatalf("expected 2 current deficits, got %d", report.KPIs.CurrentDeficits)
	}
	if report.KPIs.ForecastDeficits != 1 {
		t.Fatalf("expected 1 forecast deficit, got %d", report.KPIs.ForecastDeficits)
	}
	if report.KPIs.CurrentXP != 150 {
		t.Fatalf("expected current XP 150, got %d", report.KPIs.CurrentXP)
	}
	if report.KPIs.ForecastXP != 200 {
		t.Fatalf("expected forecast XP 200, got %d", report.KPIs.ForecastXP)
	}
	if report.KPIs.PlannedMeasures != 1 || report.KPIs.CompletingMeasures != 1 {
		t.Fatalf("expected 1/1 measures, got %d/%d", report.KPIs.PlannedMeasures, report.KPIs.CompletingMeasures)
	}
}

func TestReportRowsSortedAndBreakdownWorstFirst(t *testing.T) {
	engine := mustEngine(t, reportSnapshot())
	report := engine.ForecastMonths(3)

	if len(report.Employees) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Employees))
	}
	if report.Employees[0].Name != "Anna" || report.Employees[1].Name != "Ben" {
		t.Fatalf("expected rows sorted by name, got %s, %s", report.Employees[0].Name, report.Employees[1].Name)
	}

	anna := report.Employees[0]
	if len(anna.Skills) != 2 {
		t.Fatalf("expected 2 breakdown entries, got %d", len(anna.Skills))
	}
	// Hydraulics fulfills 50, Forklift (no target) 75: worst first.
	if anna.Skills[0].SkillName != "Hydraulics" {
		t.Fatalf("expected worst-served skill first, got %s", anna.Skills[0].SkillName)
	}
	if anna.Skills[0].ForecastFulfillment != 100 {
		t.Fatalf("expected forecast fulfillment 100, got %d", anna.Skills[0].ForecastFulfillment)
	}
	if anna.PlannedMeasures != 1 || anna.CompletingMeasures != 1 {
		t.Fatalf("expected per-row measure counts 1/1, got %d/%d", anna.PlannedMeasures, anna.CompletingMeasures)
	}
}

func TestReportDepartingEmployeeHasAbsentForecast(t *testing.T) {
	snap := reportSnapshot()
	snap.Employees[0].DeactivationDate = timePtr(testNow().AddDate(0, 1, 0))
	engine := mustEngine(t, snap)
	report := engine.ForecastMonths(3)

	anna := report.Employees[0]
	if !anna.Departing {
		t.Fatal("expected departing flag")
	}
	if anna.ForecastAvg != nil {
		t.Fatalf("expected absent forecast average for departing employee, got %v", *anna.ForecastAvg)
	}
	if anna.Delta != nil {
		t.Fatal("expected absent delta for departing employee")
	}
	if report.KPIs.Departures != 1 {
		t.Fatalf("expected 1 departure, got %d", report.KPIs.Departures)
	}
	// Ben alone carries the forecast average: 25 of 50 => 50.
	if report.KPIs.ForecastAvg == nil || *report.KPIs.ForecastAvg != 50 {
		t.Fatalf("expected forecast avg 50 without the departing employee, got %v", report.KPIs.ForecastAvg)
	}
}

func TestReportCategoryBars(t *testing.T) {
	engine := mustEngine(t, reportSnapshot())
	report := engine.ForecastMonths(3)

	if len(report.Categories) != 2 {
		t.Fatalf("expected 2 category bars, got %d", len(report.Categories))
	}
	// Sorted by name: Logistics before Production.
	logistics, production := report.Categories[0], report.Categories[1]
	if logistics.Name != "Logistics" || production.Name != "Production" {
		t.Fatalf("expected bars sorted by name, got %s, %s", logistics.Name, production.Name)
	}
	// Production holds only e1/s1: 50 now, 100 at the horizon.
	if production.CurrentAvg == nil || *production.CurrentAvg != 50 {
		t.Fatalf("expected production current avg 50, got %v", production.CurrentAvg)
	}
	if production.ForecastAvg == nil || *production.ForecastAvg != 100 {
		t.Fatalf("expected production forecast avg 100, got %v", production.ForecastAvg)
	}
	// Logistics: e2/s2 has a target (50%), e1/s2 is raw; target class wins.
	if logistics.CurrentAvg == nil || *logistics.CurrentAvg != 50 {
		t.Fatalf("expected logistics current avg 50, got %v", logistics.CurrentAvg)
	}
}

func TestReportAtPastInstantUsesReconstructedLevels(t *testing.T) {
	snap := reportSnapshot()
	snap.Log = []LogEntry{
		{EmployeeID: "e1", SkillID: "s1", PreviousLevel: 25, NewLevel: 50, Timestamp: testNow().AddDate(0, -1, 0)},
	}
	engine := mustEngine(t, snap)
	report := engine.ReportAt(testNow().AddDate(0, -2, 0))

	anna := report.Employees[0]
	var hydraulics *SkillScore
	for i := range anna.Skills {
		if anna.Skills[i].SkillID == "s1" {
			hydraulics = &anna.Skills[i]
		}
	}
	if hydraulics == nil {
		t.Fatal("expected hydraulics breakdown entry")
	}
	if hydraulics.Level != 25 {
		t.Fatalf("expected reconstructed level 25, got %d", hydraulics.Level)
	}
	// Historical levels are still scored against today's target of 100.
	if hydraulics.CurrentFulfillment != 25 {
		t.Fatalf("expected fulfillment 25 against today's target, got %d", hydraulics.CurrentFulfillment)
	}
	if report.KPIs.ForecastAvg != nil {
		t.Fatal("expected no forecast columns on a historical report")
	}
}

func TestReportAtFutureInstantDelegatesToForecast(t *testing.T) {
	engine := mustEngine(t, reportSnapshot())
	report := engine.ReportAt(testNow().AddDate(0, 3, 0))
	if report.KPIs.ForecastAvg == nil {
		t.Fatal("expected forecast columns for a future instant")
	}
}

func TestReportIsDeterministic(t *testing.T) {
	engine := mustEngine(t, reportSnapshot())

	first, err := json.Marshal(engine.ForecastMonths(3))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	second, err := json.Marshal(engine.ForecastMonths(3))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("expected byte-identical reports for identical inputs")
	}
}

func TestReportInactiveEmployeesExcluded(t *testing.T) {
	snap := reportSnapshot()
	snap.Employees[1].Active = boolPtr(false)
	engine := mustEngine(t, snap)
	report := engine.ForecastMonths(3)

	if len(report.Employees) != 1 {
		t.Fatalf("expected only active employees in rows, got %d", len(report.Employees))
	}
	if report.Employees[0].Name != "Anna" {
		t.Fatalf("expected Anna, got %s", report.Employees[0].Name)
	}
}

func TestReportNotAssessedExcludedFromAverages(t *testing.T) {
	snap := Snapshot{
		Categories:    []Category{{ID: "c1", Name: "Production"}},
		SubCategories: []SubCategory{{ID: "sc1", Name: "Machinery", CategoryID: "c1"}},
		Skills:        []Skill{{ID: "s1", Name: "Hydraulics", SubCategoryID: "sc1"}},
		Employees:     []Employee{{ID: "e1", Name: "Anna"}},
		Assessments: []Assessment{
			{EmployeeID: "e1", SkillID: "s1", Level: LevelNotAssessed, TargetLevel: intPtr(75)},
		},
	}
	engine := mustEngine(t, snap)
	report := engine.ReportAt(testNow())

	if report.KPIs.CurrentAvg != nil {
		t.Fatalf("expected absent average when everything is unassessed, got %v", *report.KPIs.CurrentAvg)
	}
	if report.Employees[0].Skills[0].CurrentFulfillment != LevelNotAssessed {
		t.Fatalf("expected sentinel in breakdown, got %d", report.Employees[0].Skills[0].CurrentFulfillment)
	}
}

func TestForecastMonthsMatchesExplicitHorizon(t *testing.T) {
	engine := mustEngine(t, reportSnapshot())
	byMonths := engine.ForecastMonths(3)
	byInstant := engine.ReportForecast(testNow().AddDate(0, 3, 0))

	a, _ := json.Marshal(byMonths)
	b, _ := json.Marshal(byInstant)
	if string(a) != string(b) {
		t.Fatal("expected identical reports for equal horizons")
	}
}
