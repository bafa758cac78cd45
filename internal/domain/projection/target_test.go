package projection

import (
	"testing"
	"time"
)

func testNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func mustEngine(t *testing.T, snap Snapshot) *Engine {
	t.Helper()
	engine, err := NewEngine(snap, testNow())
	if err != nil {
		t.Fatalf("unexpected engine error: %v", err)
	}
	return engine
}

func TestEffectiveTargetPrefersRoleRequirementOverOverride(t *testing.T) {
	engine := mustEngine(t, Snapshot{
		Roles: []Role{
			{ID: "r1", Name: "Welder", RequiredSkills: []RoleRequirement{{SkillID: "s1", Level: 75}}},
		},
		Skills:    []Skill{{ID: "s1", Name: "MIG welding"}},
		Employees: []Employee{{ID: "e1", Name: "Anna", Roles: []string{"Welder"}}},
		Assessments: []Assessment{
			{EmployeeID: "e1", SkillID: "s1", Level: 50, TargetLevel: intPtr(50)},
		},
	})

	if got := engine.EffectiveTarget("e1", "s1"); got != 75 {
		t.Fatalf("expected role requirement 75 to win, got %d", got)
	}
}

func TestEffectiveTargetWalksInheritanceChain(t *testing.T) {
	engine := mustEngine(t, Snapshot{
		Roles: []Role{
			{ID: "base", Name: "Technician", RequiredSkills: []RoleRequirement{{SkillID: "s1", Level: 100}}},
			{ID: "mid", Name: "Senior Technician", InheritsFromID: "base", RequiredSkills: []RoleRequirement{{SkillID: "s1", Level: 25}}},
			{ID: "top", Name: "Lead Technician", InheritsFromID: "mid"},
		},
		Skills:    []Skill{{ID: "s1", Name: "Hydraulics"}},
		Employees: []Employee{{ID: "e1", Name: "Ben", Roles: []string{"Lead Technician"}}},
	})

	if got := engine.EffectiveTarget("e1", "s1"); got != 100 {
		t.Fatalf("expected ancestor requirement 100, got %d", got)
	}
}

func TestEffectiveTargetIndividualOverrideWinsWhenHigher(t *testing.T) {
	engine := mustEngine(t, Snapshot{
		Roles: []Role{
			{ID: "r1", Name: "Welder", RequiredSkills: []RoleRequirement{{SkillID: "s1", Level: 25}}},
		},
		Skills:    []Skill{{ID: "s1", Name: "MIG welding"}},
		Employees: []Employee{{ID: "e1", Name: "Anna", Roles: []string{"Welder"}}},
		Assessments: []Assessment{
			{EmployeeID: "e1", SkillID: "s1", Level: 0, TargetLevel: intPtr(90)},
		},
	})

	if got := engine.EffectiveTarget("e1", "s1"); got != 90 {
		t.Fatalf("expected override 90, got %d", got)
	}
}

func TestEffectiveTargetWithoutAnyRequirementIsZero(t *testing.T) {
	engine := mustEngine(t, Snapshot{
		Skills:    []Skill{{ID: "s1", Name: "Forklift"}},
		Employees: []Employee{{ID: "e1", Name: "Cara"}},
	})

	if got := engine.EffectiveTarget("e1", "s1"); got != 0 {
		t.Fatalf("expected 0 for undefined target, got %d", got)
	}
}

func TestEffectiveTargetUnresolvableParentActsAsRoot(t *testing.T) {
	engine := mustEngine(t, Snapshot{
		Roles: []Role{
			{ID: "r1", Name: "Welder", InheritsFromID: "gone", RequiredSkills: []RoleRequirement{{SkillID: "s1", Level: 50}}},
		},
		Skills:    []Skill{{ID: "s1", Name: "MIG welding"}},
		Employees: []Employee{{ID: "e1", Name: "Anna", Roles: []string{"Welder"}}},
	})

	if got := engine.EffectiveTarget("e1", "s1"); got != 50 {
		t.Fatalf("expected 50 from the orphaned role itself, got %d", got)
	}
}

func TestNewEngineRejectsRoleCycle(t *testing.T) {
	_, err := NewEngine(Snapshot{
		Roles: []Role{
			{ID: "a", Name: "A", InheritsFromID: "b"},
			{ID: "b", Name: "B", InheritsFromID: "a"},
		},
	}, testNow())
	if err == nil {
		t.Fatal("expected cycle error")
	}
}

func TestNewEngineDropsOrphanedAssessments(t *testing.T) {
	engine := mustEngine(t, Snapshot{
		Skills:    []Skill{{ID: "s1", Name: "Forklift"}},
		Employees: []Employee{{ID: "e1", Name: "Cara"}},
		Assessments: []Assessment{
			{EmployeeID: "e1", SkillID: "s1", Level: 50},
			{EmployeeID: "ghost", SkillID: "s1", Level: 100},
			{EmployeeID: "e1", SkillID: "missing", Level: 100},
		},
	})

	if len(engine.assessments) != 1 {
		t.Fatalf("expected orphaned assessments dropped, got %d entries", len(engine.assessments))
	}
}
