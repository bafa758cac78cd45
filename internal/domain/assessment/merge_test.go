package assessment

import (
	"testing"
	"time"
)

func TestMergeLaterWriteWins(t *testing.T) {
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	local := []Assessment{{EmployeeID: "e1", SkillID: "s1", Level: 25, UpdatedAt: earlier}}
	remote := []Assessment{{EmployeeID: "e1", SkillID: "s1", Level: 75, UpdatedAt: later}}

	merged := Merge(local, remote)
	if len(merged) != 1 {
		t.Fatalf("expected 1 record, got %d", len(merged))
	}
	if merged[0].Level != 75 {
		t.Fatalf("expected remote level 75 to win, got %d", merged[0].Level)
	}
}

func TestMergeTiePrefersLocal(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	local := []Assessment{{EmployeeID: "e1", SkillID: "s1", Level: 25, UpdatedAt: at}}
	remote := []Assessment{{EmployeeID: "e1", SkillID: "s1", Level: 75, UpdatedAt: at}}

	merged := Merge(local, remote)
	if merged[0].Level != 25 {
		t.Fatalf("expected local level 25 on tie, got %d", merged[0].Level)
	}
}

func TestMergeUnionsDistinctPairs(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	local := []Assessment{{EmployeeID: "e1", SkillID: "s1", Level: 25, UpdatedAt: at}}
	remote := []Assessment{
		{EmployeeID: "e1", SkillID: "s2", Level: 50, UpdatedAt: at},
		{EmployeeID: "e2", SkillID: "s1", Level: 100, UpdatedAt: at},
	}

	merged := Merge(local, remote)
	if len(merged) != 3 {
		t.Fatalf("expected 3 records, got %d", len(merged))
	}
	// Deterministic order: by employee, then skill.
	if merged[0].SkillID != "s1" || merged[1].SkillID != "s2" || merged[2].EmployeeID != "e2" {
		t.Fatalf("unexpected order: %+v", merged)
	}
}

func TestValidLevel(t *testing.T) {
	for _, v := range []int{-1, 0, 25, 50, 75, 100} {
		if !ValidLevel(v) {
			t.Fatalf("expected %d to be valid", v)
		}
	}
	for _, v := range []int{-2, 1, 30, 99, 101} {
		if ValidLevel(v) {
			t.Fatalf("expected %d to be invalid", v)
		}
	}
}
