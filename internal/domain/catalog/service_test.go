package catalog

import (
	"errors"
	"testing"
)

func TestCheckInheritanceRejectsCycle(t *testing.T) {
	roles := []Role{
		{ID: "a", Name: "A", InheritsFromID: "b"},
		{ID: "b", Name: "B"},
	}
	// Pointing b at a would close a -> b -> a.
	if err := checkInheritance(roles, "b", "a"); !errors.Is(err, ErrInheritanceCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestCheckInheritanceSelfParent(t *testing.T) {
	roles := []Role{{ID: "a", Name: "A"}}
	if err := checkInheritance(roles, "a", "a"); !errors.Is(err, ErrInheritanceCycle) {
		t.Fatalf("expected cycle error for self-parent, got %v", err)
	}
}

func TestCheckInheritanceAllowsChain(t *testing.T) {
	roles := []Role{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", InheritsFromID: "a"},
	}
	if err := checkInheritance(roles, "c", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckInheritanceUnknownParent(t *testing.T) {
	if err := checkInheritance(nil, "a", "missing"); !errors.Is(err, ErrUnknownParentRole) {
		t.Fatalf("expected unknown parent error, got %v", err)
	}
}

func TestValidateRequirements(t *testing.T) {
	err := validateRequirements([]RoleRequirement{{SkillID: "s1", Level: 60}})
	if !errors.Is(err, ErrInvalidRequirementLevel) {
		t.Fatalf("expected invalid level error, got %v", err)
	}
	if err := validateRequirements([]RoleRequirement{{SkillID: "s1", Level: 75}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
