package projection

import (
	"fmt"
	"time"
)

// Engine computes fulfillment reports over one immutable snapshot. It is
// safe for concurrent use; every query returns a fresh result.
type Engine struct {
	snap          Snapshot
	now           time.Time
	rolesByID     map[string]Role
	rolesByName   map[string]Role
	skillsByID    map[string]Skill
	subCatsByID   map[string]SubCategory
	employeesByID map[string]Employee
	assessments   map[Pair]Assessment
	plansByID     map[string]Plan
}

// NewEngine indexes the snapshot and validates the role inheritance
// forest. Assessments referencing an unknown employee or skill are
// orphaned data and dropped. A cycle among roles yields ErrRoleCycle.
func NewEngine(snap Snapshot, now time.Time) (*Engine, error) {
	e := &Engine{
		snap:          snap,
		now:           now,
		rolesByID:     make(map[string]Role, len(snap.Roles)),
		rolesByName:   make(map[string]Role, len(snap.Roles)),
		skillsByID:    make(map[string]Skill, len(snap.Skills)),
		subCatsByID:   make(map[string]SubCategory, len(snap.SubCategories)),
		employeesByID: make(map[string]Employee, len(snap.Employees)),
		assessments:   make(map[Pair]Assessment, len(snap.Assessments)),
		plansByID:     make(map[string]Plan, len(snap.Plans)),
	}

	for _, role := range snap.Roles {
		e.rolesByID[role.ID] = role
		e.rolesByName[role.Name] = role
	}
	if err := validateRoleForest(e.rolesByID); err != nil {
		return nil, err
	}

	for _, skill := range snap.Skills {
		e.skillsByID[skill.ID] = skill
	}
	for _, sub := range snap.SubCategories {
		e.subCatsByID[sub.ID] = sub
	}
	for _, employee := range snap.Employees {
		e.employeesByID[employee.ID] = employee
	}
	for _, plan := range snap.Plans {
		e.plansByID[plan.ID] = plan
	}
	for _, assessment := range snap.Assessments {
		if _, ok := e.employeesByID[assessment.EmployeeID]; !ok {
			continue
		}
		if _, ok := e.skillsByID[assessment.SkillID]; !ok {
			continue
		}
		e.assessments[Pair{assessment.EmployeeID, assessment.SkillID}] = assessment
	}

	return e, nil
}

func validateRoleForest(rolesByID map[string]Role) error {
	for id, role := range rolesByID {
		seen := map[string]bool{id: true}
		current := role
		for current.InheritsFromID != "" {
			parent, ok := rolesByID[current.InheritsFromID]
			if !ok {
				break
			}
			if seen[parent.ID] {
				return fmt.Errorf("role %s: %w", id, ErrRoleCycle)
			}
			seen[parent.ID] = true
			current = parent
		}
	}
	return nil
}

func (e *Engine) isActive(employee Employee) bool {
	return employee.Active == nil || *employee.Active
}
