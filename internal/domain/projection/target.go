package projection

// EffectiveTarget resolves the required proficiency (Soll) for an
// employee-skill pair: the maximum of the individual override on the
// assessment and every requirement for the skill declared by the
// employee's roles or their ancestors. A result of 0 means no target is
// defined, not a target achieved at zero. Cycles are rejected in
// NewEngine, so the inheritance walk terminates.
func (e *Engine) EffectiveTarget(employeeID, skillID string) int {
	target := 0
	if assessment, ok := e.assessments[Pair{employeeID, skillID}]; ok && assessment.TargetLevel != nil {
		target = *assessment.TargetLevel
	}

	employee, ok := e.employeesByID[employeeID]
	if !ok {
		return target
	}
	for _, roleName := range employee.Roles {
		role, ok := e.rolesByName[roleName]
		if !ok {
			continue
		}
		for {
			for _, req := range role.RequiredSkills {
				if req.SkillID == skillID && req.Level > target {
					target = req.Level
				}
			}
			if role.InheritsFromID == "" {
				break
			}
			parent, ok := e.rolesByID[role.InheritsFromID]
			if !ok {
				break
			}
			role = parent
		}
	}
	return target
}
