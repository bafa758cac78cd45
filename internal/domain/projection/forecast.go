package projection

import (
	"sort"
	"time"
)

// Projection is the simulated state at a forecast horizon.
type Projection struct {
	// Levels holds the projected level per pair, including pairs created
	// by measures that have no current assessment.
	Levels map[Pair]int
	// ActiveSet holds employees still active at the horizon. Departing
	// employees are excluded from every forecast aggregate.
	ActiveSet map[string]bool
	// Departures lists currently active employees whose deactivation
	// falls within the horizon.
	Departures []string

	PlannedByEmployee    map[string]int
	CompletingByEmployee map[string]int
	PlannedTotal         int
	CompletingTotal      int
}

// Forecast simulates the state at the horizon. Scheduled departures
// shrink the active set; measures in pending or in-progress status whose
// target date falls within the horizon raise the projected level of their
// pair to the measure target. A completing measure never lowers a level,
// and several measures for one pair compose by maximum. Measures whose
// plan or employee cannot be resolved are skipped.
func (e *Engine) Forecast(horizon time.Time) Projection {
	proj := Projection{
		Levels:               make(map[Pair]int, len(e.assessments)),
		ActiveSet:            make(map[string]bool, len(e.employeesByID)),
		PlannedByEmployee:    map[string]int{},
		CompletingByEmployee: map[string]int{},
	}
	for pair, assessment := range e.assessments {
		proj.Levels[pair] = assessment.Level
	}

	for _, employee := range e.snap.Employees {
		if !e.isActive(employee) {
			continue
		}
		departure := employee.DeactivationDate
		if departure != nil && departure.After(e.now) && !departure.After(horizon) {
			proj.Departures = append(proj.Departures, employee.ID)
			continue
		}
		proj.ActiveSet[employee.ID] = true
	}
	sort.Strings(proj.Departures)

	for _, measure := range e.snap.Measures {
		if measure.Status != MeasureStatusPending && measure.Status != MeasureStatusInProgress {
			continue
		}
		plan, ok := e.plansByID[measure.PlanID]
		if !ok {
			continue
		}
		if _, ok := e.employeesByID[plan.EmployeeID]; !ok {
			continue
		}
		proj.PlannedByEmployee[plan.EmployeeID]++
		proj.PlannedTotal++

		if measure.TargetDate == nil || measure.TargetDate.After(horizon) {
			continue
		}
		proj.CompletingByEmployee[plan.EmployeeID]++
		proj.CompletingTotal++

		if !proj.ActiveSet[plan.EmployeeID] {
			continue
		}
		pair := Pair{plan.EmployeeID, measure.SkillID}
		if measure.TargetLevel > proj.Levels[pair] {
			proj.Levels[pair] = measure.TargetLevel
		}
	}

	return proj
}
