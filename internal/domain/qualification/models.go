package qualification

import "time"

const (
	PlanStatusDraft     = "draft"
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusArchived  = "archived"

	MeasureStatusPending    = "pending"
	MeasureStatusInProgress = "in_progress"
	MeasureStatusCompleted  = "completed"
	MeasureStatusCancelled  = "cancelled"
)

// Plan groups qualification measures for one employee, optionally toward
// a target role.
type Plan struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	TargetRoleID string    `json:"targetRoleId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Measure is one scheduled training activity. Only pending or in-progress
// measures with a target date participate in forecasting.
type Measure struct {
	ID           string     `json:"id"`
	PlanID       string     `json:"planId"`
	SkillID      string     `json:"skillId"`
	CurrentLevel int        `json:"currentLevel"`
	TargetLevel  int        `json:"targetLevel"`
	Status       string     `json:"status"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ValidPlanStatus reports whether v is a known plan status.
func ValidPlanStatus(v string) bool {
	switch v {
	case PlanStatusDraft, PlanStatusActive, PlanStatusCompleted, PlanStatusArchived:
		return true
	}
	return false
}

// ValidMeasureStatus reports whether v is a known measure status.
func ValidMeasureStatus(v string) bool {
	switch v {
	case MeasureStatusPending, MeasureStatusInProgress, MeasureStatusCompleted, MeasureStatusCancelled:
		return true
	}
	return false
}
