package assessment

import "time"

// Assessment is the current proficiency record, unique per employee and
// skill. Level -1 means not assessed; TargetLevel is an individual
// override of the required proficiency.
type Assessment struct {
	EmployeeID  string    `json:"employeeId"`
	SkillID     string    `json:"skillId"`
	Level       int       `json:"level"`
	TargetLevel *int      `json:"targetLevel,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LogEntry records one level change. Entries are append-only; for a fixed
// pair they chain from an initial level of 0.
type LogEntry struct {
	ID            int64     `json:"id"`
	EmployeeID    string    `json:"employeeId"`
	SkillID       string    `json:"skillId"`
	PreviousLevel int       `json:"previousLevel"`
	NewLevel      int       `json:"newLevel"`
	Timestamp     time.Time `json:"timestamp"`
}
