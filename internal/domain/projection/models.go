package projection

import "time"

// Proficiency levels. LevelNotAssessed marks a skill as not applicable for
// an employee and is excluded from every average.
const (
	LevelNotAssessed = -1
	LevelNone        = 0
	LevelBasic       = 25
	LevelAdvanced    = 50
	LevelExperienced = 75
	LevelExpert      = 100
)

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

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SubCategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
}

type Skill struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SubCategoryID string `json:"subCategoryId"`
}

type RoleRequirement struct {
	SkillID string `json:"skillId"`
	Level   int    `json:"level"`
}

// Role declares required proficiency per skill. Roles form a forest via
// InheritsFromID; an unresolvable parent is treated as a root.
type Role struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	InheritsFromID string            `json:"inheritsFromId,omitempty"`
	RequiredSkills []RoleRequirement `json:"requiredSkills"`
}

// Employee references roles by name. A nil Active flag counts as active.
type Employee struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Roles            []string   `json:"roles"`
	Department       string     `json:"department,omitempty"`
	Active           *bool      `json:"isActive,omitempty"`
	DeactivationDate *time.Time `json:"deactivationDate,omitempty"`
}

// Assessment is the current proficiency record, unique per employee and
// skill. TargetLevel is an individual override of the required proficiency.
type Assessment struct {
	EmployeeID  string `json:"employeeId"`
	SkillID     string `json:"skillId"`
	Level       int    `json:"level"`
	TargetLevel *int   `json:"targetLevel,omitempty"`
}

// LogEntry is one immutable proficiency change. For a fixed pair the
// entries chain: each PreviousLevel equals the NewLevel of the entry
// before it, starting from 0.
type LogEntry struct {
	EmployeeID    string    `json:"employeeId"`
	SkillID       string    `json:"skillId"`
	PreviousLevel int       `json:"previousLevel"`
	NewLevel      int       `json:"newLevel"`
	Timestamp     time.Time `json:"timestamp"`
}

type Plan struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	TargetRoleID string `json:"targetRoleId,omitempty"`
	Status       string `json:"status"`
}

type Measure struct {
	ID           string     `json:"id"`
	PlanID       string     `json:"planId"`
	SkillID      string     `json:"skillId"`
	CurrentLevel int        `json:"currentLevel"`
	TargetLevel  int        `json:"targetLevel"`
	Status       string     `json:"status"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
}

// Snapshot is the immutable input the engine is built from. The engine
// never mutates it and performs no I/O of its own.
type Snapshot struct {
	Categories    []Category
	SubCategories []SubCategory
	Skills        []Skill
	Roles         []Role
	Employees     []Employee
	Assessments   []Assessment
	Log           []LogEntry
	Plans         []Plan
	Measures      []Measure
}

// Pair keys per-employee-per-skill state.
type Pair struct {
	EmployeeID string
	SkillID    string
}

type KPISet struct {
	CurrentAvg         *float64 `json:"currentAvg"`
	ForecastAvg        *float64 `json:"forecastAvg"`
	AvgDelta           *float64 `json:"avgDelta"`
	CurrentDeficits    int      `json:"currentDeficits"`
	ForecastDeficits   int      `json:"forecastDeficits"`
	DeficitDelta       int      `json:"deficitDelta"`
	CurrentXP          int      `json:"currentXp"`
	ForecastXP         int      `json:"forecastXp"`
	XPDelta            int      `json:"xpDelta"`
	Departures         int      `json:"departures"`
	PlannedMeasures    int      `json:"plannedMeasures"`
	CompletingMeasures int      `json:"completingMeasures"`
}

type SkillScore struct {
	SkillID             string `json:"skillId"`
	SkillName           string `json:"skillName"`
	Level               int    `json:"level"`
	Target              int    `json:"target"`
	CurrentFulfillment  int    `json:"currentFulfillment"`
	ForecastFulfillment int    `json:"forecastFulfillment"`
}

type EmployeeRow struct {
	EmployeeID         string       `json:"employeeId"`
	Name               string       `json:"name"`
	Department         string       `json:"department,omitempty"`
	CurrentAvg         *float64     `json:"currentAvg"`
	ForecastAvg        *float64     `json:"forecastAvg"`
	Delta              *float64     `json:"delta"`
	Departing          bool         `json:"departing"`
	PlannedMeasures    int          `json:"plannedMeasures"`
	CompletingMeasures int          `json:"completingMeasures"`
	Skills             []SkillScore `json:"skills"`
}

type CategoryBar struct {
	CategoryID  string   `json:"categoryId"`
	Name        string   `json:"name"`
	CurrentAvg  *float64 `json:"currentAvg"`
	ForecastAvg *float64 `json:"forecastAvg"`
}

type Report struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Instant     time.Time     `json:"instant"`
	KPIs        KPISet        `json:"kpis"`
	Employees   []EmployeeRow `json:"employees"`
	Categories  []CategoryBar `json:"categories"`
}
