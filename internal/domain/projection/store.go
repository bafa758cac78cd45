package projection

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// scanAll drains one result set. The trailing rows.Err() check matters:
// an iteration error would otherwise truncate the snapshot silently and
// the engine would report over partial data.
func scanAll[T any](rows pgx.Rows, queryErr error, scan func(pgx.Rows) (T, error)) ([]T, error) {
	if queryErr != nil {
		return nil, queryErr
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LoadSnapshot materializes the full engine input in one pass, along with
// a version string that changes whenever any input row changes. The
// version keys the report cache.
func (s *Store) LoadSnapshot(ctx context.Context) (Snapshot, string, error) {
	var snap Snapshot
	var err error

	rows, queryErr := s.DB.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	snap.Categories, err = scanAll(rows, queryErr, func(rows pgx.Rows) (Category, error) {
		var category Category
		err := rows.Scan(&category.ID, &category.Name)
		return category, err
	})
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `SELECT id, name, category_id FROM subcategories ORDER BY name`)
	snap.SubCategories, err = scanAll(rows, queryErr, func(rows pgx.Rows) (SubCategory, error) {
		var sub SubCategory
		err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID)
		return sub, err
	})
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `SELECT id, name, subcategory_id FROM skills ORDER BY name`)
	snap.Skills, err = scanAll(rows, queryErr, func(rows pgx.Rows) (Skill, error) {
		var skill Skill
		err := rows.Scan(&skill.ID, &skill.Name, &skill.SubCategoryID)
		return skill, err
	})
	if err != nil {
		return snap, "", err
	}

	snap.Roles, err = s.loadRoles(ctx)
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `
    SELECT id, name, COALESCE(department, ''), roles, is_active, deactivation_date
    FROM employees
    ORDER BY name
  `)
	snap.Employees, err = scanAll(rows, queryErr, func(rows pgx.Rows) (Employee, error) {
		var employee Employee
		err := rows.Scan(&employee.ID, &employee.Name, &employee.Department, &employee.Roles, &employee.Active, &employee.DeactivationDate)
		return employee, err
	})
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `SELECT employee_id, skill_id, level, target_level FROM assessments`)
	snap.Assessments, err = scanAll(rows, queryErr, func(rows pgx.Rows) (Assessment, error) {
		var assessment Assessment
		err := rows.Scan(&assessment.EmployeeID, &assessment.SkillID, &assessment.Level, &assessment.TargetLevel)
		return assessment, err
	})
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `
    SELECT employee_id, skill_id, previous_level, new_level, changed_at
    FROM assessment_log
    ORDER BY changed_at
  `)
	snap.Log, err = scanAll(rows, queryErr, func(rows pgx.Rows) (LogEntry, error) {
		var entry LogEntry
		err := rows.Scan(&entry.EmployeeID, &entry.SkillID, &entry.PreviousLevel, &entry.NewLevel, &entry.Timestamp)
		return entry, err
	})
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(target_role_id::text, ''), status
    FROM qualification_plans
  `)
	snap.Plans, err = scanAll(rows, queryErr, func(rows pgx.Rows) (Plan, error) {
		var plan Plan
		err := rows.Scan(&plan.ID, &plan.EmployeeID, &plan.TargetRoleID, &plan.Status)
		return plan, err
	})
	if err != nil {
		return snap, "", err
	}

	rows, queryErr = s.DB.Query(ctx, `
    SELECT id, plan_id, skill_id, current_level, target_level, status, target_date
    FROM qualification_measures
  `)
	snap.Measures, err = scanAll(rows, queryErr, func(rows pgx.Rows) (Measure, error) {
		var measure Measure
		err := rows.Scan(&measure.ID, &measure.PlanID, &measure.SkillID, &measure.CurrentLevel, &measure.TargetLevel, &measure.Status, &measure.TargetDate)
		return measure, err
	})
	if err != nil {
		return snap, "", err
	}

	version, err := s.snapshotVersion(ctx)
	if err != nil {
		return snap, "", err
	}
	return snap, version, nil
}

func (s *Store) loadRoles(ctx context.Context) ([]Role, error) {
	rows, queryErr := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(inherits_from_id::text, '')
    FROM roles
    ORDER BY name
  `)
	roles, err := scanAll(rows, queryErr, func(rows pgx.Rows) (Role, error) {
		var role Role
		err := rows.Scan(&role.ID, &role.Name, &role.InheritsFromID)
		return role, err
	})
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(roles))
	for i, role := range roles {
		index[role.ID] = i
	}

	type roleRequirement struct {
		RoleID string
		Req    RoleRequirement
	}
	rows, queryErr = s.DB.Query(ctx, `
    SELECT role_id, skill_id, level
    FROM role_skills
    ORDER BY role_id, position
  `)
	requirements, err := scanAll(rows, queryErr, func(rows pgx.Rows) (roleRequirement, error) {
		var rr roleRequirement
		err := rows.Scan(&rr.RoleID, &rr.Req.SkillID, &rr.Req.Level)
		return rr, err
	})
	if err != nil {
		return nil, err
	}
	for _, rr := range requirements {
		if i, ok := index[rr.RoleID]; ok {
			roles[i].RequiredSkills = append(roles[i].RequiredSkills, rr.Req)
		}
	}
	return roles, nil
}

func (s *Store) snapshotVersion(ctx context.Context) (string, error) {
	var employees, assessments, logEntries, measures int
	var lastChange, lastAssessment, lastMeasure time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(*) FROM employees),
      (SELECT COUNT(*) FROM assessments),
      (SELECT COUNT(*) FROM assessment_log),
      (SELECT COUNT(*) FROM qualification_measures),
      (SELECT COALESCE(MAX(changed_at), 'epoch'::timestamptz) FROM assessment_log),
      (SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM assessments),
      (SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM qualification_measures)
  `).Scan(&employees, &assessments, &logEntries, &measures, &lastChange, &lastAssessment, &lastMeasure)
	if err != nil {
		return "", err
	}
	latest := lastChange
	if lastAssessment.After(latest) {
		latest = lastAssessment
	}
	if lastMeasure.After(latest) {
		latest = lastMeasure
	}
	return fmt.Sprintf("%d.%d.%d.%d.%d", employees, assessments, logEntries, measures, latest.UnixNano()), nil
}
