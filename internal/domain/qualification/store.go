package qualification

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListPlans(ctx context.Context, employeeID string) ([]Plan, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, COALESCE(target_role_id::text, ''), status, created_at
    FROM qualification_plans
    WHERE $1 = '' OR employee_id::text = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var plan Plan
		if err := rows.Scan(&plan.ID, &plan.EmployeeID, &plan.TargetRoleID, &plan.Status, &plan.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *Store) CreatePlan(ctx context.Context, employeeID, targetRoleID, status string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO qualification_plans (employee_id, target_role_id, status)
    VALUES ($1, NULLIF($2, '')::uuid, $3)
    RETURNING id
  `, employeeID, targetRoleID, status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdatePlanStatus(ctx context.Context, planID, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE qualification_plans
    SET status = $2
    WHERE id = $1
  `, planID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) ListMeasures(ctx context.Context, planID string) ([]Measure, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, plan_id, skill_id, current_level, target_level, status, target_date, created_at, updated_at
    FROM qualification_measures
    WHERE plan_id = $1
    ORDER BY created_at
  `, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var measures []Measure
	for rows.Next() {
		var measure Measure
		if err := rows.Scan(&measure.ID, &measure.PlanID, &measure.SkillID, &measure.CurrentLevel, &measure.TargetLevel, &measure.Status, &measure.TargetDate, &measure.CreatedAt, &measure.UpdatedAt); err != nil {
			return nil, err
		}
		measures = append(measures, measure)
	}
	return measures, rows.Err()
}

func (s *Store) CreateMeasure(ctx context.Context, measure Measure) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO qualification_measures (plan_id, skill_id, current_level, target_level, status, target_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, measure.PlanID, measure.SkillID, measure.CurrentLevel, measure.TargetLevel, measure.Status, measure.TargetDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateMeasure(ctx context.Context, measure Measure) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE qualification_measures
    SET current_level = $2, target_level = $3, status = $4, target_date = $5, updated_at = now()
    WHERE id = $1
  `, measure.ID, measure.CurrentLevel, measure.TargetLevel, measure.Status, measure.TargetDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
