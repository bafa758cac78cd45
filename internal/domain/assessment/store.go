package assessment

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) List(ctx context.Context, employeeID string) ([]Assessment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, skill_id, level, target_level, updated_at
    FROM assessments
    WHERE $1 = '' OR employee_id::text = $1
    ORDER BY employee_id, skill_id
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.EmployeeID, &a.SkillID, &a.Level, &a.TargetLevel, &a.UpdatedAt); err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// Upsert writes the current proficiency for a pair. When the level
// changes, one log entry carrying the previous level is appended in the
// same transaction, keeping the replay chain intact. A brand-new pair
// chains from level 0.
func (s *Store) Upsert(ctx context.Context, employeeID, skillID string, level int, targetLevel *int) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	previous := 0
	err = tx.QueryRow(ctx, `
    SELECT level
    FROM assessments
    WHERE employee_id = $1 AND skill_id = $2
    FOR UPDATE
  `, employeeID, skillID).Scan(&previous)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO assessments (employee_id, skill_id, level, target_level)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (employee_id, skill_id)
    DO UPDATE SET level = EXCLUDED.level, target_level = EXCLUDED.target_level, updated_at = now()
  `, employeeID, skillID, level, targetLevel); err != nil {
		return err
	}

	if previous != level {
		if _, err := tx.Exec(ctx, `
      INSERT INTO assessment_log (employee_id, skill_id, previous_level, new_level)
      VALUES ($1,$2,$3,$4)
    `, employeeID, skillID, previous, level); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) ListLog(ctx context.Context, employeeID, skillID string) ([]LogEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, skill_id, previous_level, new_level, changed_at
    FROM assessment_log
    WHERE ($1 = '' OR employee_id::text = $1)
      AND ($2 = '' OR skill_id::text = $2)
    ORDER BY changed_at
  `, employeeID, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var entry LogEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.SkillID, &entry.PreviousLevel, &entry.NewLevel, &entry.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
