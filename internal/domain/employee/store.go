package employee

import (
	"context"
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

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(department, ''), roles, is_active, deactivation_date, created_at, updated_at
    FROM employees
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Department, &employee.Roles, &employee.Active, &employee.DeactivationDate, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string) (Employee, error) {
	var employee Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, COALESCE(department, ''), roles, is_active, deactivation_date, created_at, updated_at
    FROM employees
    WHERE id = $1
  `, employeeID).Scan(&employee.ID, &employee.Name, &employee.Department, &employee.Roles, &employee.Active, &employee.DeactivationDate, &employee.CreatedAt, &employee.UpdatedAt)
	return employee, err
}

func (s *Store) Create(ctx context.Context, name, department string, roles []string) (string, error) {
	if roles == nil {
		roles = []string{}
	}
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, department, roles)
    VALUES ($1,$2,$3)
    RETURNING id
  `, name, department, roles).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, employeeID, name, department string, roles []string) error {
	if roles == nil {
		roles = []string{}
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2, department = $3, roles = $4, updated_at = now()
    WHERE id = $1
  `, employeeID, name, department, roles)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ScheduleDeparture marks a planned or occurred exit. A date in the
// future keeps the employee active until then; the forecast treats it as
// a departure once the horizon reaches it.
func (s *Store) ScheduleDeparture(ctx context.Context, employeeID string, at time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET deactivation_date = $2,
        is_active = CASE WHEN $2 <= now() THEN FALSE ELSE is_active END,
        updated_at = now()
    WHERE id = $1
  `, employeeID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
