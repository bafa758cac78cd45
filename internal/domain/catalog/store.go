package catalog

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

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM categories
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (s *Store) CreateCategory(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO categories (name)
    VALUES ($1)
    RETURNING id
  `, name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListSubCategories(ctx context.Context) ([]SubCategory, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, category_id, created_at
    FROM subcategories
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []SubCategory
	for rows.Next() {
		var sub SubCategory
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CategoryID, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Store) CreateSubCategory(ctx context.Context, name, categoryID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO subcategories (name, category_id)
    VALUES ($1,$2)
    RETURNING id
  `, name, categoryID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(description, ''), subcategory_id, created_at, updated_at
    FROM skills
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []Skill
	for rows.Next() {
		var skill Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.Description, &skill.SubCategoryID, &skill.CreatedAt, &skill.UpdatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

func (s *Store) CreateSkill(ctx context.Context, name, description, subCategoryID string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO skills (name, description, subcategory_id)
    VALUES ($1,$2,$3)
    RETURNING id
  `, name, description, subCategoryID).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateSkill only renames and re-describes; assessments keep referencing
// the same skill id.
func (s *Store) UpdateSkill(ctx context.Context, skillID, name, description string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE skills
    SET name = $2, description = $3, updated_at = now()
    WHERE id = $1
  `, skillID, name, description)
	return err
}

func (s *Store) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(inherits_from_id::text, ''), created_at
    FROM roles
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	index := map[string]int{}
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name, &role.InheritsFromID, &role.CreatedAt); err != nil {
			return nil, err
		}
		index[role.ID] = len(roles)
		roles = append(roles, role)
	}
	rows.Close()

	reqRows, err := s.DB.Query(ctx, `
    SELECT role_id, skill_id, level
    FROM role_skills
    ORDER BY role_id, position
  `)
	if err != nil {
		return nil, err
	}
	defer reqRows.Close()
	for reqRows.Next() {
		var roleID string
		var req RoleRequirement
		if err := reqRows.Scan(&roleID, &req.SkillID, &req.Level); err != nil {
			return nil, err
		}
		if i, ok := index[roleID]; ok {
			roles[i].RequiredSkills = append(roles[i].RequiredSkills, req)
		}
	}
	return roles, reqRows.Err()
}

func (s *Store) CreateRole(ctx context.Context, name, inheritsFromID string, requirements []RoleRequirement) (string, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
    INSERT INTO roles (name, inherits_from_id)
    VALUES ($1, NULLIF($2, '')::uuid)
    RETURNING id
  `, name, inheritsFromID).Scan(&id)
	if err != nil {
		return "", err
	}
	if err := insertRequirements(ctx, tx, id, requirements); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateRole(ctx context.Context, roleID, name, inheritsFromID string, requirements []RoleRequirement) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE roles
    SET name = $2, inherits_from_id = NULLIF($3, '')::uuid
    WHERE id = $1
  `, roleID, name, inheritsFromID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if _, err := tx.Exec(ctx, `DELETE FROM role_skills WHERE role_id = $1`, roleID); err != nil {
		return err
	}
	if err := insertRequirements(ctx, tx, roleID, requirements); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertRequirements(ctx context.Context, tx pgx.Tx, roleID string, requirements []RoleRequirement) error {
	for position, req := range requirements {
		if _, err := tx.Exec(ctx, `
      INSERT INTO role_skills (role_id, skill_id, level, position)
      VALUES ($1,$2,$3,$4)
    `, roleID, req.SkillID, req.Level, position); err != nil {
			return err
		}
	}
	return nil
}
