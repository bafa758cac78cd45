package catalog

import (
	"context"
	"fmt"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, name string) (string, error) {
	return s.store.CreateCategory(ctx, name)
}

func (s *Service) ListSubCategories(ctx context.Context) ([]SubCategory, error) {
	return s.store.ListSubCategories(ctx)
}

func (s *Service) CreateSubCategory(ctx context.Context, name, categoryID string) (string, error) {
	return s.store.CreateSubCategory(ctx, name, categoryID)
}

func (s *Service) ListSkills(ctx context.Context) ([]Skill, error) {
	return s.store.ListSkills(ctx)
}

func (s *Service) CreateSkill(ctx context.Context, name, description, subCategoryID string) (string, error) {
	return s.store.CreateSkill(ctx, name, description, subCategoryID)
}

func (s *Service) UpdateSkill(ctx context.Context, skillID, name, description string) error {
	return s.store.UpdateSkill(ctx, skillID, name, description)
}

func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.store.ListRoles(ctx)
}

func (s *Service) CreateRole(ctx context.Context, name, inheritsFromID string, requirements []RoleRequirement) (string, error) {
	if err := validateRequirements(requirements); err != nil {
		return "", err
	}
	existing, err := s.store.ListRoles(ctx)
	if err != nil {
		return "", err
	}
	if err := checkInheritance(existing, "", inheritsFromID); err != nil {
		return "", err
	}
	return s.store.CreateRole(ctx, name, inheritsFromID, requirements)
}

func (s *Service) UpdateRole(ctx context.Context, roleID, name, inheritsFromID string, requirements []RoleRequirement) error {
	if err := validateRequirements(requirements); err != nil {
		return err
	}
	existing, err := s.store.ListRoles(ctx)
	if err != nil {
		return err
	}
	if err := checkInheritance(existing, roleID, inheritsFromID); err != nil {
		return err
	}
	return s.store.UpdateRole(ctx, roleID, name, inheritsFromID, requirements)
}

func validateRequirements(requirements []RoleRequirement) error {
	for _, req := range requirements {
		switch req.Level {
		case 0, 25, 50, 75, 100:
		default:
			return fmt.Errorf("skill %s: %w", req.SkillID, ErrInvalidRequirementLevel)
		}
	}
	return nil
}

// checkInheritance rejects a parent assignment that would close a cycle
// in the role forest. roleID is empty for new roles, which cannot close a
// cycle on their own.
func checkInheritance(roles []Role, roleID, parentID string) error {
	if parentID == "" {
		return nil
	}
	byID := make(map[string]Role, len(roles))
	for _, role := range roles {
		byID[role.ID] = role
	}
	if _, ok := byID[parentID]; !ok {
		return ErrUnknownParentRole
	}
	if roleID == "" {
		return nil
	}
	seen := map[string]bool{roleID: true}
	current := parentID
	for current != "" {
		if seen[current] {
			return ErrInheritanceCycle
		}
		seen[current] = true
		parent, ok := byID[current]
		if !ok {
			break
		}
		current = parent.InheritsFromID
	}
	return nil
}
