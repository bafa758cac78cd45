package qualification

import (
	"context"
	"fmt"

	"qmatrix/internal/domain/assessment"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListPlans(ctx context.Context, employeeID string) ([]Plan, error) {
	return s.store.ListPlans(ctx, employeeID)
}

func (s *Service) CreatePlan(ctx context.Context, employeeID, targetRoleID, status string) (string, error) {
	if status == "" {
		status = PlanStatusDraft
	}
	if !ValidPlanStatus(status) {
		return "", fmt.Errorf("%q: %w", status, ErrUnknownPlanStatus)
	}
	return s.store.CreatePlan(ctx, employeeID, targetRoleID, status)
}

func (s *Service) UpdatePlanStatus(ctx context.Context, planID, status string) error {
	if !ValidPlanStatus(status) {
		return fmt.Errorf("%q: %w", status, ErrUnknownPlanStatus)
	}
	return s.store.UpdatePlanStatus(ctx, planID, status)
}

func (s *Service) ListMeasures(ctx context.Context, planID string) ([]Measure, error) {
	return s.store.ListMeasures(ctx, planID)
}

func (s *Service) CreateMeasure(ctx context.Context, measure Measure) (string, error) {
	if measure.Status == "" {
		measure.Status = MeasureStatusPending
	}
	if !ValidMeasureStatus(measure.Status) {
		return "", fmt.Errorf("%q: %w", measure.Status, ErrUnknownMeasureStatus)
	}
	if !assessment.ValidLevel(measure.TargetLevel) {
		return "", assessment.ErrInvalidLevel
	}
	return s.store.CreateMeasure(ctx, measure)
}

func (s *Service) UpdateMeasure(ctx context.Context, measure Measure) error {
	if !ValidMeasureStatus(measure.Status) {
		return fmt.Errorf("%q: %w", measure.Status, ErrUnknownMeasureStatus)
	}
	if !assessment.ValidLevel(measure.TargetLevel) {
		return assessment.ErrInvalidLevel
	}
	return s.store.UpdateMeasure(ctx, measure)
}
