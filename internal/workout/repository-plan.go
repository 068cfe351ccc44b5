package workout

import (
	"context"
	"fmt"
)

// planRepository persists the planned workouts under PlanKey.
type planRepository struct {
	baseRepository
}

func emptyPlan() Plan { return Plan{} }

func (r *planRepository) Get(ctx context.Context) (Plan, error) {
	plan, _, err := loadDocument(ctx, r.baseRepository, PlanKey, emptyPlan)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if plan == nil {
		plan = emptyPlan()
	}
	return plan, nil
}

func (r *planRepository) Set(ctx context.Context, plan Plan) error {
	if plan == nil {
		plan = emptyPlan()
	}
	if err := saveDocument(ctx, r.baseRepository, PlanKey, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}
