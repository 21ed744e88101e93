package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

// PlannerService assembles payday plans. Plans carry no persistent state;
// every call recomputes from the user's current tabs, rules, settings, and
// income schedules.
type PlannerService struct {
	storage *storage.SQLiteRepository
}

func NewPlannerService(storage *storage.SQLiteRepository) *PlannerService {
	return &PlannerService{storage: storage}
}

// Plan is the full planner response: prioritized items, the safety summary,
// and per-category envelope targets.
type Plan struct {
	Items     []core.PlanItem
	Summary   core.PlanSummary
	Envelopes []core.EnvelopeTarget
}

// BuildPlan loads the four inputs concurrently and runs the planner over them.
func (s *PlannerService) BuildPlan(ctx context.Context, userID string, now time.Time) (Plan, error) {
	var (
		tabs     []core.Tab
		rules    []core.Rule
		settings core.PaydaySettings
		income   []core.IncomeSchedule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tabs, err = s.storage.ListTabs(gctx, userID)
		if err != nil {
			return fmt.Errorf("load tabs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rules, err = s.storage.ListRules(gctx, userID)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		settings, err = s.storage.GetPaydaySettings(gctx, userID)
		if err != nil {
			return fmt.Errorf("load payday settings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		income, err = s.storage.ListIncomeSchedules(gctx, userID)
		if err != nil {
			return fmt.Errorf("load income schedules: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Plan{}, err
	}

	items := core.BuildPlan(tabs, rules, settings, now)
	return Plan{
		Items:     items,
		Summary:   core.Summarize(items, settings, income, now),
		Envelopes: core.EnvelopeTargets(items),
	}, nil
}
