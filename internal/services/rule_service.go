package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sohamkakraa/TabScape/internal/cache"
	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

// RuleService owns categorization and recurring rules. Reads go through a
// per-user LRU cache since every transaction create resolves rules; any
// mutation invalidates the user's entry.
type RuleService struct {
	storage *storage.SQLiteRepository
	cache   *cache.LRUCache[[]core.Rule]
}

func NewRuleService(storage *storage.SQLiteRepository) *RuleService {
	return &RuleService{
		storage: storage,
		cache:   cache.NewLRUCache[[]core.Rule](500, 5*time.Minute),
	}
}

func (s *RuleService) List(ctx context.Context, userID string) ([]core.Rule, error) {
	if rules, ok := s.cache.Get(userID); ok {
		return rules, nil
	}
	rules, err := s.storage.ListRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	s.cache.Set(userID, rules)
	return rules, nil
}

func (s *RuleService) Create(ctx context.Context, userID string, rule core.Rule) error {
	if err := s.storage.CreateRule(ctx, userID, rule); err != nil {
		return fmt.Errorf("save rule: %w", err)
	}
	s.cache.Delete(userID)
	return nil
}

func (s *RuleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.storage.DeleteRule(ctx, userID, id); err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	s.cache.Delete(userID)
	return nil
}

// ResolveCategory applies the user's merchant rules to a transaction's
// merchant and memo, falling back to the given category.
func (s *RuleService) ResolveCategory(ctx context.Context, userID, merchant, memo string, fallback core.Category) (core.Category, error) {
	rules, err := s.List(ctx, userID)
	if err != nil {
		return fallback, err
	}
	return core.ResolveCategory(core.MerchantRules(rules), merchant, memo, fallback), nil
}

// Cache exposes the underlying cache for periodic expiry sweeps.
func (s *RuleService) Cache() *cache.LRUCache[[]core.Rule] {
	return s.cache
}
