package access

import (
	"context"
	"fmt"

	"github.com/adminwarden/warden/pkg/model"
)

// RuleLookup returns the rules attached directly to a group
type RuleLookup interface {
	RulesForGroup(ctx context.Context, groupID string) ([]model.Rule, error)
}

// Resolver computes the effective rules of a set of groups
type Resolver struct {
	rules RuleLookup
}

// NewResolver creates a Resolver
func NewResolver(rules RuleLookup) *Resolver {
	return &Resolver{rules: rules}
}

// ResolveRules returns the union of rules attached to groupIDs, each rule once.
// Duplicate group ids are looked up once. The result is never nil.
func (r *Resolver) ResolveRules(ctx context.Context, groupIDs []string) ([]model.Rule, error) {
	out := make([]model.Rule, 0)
	seenRule := make(map[string]struct{})

	for _, gid := range Dedup(groupIDs) {
		rules, err := r.rules.RulesForGroup(ctx, gid)
		if err != nil {
			return nil, fmt.Errorf("rules for group %s: %w", gid, err)
		}
		for _, rule := range rules {
			if _, ok := seenRule[rule.ID]; ok {
				continue
			}
			seenRule[rule.ID] = struct{}{}
			out = append(out, rule)
		}
	}
	return out, nil
}

// Dedup returns ids without repeats, keeping the first occurrence order
func Dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
