package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

// Ensure RulesStore implements store.RulesStore
var _ store.RulesStore = (*RulesStore)(nil)

// RulesStore implements store.RulesStore using GORM
type RulesStore struct {
	db *gorm.DB
}

// NewRulesStore creates a new RulesStore
func NewRulesStore(db *gorm.DB) *RulesStore {
	return &RulesStore{db: db}
}

// RulesForGroup returns the rules attached directly to a group
func (s *RulesStore) RulesForGroup(ctx context.Context, groupID string) ([]model.Rule, error) {
	var rules []model.Rule
	tx := s.db.WithContext(ctx).Raw(`
		SELECT r.id, r.title, r.url, r.method, r.slug, r.description
		FROM rules r
		JOIN rule_accesses ra ON ra.rule_id = r.id
		WHERE ra.group_id = ?
		ORDER BY r.id
	`, groupID).Scan(&rules)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rules, nil
}

// CreateRule inserts a rule
func (s *RulesStore) CreateRule(ctx context.Context, r *model.Rule) error {
	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO rules (id, title, url, method, slug, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Title, r.URL, r.Method, r.Slug, r.Description).Error
	return translate(err, store.ErrRuleNotFound)
}

// AttachRule attaches a rule to a group
func (s *RulesStore) AttachRule(ctx context.Context, groupID, ruleID string) error {
	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO rule_accesses (group_id, rule_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, groupID, ruleID).Error
	return translate(err, store.ErrRuleNotFound)
}
