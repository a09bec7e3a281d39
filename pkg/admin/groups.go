package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/hierarchy"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
)

// Group and rule administration changes what every admin can reach, so it is
// reserved for the root administrator.
func requireRoot(acting *identity.Identity) error {
	if acting == nil || !acting.IsRoot {
		return ErrForbidden
	}
	return nil
}

// GroupInput describes a new group
type GroupInput struct {
	Title       string
	Description string
	// ParentID is empty for a root group
	ParentID string
}

// CreateGroup adds a group under in.ParentID
func (s *Service) CreateGroup(ctx context.Context, in GroupInput, acting *identity.Identity) (created *model.Group, err error) {
	id := s.newID()
	defer func() {
		s.auditor.Log(audit.GroupEvent{
			ActorID:      actor(acting),
			GroupID:      id,
			ParentID:     in.ParentID,
			ClientIP:     acting.ClientIP(),
			Operation:    "create-group",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := requireRoot(acting); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	g := &model.Group{ID: id, Title: in.Title, Description: in.Description}
	if in.ParentID != "" {
		parent := in.ParentID
		g.ParentID = &parent
	}
	if err := s.groups.CreateGroup(ctx, g); err != nil {
		return nil, translate(err)
	}
	return g, nil
}

// MoveGroup re-parents a group. An empty parentID makes it a root.
func (s *Service) MoveGroup(ctx context.Context, id, parentID string, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.GroupEvent{
			ActorID:      actor(acting),
			GroupID:      id,
			ParentID:     parentID,
			ClientIP:     acting.ClientIP(),
			Operation:    "move-group",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := requireRoot(acting); err != nil {
		return err
	}

	h, err := hierarchy.Load(ctx, s.groups)
	if err != nil {
		return err
	}
	if !h.Contains(id) {
		return fmt.Errorf("%w: group %s", ErrNotFound, id)
	}
	if err := h.CheckParent(id, parentID); err != nil {
		return translate(err)
	}
	return translate(s.groups.SetParent(ctx, id, parentID))
}

// CreateRule adds a rule. Its id is generated.
func (s *Service) CreateRule(ctx context.Context, rule model.Rule, acting *identity.Identity) (created *model.Rule, err error) {
	rule.ID = s.newID()
	defer func() {
		s.auditor.Log(audit.RuleEvent{
			ActorID:      actor(acting),
			RuleID:       rule.ID,
			ClientIP:     acting.ClientIP(),
			Operation:    "create-rule",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := requireRoot(acting); err != nil {
		return nil, err
	}
	if strings.TrimSpace(rule.Slug) == "" || strings.TrimSpace(rule.Title) == "" {
		return nil, fmt.Errorf("%w: rule title and slug are required", ErrInvalidInput)
	}
	if err := s.rules.CreateRule(ctx, &rule); err != nil {
		return nil, translate(err)
	}
	return &rule, nil
}

// AttachRule grants ruleID to every member of groupID
func (s *Service) AttachRule(ctx context.Context, groupID, ruleID string, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.RuleEvent{
			ActorID:      actor(acting),
			RuleID:       ruleID,
			GroupID:      groupID,
			ClientIP:     acting.ClientIP(),
			Operation:    "attach-rule",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := requireRoot(acting); err != nil {
		return err
	}
	return translate(s.rules.AttachRule(ctx, groupID, ruleID))
}
