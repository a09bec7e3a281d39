package admin

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

// CreateInput describes a new admin
type CreateInput struct {
	Name      string
	Nickname  string
	Email     string
	Introduce string
	// Password is the 32 character client-side digest
	Password string
	Avatar   string
	Status   model.Status
	IsRoot   bool
}

// UpdateInput holds the profile fields one admin may edit on another
type UpdateInput struct {
	Name      string
	Nickname  string
	Email     string
	Introduce string
	Avatar    string
	Status    model.Status
}

func checkAvatar(avatar string) error {
	if avatar != "" && utf8.RuneCountInString(avatar) != model.AvatarDigestLength {
		return fmt.Errorf("%w: avatar must be a %d character digest", ErrInvalidInput, model.AvatarDigestLength)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) checkUnique(ctx context.Context, name, email, excludeID string) error {
	taken, err := s.admins.NameOrEmailTaken(ctx, name, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: name or email in use", ErrAlreadyExists)
	}
	return nil
}

// Create adds a new admin. The new admin joins the acting admin's first group, if any.
func (s *Service) Create(ctx context.Context, in CreateInput, acting *identity.Identity) (created *model.Admin, err error) {
	id := s.newID()
	defer func() {
		s.auditor.Log(audit.ProfileEvent{
			ActorID:      actor(acting),
			TargetID:     id,
			ClientIP:     acting.ClientIP(),
			Operation:    "create",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := checkAvatar(in.Avatar); err != nil {
		return nil, err
	}
	if in.IsRoot && (acting == nil || !acting.IsRoot) {
		return nil, ErrForbidden
	}
	if err := s.checkUnique(ctx, in.Name, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	a := &model.Admin{
		ID:           id,
		Name:         in.Name,
		Nickname:     in.Nickname,
		Email:        in.Email,
		Introduce:    in.Introduce,
		PasswordHash: hash.Password,
		PasswordSalt: hash.Salt,
		Avatar:       optional(in.Avatar),
		Status:       in.Status,
		IsRoot:       in.IsRoot,
		CreatedIP:    acting.ClientIP(),
	}
	if err := s.admins.CreateAdmin(ctx, a); err != nil {
		return nil, translate(err)
	}

	if group := acting.FirstGroup(); group != "" {
		if err := s.access.CreateGroupAccess(ctx, id, []string{group}); err != nil {
			return nil, translate(err)
		}
	}
	return a, nil
}

// Update overwrites target's profile
func (s *Service) Update(ctx context.Context, target string, in UpdateInput, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.ProfileEvent{
			ActorID:      actor(acting),
			TargetID:     target,
			ClientIP:     acting.ClientIP(),
			Operation:    "update",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := guardOther(target, acting); err != nil {
		return err
	}
	if _, err := s.fetch(ctx, target); err != nil {
		return err
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := checkAvatar(in.Avatar); err != nil {
		return err
	}
	if err := s.checkUnique(ctx, in.Name, in.Email, target); err != nil {
		return err
	}

	return translate(s.admins.UpdateProfile(ctx, target, store.Profile{
		Name:      in.Name,
		Nickname:  in.Nickname,
		Email:     in.Email,
		Introduce: in.Introduce,
		Status:    in.Status,
		Avatar:    optional(in.Avatar),
	}))
}

// UpdateAvatar sets target's avatar digest
func (s *Service) UpdateAvatar(ctx context.Context, target, avatar string, acting *identity.Identity) (err error) {
	defer func() {
		s.auditor.Log(audit.ProfileEvent{
			ActorID:      actor(acting),
			TargetID:     target,
			ClientIP:     acting.ClientIP(),
			Operation:    "avatar",
			Success:      err == nil,
			ErrorMessage: errorMessage(err),
		})
	}()

	if err := guardOther(target, acting); err != nil {
		return err
	}
	if _, err := s.fetch(ctx, target); err != nil {
		return err
	}
	if avatar == "" {
		return fmt.Errorf("%w: avatar is required", ErrInvalidInput)
	}
	if err := checkAvatar(avatar); err != nil {
		return err
	}
	return translate(s.admins.UpdateAvatar(ctx, target, avatar))
}
