// Package admin implements the administrative operations performed by one
// administrator on other administrators, groups and rules.
//
// Every operation takes the acting identity explicitly. Operations that
// change another admin refuse to run against the acting admin itself, and
// every mutation is reported to the Auditor whether it succeeds or not.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/adminwarden/warden/pkg/access"
	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/password"
	"github.com/adminwarden/warden/pkg/store"
	"github.com/adminwarden/warden/pkg/token"
)

// PasswordHasher derives stored password digests
type PasswordHasher interface {
	NewSalt() (string, error)
	Encrypt(plaintext, salt string) (password.Hash, error)
}

// TokenBlacklist records revoked refresh tokens by fingerprint
type TokenBlacklist interface {
	Add(ctx context.Context, fingerprint string, ttl time.Duration) error
	Contains(ctx context.Context, fingerprint string) (bool, error)
}

// TokenDecoder validates refresh tokens
type TokenDecoder interface {
	Decode(raw string) (*token.Claims, error)
}

// Auditor receives an event for every administrative action
type Auditor interface {
	Log(event audit.Event)
}

// Deps are the collaborators of a Service
type Deps struct {
	Admins    store.AdminsStore
	Groups    store.GroupsStore
	Access    store.AccessStore
	Rules     store.RulesStore
	Passwords PasswordHasher
	Blacklist TokenBlacklist
	Tokens    TokenDecoder
	Auditor   Auditor
	// RootAdminID is the account that can never be deleted
	RootAdminID string
	Logger      *slog.Logger
	// NewID generates ids for created admins, groups and rules. Defaults to uuid.NewString.
	NewID func() string
}

// Service performs administrative operations
type Service struct {
	admins      store.AdminsStore
	groups      store.GroupsStore
	access      store.AccessStore
	rules       store.RulesStore
	passwords   PasswordHasher
	blacklist   TokenBlacklist
	tokens      TokenDecoder
	auditor     Auditor
	rootAdminID string
	logger      *slog.Logger
	newID       func() string

	grants   *access.GrantManager
	resolver *access.Resolver
}

// New creates a Service
func New(d Deps) *Service {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Auditor == nil {
		d.Auditor = audit.Discard
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	return &Service{
		admins:      d.Admins,
		groups:      d.Groups,
		access:      d.Access,
		rules:       d.Rules,
		passwords:   d.Passwords,
		blacklist:   d.Blacklist,
		tokens:      d.Tokens,
		auditor:     d.Auditor,
		rootAdminID: d.RootAdminID,
		logger:      d.Logger,
		newID:       d.NewID,
		grants:      access.NewGrantManager(d.Admins, d.Groups, d.Access, d.Logger),
		resolver:    access.NewResolver(d.Rules),
	}
}

// guardOther rejects operations an admin may not perform on itself
func guardOther(target string, acting *identity.Identity) error {
	if acting.Is(target) {
		return ErrSelfModification
	}
	return nil
}

// fetch loads target, translating a missing admin into ErrNotFound
func (s *Service) fetch(ctx context.Context, target string) (*model.Admin, error) {
	a, err := s.admins.FetchAdmin(ctx, target)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func actor(acting *identity.Identity) string {
	if acting == nil {
		return ""
	}
	return acting.AdminID
}
