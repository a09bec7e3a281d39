package identity

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// ErrAdminDisabled is returned when a disabled admin tries to act
var ErrAdminDisabled = errors.New("admin is disabled")

// Identity is the administrator performing an operation.
type Identity struct {
	AdminID string
	// IsRoot bypasses group scoping when granting access
	IsRoot bool
	// GroupIDs are the groups the admin belongs to
	GroupIDs []string
	RemoteIP net.IP
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// Is reports whether the identity acts as adminID.
func (i *Identity) Is(adminID string) bool {
	return i != nil && i.AdminID == adminID
}

// FirstGroup returns the admin's first group id, or "" when it has none.
func (i *Identity) FirstGroup() string {
	if i == nil || len(i.GroupIDs) == 0 {
		return ""
	}
	return i.GroupIDs[0]
}

// ClientIP returns the remote IP as a string, or "" when unknown.
func (i *Identity) ClientIP() string {
	if i == nil || i.RemoteIP == nil {
		return ""
	}
	return i.RemoteIP.String()
}

// Resolver builds identities from stored admins
type Resolver struct {
	admins      store.AdminsStore
	access      store.AccessStore
	rootAdminID string
}

// NewResolver creates a Resolver. rootAdminID names the configured super administrator.
func NewResolver(admins store.AdminsStore, access store.AccessStore, rootAdminID string) *Resolver {
	return &Resolver{admins: admins, access: access, rootAdminID: rootAdminID}
}

// Resolve loads adminID and its group memberships
func (r *Resolver) Resolve(ctx context.Context, adminID string) (*Identity, error) {
	admin, err := r.admins.FetchAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("resolving admin %q: %w", adminID, err)
	}
	if admin.Status != model.StatusEnabled {
		return nil, fmt.Errorf("resolving admin %q: %w", adminID, ErrAdminDisabled)
	}

	groupIDs, err := r.access.GroupIDsForAdmin(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("loading groups of %q: %w", adminID, err)
	}

	return &Identity{
		AdminID:  admin.ID,
		IsRoot:   admin.IsRoot || (r.rootAdminID != "" && admin.ID == r.rootAdminID),
		GroupIDs: groupIDs,
	}, nil
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
