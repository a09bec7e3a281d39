package identity

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
	"github.com/adminwarden/warden/pkg/store/memstore"
)

func seed(t *testing.T) *memstore.Store {
	ctx := context.Background()
	s := memstore.New()
	s.PutGroup(model.Group{ID: "10"})
	s.PutGroup(model.Group{ID: "11"})
	s.PutAdmin(model.Admin{ID: "alice", Name: "alice", Status: model.StatusEnabled})
	s.PutAdmin(model.Admin{ID: "root", Name: "root", Status: model.StatusEnabled})
	s.PutAdmin(model.Admin{ID: "flagged", Name: "flagged", Status: model.StatusEnabled, IsRoot: true})
	s.PutAdmin(model.Admin{ID: "carol", Name: "carol", Status: model.StatusDisabled})
	require.NoError(t, s.CreateGroupAccess(ctx, "alice", []string{"11", "10"}))
	return s
}

func TestResolver_Resolve(t *testing.T) {
	s := seed(t)
	r := NewResolver(s, s, "root")

	tests := []struct {
		name     string
		adminID  string
		wantRoot bool
		groups   []string
	}{
		{name: "plain admin", adminID: "alice", wantRoot: false, groups: []string{"10", "11"}},
		{name: "configured root", adminID: "root", wantRoot: true, groups: []string{}},
		{name: "is_root flag", adminID: "flagged", wantRoot: true, groups: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := r.Resolve(context.Background(), tt.adminID)
			require.NoError(t, err)
			assert.Equal(t, tt.adminID, id.AdminID)
			assert.Equal(t, tt.wantRoot, id.IsRoot)
			assert.Equal(t, tt.groups, id.GroupIDs)
		})
	}
}

func TestResolver_Errors(t *testing.T) {
	s := seed(t)
	r := NewResolver(s, s, "")

	_, err := r.Resolve(context.Background(), "carol")
	assert.ErrorIs(t, err, ErrAdminDisabled)

	_, err = r.Resolve(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrAdminNotFound)

	id, err := r.Resolve(context.Background(), "root")
	require.NoError(t, err)
	assert.False(t, id.IsRoot, "root_admin_id unset")
}

func TestIdentity_Helpers(t *testing.T) {
	id := &Identity{AdminID: "alice", GroupIDs: []string{"10", "11"}}
	id.WithRemoteIP(net.ParseIP("192.168.1.1"))

	assert.True(t, id.Is("alice"))
	assert.False(t, id.Is("bob"))
	assert.Equal(t, "10", id.FirstGroup())
	assert.Equal(t, "192.168.1.1", id.ClientIP())

	var none *Identity
	assert.False(t, none.Is("alice"))
	assert.Equal(t, "", none.FirstGroup())
	assert.Equal(t, "", (&Identity{}).ClientIP())
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := Get(ctx)
	assert.False(t, ok)

	want := &Identity{AdminID: "alice"}
	got, ok := Get(Set(ctx, want))
	require.True(t, ok)
	assert.Same(t, want, got)
}
