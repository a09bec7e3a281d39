package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

func TestTransaction_RestoresMembershipOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutGroup(model.Group{ID: "10"})
	s.PutGroup(model.Group{ID: "11"})
	require.NoError(t, s.CreateGroupAccess(ctx, "a1", []string{"10"}))

	boom := errors.New("boom")
	s.FailOn("11", boom)

	err := s.Transaction(ctx, func(tx store.AccessStore) error {
		if err := tx.DeleteGroupAccess(ctx, "a1"); err != nil {
			return err
		}
		return tx.CreateGroupAccess(ctx, "a1", []string{"11"})
	})
	assert.ErrorIs(t, err, boom)

	ids, err := s.GroupIDsForAdmin(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, ids)
}

func TestTransaction_ReadersWaitForCommit(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutGroup(model.Group{ID: "10"})
	s.PutGroup(model.Group{ID: "11"})
	require.NoError(t, s.CreateGroupAccess(ctx, "a1", []string{"10"}))

	read := make(chan []string, 1)
	err := s.Transaction(ctx, func(tx store.AccessStore) error {
		if err := tx.DeleteGroupAccess(ctx, "a1"); err != nil {
			return err
		}
		go func() {
			ids, _ := s.GroupIDsForAdmin(ctx, "a1")
			read <- ids
		}()
		select {
		case ids := <-read:
			t.Errorf("read a half-replaced membership: %v", ids)
		case <-time.After(20 * time.Millisecond):
		}
		return tx.CreateGroupAccess(ctx, "a1", []string{"11"})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"11"}, <-read)
}

func TestTransaction_RollbackKeepsOtherAdmins(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutGroup(model.Group{ID: "10"})
	require.NoError(t, s.CreateGroupAccess(ctx, "a1", []string{"10"}))

	boom := errors.New("boom")
	written := make(chan struct{})
	err := s.Transaction(ctx, func(tx store.AccessStore) error {
		go func() {
			_ = s.CreateGroupAccess(ctx, "a2", []string{"10"})
			close(written)
		}()
		if err := tx.DeleteGroupAccess(ctx, "a1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	<-written

	ids, err := s.GroupIDsForAdmin(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, ids)
	ids, err = s.GroupIDsForAdmin(ctx, "a2")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, ids)
}

func TestLockAdmin(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutAdmin(model.Admin{ID: "a1", Name: "alice"})

	err := s.Transaction(ctx, func(tx store.AccessStore) error {
		assert.NoError(t, tx.LockAdmin(ctx, "a1"))
		return tx.LockAdmin(ctx, "ghost")
	})
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
}

func TestCreateGroupAccess_UnknownGroup(t *testing.T) {
	s := New()
	err := s.CreateGroupAccess(context.Background(), "a1", []string{"404"})
	assert.ErrorIs(t, err, store.ErrGroupNotFound)
}

func TestDeleteAdmin_CascadesAccess(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutAdmin(model.Admin{ID: "a1", Name: "alice"})
	s.PutGroup(model.Group{ID: "10"})
	require.NoError(t, s.CreateGroupAccess(ctx, "a1", []string{"10"}))

	require.NoError(t, s.DeleteAdmin(ctx, "a1"))

	ids, err := s.GroupIDsForAdmin(ctx, "a1")
	require.NoError(t, err)
	assert.Empty(t, ids)
	_, err = s.FetchAdmin(ctx, "a1")
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
}

func TestNameOrEmailTaken_ExcludesSelf(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.PutAdmin(model.Admin{ID: "a1", Name: "alice", Email: "alice@example.com"})

	taken, err := s.NameOrEmailTaken(ctx, "alice", "alice@example.com", "a1")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = s.NameOrEmailTaken(ctx, "alice", "", "a2")
	require.NoError(t, err)
	assert.True(t, taken)
}
