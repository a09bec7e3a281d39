package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adminwarden/warden/pkg/model"
)

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.identity(t, "alice")

	created, err := f.svc.Create(ctx, CreateInput{
		Name:     "dave",
		Email:    "dave@example.com",
		Password: digest,
		Avatar:   avatar,
		Status:   model.StatusEnabled,
	}, alice)
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)

	stored := f.admin(t, "id-1")
	assert.Equal(t, "dave", stored.Name)
	assert.Equal(t, "192.0.2.7", stored.CreatedIP)
	assert.NotEmpty(t, stored.PasswordSalt)
	require.NotNil(t, stored.Avatar)
	assert.Equal(t, avatar, *stored.Avatar)
	assert.Equal(t, []string{"10"}, f.groupsOf(t, "id-1"), "new admins join the creator's first group")
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.identity(t, "alice")

	tests := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"missing name", CreateInput{Password: digest}, ErrInvalidInput},
		{"bad avatar", CreateInput{Name: "dave", Password: digest, Avatar: "abc"}, ErrInvalidInput},
		{"bad password", CreateInput{Name: "dave", Password: "abc"}, ErrInvalidInput},
		{"name taken", CreateInput{Name: "bob", Password: digest}, ErrAlreadyExists},
		{"email taken", CreateInput{Name: "dave", Email: "bob@example.com", Password: digest}, ErrAlreadyExists},
		{"root by non-root", CreateInput{Name: "dave", Password: digest, IsRoot: true}, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.in, alice)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.identity(t, "alice")

	err := f.svc.Update(ctx, "bob", UpdateInput{
		Name:      "robert",
		Nickname:  "bobby",
		Email:     "bob@example.com",
		Introduce: "hello",
		Status:    model.StatusEnabled,
	}, alice)
	require.NoError(t, err)

	bob := f.admin(t, "bob")
	assert.Equal(t, "robert", bob.Name)
	assert.Equal(t, "bobby", bob.Nickname)
	assert.Equal(t, "hello", bob.Introduce)

	err = f.svc.Update(ctx, "bob", UpdateInput{Name: "carol"}, alice)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	err = f.svc.Update(ctx, "nobody", UpdateInput{Name: "x"}, alice)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.identity(t, "alice")

	require.NoError(t, f.svc.UpdateAvatar(ctx, "bob", avatar, alice))
	bob := f.admin(t, "bob")
	require.NotNil(t, bob.Avatar)
	assert.Equal(t, avatar, *bob.Avatar)

	assert.ErrorIs(t, f.svc.UpdateAvatar(ctx, "bob", "", alice), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.UpdateAvatar(ctx, "bob", "too-short", alice), ErrInvalidInput)

	// length is counted in characters
	wide := "é" + avatar[1:]
	require.NoError(t, f.svc.UpdateAvatar(ctx, "bob", wide, alice))
	assert.Equal(t, wide, *f.admin(t, "bob").Avatar)
	assert.ErrorIs(t, f.svc.UpdateAvatar(ctx, "bob", "é"+avatar, alice), ErrInvalidInput)
}

func TestDetailAndRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root := f.identity(t, "root")

	read, err := f.svc.CreateRule(ctx, model.Rule{Title: "Read", Slug: "read", Method: "GET", URL: "/admins"}, root)
	require.NoError(t, err)
	write, err := f.svc.CreateRule(ctx, model.Rule{Title: "Write", Slug: "write", Method: "POST", URL: "/admins"}, root)
	require.NoError(t, err)
	require.NoError(t, f.svc.AttachRule(ctx, "10", read.ID, root))
	require.NoError(t, f.svc.AttachRule(ctx, "11", read.ID, root))
	require.NoError(t, f.svc.AttachRule(ctx, "11", write.ID, root))

	detail, err := f.svc.Detail(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Admin.ID)
	require.Len(t, detail.Groups, 2)
	assert.Equal(t, "10", detail.Groups[0].ID)
	assert.Equal(t, "11", detail.Groups[1].ID)

	rules, err := f.svc.Rules(ctx, "alice")
	require.NoError(t, err)
	var slugs []string
	for _, r := range rules {
		slugs = append(slugs, r.Slug)
	}
	assert.ElementsMatch(t, []string{"read", "write"}, slugs)

	rules, err = f.svc.Rules(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, rules)

	_, err = f.svc.Detail(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
