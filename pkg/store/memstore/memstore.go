// Package memstore implements the store interfaces in memory.
//
// It backs unit tests of the services and the in-process integration
// scenarios. A single Store value satisfies every store interface so that
// foreign-key checks can span tables the way the database does.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

var (
	_ store.AdminsStore = (*Store)(nil)
	_ store.GroupsStore = (*Store)(nil)
	_ store.AccessStore = (*Store)(nil)
	_ store.RulesStore  = (*Store)(nil)

	_ store.AccessStore = lockedView{}
)

// Store holds every table in maps guarded by one mutex
type Store struct {
	mu          sync.Mutex
	admins      map[string]model.Admin
	groups      map[string]model.Group
	rules       map[string]model.Rule
	groupAccess map[string]map[string]struct{}
	ruleAccess  map[string]map[string]struct{}

	failGroup string
	failErr   error
}

// New creates an empty Store
func New() *Store {
	return &Store{
		admins:      map[string]model.Admin{},
		groups:      map[string]model.Group{},
		rules:       map[string]model.Rule{},
		groupAccess: map[string]map[string]struct{}{},
		ruleAccess:  map[string]map[string]struct{}{},
	}
}

// FailOn arranges for CreateGroupAccess to return err when it reaches groupID.
func (s *Store) FailOn(groupID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failGroup = groupID
	s.failErr = err
}

// PutAdmin seeds an admin
func (s *Store) PutAdmin(a model.Admin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[a.ID] = a
}

// PutGroup seeds a group
func (s *Store) PutGroup(g model.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[g.ID] = g
}

// PutRule seeds a rule
func (s *Store) PutRule(r model.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[r.ID] = r
}

// Admin returns a copy of the stored admin
func (s *Store) Admin(id string) (model.Admin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	return a, ok
}

// FetchAdmin retrieves an admin by id
func (s *Store) FetchAdmin(_ context.Context, id string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return nil, store.ErrAdminNotFound
	}
	return &a, nil
}

// NameOrEmailTaken reports whether another admin already uses name or email
func (s *Store) NameOrEmailTaken(_ context.Context, name, email, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.takenLocked(name, email, excludeID), nil
}

func (s *Store) takenLocked(name, email, excludeID string) bool {
	for id, a := range s.admins {
		if id == excludeID {
			continue
		}
		if a.Name == name || (email != "" && a.Email == email) {
			return true
		}
	}
	return false
}

// CreateAdmin inserts a new admin
func (s *Store) CreateAdmin(_ context.Context, a *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[a.ID]; ok || s.takenLocked(a.Name, a.Email, "") {
		return store.ErrDuplicate
	}
	s.admins[a.ID] = *a
	return nil
}

// UpdateProfile overwrites the editable profile fields
func (s *Store) UpdateProfile(_ context.Context, id string, p store.Profile) error {
	return s.mutateAdmin(id, func(a *model.Admin) {
		a.Name = p.Name
		a.Nickname = p.Nickname
		a.Email = p.Email
		a.Introduce = p.Introduce
		a.Status = p.Status
		a.Avatar = p.Avatar
	})
}

// UpdateAvatar sets the avatar digest
func (s *Store) UpdateAvatar(_ context.Context, id, avatar string) error {
	return s.mutateAdmin(id, func(a *model.Admin) { a.Avatar = &avatar })
}

// UpdatePassword stores a new password hash and salt
func (s *Store) UpdatePassword(_ context.Context, id, hash, salt string) error {
	return s.mutateAdmin(id, func(a *model.Admin) {
		a.PasswordHash = hash
		a.PasswordSalt = salt
	})
}

// UpdateStatus flips the enabled/disabled status
func (s *Store) UpdateStatus(_ context.Context, id string, status model.Status) error {
	return s.mutateAdmin(id, func(a *model.Admin) { a.Status = status })
}

func (s *Store) mutateAdmin(id string, fn func(*model.Admin)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return store.ErrAdminNotFound
	}
	fn(&a)
	s.admins[id] = a
	return nil
}

// DeleteAdmin removes the admin and its group accesses
func (s *Store) DeleteAdmin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.admins[id]; !ok {
		return store.ErrAdminNotFound
	}
	delete(s.groupAccess, id)
	delete(s.admins, id)
	return nil
}

// ListGroups returns every group ordered by id
func (s *Store) ListGroups(_ context.Context) ([]model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make([]model.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// FetchGroups returns the groups with the given ids
func (s *Store) FetchGroups(_ context.Context, ids []string) ([]model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make([]model.Group, 0, len(ids))
	for _, id := range ids {
		if g, ok := s.groups[id]; ok {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// CreateGroup inserts a group
func (s *Store) CreateGroup(_ context.Context, g *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[g.ID]; ok {
		return store.ErrDuplicate
	}
	if p := g.Parent(); p != "" {
		if _, ok := s.groups[p]; !ok {
			return store.ErrGroupNotFound
		}
	}
	s.groups[g.ID] = *g
	return nil
}

// SetParent moves a group under parentID
func (s *Store) SetParent(_ context.Context, id, parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	if !ok {
		return store.ErrGroupNotFound
	}
	if parentID == "" {
		g.ParentID = nil
	} else {
		if _, ok := s.groups[parentID]; !ok {
			return store.ErrGroupNotFound
		}
		g.ParentID = &parentID
	}
	s.groups[id] = g
	return nil
}

// Transaction runs fn with the store locked, against a view that does not
// take the lock again. Memberships are restored when fn fails.
func (s *Store) Transaction(ctx context.Context, fn func(store.AccessStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := copyMembership(s.groupAccess)
	if err := fn(lockedView{s}); err != nil {
		s.groupAccess = snapshot
		return err
	}
	return nil
}

// LockAdmin checks that the admin exists. Outside Transaction it locks nothing.
func (s *Store) LockAdmin(_ context.Context, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockAdminLocked(adminID)
}

// GroupIDsForAdmin returns the sorted group ids of an admin
func (s *Store) GroupIDsForAdmin(_ context.Context, adminID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groupIDsLocked(adminID), nil
}

// DeleteGroupAccess removes every membership of an admin
func (s *Store) DeleteGroupAccess(_ context.Context, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.groupAccess, adminID)
	return nil
}

// CreateGroupAccess inserts one membership per group id
func (s *Store) CreateGroupAccess(_ context.Context, adminID string, groupIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createGroupAccessLocked(adminID, groupIDs)
}

func (s *Store) lockAdminLocked(adminID string) error {
	if _, ok := s.admins[adminID]; !ok {
		return store.ErrAdminNotFound
	}
	return nil
}

func (s *Store) groupIDsLocked(adminID string) []string {
	ids := make([]string, 0, len(s.groupAccess[adminID]))
	for id := range s.groupAccess[adminID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) createGroupAccessLocked(adminID string, groupIDs []string) error {
	for _, gid := range groupIDs {
		if gid == s.failGroup && s.failErr != nil {
			return s.failErr
		}
		if _, ok := s.groups[gid]; !ok {
			return store.ErrGroupNotFound
		}
		if s.groupAccess[adminID] == nil {
			s.groupAccess[adminID] = map[string]struct{}{}
		}
		s.groupAccess[adminID][gid] = struct{}{}
	}
	return nil
}

// lockedView is the AccessStore handed to Transaction callbacks. The
// enclosing Transaction already holds s.mu.
type lockedView struct {
	s *Store
}

func (v lockedView) Transaction(_ context.Context, fn func(store.AccessStore) error) error {
	return fn(v)
}

func (v lockedView) LockAdmin(_ context.Context, adminID string) error {
	return v.s.lockAdminLocked(adminID)
}

func (v lockedView) GroupIDsForAdmin(_ context.Context, adminID string) ([]string, error) {
	return v.s.groupIDsLocked(adminID), nil
}

func (v lockedView) DeleteGroupAccess(_ context.Context, adminID string) error {
	delete(v.s.groupAccess, adminID)
	return nil
}

func (v lockedView) CreateGroupAccess(_ context.Context, adminID string, groupIDs []string) error {
	return v.s.createGroupAccessLocked(adminID, groupIDs)
}

// RulesForGroup returns the rules attached directly to a group
func (s *Store) RulesForGroup(_ context.Context, groupID string) ([]model.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rules := make([]model.Rule, 0, len(s.ruleAccess[groupID]))
	for rid := range s.ruleAccess[groupID] {
		rules = append(rules, s.rules[rid])
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// CreateRule inserts a rule
func (s *Store) CreateRule(_ context.Context, r *model.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.rules {
		if existing.ID == r.ID || existing.Slug == r.Slug {
			return store.ErrDuplicate
		}
	}
	s.rules[r.ID] = *r
	return nil
}

// AttachRule attaches a rule to a group
func (s *Store) AttachRule(_ context.Context, groupID, ruleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[groupID]; !ok {
		return store.ErrGroupNotFound
	}
	if _, ok := s.rules[ruleID]; !ok {
		return store.ErrRuleNotFound
	}
	if s.ruleAccess[groupID] == nil {
		s.ruleAccess[groupID] = map[string]struct{}{}
	}
	s.ruleAccess[groupID][ruleID] = struct{}{}
	return nil
}

func copyMembership(in map[string]map[string]struct{}) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(in))
	for admin, groups := range in {
		set := make(map[string]struct{}, len(groups))
		for g := range groups {
			set[g] = struct{}{}
		}
		out[admin] = set
	}
	return out
}
