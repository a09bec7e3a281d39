package integration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"

	"github.com/adminwarden/warden/pkg/admin"
	"github.com/adminwarden/warden/pkg/audit"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/password"
	"github.com/adminwarden/warden/pkg/revocation"
	gormstore "github.com/adminwarden/warden/pkg/store/gorm"
	"github.com/adminwarden/warden/pkg/token"
)

const (
	rootAdminID = "root"
	testDigest  = "0123456789abcdef0123456789abcdef"
	tokenSecret = "integration-refresh-secret-0123456789"
)

// errorKinds maps the names used in feature files to error kinds
var errorKinds = map[string]error{
	"invalid input":     admin.ErrInvalidInput,
	"not found":         admin.ErrNotFound,
	"self modification": admin.ErrSelfModification,
	"protected account": admin.ErrProtectedAccount,
	"already in state":  admin.ErrAlreadyInState,
	"already revoked":   admin.ErrAlreadyRevoked,
	"token invalid":     admin.ErrTokenInvalid,
	"self revocation":   admin.ErrSelfRevocation,
	"cycle detected":    admin.ErrCycleDetected,
	"already exists":    admin.ErrAlreadyExists,
	"forbidden":         admin.ErrForbidden,
}

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc         *TestContext
	service    *admin.Service
	identities *identity.Resolver
	tokens     *token.Codec
	cache      *revocation.MemoryCache
	auditStore *audit.Store
	lastErr    error
	issued     map[string]string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	admins := gormstore.NewAdminsStore(tc.DB)
	access := gormstore.NewAccessStore(tc.DB)
	cache := revocation.NewMemoryCache(time.Minute)
	tokens := token.NewCodec([]byte(tokenSecret), "warden-refresh", time.Hour)
	auditStore := audit.NewStoreWithDB(tc.RawDB)

	return &StepsContext{
		tc:         tc,
		tokens:     tokens,
		cache:      cache,
		auditStore: auditStore,
		identities: identity.NewResolver(admins, access, rootAdminID),
		issued:     make(map[string]string),
		service: admin.New(admin.Deps{
			Admins:      admins,
			Groups:      gormstore.NewGroupsStore(tc.DB),
			Access:      access,
			Rules:       gormstore.NewRulesStore(tc.DB),
			Passwords:   password.NewHasher("integration-pepper"),
			Blacklist:   revocation.NewBlacklist(cache, time.Now),
			Tokens:      tokens,
			Auditor:     audit.NewRecorder(audit.NewLogger(), auditStore, true, nil),
			RootAdminID: rootAdminID,
		}),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		_ = s.cache.Close()
		return ctx, nil
	})

	// Background steps
	sc.Step(`^the root administrator exists$`, s.theRootAdministratorExists)
	sc.Step(`^the following groups exist:$`, s.theFollowingGroupsExist)
	sc.Step(`^an? (enabled|disabled) admin "([^"]*)" in groups "([^"]*)"$`, s.anAdminInGroups)

	// Admin steps
	sc.Step(`^"([^"]*)" creates an admin named "([^"]*)"$`, s.createsAnAdminNamed)
	sc.Step(`^"([^"]*)" sets the groups of "([^"]*)" to "([^"]*)"$`, s.setsTheGroupsOf)
	sc.Step(`^"([^"]*)" sets the groups of "([^"]*)" to "([^"]*)" and "([^"]*)" concurrently (\d+) times$`, s.setsTheGroupsConcurrently)
	sc.Step(`^"([^"]*)" (enables|disables|deletes) "([^"]*)"$`, s.changesStatusOf)
	sc.Step(`^"([^"]*)" changes the password of "([^"]*)"$`, s.changesThePasswordOf)
	sc.Step(`^"([^"]*)" moves group "([^"]*)" under "([^"]*)"$`, s.movesGroupUnder)

	// Token steps
	sc.Step(`^a refresh token is issued to "([^"]*)"$`, s.aRefreshTokenIsIssuedTo)
	sc.Step(`^"([^"]*)" revokes the refresh token of "([^"]*)"$`, s.revokesTheRefreshTokenOf)
	sc.Step(`^the refresh token of "([^"]*)" should be revoked$`, s.theRefreshTokenShouldBeRevoked)

	// Outcome steps
	sc.Step(`^the operation should succeed$`, s.theOperationShouldSucceed)
	sc.Step(`^the operation should fail with "([^"]*)"$`, s.theOperationShouldFailWith)
	sc.Step(`^"([^"]*)" should belong to groups "([^"]*)"$`, s.shouldBelongToGroups)
	sc.Step(`^"([^"]*)" should belong to groups "([^"]*)" or "([^"]*)"$`, s.shouldBelongToEither)
	sc.Step(`^admin "([^"]*)" should be (enabled|disabled)$`, s.adminShouldBe)
	sc.Step(`^admin "([^"]*)" should not exist$`, s.adminShouldNotExist)
	sc.Step(`^an audit message "([^"]*)" should be recorded$`, s.anAuditMessageShouldBeRecorded)
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *StepsContext) acting(adminID string) (*identity.Identity, error) {
	return s.identities.Resolve(context.Background(), adminID)
}

// Background steps

func (s *StepsContext) insertAdmin(id string, status model.Status, isRoot bool) error {
	return s.tc.DB.Exec(`
		INSERT INTO admins (id, name, email, password_hash, password_salt, status, is_root)
		VALUES (?, ?, ?, '', '', ?, ?)
	`, id, id, id+"@example.com", int(status), isRoot).Error
}

func (s *StepsContext) theRootAdministratorExists() error {
	return s.insertAdmin(rootAdminID, model.StatusEnabled, true)
}

func (s *StepsContext) theFollowingGroupsExist(table *godog.Table) error {
	// Rows must list parents before children
	for _, row := range table.Rows[1:] {
		id, parent := row.Cells[0].Value, row.Cells[1].Value
		var parentID *string
		if parent != "" {
			parentID = &parent
		}
		if err := s.tc.DB.Exec(`INSERT INTO groups (id, parent_id, title) VALUES (?, ?, ?)`, id, parentID, id).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) anAdminInGroups(state, id, groups string) error {
	status := model.StatusEnabled
	if state == "disabled" {
		status = model.StatusDisabled
	}
	if err := s.insertAdmin(id, status, false); err != nil {
		return err
	}
	for _, g := range splitIDs(groups) {
		if err := s.tc.DB.Exec(`INSERT INTO group_accesses (admin_id, group_id) VALUES (?, ?)`, id, g).Error; err != nil {
			return err
		}
	}
	return nil
}

// Admin steps

func (s *StepsContext) createsAnAdminNamed(actor, name string) error {
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}
	_, s.lastErr = s.service.Create(context.Background(), admin.CreateInput{
		Name:     name,
		Password: testDigest,
		Status:   model.StatusEnabled,
	}, acting)
	return nil
}

func (s *StepsContext) setsTheGroupsOf(actor, target, groups string) error {
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}
	s.lastErr = s.service.SetAccess(context.Background(), target, splitIDs(groups), acting)
	return nil
}

func (s *StepsContext) setsTheGroupsConcurrently(actor, target, first, second string, times int) error {
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < times; i++ {
		for _, groups := range []string{first, second} {
			wg.Add(1)
			go func(groups string) {
				defer wg.Done()
				if err := s.service.SetAccess(context.Background(), target, splitIDs(groups), acting); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}(groups)
		}
	}
	wg.Wait()
	s.lastErr = errors.Join(errs...)
	return nil
}

func (s *StepsContext) changesStatusOf(actor, verb, target string) error {
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}
	ctx := context.Background()
	switch verb {
	case "enables":
		s.lastErr = s.service.Enable(ctx, target, acting)
	case "disables":
		s.lastErr = s.service.Disable(ctx, target, acting)
	case "deletes":
		s.lastErr = s.service.Delete(ctx, target, acting)
	}
	return nil
}

func (s *StepsContext) changesThePasswordOf(actor, target string) error {
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}
	s.lastErr = s.service.ChangePassword(context.Background(), target, testDigest, acting)
	return nil
}

func (s *StepsContext) movesGroupUnder(actor, id, parent string) error {
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}
	s.lastErr = s.service.MoveGroup(context.Background(), id, parent, acting)
	return nil
}

// Token steps

func (s *StepsContext) aRefreshTokenIsIssuedTo(adminID string) error {
	raw, err := s.tokens.Issue(adminID)
	if err != nil {
		return err
	}
	s.issued[adminID] = raw
	return nil
}

func (s *StepsContext) revokesTheRefreshTokenOf(actor, owner string) error {
	raw, ok := s.issued[owner]
	if !ok {
		return fmt.Errorf("no refresh token issued to %s", owner)
	}
	acting, err := s.acting(actor)
	if err != nil {
		return err
	}
	s.lastErr = s.service.RevokeRefreshToken(context.Background(), raw, acting)
	return nil
}

func (s *StepsContext) theRefreshTokenShouldBeRevoked(owner string) error {
	revoked, err := revocation.NewBlacklist(s.cache, nil).IsRevoked(context.Background(), s.issued[owner])
	if err != nil {
		return err
	}
	if !revoked {
		return fmt.Errorf("refresh token of %s is not revoked", owner)
	}
	return nil
}

// Outcome steps

func (s *StepsContext) theOperationShouldSucceed() error {
	if s.lastErr != nil {
		return fmt.Errorf("expected success, got: %w", s.lastErr)
	}
	return nil
}

func (s *StepsContext) theOperationShouldFailWith(kind string) error {
	want, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(s.lastErr, want) {
		return fmt.Errorf("expected %q, got: %v", kind, s.lastErr)
	}
	return nil
}

func (s *StepsContext) shouldBelongToGroups(adminID, groups string) error {
	var got []string
	if err := s.tc.DB.Raw(`SELECT group_id FROM group_accesses WHERE admin_id = ? ORDER BY group_id`, adminID).
		Pluck("group_id", &got).Error; err != nil {
		return err
	}
	want := splitIDs(groups)
	sort.Strings(want)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected %s to belong to [%s], got [%s]", adminID, strings.Join(want, ","), strings.Join(got, ","))
	}
	return nil
}

func (s *StepsContext) shouldBelongToEither(adminID, first, second string) error {
	if err := s.shouldBelongToGroups(adminID, first); err == nil {
		return nil
	}
	return s.shouldBelongToGroups(adminID, second)
}

func (s *StepsContext) adminShouldBe(adminID, state string) error {
	var status int
	if err := s.tc.DB.Raw(`SELECT status FROM admins WHERE id = ?`, adminID).Scan(&status).Error; err != nil {
		return err
	}
	if got := model.Status(status).String(); got != state {
		return fmt.Errorf("expected %s to be %s, got %s", adminID, state, got)
	}
	return nil
}

func (s *StepsContext) adminShouldNotExist(adminID string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM admins WHERE id = ?`, adminID).Scan(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("admin %s still exists", adminID)
	}
	return nil
}

func (s *StepsContext) anAuditMessageShouldBeRecorded(msgid string) error {
	messages, err := s.auditStore.Messages(msgid, 10)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return fmt.Errorf("no audit message %q recorded", msgid)
	}
	return nil
}
