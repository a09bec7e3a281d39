package gorm

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adminwarden/warden/pkg/access"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/store"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestAdminsStore_FetchAdmin(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "status", "is_root"}).
		AddRow("a1", "alice", "alice@example.com", 1, false)
	mock.ExpectQuery(`SELECT \* FROM "admins" WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(rows)

	admin, err := s.FetchAdmin(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "alice", admin.Name)
	assert.True(t, admin.IsEnabled())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_FetchAdmin_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectQuery(`SELECT \* FROM "admins" WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.FetchAdmin(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_NameOrEmailTaken(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM admins`).
		WithArgs("alice", "alice@example.com", "a1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := s.NameOrEmailTaken(context.Background(), "alice", "alice@example.com", "a1")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_CreateAdmin_Duplicate(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectExec(`INSERT INTO admins`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := s.CreateAdmin(context.Background(), &model.Admin{ID: "a2", Name: "bob", Status: model.StatusEnabled})
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_UpdateStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectExec(`UPDATE admins SET status = \$1 WHERE id = \$2`).
		WithArgs(0, "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateStatus(context.Background(), "a1", model.StatusDisabled)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_UpdatePassword_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectExec(`UPDATE admins SET password_hash = \$1, password_salt = \$2 WHERE id = \$3`).
		WithArgs("hash", "salt", "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdatePassword(context.Background(), "ghost", "hash", "salt")
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_DeleteAdmin(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM group_accesses WHERE admin_id = \$1`).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM admins WHERE id = \$1`).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.DeleteAdmin(context.Background(), "a2")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminsStore_DeleteAdmin_RollsBackWhenMissing(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAdminsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM group_accesses WHERE admin_id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM admins WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.DeleteAdmin(context.Background(), "ghost")
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupsStore_ListGroups(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewGroupsStore(db)

	rows := sqlmock.NewRows([]string{"id", "parent_id", "title", "description"}).
		AddRow("1", nil, "root", "").
		AddRow("10", "1", "ops", "")
	mock.ExpectQuery(`SELECT id, parent_id, title, description, created_at\s+FROM groups`).
		WillReturnRows(rows)

	groups, err := s.ListGroups(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "", groups[0].Parent())
	assert.Equal(t, "1", groups[1].Parent())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupsStore_FetchGroups_Empty(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewGroupsStore(db)

	groups, err := s.FetchGroups(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupsStore_CreateGroup_MissingParent(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewGroupsStore(db)

	parent := "nope"
	mock.ExpectExec(`INSERT INTO groups`).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := s.CreateGroup(context.Background(), &model.Group{ID: "20", ParentID: &parent, Title: "x"})
	assert.ErrorIs(t, err, store.ErrGroupNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessStore_GroupIDsForAdmin(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAccessStore(db)

	mock.ExpectQuery(`SELECT group_id FROM group_accesses`).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}).AddRow("10").AddRow("11"))

	ids, err := s.GroupIDsForAdmin(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessStore_Transaction_ReplacesAccess(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAccessStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM group_accesses WHERE admin_id = \$1`).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO group_accesses`).
		WithArgs("a2", "11").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Transaction(context.Background(), func(tx store.AccessStore) error {
		if err := tx.DeleteGroupAccess(context.Background(), "a2"); err != nil {
			return err
		}
		return tx.CreateGroupAccess(context.Background(), "a2", []string{"11"})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessStore_Transaction_RollsBackOnMissingGroup(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAccessStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM group_accesses WHERE admin_id = \$1`).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO group_accesses`).
		WithArgs("a2", "999").
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})
	mock.ExpectRollback()

	err := s.Transaction(context.Background(), func(tx store.AccessStore) error {
		if err := tx.DeleteGroupAccess(context.Background(), "a2"); err != nil {
			return err
		}
		return tx.CreateGroupAccess(context.Background(), "a2", []string{"999"})
	})
	assert.ErrorIs(t, err, store.ErrGroupNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessStore_LockAdmin_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewAccessStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM admins WHERE id = \$1 FOR UPDATE`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := s.Transaction(context.Background(), func(tx store.AccessStore) error {
		return tx.LockAdmin(context.Background(), "ghost")
	})
	assert.ErrorIs(t, err, store.ErrAdminNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAccess_LocksTargetBeforeReplacing(t *testing.T) {
	db, mock := setupTestDB(t)
	m := access.NewGrantManager(NewAdminsStore(db), NewGroupsStore(db), NewAccessStore(db), nil)

	mock.ExpectQuery(`SELECT \* FROM "admins" WHERE id = \$1`).
		WithArgs("a2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}).AddRow("a2", "bob", 1))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM admins WHERE id = \$1 FOR UPDATE`).
		WithArgs("a2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a2"))
	mock.ExpectExec(`DELETE FROM group_accesses WHERE admin_id = \$1`).
		WithArgs("a2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO group_accesses`).
		WithArgs("a2", "10").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO group_accesses`).
		WithArgs("a2", "11").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	root := &identity.Identity{AdminID: "root", IsRoot: true}
	err := m.SetAccess(context.Background(), "a2", []string{"10", "11", "10"}, root)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRulesStore_RulesForGroup(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRulesStore(db)

	rows := sqlmock.NewRows([]string{"id", "title", "url", "method", "slug", "description"}).
		AddRow("r1", "List admins", "/admin", "GET", "admin.list", "")
	mock.ExpectQuery(`FROM rules r\s+JOIN rule_accesses ra`).
		WithArgs("10").
		WillReturnRows(rows)

	rules, err := s.RulesForGroup(context.Background(), "10")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "admin.list", rules[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRulesStore_AttachRule(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewRulesStore(db)

	mock.ExpectExec(`INSERT INTO rule_accesses`).
		WithArgs("10", "r1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.AttachRule(context.Background(), "10", "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
