// Package store provides storage abstractions for warden.
//
// This package defines interfaces for database operations, allowing the
// access-control services to be decoupled from the specific database
// implementation. The gorm subpackage implements them on PostgreSQL and the
// memstore subpackage implements them in memory for tests.
//
// # Available Stores
//
//   - AdminsStore: admin account lookups and mutations
//   - GroupsStore: the group forest
//   - AccessStore: admin/group memberships, replaced transactionally
//   - RulesStore: rules and their group attachments
//
// # Usage
//
//	admins := gormstore.NewAdminsStore(db)
//	admin, err := admins.FetchAdmin(ctx, id)
//	if err != nil {
//	    if errors.Is(err, store.ErrAdminNotFound) {
//	        // Handle not found
//	    }
//	}
package store
