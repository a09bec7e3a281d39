// Package identity describes the administrator on whose behalf an operation runs.
//
// An Identity is built explicitly, usually by Resolver from the stored admin
// and its group memberships, and passed to every administrative operation.
// The super administrator is recognised either by the is_root flag or by
// matching the configured root_admin_id.
//
// # Basic Usage
//
//	resolver := identity.NewResolver(admins, access, cfg.RootAdminID)
//	acting, err := resolver.Resolve(ctx, adminID)
//	if err != nil {
//	    return err
//	}
//	acting.WithRemoteIP(clientIP)
//
//	// Hand it through a context when a framework owns the call chain
//	ctx = identity.Set(ctx, acting)
//	acting, ok := identity.Get(ctx)
package identity
