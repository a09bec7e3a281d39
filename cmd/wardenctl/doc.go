// Command wardenctl administers warden accounts, groups and rules.
//
// Every administrative command runs on behalf of an existing admin named with
// --as. That admin's groups bound what it may grant, and it can never change,
// disable, delete or revoke itself.
//
// # Quick Start
//
//	# Create the schema
//	wardenctl db migrate
//
//	# Build a group tree and give it a rule (root only)
//	wardenctl --as root group create ops
//	wardenctl --as root rule create --title "List admins" --slug admins.list --method GET --url /admins
//	wardenctl --as root rule attach <group id> <rule id>
//
//	# Manage other admins
//	wardenctl --as root admin create --name alice --password <32 char digest>
//	wardenctl --as root admin access <alice id> <group id>
//	wardenctl --as alice admin disable <bob id>
//
// # Environment Variables
//
//   - WARDEN_CONFIG_PATH: directory holding warden.yml (default /etc/warden)
//   - DATABASE_URL: PostgreSQL connection string
//   - AUDIT_DATABASE_URL: PostgreSQL connection string for audit messages
//   - WARDEN_PASSWORD_SALT: server-side password salt
//   - WARDEN_TOKEN_SECRET: HS256 key for refresh tokens
//   - WARDEN_ROOT_ADMIN_ID: the protected super administrator
//   - WARDEN_REVOCATION_BACKEND: redis (default) or memory; token revoke requires redis
//   - REDIS_URL: Redis connection string for the redis backend
//   - WARDEN_LOG_LEVEL: Log level (debug, info, warn, error)
package main
