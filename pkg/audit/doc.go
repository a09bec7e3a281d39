// Package audit records administrative actions as RFC5424 syslog lines and,
// optionally, rows in an audit database.
//
// # Event Types
//
//   - PasswordEvent: password resets
//   - StatusEvent: enabling and disabling admins
//   - DeleteEvent: admin deletion
//   - ProfileEvent: admin creation, profile and avatar edits
//   - AccessEvent: group membership replacement
//   - RevokeEvent: refresh token revocation
//   - GroupEvent, RuleEvent: group and rule administration
//
// # Usage
//
//	store, _ := audit.NewStore(cfg.AuditDatabaseURL)
//	recorder := audit.NewRecorder(audit.NewLogger(), store, cfg.IsAuditEnabled(), slog.Default())
//	recorder.Log(audit.DeleteEvent{ActorID: "a1", TargetID: "a2", Success: true})
//
// Every event carries a success or failure result so that refused attempts
// are as visible as completed ones.
package audit
