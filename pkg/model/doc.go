// Package model defines the database models for warden.
//
// This package contains GORM models that map to the warden PostgreSQL schema
// created by the migrations in the db package.
//
// # Core Models
//
//   - Admin: administrator accounts (credentials, status, root flag)
//   - Group: nodes of the permission-delegation forest
//   - GroupAccess: admin membership in a group
//   - Rule: atomic permission identifiers
//   - RuleAccess: rules attached to a group
//
// # Database Schema
//
//   - admins: administrator accounts, name and email unique
//   - groups: parent_id NULL marks a root group
//   - group_accesses: (admin_id, group_id), cascades on admin or group deletion
//   - rules: permission identifiers, slug unique
//   - rule_accesses: (group_id, rule_id)
//   - messages: audit trail written by the audit package
package model
