package store

import "errors"

// ErrAdminNotFound is returned when an admin doesn't exist
var ErrAdminNotFound = errors.New("admin not found")

// ErrGroupNotFound is returned when a referenced group doesn't exist
var ErrGroupNotFound = errors.New("group not found")

// ErrRuleNotFound is returned when a referenced rule doesn't exist
var ErrRuleNotFound = errors.New("rule not found")

// ErrDuplicate is returned when a unique column already holds the value
var ErrDuplicate = errors.New("duplicate value")
