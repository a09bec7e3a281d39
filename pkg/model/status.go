package model

//go:generate go run github.com/dmarkham/enumer -type Status -trimprefix Status -transform lower -yaml -output status.gen.go

// Status is the enabled/disabled state of an admin. The numeric values are persisted.
type Status int

const (
	StatusDisabled Status = iota
	StatusEnabled
)
