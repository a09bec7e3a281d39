package audit

import (
	"fmt"
	"strings"
)

// AccessEvent represents replacing an admin's group memberships
type AccessEvent struct {
	ActorID      string
	TargetID     string
	ClientIP     string
	Requested    []string
	Success      bool
	ErrorMessage string
}

func (e AccessEvent) MessageID() string {
	return "access"
}

func (e AccessEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s set the groups of %s", e.ActorID, e.TargetID)
	}
	return withError(fmt.Sprintf("%s failed to set the groups of %s", e.ActorID, e.TargetID), e.ErrorMessage)
}

func (e AccessEvent) Severity() Severity {
	return severity(e.Success)
}

func (e AccessEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AccessEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, "set-access", e.Success)
	sd[SDIDSubject] = map[string]string{
		"admin":     e.TargetID,
		"requested": strings.Join(e.Requested, ","),
	}
	return sd
}
