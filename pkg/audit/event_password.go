package audit

import "fmt"

// PasswordEvent represents one admin resetting another admin's password
type PasswordEvent struct {
	ActorID      string
	TargetID     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e PasswordEvent) MessageID() string {
	return "password"
}

func (e PasswordEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s changed the password of %s", e.ActorID, e.TargetID)
	}
	return withError(fmt.Sprintf("%s failed to change the password of %s", e.ActorID, e.TargetID), e.ErrorMessage)
}

func (e PasswordEvent) Severity() Severity {
	return severity(e.Success)
}

func (e PasswordEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PasswordEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, "change-password", e.Success)
	sd[SDIDSubject] = map[string]string{"admin": e.TargetID}
	return sd
}
