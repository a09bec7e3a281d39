package audit

import "fmt"

// RevokeEvent represents revoking a refresh token
type RevokeEvent struct {
	ActorID string
	// SubjectID is the admin the token was issued to, empty if it could not be decoded
	SubjectID    string
	Fingerprint  string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RevokeEvent) MessageID() string {
	return "revoke"
}

func (e RevokeEvent) Message() string {
	subject := e.SubjectID
	if subject == "" {
		subject = "unknown admin"
	}
	if e.Success {
		return fmt.Sprintf("%s revoked a refresh token of %s", e.ActorID, subject)
	}
	return withError(fmt.Sprintf("%s failed to revoke a refresh token of %s", e.ActorID, subject), e.ErrorMessage)
}

func (e RevokeEvent) Severity() Severity {
	return severity(e.Success)
}

func (e RevokeEvent) Facility() int {
	return FacilityAuth
}

func (e RevokeEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, "revoke-refresh-token", e.Success)
	sd[SDIDSubject] = map[string]string{
		"admin":       e.SubjectID,
		"fingerprint": e.Fingerprint,
	}
	return sd
}
