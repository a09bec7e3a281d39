package audit

import "fmt"

func result(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

func severity(success bool) Severity {
	if success {
		return SeverityInfo
	}
	return SeverityWarning
}

func withError(msg, errMsg string) string {
	if errMsg != "" {
		return msg + ": " + errMsg
	}
	return msg
}

// actionData builds the structured data shared by administrative events
func actionData(actor, clientIP, operation string, success bool) map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAuth: {
			"admin": actor,
		},
		SDIDClient: {
			"ip": clientIP,
		},
		SDIDAction: {
			"operation": operation,
			"result":    result(success),
		},
	}
}

// StatusEvent represents enabling or disabling an admin
type StatusEvent struct {
	ActorID      string
	TargetID     string
	ClientIP     string
	Enable       bool
	Success      bool
	ErrorMessage string
}

func (e StatusEvent) operation() string {
	if e.Enable {
		return "enable"
	}
	return "disable"
}

func (e StatusEvent) MessageID() string {
	return "admin-status"
}

func (e StatusEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s %sd admin %s", e.ActorID, e.operation(), e.TargetID)
	}
	return withError(fmt.Sprintf("%s tried to %s admin %s", e.ActorID, e.operation(), e.TargetID), e.ErrorMessage)
}

func (e StatusEvent) Severity() Severity {
	return severity(e.Success)
}

func (e StatusEvent) Facility() int {
	return FacilityAuthPriv
}

func (e StatusEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, e.operation(), e.Success)
	sd[SDIDSubject] = map[string]string{"admin": e.TargetID}
	return sd
}

// DeleteEvent represents deleting an admin
type DeleteEvent struct {
	ActorID      string
	TargetID     string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e DeleteEvent) MessageID() string {
	return "admin-delete"
}

func (e DeleteEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s deleted admin %s", e.ActorID, e.TargetID)
	}
	return withError(fmt.Sprintf("%s tried to delete admin %s", e.ActorID, e.TargetID), e.ErrorMessage)
}

func (e DeleteEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e DeleteEvent) Facility() int {
	return FacilityAuthPriv
}

func (e DeleteEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, "delete", e.Success)
	sd[SDIDSubject] = map[string]string{"admin": e.TargetID}
	return sd
}

// ProfileEvent represents creating an admin or editing its profile or avatar
type ProfileEvent struct {
	ActorID      string
	TargetID     string
	ClientIP     string
	Operation    string // "create", "update", "avatar"
	Success      bool
	ErrorMessage string
}

func (e ProfileEvent) MessageID() string {
	return "admin-profile"
}

func (e ProfileEvent) Message() string {
	verb := map[string]string{"create": "created", "update": "updated", "avatar": "changed the avatar of"}[e.Operation]
	if verb == "" {
		verb = e.Operation
	}
	if e.Success {
		return fmt.Sprintf("%s %s admin %s", e.ActorID, verb, e.TargetID)
	}
	return withError(fmt.Sprintf("%s failed to %s admin %s", e.ActorID, e.Operation, e.TargetID), e.ErrorMessage)
}

func (e ProfileEvent) Severity() Severity {
	return severity(e.Success)
}

func (e ProfileEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ProfileEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"admin": e.TargetID}
	return sd
}
