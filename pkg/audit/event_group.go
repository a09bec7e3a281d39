package audit

import "fmt"

// GroupEvent represents creating or moving a group
type GroupEvent struct {
	ActorID      string
	GroupID      string
	ParentID     string
	ClientIP     string
	Operation    string // "create-group", "move-group"
	Success      bool
	ErrorMessage string
}

func (e GroupEvent) MessageID() string {
	return "group"
}

func (e GroupEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on group %s", e.ActorID, e.Operation, e.GroupID)
	}
	return withError(fmt.Sprintf("%s failed %s on group %s", e.ActorID, e.Operation, e.GroupID), e.ErrorMessage)
}

func (e GroupEvent) Severity() Severity {
	return severity(e.Success)
}

func (e GroupEvent) Facility() int {
	return FacilityAuthPriv
}

func (e GroupEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"group": e.GroupID}
	if e.ParentID != "" {
		sd[SDIDSubject]["parent"] = e.ParentID
	}
	return sd
}

// RuleEvent represents creating a rule or attaching it to a group
type RuleEvent struct {
	ActorID      string
	RuleID       string
	GroupID      string
	ClientIP     string
	Operation    string // "create-rule", "attach-rule"
	Success      bool
	ErrorMessage string
}

func (e RuleEvent) MessageID() string {
	return "rule"
}

func (e RuleEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s performed %s on rule %s", e.ActorID, e.Operation, e.RuleID)
	}
	return withError(fmt.Sprintf("%s failed %s on rule %s", e.ActorID, e.Operation, e.RuleID), e.ErrorMessage)
}

func (e RuleEvent) Severity() Severity {
	return severity(e.Success)
}

func (e RuleEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RuleEvent) StructuredData() map[string]map[string]string {
	sd := actionData(e.ActorID, e.ClientIP, e.Operation, e.Success)
	sd[SDIDSubject] = map[string]string{"rule": e.RuleID}
	if e.GroupID != "" {
		sd[SDIDSubject]["group"] = e.GroupID
	}
	return sd
}
