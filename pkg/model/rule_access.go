package model

// RuleAccess attaches a rule to a group
type RuleAccess struct {
	GroupID string `gorm:"column:group_id;primaryKey"`
	RuleID  string `gorm:"column:rule_id;primaryKey"`
}

func (RuleAccess) TableName() string {
	return "rule_accesses"
}
