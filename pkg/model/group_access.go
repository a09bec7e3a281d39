package model

// GroupAccess records that an admin is a member of a group
type GroupAccess struct {
	AdminID string `gorm:"column:admin_id;primaryKey"`
	GroupID string `gorm:"column:group_id;primaryKey"`
}

func (GroupAccess) TableName() string {
	return "group_accesses"
}
