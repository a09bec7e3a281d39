package model

import "time"

// Group is a node in the permission-delegation forest. A nil ParentID marks a root.
type Group struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ParentID    *string   `gorm:"column:parent_id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Group) TableName() string {
	return "groups"
}

// Parent returns the parent id, or "" for a root group.
func (g Group) Parent() string {
	if g.ParentID == nil {
		return ""
	}
	return *g.ParentID
}
