package model

// Rule is an atomic permission identifier that can be attached to groups
type Rule struct {
	ID          string `gorm:"column:id;primaryKey"`
	Title       string `gorm:"column:title"`
	URL         string `gorm:"column:url"`
	Method      string `gorm:"column:method"`
	Slug        string `gorm:"column:slug"`
	Description string `gorm:"column:description"`
}

func (Rule) TableName() string {
	return "rules"
}
