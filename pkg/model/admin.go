package model

import "time"

// AvatarDigestLength is the length of the hex digest identifying an admin's avatar.
const AvatarDigestLength = 32

// Admin is an administrator account
type Admin struct {
	ID           string     `gorm:"column:id;primaryKey"`
	Name         string     `gorm:"column:name"`
	Nickname     string     `gorm:"column:nickname"`
	Email        string     `gorm:"column:email"`
	Introduce    string     `gorm:"column:introduce"`
	PasswordHash string     `gorm:"column:password_hash"`
	PasswordSalt string     `gorm:"column:password_salt"`
	Avatar       *string    `gorm:"column:avatar"`
	Status       Status     `gorm:"column:status"`
	IsRoot       bool       `gorm:"column:is_root"`
	LastActiveAt *time.Time `gorm:"column:last_active_at"`
	LastIP       string     `gorm:"column:last_ip"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	CreatedIP    string     `gorm:"column:created_ip"`
}

func (Admin) TableName() string {
	return "admins"
}

// IsEnabled reports whether the admin may act.
func (a Admin) IsEnabled() bool {
	return a.Status == StatusEnabled
}
