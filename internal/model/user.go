package model

import (
	"time"
)

type UserRole string

const (
	Staff      UserRole = "staff"
	Manager    UserRole = "manager"
	SuperAdmin UserRole = "super_admin"
)

// swagger:model User
type User struct {
	BaseModel
	FullName  string    `gorm:"size:100;not null" json:"fullName"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);default:'staff'" json:"role"`
	Position  string    `gorm:"size:100" json:"position"` // job title shown in reports
	Project   string    `gorm:"size:100;default:'ARRURRU'" json:"project"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
