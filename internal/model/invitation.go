package model

import "time"

// Invitation is a one-time registration pass issued by a manager.
// At most one live invitation per email: re-issuing replaces the old one.
// swagger:model Invitation
type Invitation struct {
	BaseModel
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Token     string    `gorm:"size:64;index;not null" json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) Expired() bool {
	return time.Now().After(i.ExpiresAt)
}
