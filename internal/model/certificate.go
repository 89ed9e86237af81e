package model

import "time"

// CertificateRequest gates certificate issuance. One outstanding request per
// user; a manager flips Approved in place.
// swagger:model CertificateRequest
type CertificateRequest struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	UserName    string    `gorm:"size:100" json:"userName"`
	UserEmail   string    `gorm:"size:100" json:"userEmail"`
	RequestedAt time.Time `json:"requestedAt"`
	Approved    bool      `gorm:"default:false" json:"approved"`
}

func (CertificateRequest) TableName() string {
	return "certificate_requests"
}
