package model

import "time"

// UserProgress is the per-(user, content) completion record. One row per
// pair, replaced wholesale on every attempt: callers pass the complete
// updated record including the incremented attempt counter.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID          uint       `gorm:"index:idx_user_content,unique;type:bigint unsigned" json:"userId"`
	ContentID       string     `gorm:"index:idx_user_content,unique;size:36" json:"contentId"`
	Completed       bool       `gorm:"default:false" json:"completed"`
	ExamScore       *int       `json:"examScore,omitempty"` // 0-100, latest attempt
	ExamAttempts    int        `gorm:"default:0" json:"examAttempts"`
	LastAttemptDate *time.Time `json:"lastAttemptDate,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"` // set only by a passing attempt
}

func (UserProgress) TableName() string {
	return "user_progress"
}
