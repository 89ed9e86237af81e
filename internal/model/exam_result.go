package model

import (
	"encoding/json"
	"time"
)

// ExamResult is the append-only log of every exam submission. Progress rows
// are upserted but results accumulate the full attempt history.
// swagger:model ExamResult
type ExamResult struct {
	BaseModel
	UserID         uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	UserName       string          `gorm:"size:100" json:"userName"`
	ContentID      string          `gorm:"index;size:36" json:"contentId"`
	ContentTitle   string          `gorm:"size:255" json:"contentTitle"`
	Score          int             `gorm:"not null" json:"score"`
	TotalQuestions int             `gorm:"not null" json:"totalQuestions"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers"` // []ExamAnswer
	CompletedAt    time.Time       `json:"completedAt"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// ExamAnswer is the per-question outcome stored inside an ExamResult.
type ExamAnswer struct {
	QuestionID string `json:"questionId"`
	UserAnswer int    `json:"userAnswer"`
	Correct    bool   `json:"correct"`
}
