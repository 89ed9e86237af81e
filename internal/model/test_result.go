package model

import (
	"encoding/json"
	"time"
)

// TestResult is the append-only log of free-form test submissions. Raw
// answers are kept for human review; nothing here is scored.
// swagger:model TestResult
type TestResult struct {
	BaseModel
	UserID       uint            `gorm:"index;type:bigint unsigned" json:"userId"`
	UserName     string          `gorm:"size:100" json:"userName"`
	ContentID    string          `gorm:"index;size:36" json:"contentId"`
	ContentTitle string          `gorm:"size:255" json:"contentTitle"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers"` // []TestAnswer
	Reviewed     bool            `gorm:"default:false" json:"reviewed"`
	CompletedAt  time.Time       `json:"completedAt"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// TestAnswer carries the raw answer payload for one question. Answer holds
// an option index for single, a list of indices for multiple, or a string
// for text/essay.
type TestAnswer struct {
	QuestionID string           `json:"questionId"`
	Type       TestQuestionType `json:"type"`
	Question   string           `json:"question"`
	Answer     json.RawMessage  `json:"answer"`
	Options    []string         `json:"options,omitempty"`
}
