package model

import "encoding/json"

type ContentSection string

const (
	SectionCodice       ContentSection = "codice"
	SectionTrainingHall ContentSection = "training-hall"
	SectionTrainings    ContentSection = "trainings"
	SectionStandards    ContentSection = "standards"
)

func ValidSection(s ContentSection) bool {
	switch s {
	case SectionCodice, SectionTrainingHall, SectionTrainings, SectionStandards:
		return true
	}
	return false
}

// ContentPage is one lesson/document unit, optionally carrying an exam
// (scored, multiple choice) or a free-form test (unscored).
// Builtin pages come from the shipped fixtures and are refreshed on version
// bumps; manager-authored pages are never touched by the fixture sync.
// swagger:model ContentPage
type ContentPage struct {
	UUIDBase
	Section    ContentSection  `gorm:"size:20;index;not null" json:"section"`
	Title      string          `gorm:"size:255;not null" json:"title"`
	Slug       string          `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Body       string          `gorm:"type:text" json:"content"` // markdown
	ParentID   string          `gorm:"size:36;index" json:"parentId,omitempty"`
	OrderIndex int             `gorm:"default:0" json:"orderIndex"` // section-local ordering
	Files      json.RawMessage `gorm:"type:json" json:"files"`      // []ContentFile
	HasExam    bool            `gorm:"default:false" json:"hasExam"`
	Exam       json.RawMessage `gorm:"type:json" json:"exam,omitempty"` // []ExamQuestion
	HasTest    bool            `gorm:"default:false" json:"hasTest"`
	Test       json.RawMessage `gorm:"type:json" json:"test,omitempty"` // []TestQuestion
	Builtin    bool            `gorm:"default:false" json:"builtin"`
}

func (ContentPage) TableName() string {
	return "content_pages"
}

// ContentFile is an attachment on a page.
type ContentFile struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	Type            string  `json:"type"` // document, video, image, link
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
}

// ExamQuestion is a scored multiple-choice question shipped with a page.
// Immutable once published with the content.
type ExamQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"` // index into Options
}

type TestQuestionType string

const (
	QuestionSingle   TestQuestionType = "single"
	QuestionMultiple TestQuestionType = "multiple"
	QuestionText     TestQuestionType = "text"
	QuestionEssay    TestQuestionType = "essay"
)

// TestQuestion is a free-form test question. No auto-grading.
type TestQuestion struct {
	ID       string           `json:"id"`
	Type     TestQuestionType `json:"type"`
	Question string           `json:"question"`
	Options  []string         `json:"options,omitempty"` // single and multiple only
	Required bool             `json:"required,omitempty"`
}

// ExamQuestions decodes the embedded exam payload.
func (p *ContentPage) ExamQuestions() ([]ExamQuestion, error) {
	if len(p.Exam) == 0 {
		return nil, nil
	}
	var qs []ExamQuestion
	if err := json.Unmarshal(p.Exam, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// TestQuestions decodes the embedded free-form test payload.
func (p *ContentPage) TestQuestions() ([]TestQuestion, error) {
	if len(p.Test) == 0 {
		return nil, nil
	}
	var qs []TestQuestion
	if err := json.Unmarshal(p.Test, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}
