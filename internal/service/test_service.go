package service

import (
	"encoding/json"
	"strings"
	"time"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TestService handles free-form tests. Submissions are never auto-graded:
// every answer set is logged verbatim for a manager to review.
type TestService struct {
	Content  *repository.ContentRepository
	Results  *repository.TestResultRepository
	Progress *repository.ProgressRepository
	Users    *repository.UserRepository
	Logger   *zap.Logger
}

func NewTestService(content *repository.ContentRepository, results *repository.TestResultRepository,
	progress *repository.ProgressRepository, users *repository.UserRepository, logger *zap.Logger) *TestService {
	return &TestService{Content: content, Results: results, Progress: progress, Users: users, Logger: logger}
}

// TestSubmissionRequest carries the raw answers keyed by question ID. The
// payload per question depends on its type: an option index (single), a list
// of indices (multiple), or free text (text/essay).
type TestSubmissionRequest struct {
	Answers map[string]json.RawMessage `json:"answers" binding:"required"`
}

// answered reports whether a raw answer counts as given for its question
// type. Whitespace-only text does not count.
func answered(t model.TestQuestionType, raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	switch t {
	case model.QuestionSingle:
		var idx int
		if err := json.Unmarshal(raw, &idx); err != nil {
			return false
		}
		return idx >= 0
	case model.QuestionMultiple:
		var indices []int
		if err := json.Unmarshal(raw, &indices); err != nil {
			return false
		}
		return len(indices) > 0
	case model.QuestionText, model.QuestionEssay:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return false
		}
		return strings.TrimSpace(text) != ""
	}
	return false
}

// Submit validates that every required question has an answer, appends the
// submission to the review log and marks the page completed in the user's
// progress. Optional questions never block submission.
func (s *TestService) Submit(userID uint, contentID string, req TestSubmissionRequest) (*model.TestResult, error) {
	page, err := s.Content.ByID(contentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	if !page.HasTest {
		return nil, util.ErrNoTestForContent
	}
	questions, err := page.TestQuestions()
	if err != nil {
		s.Logger.Error("malformed test payload", zap.String("content_id", contentID), zap.Error(err))
		return nil, util.ErrNoTestForContent
	}
	if len(questions) == 0 {
		return nil, util.ErrNoTestForContent
	}

	answers := make([]model.TestAnswer, len(questions))
	for i, q := range questions {
		raw := req.Answers[q.ID]
		if q.Required && !answered(q.Type, raw) {
			return nil, util.ErrTestIncomplete
		}
		answers[i] = model.TestAnswer{
			QuestionID: q.ID,
			Type:       q.Type,
			Question:   q.Question,
			Answer:     raw,
			Options:    q.Options,
		}
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	result := &model.TestResult{
		UserID:       userID,
		UserName:     user.FullName,
		ContentID:    contentID,
		ContentTitle: page.Title,
		Answers:      answersJSON,
		CompletedAt:  now,
	}
	if err := s.Results.Append(result); err != nil {
		return nil, err
	}

	attempts := 1
	if prev, err := s.Progress.ByUserAndContent(userID, contentID); err == nil {
		attempts = prev.ExamAttempts + 1
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	progress := &model.UserProgress{
		UserID:          userID,
		ContentID:       contentID,
		Completed:       true,
		ExamAttempts:    attempts,
		LastAttemptDate: &now,
		CompletedAt:     &now,
	}
	if err := s.Progress.Upsert(progress); err != nil {
		return nil, err
	}

	s.Logger.Info("test submitted",
		zap.Uint("user_id", userID),
		zap.String("content_id", contentID),
		zap.Uint("result_id", result.ID))
	return result, nil
}

// List returns submissions for review, newest first.
func (s *TestService) List(contentID string, onlyUnreviewed bool, page, limit int) ([]model.TestResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Results.List(contentID, onlyUnreviewed, page, limit)
}

// MarkReviewed flags a submission as seen by a manager.
func (s *TestService) MarkReviewed(id uint) error {
	if _, err := s.Results.ByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrContentNotFound
		}
		return err
	}
	return s.Results.MarkReviewed(id)
}
