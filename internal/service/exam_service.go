package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"
	"arrurru_training_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PassThreshold is the minimum score for an exam attempt to count as passed.
// Distinct from CertificateThreshold: a page can be passed at 70 while the
// certificate still requires 80.
const PassThreshold = 70

// ExamService runs the scored multiple-choice exams. Session state lives in
// the SessionStore; every finished attempt is appended to the result log and
// folded into the progress row in one place.
type ExamService struct {
	Content  *repository.ContentRepository
	Results  *repository.ExamResultRepository
	Progress *repository.ProgressRepository
	Users    *repository.UserRepository
	Sessions SessionStore
	Logger   *zap.Logger
}

func NewExamService(content *repository.ContentRepository, results *repository.ExamResultRepository,
	progress *repository.ProgressRepository, users *repository.UserRepository,
	sessions SessionStore, logger *zap.Logger) *ExamService {
	return &ExamService{
		Content:  content,
		Results:  results,
		Progress: progress,
		Users:    users,
		Sessions: sessions,
		Logger:   logger,
	}
}

// ExamQuestionView is a question as shown to the examinee, with the correct
// answer stripped.
type ExamQuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// ExamStateView is what the client sees after any exam operation: the cursor,
// the current question, which questions are answered, and the outcome once
// finished.
type ExamStateView struct {
	ContentID string            `json:"contentId"`
	Status    string            `json:"status"`
	Current   int               `json:"current"`
	Total     int               `json:"total"`
	Question  *ExamQuestionView `json:"question,omitempty"`
	Answers   []int             `json:"answers"`
	Score     int               `json:"score,omitempty"`
	Passed    bool              `json:"passed,omitempty"`
}

func (s *ExamService) view(session *ExamSession, questions []model.ExamQuestion) *ExamStateView {
	v := &ExamStateView{
		ContentID: session.ContentID,
		Status:    session.Status,
		Current:   session.Current,
		Total:     len(questions),
		Answers:   session.Answers,
		Score:     session.Score,
		Passed:    session.Passed,
	}
	if session.Status == sessionInProgress && session.Current < len(questions) {
		q := questions[session.Current]
		v.Question = &ExamQuestionView{ID: q.ID, Question: q.Question, Options: q.Options}
	}
	return v
}

func (s *ExamService) examQuestions(contentID string) (*model.ContentPage, []model.ExamQuestion, error) {
	page, err := s.Content.ByID(contentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, util.ErrContentNotFound
		}
		return nil, nil, err
	}
	if !page.HasExam {
		return nil, nil, util.ErrNoExamForContent
	}
	questions, err := page.ExamQuestions()
	if err != nil {
		s.Logger.Error("malformed exam payload", zap.String("content_id", contentID), zap.Error(err))
		return nil, nil, util.ErrNoExamForContent
	}
	if len(questions) == 0 {
		return nil, nil, util.ErrNoExamForContent
	}
	return page, questions, nil
}

// Start opens a session for the exam attached to contentID. An in-progress
// session is resumed as-is; a page the user has already passed cannot be
// retaken.
func (s *ExamService) Start(ctx context.Context, userID uint, contentID string) (*ExamStateView, error) {
	_, questions, err := s.examQuestions(contentID)
	if err != nil {
		return nil, err
	}

	progress, err := s.Progress.ByUserAndContent(userID, contentID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if progress != nil && progress.Completed {
		return nil, util.ErrExamAlreadyPassed
	}

	session, err := s.Sessions.Get(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if session != nil && session.Status == sessionInProgress && len(session.Answers) == len(questions) {
		return s.view(session, questions), nil
	}

	answers := make([]int, len(questions))
	for i := range answers {
		answers[i] = unanswered
	}
	session = &ExamSession{
		UserID:    userID,
		ContentID: contentID,
		Current:   0,
		Answers:   answers,
		Status:    sessionInProgress,
		StartedAt: time.Now(),
	}
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, questions), nil
}

func (s *ExamService) activeSession(ctx context.Context, userID uint, contentID string) (*ExamSession, []model.ExamQuestion, error) {
	_, questions, err := s.examQuestions(contentID)
	if err != nil {
		return nil, nil, err
	}
	session, err := s.Sessions.Get(ctx, userID, contentID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, util.ErrExamSessionNotFound
	}
	if session.Status != sessionInProgress {
		return nil, nil, util.ErrExamFinished
	}
	return session, questions, nil
}

// Answer records an option index for the question under the cursor.
func (s *ExamService) Answer(ctx context.Context, userID uint, contentID string, option int) (*ExamStateView, error) {
	session, questions, err := s.activeSession(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if option < 0 || option >= len(questions[session.Current].Options) {
		return nil, util.ErrAnswerOutOfRange
	}
	session.Answers[session.Current] = option
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, questions), nil
}

// Next advances the cursor. The current question must be answered first; on
// the last question it finishes the exam instead.
func (s *ExamService) Next(ctx context.Context, userID uint, contentID string) (*ExamStateView, error) {
	session, questions, err := s.activeSession(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if session.Answers[session.Current] == unanswered {
		return nil, util.ErrExamUnanswered
	}
	if session.Current == len(questions)-1 {
		return s.finish(ctx, session, questions)
	}
	session.Current++
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, questions), nil
}

// Previous moves the cursor back, bounded at the first question.
func (s *ExamService) Previous(ctx context.Context, userID uint, contentID string) (*ExamStateView, error) {
	session, questions, err := s.activeSession(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if session.Current > 0 {
		session.Current--
		if err := s.Sessions.Put(ctx, session); err != nil {
			return nil, err
		}
	}
	return s.view(session, questions), nil
}

// State returns the current session without mutating it, so a reloaded client
// can pick up where it left off or re-read the result screen.
func (s *ExamService) State(ctx context.Context, userID uint, contentID string) (*ExamStateView, error) {
	_, questions, err := s.examQuestions(contentID)
	if err != nil {
		return nil, err
	}
	session, err := s.Sessions.Get(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, util.ErrExamSessionNotFound
	}
	return s.view(session, questions), nil
}

// Restart discards a finished, failed attempt and opens a fresh session.
// Passed exams stay passed.
func (s *ExamService) Restart(ctx context.Context, userID uint, contentID string) (*ExamStateView, error) {
	_, _, err := s.examQuestions(contentID)
	if err != nil {
		return nil, err
	}
	session, err := s.Sessions.Get(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		if session.Status == sessionInProgress {
			return nil, util.ErrExamSessionNotFound
		}
		if session.Passed {
			return nil, util.ErrExamAlreadyPassed
		}
		if err := s.Sessions.Delete(ctx, userID, contentID); err != nil {
			return nil, err
		}
	}
	return s.Start(ctx, userID, contentID)
}

// finish scores the attempt, appends the result log entry and replaces the
// progress row. All answers must be in by the time the last Next arrives.
func (s *ExamService) finish(ctx context.Context, session *ExamSession, questions []model.ExamQuestion) (*ExamStateView, error) {
	for _, a := range session.Answers {
		if a == unanswered {
			return nil, util.ErrExamUnanswered
		}
	}

	correct := 0
	answers := make([]model.ExamAnswer, len(questions))
	for i, q := range questions {
		ok := session.Answers[i] == q.CorrectAnswer
		if ok {
			correct++
		}
		answers[i] = model.ExamAnswer{QuestionID: q.ID, UserAnswer: session.Answers[i], Correct: ok}
	}
	score := int(math.Round(float64(correct*100) / float64(len(questions))))
	passed := score >= PassThreshold
	now := time.Now()

	page, err := s.Content.ByID(session.ContentID)
	if err != nil {
		return nil, err
	}
	user, err := s.Users.FindByID(session.UserID)
	if err != nil {
		return nil, err
	}

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	result := &model.ExamResult{
		UserID:         session.UserID,
		UserName:       user.FullName,
		ContentID:      session.ContentID,
		ContentTitle:   page.Title,
		Score:          score,
		TotalQuestions: len(questions),
		Answers:        answersJSON,
		CompletedAt:    now,
	}
	if err := s.Results.Append(result); err != nil {
		return nil, err
	}

	attempts := 1
	if prev, err := s.Progress.ByUserAndContent(session.UserID, session.ContentID); err == nil {
		attempts = prev.ExamAttempts + 1
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	progress := &model.UserProgress{
		UserID:          session.UserID,
		ContentID:       session.ContentID,
		Completed:       passed,
		ExamScore:       &score,
		ExamAttempts:    attempts,
		LastAttemptDate: &now,
	}
	if passed {
		progress.CompletedAt = &now
	}
	if err := s.Progress.Upsert(progress); err != nil {
		return nil, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.ExamSubmissions.WithLabelValues(outcome).Inc()
	s.Logger.Info("exam finished",
		zap.Uint("user_id", session.UserID),
		zap.String("content_id", session.ContentID),
		zap.Int("score", score),
		zap.Bool("passed", passed))

	session.Status = sessionFinished
	session.Score = score
	session.Passed = passed
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session, questions), nil
}
