package service

import (
	"encoding/json"
	"errors"
	"testing"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(db *gorm.DB) *TestService {
	return NewTestService(
		repository.NewContentRepository(db),
		repository.NewTestResultRepository(db),
		repository.NewProgressRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
}

func freeFormQuestions() []model.TestQuestion {
	return []model.TestQuestion{
		{ID: "q1", Type: model.QuestionSingle, Question: "Выберите один", Options: []string{"а", "б"}, Required: true},
		{ID: "q2", Type: model.QuestionMultiple, Question: "Выберите несколько", Options: []string{"а", "б", "в"}, Required: true},
		{ID: "q3", Type: model.QuestionEssay, Question: "Опишите своими словами", Required: true},
	}
}

func raw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal answer: %v", err)
	}
	return b
}

func TestTestSubmit(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	user := seedUser(t, db, "Елена", "elena@example.com", model.Staff)
	page := seedTestPage(t, db, "training-1", freeFormQuestions())

	result, err := svc.Submit(user.ID, page.ID, TestSubmissionRequest{Answers: map[string]json.RawMessage{
		"q1": raw(t, 1),
		"q2": raw(t, []int{0, 2}),
		"q3": raw(t, "Команда важнее всего"),
	}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Reviewed {
		t.Fatal("fresh submission must not be reviewed")
	}
	if result.UserName != "Елена" || result.ContentTitle == "" {
		t.Fatalf("missing denormalized fields: %+v", result)
	}

	var answers []model.TestAnswer
	if err := json.Unmarshal(result.Answers, &answers); err != nil {
		t.Fatalf("unmarshal answers: %v", err)
	}
	if len(answers) != 3 || answers[2].Type != model.QuestionEssay {
		t.Fatalf("unexpected answers payload: %+v", answers)
	}

	progress, err := repository.NewProgressRepository(db).ByUserAndContent(user.ID, page.ID)
	if err != nil {
		t.Fatalf("progress after submit: %v", err)
	}
	if !progress.Completed || progress.CompletedAt == nil {
		t.Fatalf("submission must mark the page completed: %+v", progress)
	}
	if progress.ExamScore != nil {
		t.Fatalf("free-form tests carry no score, got %v", *progress.ExamScore)
	}
}

func TestTestResubmitIncrementsAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	user := seedUser(t, db, "Лариса", "larisa@example.com", model.Staff)
	page := seedTestPage(t, db, "training-1", freeFormQuestions())

	answers := map[string]json.RawMessage{
		"q1": raw(t, 0),
		"q2": raw(t, []int{1}),
		"q3": raw(t, "первый ответ"),
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(user.ID, page.ID, TestSubmissionRequest{Answers: answers}); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}

	progress, err := repository.NewProgressRepository(db).ByUserAndContent(user.ID, page.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.ExamAttempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", progress.ExamAttempts)
	}

	var rows int64
	db.Model(&model.UserProgress{}).Where("user_id = ?", user.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("resubmission must reuse the progress row, found %d", rows)
	}
	var results int64
	db.Model(&model.TestResult{}).Where("user_id = ?", user.ID).Count(&results)
	if results != 2 {
		t.Fatalf("every submission must be logged, found %d", results)
	}
}

func TestTestOptionalQuestionDoesNotBlock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	user := seedUser(t, db, "Мария", "maria@example.com", model.Staff)
	page := seedTestPage(t, db, "training-1", []model.TestQuestion{
		{ID: "q1", Type: model.QuestionSingle, Question: "Выберите один", Options: []string{"а", "б"}, Required: true},
		{ID: "q2", Type: model.QuestionEssay, Question: "Дополнительно"},
	})

	result, err := svc.Submit(user.ID, page.ID, TestSubmissionRequest{Answers: map[string]json.RawMessage{
		"q1": raw(t, 1),
	}})
	if err != nil {
		t.Fatalf("optional question must not block: %v", err)
	}

	var answers []model.TestAnswer
	if err := json.Unmarshal(result.Answers, &answers); err != nil {
		t.Fatalf("unmarshal answers: %v", err)
	}
	// The unanswered optional question still appears in the review payload.
	if len(answers) != 2 {
		t.Fatalf("expected both questions logged, got %d", len(answers))
	}
}

func TestTestSubmitRejectsBlankEssay(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	user := seedUser(t, db, "Жанна", "zhanna@example.com", model.Staff)
	page := seedTestPage(t, db, "training-1", freeFormQuestions())

	cases := map[string]map[string]json.RawMessage{
		"whitespace essay": {
			"q1": raw(t, 0),
			"q2": raw(t, []int{1}),
			"q3": raw(t, "   \n\t"),
		},
		"missing question": {
			"q1": raw(t, 0),
			"q3": raw(t, "текст"),
		},
		"empty multiple": {
			"q1": raw(t, 0),
			"q2": raw(t, []int{}),
			"q3": raw(t, "текст"),
		},
		"negative single": {
			"q1": raw(t, -1),
			"q2": raw(t, []int{1}),
			"q3": raw(t, "текст"),
		},
	}
	for name, answers := range cases {
		if _, err := svc.Submit(user.ID, page.ID, TestSubmissionRequest{Answers: answers}); !errors.Is(err, util.ErrTestIncomplete) {
			t.Errorf("%s: expected ErrTestIncomplete, got %v", name, err)
		}
	}

	var count int64
	db.Model(&model.TestResult{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected submissions must not be logged, found %d", count)
	}
}

func TestTestSubmitWithoutTest(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	user := seedUser(t, db, "Зоя", "zoya@example.com", model.Staff)
	page := seedExamPage(t, db, "module-1", threeQuestions())

	if _, err := svc.Submit(user.ID, page.ID, TestSubmissionRequest{}); !errors.Is(err, util.ErrNoTestForContent) {
		t.Fatalf("expected ErrNoTestForContent, got %v", err)
	}
	if _, err := svc.Submit(user.ID, "missing", TestSubmissionRequest{}); !errors.Is(err, util.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestTestReviewFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(db)
	user := seedUser(t, db, "Ирина", "irina@example.com", model.Staff)
	page := seedTestPage(t, db, "training-1", freeFormQuestions())

	result, err := svc.Submit(user.ID, page.ID, TestSubmissionRequest{Answers: map[string]json.RawMessage{
		"q1": raw(t, 0),
		"q2": raw(t, []int{1}),
		"q3": raw(t, "ответ"),
	}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	unreviewed, total, err := svc.List("", true, 1, 20)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(unreviewed) != 1 {
		t.Fatalf("expected one unreviewed submission, got %d", total)
	}

	if err := svc.MarkReviewed(result.ID); err != nil {
		t.Fatalf("mark reviewed: %v", err)
	}
	_, total, err = svc.List("", true, 1, 20)
	if err != nil {
		t.Fatalf("list after review: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected empty review queue, got %d", total)
	}
}
