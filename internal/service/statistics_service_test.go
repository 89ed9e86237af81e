package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"

	"gorm.io/gorm"
)

func newStatisticsService(db *gorm.DB) *StatisticsService {
	return NewStatisticsService(
		repository.NewUserRepository(db),
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewExamResultRepository(db),
	)
}

func seedExamResult(t *testing.T, db *gorm.DB, user *model.User, page *model.ContentPage, score int) {
	t.Helper()
	answers, _ := json.Marshal([]model.ExamAnswer{})
	result := &model.ExamResult{
		UserID:         user.ID,
		UserName:       user.FullName,
		ContentID:      page.ID,
		ContentTitle:   page.Title,
		Score:          score,
		TotalQuestions: 3,
		Answers:        answers,
		CompletedAt:    time.Now(),
	}
	if err := db.Create(result).Error; err != nil {
		t.Fatalf("seed exam result: %v", err)
	}
}

func TestPerUserStats(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)
	staff := seedUser(t, db, "Нина", "nina@example.com", model.Staff)
	seedUser(t, db, "Менеджер", "manager@example.com", model.Manager)
	first := seedExamPage(t, db, "module-1", threeQuestions())
	second := seedExamPage(t, db, "module-2", threeQuestions())

	seedProgress(t, db, staff.ID, first.ID, 90)
	seedExamResult(t, db, staff, first, 60) // failed first try
	seedExamResult(t, db, staff, first, 90)
	_ = second

	stats, err := svc.PerUser()
	if err != nil {
		t.Fatalf("per user: %v", err)
	}
	// Managers are not part of the staff table.
	if len(stats) != 1 {
		t.Fatalf("expected 1 staff row, got %d", len(stats))
	}
	row := stats[0]
	if row.ExamsPassed != 1 || row.TotalExams != 2 {
		t.Fatalf("unexpected pass counts: %+v", row)
	}
	// One page at 90: retries in the attempt log must not drag the mean down.
	if row.AverageScore != 90.0 {
		t.Fatalf("average must be the mean over progress rows, got %v", row.AverageScore)
	}
	if row.ProgressPct != 50 {
		t.Fatalf("expected 50%% progress, got %d", row.ProgressPct)
	}
}

func TestPerTopicDifficulty(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)
	staff := seedUser(t, db, "Олег", "oleg@example.com", model.Staff)
	easy := seedExamPage(t, db, "easy-topic", threeQuestions())
	medium := seedExamPage(t, db, "medium-topic", threeQuestions())
	hard := seedExamPage(t, db, "hard-topic", threeQuestions())

	seedExamResult(t, db, staff, easy, 90)
	seedExamResult(t, db, staff, medium, 70)
	seedExamResult(t, db, staff, hard, 40)

	stats, err := svc.PerTopic()
	if err != nil {
		t.Fatalf("per topic: %v", err)
	}
	byTitle := map[string]TopicStats{}
	for _, s := range stats {
		byTitle[s.ContentID] = s
	}
	if got := byTitle[easy.ID].Difficulty; got != "easy" {
		t.Errorf("avg 90 should be easy, got %s", got)
	}
	if got := byTitle[medium.ID].Difficulty; got != "medium" {
		t.Errorf("avg 70 should be medium, got %s", got)
	}
	if got := byTitle[hard.ID].Difficulty; got != "hard" {
		t.Errorf("avg 40 should be hard, got %s", got)
	}
	if byTitle[hard.ID].Passed != 0 || byTitle[easy.ID].Passed != 1 {
		t.Errorf("pass counts wrong: %+v", stats)
	}
}

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)
	staff := seedUser(t, db, "Пётр Иванов", "petr@example.com", model.Staff)
	page := seedExamPage(t, db, "module-1", threeQuestions())
	seedProgress(t, db, staff.ID, page.ID, 85)
	seedExamResult(t, db, staff, page, 85)

	data, err := svc.ExportCSV()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(data, bom) {
		t.Fatal("export must start with a UTF-8 BOM")
	}

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, bom)))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one row, got %d", len(records))
	}
	header := strings.Join(records[0], ",")
	if header != "ФИО,Email,Должность,Пройдено экзаменов,Средний балл,Прогресс %" {
		t.Fatalf("unexpected header: %s", header)
	}
	row := records[1]
	if row[0] != "Пётр Иванов" || row[3] != "1" || row[5] != "100" {
		t.Fatalf("unexpected data row: %v", row)
	}
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2025, 8, 14, 10, 0, 0, 0, time.UTC)
	if got := ExportFilename(at); got != "arrurru_statistics_2025-08-14.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
}

func TestRecentActivityIncludesFailedAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)
	staff := seedUser(t, db, "Вера", "vera@example.com", model.Staff)
	page := seedExamPage(t, db, "module-1", threeQuestions())

	seedExamResult(t, db, staff, page, 40)
	seedExamResult(t, db, staff, page, 90)

	entries, err := svc.RecentActivity(10)
	if err != nil {
		t.Fatalf("recent activity: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("feed must list every attempt, got %d", len(entries))
	}
	failed := false
	for _, e := range entries {
		if e.Score == 40 {
			failed = true
		}
	}
	if !failed {
		t.Fatal("failed attempt missing from the feed")
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)
	first := seedExamPage(t, db, "module-1", threeQuestions())
	second := seedExamPage(t, db, "module-2", threeQuestions())

	leader := seedUser(t, db, "Раиса", "raisa@example.com", model.Staff)
	seedProgress(t, db, leader.ID, first.ID, 100)
	seedProgress(t, db, leader.ID, second.ID, 95)
	seedExamResult(t, db, leader, first, 100)
	seedExamResult(t, db, leader, second, 95)

	runner := seedUser(t, db, "Семён", "semen@example.com", model.Staff)
	seedProgress(t, db, runner.ID, first.ID, 80)
	seedExamResult(t, db, runner, first, 80)

	board, err := svc.Leaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}
	if board[0].UserID != leader.ID {
		t.Fatalf("expected %d on top, got %d", leader.ID, board[0].UserID)
	}
}
