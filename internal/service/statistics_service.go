package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"time"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
)

// StatisticsService aggregates the exam result log and progress rows into
// the manager dashboard views and the CSV export.
type StatisticsService struct {
	Users    *repository.UserRepository
	Content  *repository.ContentRepository
	Progress *repository.ProgressRepository
	Results  *repository.ExamResultRepository
}

func NewStatisticsService(users *repository.UserRepository, content *repository.ContentRepository,
	progress *repository.ProgressRepository, results *repository.ExamResultRepository) *StatisticsService {
	return &StatisticsService{Users: users, Content: content, Progress: progress, Results: results}
}

// UserStats is one row of the per-user dashboard table.
type UserStats struct {
	UserID       uint    `json:"userId"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	ExamsPassed  int     `json:"examsPassed"`
	TotalExams   int     `json:"totalExams"`
	AverageScore float64 `json:"averageScore"`
	ProgressPct  int     `json:"progressPct"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}

// TopicStats describes how the workforce performs on one exam page.
type TopicStats struct {
	ContentID    string  `json:"contentId"`
	Title        string  `json:"title"`
	Attempts     int     `json:"attempts"`
	Passed       int     `json:"passed"`
	AverageScore float64 `json:"averageScore"`
	Difficulty   string  `json:"difficulty"` // easy, medium, hard
}

// ActivityEntry is one line of the recent activity feed.
type ActivityEntry struct {
	UserName     string    `json:"userName"`
	ContentTitle string    `json:"contentTitle"`
	Score        int       `json:"score"`
	CompletedAt  time.Time `json:"completedAt"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// difficulty buckets a page by the average score across all attempts.
func difficulty(avg float64) string {
	switch {
	case avg >= 85:
		return "easy"
	case avg >= 70:
		return "medium"
	default:
		return "hard"
	}
}

// MyProgress returns the caller's progress rows.
func (s *StatisticsService) MyProgress(userID uint) ([]model.UserProgress, error) {
	return s.Progress.ByUser(userID)
}

// MyExamResults returns the caller's attempt history, newest first.
func (s *StatisticsService) MyExamResults(userID uint) ([]model.ExamResult, error) {
	return s.Results.ByUser(userID)
}

// PerUser builds the dashboard table over staff accounts. Progress percent is
// completed exam pages over the exam catalogue size; average score is the
// mean of the latest score per page (progress rows), failed pages included.
func (s *StatisticsService) PerUser() ([]UserStats, error) {
	users, err := s.Users.List(string(model.Staff), "")
	if err != nil {
		return nil, err
	}
	examPages, err := s.Content.ExamPages()
	if err != nil {
		return nil, err
	}
	allProgress, err := s.Progress.All()
	if err != nil {
		return nil, err
	}

	examPageIDs := make(map[string]bool, len(examPages))
	for _, p := range examPages {
		examPageIDs[p.ID] = true
	}
	progressByUser := make(map[uint][]model.UserProgress)
	for _, p := range allProgress {
		progressByUser[p.UserID] = append(progressByUser[p.UserID], p)
	}

	stats := make([]UserStats, 0, len(users))
	for _, u := range users {
		row := UserStats{
			UserID:     u.ID,
			FullName:   u.FullName,
			Email:      u.Email,
			Position:   u.Position,
			TotalExams: len(examPages),
		}
		sum, scored := 0, 0
		for _, p := range progressByUser[u.ID] {
			if !examPageIDs[p.ContentID] {
				continue
			}
			if p.Completed {
				row.ExamsPassed++
			}
			if p.ExamScore != nil {
				sum += *p.ExamScore
				scored++
			}
			if p.LastAttemptDate != nil && (row.LastActivity == nil || p.LastAttemptDate.After(*row.LastActivity)) {
				row.LastActivity = p.LastAttemptDate
			}
		}
		if scored > 0 {
			row.AverageScore = round1(float64(sum) / float64(scored))
		}
		if len(examPages) > 0 {
			row.ProgressPct = int(math.Round(float64(row.ExamsPassed*100) / float64(len(examPages))))
		}
		stats = append(stats, row)
	}
	return stats, nil
}

// PerTopic aggregates the attempt log by exam page.
func (s *StatisticsService) PerTopic() ([]TopicStats, error) {
	pages, err := s.Content.ExamPages()
	if err != nil {
		return nil, err
	}
	results, err := s.Results.All()
	if err != nil {
		return nil, err
	}

	byContent := make(map[string][]model.ExamResult)
	for _, r := range results {
		byContent[r.ContentID] = append(byContent[r.ContentID], r)
	}

	stats := make([]TopicStats, 0, len(pages))
	for _, page := range pages {
		row := TopicStats{ContentID: page.ID, Title: page.Title}
		attempts := byContent[page.ID]
		row.Attempts = len(attempts)
		sum := 0
		for _, a := range attempts {
			sum += a.Score
			if a.Score >= PassThreshold {
				row.Passed++
			}
		}
		if len(attempts) > 0 {
			row.AverageScore = round1(float64(sum) / float64(len(attempts)))
		}
		row.Difficulty = difficulty(row.AverageScore)
		stats = append(stats, row)
	}
	return stats, nil
}

// RecentActivity returns the latest exam attempts, newest first. Failed
// attempts are part of the feed.
func (s *StatisticsService) RecentActivity(limit int) ([]ActivityEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	results, err := s.Results.All()
	if err != nil {
		return nil, err
	}
	entries := make([]ActivityEntry, 0, limit)
	for _, r := range results {
		entries = append(entries, ActivityEntry{
			UserName:     r.UserName,
			ContentTitle: r.ContentTitle,
			Score:        r.Score,
			CompletedAt:  r.CompletedAt,
		})
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

// Leaderboard ranks staff by exams passed, average score breaking ties.
func (s *StatisticsService) Leaderboard(limit int) ([]UserStats, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	stats, err := s.PerUser()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].ExamsPassed != stats[j].ExamsPassed {
			return stats[i].ExamsPassed > stats[j].ExamsPassed
		}
		return stats[i].AverageScore > stats[j].AverageScore
	})
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// ExportFilename is the download name for the CSV export, dated for the day
// it was generated.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("arrurru_statistics_%s.csv", now.Format("2006-01-02"))
}

// ExportCSV renders the per-user table as CSV. The body starts with a UTF-8
// BOM so Excel picks up the Cyrillic headers.
func (s *StatisticsService) ExportCSV() ([]byte, error) {
	stats, err := s.PerUser()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ФИО", "Email", "Должность", "Пройдено экзаменов", "Средний балл", "Прогресс %"}); err != nil {
		return nil, err
	}
	for _, row := range stats {
		record := []string{
			row.FullName,
			row.Email,
			row.Position,
			fmt.Sprintf("%d", row.ExamsPassed),
			fmt.Sprintf("%.1f", row.AverageScore),
			fmt.Sprintf("%d", row.ProgressPct),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
