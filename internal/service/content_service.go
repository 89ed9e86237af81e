package service

import (
	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"
	"arrurru_training_backend/pkg/logger"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContentService struct {
	Repo     *repository.ContentRepository
	Settings *repository.SettingRepository
}

func NewContentService(repo *repository.ContentRepository, settings *repository.SettingRepository) *ContentService {
	return &ContentService{Repo: repo, Settings: settings}
}

// SyncFixtures brings the builtin page set up to the current fixtures
// version. Builtin rows are matched by slug and refreshed in place; pages
// authored by managers are never modified or removed, so edits survive
// upgrades.
func (s *ContentService) SyncFixtures() error {
	stored, err := s.Settings.Get(fixturesVersionKey)
	if err != nil {
		return err
	}
	if stored == FixturesVersion {
		return nil
	}

	for _, f := range builtinPages() {
		fresh := f.toPage()

		existing, err := s.Repo.BySlug(f.Slug)
		if err == gorm.ErrRecordNotFound {
			if err := s.Repo.Create(&fresh); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if !existing.Builtin {
			// A manager page claimed the slug. Leave it alone.
			logger.Log.Warn("fixture slug taken by authored page, skipping",
				zap.String("slug", f.Slug))
			continue
		}

		existing.Section = fresh.Section
		existing.Title = fresh.Title
		existing.Body = fresh.Body
		existing.OrderIndex = fresh.OrderIndex
		existing.HasExam = fresh.HasExam
		existing.Exam = fresh.Exam
		existing.HasTest = fresh.HasTest
		existing.Test = fresh.Test
		if err := s.Repo.Update(existing); err != nil {
			return err
		}
	}

	if err := s.Settings.Set(fixturesVersionKey, FixturesVersion); err != nil {
		return err
	}
	logger.Log.Info("content fixtures synced",
		zap.String("from", stored), zap.String("to", FixturesVersion))
	return nil
}

func (s *ContentService) List() ([]model.ContentPage, error) {
	return s.Repo.List()
}

func (s *ContentService) BySection(section model.ContentSection) ([]model.ContentPage, error) {
	if !model.ValidSection(section) {
		return nil, util.ErrContentNotFound
	}
	return s.Repo.BySection(section)
}

func (s *ContentService) BySlug(slug string) (*model.ContentPage, error) {
	page, err := s.Repo.BySlug(slug)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrContentNotFound
	}
	return page, err
}

func (s *ContentService) ByID(id string) (*model.ContentPage, error) {
	page, err := s.Repo.ByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrContentNotFound
	}
	return page, err
}

type ContentPageRequest struct {
	ID         string               `json:"id"`
	Section    model.ContentSection `json:"section" binding:"required"`
	Title      string               `json:"title" binding:"required"`
	Slug       string               `json:"slug" binding:"required"`
	Content    string               `json:"content"`
	ParentID   string               `json:"parentId"`
	OrderIndex int                  `json:"orderIndex"`
	Files      []model.ContentFile  `json:"files"`
	HasExam    bool                 `json:"hasExam"`
	Exam       []model.ExamQuestion `json:"exam"`
	HasTest    bool                 `json:"hasTest"`
	Test       []model.TestQuestion `json:"test"`
}

// Save creates a page when no id is given, otherwise replaces the existing
// one. An unknown id is an error rather than a silent append.
func (s *ContentService) Save(req ContentPageRequest) (*model.ContentPage, error) {
	if !model.ValidSection(req.Section) {
		return nil, util.ErrContentNotFound
	}

	bySlug, err := s.Repo.BySlug(req.Slug)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil && bySlug.ID != req.ID {
		return nil, util.ErrSlugTaken
	}

	files := req.Files
	if files == nil {
		files = []model.ContentFile{}
	}
	filesRaw, err := json.Marshal(files)
	if err != nil {
		return nil, err
	}

	var examRaw, testRaw json.RawMessage
	if len(req.Exam) > 0 {
		examRaw, err = json.Marshal(req.Exam)
		if err != nil {
			return nil, err
		}
	}
	if len(req.Test) > 0 {
		testRaw, err = json.Marshal(req.Test)
		if err != nil {
			return nil, err
		}
	}

	if req.ID == "" {
		count, err := s.Repo.CountInSection(req.Section)
		if err != nil {
			return nil, err
		}
		orderIndex := req.OrderIndex
		if orderIndex == 0 {
			orderIndex = int(count) + 1
		}
		page := model.ContentPage{
			Section:    req.Section,
			Title:      req.Title,
			Slug:       req.Slug,
			Body:       req.Content,
			ParentID:   req.ParentID,
			OrderIndex: orderIndex,
			Files:      filesRaw,
			HasExam:    req.HasExam && len(req.Exam) > 0,
			Exam:       examRaw,
			HasTest:    req.HasTest && len(req.Test) > 0,
			Test:       testRaw,
		}
		if err := s.Repo.Create(&page); err != nil {
			return nil, err
		}
		return &page, nil
	}

	page, err := s.Repo.ByID(req.ID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}

	page.Section = req.Section
	page.Title = req.Title
	page.Slug = req.Slug
	page.Body = req.Content
	page.ParentID = req.ParentID
	if req.OrderIndex != 0 {
		page.OrderIndex = req.OrderIndex
	}
	page.Files = filesRaw
	page.HasExam = req.HasExam && len(req.Exam) > 0
	page.Exam = examRaw
	page.HasTest = req.HasTest && len(req.Test) > 0
	page.Test = testRaw
	// Editing a builtin page converts it to an authored one, so the next
	// fixture sync cannot overwrite the manager's changes.
	page.Builtin = false

	if err := s.Repo.Update(page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *ContentService) Delete(id string) error {
	removed, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return util.ErrContentNotFound
	}
	return nil
}

// StaffExamQuestion is an exam question with the correct answer withheld.
type StaffExamQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// StaffPageView is a page as staff see it: exam questions stripped of
// answers, test questions as-is (they carry no answer key).
type StaffPageView struct {
	model.ContentPage
	Exam []StaffExamQuestion  `json:"exam,omitempty"`
	Test []model.TestQuestion `json:"test,omitempty"`
}

func (s *ContentService) StaffView(page *model.ContentPage) *StaffPageView {
	view := &StaffPageView{ContentPage: *page}
	view.ContentPage.Exam = nil
	view.ContentPage.Test = nil

	if page.HasExam {
		questions, err := page.ExamQuestions()
		if err != nil {
			// Malformed embedded exam payloads degrade to "no exam".
			logger.Log.Warn("malformed exam payload on page",
				zap.String("slug", page.Slug), zap.Error(err))
			view.HasExam = false
		} else {
			view.Exam = make([]StaffExamQuestion, len(questions))
			for i, q := range questions {
				view.Exam[i] = StaffExamQuestion{ID: q.ID, Question: q.Question, Options: q.Options}
			}
		}
	}
	if page.HasTest {
		questions, err := page.TestQuestions()
		if err != nil {
			logger.Log.Warn("malformed test payload on page",
				zap.String("slug", page.Slug), zap.Error(err))
			view.HasTest = false
		} else {
			view.Test = questions
		}
	}
	return view
}
