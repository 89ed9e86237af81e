package service

import (
	"time"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CertificateThreshold is the minimum score every exam page must carry for a
// user to request a certificate. Higher than PassThreshold on purpose: a 70
// passes the page, an 80 is required for the certificate.
const CertificateThreshold = 80

// CertificateService gates certificate requests on full completion of the
// exam catalogue.
type CertificateService struct {
	Content      *repository.ContentRepository
	Progress     *repository.ProgressRepository
	Certificates *repository.CertificateRepository
	Users        *repository.UserRepository
	Logger       *zap.Logger
}

func NewCertificateService(content *repository.ContentRepository, progress *repository.ProgressRepository,
	certificates *repository.CertificateRepository, users *repository.UserRepository,
	logger *zap.Logger) *CertificateService {
	return &CertificateService{
		Content:      content,
		Progress:     progress,
		Certificates: certificates,
		Users:        users,
		Logger:       logger,
	}
}

// Eligibility is the breakdown behind the eligible flag, so the client can
// show which pages still block the certificate.
type Eligibility struct {
	Eligible  bool            `json:"eligible"`
	Total     int             `json:"total"`
	Completed int             `json:"completed"`
	Pages     []EligibleEntry `json:"pages"`
}

type EligibleEntry struct {
	ContentID string `json:"contentId"`
	Title     string `json:"title"`
	Score     *int   `json:"score,omitempty"`
	Met       bool   `json:"met"`
}

// Eligibility checks every exam page against the certificate threshold. An
// empty catalogue means nobody is eligible, not everybody.
func (s *CertificateService) Eligibility(userID uint) (*Eligibility, error) {
	pages, err := s.Content.ExamPages()
	if err != nil {
		return nil, err
	}
	progress, err := s.Progress.ByUser(userID)
	if err != nil {
		return nil, err
	}
	byContent := make(map[string]*model.UserProgress, len(progress))
	for i := range progress {
		byContent[progress[i].ContentID] = &progress[i]
	}

	result := &Eligibility{Total: len(pages), Pages: make([]EligibleEntry, 0, len(pages))}
	for _, page := range pages {
		entry := EligibleEntry{ContentID: page.ID, Title: page.Title}
		if p, ok := byContent[page.ID]; ok && p.Completed && p.ExamScore != nil {
			entry.Score = p.ExamScore
			entry.Met = *p.ExamScore >= CertificateThreshold
		}
		if entry.Met {
			result.Completed++
		}
		result.Pages = append(result.Pages, entry)
	}
	result.Eligible = len(pages) > 0 && result.Completed == len(pages)
	return result, nil
}

// Request files a certificate request for an eligible user. One per user.
func (s *CertificateService) Request(userID uint) (*model.CertificateRequest, error) {
	eligibility, err := s.Eligibility(userID)
	if err != nil {
		return nil, err
	}
	if !eligibility.Eligible {
		return nil, util.ErrCertNotEligible
	}
	if _, err := s.Certificates.ByUser(userID); err == nil {
		return nil, util.ErrCertAlreadyExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	req := &model.CertificateRequest{
		UserID:      userID,
		UserName:    user.FullName,
		UserEmail:   user.Email,
		RequestedAt: time.Now(),
	}
	if err := s.Certificates.Create(req); err != nil {
		return nil, err
	}
	s.Logger.Info("certificate requested", zap.Uint("user_id", userID))
	return req, nil
}

// Status returns the user's request, or nil when none exists.
func (s *CertificateService) Status(userID uint) (*model.CertificateRequest, error) {
	req, err := s.Certificates.ByUser(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *CertificateService) List() ([]model.CertificateRequest, error) {
	return s.Certificates.List()
}

func (s *CertificateService) Approve(userID uint, approved bool) error {
	err := s.Certificates.SetApproved(userID, approved)
	if err == gorm.ErrRecordNotFound {
		return util.ErrCertRequestNotFound
	}
	return err
}

func (s *CertificateService) Delete(userID uint) error {
	err := s.Certificates.Delete(userID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrCertRequestNotFound
	}
	return err
}
