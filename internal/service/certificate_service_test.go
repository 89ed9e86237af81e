package service

import (
	"errors"
	"testing"
	"time"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCertificateService(db *gorm.DB) *CertificateService {
	return NewCertificateService(
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		repository.NewCertificateRepository(db),
		repository.NewUserRepository(db),
		zap.NewNop(),
	)
}

func seedProgress(t *testing.T, db *gorm.DB, userID uint, contentID string, score int) {
	t.Helper()
	now := time.Now()
	p := &model.UserProgress{
		UserID:          userID,
		ContentID:       contentID,
		Completed:       score >= PassThreshold,
		ExamScore:       &score,
		ExamAttempts:    1,
		LastAttemptDate: &now,
	}
	if p.Completed {
		p.CompletedAt = &now
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed progress: %v", err)
	}
}

func TestCertificateGating(t *testing.T) {
	db := newTestDB(t)
	svc := newCertificateService(db)
	user := seedUser(t, db, "Ксения", "ksenia@example.com", model.Staff)
	first := seedExamPage(t, db, "module-1", threeQuestions())
	second := seedExamPage(t, db, "module-2", threeQuestions())

	// One page passed at 75: passed but below the certificate bar.
	seedProgress(t, db, user.ID, first.ID, 75)

	eligibility, err := svc.Eligibility(user.ID)
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if eligibility.Eligible {
		t.Fatal("75 on one page and nothing on the other must not be eligible")
	}
	if eligibility.Total != 2 || eligibility.Completed != 0 {
		t.Fatalf("unexpected breakdown: %+v", eligibility)
	}
	if _, err := svc.Request(user.ID); !errors.Is(err, util.ErrCertNotEligible) {
		t.Fatalf("expected ErrCertNotEligible, got %v", err)
	}

	// Both pages at or above the certificate threshold.
	db.Unscoped().Where("user_id = ?", user.ID).Delete(&model.UserProgress{})
	seedProgress(t, db, user.ID, first.ID, 80)
	seedProgress(t, db, user.ID, second.ID, 100)

	eligibility, err = svc.Eligibility(user.ID)
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if !eligibility.Eligible || eligibility.Completed != 2 {
		t.Fatalf("expected full eligibility, got %+v", eligibility)
	}

	req, err := svc.Request(user.ID)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if req.Approved {
		t.Fatal("new request must not be pre-approved")
	}
	if req.UserEmail != user.Email {
		t.Fatalf("request email mismatch: %s", req.UserEmail)
	}

	if _, err := svc.Request(user.ID); !errors.Is(err, util.ErrCertAlreadyExists) {
		t.Fatalf("expected ErrCertAlreadyExists, got %v", err)
	}
}

func TestCertificateEmptyCatalogue(t *testing.T) {
	db := newTestDB(t)
	svc := newCertificateService(db)
	user := seedUser(t, db, "Лев", "lev@example.com", model.Staff)

	eligibility, err := svc.Eligibility(user.ID)
	if err != nil {
		t.Fatalf("eligibility: %v", err)
	}
	if eligibility.Eligible {
		t.Fatal("an empty exam catalogue must not make anyone eligible")
	}
}

func TestCertificateApproveAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newCertificateService(db)
	user := seedUser(t, db, "Мария", "maria@example.com", model.Staff)
	page := seedExamPage(t, db, "module-1", threeQuestions())
	seedProgress(t, db, user.ID, page.ID, 90)

	if _, err := svc.Request(user.ID); err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := svc.Approve(user.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}
	status, err := svc.Status(user.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status == nil || !status.Approved {
		t.Fatalf("expected approved request, got %+v", status)
	}

	if err := svc.Delete(user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	status, err = svc.Status(user.ID)
	if err != nil {
		t.Fatalf("status after delete: %v", err)
	}
	if status != nil {
		t.Fatalf("expected no request, got %+v", status)
	}

	if err := svc.Approve(user.ID, true); !errors.Is(err, util.ErrCertRequestNotFound) {
		t.Fatalf("expected ErrCertRequestNotFound, got %v", err)
	}
}
