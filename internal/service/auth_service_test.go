package service

import (
	"errors"
	"testing"
	"time"

	"arrurru_training_backend/internal/config"
	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewInvitationRepository(db),
		cfg,
		zap.NewNop(),
	)
}

func TestInviteRegisterLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	inv, err := svc.Invite(InviteRequest{Email: "Novi@Example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if inv.Email != "novi@example.com" {
		t.Fatalf("email must be normalized, got %s", inv.Email)
	}
	if inv.Token == "" {
		t.Fatal("invitation must carry a token")
	}

	resp, err := svc.Register(RegisterRequest{
		Token:    inv.Token,
		FullName: "Новый Сотрудник",
		Password: "correct-horse",
		Position: "Бармен",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("registration must log the user in")
	}
	if resp.User.Role != model.Staff {
		t.Fatalf("new accounts must be staff, got %s", resp.User.Role)
	}
	if resp.User.Password == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}

	// The token is single-use.
	if _, err := svc.Register(RegisterRequest{
		Token:    inv.Token,
		FullName: "Дубль",
		Password: "correct-horse",
	}); !errors.Is(err, util.ErrInvitationInvalid) {
		t.Fatalf("expected ErrInvitationInvalid on reuse, got %v", err)
	}

	login, err := svc.Login(LoginRequest{Email: "novi@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := util.ParseJWT(login.Token, "test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("token subject mismatch: %d != %d", claims.UserID, resp.User.ID)
	}

	if _, err := svc.Login(LoginRequest{Email: "novi@example.com", Password: "wrong"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "ghost@example.com", Password: "whatever"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestInviteExistingEmailRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "Таня", "tanya@example.com", model.Staff)

	if _, err := svc.Invite(InviteRequest{Email: "tanya@example.com"}); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestExpiredInvitationRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	inv, err := svc.Invite(InviteRequest{Email: "late@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	db.Model(&model.Invitation{}).Where("id = ?", inv.ID).
		Update("expires_at", time.Now().Add(-time.Hour))

	if _, err := svc.Register(RegisterRequest{
		Token:    inv.Token,
		FullName: "Опоздавший",
		Password: "correct-horse",
	}); !errors.Is(err, util.ErrInvitationInvalid) {
		t.Fatalf("expected ErrInvitationInvalid, got %v", err)
	}
}

func TestReinviteReplacesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first, err := svc.Invite(InviteRequest{Email: "again@example.com"})
	if err != nil {
		t.Fatalf("first invite: %v", err)
	}
	second, err := svc.Invite(InviteRequest{Email: "again@example.com"})
	if err != nil {
		t.Fatalf("second invite: %v", err)
	}
	if first.Token == second.Token {
		t.Fatal("re-invite must rotate the token")
	}

	var count int64
	db.Model(&model.Invitation{}).Where("email = ?", "again@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("expected one invitation per email, got %d", count)
	}
	if _, err := svc.Register(RegisterRequest{
		Token:    first.Token,
		FullName: "Кто-то",
		Password: "correct-horse",
	}); !errors.Is(err, util.ErrInvitationInvalid) {
		t.Fatalf("stale token must be rejected, got %v", err)
	}
}

func TestDisabledAccountCannotLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	inv, _ := svc.Invite(InviteRequest{Email: "off@example.com"})
	resp, err := svc.Register(RegisterRequest{
		Token:    inv.Token,
		FullName: "Отключён",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	db.Model(&model.User{}).Where("id = ?", resp.User.ID).Update("disabled", true)

	if _, err := svc.Login(LoginRequest{Email: "off@example.com", Password: "correct-horse"}); !errors.Is(err, util.ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}
