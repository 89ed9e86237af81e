package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"arrurru_training_backend/internal/config"
	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invitationTTL = 7 * 24 * time.Hour

// AuthService handles invitations, registration and login. Registration is
// invitation-only: a manager issues a token, the invitee redeems it once.
type AuthService struct {
	Users       *repository.UserRepository
	Invitations *repository.InvitationRepository
	Config      *config.Config
	Logger      *zap.Logger
}

func NewAuthService(users *repository.UserRepository, invitations *repository.InvitationRepository,
	cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{Users: users, Invitations: invitations, Config: cfg, Logger: logger}
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RegisterRequest struct {
	Token    string `json:"token" binding:"required"`
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Position string `json:"position" binding:"max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse pairs the signed token with the account it authenticates.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Invite issues (or re-issues) an invitation for an email address. Already
// registered addresses are rejected.
func (s *AuthService) Invite(req InviteRequest) (*model.Invitation, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.Users.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	inv := &model.Invitation{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(invitationTTL),
	}
	if err := s.Invitations.Upsert(inv); err != nil {
		return nil, err
	}
	s.Logger.Info("invitation issued", zap.String("email", email))
	return inv, nil
}

// Register redeems an invitation token. The invitation is consumed: the email
// it was issued for becomes the account email.
func (s *AuthService) Register(req RegisterRequest) (*LoginResponse, error) {
	inv, err := s.Invitations.FindByToken(req.Token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInvitationInvalid
		}
		return nil, err
	}
	if inv.Expired() {
		return nil, util.ErrInvitationInvalid
	}
	if _, err := s.Users.FindByEmail(inv.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		FullName: req.FullName,
		Email:    inv.Email,
		Password: string(hashed),
		Role:     model.Staff,
		Position: req.Position,
	}
	if err := s.Users.Create(user); err != nil {
		return nil, err
	}
	if err := s.Invitations.Delete(inv.ID); err != nil {
		s.Logger.Warn("failed to delete redeemed invitation", zap.Uint("invitation_id", inv.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return &LoginResponse{Token: token, User: user}, nil
}

// Login verifies credentials and signs a JWT. Disabled accounts cannot log
// in regardless of the password.
func (s *AuthService) Login(req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return nil, util.ErrAccountDisabled
	}
	if err := s.Users.UpdateLastLogin(user.ID); err != nil {
		s.Logger.Warn("failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) ListInvitations() ([]model.Invitation, error) {
	return s.Invitations.List()
}

func (s *AuthService) RevokeInvitation(id uint) error {
	return s.Invitations.Delete(id)
}
