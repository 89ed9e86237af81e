package service

import (
	"strings"

	"arrurru_training_backend/internal/model"
	"arrurru_training_backend/internal/repository"
	"arrurru_training_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers profile reads and the manager-side account operations.
type UserService struct {
	Users  *repository.UserRepository
	Logger *zap.Logger
}

func NewUserService(users *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Position string `json:"position" binding:"max=100"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

// UpdateUserRequest is the manager-side account edit: role, position and the
// disabled flag.
type UpdateUserRequest struct {
	Role     model.UserRole `json:"role" binding:"omitempty,oneof=staff manager super_admin"`
	Position string         `json:"position" binding:"max=100"`
	Disabled *bool          `json:"disabled"`
}

func (s *UserService) ByID(id uint) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(role string, search string) ([]model.User, error) {
	return s.Users.List(role, strings.TrimSpace(search))
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.ByID(userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Position != "" {
		user.Position = req.Position
	}
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uint, req ChangePasswordRequest) error {
	user, err := s.ByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return util.ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.Users.Update(user)
}

// UpdateUser applies a manager edit to another account.
func (s *UserService) UpdateUser(id uint, req UpdateUserRequest) (*model.User, error) {
	user, err := s.ByID(id)
	if err != nil {
		return nil, err
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Position != "" {
		user.Position = req.Position
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	s.Logger.Info("user updated", zap.Uint("user_id", id), zap.String("role", string(user.Role)))
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.ByID(id); err != nil {
		return err
	}
	return s.Users.Delete(id)
}
