package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"arrurru_training_backend/internal/config"

	"go.uber.org/zap"
)

const defaultTelegramAPI = "https://api.telegram.org"

// ReportService forwards access requests and client error reports to the
// managers' Telegram chat. With no bot token configured it degrades to a log
// line so the endpoints stay usable in development.
type ReportService struct {
	Config *config.TelegramConfig
	Client *http.Client
	Logger *zap.Logger
}

func NewReportService(cfg *config.TelegramConfig, logger *zap.Logger) *ReportService {
	return &ReportService{
		Config: cfg,
		Client: &http.Client{Timeout: 10 * time.Second},
		Logger: logger,
	}
}

// AccessRequest is the "I want an account" form for people without an
// invitation.
type AccessRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position" binding:"max=100"`
	Message  string `json:"message" binding:"max=1000"`
}

// ErrorReport is a client-side problem report.
type ErrorReport struct {
	Page        string `json:"page" binding:"required,max=255"`
	Description string `json:"description" binding:"required,max=2000"`
	UserEmail   string `json:"userEmail" binding:"omitempty,email"`
}

func (s *ReportService) sendMessage(text string) error {
	if s.Config.BotToken == "" || s.Config.ChatID == "" {
		s.Logger.Info("telegram not configured, report logged only", zap.String("text", text))
		return nil
	}
	base := s.Config.APIBase
	if base == "" {
		base = defaultTelegramAPI
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", base, s.Config.BotToken)

	payload, err := json.Marshal(map[string]string{
		"chat_id": s.Config.ChatID,
		"text":    text,
	})
	if err != nil {
		return err
	}
	resp, err := s.Client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage returned %d", resp.StatusCode)
	}
	return nil
}

func (s *ReportService) SendAccessRequest(req AccessRequest) error {
	text := fmt.Sprintf("Запрос доступа к порталу обучения\nИмя: %s\nEmail: %s\nДолжность: %s\nСообщение: %s",
		req.FullName, req.Email, req.Position, req.Message)
	return s.sendMessage(text)
}

func (s *ReportService) SendErrorReport(req ErrorReport) error {
	text := fmt.Sprintf("Сообщение об ошибке\nСтраница: %s\nОписание: %s\nEmail: %s",
		req.Page, req.Description, req.UserEmail)
	return s.sendMessage(text)
}
