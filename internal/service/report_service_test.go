package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arrurru_training_backend/internal/config"

	"go.uber.org/zap"
)

func TestSendAccessRequest(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewReportService(&config.TelegramConfig{
		BotToken: "123:abc",
		ChatID:   "-100",
		APIBase:  server.URL,
	}, zap.NewNop())

	err := svc.SendAccessRequest(AccessRequest{
		FullName: "Устин",
		Email:    "ustin@example.com",
		Position: "Повар",
		Message:  "Хочу доступ",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotBody["chat_id"] != "-100" {
		t.Fatalf("unexpected chat id: %s", gotBody["chat_id"])
	}
	if !strings.Contains(gotBody["text"], "ustin@example.com") {
		t.Fatalf("text missing email: %s", gotBody["text"])
	}
}

func TestSendErrorReportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewReportService(&config.TelegramConfig{
		BotToken: "123:abc",
		ChatID:   "-100",
		APIBase:  server.URL,
	}, zap.NewNop())

	if err := svc.SendErrorReport(ErrorReport{Page: "/exam", Description: "кнопка не работает"}); err == nil {
		t.Fatal("non-200 from telegram must surface as an error")
	}
}

func TestReportWithoutTokenIsNoop(t *testing.T) {
	svc := NewReportService(&config.TelegramConfig{}, zap.NewNop())
	if err := svc.SendAccessRequest(AccessRequest{FullName: "Ф", Email: "f@example.com"}); err != nil {
		t.Fatalf("unconfigured telegram must not fail: %v", err)
	}
}
