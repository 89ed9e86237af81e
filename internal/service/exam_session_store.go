package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	sessionInProgress = "in_progress"
	sessionFinished   = "finished"

	// -1 marks a question the user has not answered yet.
	unanswered = -1

	sessionTTL = 2 * time.Hour
)

// ExamSession is the live state of one exam run. One session per
// (user, content) pair; finishing keeps the session around so the result
// screen can be re-read, restarting replaces it.
type ExamSession struct {
	UserID    uint      `json:"userId"`
	ContentID string    `json:"contentId"`
	Current   int       `json:"current"`
	Answers   []int     `json:"answers"`
	Status    string    `json:"status"`
	Score     int       `json:"score"`
	Passed    bool      `json:"passed"`
	StartedAt time.Time `json:"startedAt"`
}

// SessionStore persists in-flight exam sessions. Redis in production so
// sessions survive restarts and are shared between instances; an in-process
// map when redis is not configured.
type SessionStore interface {
	Get(ctx context.Context, userID uint, contentID string) (*ExamSession, error)
	Put(ctx context.Context, session *ExamSession) error
	Delete(ctx context.Context, userID uint, contentID string) error
}

func sessionKey(userID uint, contentID string) string {
	return fmt.Sprintf("exam_session:%d:%s", userID, contentID)
}

type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, userID uint, contentID string) (*ExamSession, error) {
	raw, err := s.Client.Get(ctx, sessionKey(userID, contentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session ExamSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Put(ctx context.Context, session *ExamSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKey(session.UserID, session.ContentID), raw, sessionTTL).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID uint, contentID string) error {
	return s.Client.Del(ctx, sessionKey(userID, contentID)).Err()
}

// MemorySessionStore backs single-instance deployments and tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*ExamSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*ExamSession)}
}

func (s *MemorySessionStore) Get(ctx context.Context, userID uint, contentID string) (*ExamSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionKey(userID, contentID)]
	if !ok {
		return nil, nil
	}
	clone := *session
	clone.Answers = append([]int(nil), session.Answers...)
	return &clone, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, session *ExamSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	clone.Answers = append([]int(nil), session.Answers...)
	s.sessions[sessionKey(session.UserID, session.ContentID)] = &clone
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, userID uint, contentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(userID, contentID))
	return nil
}
