package service

import (
	"context"
	"testing"
	"time"
)

func TestMemorySessionStoreIsolation(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := &ExamSession{
		UserID:    1,
		ContentID: "page-1",
		Answers:   []int{unanswered, unanswered},
		Status:    sessionInProgress,
		StartedAt: time.Now(),
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Mutating the caller's copy must not leak into the store.
	session.Answers[0] = 1
	session.Current = 1

	loaded, err := store.Get(ctx, 1, "page-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Answers[0] != unanswered || loaded.Current != 0 {
		t.Fatalf("store shares state with callers: %+v", loaded)
	}

	// And the other direction: mutating a loaded copy stays local.
	loaded.Answers[1] = 0
	again, _ := store.Get(ctx, 1, "page-1")
	if again.Answers[1] != unanswered {
		t.Fatalf("loaded sessions share a backing array: %+v", again)
	}
}

func TestMemorySessionStoreMissAndDelete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	missing, err := store.Get(ctx, 9, "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for a missing session, got %+v", missing)
	}

	session := &ExamSession{UserID: 9, ContentID: "page", Answers: []int{unanswered}, Status: sessionInProgress}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, 9, "page"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	gone, _ := store.Get(ctx, 9, "page")
	if gone != nil {
		t.Fatal("session survived delete")
	}
}
