package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/labelforge/api/internal/model"
)

func TestMemoryJobStore_RoundTrip(t *testing.T) {
	store := NewMemoryJobStore()
	ctx := context.Background()

	job := &model.PrintJob{
		ID:        "job-1",
		Text:      "hello",
		Status:    model.JobStatusSubmitted,
		CreatedAt: time.Now(),
	}
	if err := store.Save(ctx, job); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "hello" || got.Status != model.JobStatusSubmitted {
		t.Errorf("unexpected record: %+v", got)
	}

	// Mutating the returned copy must not affect the store.
	got.Status = model.JobStatusFailed
	again, err := store.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Status != model.JobStatusSubmitted {
		t.Error("store record mutated through a returned copy")
	}
}

func TestMemoryJobStore_NotFound(t *testing.T) {
	store := NewMemoryJobStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}
