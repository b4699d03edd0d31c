package kvstore

import (
	"context"
	"errors"
	"testing"
)

var _ Store = (*MemoryStore)(nil)
var _ Store = (*GormStore)(nil)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SetMany(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "b"); !ok || v != "2" {
		t.Errorf("expected 2, got %q", v)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("expected a to be deleted")
	}
	if s.Writes() != 2 {
		t.Errorf("expected 2 writes, got %d", s.Writes())
	}
}

func TestMemoryStoreFailWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("boom")

	s.FailWrites(2, boom)
	for i := 0; i < 2; i++ {
		if err := s.Set(ctx, "k", "v"); !errors.Is(err, boom) {
			t.Fatalf("write %d: expected boom, got %v", i, err)
		}
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("expected third write to succeed, got %v", err)
	}
	if got := s.Snapshot()["k"]; got != "v" {
		t.Errorf("expected v, got %q", got)
	}
}

func TestMemoryStoreFailReadsAndContext(t *testing.T) {
	s := NewMemoryStore()
	boom := errors.New("io")
	s.FailReads(boom)
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, boom) {
		t.Errorf("expected read failure, got %v", err)
	}
	s.FailReads(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
