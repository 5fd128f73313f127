package pacer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		kind    string
		delay   time.Duration
		want    string
		wantErr bool
	}{
		{"", time.Second, "*pacer.Fixed", false},
		{KindFixed, time.Second, "*pacer.Fixed", false},
		{KindTokenBucket, time.Second, "*pacer.TokenBucket", false},
		{KindFixed, 0, "pacer.Noop", false},
		{"bogus", time.Second, "", true},
	}

	for _, tt := range tests {
		p, err := New(tt.kind, tt.delay)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%q, %v) error = %v, wantErr %v", tt.kind, tt.delay, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			continue
		}
		if got := typeName(p); got != tt.want {
			t.Errorf("New(%q, %v) = %s, want %s", tt.kind, tt.delay, got, tt.want)
		}
	}
}

func typeName(p Pacer) string {
	switch p.(type) {
	case *Fixed:
		return "*pacer.Fixed"
	case *TokenBucket:
		return "*pacer.TokenBucket"
	case Noop:
		return "pacer.Noop"
	default:
		return "?"
	}
}

func TestFixedWaits(t *testing.T) {
	p := NewFixed(30 * time.Millisecond)
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Wait() returned after %v", elapsed)
	}
}

func TestFixedCancelled(t *testing.T) {
	p := NewFixed(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestTokenBucketWaits(t *testing.T) {
	p := NewTokenBucket(40 * time.Millisecond)
	start := time.Now()
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("first Wait() returned after %v, want paced", elapsed)
	}
}

func TestTokenBucketCancelled(t *testing.T) {
	p := NewTokenBucket(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := p.Wait(ctx); err == nil {
		t.Error("Wait() on cancelled context returned nil")
	}
}

func TestNoop(t *testing.T) {
	if err := (Noop{}).Wait(context.Background()); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}
