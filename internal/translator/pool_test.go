package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/valpere/dialectran/internal/numbered"
)

type namedGenerator struct {
	name     string
	closed   bool
	closeErr error
}

func (g *namedGenerator) Name() string { return g.name }

func (g *namedGenerator) Generate(ctx context.Context, prompt numbered.Prompt) (*Result, error) {
	return &Result{ServiceName: g.name, Text: prompt.Numbered()}, nil
}

func (g *namedGenerator) IsAvailable(ctx context.Context) error { return nil }

func (g *namedGenerator) Close() error {
	g.closed = true
	return g.closeErr
}

func TestNewPool_Empty(t *testing.T) {
	if _, err := NewPool(); !errors.Is(err, ErrNoClients) {
		t.Errorf("NewPool() error = %v, want ErrNoClients", err)
	}
	if _, err := NewPool(nil, nil); !errors.Is(err, ErrNoClients) {
		t.Errorf("NewPool(nil, nil) error = %v, want ErrNoClients", err)
	}
}

func TestPool_Pick(t *testing.T) {
	a, b, c := &namedGenerator{name: "a"}, &namedGenerator{name: "b"}, &namedGenerator{name: "c"}
	pool, err := NewPool(a, b, c)
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}

	want := []string{"a", "b", "c", "a", "b", "c", "a"}
	for i, name := range want {
		if got := pool.Pick(i).Name(); got != name {
			t.Errorf("Pick(%d) = %s, want %s", i, got, name)
		}
	}
	if got := pool.Pick(-1).Name(); got != "c" {
		t.Errorf("Pick(-1) = %s, want c", got)
	}
	if pool.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pool.Len())
	}
}

func TestPool_SingleClient(t *testing.T) {
	only := &namedGenerator{name: "only"}
	pool, _ := NewPool(only)
	for i := 0; i < 5; i++ {
		if pool.Pick(i) != only {
			t.Fatalf("Pick(%d) did not return the only client", i)
		}
	}
}

func TestPool_AllIsCopy(t *testing.T) {
	pool, _ := NewPool(&namedGenerator{name: "a"}, &namedGenerator{name: "b"})
	all := pool.All()
	all[0] = &namedGenerator{name: "x"}
	if pool.Pick(0).Name() != "a" {
		t.Error("All() exposed the pool's internal slice")
	}
}

func TestPool_Close(t *testing.T) {
	boom := errors.New("boom")
	a := &namedGenerator{name: "a"}
	b := &namedGenerator{name: "b", closeErr: boom}
	pool, _ := NewPool(a, b)

	err := pool.Close()
	if !a.closed || !b.closed {
		t.Error("Close() did not close every generator")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Close() error = %v, want %v", err, boom)
	}
}
