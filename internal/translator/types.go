package translator

import (
	"context"
	"errors"
	"time"

	"github.com/valpere/dialectran/internal/numbered"
)

var (
	// ErrNoClients is returned when a pool is built without generators.
	ErrNoClients = errors.New("no translation clients configured")
	// ErrEmptyResponse is returned when the remote service answers without
	// any text.
	ErrEmptyResponse = errors.New("empty response from API")
)

type Result struct {
	ServiceName string            `json:"service_name"`
	Text        string            `json:"text"`
	Metadata    map[string]string `json:"metadata"`
	Latency     time.Duration     `json:"latency"`
	Error       string            `json:"error,omitempty"`
}

// Generator sends one numbered prompt to a remote service and returns the
// raw numbered reply. Implementations must honour ctx cancellation.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt numbered.Prompt) (*Result, error)
	IsAvailable(ctx context.Context) error
}
