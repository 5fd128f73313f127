package translator

import (
	"errors"
	"io"
)

// Pool holds one generator per configured account. Batches are spread
// across accounts by their index, so the pool itself keeps no cursor.
type Pool struct {
	gens []Generator
}

func NewPool(gens ...Generator) (*Pool, error) {
	var kept []Generator
	for _, g := range gens {
		if g != nil {
			kept = append(kept, g)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoClients
	}
	return &Pool{gens: kept}, nil
}

// Pick returns the generator serving batchIndex.
func (p *Pool) Pick(batchIndex int) Generator {
	return p.gens[p.Slot(batchIndex)]
}

// Slot is the position in the pool that serves batchIndex.
func (p *Pool) Slot(batchIndex int) int {
	i := batchIndex % len(p.gens)
	if i < 0 {
		i += len(p.gens)
	}
	return i
}

func (p *Pool) Len() int {
	return len(p.gens)
}

// All returns the generators in rotation order.
func (p *Pool) All() []Generator {
	out := make([]Generator, len(p.gens))
	copy(out, p.gens)
	return out
}

// Close releases generators that hold open clients.
func (p *Pool) Close() error {
	var errs []error
	for _, g := range p.gens {
		if c, ok := g.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
