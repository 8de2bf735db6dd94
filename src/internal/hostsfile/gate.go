package hostsfile

import (
	"context"
	"sync"
)

// Gate is a first-in first-out mutual exclusion lock. Waiters are granted the
// gate strictly in the order they called Acquire.
type Gate struct {
	mu      sync.Mutex
	held    bool
	waiters []chan struct{}
}

// NewGate creates an unheld gate.
func NewGate() *Gate {
	return &Gate{}
}

// Acquire blocks until the gate is granted or ctx is done. A waiter whose
// context ends before the grant leaves the queue and does not hold the gate.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	if !g.held && len(g.waiters) == 0 {
		g.held = true
		g.mu.Unlock()
		return nil
	}
	ticket := make(chan struct{})
	g.waiters = append(g.waiters, ticket)
	g.mu.Unlock()

	select {
	case <-ticket:
		return nil
	case <-ctx.Done():
	}

	g.mu.Lock()
	select {
	case <-ticket:
		// Granted while we were giving up: hand it to the next waiter.
		g.mu.Unlock()
		g.Release()
		return ctx.Err()
	default:
	}
	for i, w := range g.waiters {
		if w == ticket {
			g.waiters = append(g.waiters[:i], g.waiters[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
	return ctx.Err()
}

// Release passes the gate to the oldest waiter, or frees it.
func (g *Gate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.held {
		panic("hostsfile: release of a gate that is not held")
	}
	if len(g.waiters) == 0 {
		g.held = false
		return
	}

	next := g.waiters[0]
	g.waiters = g.waiters[1:]
	close(next)
}

// Waiting returns the number of queued waiters.
func (g *Gate) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}
