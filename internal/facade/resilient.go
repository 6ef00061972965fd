package facade

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/pewpola/dao-condominium/pkg/platform/circuit"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
)

// DegradedObserver is told when the shared pointer store becomes unhealthy
// or recovers.
type DegradedObserver interface {
	SetPointerDegraded(degraded bool)
}

// ResilientPointer fronts a shared PointerStore with the last handle this
// replica read or wrote. Once the breaker opens, failed loads are answered
// from that handle so forwarding keeps working through a store outage.
// Stores are never faked: an upgrade that cannot reach the shared store fails.
type ResilientPointer struct {
	primary  PointerStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
	observer DegradedObserver

	mu        sync.RWMutex
	lastKnown string
}

type ResilientOption func(*ResilientPointer)

func WithBreaker(b *circuit.Breaker) ResilientOption {
	return func(p *ResilientPointer) {
		if b != nil {
			p.breaker = b
		}
	}
}

func WithResilientLogger(logger *slog.Logger) ResilientOption {
	return func(p *ResilientPointer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithDegradedObserver(o DegradedObserver) ResilientOption {
	return func(p *ResilientPointer) {
		p.observer = o
	}
}

func NewResilientPointer(primary PointerStore, opts ...ResilientOption) *ResilientPointer {
	p := &ResilientPointer{
		primary: primary,
		breaker: circuit.New("facade-pointer"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ResilientPointer) Load(ctx context.Context) (string, error) {
	handle, err := p.primary.Load(ctx)
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		p.success(ctx)
		if err == nil {
			p.remember(handle)
		}
		return handle, err
	}

	useFallback := p.failure(ctx, err)
	if !useFallback {
		return "", err
	}
	p.mu.RLock()
	fallback := p.lastKnown
	p.mu.RUnlock()
	if fallback == "" {
		return "", err
	}
	return fallback, nil
}

func (p *ResilientPointer) Store(ctx context.Context, handle string) error {
	if err := p.primary.Store(ctx, handle); err != nil {
		p.failure(ctx, err)
		return err
	}
	p.success(ctx)
	p.remember(handle)
	return nil
}

func (p *ResilientPointer) remember(handle string) {
	p.mu.Lock()
	p.lastKnown = handle
	p.mu.Unlock()
}

func (p *ResilientPointer) success(ctx context.Context) {
	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "implementation pointer store recovered", "breaker", p.breaker.Name())
		p.notify(false)
	}
}

func (p *ResilientPointer) failure(ctx context.Context, err error) bool {
	useFallback, change := p.breaker.RecordFailure()
	if change.Opened {
		p.logger.WarnContext(ctx, "implementation pointer store unavailable, serving last known handle",
			"breaker", p.breaker.Name(),
			"error", err,
		)
		p.notify(true)
	}
	return useFallback
}

func (p *ResilientPointer) notify(degraded bool) {
	if p.observer != nil {
		p.observer.SetPointerDegraded(degraded)
	}
}
