// Package facade is the stable entry point clients talk to. It forwards every
// governance operation to the implementation its pointer currently names, so
// the backing implementation can be swapped without clients changing address.
//
// The request context travels unchanged through the facade, which keeps the
// original caller visible to the implementation's permission checks.
package facade

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	facademetrics "github.com/pewpola/dao-condominium/internal/facade/metrics"
	"github.com/pewpola/dao-condominium/internal/governance/ports"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Facade forwards governance operations to the active implementation.
type Facade struct {
	authority id.Identity
	pointer   PointerStore
	registry  *Registry

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *facademetrics.Metrics
}

var _ ports.Governance = (*Facade)(nil)

type Option func(*Facade)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) {
		f.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(f *Facade) {
		f.auditPublisher = publisher
	}
}

func WithMetrics(m *facademetrics.Metrics) Option {
	return func(f *Facade) {
		f.metrics = m
	}
}

// New builds a facade owned by authority. Only the authority may upgrade it.
func New(authority id.Identity, pointer PointerStore, registry *Registry, opts ...Option) (*Facade, error) {
	if authority.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidAddress, "the facade authority must be valid")
	}
	if pointer == nil || registry == nil {
		return nil, errors.New("facade requires a pointer store and a registry")
	}
	f := &Facade{
		authority: authority,
		pointer:   pointer,
		registry:  registry,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Facade) Authority() id.Identity {
	return f.authority
}

// Upgrade points the facade at the implementation registered under handle.
func (f *Facade) Upgrade(ctx context.Context, handle string) error {
	caller := requestcontext.Caller(ctx)
	if caller != f.authority {
		f.logger.WarnContext(ctx, "facade upgrade denied",
			"request_id", requestcontext.RequestID(ctx),
			"caller", caller.String(),
		)
		return dErrors.New(dErrors.CodeUnauthorized, "you do not have permission")
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return dErrors.New(dErrors.CodeInvalidAddress, "invalid address")
	}
	if _, ok := f.registry.Lookup(handle); !ok {
		return dErrors.New(dErrors.CodeInvalidAddress, "invalid address")
	}

	previous, err := f.pointer.Load(ctx)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load implementation pointer")
	}
	if err := f.pointer.Store(ctx, handle); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store implementation pointer")
	}

	if f.metrics != nil {
		f.metrics.IncrementUpgrade()
	}
	f.logger.InfoContext(ctx, string(audit.EventImplementationUpgraded),
		"request_id", requestcontext.RequestID(ctx),
		"caller", caller.String(),
		"implementation", handle,
		"previous", previous,
		"event", string(audit.EventImplementationUpgraded),
		"log_type", "audit",
	)
	f.emit(ctx, audit.Event{
		Action:  string(audit.EventImplementationUpgraded),
		ActorID: caller.String(),
		Subject: handle,
	})
	return nil
}

// ImplementationAddress returns the handle of the active implementation.
func (f *Facade) ImplementationAddress(ctx context.Context) (string, error) {
	handle, err := f.pointer.Load(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.New(dErrors.CodeNoImplementation, "you must upgrade first")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load implementation pointer")
	}
	return handle, nil
}

// current resolves the implementation a forwarded operation goes to.
func (f *Facade) current(ctx context.Context, op string) (ports.Governance, error) {
	handle, err := f.ImplementationAddress(ctx)
	if err != nil {
		f.forwardFailed(ctx, op, dErrors.CodeOf(err))
		return nil, err
	}
	impl, ok := f.registry.Lookup(handle)
	if !ok {
		// Another replica upgraded to a handle this process never registered.
		f.forwardFailed(ctx, op, dErrors.CodeNoImplementation)
		return nil, dErrors.New(dErrors.CodeNoImplementation, "implementation "+handle+" is not available")
	}
	return impl, nil
}

func (f *Facade) forwardFailed(ctx context.Context, op string, code dErrors.Code) {
	if f.metrics != nil {
		f.metrics.IncrementForwardFailure(op, string(code))
	}
	f.logger.WarnContext(ctx, "facade forward failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", op,
		"code", string(code),
	)
}

func (f *Facade) emit(ctx context.Context, event audit.Event) {
	if f.auditPublisher == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.Timestamp = requestcontext.Now(ctx)
	if err := f.auditPublisher.Emit(ctx, event); err != nil {
		f.logger.WarnContext(ctx, "failed to publish audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
