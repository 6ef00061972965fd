package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pewpola/dao-condominium/internal/governance/access"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

// observe starts a span for op and returns a func that ends it, recording
// the outcome and the duration. Use with a named error return:
//
//	ctx, done := e.observe(ctx, "vote")
//	defer done(&err)
func (e *Engine) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	start := time.Now()
	caller := requestcontext.Caller(ctx)
	attrs = append(attrs, attribute.String("governance.caller", caller.String()))
	ctx, span := e.tracer.Start(ctx, "governance."+op, trace.WithAttributes(attrs...))
	return ctx, func(errp *error) {
		if err := *errp; err != nil {
			code := dErrors.CodeOf(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, string(code))
			if e.metrics != nil {
				e.metrics.IncrementRejection(op, string(code))
			}
		}
		span.End()
		if e.metrics != nil {
			e.metrics.ObserveOperation(op, start)
		}
	}
}

// rolesOf snapshots what the engine knows about caller.
func (e *Engine) rolesOf(ctx context.Context, caller id.Identity) (access.Roles, error) {
	roles := access.Roles{Caller: caller}
	manager, err := e.roles.Manager(ctx)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return roles, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load manager")
	}
	roles.Manager = manager
	if caller.IsNil() {
		return roles, nil
	}
	if roles.Counselor, err = e.roles.IsCounselor(ctx, caller); err != nil {
		return roles, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load council membership")
	}
	if roles.Resident, err = e.isResident(ctx, caller); err != nil {
		return roles, err
	}
	return roles, nil
}

// authorize evaluates policy for the caller carried by ctx.
// A denial is logged and audited before it is returned.
func (e *Engine) authorize(ctx context.Context, op string, policy access.Policy) (access.Roles, error) {
	caller := requestcontext.Caller(ctx)
	roles, err := e.rolesOf(ctx, caller)
	if err != nil {
		return roles, err
	}
	if err := policy.Check(roles); err != nil {
		e.logAudit(ctx, audit.EventAccessDenied,
			"operation", op,
			"policy", policy.String(),
		)
		e.emit(ctx, audit.Event{
			Action:   string(audit.EventAccessDenied),
			ActorID:  caller.String(),
			Subject:  op,
			Decision: policy.String(),
		})
		return roles, err
	}
	return roles, nil
}

func (e *Engine) isResident(ctx context.Context, identity id.Identity) (bool, error) {
	if identity.IsNil() {
		return false, nil
	}
	_, err := e.residents.FindResidence(ctx, identity)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
}

// wrapTopicErr translates store sentinels for topic operations.
// Coded errors from validate callbacks pass through unchanged.
func wrapTopicErr(err error) error {
	var de *dErrors.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "the topic does not exist")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeAlreadyExists, "this topic already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "topic store failure")
	}
}
