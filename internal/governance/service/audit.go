package service

import (
	"context"

	"github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

func (e *Engine) logAudit(ctx context.Context, event audit.AuditEvent, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if caller := requestcontext.Caller(ctx); !caller.IsNil() {
		attributes = append(attributes, "caller", caller.String())
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if e.logger != nil {
		e.logger.InfoContext(ctx, string(event), args...)
	}
}

// emit hands the event to the audit publisher. Publishing failures are logged
// and never fail the governance operation.
func (e *Engine) emit(ctx context.Context, event audit.Event) {
	if e.auditPublisher == nil {
		return
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := e.auditPublisher.Emit(ctx, event); err != nil && e.logger != nil {
		e.logger.WarnContext(ctx, "failed to publish audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

// record logs and publishes a successful mutation.
func (e *Engine) record(ctx context.Context, event audit.AuditEvent, base audit.Event, attributes ...any) {
	e.logAudit(ctx, event, attributes...)
	base.Action = string(event)
	base.ActorID = requestcontext.Caller(ctx).String()
	e.emit(ctx, base)
}
