package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	govmetrics "github.com/pewpola/dao-condominium/internal/governance/metrics"
	"github.com/pewpola/dao-condominium/internal/governance/models"
	"github.com/pewpola/dao-condominium/internal/governance/ports"
	"github.com/pewpola/dao-condominium/internal/governance/store"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
)

const tracerName = "github.com/pewpola/dao-condominium/governance"

type ResidentStore interface {
	FindResidence(ctx context.Context, identity id.Identity) (id.ResidenceID, error)
	Save(ctx context.Context, identity id.Identity, residence id.ResidenceID) error
	Delete(ctx context.Context, identity id.Identity) error
}

type RoleStore interface {
	Manager(ctx context.Context) (id.Identity, error)
	SetManager(ctx context.Context, identity id.Identity) error
	IsCounselor(ctx context.Context, identity id.Identity) (bool, error)
	SetCounselor(ctx context.Context, identity id.Identity, enabled bool) error
}

type TopicStore interface {
	CreateIfNameAvailable(ctx context.Context, topic *models.Topic) error
	FindByName(ctx context.Context, name id.TopicName) (*models.Topic, error)
	List(ctx context.Context) ([]*models.Topic, error)
	Execute(ctx context.Context, name id.TopicName, validate func(*models.Topic) error, mutate func(*models.Topic)) (*models.Topic, error)
	DeleteIf(ctx context.Context, name id.TopicName, validate func(*models.Topic) error) error
}

// StoreTx runs fn so that no other governance mutation interleaves with it.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Stores groups the persistence the engine owns.
type Stores struct {
	Residents ResidentStore
	Roles     RoleStore
	Topics    TopicStore
}

// Engine is the backing governance implementation. It owns one community:
// its layout, registry, roles and topics.
type Engine struct {
	layout    models.Layout
	residents ResidentStore
	roles     RoleStore
	topics    TopicStore
	tx        StoreTx

	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *govmetrics.Metrics
	tracer         trace.Tracer
}

var _ ports.Governance = (*Engine)(nil)

type Option func(e *Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(e *Engine) {
		e.auditPublisher = publisher
	}
}

func WithMetrics(m *govmetrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithTx replaces the default in-process mutex, e.g. with store.NewPostgresTx.
func WithTx(tx StoreTx) Option {
	return func(e *Engine) {
		if tx != nil {
			e.tx = tx
		}
	}
}

// New constructs an Engine over the given stores.
func New(layout models.Layout, stores Stores, opts ...Option) (*Engine, error) {
	if stores.Residents == nil || stores.Roles == nil || stores.Topics == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "governance engine requires resident, role and topic stores")
	}
	if layout.Size() == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "governance engine requires a non-empty layout")
	}
	e := &Engine{
		layout:    layout,
		residents: stores.Residents,
		roles:     stores.Roles,
		topics:    stores.Topics,
		tx:        store.NewInMemoryTx(),
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewInMemory builds an Engine on in-memory stores with manager as the initial manager.
func NewInMemory(layout models.Layout, manager id.Identity, opts ...Option) (*Engine, error) {
	if manager.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
	}
	return New(layout, Stores{
		Residents: store.NewInMemoryResidents(),
		Roles:     store.NewInMemoryRoles(manager),
		Topics:    store.NewInMemoryTopics(),
	}, opts...)
}

// Layout returns the community layout fixed at construction.
func (e *Engine) Layout() models.Layout {
	return e.layout
}
