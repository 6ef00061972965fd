package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pewpola/dao-condominium/internal/governance/access"
	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

// AddTopic creates an IDLE topic. Allowed for the manager and any resident.
func (e *Engine) AddTopic(ctx context.Context, name id.TopicName, description string) (err error) {
	ctx, done := e.observe(ctx, "add_topic", attribute.String("governance.topic", string(name)))
	defer done(&err)

	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		roles, err := e.authorize(txCtx, "add_topic", access.ManagerOrResident)
		if err != nil {
			return err
		}
		topic, err := models.NewTopic(name, description, roles.Caller, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		return wrapTopicErr(e.topics.CreateIfNameAvailable(txCtx, topic))
	})
	if err != nil {
		return err
	}

	if e.metrics != nil {
		e.metrics.IncrementTopicCreated()
	}
	e.record(ctx, audit.EventTopicAdded,
		audit.Event{Subject: string(name)},
		"topic", string(name),
	)
	return nil
}

// RemoveTopic deletes an IDLE topic. Manager only; the name becomes reusable.
func (e *Engine) RemoveTopic(ctx context.Context, name id.TopicName) (err error) {
	ctx, done := e.observe(ctx, "remove_topic", attribute.String("governance.topic", string(name)))
	defer done(&err)

	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.authorize(txCtx, "remove_topic", access.ManagerOnly); err != nil {
			return err
		}
		return wrapTopicErr(e.topics.DeleteIf(txCtx, name, func(t *models.Topic) error {
			return t.CanRemove()
		}))
	})
	if err != nil {
		return err
	}

	if e.metrics != nil {
		e.metrics.IncrementTopicRemoved()
	}
	e.record(ctx, audit.EventTopicRemoved,
		audit.Event{Subject: string(name)},
		"topic", string(name),
	)
	return nil
}

// OpenVoting moves a topic from IDLE to VOTING. Manager only.
//
// Uses the Execute callback pattern for atomic validate-then-mutate.
func (e *Engine) OpenVoting(ctx context.Context, name id.TopicName) (err error) {
	ctx, done := e.observe(ctx, "open_voting", attribute.String("governance.topic", string(name)))
	defer done(&err)

	now := requestcontext.Now(ctx)
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.authorize(txCtx, "open_voting", access.ManagerOnly); err != nil {
			return err
		}
		_, err := e.topics.Execute(txCtx, name,
			func(t *models.Topic) error { return t.CanOpenVoting() },
			func(t *models.Topic) { t.ApplyOpenVoting(now) },
		)
		return wrapTopicErr(err)
	})
	if err != nil {
		return err
	}

	e.record(ctx, audit.EventVotingOpened,
		audit.Event{Subject: string(name)},
		"topic", string(name),
	)
	return nil
}

// CloseVoting decides a VOTING topic: APPROVED iff YES > NO, otherwise DENIED.
// Manager only.
func (e *Engine) CloseVoting(ctx context.Context, name id.TopicName) (err error) {
	ctx, done := e.observe(ctx, "close_voting", attribute.String("governance.topic", string(name)))
	defer done(&err)

	now := requestcontext.Now(ctx)
	var closed *models.Topic
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.authorize(txCtx, "close_voting", access.ManagerOnly); err != nil {
			return err
		}
		topic, err := e.topics.Execute(txCtx, name,
			func(t *models.Topic) error { return t.CanCloseVoting() },
			func(t *models.Topic) { t.ApplyCloseVoting(now) },
		)
		if err != nil {
			return wrapTopicErr(err)
		}
		closed = topic
		return nil
	})
	if err != nil {
		return err
	}

	outcome := closed.Status.String()
	if e.metrics != nil {
		e.metrics.IncrementDecision(outcome)
	}
	e.record(ctx, audit.EventVotingClosed,
		audit.Event{Subject: string(name), Decision: outcome},
		"topic", string(name),
		"outcome", outcome,
		"yes", closed.Tally.Yes,
		"no", closed.Tally.No,
		"abstention", closed.Tally.Abstention,
	)
	return nil
}

func (e *Engine) TopicExists(ctx context.Context, name id.TopicName) (bool, error) {
	_, err := e.topics.FindByName(ctx, name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return false, wrapTopicErr(err)
}

func (e *Engine) GetTopic(ctx context.Context, name id.TopicName) (*models.Topic, error) {
	topic, err := e.topics.FindByName(ctx, name)
	if err != nil {
		return nil, wrapTopicErr(err)
	}
	return topic, nil
}

func (e *Engine) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	topics, err := e.topics.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list topics")
	}
	return topics, nil
}
