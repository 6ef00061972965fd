package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pewpola/dao-condominium/internal/governance/access"
	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
)

// Vote records one ballot for the caller's residence.
//
// The caller must be the manager or a resident, and must occupy a residence:
// the residence, not the identity, is the unit of suffrage.
func (e *Engine) Vote(ctx context.Context, name id.TopicName, choice models.Choice) (err error) {
	ctx, done := e.observe(ctx, "vote",
		attribute.String("governance.topic", string(name)),
		attribute.String("governance.choice", choice.String()),
	)
	defer done(&err)

	var residence id.ResidenceID
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		roles, err := e.authorize(txCtx, "vote", access.ManagerOrResident)
		if err != nil {
			return err
		}
		if !roles.Resident {
			return dErrors.New(dErrors.CodeNotAResident, "only residents can vote")
		}
		residence, err = e.ResidenceOf(txCtx, roles.Caller)
		if err != nil {
			return err
		}
		_, err = e.topics.Execute(txCtx, name,
			func(t *models.Topic) error { return t.CanVote(residence, choice) },
			func(t *models.Topic) { t.ApplyVote(residence, choice) },
		)
		return wrapTopicErr(err)
	})
	if err != nil {
		return err
	}

	if e.metrics != nil {
		e.metrics.IncrementVote(choice.String())
	}
	e.record(ctx, audit.EventVoteCast,
		audit.Event{Subject: string(name), Residence: int(residence), Decision: choice.String()},
		"topic", string(name),
		"residence", int(residence),
		"choice", choice.String(),
	)
	return nil
}

// VotesCounter returns the number of ballots cast on a topic.
func (e *Engine) VotesCounter(ctx context.Context, name id.TopicName) (int, error) {
	topic, err := e.topics.FindByName(ctx, name)
	if err != nil {
		return 0, wrapTopicErr(err)
	}
	return topic.Tally.Total(), nil
}
