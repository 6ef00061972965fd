//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	audit "github.com/pewpola/dao-condominium/pkg/platform/audit"
	auditpostgres "github.com/pewpola/dao-condominium/pkg/platform/audit/store/postgres"
	"github.com/pewpola/dao-condominium/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditpostgres.Store
}

func TestAuditStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(auditpostgres.Migrate(context.Background(), s.postgres.DB))
	s.store = auditpostgres.New(s.postgres.DB)
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_events"))
}

func (s *AuditStoreSuite) TestAppendIsIdempotentOnID() {
	ctx := context.Background()
	event := audit.Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		Action:    string(audit.EventVoteCast),
		ActorID:   "alice",
		Subject:   "topic",
		Residence: 1202,
		Decision:  "YES",
	}
	s.Require().NoError(s.store.Append(ctx, event))
	s.Require().NoError(s.store.Append(ctx, event))

	events, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(event.ID, events[0].ID)
	s.Equal(audit.CategoryGovernance, events[0].Category)
	s.Equal(1202, events[0].Residence)
}

func (s *AuditStoreSuite) TestListByActorAndRecent() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, actor := range []string{"manager", "alice", "manager"} {
		s.Require().NoError(s.store.Append(ctx, audit.Event{
			ID:        uuid.NewString(),
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Action:    string(audit.EventTopicAdded),
			ActorID:   actor,
		}))
	}

	byManager, err := s.store.ListByActor(ctx, "manager")
	s.Require().NoError(err)
	s.Len(byManager, 2)

	recent, err := s.store.ListRecent(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal("manager", recent[0].ActorID)
}
