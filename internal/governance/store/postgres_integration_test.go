//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	"github.com/pewpola/dao-condominium/internal/governance/store"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	"github.com/pewpola/dao-condominium/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	residents *store.PostgresResidents
	roles     *store.PostgresRoles
	topics    *store.PostgresTopics
	tx        *store.PostgresTx
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(store.Migrate(context.Background(), s.postgres.DB))
	s.residents = store.NewPostgresResidents(s.postgres.DB)
	s.roles = store.NewPostgresRoles(s.postgres.DB)
	s.topics = store.NewPostgresTopics(s.postgres.DB)
	s.tx = store.NewPostgresTx(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(),
		"topic_voters", "topics", "counselors", "residents", "governance_manager")
	s.Require().NoError(err)
}

func newPersistedTopic(name string) *models.Topic {
	topic, _ := models.NewTopic(id.TopicName(name), "description", "manager", time.Now().UTC().Truncate(time.Microsecond))
	return topic
}

func (s *PostgresStoreSuite) TestManagerSeedKeepsExisting() {
	ctx := context.Background()
	s.Require().NoError(s.roles.EnsureManager(ctx, "first"))
	s.Require().NoError(s.roles.EnsureManager(ctx, "second"))

	m, err := s.roles.Manager(ctx)
	s.Require().NoError(err)
	s.Equal(id.Identity("first"), m)

	s.Require().NoError(s.roles.SetManager(ctx, "third"))
	m, err = s.roles.Manager(ctx)
	s.Require().NoError(err)
	s.Equal(id.Identity("third"), m)
}

func (s *PostgresStoreSuite) TestResidentsRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.residents.Save(ctx, "alice", 1202))
	s.Require().NoError(s.residents.Save(ctx, "alice", 1301))

	r, err := s.residents.FindResidence(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(id.ResidenceID(1301), r)

	s.Require().NoError(s.residents.Delete(ctx, "alice"))
	_, err = s.residents.FindResidence(ctx, "alice")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.residents.Delete(ctx, "alice"), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestTopicLifecyclePersists() {
	ctx := context.Background()
	s.Require().NoError(s.topics.CreateIfNameAvailable(ctx, newPersistedTopic("topic")))
	s.ErrorIs(s.topics.CreateIfNameAvailable(ctx, newPersistedTopic("topic")), sentinel.ErrAlreadyUsed)

	_, err := s.topics.Execute(ctx, "topic",
		func(t *models.Topic) error { return t.CanOpenVoting() },
		func(t *models.Topic) { t.ApplyOpenVoting(time.Now()) },
	)
	s.Require().NoError(err)

	for _, r := range []id.ResidenceID{1202, 1301, 2102} {
		residence := r
		_, err := s.topics.Execute(ctx, "topic",
			func(t *models.Topic) error { return t.CanVote(residence, models.ChoiceYes) },
			func(t *models.Topic) { t.ApplyVote(residence, models.ChoiceYes) },
		)
		s.Require().NoError(err)
	}

	_, err = s.topics.Execute(ctx, "topic",
		func(t *models.Topic) error { return t.CanVote(1202, models.ChoiceNo) },
		func(t *models.Topic) { t.ApplyVote(1202, models.ChoiceNo) },
	)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyVoted))

	found, err := s.topics.FindByName(ctx, "topic")
	s.Require().NoError(err)
	s.Equal(models.TopicStatusVoting, found.Status)
	s.Equal(3, found.Tally.Yes)
	s.Equal([]id.ResidenceID{1202, 1301, 2102}, found.VotedResidences())
	s.NotNil(found.StartedAt)

	err = s.topics.DeleteIf(ctx, "topic", func(t *models.Topic) error { return t.CanRemove() })
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))

	list, err := s.topics.List(ctx)
	s.Require().NoError(err)
	s.Len(list, 1)
}

// TestConcurrentCreateSameName verifies that concurrent creation attempts with
// the same name result in exactly one success.
func (s *PostgresStoreSuite) TestConcurrentCreateSameName() {
	ctx := context.Background()
	name := "topic-" + uuid.NewString()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.topics.CreateIfNameAvailable(ctx, newPersistedTopic(name))
			if err == nil {
				successCount.Add(1)
			} else if errors.Is(err, sentinel.ErrAlreadyUsed) {
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load())
	s.Equal(int32(goroutines-1), conflictCount.Load())
}

// TestRunInTxRollsBack verifies writes made inside a failed transaction are discarded.
func (s *PostgresStoreSuite) TestRunInTxRollsBack() {
	ctx := context.Background()
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.residents.Save(ctx, "bob", 1202); err != nil {
			return err
		}
		return dErrors.New(dErrors.CodeInvalidState, "abort")
	})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))

	_, err = s.residents.FindResidence(ctx, "bob")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
