//go:build integration

package facade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	"github.com/pewpola/dao-condominium/internal/governance/service"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
	"github.com/pewpola/dao-condominium/pkg/testutil/containers"
)

type RedisPointerSuite struct {
	suite.Suite
	redis *containers.RedisContainer
}

func TestRedisPointerSuite(t *testing.T) {
	suite.Run(t, new(RedisPointerSuite))
}

func (s *RedisPointerSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *RedisPointerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisPointerSuite) TestReplicasSeeTheSameUpgrade() {
	ctx := context.Background()
	first := NewResilientPointer(NewRedisPointer(s.redis.NewClient(s.T())))
	second := NewResilientPointer(NewRedisPointer(s.redis.NewClient(s.T())))

	_, err := second.Load(ctx)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(first.Store(ctx, "condominium-v2"))
	handle, err := second.Load(ctx)
	s.Require().NoError(err)
	s.Equal("condominium-v2", handle)
}

func (s *RedisPointerSuite) TestFacadeUpgradeVisibleToOtherReplica() {
	ctx := context.Background()
	t := s.T()

	newReplica := func() *Facade {
		registry := NewRegistry()
		for _, handle := range []string{"condominium-v1", "condominium-v2"} {
			engine, err := service.NewInMemory(models.DefaultLayout(), authority)
			require.NoError(t, err)
			require.NoError(t, registry.Register(handle, engine))
		}
		f, err := New(authority, NewRedisPointer(s.redis.NewClient(t)), registry)
		require.NoError(t, err)
		return f
	}
	a, b := newReplica(), newReplica()

	require.NoError(t, a.Upgrade(requestcontext.WithCaller(ctx, authority), "condominium-v2"))
	handle, err := b.ImplementationAddress(ctx)
	require.NoError(t, err)
	assert.Equal(t, "condominium-v2", handle)
}
