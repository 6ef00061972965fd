// Package ports defines the contract shared by the governance engine and the
// upgrade facade. Every operation reads the caller from the request context
// (requestcontext.Caller), so forwarding the context preserves the caller.
package ports

import (
	"context"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
)

//go:generate mockgen -source=governance.go -destination=mocks/mocks.go -package=mocks Governance

// Governance is the full call surface of a governance implementation.
type Governance interface {
	// Residence registry
	ResidenceExists(ctx context.Context, residence id.ResidenceID) (bool, error)
	IsResident(ctx context.Context, identity id.Identity) (bool, error)
	ResidenceOf(ctx context.Context, identity id.Identity) (id.ResidenceID, error)
	AddResident(ctx context.Context, identity id.Identity, residence id.ResidenceID) error
	RemoveResident(ctx context.Context, identity id.Identity) error

	// Roles
	SetCounselor(ctx context.Context, identity id.Identity, enabled bool) error
	IsCounselor(ctx context.Context, identity id.Identity) (bool, error)
	SetManager(ctx context.Context, identity id.Identity) error
	Manager(ctx context.Context) (id.Identity, error)

	// Topic lifecycle
	AddTopic(ctx context.Context, name id.TopicName, description string) error
	RemoveTopic(ctx context.Context, name id.TopicName) error
	OpenVoting(ctx context.Context, name id.TopicName) error
	CloseVoting(ctx context.Context, name id.TopicName) error
	TopicExists(ctx context.Context, name id.TopicName) (bool, error)
	GetTopic(ctx context.Context, name id.TopicName) (*models.Topic, error)
	ListTopics(ctx context.Context) ([]*models.Topic, error)

	// Voting
	Vote(ctx context.Context, name id.TopicName, choice models.Choice) error
	VotesCounter(ctx context.Context, name id.TopicName) (int, error)
}
