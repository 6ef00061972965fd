package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing per sink.
type EventCategory string

const (
	// CategoryCompliance covers changes to who may act in the community:
	// residents, council, manager and the active implementation.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected privileged calls.
	CategorySecurity EventCategory = "security"

	// CategoryGovernance covers the topic lifecycle and ballots.
	CategoryGovernance EventCategory = "governance"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string        `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`
	// ActorID is the caller identity that performed the action.
	ActorID string `json:"actor_id,omitempty"`
	// Subject is the identity or topic the action applies to.
	Subject   string `json:"subject,omitempty"`
	Residence int    `json:"residence,omitempty"`
	// Decision carries the outcome: a ballot choice, a closing decision,
	// "enabled"/"disabled" for council changes or a denial reason.
	Decision  string `json:"decision,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type AuditEvent string

const (
	// Registry and role events
	EventResidentAdded   AuditEvent = "resident_added"
	EventResidentRemoved AuditEvent = "resident_removed"
	EventCounselorSet    AuditEvent = "counselor_set"
	EventManagerChanged  AuditEvent = "manager_changed"

	// Topic events
	EventTopicAdded   AuditEvent = "topic_added"
	EventTopicRemoved AuditEvent = "topic_removed"
	EventVotingOpened AuditEvent = "voting_opened"
	EventVoteCast     AuditEvent = "vote_cast"
	EventVotingClosed AuditEvent = "voting_closed"

	// Facade events
	EventImplementationUpgraded AuditEvent = "implementation_upgraded"

	// Access events
	EventAccessDenied AuditEvent = "access_denied"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventResidentAdded:          CategoryCompliance,
	EventResidentRemoved:        CategoryCompliance,
	EventCounselorSet:           CategoryCompliance,
	EventManagerChanged:         CategoryCompliance,
	EventImplementationUpgraded: CategoryCompliance,

	EventAccessDenied: CategorySecurity,

	EventTopicAdded:   CategoryGovernance,
	EventTopicRemoved: CategoryGovernance,
	EventVotingOpened: CategoryGovernance,
	EventVoteCast:     CategoryGovernance,
	EventVotingClosed: CategoryGovernance,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryGovernance.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryGovernance
}

// Store persists audit events. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by stores that can read events back.
type Lister interface {
	ListAll(ctx context.Context) ([]Event, error)
}
