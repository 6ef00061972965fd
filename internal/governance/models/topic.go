package models

import (
	"sort"
	"time"

	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
)

// TopicStatus is the lifecycle state of a topic.
type TopicStatus uint8

const (
	TopicStatusIdle TopicStatus = iota
	TopicStatusVoting
	TopicStatusApproved
	TopicStatusDenied
)

var topicStatusNames = map[TopicStatus]string{
	TopicStatusIdle:     "IDLE",
	TopicStatusVoting:   "VOTING",
	TopicStatusApproved: "APPROVED",
	TopicStatusDenied:   "DENIED",
}

func (s TopicStatus) String() string {
	if name, ok := topicStatusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s TopicStatus) IsTerminal() bool {
	return s == TopicStatusApproved || s == TopicStatusDenied
}

// CanTransitionTo enforces the forward-only lifecycle IDLE -> VOTING -> {APPROVED, DENIED}.
func (s TopicStatus) CanTransitionTo(next TopicStatus) bool {
	switch s {
	case TopicStatusIdle:
		return next == TopicStatusVoting
	case TopicStatusVoting:
		return next == TopicStatusApproved || next == TopicStatusDenied
	default:
		return false
	}
}

// Choice is a ballot option. ChoiceEmpty marks the absence of a vote and is never
// a valid submission.
type Choice uint8

const (
	ChoiceEmpty Choice = iota
	ChoiceYes
	ChoiceNo
	ChoiceAbstention
)

var choiceNames = map[Choice]string{
	ChoiceEmpty:      "EMPTY",
	ChoiceYes:        "YES",
	ChoiceNo:         "NO",
	ChoiceAbstention: "ABSTENTION",
}

func (c Choice) String() string {
	if name, ok := choiceNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsBallot reports whether the choice may be submitted.
func (c Choice) IsBallot() bool {
	return c == ChoiceYes || c == ChoiceNo || c == ChoiceAbstention
}

// Tally holds per-choice counters of a topic.
type Tally struct {
	Yes        int `json:"yes"`
	No         int `json:"no"`
	Abstention int `json:"abstention"`
}

// Total is the number of ballots cast.
func (t Tally) Total() int {
	return t.Yes + t.No + t.Abstention
}

// Decide applies the closing rule: APPROVED iff YES strictly exceeds NO.
// Ties, abstention-only and empty tallies are DENIED.
func (t Tally) Decide() TopicStatus {
	if t.Yes > t.No {
		return TopicStatusApproved
	}
	return TopicStatusDenied
}

func (t *Tally) add(c Choice) {
	switch c {
	case ChoiceYes:
		t.Yes++
	case ChoiceNo:
		t.No++
	case ChoiceAbstention:
		t.Abstention++
	}
}

// Topic is the aggregate root for a governance proposal.
//
// Invariants:
//   - Name is unique while the topic exists
//   - Status moves forward only: IDLE -> VOTING -> APPROVED | DENIED
//   - Voters holds each residence at most once; Tally.Total() == len(Voters)
//   - Only IDLE topics can be removed
type Topic struct {
	Name        id.TopicName
	Description string
	Status      TopicStatus
	CreatedBy   id.Identity
	CreatedAt   time.Time
	StartedAt   *time.Time
	EndedAt     *time.Time
	Tally       Tally
	Voters      map[id.ResidenceID]struct{}
}

// NewTopic creates an IDLE topic with an empty tally.
func NewTopic(name id.TopicName, description string, createdBy id.Identity, now time.Time) (*Topic, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "topic name cannot be empty")
	}
	return &Topic{
		Name:        name,
		Description: description,
		Status:      TopicStatusIdle,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		Voters:      make(map[id.ResidenceID]struct{}),
	}, nil
}

// CanRemove checks that the topic has not entered the voting lifecycle.
func (t *Topic) CanRemove() error {
	if t.Status != TopicStatusIdle {
		return dErrors.New(dErrors.CodeInvalidState, "only IDLE topics can be removed")
	}
	return nil
}

// CanOpenVoting checks the IDLE -> VOTING transition.
func (t *Topic) CanOpenVoting() error {
	if !t.Status.CanTransitionTo(TopicStatusVoting) {
		return dErrors.New(dErrors.CodeInvalidState, "only IDLE topics can be opened for voting")
	}
	return nil
}

// ApplyOpenVoting moves the topic to VOTING. Call CanOpenVoting first.
func (t *Topic) ApplyOpenVoting(now time.Time) {
	t.Status = TopicStatusVoting
	t.StartedAt = &now
}

// CanCloseVoting checks that the topic is currently VOTING.
func (t *Topic) CanCloseVoting() error {
	if t.Status != TopicStatusVoting {
		return dErrors.New(dErrors.CodeInvalidState, "only VOTING topics can be closed")
	}
	return nil
}

// ApplyCloseVoting decides the topic from its tally. Call CanCloseVoting first.
func (t *Topic) ApplyCloseVoting(now time.Time) {
	t.Status = t.Tally.Decide()
	t.EndedAt = &now
}

// CanVote checks every ballot precondition for a residence.
func (t *Topic) CanVote(residence id.ResidenceID, choice Choice) error {
	if t.Status != TopicStatusVoting {
		return dErrors.New(dErrors.CodeInvalidState, "only VOTING topics can be voted")
	}
	if choice == ChoiceEmpty {
		return dErrors.New(dErrors.CodeInvalidChoice, "the option cannot be EMPTY")
	}
	if !choice.IsBallot() {
		return dErrors.New(dErrors.CodeInvalidChoice, "the option must be one of YES, NO, ABSTENTION")
	}
	if t.HasVoted(residence) {
		return dErrors.New(dErrors.CodeAlreadyVoted, "a residence should vote only once")
	}
	return nil
}

// ApplyVote records the ballot. Call CanVote first.
func (t *Topic) ApplyVote(residence id.ResidenceID, choice Choice) {
	if t.Voters == nil {
		t.Voters = make(map[id.ResidenceID]struct{})
	}
	t.Voters[residence] = struct{}{}
	t.Tally.add(choice)
}

// HasVoted reports whether the residence already cast a ballot.
func (t *Topic) HasVoted(residence id.ResidenceID) bool {
	_, ok := t.Voters[residence]
	return ok
}

// VotedResidences returns the voter set in ascending order.
func (t *Topic) VotedResidences() []id.ResidenceID {
	out := make([]id.ResidenceID, 0, len(t.Voters))
	for r := range t.Voters {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy safe to hand out of a store.
func (t *Topic) Clone() *Topic {
	if t == nil {
		return nil
	}
	c := *t
	if t.StartedAt != nil {
		started := *t.StartedAt
		c.StartedAt = &started
	}
	if t.EndedAt != nil {
		ended := *t.EndedAt
		c.EndedAt = &ended
	}
	c.Voters = make(map[id.ResidenceID]struct{}, len(t.Voters))
	for r := range t.Voters {
		c.Voters[r] = struct{}{}
	}
	return &c
}
