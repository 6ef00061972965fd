package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound when the requested record does not exist
// - Return sentinel.ErrAlreadyUsed when a unique key is taken
// - Return validation errors from Execute callbacks unchanged
// - Return wrapped errors with context for infrastructure failures

// InMemoryResidents maps identities to residences for tests and single-node use.
type InMemoryResidents struct {
	mu         sync.RWMutex
	residences map[id.Identity]id.ResidenceID
}

func NewInMemoryResidents() *InMemoryResidents {
	return &InMemoryResidents{residences: make(map[id.Identity]id.ResidenceID)}
}

func (s *InMemoryResidents) FindResidence(_ context.Context, identity id.Identity) (id.ResidenceID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.residences[identity]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("resident not found: %w", sentinel.ErrNotFound)
}

// Save registers the identity, replacing any previous residence.
func (s *InMemoryResidents) Save(_ context.Context, identity id.Identity, residence id.ResidenceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.residences[identity] = residence
	return nil
}

func (s *InMemoryResidents) Delete(_ context.Context, identity id.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residences[identity]; !ok {
		return fmt.Errorf("resident not found: %w", sentinel.ErrNotFound)
	}
	delete(s.residences, identity)
	return nil
}

// InMemoryRoles holds the manager singleton and the council set.
type InMemoryRoles struct {
	mu         sync.RWMutex
	manager    id.Identity
	counselors map[id.Identity]struct{}
}

// NewInMemoryRoles seeds the store with the initial manager.
func NewInMemoryRoles(manager id.Identity) *InMemoryRoles {
	return &InMemoryRoles{
		manager:    manager,
		counselors: make(map[id.Identity]struct{}),
	}
}

func (s *InMemoryRoles) Manager(_ context.Context) (id.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.manager.IsNil() {
		return "", fmt.Errorf("manager not set: %w", sentinel.ErrNotFound)
	}
	return s.manager, nil
}

func (s *InMemoryRoles) SetManager(_ context.Context, identity id.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manager = identity
	return nil
}

func (s *InMemoryRoles) IsCounselor(_ context.Context, identity id.Identity) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.counselors[identity]
	return ok, nil
}

func (s *InMemoryRoles) SetCounselor(_ context.Context, identity id.Identity, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled {
		s.counselors[identity] = struct{}{}
	} else {
		delete(s.counselors, identity)
	}
	return nil
}

// InMemoryTopics stores topics keyed by name.
type InMemoryTopics struct {
	mu     sync.RWMutex
	topics map[id.TopicName]*models.Topic
}

func NewInMemoryTopics() *InMemoryTopics {
	return &InMemoryTopics{topics: make(map[id.TopicName]*models.Topic)}
}

func (s *InMemoryTopics) CreateIfNameAvailable(_ context.Context, topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.topics[topic.Name]; ok {
		return fmt.Errorf("topic %q: %w", topic.Name, sentinel.ErrAlreadyUsed)
	}
	s.topics[topic.Name] = topic.Clone()
	return nil
}

func (s *InMemoryTopics) FindByName(_ context.Context, name id.TopicName) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[name]
	if !ok {
		return nil, fmt.Errorf("topic %q: %w", name, sentinel.ErrNotFound)
	}
	return topic.Clone(), nil
}

// List returns all topics ordered by creation time, then name.
func (s *InMemoryTopics) List(_ context.Context) ([]*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Topic, 0, len(s.topics))
	for _, topic := range s.topics {
		out = append(out, topic.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Execute validates and mutates a topic under the store lock.
// validate errors are returned unchanged and leave the topic untouched.
func (s *InMemoryTopics) Execute(_ context.Context, name id.TopicName, validate func(*models.Topic) error, mutate func(*models.Topic)) (*models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	topic, ok := s.topics[name]
	if !ok {
		return nil, fmt.Errorf("topic %q: %w", name, sentinel.ErrNotFound)
	}
	if err := validate(topic); err != nil {
		return nil, err
	}
	mutate(topic)
	return topic.Clone(), nil
}

// DeleteIf removes the topic when validate accepts it.
func (s *InMemoryTopics) DeleteIf(_ context.Context, name id.TopicName, validate func(*models.Topic) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	topic, ok := s.topics[name]
	if !ok {
		return fmt.Errorf("topic %q: %w", name, sentinel.ErrNotFound)
	}
	if err := validate(topic); err != nil {
		return err
	}
	delete(s.topics, name)
	return nil
}
