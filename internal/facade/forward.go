package facade

import (
	"context"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
)

// Forwarded operations return the implementation's errors unmodified.

func (f *Facade) ResidenceExists(ctx context.Context, residence id.ResidenceID) (bool, error) {
	impl, err := f.current(ctx, "residence_exists")
	if err != nil {
		return false, err
	}
	return impl.ResidenceExists(ctx, residence)
}

func (f *Facade) IsResident(ctx context.Context, identity id.Identity) (bool, error) {
	impl, err := f.current(ctx, "is_resident")
	if err != nil {
		return false, err
	}
	return impl.IsResident(ctx, identity)
}

func (f *Facade) ResidenceOf(ctx context.Context, identity id.Identity) (id.ResidenceID, error) {
	impl, err := f.current(ctx, "residence_of")
	if err != nil {
		return 0, err
	}
	return impl.ResidenceOf(ctx, identity)
}

func (f *Facade) AddResident(ctx context.Context, identity id.Identity, residence id.ResidenceID) error {
	impl, err := f.current(ctx, "add_resident")
	if err != nil {
		return err
	}
	return impl.AddResident(ctx, identity, residence)
}

func (f *Facade) RemoveResident(ctx context.Context, identity id.Identity) error {
	impl, err := f.current(ctx, "remove_resident")
	if err != nil {
		return err
	}
	return impl.RemoveResident(ctx, identity)
}

func (f *Facade) SetCounselor(ctx context.Context, identity id.Identity, enabled bool) error {
	impl, err := f.current(ctx, "set_counselor")
	if err != nil {
		return err
	}
	return impl.SetCounselor(ctx, identity, enabled)
}

func (f *Facade) IsCounselor(ctx context.Context, identity id.Identity) (bool, error) {
	impl, err := f.current(ctx, "is_counselor")
	if err != nil {
		return false, err
	}
	return impl.IsCounselor(ctx, identity)
}

func (f *Facade) SetManager(ctx context.Context, identity id.Identity) error {
	impl, err := f.current(ctx, "set_manager")
	if err != nil {
		return err
	}
	return impl.SetManager(ctx, identity)
}

func (f *Facade) Manager(ctx context.Context) (id.Identity, error) {
	impl, err := f.current(ctx, "manager")
	if err != nil {
		return "", err
	}
	return impl.Manager(ctx)
}

func (f *Facade) AddTopic(ctx context.Context, name id.TopicName, description string) error {
	impl, err := f.current(ctx, "add_topic")
	if err != nil {
		return err
	}
	return impl.AddTopic(ctx, name, description)
}

func (f *Facade) RemoveTopic(ctx context.Context, name id.TopicName) error {
	impl, err := f.current(ctx, "remove_topic")
	if err != nil {
		return err
	}
	return impl.RemoveTopic(ctx, name)
}

func (f *Facade) OpenVoting(ctx context.Context, name id.TopicName) error {
	impl, err := f.current(ctx, "open_voting")
	if err != nil {
		return err
	}
	return impl.OpenVoting(ctx, name)
}

func (f *Facade) CloseVoting(ctx context.Context, name id.TopicName) error {
	impl, err := f.current(ctx, "close_voting")
	if err != nil {
		return err
	}
	return impl.CloseVoting(ctx, name)
}

func (f *Facade) TopicExists(ctx context.Context, name id.TopicName) (bool, error) {
	impl, err := f.current(ctx, "topic_exists")
	if err != nil {
		return false, err
	}
	return impl.TopicExists(ctx, name)
}

func (f *Facade) GetTopic(ctx context.Context, name id.TopicName) (*models.Topic, error) {
	impl, err := f.current(ctx, "get_topic")
	if err != nil {
		return nil, err
	}
	return impl.GetTopic(ctx, name)
}

func (f *Facade) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	impl, err := f.current(ctx, "list_topics")
	if err != nil {
		return nil, err
	}
	return impl.ListTopics(ctx)
}

func (f *Facade) Vote(ctx context.Context, name id.TopicName, choice models.Choice) error {
	impl, err := f.current(ctx, "vote")
	if err != nil {
		return err
	}
	return impl.Vote(ctx, name, choice)
}

func (f *Facade) VotesCounter(ctx context.Context, name id.TopicName) (int, error) {
	impl, err := f.current(ctx, "votes_counter")
	if err != nil {
		return 0, err
	}
	return impl.VotesCounter(ctx, name)
}
