package handler

import (
	"time"

	"github.com/pewpola/dao-condominium/internal/governance/models"
)

type ResidenceResponse struct {
	Residence int  `json:"residence"`
	Exists    bool `json:"exists"`
}

type ResidentResponse struct {
	Identity  string `json:"identity"`
	Resident  bool   `json:"resident"`
	Residence int    `json:"residence,omitempty"`
}

type CounselorResponse struct {
	Identity  string `json:"identity"`
	Counselor bool   `json:"counselor"`
}

type ManagerResponse struct {
	Manager string `json:"manager"`
}

type TallyResponse struct {
	Yes        int `json:"yes"`
	No         int `json:"no"`
	Abstention int `json:"abstention"`
}

// TopicResponse renders a topic with its status as a name and its tally.
type TopicResponse struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	EndedAt     *time.Time    `json:"ended_at,omitempty"`
	Tally       TallyResponse `json:"tally"`
	Votes       int           `json:"votes"`
}

type TopicListResponse struct {
	Topics []TopicResponse `json:"topics"`
	Total  int             `json:"total"`
}

type VotesResponse struct {
	Topic string `json:"topic"`
	Votes int    `json:"votes"`
}

// FromTopic converts a domain topic into its response shape.
func FromTopic(t *models.Topic) TopicResponse {
	return TopicResponse{
		Name:        t.Name.String(),
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt,
		StartedAt:   t.StartedAt,
		EndedAt:     t.EndedAt,
		Tally: TallyResponse{
			Yes:        t.Tally.Yes,
			No:         t.Tally.No,
			Abstention: t.Tally.Abstention,
		},
		Votes: t.Tally.Total(),
	}
}

func FromTopics(topics []*models.Topic) TopicListResponse {
	resp := TopicListResponse{Topics: make([]TopicResponse, 0, len(topics)), Total: len(topics)}
	for _, t := range topics {
		resp.Topics = append(resp.Topics, FromTopic(t))
	}
	return resp
}
