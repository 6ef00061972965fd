package handler

import (
	"strings"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
)

const maxDescriptionLength = 4096

// parseBodyIdentity lets an empty or zero address through as the nil identity,
// so the engine rejects it only after the caller's permission check.
func parseBodyIdentity(raw string) (id.Identity, error) {
	if id.Identity(strings.TrimSpace(raw)).IsNil() {
		return "", nil
	}
	return id.ParseIdentity(raw)
}

// AddResidentRequest is the HTTP request body for POST /residents.
type AddResidentRequest struct {
	Identity  string `json:"identity"`
	Residence int    `json:"residence"`

	parsedIdentity id.Identity
}

// Validate implements httputil.Validatable.
func (r *AddResidentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	identity, err := parseBodyIdentity(r.Identity)
	if err != nil {
		return err
	}
	r.parsedIdentity = identity
	return nil
}

func (r *AddResidentRequest) ParsedIdentity() id.Identity { return r.parsedIdentity }

func (r *AddResidentRequest) ParsedResidence() id.ResidenceID { return id.ResidenceID(r.Residence) }

// SetCounselorRequest is the HTTP request body for PUT /counselors/{identity}.
type SetCounselorRequest struct {
	Enabled bool `json:"enabled"`
}

func (r *SetCounselorRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}

// SetManagerRequest is the HTTP request body for PUT /manager.
type SetManagerRequest struct {
	Identity string `json:"identity"`

	parsedIdentity id.Identity
}

func (r *SetManagerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	identity, err := parseBodyIdentity(r.Identity)
	if err != nil {
		return err
	}
	r.parsedIdentity = identity
	return nil
}

func (r *SetManagerRequest) ParsedIdentity() id.Identity { return r.parsedIdentity }

// AddTopicRequest is the HTTP request body for POST /topics.
type AddTopicRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	parsedName id.TopicName
}

func (r *AddTopicRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	// Size validation (fail fast)
	if len(r.Description) > maxDescriptionLength {
		return dErrors.New(dErrors.CodeBadRequest, "description must be 4096 characters or less")
	}
	name, err := id.ParseTopicName(r.Name)
	if err != nil {
		return err
	}
	r.parsedName = name
	r.Description = strings.TrimSpace(r.Description)
	return nil
}

func (r *AddTopicRequest) ParsedName() id.TopicName { return r.parsedName }

// VoteRequest is the HTTP request body for POST /topics/{name}/votes.
// Choice is the numeric option: 0 EMPTY, 1 YES, 2 NO, 3 ABSTENTION.
type VoteRequest struct {
	Choice *int `json:"choice"`
}

func (r *VoteRequest) Validate() error {
	if r == nil || r.Choice == nil {
		return dErrors.New(dErrors.CodeBadRequest, "choice is required")
	}
	if *r.Choice < 0 || *r.Choice > int(models.ChoiceAbstention) {
		return dErrors.New(dErrors.CodeInvalidChoice, "the option must be one of EMPTY, YES, NO, ABSTENTION")
	}
	return nil
}

// ParsedChoice is only meaningful after Validate succeeded. EMPTY is passed
// through so the engine can reject it with its own message.
func (r *VoteRequest) ParsedChoice() models.Choice { return models.Choice(*r.Choice) }
