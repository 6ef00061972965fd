// Package handler exposes governance operations over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pewpola/dao-condominium/internal/governance/ports"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/httputil"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

// Handler wires governance endpoints to a governance implementation. The
// implementation is either the engine itself or the upgrade facade.
type Handler struct {
	service ports.Governance
	logger  *slog.Logger
}

// New constructs a governance handler with its dependencies.
func New(service ports.Governance, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts governance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/residences/{residence}", h.HandleResidenceExists)

	r.Post("/residents", h.HandleAddResident)
	r.Get("/residents/{identity}", h.HandleGetResident)
	r.Delete("/residents/{identity}", h.HandleRemoveResident)

	r.Get("/counselors/{identity}", h.HandleGetCounselor)
	r.Put("/counselors/{identity}", h.HandleSetCounselor)

	r.Get("/manager", h.HandleGetManager)
	r.Put("/manager", h.HandleSetManager)

	r.Get("/topics", h.HandleListTopics)
	r.Post("/topics", h.HandleAddTopic)
	r.Get("/topics/{name}", h.HandleGetTopic)
	r.Delete("/topics/{name}", h.HandleRemoveTopic)
	r.Post("/topics/{name}/open", h.HandleOpenVoting)
	r.Post("/topics/{name}/close", h.HandleCloseVoting)
	r.Get("/topics/{name}/votes", h.HandleVotesCounter)
	r.Post("/topics/{name}/votes", h.HandleVote)
}

// HandleResidenceExists handles GET /residences/{residence}.
func (h *Handler) HandleResidenceExists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	residence, err := id.ParseResidenceID(chi.URLParam(r, "residence"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	exists, err := h.service.ResidenceExists(ctx, residence)
	if err != nil {
		h.fail(ctx, w, "residence lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ResidenceResponse{Residence: int(residence), Exists: exists})
}

// HandleAddResident handles POST /residents.
func (h *Handler) HandleAddResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if !requireCaller(ctx, w) {
		return
	}

	req, ok := httputil.DecodeAndPrepare[AddResidentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.AddResident(ctx, req.ParsedIdentity(), req.ParsedResidence()); err != nil {
		h.fail(ctx, w, "add resident failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ResidentResponse{
		Identity:  req.ParsedIdentity().String(),
		Resident:  true,
		Residence: req.Residence,
	})
}

// HandleGetResident handles GET /residents/{identity}.
func (h *Handler) HandleGetResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, ok := identityParam(w, r)
	if !ok {
		return
	}
	resp := ResidentResponse{Identity: identity.String()}
	resident, err := h.service.IsResident(ctx, identity)
	if err != nil {
		h.fail(ctx, w, "resident lookup failed", err)
		return
	}
	if resident {
		residence, err := h.service.ResidenceOf(ctx, identity)
		if err != nil {
			h.fail(ctx, w, "resident lookup failed", err)
			return
		}
		resp.Resident = true
		resp.Residence = int(residence)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleRemoveResident handles DELETE /residents/{identity}.
func (h *Handler) HandleRemoveResident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !requireCaller(ctx, w) {
		return
	}
	identity, ok := identityParam(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveResident(ctx, identity); err != nil {
		h.fail(ctx, w, "remove resident failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetCounselor handles GET /counselors/{identity}.
func (h *Handler) HandleGetCounselor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity, ok := identityParam(w, r)
	if !ok {
		return
	}
	counselor, err := h.service.IsCounselor(ctx, identity)
	if err != nil {
		h.fail(ctx, w, "counselor lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CounselorResponse{Identity: identity.String(), Counselor: counselor})
}

// HandleSetCounselor handles PUT /counselors/{identity}.
func (h *Handler) HandleSetCounselor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if !requireCaller(ctx, w) {
		return
	}
	identity, ok := identityParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetCounselorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.SetCounselor(ctx, identity, req.Enabled); err != nil {
		h.fail(ctx, w, "set counselor failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CounselorResponse{Identity: identity.String(), Counselor: req.Enabled})
}

// HandleGetManager handles GET /manager.
func (h *Handler) HandleGetManager(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	manager, err := h.service.Manager(ctx)
	if err != nil {
		h.fail(ctx, w, "manager lookup failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ManagerResponse{Manager: manager.String()})
}

// HandleSetManager handles PUT /manager.
func (h *Handler) HandleSetManager(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if !requireCaller(ctx, w) {
		return
	}
	req, ok := httputil.DecodeAndPrepare[SetManagerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.SetManager(ctx, req.ParsedIdentity()); err != nil {
		h.fail(ctx, w, "set manager failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ManagerResponse{Manager: req.ParsedIdentity().String()})
}

// HandleListTopics handles GET /topics.
func (h *Handler) HandleListTopics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	topics, err := h.service.ListTopics(ctx)
	if err != nil {
		h.fail(ctx, w, "list topics failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTopics(topics))
}

// HandleAddTopic handles POST /topics.
func (h *Handler) HandleAddTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()
	if !requireCaller(ctx, w) {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddTopicRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.AddTopic(ctx, req.ParsedName(), req.Description); err != nil {
		h.fail(ctx, w, "add topic failed", err)
		return
	}
	topic, err := h.service.GetTopic(ctx, req.ParsedName())
	if err != nil {
		h.fail(ctx, w, "add topic failed", err)
		return
	}
	h.logger.InfoContext(ctx, "topic added",
		"request_id", requestID,
		"topic", req.Name,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromTopic(topic))
}

// HandleGetTopic handles GET /topics/{name}.
func (h *Handler) HandleGetTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, ok := topicParam(w, r)
	if !ok {
		return
	}
	topic, err := h.service.GetTopic(ctx, name)
	if err != nil {
		h.fail(ctx, w, "get topic failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTopic(topic))
}

// HandleRemoveTopic handles DELETE /topics/{name}.
func (h *Handler) HandleRemoveTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !requireCaller(ctx, w) {
		return
	}
	name, ok := topicParam(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveTopic(ctx, name); err != nil {
		h.fail(ctx, w, "remove topic failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleOpenVoting handles POST /topics/{name}/open.
func (h *Handler) HandleOpenVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "open voting failed", h.service.OpenVoting)
}

// HandleCloseVoting handles POST /topics/{name}/close.
func (h *Handler) HandleCloseVoting(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "close voting failed", h.service.CloseVoting)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, failMsg string, apply func(context.Context, id.TopicName) error) {
	ctx := r.Context()
	if !requireCaller(ctx, w) {
		return
	}
	name, ok := topicParam(w, r)
	if !ok {
		return
	}
	if err := apply(ctx, name); err != nil {
		h.fail(ctx, w, failMsg, err)
		return
	}
	topic, err := h.service.GetTopic(ctx, name)
	if err != nil {
		h.fail(ctx, w, failMsg, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromTopic(topic))
}

// HandleVotesCounter handles GET /topics/{name}/votes.
func (h *Handler) HandleVotesCounter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name, ok := topicParam(w, r)
	if !ok {
		return
	}
	votes, err := h.service.VotesCounter(ctx, name)
	if err != nil {
		h.fail(ctx, w, "votes counter failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, VotesResponse{Topic: name.String(), Votes: votes})
}

// HandleVote handles POST /topics/{name}/votes.
func (h *Handler) HandleVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if !requireCaller(ctx, w) {
		return
	}
	name, ok := topicParam(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Vote(ctx, name, req.ParsedChoice()); err != nil {
		h.fail(ctx, w, "vote failed", err)
		return
	}
	votes, err := h.service.VotesCounter(ctx, name)
	if err != nil {
		h.fail(ctx, w, "vote failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, VotesResponse{Topic: name.String(), Votes: votes})
}

// fail logs rejected and failed operations at a level matching their code.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"caller", requestcontext.Caller(ctx).String(),
		"error", err,
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg, attrs...)
	} else {
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}

func requireCaller(ctx context.Context, w http.ResponseWriter) bool {
	if requestcontext.Caller(ctx).IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthenticated, "authentication required"))
		return false
	}
	return true
}

func identityParam(w http.ResponseWriter, r *http.Request) (id.Identity, bool) {
	identity, err := id.ParseIdentity(chi.URLParam(r, "identity"))
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return identity, true
}

func topicParam(w http.ResponseWriter, r *http.Request) (id.TopicName, bool) {
	raw, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid topic name"))
		return "", false
	}
	name, err := id.ParseTopicName(raw)
	if err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	return name, true
}
