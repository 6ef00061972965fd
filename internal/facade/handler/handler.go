// Package handler exposes the facade's upgrade surface over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/httputil"
	"github.com/pewpola/dao-condominium/pkg/requestcontext"
)

// Service defines the facade operations the handler needs.
type Service interface {
	Upgrade(ctx context.Context, handle string) error
	ImplementationAddress(ctx context.Context) (string, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts facade endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/facade/implementation", h.HandleImplementation)
	r.Post("/facade/upgrade", h.HandleUpgrade)
}

// UpgradeRequest is the HTTP request body for POST /facade/upgrade.
type UpgradeRequest struct {
	Implementation string `json:"implementation"`
}

func (r *UpgradeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Implementation = strings.TrimSpace(r.Implementation)
	return nil
}

type ImplementationResponse struct {
	Implementation string `json:"implementation"`
}

// HandleImplementation handles GET /facade/implementation.
func (h *Handler) HandleImplementation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle, err := h.service.ImplementationAddress(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "implementation lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ImplementationResponse{Implementation: handle})
}

// HandleUpgrade handles POST /facade/upgrade.
func (h *Handler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.Caller(ctx).IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthenticated, "authentication required"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpgradeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := h.service.Upgrade(ctx, req.Implementation); err != nil {
		h.logger.WarnContext(ctx, "upgrade failed",
			"request_id", requestID,
			"implementation", req.Implementation,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ImplementationResponse{Implementation: req.Implementation})
}
