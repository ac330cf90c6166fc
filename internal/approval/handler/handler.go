package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentd/internal/approval/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/httputil"
	authmw "consentd/pkg/platform/middleware/auth"
	request "consentd/pkg/platform/middleware/request"
	"consentd/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Engine,Manager

// Engine is the consent decision engine.
type Engine interface {
	IsApproved(ctx context.Context, req *models.AuthorizationRequest, identity models.Identity) bool
	CheckForPreApproval(ctx context.Context, req *models.AuthorizationRequest, identity models.Identity) (*models.AuthorizationRequest, error)
	UpdateAfterApproval(ctx context.Context, req *models.AuthorizationRequest, identity models.Identity) (*models.AuthorizationRequest, error)
}

// Manager covers grant review and whitelist administration.
type Manager interface {
	ListSites(ctx context.Context, userID string) ([]*models.ApprovedSite, error)
	RevokeSite(ctx context.Context, userID string, siteID id.ApprovedSiteID) error
	GetWhitelist(ctx context.Context, clientID string) (*models.WhitelistedSite, error)
	PutWhitelist(ctx context.Context, clientID string, scopes models.ScopeSet, creatorUserID string) (*models.WhitelistedSite, error)
	DeleteWhitelist(ctx context.Context, clientID string) error
}

// Handler serves the approval API to the authorization server's protocol layer.
type Handler struct {
	engine  Engine
	manager Manager
	logger  *slog.Logger
}

func New(engine Engine, manager Manager, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, manager: manager, logger: logger}
}

// Register mounts the user-facing routes. Callers wrap r with auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/approvals/check", h.HandleCheck)
	r.Post("/approvals/decision", h.HandleDecision)
	r.Get("/approvals/sites", h.HandleListSites)
	r.Delete("/approvals/sites/{id}", h.HandleRevokeSite)
}

// RegisterAdmin mounts the whitelist routes. Callers wrap r with admin auth.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/whitelist/{client_id}", h.HandleGetWhitelist)
	r.Put("/admin/whitelist/{client_id}", h.HandlePutWhitelist)
	r.Delete("/admin/whitelist/{client_id}", h.HandleDeleteWhitelist)
}

// identity reads the authenticated subject placed by the auth middleware.
func identity(ctx context.Context) models.Identity {
	userID := authmw.GetUserID(ctx)
	return models.Identity{UserID: userID, Authenticated: userID != ""}
}

// HandleCheck short-circuits already-approved requests, otherwise looks for a
// stored approval or whitelist entry that covers the request.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := h.decodeAuthorizationRequest(w, r)
	if !ok {
		return
	}
	who := identity(ctx)

	if h.engine.IsApproved(ctx, req, who) {
		httputil.WriteJSON(w, http.StatusOK, toAuthorizationResponse(req, true))
		return
	}

	checked, err := h.engine.CheckForPreApproval(ctx, req, who)
	if err != nil {
		h.logger.ErrorContext(ctx, "pre-approval check failed",
			"request_id", requestID,
			"client_id", req.ClientID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuthorizationResponse(checked, checked.Approved))
}

// HandleDecision records the user's answer on the consent page.
func (h *Handler) HandleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := h.decodeAuthorizationRequest(w, r)
	if !ok {
		return
	}
	who := identity(ctx)

	updated, err := h.engine.UpdateAfterApproval(ctx, req, who)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "consent decision for unknown client",
				"request_id", requestID,
				"client_id", req.ClientID,
			)
		} else {
			h.logger.ErrorContext(ctx, "failed to record consent decision",
				"request_id", requestID,
				"client_id", req.ClientID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuthorizationResponse(updated, h.engine.IsApproved(ctx, updated, who)))
}

func (h *Handler) HandleListSites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := authmw.GetUserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	sites, err := h.manager.ListSites(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list approved sites",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApprovedSitesResponse(sites, requestcontext.Now(ctx)))
}

func (h *Handler) HandleRevokeSite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := authmw.GetUserID(ctx)
	if userID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	siteID, err := id.ParseApprovedSiteID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.manager.RevokeSite(ctx, userID, siteID); err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to revoke approved site",
				"request_id", request.GetRequestID(ctx),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleGetWhitelist(w http.ResponseWriter, r *http.Request) {
	ws, err := h.manager.GetWhitelist(r.Context(), chi.URLParam(r, "client_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toWhitelistResponse(ws))
}

func (h *Handler) HandlePutWhitelist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := chi.URLParam(r, "client_id")

	var body PutWhitelistRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid whitelist request",
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	ws, err := h.manager.PutWhitelist(ctx, clientID, body.scopes(), body.CreatorUserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toWhitelistResponse(ws))
}

func (h *Handler) HandleDeleteWhitelist(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.DeleteWhitelist(r.Context(), chi.URLParam(r, "client_id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeAuthorizationRequest(w http.ResponseWriter, r *http.Request) (*models.AuthorizationRequest, bool) {
	ctx := r.Context()
	var body AuthorizationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid authorization request",
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if err := body.Validate(); err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return body.toModel(), true
}
