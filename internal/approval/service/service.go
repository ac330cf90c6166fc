package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"consentd/internal/approval/metrics"
	"consentd/internal/approval/models"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/sentinel"
	"consentd/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ApprovedSiteStore,WhitelistStore,ClientRegistry

// ApprovedSiteStore persists standing consent grants.
type ApprovedSiteStore interface {
	ListByClientAndUser(ctx context.Context, clientID, userID string) ([]*models.ApprovedSite, error)
	Save(ctx context.Context, site *models.ApprovedSite) error
	Create(ctx context.Context, site *models.ApprovedSite) error
}

// WhitelistStore reads administrator-managed whitelist entries.
// FindByClientID returns sentinel.ErrNotFound when the client has none.
type WhitelistStore interface {
	FindByClientID(ctx context.Context, clientID string) (*models.WhitelistedSite, error)
}

// ClientRegistry resolves a client's registered scopes.
// Unknown clients yield sentinel.ErrNotFound.
type ClientRegistry interface {
	RegisteredScopes(ctx context.Context, clientID string) (models.ScopeSet, error)
}

// Service is the trust-on-first-use consent engine. It holds no per-request
// state; everything mutable lives in the caller's AuthorizationRequest and in
// the stores. Concurrent first uses of a whitelisted client by the same user
// may each create an approved site; no locking happens here.
type Service struct {
	sites     ApprovedSiteStore
	whitelist WhitelistStore
	clients   ClientRegistry
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func New(sites ApprovedSiteStore, whitelist WhitelistStore, clients ClientRegistry, opts ...Option) *Service {
	s := &Service{
		sites:     sites,
		whitelist: whitelist,
		clients:   clients,
		logger:    slog.Default(),
		tracer:    otel.Tracer("consentd/approval"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// IsApproved reports whether the flow may proceed: either an earlier stage
// already approved the request, or an authenticated user just submitted
// user_oauth_approval=true.
func (s *Service) IsApproved(_ context.Context, req *models.AuthorizationRequest, identity models.Identity) bool {
	if req.Approved {
		return true
	}
	return identity.Authenticated && req.UserApproved()
}

// CheckForPreApproval looks for a standing trust relationship covering the
// requested scopes: first a stored approval for this client and user, then
// the client's whitelist entry. A match marks the request approved; no match
// returns the request unchanged.
func (s *Service) CheckForPreApproval(ctx context.Context, req *models.AuthorizationRequest, identity models.Identity) (*models.AuthorizationRequest, error) {
	start := time.Now()
	defer s.metrics.ObserveOperation("check_pre_approval", start)

	ctx, span := s.tracer.Start(ctx, "approval.CheckForPreApproval", trace.WithAttributes(
		attribute.String("client_id", req.ClientID),
	))
	defer span.End()

	now := requestcontext.Now(ctx)
	logger := s.logger.With("request_id", requestcontext.RequestID(ctx), "client_id", req.ClientID)

	sites, err := s.sites.ListByClientAndUser(ctx, req.ClientID, identity.UserID)
	if err != nil {
		span.RecordError(err)
		return req, translateStoreError(err, "failed to list approved sites")
	}

	for _, site := range sites {
		if site.IsExpired(now) || !site.Covers(req.Scopes) {
			continue
		}
		site.Touch(now)
		if err := s.sites.Save(ctx, site); err != nil {
			span.RecordError(err)
			return req, translateStoreError(err, "failed to update approved site")
		}
		req.MarkApprovedBy(site.ID)
		s.metrics.IncrementPreApproval(metrics.SourceApprovedSite)
		span.SetAttributes(attribute.String("source", metrics.SourceApprovedSite))
		logger.DebugContext(ctx, "request pre-approved by stored approval", "approved_site", site.ID.String())
		return req, nil
	}

	ws, err := s.whitelist.FindByClientID(ctx, req.ClientID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		span.RecordError(err)
		return req, translateStoreError(err, "failed to load whitelist entry")
	}
	if ws != nil && ws.Covers(req.Scopes) {
		site := models.NewApprovedSite(req.ClientID, identity.UserID, nil, ws.AllowedScopes, ws, now)
		if err := s.sites.Create(ctx, site); err != nil {
			span.RecordError(err)
			return req, translateStoreError(err, "failed to create approved site")
		}
		req.MarkApprovedBy(site.ID)
		s.metrics.IncrementPreApproval(metrics.SourceWhitelist)
		s.metrics.IncrementSiteCreated(metrics.SourceWhitelist)
		span.SetAttributes(attribute.String("source", metrics.SourceWhitelist))
		logger.InfoContext(ctx, "request pre-approved by whitelist", "approved_site", site.ID.String())
		return req, nil
	}

	s.metrics.IncrementPreApproval(metrics.SourceNone)
	span.SetAttributes(attribute.String("source", metrics.SourceNone))
	return req, nil
}

// UpdateAfterApproval applies the user's interactive decision. When approved,
// the request's scopes are replaced by the scope_* selections the client is
// registered for, and a new approved site is stored if the user asked to be
// remembered.
func (s *Service) UpdateAfterApproval(ctx context.Context, req *models.AuthorizationRequest, identity models.Identity) (*models.AuthorizationRequest, error) {
	start := time.Now()
	defer s.metrics.ObserveOperation("update_after_approval", start)

	ctx, span := s.tracer.Start(ctx, "approval.UpdateAfterApproval", trace.WithAttributes(
		attribute.String("client_id", req.ClientID),
	))
	defer span.End()

	// Parsed again here: the protocol layer may have reset Approved since IsApproved ran.
	approved := req.UserApproved()
	s.metrics.IncrementDecision(approved)
	if !approved {
		return req, nil
	}

	registered, err := s.clients.RegisteredScopes(ctx, req.ClientID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return req, dErrors.Wrap(err, dErrors.CodeNotFound, "client not found")
		}
		return req, translateStoreError(err, "failed to load client")
	}

	req.Approved = true

	allowed := models.NewScopeSet()
	for _, scope := range req.SelectedScopes() {
		if registered.Contains(scope) {
			allowed.Add(scope)
		}
	}
	req.Scopes = allowed

	now := requestcontext.Now(ctx)
	timeout, persist := models.RememberTimeout(req.Remember(), now)
	if !persist {
		return req, nil
	}

	site := models.NewApprovedSite(req.ClientID, identity.UserID, timeout, allowed, nil, now)
	if err := s.sites.Create(ctx, site); err != nil {
		span.RecordError(err)
		return req, translateStoreError(err, "failed to create approved site")
	}
	req.MarkApprovedBy(site.ID)
	s.metrics.IncrementSiteCreated(metrics.SourceUser)
	s.logger.InfoContext(ctx, "remembered consent decision",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", req.ClientID,
		"approved_site", site.ID.String(),
		"remember", req.Remember(),
	)
	return req, nil
}

func translateStoreError(err error, msg string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
