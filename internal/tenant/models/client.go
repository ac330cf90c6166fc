package models

import (
	"time"

	approvalmodels "consentd/internal/approval/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
)

// ClientStatus is the lifecycle state of a client registration.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

func (s ClientStatus) IsValid() bool {
	return s == ClientStatusActive || s == ClientStatusInactive
}

// CanTransitionTo allows active <-> inactive only.
func (s ClientStatus) CanTransitionTo(next ClientStatus) bool {
	return s.IsValid() && next.IsValid() && s != next
}

// Client is an OAuth 2.0 client registration as far as consent is concerned:
// who it is and which scopes it may ever be granted.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - OAuthClientID is non-empty (the public client_id for OAuth flows)
//   - AllowedScopes is non-empty
//   - Status transitions: active <-> inactive only
type Client struct {
	ID            id.ClientID             `json:"id"`
	OAuthClientID string                  `json:"client_id"`
	Name          string                  `json:"name"`
	AllowedScopes approvalmodels.ScopeSet `json:"allowed_scopes"`
	Status        ClientStatus            `json:"status"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func NewClient(
	clientID id.ClientID,
	name string,
	oauthClientID string,
	allowedScopes approvalmodels.ScopeSet,
	now time.Time,
) (*Client, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client name must be 128 characters or less")
	}
	if oauthClientID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client_id cannot be empty")
	}
	if allowedScopes.Len() == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "allowed_scopes cannot be empty")
	}
	return &Client{
		ID:            clientID,
		OAuthClientID: oauthClientID,
		Name:          name,
		AllowedScopes: allowedScopes.Clone(),
		Status:        ClientStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// Deactivate stops the client from receiving new consent grants.
func (c *Client) Deactivate(now time.Time) error {
	if !c.Status.CanTransitionTo(ClientStatusInactive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "client is already inactive")
	}
	c.Status = ClientStatusInactive
	c.UpdatedAt = now
	return nil
}

func (c *Client) Reactivate(now time.Time) error {
	if !c.Status.CanTransitionTo(ClientStatusActive) {
		return dErrors.New(dErrors.CodeInvariantViolation, "client is already active")
	}
	c.Status = ClientStatusActive
	c.UpdatedAt = now
	return nil
}
