package adapters

import (
	"context"
	"fmt"

	"consentd/internal/approval/models"
	tenantModels "consentd/internal/tenant/models"
	"consentd/pkg/platform/sentinel"
)

// ClientLookup is the subset of a tenant client store the engine needs.
type ClientLookup interface {
	FindByOAuthClientID(ctx context.Context, oauthClientID string) (*tenantModels.Client, error)
}

// RegistryAdapter adapts the tenant client store to the approval engine's
// ClientRegistry port.
type RegistryAdapter struct {
	clients ClientLookup
}

func NewRegistryAdapter(clients ClientLookup) *RegistryAdapter {
	return &RegistryAdapter{clients: clients}
}

// RegisteredScopes returns the scopes the client may be granted. Inactive
// clients are reported as unknown so no new consent is recorded for them.
func (a *RegistryAdapter) RegisteredScopes(ctx context.Context, clientID string) (models.ScopeSet, error) {
	client, err := a.clients.FindByOAuthClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if !client.IsActive() {
		return nil, fmt.Errorf("client %s is inactive: %w", clientID, sentinel.ErrNotFound)
	}
	return client.AllowedScopes.Clone(), nil
}
