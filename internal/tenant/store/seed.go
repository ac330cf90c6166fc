package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	approvalmodels "consentd/internal/approval/models"
	"consentd/internal/tenant/models"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

const (
	BootstrapClientID        = "test-client"
	BootstrapTrustedClientID = "trusted-client"
)

// ClientCreator is the subset of a client store used by the seed.
type ClientCreator interface {
	Create(ctx context.Context, c *models.Client) error
}

// WhitelistWriter is the subset of a whitelist store used by the seed.
type WhitelistWriter interface {
	Put(ctx context.Context, ws *approvalmodels.WhitelistedSite) error
}

// SeedBootstrap registers two development clients: one that always asks for
// consent and one whitelisted for openid and profile. Running it twice is
// harmless; existing registrations are left alone.
func SeedBootstrap(ctx context.Context, clients ClientCreator, whitelist WhitelistWriter, now time.Time) error {
	regular, err := models.NewClient(id.NewClientID(), "default-client", BootstrapClientID,
		approvalmodels.NewScopeSet("openid", "profile", "email", "offline_access"), now)
	if err != nil {
		return err
	}
	if err := clients.Create(ctx, regular); err != nil && !errors.Is(err, sentinel.ErrConflict) {
		return fmt.Errorf("seed client %s: %w", BootstrapClientID, err)
	}

	trusted, err := models.NewClient(id.NewClientID(), "trusted-client", BootstrapTrustedClientID,
		approvalmodels.NewScopeSet("openid", "profile", "email"), now)
	if err != nil {
		return err
	}
	if err := clients.Create(ctx, trusted); err != nil && !errors.Is(err, sentinel.ErrConflict) {
		return fmt.Errorf("seed client %s: %w", BootstrapTrustedClientID, err)
	}

	ws, err := approvalmodels.NewWhitelistedSite(BootstrapTrustedClientID,
		approvalmodels.NewScopeSet("openid", "profile"), "bootstrap", now)
	if err != nil {
		return err
	}
	if err := whitelist.Put(ctx, ws); err != nil {
		return fmt.Errorf("seed whitelist: %w", err)
	}
	return nil
}
