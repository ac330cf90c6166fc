package models

import (
	"time"

	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
)

// WhitelistedSite lets a client skip interactive consent for a bounded scope
// set. Administrators manage these; the engine only reads them.
type WhitelistedSite struct {
	ID            id.WhitelistedSiteID `json:"id"`
	ClientID      string               `json:"client_id"`
	AllowedScopes ScopeSet             `json:"allowed_scopes"`
	CreatorUserID string               `json:"creator_user_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewWhitelistedSite validates and builds a whitelist entry.
func NewWhitelistedSite(clientID string, scopes ScopeSet, creatorUserID string, now time.Time) (*WhitelistedSite, error) {
	if clientID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "client_id is required")
	}
	if scopes.Len() == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "allowed_scopes cannot be empty")
	}
	return &WhitelistedSite{
		ID:            id.NewWhitelistedSiteID(),
		ClientID:      clientID,
		AllowedScopes: scopes.Clone(),
		CreatorUserID: creatorUserID,
		CreatedAt:     now,
	}, nil
}

// Covers reports whether the entry allows every requested scope.
func (w *WhitelistedSite) Covers(requested ScopeSet) bool {
	return IsSubset(requested, w.AllowedScopes)
}
