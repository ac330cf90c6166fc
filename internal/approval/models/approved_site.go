package models

import (
	"time"

	id "consentd/pkg/domain"
)

// ApprovedSite is a standing consent grant for one (client, user) pair.
//
// Invariants:
//   - AllowedScopes is fixed at creation
//   - TimeoutDate nil means the grant never expires
//   - an expired site is skipped by pre-approval but never deleted by it
type ApprovedSite struct {
	ID                id.ApprovedSiteID
	ClientID          string
	UserID            string
	AllowedScopes     ScopeSet
	CreationDate      time.Time
	AccessDate        time.Time
	TimeoutDate       *time.Time
	WhitelistedSiteID *id.WhitelistedSiteID
}

// NewApprovedSite builds a grant with a fresh ID. whitelisted is the entry
// that triggered automatic approval, or nil for an explicit user decision.
func NewApprovedSite(clientID, userID string, timeout *time.Time, scopes ScopeSet, whitelisted *WhitelistedSite, now time.Time) *ApprovedSite {
	site := &ApprovedSite{
		ID:            id.NewApprovedSiteID(),
		ClientID:      clientID,
		UserID:        userID,
		AllowedScopes: scopes.Clone(),
		CreationDate:  now,
		AccessDate:    now,
		TimeoutDate:   timeout,
	}
	if whitelisted != nil {
		wsID := whitelisted.ID
		site.WhitelistedSiteID = &wsID
	}
	return site
}

// IsExpired reports whether the grant's timeout has passed.
func (a *ApprovedSite) IsExpired(now time.Time) bool {
	return a.TimeoutDate != nil && a.TimeoutDate.Before(now)
}

// Covers reports whether the grant allows every requested scope.
func (a *ApprovedSite) Covers(requested ScopeSet) bool {
	return IsSubset(requested, a.AllowedScopes)
}

// Touch records a use of the grant.
func (a *ApprovedSite) Touch(now time.Time) {
	a.AccessDate = now
}

// IsWhitelisted reports whether the grant was created from a whitelist entry.
func (a *ApprovedSite) IsWhitelisted() bool {
	return a.WhitelistedSiteID != nil
}
