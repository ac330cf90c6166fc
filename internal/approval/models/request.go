package models

import (
	"strings"
	"time"

	id "consentd/pkg/domain"
)

// Recognised approval parameters and extension keys.
const (
	ParamUserOAuthApproval = "user_oauth_approval"
	ParamRemember          = "remember"
	ScopeParamPrefix       = "scope_"

	ExtensionApprovedSite = "approved_site"
)

// Values of the remember parameter with special meaning. Any other non-empty
// value means "remember indefinitely".
const (
	RememberNone    = "none"
	RememberOneHour = "one-hour"
)

// RememberOneHourTTL is the lifetime of a "one-hour" approval.
const RememberOneHourTTL = time.Hour

// AuthorizationRequest is the caller-owned state of one authorization flow.
// The engine reads and mutates it in place and keeps no reference after a call.
type AuthorizationRequest struct {
	ClientID           string
	Scopes             ScopeSet
	Approved           bool
	ApprovalParameters map[string]string
	Extensions         map[string]any
}

// Identity is the already-authenticated end user.
type Identity struct {
	UserID        string
	Authenticated bool
}

// UserApproved coerces the user_oauth_approval parameter to a boolean.
// Absent or anything other than "true" (any case) is false.
func (r *AuthorizationRequest) UserApproved() bool {
	return parseBool(r.ApprovalParameters[ParamUserOAuthApproval])
}

// SelectedScopes returns the values of every scope_* parameter.
func (r *AuthorizationRequest) SelectedScopes() []string {
	var scopes []string
	for key, value := range r.ApprovalParameters {
		if strings.HasPrefix(key, ScopeParamPrefix) {
			scopes = append(scopes, value)
		}
	}
	return scopes
}

// Remember returns the remember parameter as sent.
func (r *AuthorizationRequest) Remember() string {
	return r.ApprovalParameters[ParamRemember]
}

// MarkApprovedBy records which approved site justified the approval.
func (r *AuthorizationRequest) MarkApprovedBy(siteID id.ApprovedSiteID) {
	r.setExtension(ExtensionApprovedSite, siteID)
	r.Approved = true
}

// ApprovedSiteID returns the site recorded by MarkApprovedBy or a remembered
// decision, if any.
func (r *AuthorizationRequest) ApprovedSiteID() (id.ApprovedSiteID, bool) {
	siteID, ok := r.Extensions[ExtensionApprovedSite].(id.ApprovedSiteID)
	return siteID, ok
}

func (r *AuthorizationRequest) setExtension(key string, value any) {
	if r.Extensions == nil {
		r.Extensions = make(map[string]any)
	}
	r.Extensions[key] = value
}

// RememberTimeout interprets the remember parameter. persist is false for
// absent, empty or "none". A nil timeout means the approval never expires.
func RememberTimeout(remember string, now time.Time) (timeout *time.Time, persist bool) {
	if remember == "" || remember == RememberNone {
		return nil, false
	}
	if remember == RememberOneHour {
		t := now.Add(RememberOneHourTTL)
		return &t, true
	}
	return nil, true
}

func parseBool(value string) bool {
	return strings.EqualFold(value, "true")
}
