package handler

import (
	"strings"
	"time"

	"consentd/internal/approval/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	pstrings "consentd/pkg/platform/strings"
)

// AuthorizationRequest is the wire form of models.AuthorizationRequest. Scope
// is a space-delimited list as in OAuth 2.0.
type AuthorizationRequest struct {
	ClientID           string            `json:"client_id"`
	Scope              string            `json:"scope"`
	Approved           bool              `json:"approved"`
	ApprovalParameters map[string]string `json:"approval_parameters"`
}

// Validate checks required fields.
func (r *AuthorizationRequest) Validate() error {
	if r.ClientID == "" {
		return dErrors.New(dErrors.CodeValidation, "client_id is required")
	}
	return nil
}

func (r *AuthorizationRequest) toModel() *models.AuthorizationRequest {
	params := make(map[string]string, len(r.ApprovalParameters))
	for k, v := range r.ApprovalParameters {
		params[k] = v
	}
	return &models.AuthorizationRequest{
		ClientID:           r.ClientID,
		Scopes:             models.NewScopeSet(pstrings.SplitFields(r.Scope)...),
		Approved:           r.Approved,
		ApprovalParameters: params,
	}
}

// AuthorizationResponse reports the outcome the protocol layer acts on.
type AuthorizationResponse struct {
	ClientID     string `json:"client_id"`
	Scope        string `json:"scope"`
	Approved     bool   `json:"approved"`
	ApprovedSite string `json:"approved_site,omitempty"`
}

func toAuthorizationResponse(req *models.AuthorizationRequest, approved bool) *AuthorizationResponse {
	resp := &AuthorizationResponse{
		ClientID: req.ClientID,
		Scope:    joinScopes(req.Scopes),
		Approved: approved,
	}
	if siteID, ok := req.ApprovedSiteID(); ok {
		resp.ApprovedSite = siteID.String()
	}
	return resp
}

func joinScopes(scopes models.ScopeSet) string {
	return strings.Join(scopes.Slice(), " ")
}

// ApprovedSiteResponse is one standing grant as shown to its owner.
type ApprovedSiteResponse struct {
	ID                string     `json:"id"`
	ClientID          string     `json:"client_id"`
	Scopes            []string   `json:"scopes"`
	CreationDate      time.Time  `json:"creation_date"`
	AccessDate        time.Time  `json:"access_date"`
	TimeoutDate       *time.Time `json:"timeout_date,omitempty"`
	Expired           bool       `json:"expired"`
	WhitelistedSiteID *string    `json:"whitelisted_site_id,omitempty"`
}

type ApprovedSitesResponse struct {
	Sites []*ApprovedSiteResponse `json:"sites"`
}

func toApprovedSitesResponse(sites []*models.ApprovedSite, now time.Time) *ApprovedSitesResponse {
	out := make([]*ApprovedSiteResponse, 0, len(sites))
	for _, site := range sites {
		item := &ApprovedSiteResponse{
			ID:           site.ID.String(),
			ClientID:     site.ClientID,
			Scopes:       site.AllowedScopes.Slice(),
			CreationDate: site.CreationDate,
			AccessDate:   site.AccessDate,
			TimeoutDate:  site.TimeoutDate,
			Expired:      site.IsExpired(now),
		}
		if site.WhitelistedSiteID != nil {
			wsID := site.WhitelistedSiteID.String()
			item.WhitelistedSiteID = &wsID
		}
		out = append(out, item)
	}
	return &ApprovedSitesResponse{Sites: out}
}

// PutWhitelistRequest sets the scopes a client may receive without consent.
type PutWhitelistRequest struct {
	Scope         string `json:"scope"`
	CreatorUserID string `json:"creator_user_id"`
}

func (r *PutWhitelistRequest) scopes() models.ScopeSet {
	return models.NewScopeSet(pstrings.SplitFields(r.Scope)...)
}

type WhitelistResponse struct {
	ID            id.WhitelistedSiteID `json:"id"`
	ClientID      string               `json:"client_id"`
	Scope         string               `json:"scope"`
	CreatorUserID string               `json:"creator_user_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toWhitelistResponse(ws *models.WhitelistedSite) *WhitelistResponse {
	return &WhitelistResponse{
		ID:            ws.ID,
		ClientID:      ws.ClientID,
		Scope:         joinScopes(ws.AllowedScopes),
		CreatorUserID: ws.CreatorUserID,
		CreatedAt:     ws.CreatedAt,
	}
}
