package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approvalmodels "consentd/internal/approval/models"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
)

func TestNewClient(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	scopes := approvalmodels.NewScopeSet("openid", "profile")

	tests := []struct {
		name          string
		clientName    string
		oauthClientID string
		scopes        approvalmodels.ScopeSet
		wantErr       bool
	}{
		{name: "valid", clientName: "Portal", oauthClientID: "portal", scopes: scopes},
		{name: "empty name", clientName: "", oauthClientID: "portal", scopes: scopes, wantErr: true},
		{name: "name too long", clientName: strings.Repeat("a", 129), oauthClientID: "portal", scopes: scopes, wantErr: true},
		{name: "empty client_id", clientName: "Portal", oauthClientID: "", scopes: scopes, wantErr: true},
		{name: "no scopes", clientName: "Portal", oauthClientID: "portal", scopes: approvalmodels.NewScopeSet(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(id.NewClientID(), tt.clientName, tt.oauthClientID, tt.scopes, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
				return
			}
			require.NoError(t, err)
			assert.True(t, c.IsActive())
			assert.Equal(t, now, c.CreatedAt)
			assert.Equal(t, []string{"openid", "profile"}, c.AllowedScopes.Slice())
		})
	}
}

func TestClientStatusTransitions(t *testing.T) {
	now := time.Now()
	c, err := NewClient(id.NewClientID(), "Portal", "portal", approvalmodels.NewScopeSet("openid"), now)
	require.NoError(t, err)

	require.NoError(t, c.Deactivate(now.Add(time.Minute)))
	assert.False(t, c.IsActive())
	assert.Equal(t, now.Add(time.Minute), c.UpdatedAt)
	assert.Error(t, c.Deactivate(now))

	require.NoError(t, c.Reactivate(now.Add(2*time.Minute)))
	assert.True(t, c.IsActive())
	assert.Error(t, c.Reactivate(now))
}
