package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "consentd/pkg/domain"
)

func TestUserApproved(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   bool
	}{
		{"absent", nil, false},
		{"true", map[string]string{ParamUserOAuthApproval: "true"}, true},
		{"mixed case", map[string]string{ParamUserOAuthApproval: "TRUE"}, true},
		{"false", map[string]string{ParamUserOAuthApproval: "false"}, false},
		{"garbage", map[string]string{ParamUserOAuthApproval: "yes"}, false},
		{"empty", map[string]string{ParamUserOAuthApproval: ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &AuthorizationRequest{ApprovalParameters: tt.params}
			assert.Equal(t, tt.want, req.UserApproved())
		})
	}
}

func TestSelectedScopes(t *testing.T) {
	req := &AuthorizationRequest{ApprovalParameters: map[string]string{
		"scope_a":              "read",
		"scope_b":              "admin",
		"remember":             "none",
		ParamUserOAuthApproval: "true",
	}}
	assert.ElementsMatch(t, []string{"read", "admin"}, req.SelectedScopes())
}

func TestRememberTimeout(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, value := range []string{"", RememberNone} {
		timeout, persist := RememberTimeout(value, now)
		assert.False(t, persist, value)
		assert.Nil(t, timeout, value)
	}

	timeout, persist := RememberTimeout(RememberOneHour, now)
	require.True(t, persist)
	require.NotNil(t, timeout)
	assert.Equal(t, now.Add(time.Hour), *timeout)

	for _, value := range []string{"until-revoked", "one-day", "None"} {
		timeout, persist := RememberTimeout(value, now)
		assert.True(t, persist, value)
		assert.Nil(t, timeout, value)
	}
}

func TestMarkApprovedBy(t *testing.T) {
	req := &AuthorizationRequest{}
	siteID := id.NewApprovedSiteID()

	req.MarkApprovedBy(siteID)

	assert.True(t, req.Approved)
	got, ok := req.ApprovedSiteID()
	require.True(t, ok)
	assert.Equal(t, siteID, got)
}
