package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"consentd/internal/approval/models"
	"consentd/internal/approval/service/mocks"
	id "consentd/pkg/domain"
	dErrors "consentd/pkg/domain-errors"
	"consentd/pkg/platform/sentinel"
	"consentd/pkg/requestcontext"
)

const (
	testClientID = "client-app"
	testUserID   = "alice"
)

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockSites     *mocks.MockApprovedSiteStore
	mockWhitelist *mocks.MockWhitelistStore
	mockClients   *mocks.MockClientRegistry
	service       *Service
	now           time.Time
	ctx           context.Context
	identity      models.Identity
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSites = mocks.NewMockApprovedSiteStore(s.ctrl)
	s.mockWhitelist = mocks.NewMockWhitelistStore(s.ctrl)
	s.mockClients = mocks.NewMockClientRegistry(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(s.mockSites, s.mockWhitelist, s.mockClients, WithLogger(logger))
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.identity = models.Identity{UserID: testUserID, Authenticated: true}
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) newRequest(scopes ...string) *models.AuthorizationRequest {
	return &models.AuthorizationRequest{
		ClientID:           testClientID,
		Scopes:             models.NewScopeSet(scopes...),
		ApprovalParameters: map[string]string{},
		Extensions:         map[string]any{},
	}
}

func (s *ServiceSuite) newSite(timeout *time.Time, scopes ...string) *models.ApprovedSite {
	return &models.ApprovedSite{
		ID:            id.NewApprovedSiteID(),
		ClientID:      testClientID,
		UserID:        testUserID,
		AllowedScopes: models.NewScopeSet(scopes...),
		CreationDate:  s.now.Add(-24 * time.Hour),
		AccessDate:    s.now.Add(-24 * time.Hour),
		TimeoutDate:   timeout,
	}
}

func (s *ServiceSuite) TestIsApproved() {
	s.Run("already approved wins regardless of parameters and authentication", func() {
		req := s.newRequest("openid")
		req.Approved = true
		req.ApprovalParameters[models.ParamUserOAuthApproval] = "false"

		s.True(s.service.IsApproved(s.ctx, req, models.Identity{}))
	})

	s.Run("authenticated user approval", func() {
		req := s.newRequest("openid")
		req.ApprovalParameters[models.ParamUserOAuthApproval] = "true"

		s.True(s.service.IsApproved(s.ctx, req, s.identity))
	})

	s.Run("unauthenticated user approval is ignored", func() {
		req := s.newRequest("openid")
		req.ApprovalParameters[models.ParamUserOAuthApproval] = "true"

		s.False(s.service.IsApproved(s.ctx, req, models.Identity{UserID: testUserID}))
	})

	s.Run("absent or malformed flag is false", func() {
		s.False(s.service.IsApproved(s.ctx, s.newRequest("openid"), s.identity))

		req := s.newRequest("openid")
		req.ApprovalParameters[models.ParamUserOAuthApproval] = "1"
		s.False(s.service.IsApproved(s.ctx, req, s.identity))
	})
}

func (s *ServiceSuite) TestCheckForPreApproval_StoredApproval() {
	s.Run("non-expired covering site approves and is touched", func() {
		future := s.now.Add(time.Hour)
		site := s.newSite(&future, "openid", "profile", "email")
		req := s.newRequest("openid", "profile")

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return([]*models.ApprovedSite{site}, nil)
		s.mockSites.EXPECT().Save(gomock.Any(), site).DoAndReturn(func(_ context.Context, saved *models.ApprovedSite) error {
			s.Equal(s.now, saved.AccessDate)
			return nil
		})

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.True(result.Approved)
		s.Equal(site.ID, result.Extensions[models.ExtensionApprovedSite])
		s.Equal(s.now, site.AccessDate)
	})

	s.Run("first match wins and the whitelist is not consulted", func() {
		first := s.newSite(nil, "openid", "profile")
		second := s.newSite(nil, "openid", "profile")
		req := s.newRequest("openid")

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return([]*models.ApprovedSite{first, second}, nil)
		s.mockSites.EXPECT().Save(gomock.Any(), first).Return(nil)

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.Equal(first.ID, result.Extensions[models.ExtensionApprovedSite])
	})

	s.Run("expired and non-covering sites are skipped", func() {
		past := s.now.Add(-time.Minute)
		expired := s.newSite(&past, "openid", "profile")
		narrow := s.newSite(nil, "openid")
		match := s.newSite(nil, "openid", "profile")
		req := s.newRequest("openid", "profile")

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).
			Return([]*models.ApprovedSite{expired, narrow, match}, nil)
		s.mockSites.EXPECT().Save(gomock.Any(), match).Return(nil)

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.Equal(match.ID, result.Extensions[models.ExtensionApprovedSite])
		s.Equal(s.now.Add(-24*time.Hour), expired.AccessDate, "expired site untouched")
	})

	s.Run("only an expired match and no whitelist leaves request unapproved", func() {
		past := s.now.Add(-time.Minute)
		expired := s.newSite(&past, "openid")
		req := s.newRequest("openid")

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return([]*models.ApprovedSite{expired}, nil)
		s.mockWhitelist.EXPECT().FindByClientID(gomock.Any(), testClientID).Return(nil, fmt.Errorf("whitelist: %w", sentinel.ErrNotFound))

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.False(result.Approved)
		s.NotContains(result.Extensions, models.ExtensionApprovedSite)
	})

	s.Run("empty requested scopes match any live site", func() {
		site := s.newSite(nil, "openid")
		req := s.newRequest()

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return([]*models.ApprovedSite{site}, nil)
		s.mockSites.EXPECT().Save(gomock.Any(), site).Return(nil)

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.True(result.Approved)
	})
}

func (s *ServiceSuite) TestCheckForPreApproval_Whitelist() {
	s.Run("covering whitelist creates a permanent site with the full whitelist scopes", func() {
		ws := &models.WhitelistedSite{
			ID:            id.NewWhitelistedSiteID(),
			ClientID:      testClientID,
			AllowedScopes: models.NewScopeSet("openid", "profile", "email"),
		}
		req := s.newRequest("openid")

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return(nil, nil)
		s.mockWhitelist.EXPECT().FindByClientID(gomock.Any(), testClientID).Return(ws, nil)

		var created *models.ApprovedSite
		s.mockSites.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, site *models.ApprovedSite) error {
			created = site
			return nil
		})

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.Require().NotNil(created)
		s.True(result.Approved)
		s.Nil(created.TimeoutDate)
		s.Equal(ws.AllowedScopes, created.AllowedScopes)
		s.Equal(testClientID, created.ClientID)
		s.Equal(testUserID, created.UserID)
		s.Require().NotNil(created.WhitelistedSiteID)
		s.Equal(ws.ID, *created.WhitelistedSiteID)
		s.Equal(created.ID, result.Extensions[models.ExtensionApprovedSite])
		s.Equal(models.NewScopeSet("openid"), result.Scopes, "request scopes untouched")
	})

	s.Run("whitelist not covering the request leaves it unapproved", func() {
		ws := &models.WhitelistedSite{
			ID:            id.NewWhitelistedSiteID(),
			ClientID:      testClientID,
			AllowedScopes: models.NewScopeSet("openid"),
		}
		req := s.newRequest("openid", "admin")

		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return(nil, nil)
		s.mockWhitelist.EXPECT().FindByClientID(gomock.Any(), testClientID).Return(ws, nil)

		result, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.False(result.Approved)
	})
}

func (s *ServiceSuite) TestCheckForPreApproval_StoreFailures() {
	s.Run("list failure surfaces as internal error", func() {
		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return(nil, assert.AnError)

		_, err := s.service.CheckForPreApproval(s.ctx, s.newRequest("openid"), s.identity)

		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("unavailable whitelist surfaces as unavailable", func() {
		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return(nil, nil)
		s.mockWhitelist.EXPECT().FindByClientID(gomock.Any(), testClientID).Return(nil, fmt.Errorf("redis: %w", sentinel.ErrUnavailable))

		req := s.newRequest("openid")
		_, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.False(req.Approved)
	})

	s.Run("save failure does not approve", func() {
		site := s.newSite(nil, "openid")
		s.mockSites.EXPECT().ListByClientAndUser(gomock.Any(), testClientID, testUserID).Return([]*models.ApprovedSite{site}, nil)
		s.mockSites.EXPECT().Save(gomock.Any(), site).Return(assert.AnError)

		req := s.newRequest("openid")
		_, err := s.service.CheckForPreApproval(s.ctx, req, s.identity)

		s.Require().Error(err)
		s.False(req.Approved)
	})
}

func (s *ServiceSuite) TestUpdateAfterApproval() {
	s.Run("filters scopes, remembers for one hour", func() {
		req := s.newRequest("read", "write")
		req.ApprovalParameters = map[string]string{
			models.ParamUserOAuthApproval: "true",
			"scope_a":                     "read",
			"scope_b":                     "admin",
			models.ParamRemember:          models.RememberOneHour,
		}

		s.mockClients.EXPECT().RegisteredScopes(gomock.Any(), testClientID).Return(models.NewScopeSet("read", "write"), nil)
		var created *models.ApprovedSite
		s.mockSites.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, site *models.ApprovedSite) error {
			created = site
			return nil
		})

		result, err := s.service.UpdateAfterApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.True(result.Approved)
		s.Equal(models.NewScopeSet("read"), result.Scopes)
		s.Require().NotNil(created)
		s.Require().NotNil(created.TimeoutDate)
		s.Equal(s.now.Add(time.Hour), *created.TimeoutDate)
		s.Equal(models.NewScopeSet("read"), created.AllowedScopes)
		s.Nil(created.WhitelistedSiteID)
		s.Equal(created.ID, result.Extensions[models.ExtensionApprovedSite])
	})

	s.Run("remember none applies scopes without persisting", func() {
		req := s.newRequest("read")
		req.ApprovalParameters = map[string]string{
			models.ParamUserOAuthApproval: "true",
			"scope_read":                  "read",
			"scope_write":                 "write",
			models.ParamRemember:          models.RememberNone,
		}

		s.mockClients.EXPECT().RegisteredScopes(gomock.Any(), testClientID).Return(models.NewScopeSet("read", "write"), nil)

		result, err := s.service.UpdateAfterApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.True(result.Approved)
		s.Equal(models.NewScopeSet("read", "write"), result.Scopes, "upscoping is permitted")
		s.Empty(result.Extensions)
	})

	s.Run("any other remember value persists without expiry", func() {
		req := s.newRequest("read")
		req.ApprovalParameters = map[string]string{
			models.ParamUserOAuthApproval: "true",
			"scope_read":                  "read",
			models.ParamRemember:          "until-revoked",
		}

		s.mockClients.EXPECT().RegisteredScopes(gomock.Any(), testClientID).Return(models.NewScopeSet("read"), nil)
		s.mockSites.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, site *models.ApprovedSite) error {
			s.Nil(site.TimeoutDate)
			return nil
		})

		result, err := s.service.UpdateAfterApproval(s.ctx, req, s.identity)

		s.Require().NoError(err)
		s.Contains(result.Extensions, models.ExtensionApprovedSite)
	})

	s.Run("denied or absent approval returns the request unchanged", func() {
		for _, params := range []map[string]string{
			{models.ParamUserOAuthApproval: "false", "scope_a": "read", models.ParamRemember: "forever"},
			{"scope_a": "read"},
		} {
			req := s.newRequest("read", "write")
			req.ApprovalParameters = params

			result, err := s.service.UpdateAfterApproval(s.ctx, req, s.identity)

			s.Require().NoError(err)
			s.False(result.Approved)
			s.Equal(models.NewScopeSet("read", "write"), result.Scopes)
			s.Empty(result.Extensions)
		}
	})

	s.Run("unknown client is a not found error and nothing is recorded", func() {
		req := s.newRequest("read")
		req.ApprovalParameters = map[string]string{
			models.ParamUserOAuthApproval: "true",
			"scope_a":                     "read",
			models.ParamRemember:          models.RememberOneHour,
		}
		s.mockClients.EXPECT().RegisteredScopes(gomock.Any(), testClientID).Return(nil, fmt.Errorf("client: %w", sentinel.ErrNotFound))

		_, err := s.service.UpdateAfterApproval(s.ctx, req, s.identity)

		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.False(req.Approved)
		s.Equal(models.NewScopeSet("read"), req.Scopes)
	})

	s.Run("create failure propagates", func() {
		req := s.newRequest("read")
		req.ApprovalParameters = map[string]string{
			models.ParamUserOAuthApproval: "true",
			"scope_a":                     "read",
			models.ParamRemember:          models.RememberOneHour,
		}
		s.mockClients.EXPECT().RegisteredScopes(gomock.Any(), testClientID).Return(models.NewScopeSet("read"), nil)
		s.mockSites.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)

		_, err := s.service.UpdateAfterApproval(s.ctx, req, s.identity)

		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
		s.NotContains(req.Extensions, models.ExtensionApprovedSite)
	})
}
