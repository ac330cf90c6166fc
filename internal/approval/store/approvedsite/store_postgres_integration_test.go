//go:build integration

package approvedsite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"consentd/internal/approval/models"
	"consentd/internal/approval/store/approvedsite"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
	"consentd/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *approvedsite.PostgresStore
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = approvedsite.NewPostgres(s.postgres.DB)
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	s.postgres.Terminate(context.Background())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "approved_sites"))
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	timeout := s.now.Add(time.Hour)
	wsID := id.NewWhitelistedSiteID()
	site := models.NewApprovedSite("client-a", "alice", &timeout, models.NewScopeSet("openid", "profile"), nil, s.now)
	site.WhitelistedSiteID = &wsID

	s.Require().NoError(s.store.Create(ctx, site))

	found, err := s.store.FindByID(ctx, site.ID)
	s.Require().NoError(err)
	s.Equal(site.ID, found.ID)
	s.Equal(site.AllowedScopes, found.AllowedScopes)
	s.Require().NotNil(found.TimeoutDate)
	s.True(timeout.Equal(*found.TimeoutDate))
	s.Require().NotNil(found.WhitelistedSiteID)
	s.Equal(wsID, *found.WhitelistedSiteID)
}

func (s *PostgresStoreSuite) TestListAndSave() {
	ctx := context.Background()
	mine := models.NewApprovedSite("client-a", "alice", nil, models.NewScopeSet("openid"), nil, s.now)
	other := models.NewApprovedSite("client-a", "bob", nil, models.NewScopeSet("openid"), nil, s.now)
	s.Require().NoError(s.store.Create(ctx, mine))
	s.Require().NoError(s.store.Create(ctx, other))

	sites, err := s.store.ListByClientAndUser(ctx, "client-a", "alice")
	s.Require().NoError(err)
	s.Require().Len(sites, 1)
	s.Nil(sites[0].TimeoutDate)

	later := s.now.Add(time.Minute)
	sites[0].Touch(later)
	s.Require().NoError(s.store.Save(ctx, sites[0]))

	found, err := s.store.FindByID(ctx, mine.ID)
	s.Require().NoError(err)
	s.True(later.Equal(found.AccessDate))
}

func (s *PostgresStoreSuite) TestNotFound() {
	ctx := context.Background()
	_, err := s.store.FindByID(ctx, id.NewApprovedSiteID())
	s.ErrorIs(err, sentinel.ErrNotFound)

	missing := models.NewApprovedSite("client-a", "alice", nil, models.NewScopeSet("openid"), nil, s.now)
	s.ErrorIs(s.store.Save(ctx, missing), sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(ctx, missing.ID), sentinel.ErrNotFound)
}
