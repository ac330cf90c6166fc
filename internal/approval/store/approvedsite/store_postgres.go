package approvedsite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"consentd/internal/approval/models"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

// PostgresStore persists approved sites in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed approved site store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectColumns = `id, client_id, user_id, allowed_scopes, creation_date, access_date, timeout_date, whitelisted_site_id`

func (s *PostgresStore) Create(ctx context.Context, site *models.ApprovedSite) error {
	query := `
		INSERT INTO approved_sites (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(site.ID),
		site.ClientID,
		site.UserID,
		pq.Array(site.AllowedScopes.Slice()),
		site.CreationDate,
		site.AccessDate,
		nullTime(site.TimeoutDate),
		nullWhitelistID(site.WhitelistedSiteID),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("create approved site: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create approved site: %w", err)
	}
	return nil
}

// Save persists the access date. Allowed scopes are immutable and not updated.
func (s *PostgresStore) Save(ctx context.Context, site *models.ApprovedSite) error {
	res, err := s.db.ExecContext(ctx, `UPDATE approved_sites SET access_date = $2 WHERE id = $1`,
		uuid.UUID(site.ID), site.AccessDate)
	if err != nil {
		return fmt.Errorf("save approved site: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save approved site: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("approved site not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, siteID id.ApprovedSiteID) (*models.ApprovedSite, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM approved_sites WHERE id = $1`, uuid.UUID(siteID))
	site, err := scanSite(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("approved site not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find approved site: %w", err)
	}
	return site, nil
}

func (s *PostgresStore) ListByClientAndUser(ctx context.Context, clientID, userID string) ([]*models.ApprovedSite, error) {
	return s.list(ctx, `SELECT `+selectColumns+` FROM approved_sites WHERE client_id = $1 AND user_id = $2`, clientID, userID)
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]*models.ApprovedSite, error) {
	return s.list(ctx, `SELECT `+selectColumns+` FROM approved_sites WHERE user_id = $1 ORDER BY creation_date`, userID)
}

func (s *PostgresStore) Delete(ctx context.Context, siteID id.ApprovedSiteID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM approved_sites WHERE id = $1`, uuid.UUID(siteID))
	if err != nil {
		return fmt.Errorf("delete approved site: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete approved site: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("approved site not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.ApprovedSite, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approved sites: %w", err)
	}
	defer rows.Close()

	var sites []*models.ApprovedSite
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approved site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list approved sites: %w", err)
	}
	return sites, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSite(row scanner) (*models.ApprovedSite, error) {
	var (
		siteID      uuid.UUID
		scopes      []string
		timeout     sql.NullTime
		whitelistID uuid.NullUUID
		site        models.ApprovedSite
	)
	err := row.Scan(
		&siteID,
		&site.ClientID,
		&site.UserID,
		pq.Array(&scopes),
		&site.CreationDate,
		&site.AccessDate,
		&timeout,
		&whitelistID,
	)
	if err != nil {
		return nil, err
	}
	site.ID = id.ApprovedSiteID(siteID)
	site.AllowedScopes = models.NewScopeSet(scopes...)
	if timeout.Valid {
		t := timeout.Time
		site.TimeoutDate = &t
	}
	if whitelistID.Valid {
		ws := id.WhitelistedSiteID(whitelistID.UUID)
		site.WhitelistedSiteID = &ws
	}
	return &site, nil
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}

func nullWhitelistID(value *id.WhitelistedSiteID) uuid.NullUUID {
	if value == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*value), Valid: true}
}
