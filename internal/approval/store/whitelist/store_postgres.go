package whitelist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"consentd/internal/approval/models"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

// PostgresStore persists whitelist entries; client_id is unique.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByClientID(ctx context.Context, clientID string) (*models.WhitelistedSite, error) {
	var (
		wsID    uuid.UUID
		scopes  []string
		creator sql.NullString
		ws      models.WhitelistedSite
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, client_id, allowed_scopes, creator_user_id, created_at
		FROM whitelisted_sites
		WHERE client_id = $1
	`, clientID).Scan(&wsID, &ws.ClientID, pq.Array(&scopes), &creator, &ws.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find whitelist entry: %w", err)
	}
	ws.ID = id.WhitelistedSiteID(wsID)
	ws.AllowedScopes = models.NewScopeSet(scopes...)
	ws.CreatorUserID = creator.String
	return &ws, nil
}

// Put creates or replaces the entry for ws.ClientID. The existing row keeps its
// ID so approved sites that reference it stay linked.
func (s *PostgresStore) Put(ctx context.Context, ws *models.WhitelistedSite) error {
	query := `
		INSERT INTO whitelisted_sites (id, client_id, allowed_scopes, creator_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (client_id) DO UPDATE SET
			allowed_scopes = EXCLUDED.allowed_scopes,
			creator_user_id = EXCLUDED.creator_user_id
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(ws.ID),
		ws.ClientID,
		pq.Array(ws.AllowedScopes.Slice()),
		sql.NullString{String: ws.CreatorUserID, Valid: ws.CreatorUserID != ""},
		ws.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("put whitelist entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, clientID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM whitelisted_sites WHERE client_id = $1`, clientID)
	if err != nil {
		return fmt.Errorf("delete whitelist entry: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete whitelist entry: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("whitelist entry not found: %w", sentinel.ErrNotFound)
	}
	return nil
}
