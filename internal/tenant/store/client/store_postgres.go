package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	approvalmodels "consentd/internal/approval/models"
	"consentd/internal/tenant/models"
	id "consentd/pkg/domain"
	"consentd/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists client registrations in the clients table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (id, oauth_client_id, name, allowed_scopes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID),
		c.OAuthClientID,
		c.Name,
		pq.Array(c.AllowedScopes.Slice()),
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("client_id already registered: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, c *models.Client) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE clients SET name = $2, allowed_scopes = $3, status = $4, updated_at = $5
		WHERE id = $1
	`, uuid.UUID(c.ID), c.Name, pq.Array(c.AllowedScopes.Slice()), string(c.Status), c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

const clientColumns = `id, oauth_client_id, name, allowed_scopes, status, created_at, updated_at`

func (s *PostgresStore) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, uuid.UUID(clientID))
	return scanClient(row)
}

func (s *PostgresStore) FindByOAuthClientID(ctx context.Context, oauthClientID string) (*models.Client, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE oauth_client_id = $1`, oauthClientID)
	return scanClient(row)
}

func scanClient(row *sql.Row) (*models.Client, error) {
	var (
		rawID  uuid.UUID
		scopes []string
		status string
		c      models.Client
	)
	err := row.Scan(&rawID, &c.OAuthClientID, &c.Name, pq.Array(&scopes), &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	c.ID = id.ClientID(rawID)
	c.AllowedScopes = approvalmodels.NewScopeSet(scopes...)
	c.Status = models.ClientStatus(status)
	return &c, nil
}
