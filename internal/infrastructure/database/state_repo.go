package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
	"github.com/greentic-ai-org/component-templates/internal/ports/output"
)

var _ output.SessionStateRepository = (*SessionStateRepository)(nil)

// SessionStateRepository persists the state updates a result carries, keyed
// by the full tenant/environment/session scope.
type SessionStateRepository struct {
	pool *pgxpool.Pool
}

func NewSessionStateRepository(pool *pgxpool.Pool) *SessionStateRepository {
	return &SessionStateRepository{pool: pool}
}

// Find returns the stored session state, or nil when the scope has none.
func (r *SessionStateRepository) Find(ctx context.Context, tenant entities.TenantRef, sessionID string) (entities.Document, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT state FROM session_states WHERE tenant_id = $1 AND env_id = $2 AND session_id = $3`,
		tenant.Tenant, tenant.Env, sessionID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session state: %w", err)
	}

	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return doc, nil
}

// Merge folds updates into the stored session document, key by key.
func (r *SessionStateRepository) Merge(ctx context.Context, tenant entities.TenantRef, sessionID string, updates entities.Document) error {
	if len(updates) == 0 {
		return nil
	}
	current, err := r.Find(ctx, tenant, sessionID)
	if err != nil {
		return err
	}
	if current == nil {
		current = entities.Document{}
	}
	for k, v := range updates {
		current[k] = v
	}

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO session_states (tenant_id, env_id, session_id, state, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (tenant_id, env_id, session_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		tenant.Tenant, tenant.Env, sessionID, raw,
	)
	if err != nil {
		return fmt.Errorf("upsert session state: %w", err)
	}
	return nil
}
