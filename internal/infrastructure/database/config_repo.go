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

var _ output.ChannelConfigRepository = (*ChannelConfigRepository)(nil)

// ChannelConfigRepository stores one component configuration document per
// channel, as JSONB.
type ChannelConfigRepository struct {
	pool *pgxpool.Pool
}

func NewChannelConfigRepository(pool *pgxpool.Pool) *ChannelConfigRepository {
	return &ChannelConfigRepository{pool: pool}
}

// Find returns the stored configuration, or nil when the channel has none.
func (r *ChannelConfigRepository) Find(ctx context.Context, channelID string) (entities.Document, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT config FROM channel_configs WHERE channel_id = $1`,
		channelID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find channel config: %w", err)
	}

	var doc entities.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode channel config: %w", err)
	}
	return doc, nil
}

func (r *ChannelConfigRepository) Upsert(ctx context.Context, channelID string, config entities.Document) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode channel config: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO channel_configs (channel_id, config, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (channel_id)
		DO UPDATE SET config = EXCLUDED.config, updated_at = now()`,
		channelID, raw,
	)
	if err != nil {
		return fmt.Errorf("upsert channel config: %w", err)
	}
	return nil
}
