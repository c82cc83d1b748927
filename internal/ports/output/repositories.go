package output

import (
	"context"

	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

// ChannelConfigRepository stores one component configuration per channel.
type ChannelConfigRepository interface {
	// Find returns the stored configuration, or nil when the channel has none.
	Find(ctx context.Context, channelID string) (entities.Document, error)
	Upsert(ctx context.Context, channelID string, config entities.Document) error
}

// SessionStateRepository persists state updates between invocations of the
// same tenant/environment/session scope.
type SessionStateRepository interface {
	Find(ctx context.Context, tenant entities.TenantRef, sessionID string) (entities.Document, error)
	// Merge folds updates into the stored session document, key by key.
	Merge(ctx context.Context, tenant entities.TenantRef, sessionID string, updates entities.Document) error
}
