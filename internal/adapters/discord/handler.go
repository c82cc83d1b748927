package discord

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
	"github.com/greentic-ai-org/component-templates/internal/ports/input"
	"github.com/greentic-ai-org/component-templates/internal/ports/output"
)

// Handler turns Discord traffic into component invocations.
type Handler struct {
	component   input.ComponentUseCase
	configRepo  output.ChannelConfigRepository
	stateRepo   output.SessionStateRepository
	messages    *hostMessages
	environment string
}

func NewHandler(
	component input.ComponentUseCase,
	configRepo output.ChannelConfigRepository,
	stateRepo output.SessionStateRepository,
	messages *hostMessages,
	environment string,
) *Handler {
	return &Handler{
		component:   component,
		configRepo:  configRepo,
		stateRepo:   stateRepo,
		messages:    messages,
		environment: environment,
	}
}

// HandleMessage renders the channel's template against an incoming message
// and posts the result back. Unconfigured channels stay silent.
func (h *Handler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	ctx := context.Background()

	inv, configDoc, ok := h.prepareInvocation(ctx, s, m)
	if !ok {
		return
	}

	result := h.component.Run(entities.SupportedOperation, inv)
	if result.Error != nil {
		// Component errors arrive already localized; relay the message as-is.
		if _, err := s.ChannelMessageSend(m.ChannelID, "⚠️ "+result.Error.Message); err != nil {
			log.Printf("discord: sending error reply: %v", err)
		}
		return
	}

	if len(result.StateUpdates) > 0 {
		if err := h.stateRepo.Merge(ctx, inv.Msg.Tenant, inv.Msg.SessionID, result.StateUpdates); err != nil {
			log.Printf("discord: persisting state updates: %v", err)
		}
	}

	reply := replyText(result.Payload, configDoc)
	if reply == "" {
		return
	}
	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		log.Printf("discord: sending reply: %v", err)
	}
}

// prepareInvocation loads the channel's configuration and stored session
// state and builds the invocation. ok is false when the channel has no
// configuration or it could not be loaded.
func (h *Handler) prepareInvocation(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) (entities.Invocation, entities.Document, bool) {
	configDoc, err := h.configRepo.Find(ctx, m.ChannelID)
	if err != nil {
		log.Printf("discord: loading config for channel %s: %v", m.ChannelID, err)
		return entities.Invocation{}, nil, false
	}
	if configDoc == nil {
		return entities.Invocation{}, nil, false
	}

	tenant := m.GuildID
	if tenant == "" {
		// Direct messages have no guild; scope on the author instead.
		tenant = m.Author.ID
	}
	tenantRef := entities.TenantRef{Tenant: tenant, Env: h.environment}

	state, err := h.stateRepo.Find(ctx, tenantRef, m.ChannelID)
	if err != nil {
		// A stale or missing state document must not block the reply.
		log.Printf("discord: loading state for channel %s: %v", m.ChannelID, err)
		state = nil
	}

	return h.buildInvocation(configDoc, m, tenantRef, state, messageLocale(s, m)), configDoc, true
}

// buildInvocation wraps a Discord message into the component envelope: the
// guild is the tenant, the channel is the session, and the guild's preferred
// locale travels as envelope metadata.
func (h *Handler) buildInvocation(configDoc entities.Document, m *discordgo.MessageCreate, tenant entities.TenantRef, state entities.Document, locale string) entities.Invocation {
	raw, err := json.Marshal(configDoc)
	if err != nil {
		raw = []byte("{}")
	}
	metadata := map[string]string{}
	if locale != "" {
		metadata["locale"] = locale
	}
	return entities.Invocation{
		Config: raw,
		Msg: entities.Envelope{
			ID:        uuid.NewString(),
			Tenant:    tenant,
			Channel:   "discord",
			SessionID: m.ChannelID,
			From:      m.Author.ID,
			Text:      m.Content,
			Metadata:  metadata,
		},
		Payload: entities.Document{"text": m.Content},
		State:   state,
	}
}

// messageLocale reports the guild's preferred locale for a message, empty
// when the guild is unknown to the session state cache (direct messages
// included).
func messageLocale(s *discordgo.Session, m *discordgo.MessageCreate) string {
	if s == nil || s.State == nil || m.GuildID == "" {
		return ""
	}
	guild, err := s.State.Guild(m.GuildID)
	if err != nil {
		return ""
	}
	return guild.PreferredLocale
}

// replyText digs the rendered string back out of the shaped payload, using
// the channel's output_path (or the default) as the path to walk.
func replyText(payload any, configDoc entities.Document) string {
	if text, ok := payload.(string); ok {
		return text
	}
	path := entities.DefaultOutputPath
	if templates, ok := configDoc["templates"].(map[string]any); ok {
		if p, ok := templates["output_path"].(string); ok && p != "" {
			path = p
		}
	}
	current := payload
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			continue
		}
		doc, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = doc[segment]
	}
	text, _ := current.(string)
	return text
}
