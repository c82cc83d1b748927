package discord

import (
	"context"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/greentic-ai-org/component-templates/internal/application"
	"github.com/greentic-ai-org/component-templates/internal/domain/entities"
)

const templateModalID = "template_config_modal"

// HandleTemplateCommand opens the template modal, seeded from the QA spec
// for the mode the channel is in (setup when unconfigured, update otherwise).
func (h *Handler) HandleTemplateCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := string(i.Locale)

	current, err := h.configRepo.Find(ctx, i.ChannelID)
	if err != nil {
		log.Printf("discord: loading config for channel %s: %v", i.ChannelID, err)
	}
	mode := entities.QAModeSetup
	if current != nil {
		mode = entities.QAModeUpdate
	}

	spec := h.component.QASpec(mode)
	if len(spec.Questions) == 0 {
		return
	}
	question := spec.Questions[0]

	value := question.Default
	if templates, ok := current["templates"].(map[string]any); ok {
		if text, ok := templates["text"].(string); ok && text != "" {
			value = text
		}
	}

	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: templateModalID,
			Title:    h.messages.T(locale, "setup_title", nil),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: question.ID,
							Label:    h.messages.T(locale, "setup_label", nil),
							Style:    discordgo.TextInputParagraph,
							Required: question.Required,
							Value:    value,
						},
					},
				},
			},
		},
	})
}

// HandleTemplateModalSubmit merges the submitted answer into the channel
// configuration, validates it against the published schema, and persists it.
func (h *Handler) HandleTemplateModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	locale := string(i.Locale)

	text := extractModalText(i.ModalSubmitData())

	current, err := h.configRepo.Find(ctx, i.ChannelID)
	if err != nil {
		log.Printf("discord: loading config for channel %s: %v", i.ChannelID, err)
		respondEphemeral(s, i.Interaction, h.messages.T(locale, "save_failed", nil))
		return
	}

	var merged entities.Document
	switch {
	case current == nil:
		merged = h.component.ApplyAnswers(entities.QAModeSetup, current, entities.Document{"templates.text": text})
	case strings.TrimSpace(text) == "":
		// An update left blank keeps the existing template.
		merged = h.component.ApplyAnswers(entities.QAModeUpdate, current, nil)
	default:
		merged = h.component.ExtractTemplateTextAnswer(current, text)
	}

	if err := application.ValidateConfig(merged); err != nil {
		respondEphemeral(s, i.Interaction, h.messages.T(locale, "template_invalid", map[string]any{"Error": err.Error()}))
		return
	}
	if err := h.configRepo.Upsert(ctx, i.ChannelID, merged); err != nil {
		log.Printf("discord: saving config for channel %s: %v", i.ChannelID, err)
		respondEphemeral(s, i.Interaction, h.messages.T(locale, "save_failed", nil))
		return
	}
	respondEphemeral(s, i.Interaction, h.messages.T(locale, "template_saved", nil))
}

// extractModalText pulls the single text input out of the modal payload.
func extractModalText(data discordgo.ModalSubmitInteractionData) string {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				return input.Value
			}
		}
	}
	return ""
}
