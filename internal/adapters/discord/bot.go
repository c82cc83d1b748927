package discord

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/greentic-ai-org/component-templates/internal/application"
	"github.com/greentic-ai-org/component-templates/internal/config"
	"github.com/greentic-ai-org/component-templates/internal/infrastructure/i18n"
	"github.com/greentic-ai-org/component-templates/internal/ports/output"
)

// Bot is the Discord host adapter: channel messages become component
// invocations, and the /template command drives the setup flow.
type Bot struct {
	session *discordgo.Session
	config  *config.Config
	handler *Handler
}

// NewBot creates a Bot and wires ports: translator -> component service -> handler.
func NewBot(cfg *config.Config, configRepo output.ChannelConfigRepository, stateRepo output.SessionStateRepository) (*Bot, error) {
	component := application.NewComponentService(i18n.NewTranslator())

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents |= discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	handler := NewHandler(component, configRepo, stateRepo, newHostMessages(cfg.HostLocale), cfg.Environment)

	bot := &Bot{
		session: s,
		config:  cfg,
		handler: handler,
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handler.HandleMessage)
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name == "template" {
			b.handler.HandleTemplateCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == templateModalID {
			b.handler.HandleTemplateModalSubmit(s, i)
		}
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer b.session.Close()

	commands := []*discordgo.ApplicationCommand{
		{Name: "template", Description: "Configure the reply template for this channel"},
	}
	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			log.Printf("discord: registering command %s: %v", cmd.Name, err)
		}
	}

	log.Println("discord: bot online, CTRL+C to quit")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	return nil
}
