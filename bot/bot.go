package bot

import (
	"fmt"

	"croupier/bot/features/balance"
	"croupier/bot/features/games"
	"croupier/bot/features/shop"
	"croupier/domain/interfaces"
	"croupier/domain/services"
	"croupier/gamesession"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration.
type Config struct {
	Token   string
	GuildID string
}

// Bot manages the Discord connection and all feature modules.
type Bot struct {
	config     Config
	session    *discordgo.Session
	uowFactory interfaces.UnitOfWorkFactory

	balance *balance.Feature
	shop    *shop.Feature
	games   *games.Feature

	scheduler *cron.Cron
}

// New creates a bot instance with all features, opens the gateway connection
// and registers slash commands.
func New(config Config, uowFactory interfaces.UnitOfWorkFactory, feePolicy services.FeePolicy, registry *gamesession.Registry) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
	}

	bot.balance = balance.New(uowFactory)
	bot.shop = shop.New(uowFactory)
	bot.games = games.NewFeature(dg, uowFactory, feePolicy, registry)

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	bot.scheduler, err = bot.startScheduler()
	if err != nil {
		dg.Close()
		return nil, fmt.Errorf("error starting scheduler: %w", err)
	}
	log.Info("Background jobs scheduled")

	return bot, nil
}

// Close gracefully shuts down the bot.
func (b *Bot) Close() error {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	return b.session.Close()
}

// handleCommands routes slash commands to the feature handlers.
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.balance.HandleCommand(s, i)
	case "grant":
		b.balance.HandleGrant(s, i)
	case "shop":
		b.shop.HandleCommand(s, i)
	case "game":
		b.games.HandleCommand(s, i)
	}
}
