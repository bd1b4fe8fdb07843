package bot

import (
	"fmt"

	"croupier/gamesession/games"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord.
func (b *Bot) registerCommands() error {
	gameChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(games.Names()))
	for _, name := range games.Names() {
		gameChoices = append(gameChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}

	moveChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "claim", Value: "claim"},
		{Name: "challenge", Value: "challenge"},
		{Name: "hit", Value: "hit"},
		{Name: "stand", Value: "stand"},
		{Name: "press", Value: "press"},
		{Name: "cashout", Value: "cashout"},
		{Name: "bet", Value: "bet"},
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current chip balance",
		},
		{
			Name:        "grant",
			Description: "Grant chips to a player (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "User to grant chips to",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of chips to grant",
					Required:    true,
				},
			},
		},
		{
			Name:        "shop",
			Description: "Browse and buy items",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List everything for sale",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "buy",
					Description: "Buy an item",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "Item id to buy",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "qty",
							Description: "How many (default 1)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "inventory",
					Description: "Show what you own",
				},
			},
		},
		{
			Name:        "game",
			Description: "Run a multiplayer game in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Open a table in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "game",
							Description: "Which game to play",
							Required:    true,
							Choices:     gameChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "practice",
							Description: "Allow house bots to fill empty seats (free play only)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Sit down at the open table",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stake",
					Description: "Pay your buy-in (0 for free play)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "Bet amount in chips; the house fee is added on top",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "begin",
					Description: "Start play (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "act",
					Description: "Take your turn",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "move",
							Description: "Your move",
							Required:    true,
							Choices:     moveChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "cards",
							Description: "Cards to play, e.g. 7,7 (0 is a joker)",
							Required:    false,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "pick",
							Description: "Roulette pick: red, black, even, odd or a number",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave the lobby (stake refunded)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "Close the table (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the table state",
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
	}
	return nil
}
