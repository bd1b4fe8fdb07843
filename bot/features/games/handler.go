package games

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"croupier/bot/common"
	"croupier/gamesession"
	"croupier/gamesession/games"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ids extracts the acting user, guild and channel from the interaction.
func ids(i *discordgo.InteractionCreate) (userID, guildID, channelID int64, err error) {
	if userID, err = common.ParseID(i.Member.User.ID); err != nil {
		return 0, 0, 0, fmt.Errorf("bad user id %q: %w", i.Member.User.ID, err)
	}
	if guildID, err = common.ParseID(i.GuildID); err != nil {
		return 0, 0, 0, fmt.Errorf("bad guild id %q: %w", i.GuildID, err)
	}
	if channelID, err = common.ParseID(i.ChannelID); err != nil {
		return 0, 0, 0, fmt.Errorf("bad channel id %q: %w", i.ChannelID, err)
	}
	return userID, guildID, channelID, nil
}

// activeSession looks up the live session for the interaction's channel.
func (f *Feature) activeSession(i *discordgo.InteractionCreate) (*gamesession.Session, error) {
	_, _, channelID, err := ids(i)
	if err != nil {
		return nil, err
	}
	sess := f.registry.Get(channelID)
	if sess == nil || sess.Ended() {
		return nil, fmt.Errorf("no active game in this channel")
	}
	return sess, nil
}

func (f *Feature) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	var gameName string
	var scripted bool
	for _, opt := range opts {
		switch opt.Name {
		case "game":
			gameName = opt.StringValue()
		case "practice":
			scripted = opt.BoolValue()
		}
	}

	module, ok := games.ByName(gameName)
	if !ok {
		common.RespondWithError(s, i, fmt.Sprintf("Unknown game. Available: %s.", strings.Join(games.Names(), ", ")))
		return
	}

	userID, guildID, channelID, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	hostName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	sess, err := gamesession.New(f.deps, module, guildID, channelID, userID, hostName, f.deps.HostFeeTier, scripted)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}

	mode := "for chips"
	if scripted {
		mode = "practice allowed"
	}
	common.Respond(s, i, fmt.Sprintf("🎲 %s opened a **%s** table (%s). `/game join` to sit down, `/game stake` to buy in.",
		hostName, sess.Snapshot().Game, mode))
}

func (f *Feature) handleJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	userID, _, _, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	name := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	if err := sess.Join(ctx, userID, name, 0); err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.Respond(s, i, fmt.Sprintf("%s joined the table.", name))
}

func (f *Feature) handleStake(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var amount int64
	for _, opt := range opts {
		if opt.Name == "amount" {
			amount = opt.IntValue()
		}
	}

	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	userID, _, _, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := sess.SetStake(ctx, userID, amount); err != nil {
		var insufficient *gamesession.InsufficientStakeError
		if errors.As(err, &insufficient) {
			common.RespondWithError(s, i, fmt.Sprintf("Not enough chips: the buy-in costs **%s** (bet + house fee), you have **%s**.",
				common.FormatChips(insufficient.Needed), common.FormatChips(insufficient.Balance)))
			return
		}
		common.RespondWithError(s, i, err.Error())
		return
	}

	if amount == 0 {
		common.Respond(s, i, fmt.Sprintf("%s is playing for free.", common.UserMention(userID)))
		return
	}
	common.Respond(s, i, fmt.Sprintf("%s put **%s chips** on the table.", common.UserMention(userID), common.FormatChips(amount)))
}

func (f *Feature) handleBegin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	userID, _, _, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := sess.Start(ctx, userID); err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.RespondEphemeral(s, i, "Game on.")
}

func (f *Feature) handleAct(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	action := gamesession.Action{}
	for _, opt := range opts {
		switch opt.Name {
		case "move":
			action.Type = opt.StringValue()
		case "cards":
			cards, err := parseCards(opt.StringValue())
			if err != nil {
				common.RespondWithError(s, i, err.Error())
				return
			}
			action.Cards = cards
		case "pick":
			action.Option = opt.StringValue()
		}
	}

	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	userID, _, _, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := sess.Action(ctx, userID, action); err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.RespondEphemeral(s, i, "Done.")
}

func (f *Feature) handleLeave(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	userID, _, _, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := sess.Leave(ctx, userID); err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.Respond(s, i, fmt.Sprintf("%s left the table.", common.UserMention(userID)))
}

func (f *Feature) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	userID, _, _, err := ids(i)
	if err != nil {
		log.Errorf("Error parsing interaction ids: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	if err := sess.ForceEnd(ctx, userID); err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.Respond(s, i, "The table was closed.")
}

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sess, err := f.activeSession(i)
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.RespondWithEmbed(s, i, buildSessionEmbed(sess.Snapshot()), true)
}

// parseCards parses a comma- or space-separated list of card ranks, e.g.
// "7,7,0" where 0 is a joker.
func parseCards(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no cards given")
	}

	cards := make([]int, 0, len(fields))
	for _, field := range fields {
		rank, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%q is not a card rank (use 0 for joker, 1-13 for ace through king)", field)
		}
		cards = append(cards, rank)
	}
	return cards, nil
}
