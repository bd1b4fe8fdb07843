package balance

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/config"
	"croupier/domain/entities"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.ParseID(i.Member.User.ID)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		log.Errorf("Error parsing guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.Accounts(), uow.Bank(), uow.Audit())

	balance, err := ledger.GetBalance(ctx, userID)
	if err != nil {
		log.Errorf("Error getting balance for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	// First-time players get a seed grant. An account with a zero balance
	// and no ledger history has never been touched.
	if balance == 0 {
		entries, err := uow.Ledger().GetByUser(ctx, userID, 1)
		if err != nil {
			log.Errorf("Error reading ledger for user %d: %v", userID, err)
			common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
			return
		}
		if len(entries) == 0 {
			seed := config.Get().StartingBalance
			balance, err = ledger.CreditUser(ctx, userID, seed, entities.ReasonSeed, nil)
			if err != nil {
				log.Errorf("Error seeding user %d: %v", userID, err)
				common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
				return
			}
		}
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	common.RespondEphemeral(s, i, fmt.Sprintf("%s, your current balance: **%s chips**", displayName, common.FormatChips(balance)))
}

func (f *Feature) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "Only administrators can grant chips.")
		return
	}

	var amount int64
	var recipient *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipient = opt.UserValue(s)
		}
	}
	if amount <= 0 {
		common.RespondWithError(s, i, "Amount must be positive.")
		return
	}
	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}

	recipientID, err := common.ParseID(recipient.ID)
	if err != nil {
		log.Errorf("Error parsing recipient Discord ID %s: %v", recipient.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		log.Errorf("Error parsing guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Error beginning transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}
	defer uow.Rollback()

	ledger := services.NewLedgerService(uow.Accounts(), uow.Bank(), uow.Audit())
	newBalance, err := ledger.CreditUser(ctx, recipientID, amount, entities.ReasonAdminGrant, map[string]any{
		"granted_by": i.Member.User.ID,
	})
	if err != nil {
		log.Errorf("Error granting %d chips to user %d: %v", amount, recipientID, err)
		common.RespondWithError(s, i, "Grant failed. Please try again.")
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing transaction: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	common.Respond(s, i, fmt.Sprintf("✅ granted **%s chips** to %s (new balance: %s)",
		common.FormatChips(amount), common.UserMention(recipientID), common.FormatChips(newBalance)))
}
