package shop

import (
	"context"
	"fmt"

	"croupier/bot/common"
	"croupier/domain/entities"
	"croupier/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

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

	items, err := uow.StoreItems().ListEnabled(ctx)
	if err != nil {
		log.Errorf("Error listing store items: %v", err)
		common.RespondWithError(s, i, "Unable to load the shop. Please try again.")
		return
	}

	if len(items) == 0 {
		common.RespondEphemeral(s, i, "The shop is empty.")
		return
	}
	common.RespondWithEmbed(s, i, buildCatalogEmbed(items), false)
}

func (f *Feature) handleBuy(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	var itemID string
	qty := 1
	for _, opt := range opts {
		switch opt.Name {
		case "item":
			itemID = opt.StringValue()
		case "qty":
			qty = int(opt.IntValue())
		}
	}
	if itemID == "" {
		common.RespondWithError(s, i, "Please name an item to buy.")
		return
	}
	if qty < 1 {
		common.RespondWithError(s, i, "Quantity must be at least 1.")
		return
	}

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
	purchases := services.NewPurchaseService(uow.StoreItems(), uow.Inventory(), uow.Purchases(), ledger)

	result, err := purchases.PurchaseItem(ctx, userID, itemID, qty, map[string]any{
		"channel_id": i.ChannelID,
	})
	if err != nil {
		log.Errorf("Error purchasing %s for user %d: %v", itemID, userID, err)
		common.RespondWithError(s, i, "Purchase failed. Please try again.")
		return
	}

	if result.Declined() {
		// Declines roll back; nothing was charged.
		common.RespondWithError(s, i, declineMessage(result.Decline))
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Error committing purchase: %v", err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	common.RespondWithEmbed(s, i, buildReceiptEmbed(result), false)
}

func (f *Feature) handleInventory(s *discordgo.Session, i *discordgo.InteractionCreate) {
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

	holdings, err := uow.Inventory().ListByUser(ctx, userID)
	if err != nil {
		log.Errorf("Error listing inventory for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to load your inventory. Please try again.")
		return
	}

	if len(holdings) == 0 {
		common.RespondEphemeral(s, i, "You don't own anything yet. Try `/shop list`.")
		return
	}
	common.RespondWithEmbed(s, i, buildInventoryEmbed(holdings), true)
}

// declineMessage maps a purchase decline onto a user-facing explanation.
func declineMessage(d *entities.PurchaseDecline) string {
	switch d.Code {
	case entities.DeclineNotFound:
		return "That item does not exist."
	case entities.DeclineDisabled:
		return "That item is not for sale right now."
	case entities.DeclineBadPrice:
		return "That item is misconfigured. Tell an admin."
	case entities.DeclineMaxPurchaseEver:
		return "You have already bought that item as many times as allowed."
	case entities.DeclineCooldown:
		return fmt.Sprintf("Too soon. You can buy that again in %s.", common.FormatDuration(d.CooldownRemaining))
	case entities.DeclineSoldOutDaily:
		return "Sold out for today. Stock returns at the daily reset."
	case entities.DeclineMaxOwned:
		return "You already own the maximum number of those."
	case entities.DeclineInsufficientFunds:
		return fmt.Sprintf("Not enough chips. Your balance is **%s**.", common.FormatChips(d.CurrentBalance))
	default:
		return "Purchase refused."
	}
}
