package shop

import (
	"fmt"
	"strings"

	"croupier/bot/common"
	"croupier/domain/entities"

	"github.com/bwmarrin/discordgo"
)

func buildCatalogEmbed(items []*entities.StoreItem) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("**%s** (`%s`) — %s chips", item.Name, item.ItemID, common.FormatChips(item.Price)))

		var notes []string
		if item.DailyStock > 0 {
			notes = append(notes, fmt.Sprintf("%d/day", item.DailyStock))
		}
		if item.MaxOwned > 0 {
			notes = append(notes, fmt.Sprintf("max %d owned", item.MaxOwned))
		}
		if item.MaxPurchaseEver > 0 {
			notes = append(notes, "one-time")
		}
		if item.CooldownSeconds > 0 {
			notes = append(notes, "cooldown")
		}
		if len(notes) > 0 {
			sb.WriteString(" · " + strings.Join(notes, ", "))
		}
		sb.WriteString("\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "🛒 Shop",
		Description: sb.String(),
		Color:       common.ColorPrimary,
	}
}

func buildReceiptEmbed(result *entities.PurchaseResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🧾 Purchase complete",
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Item", Value: result.Item.Name, Inline: true},
			{Name: "Qty", Value: fmt.Sprintf("%d", result.QtyBought), Inline: true},
			{Name: "Paid", Value: common.FormatChips(result.TotalPrice) + " chips", Inline: true},
			{Name: "Balance", Value: common.FormatChips(result.NewBalance) + " chips", Inline: true},
		},
	}
	if result.Item.TracksUses() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Uses left", Value: fmt.Sprintf("%d", result.UsesRemaining), Inline: true,
		})
	}
	return embed
}

func buildInventoryEmbed(holdings []*entities.InventoryEntry) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, h := range holdings {
		sb.WriteString(fmt.Sprintf("`%s` × %d", h.ItemID, h.Qty))
		if h.UsesRemaining > 0 {
			sb.WriteString(fmt.Sprintf(" (%d uses left)", h.UsesRemaining))
		}
		sb.WriteString("\n")
	}

	return &discordgo.MessageEmbed{
		Title:       "🎒 Inventory",
		Description: sb.String(),
		Color:       common.ColorPrimary,
	}
}
