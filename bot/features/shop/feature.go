package shop

import (
	"croupier/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature exposes the item shop: catalog listing, purchases and inventory.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// New creates the shop feature.
func New(uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
	}
}

// HandleCommand routes /shop subcommands.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "list":
		f.handleList(s, i)
	case "buy":
		f.handleBuy(s, i, options[0].Options)
	case "inventory":
		f.handleInventory(s, i)
	}
}
