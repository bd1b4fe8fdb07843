package balance

import (
	"croupier/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature answers balance queries and admin grants.
type Feature struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// New creates the balance feature.
func New(uowFactory interfaces.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
	}
}

// HandleCommand routes the /balance command.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}

// HandleGrant routes the /grant command.
func (f *Feature) HandleGrant(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleGrant(s, i)
}
