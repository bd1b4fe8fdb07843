package games

import (
	"time"

	"croupier/config"
	"croupier/domain/interfaces"
	"croupier/domain/services"
	"croupier/gamesession"

	"github.com/bwmarrin/discordgo"
)

// Feature drives multiplayer game sessions from slash commands. One session
// per channel; the registry enforces that.
type Feature struct {
	session  *discordgo.Session
	registry *gamesession.Registry
	deps     gamesession.Deps
}

// NewFeature creates the games feature and wires the session engine's
// collaborators from config.
func NewFeature(session *discordgo.Session, uowFactory interfaces.UnitOfWorkFactory, feePolicy services.FeePolicy, registry *gamesession.Registry) *Feature {
	cfg := config.Get()
	f := &Feature{
		session:  session,
		registry: registry,
	}
	f.deps = gamesession.Deps{
		UowFactory:    uowFactory,
		FeePolicy:     feePolicy,
		HostFeeTier:   cfg.HostFeeTier,
		Registry:      registry,
		Renderer:      &channelRenderer{session: session},
		TurnTimeout:   time.Duration(cfg.TurnTimeoutSeconds) * time.Second,
		ScriptedDelay: time.Duration(cfg.ScriptedActDelayMS) * time.Millisecond,
	}
	return f
}

// Registry returns the channel-to-session registry, for the idle sweeper.
func (f *Feature) Registry() *gamesession.Registry {
	return f.registry
}

// HandleCommand routes /game subcommands.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "start":
		f.handleStart(s, i, options[0].Options)
	case "join":
		f.handleJoin(s, i)
	case "stake":
		f.handleStake(s, i, options[0].Options)
	case "begin":
		f.handleBegin(s, i)
	case "act":
		f.handleAct(s, i, options[0].Options)
	case "leave":
		f.handleLeave(s, i)
	case "end":
		f.handleEnd(s, i)
	case "status":
		f.handleStatus(s, i)
	}
}
