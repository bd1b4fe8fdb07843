// Package games holds the rule modules plugged into the generic session
// engine. Modules own game state and rules; the engine owns turns, timers,
// stakes and settlement.
package games

import (
	"sort"

	"croupier/gamesession"
)

var catalog = map[string]gamesession.Module{
	"liars":     LiarsTable{},
	"blackjack": Blackjack{},
	"streak":    Streak{},
	"roulette":  Roulette{},
}

// ByName returns the rule module for a game name.
func ByName(name string) (gamesession.Module, bool) {
	m, ok := catalog[name]
	return m, ok
}

// Names lists the available games in stable order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
