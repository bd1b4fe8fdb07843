package games

import (
	"fmt"
	"sort"
	"strings"

	"croupier/bot/common"
	"croupier/gamesession"

	"github.com/bwmarrin/discordgo"
)

// channelRenderer posts a session snapshot into the session's channel. The
// engine swallows render errors, so a Discord hiccup never corrupts play.
type channelRenderer struct {
	session *discordgo.Session
}

func (r *channelRenderer) Render(snapshot gamesession.Snapshot) error {
	_, err := r.session.ChannelMessageSendEmbed(common.FormatID(snapshot.ChannelID), buildSessionEmbed(snapshot))
	if err != nil {
		return fmt.Errorf("failed to post session update: %w", err)
	}
	return nil
}

func buildSessionEmbed(snapshot gamesession.Snapshot) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("🎲 %s — %s", snapshot.Game, snapshot.State),
		Color: stateColor(snapshot.State),
	}

	var roster strings.Builder
	for _, p := range snapshot.Players {
		roster.WriteString(playerLine(snapshot, p))
		roster.WriteString("\n")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name: "Players", Value: roster.String(),
	})

	if snapshot.Pot > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Pot", Value: common.FormatChips(snapshot.Pot) + " chips", Inline: true,
		})
	}
	if snapshot.CurrentTurn != 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Turn", Value: common.UserMention(snapshot.CurrentTurn), Inline: true,
		})
	}
	if len(snapshot.Info) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Table", Value: formatInfo(snapshot.Info),
		})
	}
	if len(snapshot.LastAction) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Last action", Value: formatInfo(snapshot.LastAction),
		})
	}
	if snapshot.Result != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Result", Value: formatSettlement(snapshot.Result),
		})
	}
	return embed
}

func playerLine(snapshot gamesession.Snapshot, p gamesession.PlayerView) string {
	var sb strings.Builder
	if p.Scripted {
		sb.WriteString("🤖 " + p.Name)
	} else {
		sb.WriteString(common.UserMention(p.UserID))
	}

	switch snapshot.State {
	case gamesession.StateLobby:
		if p.Paid {
			if p.Stake > 0 {
				sb.WriteString(fmt.Sprintf(" — staked %s", common.FormatChips(p.Stake)))
			} else {
				sb.WriteString(" — free play")
			}
		} else {
			sb.WriteString(" — waiting on stake")
		}
	default:
		if !p.Alive {
			sb.WriteString(" — ☠️ out")
		} else if p.RiskPct > 0 {
			sb.WriteString(fmt.Sprintf(" — risk %s", common.FormatPct(p.RiskPct)))
		}
	}
	return sb.String()
}

func formatInfo(info map[string]any) string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", strings.ReplaceAll(k, "_", " "), info[k]))
	}
	return strings.Join(parts, " · ")
}

func formatSettlement(result *gamesession.Settlement) string {
	if len(result.Payouts) == 0 {
		if result.BankKept > 0 {
			return fmt.Sprintf("Nobody survived. The house keeps **%s chips**.", common.FormatChips(result.BankKept))
		}
		return "The table closed with nothing to settle."
	}

	var sb strings.Builder
	for _, payout := range result.Payouts {
		sb.WriteString(fmt.Sprintf("%s wins **%s chips**", common.UserMention(payout.UserID), common.FormatChips(payout.Amount)))
		if payout.Short > 0 {
			sb.WriteString(fmt.Sprintf(" (bank fell short by %s)", common.FormatChips(payout.Short)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func stateColor(state gamesession.State) int {
	switch state {
	case gamesession.StatePlaying:
		return common.ColorWarning
	case gamesession.StateEnded:
		return common.ColorSuccess
	default:
		return common.ColorPrimary
	}
}
