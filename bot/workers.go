package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"croupier/config"
	"croupier/domain/services"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// startScheduler wires the recurring background jobs: an idle-session sweep
// every minute, and a bank snapshot at the daily shop-stock boundary.
func (b *Bot) startScheduler() (*cron.Cron, error) {
	cfg := config.Get()
	scheduler := cron.New()

	maxIdle := time.Duration(cfg.IdleSessionMinutes) * time.Minute
	if _, err := scheduler.AddFunc("@every 1m", func() {
		b.sweepIdleSessions(maxIdle)
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule idle sweep: %w", err)
	}

	dailySpec := fmt.Sprintf("0 %d * * *", cfg.DailyResetHour)
	if _, err := scheduler.AddFunc(dailySpec, b.logDailyBankSnapshot); err != nil {
		return nil, fmt.Errorf("failed to schedule daily snapshot: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

// sweepIdleSessions force-ends sessions nobody has touched for maxIdle, so a
// stuck lobby cannot hold its channel forever. Lobby stakes are refunded by
// the force-end path.
func (b *Bot) sweepIdleSessions(maxIdle time.Duration) {
	ctx := context.Background()

	for _, sess := range b.games.Registry().Idle(maxIdle) {
		log.Infof("Force-ending idle session %s in channel %d", sess.ID, sess.ChannelID)
		if err := sess.ForceEnd(ctx, 0); err != nil {
			log.Errorf("Error force-ending idle session %s: %v", sess.ID, err)
		}
	}
}

// logDailyBankSnapshot records each guild's bank balance at the daily
// boundary, when shop stock rolls over.
func (b *Bot) logDailyBankSnapshot() {
	ctx := context.Background()

	for _, guild := range b.session.State.Guilds {
		guildID, err := strconv.ParseInt(guild.ID, 10, 64)
		if err != nil {
			log.Errorf("Error parsing guild ID %s: %v", guild.ID, err)
			continue
		}

		uow := b.uowFactory.CreateForGuild(guildID)
		if err := uow.Begin(ctx); err != nil {
			log.Errorf("Error beginning transaction for guild %d snapshot: %v", guildID, err)
			continue
		}

		ledger := services.NewLedgerService(uow.Accounts(), uow.Bank(), uow.Audit())
		bank, err := ledger.GetServerBank(ctx)
		uow.Rollback()

		if err != nil {
			log.Errorf("Error reading bank for guild %d: %v", guildID, err)
			continue
		}
		log.WithFields(log.Fields{
			"guild_id": guildID,
			"bank":     bank,
		}).Info("Daily boundary bank snapshot")
	}
}
