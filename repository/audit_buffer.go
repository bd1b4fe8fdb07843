package repository

import (
	"context"

	"croupier/database"
	"croupier/domain/entities"

	log "github.com/sirupsen/logrus"
)

// auditBuffer collects ledger entries during a transaction. The unit of work
// flushes it best-effort after a successful commit; a flush failure is logged
// and swallowed so it can never undo the committed balance mutation.
type auditBuffer struct {
	guildID int64
	entries []*entities.LedgerEntry
}

func newAuditBuffer(guildID int64) *auditBuffer {
	return &auditBuffer{guildID: guildID}
}

// Record buffers an audit entry for the current transaction
func (b *auditBuffer) Record(entry *entities.LedgerEntry) {
	entry.GuildID = b.guildID
	b.entries = append(b.entries, entry)
}

// flush writes the buffered entries through the pool, outside the committed
// transaction
func (b *auditBuffer) flush(ctx context.Context, db *database.DB) {
	if len(b.entries) == 0 {
		return
	}

	ledgerRepo := NewLedgerRepository(db, b.guildID)
	for _, entry := range b.entries {
		if err := ledgerRepo.Insert(ctx, entry); err != nil {
			log.WithFields(log.Fields{
				"guild_id": b.guildID,
				"user_id":  entry.UserID,
				"reason":   entry.Reason,
			}).Warnf("failed to write audit ledger entry: %v", err)
		}
	}
	b.entries = nil
}

// discard drops the buffered entries
func (b *auditBuffer) discard() {
	b.entries = nil
}
