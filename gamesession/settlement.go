package gamesession

import (
	"context"

	"croupier/domain/entities"
	"croupier/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// Payout is one participant's share of a settlement.
type Payout struct {
	UserID int64
	Amount int64
	// Short is the unpaid remainder when the bank could not cover a
	// bank-funded payout in full.
	Short int64
}

// Settlement records how a finished session resolved the money.
type Settlement struct {
	Pool     int64
	FeeTotal int64
	Payouts  []Payout
	// BankKept is the pot portion retained by the bank: the whole pool when
	// nobody survived, or the rounding remainder of a split.
	BankKept int64
}

// endLocked settles the session and transitions it to ended. The pot was
// routed into the bank at stake time, so settlement only moves money
// outward: either the module names per-user bank payouts at fixed odds, or
// the survivors split the pool.
func (s *Session) endLocked(ctx context.Context) {
	result := &Settlement{Pool: s.pot}
	for _, p := range s.players {
		result.FeeTotal += p.Fee
	}

	if payer, ok := s.module.(BankPayer); ok {
		s.settleBankPayoutsLocked(ctx, payer, result)
	} else {
		s.settlePoolSplitLocked(ctx, result)
	}

	s.finishLocked(result)
}

// settlePoolSplitLocked divides the pool among the module's surviving real
// players proportionally to their stakes. Scripted players hold no claim.
// With no survivors the pool stays with the bank.
func (s *Session) settlePoolSplitLocked(ctx context.Context, result *Settlement) {
	var survivors []*Player
	var stakeSum int64
	for _, p := range s.module.Survivors(s) {
		if p.Real() && p.Stake > 0 {
			survivors = append(survivors, p)
			stakeSum += p.Stake
		}
	}
	if len(survivors) == 0 || stakeSum == 0 {
		result.BankKept = s.pot
		return
	}

	paid := int64(0)
	for i, p := range survivors {
		share := s.pot * p.Stake / stakeSum
		if i == len(survivors)-1 {
			// Last survivor absorbs the integer-division remainder so the
			// pool pays out exactly.
			share = s.pot - paid
		}
		if share <= 0 {
			continue
		}
		if err := s.payFromBankLocked(ctx, p.UserID, share, entities.ReasonGamePayout, result); err != nil {
			log.Errorf("pool payout of %d to user %d failed in session %s: %v", share, p.UserID, s.ID, err)
			continue
		}
		paid += share
	}
	result.BankKept = s.pot - paid
}

// settleBankPayoutsLocked pays module-declared winnings from the bank at
// fixed odds. Each payout is independent; a bank shortfall degrades that
// payout to whatever the bank holds rather than failing the settlement.
func (s *Session) settleBankPayoutsLocked(ctx context.Context, payer BankPayer, result *Settlement) {
	for _, p := range s.players {
		amount, ok := payer.BankPayouts(s)[p.UserID]
		if !ok || amount <= 0 || !p.Real() {
			continue
		}
		if err := s.payFromBankLocked(ctx, p.UserID, amount, entities.ReasonGameWin, result); err != nil {
			log.Errorf("bank payout of %d to user %d failed in session %s: %v", amount, p.UserID, s.ID, err)
		}
	}
}

// payFromBankLocked moves amount from the bank to the user in one ledger
// transaction and appends the payout to the settlement. When the bank holds
// less than amount, it pays what it has and records the shortfall.
func (s *Session) payFromBankLocked(ctx context.Context, userID, amount int64, reason entities.ReasonCode, result *Settlement) error {
	payout := Payout{UserID: userID}
	err := s.withLedger(ctx, func(ctx context.Context, ledger interfaces.LedgerService) error {
		meta := map[string]any{
			"session_id": s.ID,
			"game":       s.module.Name(),
		}
		ok, err := ledger.BankToUserIfEnough(ctx, userID, amount, reason, meta)
		if err != nil {
			return err
		}
		if ok {
			payout.Amount = amount
			return nil
		}

		// Degraded payout: drain what the bank actually holds.
		held, err := ledger.GetServerBank(ctx)
		if err != nil {
			return err
		}
		if held > 0 {
			meta["shortfall"] = amount - held
			if _, err := ledger.BankToUserIfEnough(ctx, userID, held, reason, meta); err != nil {
				return err
			}
			payout.Amount = held
		}
		payout.Short = amount - payout.Amount
		return nil
	})
	if err != nil {
		return err
	}
	result.Payouts = append(result.Payouts, payout)
	return nil
}
