package services

import (
	"context"
	"fmt"

	"croupier/domain/entities"
	"croupier/domain/interfaces"
)

type ledgerService struct {
	accountRepo interfaces.AccountRepository
	bankRepo    interfaces.BankRepository
	audit       interfaces.AuditRecorder
}

// NewLedgerService creates a new ledger service bound to the repositories of
// a single unit of work.
func NewLedgerService(accountRepo interfaces.AccountRepository, bankRepo interfaces.BankRepository, audit interfaces.AuditRecorder) interfaces.LedgerService {
	return &ledgerService{
		accountRepo: accountRepo,
		bankRepo:    bankRepo,
		audit:       audit,
	}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	balance, err := s.accountRepo.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for user %d: %w", userID, err)
	}
	return balance, nil
}

func (s *ledgerService) CreditUser(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	newBalance, err := s.accountRepo.Credit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit user %d: %w", userID, err)
	}

	s.audit.Record(&entities.LedgerEntry{
		UserID:   userID,
		Amount:   amount,
		Reason:   reason,
		Metadata: meta,
	})

	return newBalance, nil
}

func (s *ledgerService) TryDebitUser(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (*interfaces.DebitResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	ok, balance, err := s.accountRepo.TryDebit(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to debit user %d: %w", userID, err)
	}
	if !ok {
		// Refused debits leave no trace in the ledger.
		return &interfaces.DebitResult{OK: false, Balance: balance}, nil
	}

	s.audit.Record(&entities.LedgerEntry{
		UserID:   userID,
		Amount:   -amount,
		Reason:   reason,
		Metadata: meta,
	})

	return &interfaces.DebitResult{OK: true, Balance: balance}, nil
}

func (s *ledgerService) GetServerBank(ctx context.Context) (int64, error) {
	balance, err := s.bankRepo.GetBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get bank balance: %w", err)
	}
	return balance, nil
}

func (s *ledgerService) AddServerBank(ctx context.Context, delta int64, reason entities.ReasonCode, meta map[string]any) (int64, error) {
	if delta == 0 {
		return s.GetServerBank(ctx)
	}

	newBalance, err := s.bankRepo.Add(ctx, delta)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust bank by %d: %w", delta, err)
	}

	s.audit.Record(&entities.LedgerEntry{
		UserID:   0, // bank-side entry
		Amount:   delta,
		Reason:   reason,
		Metadata: meta,
	})

	return newBalance, nil
}

// BankToUserIfEnough pays the user from the bank only when the bank covers
// the full amount. The bank debit and the user credit run inside the same
// unit of work, so either both commit or neither does.
func (s *ledgerService) BankToUserIfEnough(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("payout amount must be positive, got %d", amount)
	}

	ok, _, err := s.bankRepo.TryDebit(ctx, amount)
	if err != nil {
		return false, fmt.Errorf("failed to debit bank: %w", err)
	}
	if !ok {
		return false, nil
	}

	if _, err := s.accountRepo.Credit(ctx, userID, amount); err != nil {
		return false, fmt.Errorf("failed to credit user %d from bank: %w", userID, err)
	}

	s.audit.Record(&entities.LedgerEntry{
		UserID:   userID,
		Amount:   amount,
		Reason:   reason,
		Metadata: meta,
	})

	return true, nil
}

// UserToBank debits the user and mirrors the amount into the bank. Used for
// stakes and fees so player losses fund the house side.
func (s *ledgerService) UserToBank(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (*interfaces.DebitResult, error) {
	result, err := s.TryDebitUser(ctx, userID, amount, reason, meta)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return result, nil
	}

	if _, err := s.bankRepo.Add(ctx, amount); err != nil {
		return nil, fmt.Errorf("failed to mirror debit of %d into bank: %w", amount, err)
	}

	return result, nil
}
