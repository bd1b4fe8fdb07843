package services

import (
	"fmt"
	"math"
)

// CombineMode selects how the host-level and player-level fee tiers blend
// into one effective percentage. The blend is a policy parameter; max is the
// default.
type CombineMode string

const (
	CombineModeMax     CombineMode = "max"
	CombineModeMean    CombineMode = "mean"
	CombineModeProduct CombineMode = "product"
)

// feeTierPcts maps a risk tier to its fee percentage. Tier 0 is fee-free.
var feeTierPcts = []float64{0, 0.02, 0.05, 0.10}

// TierPct returns the fee percentage for a risk tier, clamping out-of-range
// tiers to the nearest defined one.
func TierPct(tier int) float64 {
	if tier < 0 {
		return feeTierPcts[0]
	}
	if tier >= len(feeTierPcts) {
		return feeTierPcts[len(feeTierPcts)-1]
	}
	return feeTierPcts[tier]
}

// StakeSplit is the decomposition of a wager into its bet and house-fee
// components. TotalCharge is what the ledger debits in one operation.
type StakeSplit struct {
	Bet         int64
	Fee         int64
	TotalCharge int64
}

// FeePolicy computes house fees from two independently tracked risk tiers.
// It is a pure function of its inputs.
type FeePolicy struct {
	Mode CombineMode
}

// NewFeePolicy creates a fee policy, rejecting unknown combine modes.
func NewFeePolicy(mode CombineMode) (FeePolicy, error) {
	switch mode {
	case CombineModeMax, CombineModeMean, CombineModeProduct:
		return FeePolicy{Mode: mode}, nil
	case "":
		return FeePolicy{Mode: CombineModeMax}, nil
	default:
		return FeePolicy{}, fmt.Errorf("unknown fee combine mode %q", mode)
	}
}

// EffectivePct combines the host tier and player tier percentages. The result
// is order-independent and never negative.
func (p FeePolicy) EffectivePct(hostTier, playerTier int) float64 {
	host := TierPct(hostTier)
	player := TierPct(playerTier)

	var pct float64
	switch p.Mode {
	case CombineModeMean:
		pct = (host + player) / 2
	case CombineModeProduct:
		// Complement product: combined risk of two independent tiers.
		pct = 1 - (1-host)*(1-player)
	default:
		pct = math.Max(host, player)
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// SplitStake splits a requested bet into bet + fee. The fee is floored, so a
// small bet at a low tier can be fee-free.
func (p FeePolicy) SplitStake(bet int64, hostTier, playerTier int) StakeSplit {
	fee := int64(math.Floor(float64(bet) * p.EffectivePct(hostTier, playerTier)))
	return StakeSplit{
		Bet:         bet,
		Fee:         fee,
		TotalCharge: bet + fee,
	}
}
