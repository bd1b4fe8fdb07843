package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeePolicy(t *testing.T) {
	tests := []struct {
		name     string
		mode     CombineMode
		expected CombineMode
		wantErr  bool
	}{
		{name: "max", mode: CombineModeMax, expected: CombineModeMax},
		{name: "mean", mode: CombineModeMean, expected: CombineModeMean},
		{name: "product", mode: CombineModeProduct, expected: CombineModeProduct},
		{name: "empty defaults to max", mode: "", expected: CombineModeMax},
		{name: "unknown rejected", mode: "median", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := NewFeePolicy(tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, policy.Mode)
		})
	}
}

func TestEffectivePct(t *testing.T) {
	tests := []struct {
		name       string
		mode       CombineMode
		hostTier   int
		playerTier int
		expected   float64
	}{
		{name: "max takes larger", mode: CombineModeMax, hostTier: 1, playerTier: 3, expected: 0.10},
		{name: "max both zero", mode: CombineModeMax, hostTier: 0, playerTier: 0, expected: 0},
		{name: "mean averages", mode: CombineModeMean, hostTier: 0, playerTier: 2, expected: 0.025},
		{name: "product combines complements", mode: CombineModeProduct, hostTier: 1, playerTier: 1, expected: 1 - 0.98*0.98},
		{name: "negative tier clamps low", mode: CombineModeMax, hostTier: -3, playerTier: 0, expected: 0},
		{name: "huge tier clamps high", mode: CombineModeMax, hostTier: 99, playerTier: 0, expected: 0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := FeePolicy{Mode: tt.mode}
			assert.InDelta(t, tt.expected, policy.EffectivePct(tt.hostTier, tt.playerTier), 1e-9)
		})
	}
}

// The blend must be a pure, order-independent function of the two tiers.
func TestEffectivePctOrderIndependent(t *testing.T) {
	for _, mode := range []CombineMode{CombineModeMax, CombineModeMean, CombineModeProduct} {
		policy := FeePolicy{Mode: mode}
		for host := 0; host <= 3; host++ {
			for player := 0; player <= 3; player++ {
				assert.Equal(t, policy.EffectivePct(host, player), policy.EffectivePct(player, host),
					"mode %s tiers (%d,%d)", mode, host, player)
			}
		}
	}
}

func TestSplitStake(t *testing.T) {
	tests := []struct {
		name        string
		bet         int64
		hostTier    int
		playerTier  int
		expectedFee int64
	}{
		{name: "zero tiers are fee free", bet: 1000, hostTier: 0, playerTier: 0, expectedFee: 0},
		{name: "tier one takes two percent", bet: 1000, hostTier: 1, playerTier: 0, expectedFee: 20},
		{name: "fee floors down", bet: 99, hostTier: 1, playerTier: 0, expectedFee: 1},
		{name: "tiny bet at low tier is free", bet: 49, hostTier: 1, playerTier: 0, expectedFee: 0},
		{name: "max picks the player tier", bet: 1000, hostTier: 1, playerTier: 3, expectedFee: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := FeePolicy{Mode: CombineModeMax}
			split := policy.SplitStake(tt.bet, tt.hostTier, tt.playerTier)
			assert.Equal(t, tt.bet, split.Bet)
			assert.Equal(t, tt.expectedFee, split.Fee)
			assert.Equal(t, tt.bet+tt.expectedFee, split.TotalCharge)
		})
	}
}
