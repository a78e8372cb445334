package staking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
)

func TestRewardPerEpoch(t *testing.T) {
	r, err := rewardPerEpoch(1_000_000, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), r)

	// Floor at the division: 999 * 100 / 10000 = 9.99 -> 9
	r, err = rewardPerEpoch(999, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), r)

	// The widened intermediate keeps max-u64 stakes in range.
	r, err = rewardPerEpoch(math.MaxUint64, 10000)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), r)
}

func TestClaimRewardsDeterminism(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 1_000_000, t0))

	// 1_000_000 staked at 1% per epoch for exactly 2 epochs.
	claimed, err := f.staking.ClaimRewards(alice, t0+2*epochDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000), claimed)

	assert.Equal(t, uint64(10_000_000-1_000_000+20_000), f.vault.Balance(alice))
	assert.Equal(t, uint64(1_000_000-20_000), f.vault.Balance(ledger.RewardVaultAccount))

	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stake.AccumulatedRewards)
	assert.Equal(t, t0+2*epochDuration, stake.LastRewardClaim)
}

func TestClaimRewardsPartialEpochFloored(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 1_000_000, t0))

	// 1.9 epochs elapsed settles only 1 epoch.
	claimed, err := f.staking.ClaimRewards(alice, t0+2*epochDuration-1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), claimed)
}

func TestClaimTwiceWithinEpoch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 1_000_000, t0))

	claimed, err := f.staking.ClaimRewards(alice, t0+epochDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), claimed)

	_, err = f.staking.ClaimRewards(alice, t0+epochDuration+100)
	assert.ErrorIs(t, err, core.ErrNoRewardsAvailable)

	// The failed claim changes nothing.
	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Equal(t, t0+epochDuration, stake.LastRewardClaim)
	assert.Equal(t, uint64(0), stake.AccumulatedRewards)
}

func TestClaimBeforeAnyEpoch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 1_000_000, t0))

	_, err := f.staking.ClaimRewards(alice, t0+epochDuration-1)
	assert.ErrorIs(t, err, core.ErrNoRewardsAvailable)
}

func TestClaimWithoutStakeAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.staking.ClaimRewards(alice, t0+epochDuration)
	assert.ErrorIs(t, err, core.ErrStakeAccountNotFound)
}

func TestClaimPoolDepletedRollsBack(t *testing.T) {
	f := newFixture(t)
	// Large stake so one epoch of rewards exceeds the pool.
	require.NoError(t, f.staking.Stake(alice, owner, 1, 10_000_000, t0))
	// 10_000_000 * 1% = 100_000 per epoch; drain the pool below that.
	require.NoError(t, f.vault.Transfer(ledger.RewardVaultAccount, "sink", 950_000))

	_, err := f.staking.ClaimRewards(alice, t0+epochDuration)
	require.ErrorIs(t, err, core.ErrNoRewardsAvailable)

	// The debit rolled back; once the pool is refunded the claim succeeds in full.
	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Equal(t, t0, stake.LastRewardClaim)
	assert.Equal(t, uint64(0), stake.AccumulatedRewards)

	require.NoError(t, f.vault.Deposit(ledger.RewardVaultAccount, 1_000_000))
	claimed, err := f.staking.ClaimRewards(alice, t0+epochDuration)
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), claimed)
}

func TestClaimZeroRateYieldsNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 1_000_000, t0))

	require.NoError(t, f.state.Update(func(tx *ledger.Tx) error {
		c, err := tx.Config()
		if err != nil {
			return err
		}
		c.RewardRateBps = 0
		return nil
	}))

	_, err := f.staking.ClaimRewards(alice, t0+epochDuration)
	assert.ErrorIs(t, err, core.ErrNoRewardsAvailable)
}
