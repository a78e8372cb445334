package staking

import (
	"errors"
	"log"

	"github.com/holiman/uint256"

	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
)

const bpsDenominator = 10000

// rewardPerEpoch computes floor(staked * rateBps / 10000) through a widened
// intermediate, so the multiplication cannot overflow before the division
// narrows the result back to uint64.
func rewardPerEpoch(staked, rateBps uint64) (uint64, error) {
	wide := new(uint256.Int).SetUint64(staked)
	wide.Mul(wide, new(uint256.Int).SetUint64(rateBps))
	wide.Div(wide, uint256.NewInt(bpsDenominator))
	if !wide.IsUint64() {
		return 0, core.ErrArithmetic
	}
	return wide.Uint64(), nil
}

// ClaimRewards settles all epochs elapsed since the user's last claim into a
// payout from the reward vault. Reward math is integer basis-point arithmetic
// rounding down; residual fractions stay with the platform. The debit of the
// claimable counter and the external payout are atomic: a failed payout rolls
// the whole claim back.
func (s *Service) ClaimRewards(user core.Identity, now int64) (uint64, error) {
	if now <= 0 {
		return 0, core.ErrInvalidTimestamp
	}

	var claimed uint64
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		stake, err := tx.Stake(user)
		if err != nil {
			return err
		}

		elapsed := now - stake.LastRewardClaim
		elapsedEpochs := elapsed / cfg.EpochDuration
		if elapsedEpochs <= 0 {
			return core.ErrNoRewardsAvailable
		}

		perEpoch, err := rewardPerEpoch(stake.StakedAmount, cfg.RewardRateBps)
		if err != nil {
			return err
		}
		totalReward, err := core.CheckedMul(perEpoch, uint64(elapsedEpochs))
		if err != nil {
			return err
		}

		stake.AccumulatedRewards, err = core.CheckedAdd(stake.AccumulatedRewards, totalReward)
		if err != nil {
			return err
		}
		rewardToClaim := stake.AccumulatedRewards
		if rewardToClaim == 0 {
			return core.ErrNoRewardsAvailable
		}
		stake.AccumulatedRewards = 0
		stake.LastRewardClaim = now

		if err := s.Vault.Transfer(ledger.RewardVaultAccount, user, rewardToClaim); err != nil {
			if errors.Is(err, ledger.ErrInsufficientFunds) {
				return core.ErrNoRewardsAvailable
			}
			return core.ErrTokenTransferFailed
		}
		claimed = rewardToClaim
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("User %s claimed rewards: %d", user, claimed)
	s.publish(core.EventRewardClaimed, now, core.RewardClaimed{
		User:         user,
		RewardAmount: claimed,
		Timestamp:    now,
	})
	return claimed, nil
}
