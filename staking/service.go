// Package staking implements the stake ledger protocol: deposits against
// registered agents, cooldown-gated withdrawals and epoch-based reward claims.
package staking

import (
	"errors"
	"log"

	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
)

type Service struct {
	State  *ledger.State
	Vault  ledger.TokenVault
	Events communication.Publisher
}

func NewService(state *ledger.State, vault ledger.TokenVault, events communication.Publisher) *Service {
	return &Service{State: state, Vault: vault, Events: events}
}

// Stake deposits amount from user against the agent (owner, agentID). The
// user's stake record is created lazily; staking again on an agent already in
// the user's set is allowed and does not duplicate the set entry. The token
// transfer into the staking vault happens inside the transactional boundary,
// so a failed transfer leaves no state behind.
func (s *Service) Stake(user, owner core.Identity, agentID uint64, amount uint64, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}
	if !core.ValidIdentity(user) {
		return core.ErrInvalidAccount
	}

	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if amount == 0 || amount < cfg.MinStakeAmount {
			return core.ErrInvalidStakeAmount
		}
		agent, err := tx.Agent(owner, agentID)
		if err != nil {
			return err
		}
		stake, err := tx.StakeOrCreate(user, now)
		if err != nil {
			return err
		}
		if err := stake.AddAgent(agentID); err != nil {
			return err
		}

		// All three counters move together or not at all.
		stake.StakedAmount, err = core.CheckedAdd(stake.StakedAmount, amount)
		if err != nil {
			return err
		}
		agent.StakedAmount, err = core.CheckedAdd(agent.StakedAmount, amount)
		if err != nil {
			return err
		}
		cfg.TotalStaked, err = core.CheckedAdd(cfg.TotalStaked, amount)
		if err != nil {
			return err
		}
		stake.LastStakeUpdate = now

		if err := s.Vault.Transfer(user, ledger.StakingVaultAccount, amount); err != nil {
			if errors.Is(err, ledger.ErrInsufficientFunds) {
				return core.ErrInsufficientBalance
			}
			return core.ErrTokenTransferFailed
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("User %s staked %d on agent %d", user, amount, agentID)
	s.publish(core.EventStakeDeposited, now, core.StakeDeposited{
		User:      user,
		AgentID:   agentID,
		Owner:     owner,
		Amount:    amount,
		Timestamp: now,
	})
	return nil
}

// Unstake withdraws amount of user's stake from the agent (owner, agentID).
// A cooldown measured from the last stake action gates every withdrawal.
// When the user's total returns to zero the stake record is destroyed.
func (s *Service) Unstake(user, owner core.Identity, agentID uint64, amount uint64, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}

	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		stake, err := tx.Stake(user)
		if err != nil {
			return err
		}
		if now < stake.LastStakeUpdate+core.UnstakeCooldown {
			return core.ErrStakingPeriodNotEnded
		}
		agent, err := tx.Agent(owner, agentID)
		if err != nil {
			return err
		}
		if !stake.HasAgent(agentID) {
			return core.ErrInvalidUnstakeAmount
		}
		if amount == 0 || amount > stake.StakedAmount || amount > agent.StakedAmount {
			return core.ErrInvalidUnstakeAmount
		}

		stake.StakedAmount, err = core.CheckedSub(stake.StakedAmount, amount)
		if err != nil {
			return err
		}
		agent.StakedAmount, err = core.CheckedSub(agent.StakedAmount, amount)
		if err != nil {
			return err
		}
		cfg.TotalStaked, err = core.CheckedSub(cfg.TotalStaked, amount)
		if err != nil {
			return err
		}
		stake.LastStakeUpdate = now

		if stake.StakedAmount == 0 {
			// Full withdrawal destroys the record. Unclaimed rewards would be
			// forfeited, so refuse until they are claimed.
			if stake.AccumulatedRewards > 0 {
				return core.ErrNoStakeToClaim
			}
			tx.DeleteStake(user)
		}

		if err := s.Vault.Transfer(ledger.StakingVaultAccount, user, amount); err != nil {
			return core.ErrTokenTransferFailed
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("User %s unstaked %d from agent %d", user, amount, agentID)
	s.publish(core.EventStakeWithdrawn, now, core.StakeWithdrawn{
		User:      user,
		AgentID:   agentID,
		Owner:     owner,
		Amount:    amount,
		Timestamp: now,
	})
	return nil
}

// GetStake returns a copy of the user's stake record.
func (s *Service) GetStake(user core.Identity) (*core.UserStake, error) {
	var stake *core.UserStake
	err := s.State.View(func(tx *ledger.Tx) error {
		u, err := tx.Stake(user)
		if err != nil {
			return err
		}
		stake = u.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stake, nil
}

func (s *Service) publish(eventType string, now int64, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, now, payload); err != nil {
		log.Printf("Failed to publish %s: %v", eventType, err)
	}
}
