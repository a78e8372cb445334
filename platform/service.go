// Package platform owns the singleton configuration record: bootstrap,
// admin-gated parameter updates and the platform-wide governance switch.
package platform

import (
	"log"

	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
)

type Service struct {
	State  *ledger.State
	Events communication.Publisher
}

func NewService(state *ledger.State, events communication.Publisher) *Service {
	return &Service{State: state, Events: events}
}

// validateParams applies the shared sanity checks on economic parameters.
func validateParams(rewardRateBps uint64, epochDuration int64) error {
	if epochDuration <= 0 {
		return core.ErrInvalidConfig
	}
	if rewardRateBps > core.MaxRewardRateBps {
		return core.ErrInvalidRewardRate
	}
	return nil
}

// Initialize bootstraps the platform configuration exactly once. The caller
// becomes the admin and governance starts enabled.
func (s *Service) Initialize(admin core.Identity, rewardRateBps, minStakeAmount uint64, epochDuration int64, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}
	if !core.ValidIdentity(admin) {
		return core.ErrInvalidAccount
	}
	if err := validateParams(rewardRateBps, epochDuration); err != nil {
		return err
	}

	err := s.State.Update(func(tx *ledger.Tx) error {
		return tx.CreateConfig(&core.PlatformConfig{
			Admin:             admin,
			RewardRateBps:     rewardRateBps,
			MinStakeAmount:    minStakeAmount,
			EpochDuration:     epochDuration,
			GovernanceEnabled: true,
			CreatedAt:         now,
		})
	})
	if err != nil {
		return err
	}

	log.Printf("Platform initialized with admin %s", admin)
	s.publish(core.EventPlatformInitialized, now, core.PlatformInitialized{
		Admin:          admin,
		Timestamp:      now,
		RewardRateBps:  rewardRateBps,
		MinStakeAmount: minStakeAmount,
		EpochDuration:  epochDuration,
	})
	return nil
}

// UpdateConfig overwrites the economic parameters in place. Admin only.
func (s *Service) UpdateConfig(caller core.Identity, rewardRateBps, minStakeAmount uint64, epochDuration int64, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}
	if err := validateParams(rewardRateBps, epochDuration); err != nil {
		return err
	}

	var delta core.PlatformUpdated
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if err := core.RequireAdmin(cfg, caller); err != nil {
			return err
		}
		delta = core.PlatformUpdated{
			Admin:             caller,
			Timestamp:         now,
			OldRewardRateBps:  cfg.RewardRateBps,
			NewRewardRateBps:  rewardRateBps,
			OldMinStakeAmount: cfg.MinStakeAmount,
			NewMinStakeAmount: minStakeAmount,
			OldEpochDuration:  cfg.EpochDuration,
			NewEpochDuration:  epochDuration,
		}
		cfg.RewardRateBps = rewardRateBps
		cfg.MinStakeAmount = minStakeAmount
		cfg.EpochDuration = epochDuration
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Platform config updated by admin %s", caller)
	s.publish(core.EventPlatformUpdated, now, delta)
	return nil
}

// SetGovernanceEnabled flips the platform-wide governance switch. Admin only.
func (s *Service) SetGovernanceEnabled(caller core.Identity, enabled bool, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if err := core.RequireAdmin(cfg, caller); err != nil {
			return err
		}
		cfg.GovernanceEnabled = enabled
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.EventGovernanceToggled, now, core.GovernanceToggled{
		Admin:     caller,
		Timestamp: now,
		Enabled:   enabled,
	})
	return nil
}

func (s *Service) publish(eventType string, now int64, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, now, payload); err != nil {
		log.Printf("Failed to publish %s: %v", eventType, err)
	}
}
