// Package governance implements the proposal lifecycle: creation, stake-
// weighted voting with a double-vote guard, and permissionless finalization.
package governance

import (
	"log"
	"strings"

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

// CreateProposal opens a vote over options lasting votingDuration seconds.
// Proposal ids are assigned monotonically from the platform counter.
func (s *Service) CreateProposal(creator core.Identity, title, description string, votingDuration int64, options []string, now int64) (uint64, error) {
	if now <= 0 {
		return 0, core.ErrInvalidTimestamp
	}
	if !core.ValidIdentity(creator) {
		return 0, core.ErrInvalidAccount
	}
	if strings.TrimSpace(title) == "" || len(title) > core.MaxTitleLength {
		return 0, core.ErrInvalidProposalParameters
	}
	if len(description) > core.MaxProposalDescLen {
		return 0, core.ErrInvalidProposalParameters
	}
	if len(options) < core.MinProposalOptions || len(options) > core.MaxProposalOptions {
		return 0, core.ErrInvalidProposalParameters
	}
	if votingDuration <= 0 {
		return 0, core.ErrInvalidProposalParameters
	}

	var proposalID uint64
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if !cfg.GovernanceEnabled {
			return core.ErrGovernanceActionNotAllowed
		}

		proposalID = cfg.ProposalCount
		cfg.ProposalCount, err = core.CheckedAdd(cfg.ProposalCount, 1)
		if err != nil {
			return err
		}
		tx.CreateProposal(&core.Proposal{
			ID:          proposalID,
			Creator:     creator,
			Title:       title,
			Description: description,
			Options:     append([]string(nil), options...),
			Votes:       make([]uint64, len(options)),
			StartTime:   now,
			EndTime:     now + votingDuration,
			Status:      core.ProposalActive,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Proposal %d created by %s", proposalID, creator)
	s.publish(core.EventProposalCreated, now, core.ProposalCreated{
		ProposalID:     proposalID,
		Creator:        creator,
		Timestamp:      now,
		Title:          title,
		VotingDuration: votingDuration,
	})
	return proposalID, nil
}

// CastVote records the voter's stake-weighted vote on one option. The weight
// is the voter's current staked amount; a voter with nothing at stake has no
// voting power. One vote per (proposal, voter) pair, enforced by VoteRecord.
func (s *Service) CastVote(voter core.Identity, proposalID uint64, option uint8, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}

	var weight uint64
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if !cfg.GovernanceEnabled {
			return core.ErrGovernanceActionNotAllowed
		}
		proposal, err := tx.Proposal(proposalID)
		if err != nil {
			return err
		}
		if proposal.Status != core.ProposalActive || now < proposal.StartTime || now > proposal.EndTime {
			return core.ErrInvalidProposal
		}
		if int(option) >= len(proposal.Options) {
			return core.ErrInvalidVote
		}

		stake, err := tx.Stake(voter)
		if err != nil || stake.StakedAmount == 0 {
			// No stake, no voting power.
			return core.ErrInvalidVote
		}
		weight = stake.StakedAmount

		if tx.HasVoted(proposalID, voter) {
			return core.ErrAlreadyVoted
		}
		proposal.Votes[option], err = core.CheckedAdd(proposal.Votes[option], weight)
		if err != nil {
			return err
		}
		return tx.CreateVote(&core.VoteRecord{
			ProposalID: proposalID,
			Voter:      voter,
			Option:     option,
			Weight:     weight,
			CastAt:     now,
		})
	})
	if err != nil {
		return err
	}

	log.Printf("Voter %s cast %d weight on proposal %d option %d", voter, weight, proposalID, option)
	s.publish(core.EventVoteCast, now, core.VoteCast{
		ProposalID: proposalID,
		Voter:      voter,
		Timestamp:  now,
		Option:     option,
		Weight:     weight,
	})
	return nil
}

// FinalizeProposal closes a proposal once its voting window has passed.
// Anyone may call it. The option with the highest tally wins, lower index
// taking precedence on ties; a proposal nobody voted on is rejected. The
// resulting status is terminal.
func (s *Service) FinalizeProposal(caller core.Identity, proposalID uint64, now int64) (core.ProposalStatus, error) {
	if now <= 0 {
		return 0, core.ErrInvalidTimestamp
	}

	var (
		status  core.ProposalStatus
		winning uint8
		tally   []uint64
	)
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if !cfg.GovernanceEnabled {
			return core.ErrGovernanceActionNotAllowed
		}
		proposal, err := tx.Proposal(proposalID)
		if err != nil {
			return err
		}
		if proposal.Status != core.ProposalActive {
			return core.ErrGovernanceActionNotAllowed
		}
		if now <= proposal.EndTime {
			return core.ErrVotingPeriodNotEnded
		}

		var maxVotes uint64
		for i, votes := range proposal.Votes {
			if votes > maxVotes {
				maxVotes = votes
				winning = uint8(i)
			}
		}
		if maxVotes > 0 {
			proposal.Status = core.ProposalApproved
		} else {
			proposal.Status = core.ProposalRejected
		}
		status = proposal.Status
		tally = append([]uint64(nil), proposal.Votes...)
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Proposal %d finalized by %s: %s", proposalID, caller, status)
	s.publish(core.EventProposalFinalized, now, core.ProposalFinalized{
		ProposalID:    proposalID,
		Timestamp:     now,
		Result:        status.String(),
		WinningOption: winning,
		Votes:         tally,
	})
	return status, nil
}

// GetProposal returns a copy of the proposal record.
func (s *Service) GetProposal(proposalID uint64) (*core.Proposal, error) {
	var proposal *core.Proposal
	err := s.State.View(func(tx *ledger.Tx) error {
		p, err := tx.Proposal(proposalID)
		if err != nil {
			return err
		}
		proposal = p.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return proposal, nil
}

// ListProposals returns copies of every proposal.
func (s *Service) ListProposals() []*core.Proposal {
	return s.State.Proposals()
}

func (s *Service) publish(eventType string, now int64, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, now, payload); err != nil {
		log.Printf("Failed to publish %s: %v", eventType, err)
	}
}
