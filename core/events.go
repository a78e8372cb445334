package core

import "encoding/json"

// Event types emitted by the platform. Exactly one event accompanies every
// successful operation; events are write-only and never read back.
const (
	EventPlatformInitialized = "PLATFORM_INITIALIZED"
	EventPlatformUpdated     = "PLATFORM_UPDATED"
	EventGovernanceToggled   = "GOVERNANCE_TOGGLED"
	EventAgentRegistered     = "AGENT_REGISTERED"
	EventAgentUpdated        = "AGENT_UPDATED"
	EventPerformanceRecorded = "PERFORMANCE_RECORDED"
	EventStakeDeposited      = "STAKE_DEPOSITED"
	EventStakeWithdrawn      = "STAKE_WITHDRAWN"
	EventRewardClaimed       = "REWARD_CLAIMED"
	EventProposalCreated     = "PROPOSAL_CREATED"
	EventVoteCast            = "VOTE_CAST"
	EventProposalFinalized   = "PROPOSAL_FINALIZED"
)

// Envelope wraps an event payload for publication.
type Envelope struct {
	ID        string          `json:"id"` // uuid assigned by the broker
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type PlatformInitialized struct {
	Admin          Identity `json:"admin"`
	Timestamp      int64    `json:"timestamp"`
	RewardRateBps  uint64   `json:"rewardRateBps"`
	MinStakeAmount uint64   `json:"minStakeAmount"`
	EpochDuration  int64    `json:"epochDuration"`
}

// PlatformUpdated carries old -> new deltas for audit.
type PlatformUpdated struct {
	Admin             Identity `json:"admin"`
	Timestamp         int64    `json:"timestamp"`
	OldRewardRateBps  uint64   `json:"oldRewardRateBps"`
	NewRewardRateBps  uint64   `json:"newRewardRateBps"`
	OldMinStakeAmount uint64   `json:"oldMinStakeAmount"`
	NewMinStakeAmount uint64   `json:"newMinStakeAmount"`
	OldEpochDuration  int64    `json:"oldEpochDuration"`
	NewEpochDuration  int64    `json:"newEpochDuration"`
}

type GovernanceToggled struct {
	Admin     Identity `json:"admin"`
	Timestamp int64    `json:"timestamp"`
	Enabled   bool     `json:"enabled"`
}

type AgentRegistered struct {
	AgentID   uint64   `json:"agentId"`
	Owner     Identity `json:"owner"`
	Timestamp int64    `json:"timestamp"`
	Name      string   `json:"name"`
}

type AgentUpdated struct {
	AgentID   uint64   `json:"agentId"`
	Owner     Identity `json:"owner"`
	Timestamp int64    `json:"timestamp"`
	Name      string   `json:"name"`
}

type PerformanceRecorded struct {
	AgentID   uint64   `json:"agentId"`
	Owner     Identity `json:"owner"`
	Timestamp int64    `json:"timestamp"`
	Delta     uint64   `json:"delta"`
	NewScore  uint64   `json:"newScore"`
}

type StakeDeposited struct {
	User      Identity `json:"user"`
	AgentID   uint64   `json:"agentId"`
	Owner     Identity `json:"owner"`
	Amount    uint64   `json:"amount"`
	Timestamp int64    `json:"timestamp"`
}

type StakeWithdrawn struct {
	User      Identity `json:"user"`
	AgentID   uint64   `json:"agentId"`
	Owner     Identity `json:"owner"`
	Amount    uint64   `json:"amount"`
	Timestamp int64    `json:"timestamp"`
}

type RewardClaimed struct {
	User         Identity `json:"user"`
	RewardAmount uint64   `json:"rewardAmount"`
	Timestamp    int64    `json:"timestamp"`
}

type ProposalCreated struct {
	ProposalID     uint64   `json:"proposalId"`
	Creator        Identity `json:"creator"`
	Timestamp      int64    `json:"timestamp"`
	Title          string   `json:"title"`
	VotingDuration int64    `json:"votingDuration"`
}

type VoteCast struct {
	ProposalID uint64   `json:"proposalId"`
	Voter      Identity `json:"voter"`
	Timestamp  int64    `json:"timestamp"`
	Option     uint8    `json:"option"`
	Weight     uint64   `json:"weight"`
}

type ProposalFinalized struct {
	ProposalID    uint64   `json:"proposalId"`
	Timestamp     int64    `json:"timestamp"`
	Result        string   `json:"result"` // approved or rejected
	WinningOption uint8    `json:"winningOption"`
	Votes         []uint64 `json:"votes"`
}
