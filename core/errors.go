package core

import "fmt"

// Error is a platform error with a stable numeric code. Codes are grouped by
// concern: 1xx lifecycle, 2xx agents, 3xx staking, 4xx governance, 5xx config,
// 6xx systemic.
type Error struct {
	Code    uint32
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform error %d: %s", e.Code, e.Message)
}

var (
	// Lifecycle
	ErrAlreadyInitialized = &Error{100, "platform is already initialized"}
	ErrNotInitialized     = &Error{101, "platform has not been initialized"}

	// Authorization
	ErrUnauthorizedAdmin = &Error{102, "unauthorized: caller is not the admin"}
	ErrUnauthorizedUser  = &Error{103, "unauthorized: caller does not have required permissions"}

	// Agents
	ErrAgentAlreadyRegistered = &Error{200, "agent is already registered with this id"}
	ErrAgentNotFound          = &Error{201, "agent not found for the given id"}
	ErrInvalidAgentMetadata   = &Error{202, "invalid agent metadata provided"}

	// Staking
	ErrInvalidStakeAmount    = &Error{300, "stake amount must meet the platform minimum"}
	ErrInsufficientBalance   = &Error{301, "insufficient balance to stake the specified amount"}
	ErrStakeAccountNotFound  = &Error{302, "user stake account not found"}
	ErrNoStakeToClaim        = &Error{303, "no staked amount available to claim rewards"}
	ErrNoRewardsAvailable    = &Error{304, "no rewards available to claim at this time"}
	ErrTokenTransferFailed   = &Error{305, "token transfer failed"}
	ErrStakingPeriodNotEnded = &Error{306, "staking period has not ended yet"}
	ErrInvalidUnstakeAmount  = &Error{307, "unstake amount exceeds staked balance"}
	ErrTooManyAgents         = &Error{308, "too many agents staked by user"}

	// Governance
	ErrInvalidVote                = &Error{400, "invalid vote weight or option provided"}
	ErrInvalidProposal            = &Error{401, "proposal is not active or does not exist"}
	ErrAlreadyVoted               = &Error{402, "user has already voted on this proposal"}
	ErrInvalidProposalParameters  = &Error{403, "invalid proposal parameters provided"}
	ErrGovernanceActionNotAllowed = &Error{404, "governance action is not allowed at this time"}
	ErrVotingPeriodNotEnded       = &Error{405, "voting period has not ended yet"}

	// Platform config
	ErrInvalidConfig     = &Error{500, "invalid platform configuration parameters"}
	ErrInvalidRewardRate = &Error{501, "invalid reward rate or distribution parameters"}
	ErrMetadataTooLarge  = &Error{502, "metadata size exceeds the maximum allowed limit"}

	// Systemic
	ErrArithmetic       = &Error{600, "arithmetic overflow or underflow occurred"}
	ErrSerialization    = &Error{601, "failed to serialize or deserialize record data"}
	ErrInvalidAccount   = &Error{602, "invalid account type or owner"}
	ErrInvalidTimestamp = &Error{603, "invalid timestamp or clock data"}
	ErrUnexpected       = &Error{999, "an unexpected error occurred"}
)
