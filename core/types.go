package core

// Bounds on stored text and collections. These cap the storage cost of every
// record and are enforced before any mutation.
const (
	MaxNameLength        = 32
	MaxDescriptionLength = 256
	MaxTitleLength       = 100
	MaxProposalDescLen   = 1000
	MinProposalOptions   = 2
	MaxProposalOptions   = 10
	MaxAgentsPerUser     = 10

	// MaxRewardRateBps caps the reward rate at 100% per epoch.
	MaxRewardRateBps = 10000

	// UnstakeCooldown is the minimum interval, in seconds, between a user's
	// last stake action and a subsequent unstake.
	UnstakeCooldown int64 = 86400
)

// Identity is an opaque caller identity (a hex-encoded public key). Signature
// verification happens in the hosting ledger; the state machine only compares
// identities for equality.
type Identity string

// PlatformConfig is the singleton holding global economic parameters and
// aggregate counters. Only the admin may change the economic parameters.
type PlatformConfig struct {
	Admin             Identity `json:"admin"`
	RewardRateBps     uint64   `json:"rewardRateBps"` // reward rate per epoch, in basis points
	MinStakeAmount    uint64   `json:"minStakeAmount"`
	EpochDuration     int64    `json:"epochDuration"` // seconds, always > 0
	TotalStaked       uint64   `json:"totalStaked"`   // sum of all UserStake.StakedAmount
	ProposalCount     uint64   `json:"proposalCount"` // next proposal id
	GovernanceEnabled bool     `json:"governanceEnabled"`
	CreatedAt         int64    `json:"createdAt"`
}

// Agent is a registered stakeable entity. AgentID is unique per owner.
type Agent struct {
	AgentID          uint64   `json:"agentId"`
	Owner            Identity `json:"owner"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	StakedAmount     uint64   `json:"stakedAmount"` // sum of stakes placed on this agent
	PerformanceScore uint64   `json:"performanceScore"`
	CreatedAt        int64    `json:"createdAt"`
}

// UserStake tracks one user's staked value, claimable rewards and the set of
// agents the stake is spread across. Created lazily on first stake, destroyed
// when the staked amount returns to zero.
type UserStake struct {
	User               Identity `json:"user"`
	StakedAmount       uint64   `json:"stakedAmount"`
	AccumulatedRewards uint64   `json:"accumulatedRewards"`
	StakedAgents       []uint64 `json:"stakedAgents"` // agent ids, no duplicates, at most MaxAgentsPerUser
	LastStakeUpdate    int64    `json:"lastStakeUpdate"`
	LastRewardClaim    int64    `json:"lastRewardClaim"`
}

// HasAgent reports whether agentID is already in the staked set.
func (u *UserStake) HasAgent(agentID uint64) bool {
	for _, id := range u.StakedAgents {
		if id == agentID {
			return true
		}
	}
	return false
}

// AddAgent inserts agentID into the staked set. Adding an id that is already
// present is a no-op; adding beyond MaxAgentsPerUser fails.
func (u *UserStake) AddAgent(agentID uint64) error {
	if u.HasAgent(agentID) {
		return nil
	}
	if len(u.StakedAgents) >= MaxAgentsPerUser {
		return ErrTooManyAgents
	}
	u.StakedAgents = append(u.StakedAgents, agentID)
	return nil
}

// RemoveAgent drops agentID from the staked set if present.
func (u *UserStake) RemoveAgent(agentID uint64) {
	kept := u.StakedAgents[:0]
	for _, id := range u.StakedAgents {
		if id != agentID {
			kept = append(kept, id)
		}
	}
	u.StakedAgents = kept
}

// ProposalStatus is the lifecycle state of a governance proposal. Transitions
// only ever go Active -> Approved or Active -> Rejected.
type ProposalStatus uint8

const (
	ProposalActive ProposalStatus = iota
	ProposalApproved
	ProposalRejected
)

func (s ProposalStatus) String() string {
	switch s {
	case ProposalActive:
		return "active"
	case ProposalApproved:
		return "approved"
	case ProposalRejected:
		return "rejected"
	}
	return "unknown"
}

// Proposal is a time-bounded governance vote over a discrete set of options.
// Votes is kept parallel to Options at all times.
type Proposal struct {
	ID          uint64         `json:"id"`
	Creator     Identity       `json:"creator"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Options     []string       `json:"options"`
	Votes       []uint64       `json:"votes"` // stake-weighted tally per option
	StartTime   int64          `json:"startTime"`
	EndTime     int64          `json:"endTime"`
	Status      ProposalStatus `json:"status"`
}

// VoteRecord marks that a voter has already voted on a proposal. Its existence
// is the double-vote guard.
type VoteRecord struct {
	ProposalID uint64   `json:"proposalId"`
	Voter      Identity `json:"voter"`
	Option     uint8    `json:"option"`
	Weight     uint64   `json:"weight"`
	CastAt     int64    `json:"castAt"`
}

// Clone returns a deep copy so staged mutations never alias committed records.
func (c *PlatformConfig) Clone() *PlatformConfig {
	cp := *c
	return &cp
}

func (a *Agent) Clone() *Agent {
	cp := *a
	return &cp
}

func (u *UserStake) Clone() *UserStake {
	cp := *u
	cp.StakedAgents = append([]uint64(nil), u.StakedAgents...)
	return &cp
}

func (p *Proposal) Clone() *Proposal {
	cp := *p
	cp.Options = append([]string(nil), p.Options...)
	cp.Votes = append([]uint64(nil), p.Votes...)
	return &cp
}

func (v *VoteRecord) Clone() *VoteRecord {
	cp := *v
	return &cp
}
