package ledger

import "github.com/nivaro-ai/nivaro-launchpad/core"

// Tx stages reads and writes for one logical operation. Reads always return
// staged copies, never the committed records, so an aborted operation leaves
// nothing behind.
type Tx struct {
	state    *State
	readOnly bool

	config    *core.PlatformConfig
	agents    map[string]*core.Agent
	stakes    map[string]*core.UserStake
	proposals map[string]*core.Proposal
	votes     map[string]*core.VoteRecord
	deleted   map[string]bool // stake keys destroyed by full withdrawal
}

// CreateConfig stages the singleton configuration record. Fails if one
// already exists.
func (tx *Tx) CreateConfig(cfg *core.PlatformConfig) error {
	if tx.state.config != nil || tx.config != nil {
		return core.ErrAlreadyInitialized
	}
	tx.config = cfg
	return nil
}

// Config returns the staged configuration, loading a copy of the committed
// record on first access.
func (tx *Tx) Config() (*core.PlatformConfig, error) {
	if tx.config != nil {
		return tx.config, nil
	}
	if tx.state.config == nil {
		return nil, core.ErrNotInitialized
	}
	tx.config = tx.state.config.Clone()
	return tx.config, nil
}

// CreateAgent stages a new agent record under its deterministic key.
func (tx *Tx) CreateAgent(a *core.Agent) error {
	key := core.AgentKey(a.Owner, a.AgentID)
	if _, ok := tx.agents[key]; ok {
		return core.ErrAgentAlreadyRegistered
	}
	if _, ok := tx.state.agents[key]; ok {
		return core.ErrAgentAlreadyRegistered
	}
	tx.agents[key] = a
	return nil
}

// Agent returns the staged agent for (owner, agentID).
func (tx *Tx) Agent(owner core.Identity, agentID uint64) (*core.Agent, error) {
	key := core.AgentKey(owner, agentID)
	if a, ok := tx.agents[key]; ok {
		return a, nil
	}
	a, ok := tx.state.agents[key]
	if !ok {
		return nil, core.ErrAgentNotFound
	}
	cp := a.Clone()
	tx.agents[key] = cp
	return cp, nil
}

// Stake returns the staged stake record for user, or ErrStakeAccountNotFound.
func (tx *Tx) Stake(user core.Identity) (*core.UserStake, error) {
	key := core.StakeKey(user)
	if tx.deleted[key] {
		return nil, core.ErrStakeAccountNotFound
	}
	if u, ok := tx.stakes[key]; ok {
		return u, nil
	}
	u, ok := tx.state.stakes[key]
	if !ok {
		return nil, core.ErrStakeAccountNotFound
	}
	cp := u.Clone()
	tx.stakes[key] = cp
	return cp, nil
}

// StakeOrCreate returns the staged stake record for user, lazily creating an
// empty one with both timestamps set to now.
func (tx *Tx) StakeOrCreate(user core.Identity, now int64) (*core.UserStake, error) {
	u, err := tx.Stake(user)
	if err == nil {
		return u, nil
	}
	u = &core.UserStake{
		User:            user,
		LastStakeUpdate: now,
		LastRewardClaim: now,
	}
	key := core.StakeKey(user)
	delete(tx.deleted, key)
	tx.stakes[key] = u
	return u, nil
}

// DeleteStake destroys a stake record (full withdrawal).
func (tx *Tx) DeleteStake(user core.Identity) {
	key := core.StakeKey(user)
	delete(tx.stakes, key)
	tx.deleted[key] = true
}

// CreateProposal stages a new proposal record.
func (tx *Tx) CreateProposal(p *core.Proposal) {
	tx.proposals[core.ProposalKey(p.ID)] = p
}

// Proposal returns the staged proposal for id, or ErrInvalidProposal.
func (tx *Tx) Proposal(id uint64) (*core.Proposal, error) {
	key := core.ProposalKey(id)
	if p, ok := tx.proposals[key]; ok {
		return p, nil
	}
	p, ok := tx.state.proposals[key]
	if !ok {
		return nil, core.ErrInvalidProposal
	}
	cp := p.Clone()
	tx.proposals[key] = cp
	return cp, nil
}

// CreateVote stages a vote record; a second vote on the same proposal by the
// same voter fails.
func (tx *Tx) CreateVote(v *core.VoteRecord) error {
	key := core.VoteKey(v.ProposalID, v.Voter)
	if _, ok := tx.votes[key]; ok {
		return core.ErrAlreadyVoted
	}
	if _, ok := tx.state.votes[key]; ok {
		return core.ErrAlreadyVoted
	}
	tx.votes[key] = v
	return nil
}

// HasVoted reports whether a vote record exists for (proposalID, voter).
func (tx *Tx) HasVoted(proposalID uint64, voter core.Identity) bool {
	key := core.VoteKey(proposalID, voter)
	if _, ok := tx.votes[key]; ok {
		return true
	}
	_, ok := tx.state.votes[key]
	return ok
}

// commit installs every staged record. Only called with the state lock held
// and only after fn succeeded.
func (tx *Tx) commit() {
	if tx.readOnly {
		return
	}
	if tx.config != nil {
		tx.state.config = tx.config
	}
	for key, a := range tx.agents {
		tx.state.agents[key] = a
	}
	for key, u := range tx.stakes {
		tx.state.stakes[key] = u
	}
	for key := range tx.deleted {
		delete(tx.state.stakes, key)
	}
	for key, p := range tx.proposals {
		tx.state.proposals[key] = p
	}
	for key, v := range tx.votes {
		tx.state.votes[key] = v
	}
}
