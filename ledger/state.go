package ledger

import (
	"sync"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

// State is the record arena backing the platform: one PlatformConfig, plus
// agents, user stakes, proposals and vote records addressed by deterministic
// keys. All mutating requests are serialized through Update, which stages
// deep copies and commits all-or-nothing, matching the transactional boundary
// the hosting ledger provides per top-level request.
type State struct {
	mu        sync.RWMutex
	config    *core.PlatformConfig
	agents    map[string]*core.Agent
	stakes    map[string]*core.UserStake
	proposals map[string]*core.Proposal
	votes     map[string]*core.VoteRecord
}

// NewState returns an empty record arena.
func NewState() *State {
	return &State{
		agents:    make(map[string]*core.Agent),
		stakes:    make(map[string]*core.UserStake),
		proposals: make(map[string]*core.Proposal),
		votes:     make(map[string]*core.VoteRecord),
	}
}

// Update runs fn against a transaction. If fn returns nil every staged write
// is installed atomically; if fn returns an error nothing is applied.
func (s *State) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		state:     s,
		agents:    make(map[string]*core.Agent),
		stakes:    make(map[string]*core.UserStake),
		proposals: make(map[string]*core.Proposal),
		votes:     make(map[string]*core.VoteRecord),
		deleted:   make(map[string]bool),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// View runs fn with read access to a consistent snapshot.
func (s *State) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx := &Tx{
		state:     s,
		readOnly:  true,
		agents:    make(map[string]*core.Agent),
		stakes:    make(map[string]*core.UserStake),
		proposals: make(map[string]*core.Proposal),
		votes:     make(map[string]*core.VoteRecord),
		deleted:   make(map[string]bool),
	}
	return fn(tx)
}

// Config returns a copy of the platform configuration, if initialized.
func (s *State) Config() (*core.PlatformConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return nil, false
	}
	return s.config.Clone(), true
}

// Agents returns copies of all registered agents.
func (s *State) Agents() []*core.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		out = append(out, a.Clone())
	}
	return out
}

// Proposals returns copies of all proposals.
func (s *State) Proposals() []*core.Proposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		out = append(out, p.Clone())
	}
	return out
}

// Stakes returns copies of all user stake records.
func (s *State) Stakes() []*core.UserStake {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.UserStake, 0, len(s.stakes))
	for _, u := range s.stakes {
		out = append(out, u.Clone())
	}
	return out
}
