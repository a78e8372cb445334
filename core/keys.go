package core

import (
	"fmt"
	"strings"
)

// Deterministic record addressing. Each record kind gets a key derived from
// its stable identifying fields, mirroring the seed scheme the hosting ledger
// uses for account derivation. Identities never contain '/', so the derived
// keys are collision-free across record kinds and instances.

// ValidIdentity reports whether id can participate in key derivation.
func ValidIdentity(id Identity) bool {
	return id != "" && !strings.ContainsRune(string(id), '/')
}

// AgentKey addresses an Agent record by its (owner, agent id) pair.
func AgentKey(owner Identity, agentID uint64) string {
	return fmt.Sprintf("ai-agent/%s/%d", owner, agentID)
}

// StakeKey addresses a UserStake record by its user identity.
func StakeKey(user Identity) string {
	return "user-stake/" + string(user)
}

// ProposalKey addresses a Proposal record by its sequence number.
func ProposalKey(proposalID uint64) string {
	return fmt.Sprintf("proposal/%d", proposalID)
}

// VoteKey addresses a VoteRecord by its (proposal, voter) pair.
func VoteKey(proposalID uint64, voter Identity) string {
	return fmt.Sprintf("proposal-vote/%d/%s", proposalID, voter)
}
