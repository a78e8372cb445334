package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

// Well-known custodial accounts. The staking pool holds deposited stakes; the
// reward pool funds reward payouts.
const (
	StakingVaultAccount core.Identity = "platform-vault"
	RewardVaultAccount  core.Identity = "reward-vault"
)

// ErrInsufficientFunds is reported by a vault when the source account cannot
// cover the transfer.
var ErrInsufficientFunds = errors.New("vault: insufficient funds")

// TokenVault is the external value-transfer collaborator. A transfer is
// all-or-nothing; any error from it aborts (and rolls back) the enclosing
// state mutation.
type TokenVault interface {
	Transfer(from, to core.Identity, amount uint64) error
	Balance(account core.Identity) uint64
}

// MemoryVault is an in-process TokenVault used by the harness and tests.
type MemoryVault struct {
	mu       sync.Mutex
	balances map[core.Identity]uint64
}

// NewMemoryVault returns a vault with the given opening balances.
func NewMemoryVault(balances map[core.Identity]uint64) *MemoryVault {
	b := make(map[core.Identity]uint64, len(balances))
	for account, amount := range balances {
		b[account] = amount
	}
	return &MemoryVault{balances: b}
}

// Transfer moves amount from one account to another, failing without side
// effects when the source balance is insufficient.
func (v *MemoryVault) Transfer(from, to core.Identity, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	src := v.balances[from]
	if src < amount {
		return fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientFunds, from, src, amount)
	}
	dst, err := core.CheckedAdd(v.balances[to], amount)
	if err != nil {
		return err
	}
	v.balances[from] = src - amount
	v.balances[to] = dst
	return nil
}

// Balance returns the current balance of an account.
func (v *MemoryVault) Balance(account core.Identity) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balances[account]
}

// Deposit credits an account, used to fund test users and the reward pool.
func (v *MemoryVault) Deposit(account core.Identity, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	sum, err := core.CheckedAdd(v.balances[account], amount)
	if err != nil {
		return err
	}
	v.balances[account] = sum
	return nil
}
