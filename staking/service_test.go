package staking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
	"github.com/nivaro-ai/nivaro-launchpad/platform"
	"github.com/nivaro-ai/nivaro-launchpad/registry"
)

const (
	admin = core.Identity("admin-key")
	owner = core.Identity("owner-key")
	alice = core.Identity("alice-key")
	t0    = int64(1_700_000_000)

	minStake      = uint64(1000)
	rateBps       = uint64(100) // 1% per epoch
	epochDuration = int64(86400)
)

type fixture struct {
	state    *ledger.State
	vault    *ledger.MemoryVault
	events   *communication.Collector
	staking  *Service
	registry *registry.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state := ledger.NewState()
	events := &communication.Collector{}
	vault := ledger.NewMemoryVault(map[core.Identity]uint64{
		alice:                     10_000_000,
		ledger.RewardVaultAccount: 1_000_000,
	})

	require.NoError(t, platform.NewService(state, events).Initialize(admin, rateBps, minStake, epochDuration, t0))
	reg := registry.NewService(state, events)
	require.NoError(t, reg.RegisterAgent(owner, 1, "Nivaro-Alpha", "", t0))

	return &fixture{
		state:    state,
		vault:    vault,
		events:   events,
		staking:  NewService(state, vault, events),
		registry: reg,
	}
}

func (f *fixture) totals(t *testing.T) (total uint64, userSum uint64, agentSum uint64) {
	t.Helper()
	cfg, ok := f.state.Config()
	require.True(t, ok)
	total = cfg.TotalStaked
	for _, u := range f.state.Stakes() {
		userSum += u.StakedAmount
	}
	for _, a := range f.state.Agents() {
		agentSum += a.StakedAmount
	}
	return total, userSum, agentSum
}

func TestStake(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.staking.Stake(alice, owner, 1, 5000, t0+10))

	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), stake.StakedAmount)
	assert.Equal(t, []uint64{1}, stake.StakedAgents)
	assert.Equal(t, t0+10, stake.LastStakeUpdate)

	agent, err := f.registry.GetAgent(owner, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), agent.StakedAmount)

	cfg, _ := f.state.Config()
	assert.Equal(t, uint64(5000), cfg.TotalStaked)

	assert.Equal(t, uint64(10_000_000-5000), f.vault.Balance(alice))
	assert.Equal(t, uint64(5000), f.vault.Balance(ledger.StakingVaultAccount))

	emitted := f.events.Events()
	assert.Equal(t, core.EventStakeDeposited, emitted[len(emitted)-1].Type)
}

func TestStakeValidation(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.staking.Stake(alice, owner, 1, 0, t0+1), core.ErrInvalidStakeAmount)
	assert.ErrorIs(t, f.staking.Stake(alice, owner, 1, minStake-1, t0+1), core.ErrInvalidStakeAmount)
	assert.ErrorIs(t, f.staking.Stake(alice, owner, 99, 5000, t0+1), core.ErrAgentNotFound)
	assert.ErrorIs(t, f.staking.Stake(alice, owner, 1, 5000, 0), core.ErrInvalidTimestamp)

	total, userSum, agentSum := f.totals(t)
	assert.Zero(t, total)
	assert.Zero(t, userSum)
	assert.Zero(t, agentSum)
}

func TestStakeInsufficientBalanceRollsBack(t *testing.T) {
	f := newFixture(t)

	err := f.staking.Stake(alice, owner, 1, 20_000_000, t0+1)
	require.ErrorIs(t, err, core.ErrInsufficientBalance)

	// The whole operation unwinds: no stake record, no counter movement.
	_, err = f.staking.GetStake(alice)
	assert.ErrorIs(t, err, core.ErrStakeAccountNotFound)
	total, userSum, agentSum := f.totals(t)
	assert.Zero(t, total)
	assert.Zero(t, userSum)
	assert.Zero(t, agentSum)
	assert.Equal(t, uint64(10_000_000), f.vault.Balance(alice))
}

func TestStakeSameAgentTwice(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.staking.Stake(alice, owner, 1, 2000, t0+1))
	require.NoError(t, f.staking.Stake(alice, owner, 1, 3000, t0+2))

	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), stake.StakedAmount)
	assert.Equal(t, []uint64{1}, stake.StakedAgents, "duplicate agent id is not double-counted")
}

func TestStakeAgentCapacity(t *testing.T) {
	f := newFixture(t)
	for id := uint64(2); id <= core.MaxAgentsPerUser+1; id++ {
		require.NoError(t, f.registry.RegisterAgent(owner, id, fmt.Sprintf("agent-%d", id), "", t0))
	}

	for id := uint64(1); id <= core.MaxAgentsPerUser; id++ {
		require.NoError(t, f.staking.Stake(alice, owner, id, minStake, t0+int64(id)))
	}

	err := f.staking.Stake(alice, owner, core.MaxAgentsPerUser+1, minStake, t0+100)
	assert.ErrorIs(t, err, core.ErrTooManyAgents)

	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Len(t, stake.StakedAgents, core.MaxAgentsPerUser)
	assert.Equal(t, minStake*core.MaxAgentsPerUser, stake.StakedAmount)
}

func TestUnstakeCooldown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 5000, t0))

	err := f.staking.Unstake(alice, owner, 1, 1000, t0+core.UnstakeCooldown-1)
	assert.ErrorIs(t, err, core.ErrStakingPeriodNotEnded)

	require.NoError(t, f.staking.Unstake(alice, owner, 1, 1000, t0+core.UnstakeCooldown))

	stake, err := f.staking.GetStake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(4000), stake.StakedAmount)
	assert.Equal(t, uint64(10_000_000-4000), f.vault.Balance(alice))
}

func TestUnstakeTooMuchLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 5000, t0))

	later := t0 + core.UnstakeCooldown
	assert.ErrorIs(t, f.staking.Unstake(alice, owner, 1, 5001, later), core.ErrInvalidUnstakeAmount)
	assert.ErrorIs(t, f.staking.Unstake(alice, owner, 1, 0, later), core.ErrInvalidUnstakeAmount)

	total, userSum, agentSum := f.totals(t)
	assert.Equal(t, uint64(5000), total)
	assert.Equal(t, uint64(5000), userSum)
	assert.Equal(t, uint64(5000), agentSum)
}

func TestUnstakeUnknownStakeAccount(t *testing.T) {
	f := newFixture(t)
	err := f.staking.Unstake(alice, owner, 1, 1000, t0+core.UnstakeCooldown)
	assert.ErrorIs(t, err, core.ErrStakeAccountNotFound)
}

func TestFullWithdrawalDestroysRecord(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.staking.Stake(alice, owner, 1, 5000, t0))

	require.NoError(t, f.staking.Unstake(alice, owner, 1, 5000, t0+core.UnstakeCooldown))

	_, err := f.staking.GetStake(alice)
	assert.ErrorIs(t, err, core.ErrStakeAccountNotFound)

	total, userSum, agentSum := f.totals(t)
	assert.Zero(t, total)
	assert.Zero(t, userSum)
	assert.Zero(t, agentSum)
	assert.Equal(t, uint64(10_000_000), f.vault.Balance(alice))
}
