package platform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
)

const (
	admin = core.Identity("admin-key")
	t0    = int64(1_700_000_000)
)

func newService() (*Service, *communication.Collector) {
	events := &communication.Collector{}
	return NewService(ledger.NewState(), events), events
}

func TestInitialize(t *testing.T) {
	s, events := newService()

	require.NoError(t, s.Initialize(admin, 100, 1000, 86400, t0))

	cfg, ok := s.State.Config()
	require.True(t, ok)
	assert.Equal(t, admin, cfg.Admin)
	assert.Equal(t, uint64(100), cfg.RewardRateBps)
	assert.Equal(t, uint64(1000), cfg.MinStakeAmount)
	assert.Equal(t, int64(86400), cfg.EpochDuration)
	assert.True(t, cfg.GovernanceEnabled)
	assert.Equal(t, uint64(0), cfg.TotalStaked)

	emitted := events.Events()
	require.Len(t, emitted, 1)
	assert.Equal(t, core.EventPlatformInitialized, emitted[0].Type)
}

func TestInitializeTwiceFails(t *testing.T) {
	s, _ := newService()
	require.NoError(t, s.Initialize(admin, 100, 1000, 86400, t0))
	err := s.Initialize("someone-else", 200, 1, 60, t0+1)
	assert.ErrorIs(t, err, core.ErrAlreadyInitialized)
}

func TestInitializeValidation(t *testing.T) {
	s, _ := newService()

	assert.ErrorIs(t, s.Initialize(admin, 100, 1000, 0, t0), core.ErrInvalidConfig)
	assert.ErrorIs(t, s.Initialize(admin, 100, 1000, -5, t0), core.ErrInvalidConfig)
	assert.ErrorIs(t, s.Initialize(admin, 10001, 1000, 86400, t0), core.ErrInvalidRewardRate)
	assert.ErrorIs(t, s.Initialize(admin, 100, 1000, 86400, 0), core.ErrInvalidTimestamp)
	assert.ErrorIs(t, s.Initialize("", 100, 1000, 86400, t0), core.ErrInvalidAccount)
}

func TestUpdateConfig(t *testing.T) {
	s, events := newService()
	require.NoError(t, s.Initialize(admin, 100, 1000, 86400, t0))

	require.NoError(t, s.UpdateConfig(admin, 200, 500, 3600, t0+10))

	cfg, _ := s.State.Config()
	assert.Equal(t, uint64(200), cfg.RewardRateBps)
	assert.Equal(t, uint64(500), cfg.MinStakeAmount)
	assert.Equal(t, int64(3600), cfg.EpochDuration)

	emitted := events.Events()
	require.Len(t, emitted, 2)
	assert.Equal(t, core.EventPlatformUpdated, emitted[1].Type)

	var delta core.PlatformUpdated
	require.NoError(t, json.Unmarshal(emitted[1].Payload, &delta))
	assert.Equal(t, uint64(100), delta.OldRewardRateBps)
	assert.Equal(t, uint64(200), delta.NewRewardRateBps)
	assert.Equal(t, int64(86400), delta.OldEpochDuration)
	assert.Equal(t, int64(3600), delta.NewEpochDuration)
}

func TestUpdateConfigAdminOnly(t *testing.T) {
	s, events := newService()
	require.NoError(t, s.Initialize(admin, 100, 1000, 86400, t0))

	err := s.UpdateConfig("intruder", 200, 500, 3600, t0+10)
	assert.ErrorIs(t, err, core.ErrUnauthorizedAdmin)

	cfg, _ := s.State.Config()
	assert.Equal(t, uint64(100), cfg.RewardRateBps, "rejected update must not mutate")
	assert.Len(t, events.Events(), 1, "no event on failure")
}

func TestUpdateConfigBeforeInitialize(t *testing.T) {
	s, _ := newService()
	err := s.UpdateConfig(admin, 200, 500, 3600, t0)
	assert.ErrorIs(t, err, core.ErrNotInitialized)
}

func TestSetGovernanceEnabled(t *testing.T) {
	s, events := newService()
	require.NoError(t, s.Initialize(admin, 100, 1000, 86400, t0))

	require.NoError(t, s.SetGovernanceEnabled(admin, false, t0+1))
	cfg, _ := s.State.Config()
	assert.False(t, cfg.GovernanceEnabled)

	assert.ErrorIs(t, s.SetGovernanceEnabled("intruder", true, t0+2), core.ErrUnauthorizedAdmin)

	emitted := events.Events()
	require.Len(t, emitted, 2)
	assert.Equal(t, core.EventGovernanceToggled, emitted[1].Type)
}
