package communication

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

func TestBrokerJournalAppend(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "events", "journal.jsonl")
	b := NewBroker(nil, journal)

	require.NoError(t, b.Publish("STAKE_DEPOSITED", 1_700_000_000, map[string]uint64{"amount": 5000}))
	require.NoError(t, b.Publish("VOTE_CAST", 1_700_000_100, map[string]uint64{"option": 1}))

	f, err := os.Open(journal)
	require.NoError(t, err)
	defer f.Close()

	var envelopes []core.Envelope
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var env core.Envelope
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &env))
		envelopes = append(envelopes, env)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, envelopes, 2)
	assert.Equal(t, "STAKE_DEPOSITED", envelopes[0].Type)
	assert.Equal(t, int64(1_700_000_000), envelopes[0].Timestamp)
	assert.NotEmpty(t, envelopes[0].ID)
	assert.JSONEq(t, `{"amount":5000}`, string(envelopes[0].Payload))
	assert.Equal(t, "VOTE_CAST", envelopes[1].Type)
	assert.NotEqual(t, envelopes[0].ID, envelopes[1].ID)
}

func TestBrokerUnmarshalablePayload(t *testing.T) {
	b := NewBroker(nil, "")
	err := b.Publish("BAD", 1, make(chan int))
	assert.Error(t, err)
}

func TestCollectorRetainsEvents(t *testing.T) {
	c := &Collector{}
	require.NoError(t, c.Publish("PLATFORM_INITIALIZED", 10, map[string]string{"admin": "key"}))

	events := c.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "PLATFORM_INITIALIZED", events[0].Type)
	assert.Equal(t, int64(10), events[0].Timestamp)

	// The returned slice is a copy; appending to it must not leak back.
	_ = append(events, core.Envelope{Type: "BOGUS"})
	assert.Len(t, c.Events(), 1)
}
