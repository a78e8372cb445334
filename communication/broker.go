package communication

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/nivaro-ai/nivaro-launchpad/core"
)

// SubjectPrefix is the NATS subject root for platform notifications; the
// event type is appended, e.g. platform.events.STAKE_DEPOSITED.
const SubjectPrefix = "platform.events."

// Publisher emits one notification record per successful operation.
type Publisher interface {
	Publish(eventType string, timestamp int64, payload any) error
}

// Broker publishes events to NATS and appends them to a JSONL journal so
// off-platform observers can tail them. Either sink may be absent.
type Broker struct {
	nc          *nats.Conn
	journalPath string
	journalMu   sync.Mutex
}

// NewBroker returns a broker. nc may be nil (journal only) and journalPath
// may be empty (NATS only).
func NewBroker(nc *nats.Conn, journalPath string) *Broker {
	return &Broker{nc: nc, journalPath: journalPath}
}

// Publish wraps payload in an envelope and fans it out. Journal write errors
// are logged but never fail the operation; the notification stream is
// best-effort by contract.
func (b *Broker) Publish(eventType string, timestamp int64, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	env := core.Envelope{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: timestamp,
		Payload:   raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}

	if b.nc != nil {
		if err := b.nc.Publish(SubjectPrefix+eventType, data); err != nil {
			log.Printf("Failed to publish %s to NATS: %v", eventType, err)
		}
	}
	if b.journalPath != "" {
		b.appendJournal(data)
	}
	return nil
}

func (b *Broker) appendJournal(line []byte) {
	b.journalMu.Lock()
	defer b.journalMu.Unlock()

	if err := os.MkdirAll(filepath.Dir(b.journalPath), 0755); err != nil {
		log.Printf("Failed to create journal directory: %v", err)
		return
	}
	f, err := os.OpenFile(b.journalPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Failed to open event journal: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Printf("Failed to write to event journal: %v", err)
	}
}

// Collector is a Publisher that retains events in memory, used in tests.
type Collector struct {
	mu     sync.Mutex
	events []core.Envelope
}

func (c *Collector) Publish(eventType string, timestamp int64, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, core.Envelope{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: timestamp,
		Payload:   raw,
	})
	return nil
}

// Events returns a copy of everything published so far.
func (c *Collector) Events() []core.Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]core.Envelope(nil), c.events...)
}
