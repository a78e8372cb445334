// Package registry manages the set of registered agents: registration,
// owner-gated metadata updates and the performance counter.
package registry

import (
	"log"
	"strings"

	"github.com/nivaro-ai/nivaro-launchpad/communication"
	"github.com/nivaro-ai/nivaro-launchpad/core"
	"github.com/nivaro-ai/nivaro-launchpad/ledger"
)

type Service struct {
	State  *ledger.State
	Events communication.Publisher
}

func NewService(state *ledger.State, events communication.Publisher) *Service {
	return &Service{State: state, Events: events}
}

// validateMetadata applies the bounded-length checks shared by registration
// and metadata updates.
func validateMetadata(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrInvalidAgentMetadata
	}
	if len(name) > core.MaxNameLength || len(description) > core.MaxDescriptionLength {
		return core.ErrMetadataTooLarge
	}
	return nil
}

// RegisterAgent creates an agent record keyed by (owner, agentID). The id is
// unique per owner; stake and performance counters start at zero.
func (s *Service) RegisterAgent(owner core.Identity, agentID uint64, name, description string, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}
	if !core.ValidIdentity(owner) {
		return core.ErrInvalidAccount
	}
	if err := validateMetadata(name, description); err != nil {
		return err
	}

	err := s.State.Update(func(tx *ledger.Tx) error {
		if _, err := tx.Config(); err != nil {
			return err
		}
		return tx.CreateAgent(&core.Agent{
			AgentID:     agentID,
			Owner:       owner,
			Name:        name,
			Description: description,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return err
	}

	log.Printf("Agent %d registered by owner %s", agentID, owner)
	s.publish(core.EventAgentRegistered, now, core.AgentRegistered{
		AgentID:   agentID,
		Owner:     owner,
		Timestamp: now,
		Name:      name,
	})
	return nil
}

// UpdateAgentMetadata replaces an agent's name and description. Owner only.
func (s *Service) UpdateAgentMetadata(caller, owner core.Identity, agentID uint64, name, description string, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}
	if err := validateMetadata(name, description); err != nil {
		return err
	}

	err := s.State.Update(func(tx *ledger.Tx) error {
		agent, err := tx.Agent(owner, agentID)
		if err != nil {
			return err
		}
		if err := core.RequireIdentity(agent.Owner, caller); err != nil {
			return err
		}
		agent.Name = name
		agent.Description = description
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.EventAgentUpdated, now, core.AgentUpdated{
		AgentID:   agentID,
		Owner:     owner,
		Timestamp: now,
		Name:      name,
	})
	return nil
}

// RecordPerformance checked-adds delta to an agent's performance score.
// Admin only.
func (s *Service) RecordPerformance(caller, owner core.Identity, agentID uint64, delta uint64, now int64) error {
	if now <= 0 {
		return core.ErrInvalidTimestamp
	}

	var newScore uint64
	err := s.State.Update(func(tx *ledger.Tx) error {
		cfg, err := tx.Config()
		if err != nil {
			return err
		}
		if err := core.RequireAdmin(cfg, caller); err != nil {
			return err
		}
		agent, err := tx.Agent(owner, agentID)
		if err != nil {
			return err
		}
		agent.PerformanceScore, err = core.CheckedAdd(agent.PerformanceScore, delta)
		if err != nil {
			return err
		}
		newScore = agent.PerformanceScore
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.EventPerformanceRecorded, now, core.PerformanceRecorded{
		AgentID:   agentID,
		Owner:     owner,
		Timestamp: now,
		Delta:     delta,
		NewScore:  newScore,
	})
	return nil
}

// GetAgent returns a copy of the agent record for (owner, agentID).
func (s *Service) GetAgent(owner core.Identity, agentID uint64) (*core.Agent, error) {
	var agent *core.Agent
	err := s.State.View(func(tx *ledger.Tx) error {
		a, err := tx.Agent(owner, agentID)
		if err != nil {
			return err
		}
		agent = a.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return agent, nil
}

// ListAgents returns copies of every registered agent.
func (s *Service) ListAgents() []*core.Agent {
	return s.State.Agents()
}

func (s *Service) publish(eventType string, now int64, payload any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(eventType, now, payload); err != nil {
		log.Printf("Failed to publish %s: %v", eventType, err)
	}
}
