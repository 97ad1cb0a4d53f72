package types

import (
	tmsync "github.com/tendermint/tendermint/libs/sync"

	clienttypes "github.com/cosmos/ibc-handshake/modules/core/02-client/types"
)

// Event is the outcome of one successfully applied message. Fields that do not apply to
// the event type are left empty.
type Event struct {
	Type string `json:"type" yaml:"type"`

	ClientID         string               `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientType       string               `json:"client_type,omitempty" yaml:"client_type,omitempty"`
	ConsensusHeights []clienttypes.Height `json:"consensus_heights,omitempty" yaml:"consensus_heights,omitempty"`

	ConnectionID             string `json:"connection_id,omitempty" yaml:"connection_id,omitempty"`
	CounterpartyClientID     string `json:"counterparty_client_id,omitempty" yaml:"counterparty_client_id,omitempty"`
	CounterpartyConnectionID string `json:"counterparty_connection_id,omitempty" yaml:"counterparty_connection_id,omitempty"`

	PortID                string `json:"port_id,omitempty" yaml:"port_id,omitempty"`
	ChannelID             string `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	CounterpartyPortID    string `json:"counterparty_port_id,omitempty" yaml:"counterparty_port_id,omitempty"`
	CounterpartyChannelID string `json:"counterparty_channel_id,omitempty" yaml:"counterparty_channel_id,omitempty"`
}

// EventManager collects the events emitted while a single message is applied.
type EventManager struct {
	events []Event
}

// NewEventManager returns an empty EventManager.
func NewEventManager() *EventManager {
	return &EventManager{}
}

// EmitEvent records an event.
func (em *EventManager) EmitEvent(event Event) {
	em.events = append(em.events, event)
}

// Events returns the events emitted so far.
func (em *EventManager) Events() []Event {
	return em.events
}

// EventLog is the append-only record of the events a chain has emitted.
type EventLog interface {
	Append(event Event)
	// Last returns the most recently appended event.
	Last() (Event, bool)
	// Events returns a copy of every event in append order.
	Events() []Event
	Len() int
}

var _ EventLog = (*MemEventLog)(nil)

// MemEventLog is an in-memory EventLog safe for concurrent use.
type MemEventLog struct {
	mtx    tmsync.RWMutex
	events []Event
}

// NewMemEventLog returns an empty in-memory event log.
func NewMemEventLog() *MemEventLog {
	return &MemEventLog{}
}

func (l *MemEventLog) Append(event Event) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.events = append(l.events, event)
}

func (l *MemEventLog) Last() (Event, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

func (l *MemEventLog) Events() []Event {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	events := make([]Event, len(l.events))
	copy(events, l.events)
	return events
}

func (l *MemEventLog) Len() int {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return len(l.events)
}
