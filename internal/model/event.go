package model

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names an emitted event.
type EventKind string

const (
	EventAccountCreated       EventKind = "account_created"
	EventAccountDestroyed     EventKind = "account_destroyed"
	EventMinted               EventKind = "minted"
	EventBurned               EventKind = "burned"
	EventBurnRequestRaised    EventKind = "burn_request_raised"
	EventBurnRequestConfirmed EventKind = "burn_request_confirmed"
	EventBurnRequestEvicted   EventKind = "burn_request_evicted"
	EventTransferred          EventKind = "transferred"
	EventStatementProcessed   EventKind = "statement_processed"
	EventAPIURLChanged        EventKind = "api_url_changed"
)

// Event is a fact emitted by the ramps module.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Kind          EventKind `json:"kind"`
	Account       AccountID `json:"account,omitempty"`
	Counterparty  AccountID `json:"counterparty,omitempty"`
	IBAN          IBAN      `json:"iban,omitempty"`
	Amount        Amount    `json:"amount,omitempty"`
	RequestID     uint64    `json:"request_id,omitempty"`
	FailedIndices []int     `json:"failed_indices,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh event of kind.
func NewEvent(kind EventKind, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       kind,
		OccurredAt: at.UTC(),
	}
}
