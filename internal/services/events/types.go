package eventsvc

import (
	"github.com/alastria/dome-relay/internal/ledger"
)

// PublishRequest carries one event to record on an event log.
type PublishRequest struct {
	// Ledger is the event log address to append to.
	Ledger string `json:"ledger"`
	// Iss is the publisher's DID; recorded as the event's publisherAddress.
	Iss                string   `json:"iss"`
	EntityID           string   `json:"entityId"`
	PreviousEntityHash string   `json:"previousEntityHash"`
	EventType          string   `json:"eventType"`
	DataLocation       string   `json:"dataLocation"`
	RelevantMetadata   []string `json:"relevantMetadata"`
}

// SubscribeRequest describes a webhook or in-process subscription.
type SubscribeRequest struct {
	// ID resumes an earlier subscription when non-empty; otherwise a fresh
	// UUID is assigned.
	ID string `json:"id,omitempty"`
	// Ledger is the event log address to listen on.
	Ledger string `json:"ledger"`
	// EventTypes to deliver. Required, no blank entries.
	EventTypes []string `json:"eventTypes"`
	// Metadata restricts delivery to events whose relevantMetadata intersects
	// this set. Empty means all environments.
	Metadata []string `json:"metadata,omitempty"`
	// OwnIss is the subscriber's own DID; events it published are skipped.
	OwnIss string `json:"ownIss"`
	// NotificationEndpoint receives matching events as JSON POSTs. Optional
	// when a Handler is configured.
	NotificationEndpoint string `json:"notificationEndpoint,omitempty"`
	// Filter is an optional CEL expression evaluated per event.
	Filter string `json:"filter,omitempty"`
	// Handler, when set, is invoked synchronously for each matching event.
	Handler func(ledger.Event) `json:"-"`
}

// Subscription is the durable record of a registered listener.
type Subscription struct {
	ID                   string   `json:"id"`
	Ledger               string   `json:"ledger"`
	EventTypes           []string `json:"eventTypes"`
	Metadata             []string `json:"metadata,omitempty"`
	OwnIss               string   `json:"ownIss"`
	NotificationEndpoint string   `json:"notificationEndpoint,omitempty"`
	Filter               string   `json:"filter,omitempty"`
	CreatedAtMs          int64    `json:"createdAtMs"`
}

// ActiveEvent is one resolved active event; Timestamp is in milliseconds.
type ActiveEvent struct {
	ID                 uint64   `json:"id"`
	Timestamp          int64    `json:"timestamp"`
	PublisherAddress   string   `json:"publisherAddress"`
	EntityID           string   `json:"entityIDHash"`
	PreviousEntityHash string   `json:"previousEntityIDHash"`
	EventType          string   `json:"eventType"`
	DataLocation       string   `json:"dataLocation"`
	RelevantMetadata   []string `json:"relevantMetadata"`
}
