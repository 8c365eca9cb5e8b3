package ledger

import (
	"encoding/json"
)

// Event is one immutable DOME event as recorded on the log.
//
// Timestamp is the block time in seconds since epoch while the event lives on
// the log; the HTTP layer converts to milliseconds when reporting active
// events. JSON field names follow the wire format notification endpoints
// receive.
type Event struct {
	// ID is the log-assigned sequence number (monotonic, unique per address).
	ID uint64 `json:"id"`
	// Timestamp is the ledger block time, seconds since epoch.
	Timestamp int64 `json:"timestamp"`
	// PublisherAddress identifies the account that submitted the event.
	PublisherAddress string `json:"publisherAddress"`
	// EntityID is the opaque hash of the logical entity this event describes.
	EntityID string `json:"entityIDHash"`
	// PreviousEntityHash links to the entity's prior recorded state.
	// Advisory only; never verified against the prior event.
	PreviousEntityHash string `json:"previousEntityIDHash"`
	EventType          string `json:"eventType"`
	// DataLocation points at the off-chain payload describing the event.
	DataLocation     string   `json:"dataLocation"`
	RelevantMetadata []string `json:"relevantMetadata"`
}

// Receipt reports the log position assigned to an appended event.
type Receipt struct {
	ID        uint64
	Timestamp int64
}

// body is the stored payload: everything the log does not assign itself.
type body struct {
	PublisherAddress   string   `json:"publisherAddress"`
	EntityID           string   `json:"entityIDHash"`
	PreviousEntityHash string   `json:"previousEntityIDHash"`
	EventType          string   `json:"eventType"`
	DataLocation       string   `json:"dataLocation"`
	RelevantMetadata   []string `json:"relevantMetadata"`
}

func encodeBody(ev Event) ([]byte, error) {
	return json.Marshal(body{
		PublisherAddress:   ev.PublisherAddress,
		EntityID:           ev.EntityID,
		PreviousEntityHash: ev.PreviousEntityHash,
		EventType:          ev.EventType,
		DataLocation:       ev.DataLocation,
		RelevantMetadata:   ev.RelevantMetadata,
	})
}

func decodeBody(id uint64, timestamp int64, payload []byte) (Event, error) {
	var b body
	if err := json.Unmarshal(payload, &b); err != nil {
		return Event{}, err
	}
	return Event{
		ID:                 id,
		Timestamp:          timestamp,
		PublisherAddress:   b.PublisherAddress,
		EntityID:           b.EntityID,
		PreviousEntityHash: b.PreviousEntityHash,
		EventType:          b.EventType,
		DataLocation:       b.DataLocation,
		RelevantMetadata:   b.RelevantMetadata,
	}, nil
}
