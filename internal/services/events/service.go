package eventsvc

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/alastria/dome-relay/internal/ledger"
	"github.com/alastria/dome-relay/internal/runtime"
	logpkg "github.com/alastria/dome-relay/pkg/log"
)

// Service provides the relay's event operations on top of the ledger:
// publishing, active-event resolution over a date window, and filtered
// delivery to registered subscribers.
type Service struct {
	rt         *runtime.Runtime
	logger     logpkg.Logger
	store      *subStore
	httpClient *http.Client

	mu      sync.Mutex
	handles map[string]*Handle

	limMu    sync.Mutex
	limiters map[string]*rate.Limiter
}

// New returns a Service using a default logger.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil)
}

// NewWithLogger constructs the service with an injected logger.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("events"))
	}
	return &Service{
		rt:         rt,
		logger:     logger,
		store:      &subStore{db: rt.DB()},
		httpClient: &http.Client{},
		handles:    map[string]*Handle{},
		limiters:   map[string]*rate.Limiter{},
	}
}

// Publish validates and appends one event to the target event log. It
// returns the committed block timestamp in seconds. Validation failures
// surface as IllegalArgumentError before any ledger I/O.
func (s *Service) Publish(ctx context.Context, req PublishRequest) (int64, error) {
	if err := validatePublish(req); err != nil {
		return 0, err
	}
	lc, err := s.rt.Ledger(req.Ledger)
	if err != nil {
		return 0, err
	}
	t0 := time.Now()
	rc, err := lc.AppendEvent(ctx, ledger.Event{
		PublisherAddress:   req.Iss,
		EntityID:           req.EntityID,
		PreviousEntityHash: req.PreviousEntityHash,
		EventType:          req.EventType,
		DataLocation:       req.DataLocation,
		RelevantMetadata:   req.RelevantMetadata,
	})
	if err != nil {
		return 0, err
	}
	s.logger.With(
		logpkg.Str("ledger", req.Ledger),
		logpkg.Str("eventType", req.EventType),
		logpkg.Str("entityId", req.EntityID),
		logpkg.Uint64("id", rc.ID),
		logpkg.Int64("dur_ms", time.Since(t0).Milliseconds()),
	).Debug("events.publish")
	return rc.Timestamp, nil
}

func validatePublish(req PublishRequest) error {
	if strings.TrimSpace(req.Ledger) == "" {
		return illegalArg("ledger", "event log address must not be blank")
	}
	if strings.TrimSpace(req.EventType) == "" {
		return illegalArg("eventType", "must not be blank")
	}
	if strings.TrimSpace(req.DataLocation) == "" {
		return illegalArg("dataLocation", "must not be blank")
	}
	if strings.TrimSpace(req.Iss) == "" {
		return illegalArg("iss", "must not be blank")
	}
	if strings.TrimSpace(req.EntityID) == "" {
		return illegalArg("entityId", "must not be blank")
	}
	if strings.TrimSpace(req.PreviousEntityHash) == "" {
		return illegalArg("previousEntityHash", "must not be blank")
	}
	return nil
}
