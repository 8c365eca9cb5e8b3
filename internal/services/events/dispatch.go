package eventsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/time/rate"

	"github.com/alastria/dome-relay/internal/ledger"
	logpkg "github.com/alastria/dome-relay/pkg/log"
)

// Handle is a live, cancellable subscription. Delivery failures are reported
// on Err without stopping the listener.
type Handle struct {
	ID string

	live  *ledger.LiveSubscription
	errCh chan error

	closeOnce sync.Once
}

// Cancel stops the listener. The durable subscription record and cursor
// survive; Subscribe with the same ID resumes where delivery left off.
func (h *Handle) Cancel() {
	h.closeOnce.Do(func() { h.live.Close() })
}

// Done is closed when the listener goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.live.Done() }

// Err streams delivery failures (NotificationEndpointError). Best-effort:
// when nobody reads, failures are only logged.
func (h *Handle) Err() <-chan error { return h.errCh }

// Subscribe validates the request, persists the subscription, and starts a
// listener delivering matching events to the notification endpoint and/or
// in-process handler. There is no historical replay: a fresh subscription
// starts at the next appended event, while a known ID resumes from its
// committed cursor.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (*Handle, error) {
	if err := validateSubscribe(req); err != nil {
		return nil, err
	}
	filter, err := newCELFilter(req.Filter)
	if err != nil {
		return nil, illegalArg("filter", err.Error())
	}

	id := req.ID
	if id == "" {
		u, err := uuid.NewV4()
		if err != nil {
			return nil, fmt.Errorf("events: generate subscription id: %w", err)
		}
		id = u.String()
	}
	sub := Subscription{
		ID:                   id,
		Ledger:               req.Ledger,
		EventTypes:           req.EventTypes,
		Metadata:             req.Metadata,
		OwnIss:               req.OwnIss,
		NotificationEndpoint: req.NotificationEndpoint,
		Filter:               req.Filter,
		CreatedAtMs:          time.Now().UnixMilli(),
	}
	if err := s.store.Put(sub); err != nil {
		return nil, err
	}

	lc, err := s.rt.Ledger(req.Ledger)
	if err != nil {
		return nil, err
	}
	var fromID uint64
	if cur, ok := lc.Cursor(ctx, id); ok {
		fromID = cur + 1
	}

	h := &Handle{ID: id, errCh: make(chan error, 16)}
	logger := s.logger.With(logpkg.Str("subscription", id), logpkg.Str("ledger", req.Ledger))
	deliver := s.newDeliverFunc(sub, filter, req.Handler, lc, h, logger)

	// The listener outlives the caller's context (e.g. an HTTP create
	// request); it stops via Cancel or on process exit.
	live, err := lc.SubscribeLive(context.Background(), ledger.SubscribeOptions{FromID: fromID}, deliver)
	if err != nil {
		return nil, err
	}
	h.live = live

	s.mu.Lock()
	if prev, ok := s.handles[id]; ok {
		prev.Cancel()
	}
	s.handles[id] = h
	s.mu.Unlock()

	logger.Info("events.subscribe")
	return h, nil
}

func validateSubscribe(req SubscribeRequest) error {
	if strings.TrimSpace(req.Ledger) == "" {
		return illegalArg("ledger", "event log address must not be blank")
	}
	if len(req.EventTypes) == 0 {
		return illegalArg("eventTypes", "at least one event type is required")
	}
	for _, et := range req.EventTypes {
		if strings.TrimSpace(et) == "" {
			return illegalArg("eventTypes", "event types must not be blank")
		}
	}
	if strings.TrimSpace(req.OwnIss) == "" {
		return illegalArg("ownIss", "must not be blank")
	}
	if req.NotificationEndpoint == "" && req.Handler == nil {
		return illegalArg("notificationEndpoint", "a notification endpoint or handler is required")
	}
	return nil
}

// newDeliverFunc builds the per-event callback: predicate, then handler and
// webhook delivery, then cursor commit. The callback runs on the ledger
// subscription goroutine in append order.
func (s *Service) newDeliverFunc(sub Subscription, filter celFilter, handler func(ledger.Event), lc ledger.Client, h *Handle, logger logpkg.Logger) func(ledger.Event) {
	limiter := s.endpointLimiter(sub.NotificationEndpoint)
	return func(ev ledger.Event) {
		if matches(sub, filter, ev) {
			if handler != nil {
				handler(ev)
			}
			if sub.NotificationEndpoint != "" {
				go s.postNotification(sub.NotificationEndpoint, limiter, ev, h, logger)
			}
		}
		if err := lc.CommitCursor(context.Background(), sub.ID, ev.ID); err != nil {
			logger.With(logpkg.Err(err)).Warn("events.cursor_commit_failed")
		}
	}
}

// matches applies the subscription predicate, short-circuiting in order:
// event type, metadata intersection, self-exclusion, optional CEL filter.
func matches(sub Subscription, filter celFilter, ev ledger.Event) bool {
	typeOK := false
	for _, et := range sub.EventTypes {
		if et == ev.EventType {
			typeOK = true
			break
		}
	}
	if !typeOK {
		return false
	}
	if len(sub.Metadata) > 0 && !intersects(ev.RelevantMetadata, sub.Metadata) {
		return false
	}
	if ev.PublisherAddress == sub.OwnIss {
		return false
	}
	return filter.Eval(ev)
}

func (s *Service) endpointLimiter(endpoint string) *rate.Limiter {
	if endpoint == "" {
		return nil
	}
	s.limMu.Lock()
	defer s.limMu.Unlock()
	if lim, ok := s.limiters[endpoint]; ok {
		return lim
	}
	cfg := s.rt.Config().Webhook
	var lim *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	} else {
		lim = rate.NewLimiter(rate.Inf, 1)
	}
	s.limiters[endpoint] = lim
	return lim
}

// postNotification delivers one event to a webhook endpoint. Failures become
// NotificationEndpointError: logged, pushed to the handle's Err channel when
// there is room, and never fatal to the listener.
func (s *Service) postNotification(endpoint string, limiter *rate.Limiter, ev ledger.Event, h *Handle, logger logpkg.Logger) {
	timeout := s.rt.Config().Webhook.Timeout.Duration()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			s.reportDeliveryError(h, logger, &NotificationEndpointError{Endpoint: endpoint, Err: err}, ev)
			return
		}
	}

	body, err := json.Marshal(ev)
	if err != nil {
		s.reportDeliveryError(h, logger, &NotificationEndpointError{Endpoint: endpoint, Err: err}, ev)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		s.reportDeliveryError(h, logger, &NotificationEndpointError{Endpoint: endpoint, Err: err}, ev)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.reportDeliveryError(h, logger, &NotificationEndpointError{Endpoint: endpoint, Err: err}, ev)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.reportDeliveryError(h, logger, &NotificationEndpointError{Endpoint: endpoint, StatusCode: resp.StatusCode}, ev)
		return
	}
	logger.With(logpkg.Uint64("id", ev.ID), logpkg.Str("endpoint", endpoint)).Debug("events.notified")
}

func (s *Service) reportDeliveryError(h *Handle, logger logpkg.Logger, nerr *NotificationEndpointError, ev ledger.Event) {
	logger.With(logpkg.Uint64("id", ev.ID), logpkg.Err(nerr)).Warn("events.notify_failed")
	select {
	case h.errCh <- nerr:
	default:
	}
}

// CancelSubscription stops the live listener and removes the durable record
// and cursor.
func (s *Service) CancelSubscription(ctx context.Context, id string) error {
	s.mu.Lock()
	h, ok := s.handles[id]
	if ok {
		delete(s.handles, id)
	}
	s.mu.Unlock()
	if ok {
		h.Cancel()
	}

	sub, found, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if found {
		if lc, lerr := s.rt.Ledger(sub.Ledger); lerr == nil {
			_ = lc.DeleteCursor(ctx, id)
		}
	}
	return s.store.Delete(id)
}

// Tail streams live events to fn without creating a durable subscription.
// types and envs are optional narrowing filters; empty means all. Used by the
// diagnostic SSE endpoint.
func (s *Service) Tail(ctx context.Context, addr string, types, envs []string, fn func(ledger.Event)) (*ledger.LiveSubscription, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, illegalArg("ledger", "event log address must not be blank")
	}
	lc, err := s.rt.Ledger(addr)
	if err != nil {
		return nil, err
	}
	return lc.SubscribeLive(ctx, ledger.SubscribeOptions{}, func(ev ledger.Event) {
		if len(types) > 0 {
			ok := false
			for _, t := range types {
				if t == ev.EventType {
					ok = true
					break
				}
			}
			if !ok {
				return
			}
		}
		if len(envs) > 0 && !intersects(ev.RelevantMetadata, envs) {
			return
		}
		fn(ev)
	})
}

// ListSubscriptions returns all durable subscription records.
func (s *Service) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	return s.store.List()
}
