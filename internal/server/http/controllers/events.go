package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alastria/dome-relay/internal/ledger"
	"github.com/alastria/dome-relay/internal/runtime"
	eventsvc "github.com/alastria/dome-relay/internal/services/events"
)

// EventsController exposes the relay's event operations: publish,
// active-event queries, subscription management, and a diagnostic SSE tail.
type EventsController struct {
	rt  *runtime.Runtime
	svc *eventsvc.Service
}

// NewEventsController creates a new events controller.
func NewEventsController(rt *runtime.Runtime, svc *eventsvc.Service) *EventsController {
	return &EventsController{rt: rt, svc: svc}
}

// RegisterRoutes registers event routes with the given mux.
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/events/publish", c.handlePublish)
	mux.HandleFunc("/v1/events/active", c.handleActive)
	mux.HandleFunc("/v1/events/tail", c.handleTailSSE)
	mux.HandleFunc("/v1/subscriptions", c.handleSubscriptions)
	mux.HandleFunc("/v1/subscriptions/", c.handleSubscriptionByID)
}

// defaultLedger falls back to the configured event log address when a request
// does not name one.
func (c *EventsController) defaultLedger(addr string) string {
	if addr == "" {
		return c.rt.Config().DefaultLedger
	}
	return addr
}

// handlePublish records one event on the target event log.
//
// Returns 200 with {"timestamp": <seconds>} on success, 400 on validation
// failure, 500 otherwise.
func (c *EventsController) handlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req eventsvc.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Ledger = c.defaultLedger(req.Ledger)
	ts, err := c.svc.Publish(r.Context(), req)
	if err != nil {
		if eventsvc.IsIllegalArgument(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to publish event")
		return
	}
	writeJSON(w, map[string]int64{"timestamp": ts})
}

// handleActive resolves active events over an inclusive date window.
//
// Query: startDate, endDate (ms or RFC3339), env (comma list), ledger.
func (c *EventsController) handleActive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	startMs, ok := parseTimestamp(q.Get("startDate"))
	if !ok {
		writeError(w, http.StatusBadRequest, "startDate is required")
		return
	}
	endMs, ok := parseTimestamp(q.Get("endDate"))
	if !ok {
		writeError(w, http.StatusBadRequest, "endDate is required")
		return
	}
	envs := splitList(q.Get("env"))
	addr := c.defaultLedger(q.Get("ledger"))

	events, err := c.svc.ActiveEventsByDate(r.Context(), startMs, endMs, envs, addr)
	if err != nil {
		if eventsvc.IsIllegalArgument(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to resolve active events")
		return
	}
	writeJSON(w, map[string]any{"events": events})
}

// handleSubscriptions creates (POST) or lists (GET) subscriptions.
func (c *EventsController) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req eventsvc.SubscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Ledger = c.defaultLedger(req.Ledger)
		// HTTP subscriptions always deliver over the webhook; a missing
		// ownIss defaults to the relay's configured identity.
		if req.OwnIss == "" {
			req.OwnIss = c.rt.Config().OwnIss
		}
		h, err := c.svc.Subscribe(r.Context(), req)
		if err != nil {
			if eventsvc.IsIllegalArgument(err) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to create subscription")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": h.ID})
	case http.MethodGet:
		subs, err := c.svc.ListSubscriptions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list subscriptions")
			return
		}
		if subs == nil {
			subs = []eventsvc.Subscription{}
		}
		writeJSON(w, map[string]any{"subscriptions": subs})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSubscriptionByID cancels and removes a subscription (DELETE).
func (c *EventsController) handleSubscriptionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/subscriptions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "Invalid subscription id")
		return
	}
	if err := c.svc.CancelSubscription(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete subscription")
		return
	}
	writeNoContent(w)
}

// handleTailSSE streams live matching events as Server-Sent Events.
//
// Query: ledger, types (comma list), env (comma list). Diagnostic endpoint:
// delivery is best-effort and slow consumers may miss events.
func (c *EventsController) handleTailSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	addr := c.defaultLedger(q.Get("ledger"))
	types := splitList(q.Get("types"))
	envs := splitList(q.Get("env"))

	ch := make(chan ledger.Event, 64)
	sub, err := c.svc.Tail(r.Context(), addr, types, envs, func(ev ledger.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	if err != nil {
		if eventsvc.IsIllegalArgument(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to start tail")
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sink := sseSink{w: w, r: r}
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			if err := sink.Send(ev); err != nil {
				return
			}
			_ = sink.Flush()
		}
	}
}
