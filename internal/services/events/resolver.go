package eventsvc

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alastria/dome-relay/internal/ledger"
	logpkg "github.com/alastria/dome-relay/pkg/log"
)

// ActiveEventsByDate resolves, per entity, the most recent event whose block
// timestamp falls inside the inclusive window [startMs, endMs]. Entities keep
// the order of their first appearance in the window; output timestamps are in
// milliseconds. envs, when non-empty, keeps only entities whose winning event
// carries at least one of the given metadata tags.
func (s *Service) ActiveEventsByDate(ctx context.Context, startMs, endMs int64, envs []string, addr string) ([]ActiveEvent, error) {
	if startMs > endMs {
		return nil, illegalArg("startDate", "window start is after window end")
	}
	if strings.TrimSpace(addr) == "" {
		return nil, illegalArg("ledger", "event log address must not be blank")
	}
	lc, err := s.rt.Ledger(addr)
	if err != nil {
		return nil, err
	}

	t0 := time.Now()
	height, err := lc.CurrentHeight(ctx)
	if err != nil {
		return nil, err
	}
	if height == 0 {
		return []ActiveEvent{}, nil
	}
	all, err := lc.QueryRange(ctx, 1, height)
	if err != nil {
		return nil, err
	}

	tsMs := make([]int64, len(all))
	for i, ev := range all {
		tsMs[i] = ev.Timestamp * 1000
	}
	lo, hi, ok := Locate(tsMs, startMs, endMs)
	if !ok {
		return []ActiveEvent{}, nil
	}

	// Entities in first-appearance order, deduplicated. The index is an
	// optimization; membership is re-checked here.
	var entities []string
	seen := map[string]struct{}{}
	for _, ev := range all[lo : hi+1] {
		ms := ev.Timestamp * 1000
		if ms < startMs || ms > endMs {
			continue
		}
		if _, dup := seen[ev.EntityID]; dup {
			continue
		}
		seen[ev.EntityID] = struct{}{}
		entities = append(entities, ev.EntityID)
	}

	winners := make([]*ledger.Event, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.rt.Config().ResolverConcurrency
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, entity := range entities {
		i, entity := i, entity
		g.Go(func() error {
			history, err := lc.QueryByEntity(gctx, entity, 0, 0)
			if err != nil {
				return err
			}
			// Latest first. Equal block timestamps resolve to the higher ID,
			// which descending scan order yields naturally.
			for j := len(history) - 1; j >= 0; j-- {
				ev := history[j]
				ms := ev.Timestamp * 1000
				if ms < startMs || ms > endMs {
					continue
				}
				if len(envs) > 0 && !intersects(ev.RelevantMetadata, envs) {
					break
				}
				winners[i] = &history[j]
				break
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ActiveEvent, 0, len(entities))
	for _, w := range winners {
		if w == nil {
			continue
		}
		out = append(out, ActiveEvent{
			ID:                 w.ID,
			Timestamp:          w.Timestamp * 1000,
			PublisherAddress:   w.PublisherAddress,
			EntityID:           w.EntityID,
			PreviousEntityHash: w.PreviousEntityHash,
			EventType:          w.EventType,
			DataLocation:       w.DataLocation,
			RelevantMetadata:   w.RelevantMetadata,
		})
	}
	s.logger.With(
		logpkg.Str("ledger", addr),
		logpkg.Int("entities", len(entities)),
		logpkg.Int("active", len(out)),
		logpkg.Int64("dur_ms", time.Since(t0).Milliseconds()),
	).Debug("events.active")
	return out, nil
}

// intersects reports whether a and b share at least one element.
func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
