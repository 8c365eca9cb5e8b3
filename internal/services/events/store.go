package eventsvc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/alastria/dome-relay/internal/storage/pebble"
)

// subStore persists subscription records so listeners can be re-registered
// after a restart. Keys: sub/{id}.
type subStore struct {
	db *pebblestore.DB
}

func subKey(id string) []byte {
	return []byte("sub/" + id)
}

const subKeyPrefix = "sub/"

func (st *subStore) Put(sub Subscription) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("events: encode subscription %s: %w", sub.ID, err)
	}
	return st.db.Set(subKey(sub.ID), b)
}

func (st *subStore) Get(id string) (Subscription, bool, error) {
	b, err := st.db.Get(subKey(id))
	if err != nil {
		if errors.Is(err, pebblestore.ErrNotFound) {
			return Subscription{}, false, nil
		}
		return Subscription{}, false, err
	}
	var sub Subscription
	if err := json.Unmarshal(b, &sub); err != nil {
		return Subscription{}, false, fmt.Errorf("events: decode subscription %s: %w", id, err)
	}
	return sub, true, nil
}

func (st *subStore) Delete(id string) error {
	return st.db.Delete(subKey(id))
}

func (st *subStore) List() ([]Subscription, error) {
	lower := []byte(subKeyPrefix)
	upper := []byte("sub0") // '0' follows '/' in byte order
	it, err := st.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var out []Subscription
	for ok := it.First(); ok; ok = it.Next() {
		var sub Subscription
		if err := json.Unmarshal(it.Value(), &sub); err != nil {
			return nil, fmt.Errorf("events: decode subscription %s: %w", it.Key(), err)
		}
		out = append(out, sub)
	}
	return out, nil
}
