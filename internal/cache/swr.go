// Package cache implements the two local caching layers: a generic
// stale-while-revalidate fetch over the injected key-value store, and the
// per-repository analysis result cache.
//
// Both layers share one Storage but use disjoint key prefixes and
// independent freshness windows. Failures never propagate as errors to
// callers; stale or absent data is a value, not an exception.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/corey/folio/internal/ports"
)

// DefaultWindow is the network-cache freshness window.
const DefaultWindow = 4 * time.Hour

// timeNow is swapped in tests.
var timeNow = time.Now

// Remote is the envelope returned by Fetch. Exactly one of three shapes:
//
//   - Data set, Stale false: fresh value (from cache or a successful fetch).
//   - Data set, Stale true: the refresh failed and this is a previously
//     cached value beyond its freshness window.
//   - Data nil: no cached value ever existed and the fetch failed.
//     Callers treat this as "unavailable", never as an error.
//
// Never mutated after return; superseded by the next Fetch for the key.
type Remote[T any] struct {
	Data      *T
	Stale     bool
	FetchedAt time.Time
}

// record is the persisted envelope: the value plus its fetch time.
// Overwritten wholesale on every successful refresh.
type record struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // unix milliseconds
}

// Fetch looks up key in the store and serves it when fresher than window.
// Otherwise it calls fn: on success the new value is persisted and
// returned; on failure any prior record (even expired) is served with
// Stale set, and with no prior record the result is empty. Fetch failures
// are logged, never returned; the next explicit refresh is the only
// retry path.
func Fetch[T any](ctx context.Context, store ports.Storage, key string, window time.Duration, fn func(context.Context) (T, error)) Remote[T] {
	var prior *record

	raw, err := store.Get(key)
	if err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
	} else if raw != nil {
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			// Corrupt record: treat as a miss and evict the offender.
			slog.Warn("evicting corrupt cache record", "key", key, "error", err)
			if err := store.Delete(key); err != nil {
				slog.Warn("cache eviction failed", "key", key, "error", err)
			}
		} else {
			prior = &rec
		}
	}

	now := timeNow()
	if prior != nil {
		ts := time.UnixMilli(prior.Timestamp)
		if now.Sub(ts) < window {
			if v, err := decode[T](prior.Data); err == nil {
				return Remote[T]{Data: v, FetchedAt: ts}
			}
			// Undecodable payload counts as corrupt: fall through to fetch.
			slog.Warn("cache record not decodable", "key", key)
			prior = nil
		}
	}

	value, err := fn(ctx)
	if err != nil {
		slog.Warn("fetch failed", "key", key, "error", err)
		if prior != nil {
			if v, derr := decode[T](prior.Data); derr == nil {
				return Remote[T]{Data: v, Stale: true, FetchedAt: time.UnixMilli(prior.Timestamp)}
			}
		}
		return Remote[T]{}
	}

	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return Remote[T]{Data: &value, FetchedAt: now}
	}
	rec, err := json.Marshal(record{Data: data, Timestamp: now.UnixMilli()})
	if err == nil {
		err = store.Put(key, rec)
	}
	if err != nil {
		// Persist failures degrade to uncached; the value is still good.
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return Remote[T]{Data: &value, FetchedAt: now}
}

func decode[T any](data json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
