package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cachefront/cachefront/internal/core/domain/document"
	"github.com/cachefront/cachefront/internal/core/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Orchestrator mediates every read and write between the fast layer and the
// per-collection durable stores: read-through on Get, write-through on Set.
// It owns the collection registry; no global state is involved.
type Orchestrator struct {
	mu          sync.RWMutex
	collections map[string]ports.Collection

	fast      ports.FastLayer
	keyPrefix string
	observers []ports.OpObserver
	logger    *logrus.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver registers a diagnostics observer. Observers are invoked
// synchronously, once per operation, in registration order.
func WithObserver(obs ports.OpObserver) Option {
	return func(o *Orchestrator) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithKeyPrefix namespaces the fast-layer outer keys.
func WithKeyPrefix(prefix string) Option {
	return func(o *Orchestrator) { o.keyPrefix = prefix }
}

// New creates an Orchestrator over the given fast layer. Collections are
// registered separately, before steady-state traffic.
func New(fast ports.FastLayer, logger *logrus.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		collections: make(map[string]ports.Collection),
		fast:        fast,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RegisterCollection adds a collection to the known set. A duplicate name
// overwrites the prior entry; the caller only sees a debug note.
func (o *Orchestrator) RegisterCollection(col ports.Collection) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.collections[col.Name]; exists && o.logger != nil {
		o.logger.WithFields(logrus.Fields{"collection": col.Name}).Debug("cache: re-registering collection, overwriting prior entry")
	}
	o.collections[col.Name] = col
}

// Collections returns the registered collection names, sorted.
func (o *Orchestrator) Collections() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.collections))
	for name := range o.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o *Orchestrator) lookup(collection string) (ports.Collection, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	col, ok := o.collections[collection]
	return col, ok
}

// entryKey builds the fast-layer outer key for (collection, id).
func (o *Orchestrator) entryKey(collection, id string) string {
	if o.keyPrefix == "" {
		return collection + ":" + id
	}
	return o.keyPrefix + ":" + collection + ":" + id
}

func (o *Orchestrator) emit(ev ports.OpEvent) {
	for _, obs := range o.observers {
		obs.Observe(ev)
	}
}

func (o *Orchestrator) fastReachable(ctx context.Context) bool {
	return o.fast != nil && o.fast.Ping(ctx) == nil
}

func storeReachable(ctx context.Context, store ports.DocumentStore) bool {
	return store != nil && store.Ping(ctx) == nil
}

// Get returns the value of one field of the record identified by id. A fast
// layer hit never touches the durable store; a miss reads through and
// populates the fast layer with the durable value before returning it.
func (o *Orchestrator) Get(ctx context.Context, collection, id, field string) (any, bool, error) {
	start := time.Now()
	fail := func(err error) (any, bool, error) {
		o.emit(ports.OpEvent{Op: "get", Collection: collection, ID: id, Field: field, Outcome: ports.OutcomeError, Duration: time.Since(start), Err: err})
		return nil, false, err
	}

	col, ok := o.lookup(collection)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrUnknownCollection, collection))
	}

	key := o.entryKey(collection, id)
	fastUp := o.fastReachable(ctx)
	if fastUp {
		raw, hit, err := o.fast.GetField(ctx, key, field)
		if err == nil && hit {
			o.emit(ports.OpEvent{Op: "get", Collection: collection, ID: id, Field: field, Outcome: ports.OutcomeHit, Duration: time.Since(start)})
			return deserialize(raw), true, nil
		}
		if err != nil && o.logger != nil {
			o.logger.WithFields(logrus.Fields{"collection": collection, "id": id, "field": field}).WithError(err).Warn("cache: fast layer read failed, falling back to durable store")
		}
	}

	if !storeReachable(ctx, col.Store) {
		if !fastUp {
			return fail(ErrNotConnected)
		}
		return fail(fmt.Errorf("%w: cache miss for %s/%s", ErrStoreUnavailable, collection, id))
	}

	record, found, err := col.Store.FindByID(ctx, id)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s/%s from durable store: %w", collection, id, err))
	}

	value, present := record[field]
	if !found || !present {
		o.emit(ports.OpEvent{Op: "get", Collection: collection, ID: id, Field: field, Outcome: ports.OutcomeAbsent, Duration: time.Since(start)})
		return nil, false, nil
	}

	// Read-through fill. Failure to warm the fast layer never fails the read.
	if fastUp {
		o.warm(ctx, key, field, value)
	}

	o.emit(ports.OpEvent{Op: "get", Collection: collection, ID: id, Field: field, Outcome: ports.OutcomeMiss, Duration: time.Since(start)})
	return value, true, nil
}

// GetAll returns the whole record identified by id. A fast-layer hit returns
// every cached field deserialized; a miss reads the full record from the
// durable store and warms the fast layer field by field.
func (o *Orchestrator) GetAll(ctx context.Context, collection, id string) (document.Record, bool, error) {
	start := time.Now()
	fail := func(err error) (document.Record, bool, error) {
		o.emit(ports.OpEvent{Op: "getall", Collection: collection, ID: id, Outcome: ports.OutcomeError, Duration: time.Since(start), Err: err})
		return nil, false, err
	}

	col, ok := o.lookup(collection)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrUnknownCollection, collection))
	}

	key := o.entryKey(collection, id)
	fastUp := o.fastReachable(ctx)
	if fastUp {
		fields, hit, err := o.fast.GetAllFields(ctx, key)
		if err == nil && hit {
			o.emit(ports.OpEvent{Op: "getall", Collection: collection, ID: id, Outcome: ports.OutcomeHit, Duration: time.Since(start)})
			return deserializeFields(fields), true, nil
		}
		if err != nil && o.logger != nil {
			o.logger.WithFields(logrus.Fields{"collection": collection, "id": id}).WithError(err).Warn("cache: fast layer read failed, falling back to durable store")
		}
	}

	if !storeReachable(ctx, col.Store) {
		if !fastUp {
			return fail(ErrNotConnected)
		}
		return fail(fmt.Errorf("%w: cache miss for %s/%s", ErrStoreUnavailable, collection, id))
	}

	record, found, err := col.Store.FindByID(ctx, id)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s/%s from durable store: %w", collection, id, err))
	}
	if !found {
		o.emit(ports.OpEvent{Op: "getall", Collection: collection, ID: id, Outcome: ports.OutcomeAbsent, Duration: time.Since(start)})
		return nil, false, nil
	}

	if fastUp {
		for field, value := range record {
			o.warm(ctx, key, field, value)
		}
	}

	o.emit(ports.OpEvent{Op: "getall", Collection: collection, ID: id, Outcome: ports.OutcomeMiss, Duration: time.Since(start)})
	return record, true, nil
}

// Set writes one field through both layers: fast layer first, unconditionally
// and never rolled back, then schema validation, then the durable upsert that
// is authoritative for success.
func (o *Orchestrator) Set(ctx context.Context, collection, id, field string, value any) error {
	start := time.Now()
	fail := func(err error) error {
		o.emit(ports.OpEvent{Op: "set", Collection: collection, ID: id, Field: field, Outcome: ports.OutcomeError, Duration: time.Since(start), Err: err})
		return err
	}

	col, ok := o.lookup(collection)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrUnknownCollection, collection))
	}

	fastUp := o.fastReachable(ctx)
	storeUp := storeReachable(ctx, col.Store)
	if !fastUp && !storeUp {
		return fail(ErrNotConnected)
	}

	serialized, err := serialize(value)
	if err != nil {
		return fail(fmt.Errorf("failed to serialize value for %s.%s: %w", collection, field, err))
	}

	// The fast-layer write happens before schema validation and is not rolled
	// back if anything after it fails. The inconsistency window is accepted.
	if fastUp {
		if err := o.fast.SetField(ctx, o.entryKey(collection, id), field, serialized); err != nil && o.logger != nil {
			o.logger.WithFields(logrus.Fields{"collection": collection, "id": id, "field": field}).WithError(err).Warn("cache: fast layer write failed")
		}
	}

	if err := validateFieldType(col.Schema, field, value); err != nil {
		return fail(err)
	}

	if !storeUp {
		return fail(fmt.Errorf("%w: cannot persist %s/%s.%s", ErrStoreUnavailable, collection, id, field))
	}
	if err := col.Store.UpsertField(ctx, id, field, deserializeValue(value)); err != nil {
		return fail(fmt.Errorf("failed to upsert %s/%s.%s: %w", collection, id, field, err))
	}

	o.emit(ports.OpEvent{Op: "set", Collection: collection, ID: id, Field: field, Outcome: ports.OutcomeWrite, Duration: time.Since(start)})
	return nil
}

// warm populates one fast-layer field as a read side effect, logging failures.
func (o *Orchestrator) warm(ctx context.Context, key, field string, value any) {
	serialized, err := serialize(value)
	if err == nil {
		err = o.fast.SetField(ctx, key, field, serialized)
	}
	if err != nil && o.logger != nil {
		o.logger.WithFields(logrus.Fields{"key": key, "field": field}).WithError(err).Warn("cache: read-through fill failed")
	}
}

// WaitReady blocks until the fast layer and every registered collection's
// durable store answer a ping, polling each concurrently until ctx expires.
func (o *Orchestrator) WaitReady(ctx context.Context) error {
	o.mu.RLock()
	stores := make([]ports.DocumentStore, 0, len(o.collections))
	seen := make(map[ports.DocumentStore]struct{}, len(o.collections))
	for _, col := range o.collections {
		if _, dup := seen[col.Store]; !dup {
			seen[col.Store] = struct{}{}
			stores = append(stores, col.Store)
		}
	}
	o.mu.RUnlock()

	g, gctx := errgroup.WithContext(ctx)
	probe := func(ping func(context.Context) error) func() error {
		return func() error {
			for {
				if err := ping(gctx); err == nil {
					return nil
				}
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-time.After(250 * time.Millisecond):
				}
			}
		}
	}

	g.Go(probe(o.fast.Ping))
	for _, store := range stores {
		g.Go(probe(store.Ping))
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("backing layers not ready: %w", err)
	}
	if o.logger != nil {
		o.logger.Info("cache: all backing layers reachable")
	}
	return nil
}

var _ ports.CacheService = (*Orchestrator)(nil)
