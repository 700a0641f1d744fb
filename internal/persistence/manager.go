package persistence

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ambientchat/backend/internal/models"
)

// Store is a durable home for the snapshot document. Load returns
// (nil, nil) when no snapshot exists yet; Save overwrites the previous
// document wholesale.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, doc []byte) error
}

// Snapshotter is the part of the core store the manager needs: a way to
// serialize the full state and to hydrate it back.
type Snapshotter interface {
	SnapshotJSON() ([]byte, error)
	Restore(state *models.State)
}

// DefaultInterval is the periodic flush cadence used when the
// configuration does not override it.
const DefaultInterval = 5 * time.Second

// Manager keeps the in-memory state durable: it restores the snapshot at
// startup and writes it back both on a fixed interval and eagerly after
// every mutation. Persistence is best-effort; a failed write is logged and
// retried at the next flush, never surfaced to the operation that
// triggered it.
type Manager struct {
	state    Snapshotter
	store    Store
	interval time.Duration
	flushCh  chan struct{}
}

// NewManager wires a snapshot store to the core state. A non-positive
// interval falls back to DefaultInterval.
func NewManager(state Snapshotter, store Store, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{
		state:    state,
		store:    store,
		interval: interval,
		flushCh:  make(chan struct{}, 1),
	}
}

// Restore loads the durable snapshot into the state. Both a missing and a
// corrupt snapshot degrade to an empty state with a diagnostic; startup
// never fails on persistence.
func (m *Manager) Restore(ctx context.Context) {
	doc, err := m.store.Load(ctx)
	if err != nil {
		log.Printf("WARNING: failed to read snapshot, starting empty: %v", err)
		return
	}
	if doc == nil {
		log.Println("No snapshot found, starting empty.")
		return
	}

	var state models.State
	if err := json.Unmarshal(doc, &state); err != nil {
		log.Printf("WARNING: snapshot is corrupt, starting empty: %v", err)
		return
	}
	m.state.Restore(&state)
	log.Printf("Snapshot restored: %d users, %d chats.", len(state.Users), len(state.Chats))
}

// FlushSoon schedules an eager flush. It never blocks: if a flush is
// already pending, the pending one will serialize this mutation too.
func (m *Manager) FlushSoon() {
	select {
	case m.flushCh <- struct{}{}:
	default:
	}
}

// Flush serializes the current state and writes it to the durable store.
func (m *Manager) Flush(ctx context.Context) error {
	doc, err := m.state.SnapshotJSON()
	if err != nil {
		return err
	}
	return m.store.Save(ctx, doc)
}

// Run is the flush loop: it services eager-flush requests and, as a safety
// net, rewrites the snapshot every interval. It returns after ctx is done
// and one final flush has been attempted.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.flushCh:
		case <-ticker.C:
		case <-ctx.Done():
			if err := m.Flush(context.Background()); err != nil {
				log.Printf("ERROR: final snapshot flush failed: %v", err)
			}
			return
		}
		if err := m.Flush(ctx); err != nil {
			log.Printf("ERROR: snapshot flush failed, will retry: %v", err)
		}
	}
}
