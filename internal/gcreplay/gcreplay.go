// Package gcreplay records recent director ticks for offline inspection: a
// bounded in-memory ring of the most recent tick outcomes, optionally
// mirrored to an append-only bbolt database so a `simulate --record` run
// can be replayed later.
package gcreplay

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ibs-source/zgc/director/internal/gctypes"
	"github.com/ibs-source/zgc/director/pkg/jsonx"
	"github.com/ibs-source/zgc/director/pkg/pow2"
	"github.com/ibs-source/zgc/director/pkg/ringbuffer"
	bolt "go.etcd.io/bbolt"
)

// Entry is one tick's recorded outcome. CorrelationID matches the id logged
// with the submitted collection request; it is the zero UUID on ticks that
// submitted nothing.
type Entry struct {
	Seq           uint64
	CorrelationID uuid.UUID
	Cause         gctypes.Cause
	Adjusted      bool
	YoungCount    uint
	OldCount      uint
}

// Recorder keeps a bounded in-memory ring of recent entries and, if opened
// with a path, appends every entry to a bbolt database as well. Record must
// be called from a single goroutine (the director's tick loop, via OnTick);
// Recent may be called from any goroutine.
type Recorder struct {
	ring *ringbuffer.RingBuffer[Entry]
	db   *bolt.DB
	seq  uint64
}

const bucketName = "ticks"

// New constructs a Recorder with an in-memory ring of at least the given
// capacity, rounded up to a power of two.
func New(capacity uint32) *Recorder {
	return &Recorder{ring: ringbuffer.New[Entry](uint32(pow2.RoundUpPow2(uint64(capacity))))}
}

// Open additionally mirrors every recorded entry to a bbolt database file.
func (r *Recorder) Open(path string) error {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return fmt.Errorf("gcreplay: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("gcreplay: create bucket: %w", err)
	}
	r.db = db
	return nil
}

// Close closes the backing bbolt database, if one was opened.
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Record appends one entry to the in-memory ring (the ring evicts its
// oldest entry if full) and, if a database is open, persists it.
func (r *Recorder) Record(e Entry) error {
	r.seq++
	e.Seq = r.seq
	r.ring.Put(&e)

	if r.db == nil {
		return nil
	}
	data, err := jsonx.Marshal(e)
	if err != nil {
		return fmt.Errorf("gcreplay: marshal entry: %w", err)
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		key := []byte(fmt.Sprintf("%020d", e.Seq))
		return b.Put(key, data)
	})
}

// Recent drains the in-memory ring and returns up to n of the most recently
// recorded entries it still held, oldest first. Older held entries beyond
// those n are discarded.
func (r *Recorder) Recent(n int) []Entry {
	for extra := r.ring.Size() - n; extra > 0; extra-- {
		r.ring.Get()
	}
	items := make([]*Entry, n)
	got := r.ring.TryGetBatch(items)
	out := make([]Entry, got)
	for i := 0; i < got; i++ {
		out[i] = *items[i]
	}
	return out
}

// Load opens a previously recorded bbolt database read-only and returns its
// entries in sequence order, for `zdirectorctl simulate --replay <path>`.
func Load(path string) ([]Entry, error) {
	db, err := bolt.Open(path, 0o400, &bolt.Options{ReadOnly: true, Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("gcreplay: open %s: %w", path, err)
	}
	defer func() { _ = db.Close() }()

	var entries []Entry
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var e Entry
			if err := jsonx.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("gcreplay: unmarshal entry: %w", err)
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
