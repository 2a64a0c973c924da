// Package ringbuffer implements the bounded ring the tick recorder keeps
// its most recent entries in. Writes never fail and never block: the
// director's tick goroutine is the single producer, and when the ring is
// full the oldest unread entry is evicted so the newest tick always lands.
// Draining reads may come from any goroutine and are lock-free.
package ringbuffer

import "sync/atomic"

// cacheLine pads the producer and consumer positions onto separate cache
// lines so they don't false-share.
const cacheLine = 64

type pad [cacheLine]byte

// RingBuffer is a single-producer multi-consumer ring over *T with
// overwrite-oldest semantics. Capacity is a power of two so positions wrap
// with a mask.
type RingBuffer[T any] struct {
	capacity uint64
	mask     uint64
	_        pad
	writePos atomic.Uint64
	_        pad
	readPos  atomic.Uint64
	_        pad
	slots    []atomic.Pointer[T]
}

// New creates a ring with the given capacity, which must be a power of two.
func New[T any](capacity uint32) *RingBuffer[T] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("ringbuffer: capacity must be a power of 2")
	}
	return &RingBuffer[T]{
		capacity: uint64(capacity),
		mask:     uint64(capacity) - 1,
		slots:    make([]atomic.Pointer[T], capacity),
	}
}

// Put appends item, evicting the oldest unread entry if the ring is full.
// The slot is populated before the write position is published, so a
// consumer never observes a claimed-but-unwritten entry. Only the single
// producer may call Put.
func (rb *RingBuffer[T]) Put(item *T) {
	writePos := rb.writePos.Load()
	for {
		readPos := rb.readPos.Load()
		if writePos-readPos < rb.capacity {
			break
		}
		// Full: push the read position past the oldest entry. A concurrent
		// Get may win this race instead, which frees the slot just the same.
		rb.readPos.CompareAndSwap(readPos, readPos+1)
	}
	rb.slots[writePos&rb.mask].Store(item)
	rb.writePos.Store(writePos + 1)
}

// Get removes and returns the oldest entry, or nil if the ring is empty.
// The position claim happens after the slot read; losing the claim (to
// another consumer, or to Put's eviction) discards the read and retries.
func (rb *RingBuffer[T]) Get() *T {
	for {
		readPos := rb.readPos.Load()
		if readPos >= rb.writePos.Load() {
			return nil
		}
		item := rb.slots[readPos&rb.mask].Load()
		if rb.readPos.CompareAndSwap(readPos, readPos+1) {
			return item
		}
	}
}

// TryGetBatch fills items with up to len(items) entries in arrival order,
// returning how many were retrieved.
func (rb *RingBuffer[T]) TryGetBatch(items []*T) int {
	count := 0
	for i := range items {
		item := rb.Get()
		if item == nil {
			break
		}
		items[i] = item
		count++
	}
	return count
}

// Size returns the number of unread entries currently held.
func (rb *RingBuffer[T]) Size() int {
	u := rb.writePos.Load() - rb.readPos.Load()
	if u > rb.capacity {
		u = rb.capacity
	}
	return int(u)
}

// Capacity returns the fixed slot count.
func (rb *RingBuffer[T]) Capacity() int {
	return int(rb.capacity)
}
