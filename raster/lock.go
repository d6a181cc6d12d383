package raster

import (
	"image"
	"sync"
	"sync/atomic"
)

// lease is one view's claim on a rectangle of a buffer.
type lease struct {
	rect      image.Rectangle
	exclusive bool
}

// regionLock tracks the rectangles currently borrowed by views.
//
// Shared leases may overlap each other. An exclusive lease may not
// overlap any other lease. Buffer accessors consult the table so that
// direct access cannot bypass a live MutView.
type regionLock struct {
	mu     sync.Mutex
	next   uint64
	held   map[uint64]lease
	active atomic.Int32
}

func (l *regionLock) acquire(r image.Rectangle, exclusive bool) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, h := range l.held {
		if !h.rect.Overlaps(r) {
			continue
		}
		if exclusive || h.exclusive {
			violation(ErrRegionBusy, "%v overlaps %v", r, h.rect)
		}
	}

	if l.held == nil {
		l.held = make(map[uint64]lease)
	}
	l.next++
	l.held[l.next] = lease{rect: r, exclusive: exclusive}
	l.active.Add(1)
	return l.next
}

func (l *regionLock) release(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[id]; ok {
		delete(l.held, id)
		l.active.Add(-1)
	}
}

// check panics if r may not be read (write == false) or written.
// Reads only conflict with exclusive leases.
func (l *regionLock) check(r image.Rectangle, write bool) {
	if l.active.Load() == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, h := range l.held {
		if h.rect.Overlaps(r) && (write || h.exclusive) {
			violation(ErrRegionBusy, "direct access to %v while %v is borrowed", r, h.rect)
		}
	}
}

// idle panics unless no lease is live. Used before storage is reallocated.
func (l *regionLock) idle(op string) {
	if n := l.active.Load(); n != 0 {
		violation(ErrRegionBusy, "%s with %d live views", op, n)
	}
}
