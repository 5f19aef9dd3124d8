// SPDX-License-Identifier: Unlicense OR MIT

package trap

import "sync/atomic"

// Mutex is a spin lock. It never parks the caller, so it works
// without a scheduler. A handler spinning on a lock held by the
// context it interrupted hangs the processor.
type Mutex struct {
	state uint32
}

//go:nosplit
func (m *Mutex) Lock() {
	for !atomic.CompareAndSwapUint32(&m.state, 0, 1) {
	}
}

//go:nosplit
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.state, 0, 1)
}

//go:nosplit
func (m *Mutex) Unlock() {
	if atomic.SwapUint32(&m.state, 0) == 0 {
		panic("trap: unlock of unlocked Mutex")
	}
}

// Once runs a function exactly once, spinning instead of parking
// concurrent callers.
type Once struct {
	m    Mutex
	done uint32
}

// Do calls f if and only if Do is being called for the first time and
// reports whether it did.
func (o *Once) Do(f func()) bool {
	if atomic.LoadUint32(&o.done) == 1 {
		return false
	}
	o.m.Lock()
	defer o.m.Unlock()
	if o.done != 0 {
		return false
	}
	defer atomic.StoreUint32(&o.done, 1)
	f()
	return true
}
