package engine

import "sync"

// RWLocker is the lock the stores take around db access. Sqlite needs a real
// mutex to serialize writers, postgres handles concurrency itself and gets
// the no-op variant. MakeLock picks the right one for the engine type.
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

// NoopLocker satisfies RWLocker without locking anything
type NoopLocker struct{}

// Lock is a no-op
func (NoopLocker) Lock() {}

// Unlock is a no-op
func (NoopLocker) Unlock() {}

// RLock is a no-op
func (NoopLocker) RLock() {}

// RUnlock is a no-op
func (NoopLocker) RUnlock() {}
