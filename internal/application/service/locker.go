package service

import "sync"

// claimLocker serializes mutations per claim so a manual approval and the
// background sweep cannot both transition the same claim. Locks are created
// lazily and never removed; the claim set is small and in-process.
type claimLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newClaimLocker() *claimLocker {
	return &claimLocker{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the mutex for the claim and returns the unlock func.
func (l *claimLocker) lock(claimID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[claimID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[claimID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
