package assets

import "sync"

// LoadingManager counts queued and finished loads and closes its done channel
// exactly once, when the last queued item finishes.
type LoadingManager struct {
	mu     sync.Mutex
	total  int
	loaded int
	done   chan struct{}
	closed bool

	// OnProgress, when set, is called after each finished item.
	OnProgress func(key string, loaded, total int)
}

// NewLoadingManager returns an idle manager.
func NewLoadingManager() *LoadingManager {
	return &LoadingManager{done: make(chan struct{})}
}

// Begin registers n pending items. With n == 0 the manager completes at once.
func (lm *LoadingManager) Begin(n int) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.total += n
	if lm.loaded >= lm.total {
		lm.closeLocked()
	}
}

// ItemDone marks one item as finished.
func (lm *LoadingManager) ItemDone(key string) {
	lm.mu.Lock()
	lm.loaded++
	loaded, total := lm.loaded, lm.total
	cb := lm.OnProgress
	if loaded >= total {
		lm.closeLocked()
	}
	lm.mu.Unlock()

	if cb != nil {
		cb(key, loaded, total)
	}
}

// Progress returns finished and total item counts.
func (lm *LoadingManager) Progress() (loaded, total int) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return lm.loaded, lm.total
}

// Done is closed once every begun item has finished.
func (lm *LoadingManager) Done() <-chan struct{} {
	return lm.done
}

func (lm *LoadingManager) closeLocked() {
	if lm.closed {
		return
	}
	lm.closed = true
	close(lm.done)
}
