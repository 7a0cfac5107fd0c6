package legacyxo

import "sync"

// readyHook is a register-then-notify primitive standing in for the legacy
// property-setter interception: callbacks registered before the ready
// notification are queued, callbacks registered after it fire immediately,
// and every callback fires exactly once.
type readyHook struct {
	mu    sync.Mutex
	ready bool
	fns   []func()
}

func (h *readyHook) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	if h.ready {
		h.mu.Unlock()
		fn()
		return
	}
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

func (h *readyHook) Notify() {
	h.mu.Lock()
	if h.ready {
		h.mu.Unlock()
		return
	}
	h.ready = true
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
