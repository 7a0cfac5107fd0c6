package legacyxo

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/payfront/legacyxo/ectoken"
)

// AcquisitionState tracks one token acquisition through its lifecycle.
type AcquisitionState int32

const (
	StateIdle AcquisitionState = iota
	StateArmed
	StateResolved
	StateRejected
)

// String implements fmt.Stringer.
func (s AcquisitionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateResolved:
		return "resolved"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Slots models the three page-global legacy entry points. They are a single
// process-wide resource: the embedding page invokes whatever functions are
// currently installed, so arming must snapshot and restore defensively.
type Slots struct {
	mu        sync.Mutex
	initXO    func()
	startFlow func(raw string) error
	closeFlow func()
}

type slotSnapshot struct {
	initXO    func()
	startFlow func(raw string) error
	closeFlow func()
}

func (s *Slots) set(initXO func(), startFlow func(string) error, closeFlow func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initXO, s.startFlow, s.closeFlow = initXO, startFlow, closeFlow
}

// arm swaps in the capture functions built by build. The builder receives a
// restore function that reinstates the previous slot values; restore is safe
// to call from inside a capture handler and is a no-op after the first call.
func (s *Slots) arm(build func(restore func()) (initXO func(), startFlow func(string) error, closeFlow func())) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := slotSnapshot{s.initXO, s.startFlow, s.closeFlow}
	var once sync.Once
	restore := func() {
		once.Do(func() {
			s.mu.Lock()
			s.initXO, s.startFlow, s.closeFlow = snap.initXO, snap.startFlow, snap.closeFlow
			s.mu.Unlock()
		})
	}
	s.initXO, s.startFlow, s.closeFlow = build(restore)
}

// InvokeInitXO runs the currently installed initXO entry point.
func (s *Slots) InvokeInitXO() {
	s.mu.Lock()
	fn := s.initXO
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// InvokeStartFlow runs the currently installed startFlow entry point.
func (s *Slots) InvokeStartFlow(raw string) error {
	s.mu.Lock()
	fn := s.startFlow
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(raw)
}

// InvokeCloseFlow runs the currently installed closeFlow entry point.
func (s *Slots) InvokeCloseFlow() {
	s.mu.Lock()
	fn := s.closeFlow
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

type acquireResult struct {
	token ectoken.Token
	err   error
}

// Acquisition is a one-shot token request made on behalf of a component
// instance. It settles at most once, through the startFlow or closeFlow
// capture path.
type Acquisition struct {
	id    string
	state *atomic.Int32
	done  chan acquireResult
}

func newAcquisition() *Acquisition {
	return &Acquisition{
		id:    uuid.NewString(),
		state: atomic.NewInt32(int32(StateArmed)),
		done:  make(chan acquireResult, 1),
	}
}

// ID returns the correlation id attached to log entries for this
// acquisition.
func (a *Acquisition) ID() string { return a.id }

// State reports the current lifecycle state.
func (a *Acquisition) State() AcquisitionState {
	return AcquisitionState(a.state.Load())
}

// Await blocks until the acquisition settles or ctx is done. It may be
// called at most once per acquisition.
func (a *Acquisition) Await(ctx context.Context) (ectoken.Token, error) {
	select {
	case res := <-a.done:
		return res.token, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (a *Acquisition) resolve(tok ectoken.Token) bool {
	if !a.state.CompareAndSwap(int32(StateArmed), int32(StateResolved)) {
		return false
	}
	a.done <- acquireResult{token: tok}
	return true
}

func (a *Acquisition) reject(err error) bool {
	if !a.state.CompareAndSwap(int32(StateArmed), int32(StateRejected)) {
		return false
	}
	a.done <- acquireResult{err: err}
	return true
}

// FlowBridge emulates the legacy callback-style "acquire token" protocol on
// top of the shared slot table, for exactly one component instance's precall
// token request at a time.
type FlowBridge struct {
	slots       *Slots
	eligibility EligibilityGate
	navigator   Navigator
	config      *Config
	logger      Logger

	mu      sync.Mutex
	pending *Acquisition
	restore func()
}

func newFlowBridge(slots *Slots, eligibility EligibilityGate, navigator Navigator, cfg *Config, logger Logger) *FlowBridge {
	return &FlowBridge{
		slots:       slots,
		eligibility: eligibility,
		navigator:   navigator,
		config:      cfg,
		logger:      logger,
	}
}

// State reports idle when no acquisition is pending, otherwise the pending
// acquisition's state.
func (b *FlowBridge) State() AcquisitionState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return StateIdle
	}
	return b.pending.State()
}

// ComponentHandle is the slice of the component surface the flow bridge
// needs while armed. The handle is passed explicitly so capture functions
// never depend on ambient state to find their component.
type ComponentHandle interface {
	UpdateProps(ctx context.Context, patch PropsPatch) error
	Close(ctx context.Context) error
}

// Arm overwrites the slot table with capture functions bound to component
// and returns the pending acquisition. Arming while an acquisition is
// already pending rejects the prior one and wins; the slots only ever hold
// one set of captures.
func (b *FlowBridge) Arm(component ComponentHandle) *Acquisition {
	b.mu.Lock()
	prev, prevRestore := b.pending, b.restore
	b.pending, b.restore = nil, nil
	b.mu.Unlock()

	if prev != nil {
		// Unwind the superseded captures first so the snapshot taken below
		// holds the default entry points, not the stale captures.
		if prevRestore != nil {
			prevRestore()
		}
		if prev.reject(errSuperseded(prev.id)) {
			b.logger.Warn("arming while a token acquisition is pending; rejecting the prior one",
				"superseded_id", prev.id)
		}
	}

	acq := newAcquisition()
	b.mu.Lock()
	b.pending = acq
	b.mu.Unlock()

	var armedRestore func()
	b.slots.arm(func(restore func()) (func(), func(string) error, func()) {
		armedRestore = restore
		// Re-entrant initialization attempts are suppressed while the
		// window is already open.
		initXO := func() {}
		startFlow := func(raw string) error {
			return b.captureStartFlow(acq, component, restore, raw)
		}
		closeFlow := func() {
			b.captureCloseFlow(acq, component, restore)
		}
		return initXO, startFlow, closeFlow
	})

	b.mu.Lock()
	if b.pending == acq {
		b.restore = armedRestore
	}
	b.mu.Unlock()

	b.logger.Debug("flow bridge armed", "acquisition_id", acq.id)
	return acq
}

// captureStartFlow handles a startFlow invocation while armed. Restoration
// must complete before any parse or eligibility logic so a reentrant call
// triggered from inside that logic observes the restored slots.
func (b *FlowBridge) captureStartFlow(acq *Acquisition, component ComponentHandle, restore func(), raw string) error {
	restore()
	b.clearPending(acq)

	tok, ok := ectoken.Parse(raw)
	if !ok {
		err := errExpectedToken(raw)
		acq.reject(err)
		b.logger.Error("startFlow invoked without a parseable token",
			"acquisition_id", acq.id, "raw_input", raw)
		return err
	}

	if !b.eligibility.IsEligible() {
		// Full navigation takes over; the component is abandoned and the
		// acquisition deliberately left unsettled.
		url := ectoken.RedirectURL(raw, b.config.CheckoutURL())
		b.logger.Info("context ineligible for overlay checkout; redirecting",
			"acquisition_id", acq.id, "url", url)
		if err := b.navigator.Redirect(url); err != nil {
			b.logger.Error("full-page redirect failed", "acquisition_id", acq.id, "error", err)
			return err
		}
		return nil
	}

	if ectoken.IsURLForm(raw) {
		if err := component.UpdateProps(context.Background(), PropsPatch{URL: raw}); err != nil {
			b.logger.Error("update component url before resolve failed",
				"acquisition_id", acq.id, "error", err)
		}
	}

	if acq.resolve(tok) {
		b.logger.Debug("token acquisition resolved", "acquisition_id", acq.id)
	}
	return nil
}

// captureCloseFlow handles a closeFlow invocation while armed. Closing the
// component is best effort and never surfaced to the merchant.
func (b *FlowBridge) captureCloseFlow(acq *Acquisition, component ComponentHandle, restore func()) {
	restore()
	b.clearPending(acq)

	acq.reject(errFlowClosed())
	if err := component.Close(context.Background()); err != nil {
		b.logger.Warn("close checkout component", "acquisition_id", acq.id, "error", err)
	}
	b.logger.Debug("token acquisition rejected: flow closed", "acquisition_id", acq.id)
}

func (b *FlowBridge) clearPending(acq *Acquisition) {
	b.mu.Lock()
	if b.pending == acq {
		b.pending = nil
		b.restore = nil
	}
	b.mu.Unlock()
}
