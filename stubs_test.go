package legacyxo

import (
	"context"
	"sync"
)

type stubEligibility struct {
	mu       sync.Mutex
	eligible bool
	checks   int
}

func (s *stubEligibility) IsEligible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks++
	return s.eligible
}

type recordingNavigator struct {
	mu         sync.Mutex
	urls       []string
	err        error
	onRedirect func(url string)
}

func (n *recordingNavigator) Redirect(url string) error {
	n.mu.Lock()
	n.urls = append(n.urls, url)
	cb := n.onRedirect
	err := n.err
	n.mu.Unlock()
	if cb != nil {
		cb(url)
	}
	return err
}

func (n *recordingNavigator) redirects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urls...)
}

type stubComponent struct {
	mu        sync.Mutex
	calls     []string
	patches   []PropsPatch
	renderErr error
	closeErr  error
}

func (c *stubComponent) record(call string) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
}

func (c *stubComponent) Render(context.Context) error {
	c.record("render")
	return c.renderErr
}

func (c *stubComponent) RenderHijack(_ context.Context, form string) error {
	c.record("hijack:" + form)
	return c.renderErr
}

func (c *stubComponent) UpdateProps(_ context.Context, patch PropsPatch) error {
	c.mu.Lock()
	c.calls = append(c.calls, "update")
	c.patches = append(c.patches, patch)
	c.mu.Unlock()
	return nil
}

func (c *stubComponent) Close(context.Context) error {
	c.record("close")
	return c.closeErr
}

func (c *stubComponent) CloseParentTemplate(context.Context) error {
	c.record("closeParent")
	return nil
}

func (c *stubComponent) callLog() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *stubComponent) patchLog() []PropsPatch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PropsPatch(nil), c.patches...)
}

type stubFactory struct {
	mu        sync.Mutex
	component *stubComponent
	initErr   error
	requests  []InitRequest
}

func (f *stubFactory) Init(req InitRequest) (Component, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	if f.component == nil {
		f.component = &stubComponent{}
	}
	component, err := f.component, f.initErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return component, nil
}

func (f *stubFactory) initCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *stubFactory) lastRequest() InitRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return InitRequest{}
	}
	return f.requests[len(f.requests)-1]
}

type stubElement struct {
	mu       sync.Mutex
	id       string
	attrs    map[string]string
	handlers []func() bool
}

func (e *stubElement) ID() string { return e.id }

func (e *stubElement) Attr(name string) string { return e.attrs[name] }

func (e *stubElement) OnClick(handler func() bool) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	e.mu.Unlock()
}

func (e *stubElement) handlerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// click simulates a user click through the most recently attached handler
// and reports whether default navigation was prevented.
func (e *stubElement) click() bool {
	e.mu.Lock()
	if len(e.handlers) == 0 {
		e.mu.Unlock()
		return false
	}
	handler := e.handlers[len(e.handlers)-1]
	e.mu.Unlock()
	return handler()
}

type stubPage struct {
	elements map[string][]Element
}

func (p *stubPage) QueryAll(selector string) []Element {
	return p.elements[selector]
}

type stubButtonRenderer struct {
	mu      sync.Mutex
	buttons []Button
	err     error
	calls   int
}

func (r *stubButtonRenderer) RenderButtons(context.Context, string, SetupOptions) ([]Button, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.buttons, r.err
}

type stubHints string

func (h stubHints) SessionHint() string { return string(h) }
