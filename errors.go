package legacyxo

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to every error the bridge emits.
const (
	ErrorCodeExpectedToken    = "XO_EXPECTED_TOKEN"
	ErrorCodeFlowClosed       = "XO_FLOW_CLOSED"
	ErrorCodeAlreadyInstalled = "XO_ALREADY_INSTALLED"
	ErrorCodeSuperseded       = "XO_ACQUISITION_SUPERSEDED"
	ErrorCodeBadInput         = "XO_BAD_INPUT"
	ErrorCodeRenderFailed     = "XO_RENDER_FAILED"
)

// errExpectedToken signals a protocol violation: the embedding page invoked
// startFlow with input no token could be parsed from. This indicates a
// merchant integration bug and is always surfaced to the caller.
func errExpectedToken(raw string) *goerrors.Error {
	return goerrors.New("expected token to be passed to startFlow", goerrors.CategoryBadInput).
		WithTextCode(ErrorCodeExpectedToken).
		WithMetadata(map[string]any{"raw_input": raw})
}

// errFlowClosed rejects a pending acquisition when the flow is closed. It is
// part of the normal cancellation path and consumed internally by the
// component, never thrown across the public boundary.
func errFlowClosed() *goerrors.Error {
	return goerrors.New("checkout flow closed before a token was supplied", goerrors.CategoryOperation).
		WithTextCode(ErrorCodeFlowClosed)
}

func errAlreadyInstalled() *goerrors.Error {
	return goerrors.New("legacy checkout api is already installed", goerrors.CategoryConflict).
		WithTextCode(ErrorCodeAlreadyInstalled)
}

func errSuperseded(acquisitionID string) *goerrors.Error {
	return goerrors.New("token acquisition superseded by a newer arm", goerrors.CategoryConflict).
		WithTextCode(ErrorCodeSuperseded).
		WithMetadata(map[string]any{"acquisition_id": acquisitionID})
}

func errBadInput(message string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithTextCode(ErrorCodeBadInput)
	if len(metadata) > 0 {
		err = err.WithMetadata(metadata)
	}
	return err
}

func errRender(cause error) *goerrors.Error {
	return goerrors.Wrap(cause, goerrors.CategoryOperation, "render checkout component").
		WithTextCode(ErrorCodeRenderFailed)
}

// IsProtocolViolation reports whether err means no token could be parsed
// from merchant-supplied input.
func IsProtocolViolation(err error) bool {
	return hasTextCode(err, ErrorCodeExpectedToken)
}

// IsFlowClosed reports whether err is the expected cancellation rejection.
func IsFlowClosed(err error) bool {
	return hasTextCode(err, ErrorCodeFlowClosed)
}

// IsAlreadyInstalled reports whether err came from a duplicate Install.
func IsAlreadyInstalled(err error) bool {
	return hasTextCode(err, ErrorCodeAlreadyInstalled)
}

// IsSuperseded reports whether err rejected an acquisition displaced by a
// newer arm.
func IsSuperseded(err error) bool {
	return hasTextCode(err, ErrorCodeSuperseded)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}
