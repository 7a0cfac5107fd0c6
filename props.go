package legacyxo

import (
	"encoding/json"
	"fmt"

	"github.com/oapi-codegen/runtime"
)

// Props are the initialization properties handed to the modern checkout
// component. All fields are marshalable so patches can be merged with JSON
// merge semantics.
type Props struct {
	SessionID   string      `json:"sessionID,omitempty"`
	AccountHint string      `json:"accountHint,omitempty"`
	Token       string      `json:"token,omitempty" validate:"omitempty,ectoken"`
	URL         string      `json:"url,omitempty" validate:"omitempty,url"`
	Locale      string      `json:"locale,omitempty" validate:"omitempty,xolocale"`
	Environment Environment `json:"env,omitempty" validate:"omitempty,oneof=production sandbox"`
}

// Validate checks the props against the component schema constraints.
func (p Props) Validate() error {
	if err := validate.Struct(p); err != nil {
		return normalizeValidationError(err)
	}
	return nil
}

// PropsPatch is a partial update applied to a live component instance.
type PropsPatch struct {
	Token string `json:"token,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Merge folds a patch into the props with JSON merge semantics, leaving the
// receiver untouched.
func (p Props) Merge(patch PropsPatch) (Props, error) {
	base, err := json.Marshal(p)
	if err != nil {
		return Props{}, fmt.Errorf("legacyxo: marshal props: %w", err)
	}
	overlay, err := json.Marshal(patch)
	if err != nil {
		return Props{}, fmt.Errorf("legacyxo: marshal props patch: %w", err)
	}
	merged, err := runtime.JSONMerge(base, overlay)
	if err != nil {
		return Props{}, fmt.Errorf("legacyxo: merge props patch: %w", err)
	}
	var out Props
	if err := json.Unmarshal(merged, &out); err != nil {
		return Props{}, fmt.Errorf("legacyxo: unmarshal merged props: %w", err)
	}
	return out, nil
}

// RedirectDecision is the mutually exclusive outcome of combining
// eligibility with input shape: either a full-page redirect or an
// in-overlay render.
type RedirectDecision struct {
	// RedirectURL, when non-empty, is the full-page navigation target.
	RedirectURL string
	// Props, when non-nil, are the initialization properties for an
	// overlay render.
	Props *Props
}
