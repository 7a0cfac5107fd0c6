// Package legacyxo emulates the legacy callback-based express-checkout
// integration surface on top of a modern component-based checkout widget.
// Merchant pages keep calling the four historical entry points (setup,
// initXO, startFlow, and closeFlow) and every call is translated into
// initialization, rendering, or resolution of a single modern checkout
// component instance.
//
// # Install
//
// Use [Install] with a [Namespace] owned by the embedding environment and
// the collaborators the bridge consumes: a [ComponentFactory] for the modern
// widget, a [Navigator] for full-page redirects, and an [EligibilityGate]
// deciding whether the in-overlay flow may be used at all. Installation is
// idempotent: a namespace that already exposes a setup entry point is never
// overwritten.
//
// # Flow bridging
//
// The heart of the package is [FlowBridge], which emulates the legacy
// "await token" protocol: arming swaps capture functions into the shared
// slot table, and a later startFlow or closeFlow invocation settles the
// pending [Acquisition] exactly once, restoring the slots before any other
// logic runs. Tokens are parsed and normalized by the ectoken subpackage.
package legacyxo
