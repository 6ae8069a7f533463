package compose

import "github.com/floranaubry/dev2-interweb-site/internal/platform/config"

// FailureAction decides how a block-level failure is surfaced.
type FailureAction int

const (
	// ActionWarn renders an inline diagnostic and continues composing the page.
	ActionWarn FailureAction = iota
	// ActionFailGeneric aborts the whole page with a generic error.
	ActionFailGeneric
	// ActionFailDetailed aborts with the full structured error attached.
	ActionFailDetailed
)

// ExecutionContext distinguishes a live page request from batch tooling such
// as the CI guard, which wants the full detail regardless of environment.
type ExecutionContext int

const (
	ContextRequest ExecutionContext = iota
	ContextTooling
)

// PolicyFor maps environment and execution context to a failure action.
// Development requests keep rendering with visible diagnostics, production
// requests fail the whole page without leaking schema internals, and tooling
// always gets the detailed failure.
func PolicyFor(env config.Environment, execCtx ExecutionContext) FailureAction {
	if execCtx == ContextTooling {
		return ActionFailDetailed
	}
	if env.IsDevelopment() {
		return ActionWarn
	}
	return ActionFailGeneric
}
