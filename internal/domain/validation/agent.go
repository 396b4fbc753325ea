package validation

import (
	"context"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/domain/preset"
)

// Agent performs the live multi-step validation of a preset against the real
// provider: reachability, response generation, debug-trace persistence. A
// returned error is recovered by the runner into a synthesized failure
// report; it never propagates to pollers.
type Agent interface {
	RunAll(ctx context.Context, p *preset.Preset) (*Report, error)
}
