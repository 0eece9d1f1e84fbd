package signature

import (
	"fmt"
	"sync"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// Gate guards the "finalize & save" action for one draft instance. It opens
// only while the pad holds a captured signature, the agreement box is
// checked, and nothing has been saved yet. Once committed it stays closed.
type Gate struct {
	mu     sync.Mutex
	agreed bool
	saved  bool
}

func NewGate() *Gate {
	return &Gate{}
}

func (g *Gate) SetAgreed(v bool) {
	g.mu.Lock()
	g.agreed = v
	g.mu.Unlock()
}

func (g *Gate) Agreed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.agreed
}

func (g *Gate) Saved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saved
}

// Enabled reports whether finalize may run against pad.
func (g *Gate) Enabled(pad *Pad) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabledLocked(pad)
}

func (g *Gate) enabledLocked(pad *Pad) bool {
	return pad != nil && pad.State() == StateCaptured && !pad.ReadOnly() && g.agreed && !g.saved
}

// Commit closes the gate for good and returns the signature to persist. It
// fails with ErrNotReady when the gate is not enabled, so a second call is
// always a no-op for the caller.
func (g *Gate) Commit(pad *Pad) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.enabledLocked(pad) {
		return "", fmt.Errorf("%w: finalize needs a captured signature and agreement", domain.ErrNotReady)
	}
	g.saved = true
	return pad.Snapshot(), nil
}

// Rollback reopens a gate whose commit could not be persisted.
func (g *Gate) Rollback() {
	g.mu.Lock()
	g.saved = false
	g.mu.Unlock()
}
