package loop

import (
	"fmt"

	"github.com/tomz197/colorcatch/internal/config"
)

// RemovalPolicy decides how objects leave the active set during a tick.
type RemovalPolicy int

const (
	// RemovalCompact evaluates every object exactly once per tick and
	// filters the survivors in place.
	RemovalCompact RemovalPolicy = iota

	// RemovalSpliceForward deletes an object at its index and moves on to
	// the next index. The object shifted into the vacated slot is not
	// evaluated until the next tick.
	RemovalSpliceForward
)

// String returns the policy's settings name.
func (p RemovalPolicy) String() string {
	switch p {
	case RemovalCompact:
		return config.RemovalCompact
	case RemovalSpliceForward:
		return config.RemovalSpliceForward
	default:
		return fmt.Sprintf("RemovalPolicy(%d)", int(p))
	}
}

// ParseRemovalPolicy maps a settings name to a policy. An empty name selects RemovalCompact.
func ParseRemovalPolicy(name string) (RemovalPolicy, error) {
	switch name {
	case "", config.RemovalCompact:
		return RemovalCompact, nil
	case config.RemovalSpliceForward:
		return RemovalSpliceForward, nil
	default:
		return 0, fmt.Errorf("unknown removal policy %q", name)
	}
}
