package sheen

import (
	"fmt"
	"os"
)

// debugStats holds per-tick animation counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	interpolations int
	loops          int
	layers         int
}

func (s *Scene) collectStats() debugStats {
	return debugStats{
		interpolations: s.animator.Running(),
		loops:          s.animator.Loops(),
		layers:         len(s.layers),
	}
}

// debugLog prints animation counts to stderr when they differ from the
// previous tick.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || stats == s.lastStats {
		return
	}
	s.lastStats = stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[sheen] interpolations: %d | perimeter loops: %d | layers: %d\n",
		stats.interpolations, stats.loops, stats.layers)
}

// debugf prints a single debug line to stderr when debug mode is on.
func (s *Scene) debugf(format string, args ...any) {
	if s == nil || !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[sheen] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("sheen debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[sheen] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
