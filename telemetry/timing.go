package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/filescope/output"
)

// TimingCollector records a tree of timed operations.
type TimingCollector struct {
	mu    sync.Mutex
	roots []*timerNode
	stack []*timerNode // running timers started through Start
	now   func() time.Time
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// NewTimingCollector creates an empty timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{now: time.Now}
}

// Start begins timing an operation. It nests under the innermost timer
// started with Start that has not ended yet.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: c.now()}
	if n := len(c.stack); n > 0 {
		parent := c.stack[n-1]
		parent.children = append(parent.children, node)
	} else {
		c.roots = append(c.roots, node)
	}
	c.stack = append(c.stack, node)

	return &timingTimer{collector: c, node: node, stacked: true}
}

// Timings returns all finished operations in depth-first order.
func (c *TimingCollector) Timings() []Timing {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Timing
	var visit func(n *timerNode, depth int)
	visit = func(n *timerNode, depth int) {
		out = append(out, Timing{Name: n.name, Depth: depth, Duration: n.duration()})
		for _, child := range n.children {
			visit(child, depth+1)
		}
	}
	for _, root := range c.roots {
		visit(root, 0)
	}
	return out
}

// Report writes the timing tree to w.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTimingTree(w, root, styles)
	}
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
	stacked   bool
	once      sync.Once
}

// End stops the timer. Calling End more than once has no effect.
func (t *timingTimer) End() {
	t.once.Do(func() {
		c := t.collector
		c.mu.Lock()
		defer c.mu.Unlock()

		t.node.end = c.now()
		if !t.stacked {
			return
		}
		for i := len(c.stack) - 1; i >= 0; i-- {
			if c.stack[i] == t.node {
				c.stack = c.stack[:i]
				break
			}
		}
	})
}

// Child starts a timer nested under this one without making it the parent
// of later Start calls.
func (t *timingTimer) Child(name string) Timer {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: c.now()}
	t.node.children = append(t.node.children, node)

	return &timingTimer{collector: c, node: node}
}
