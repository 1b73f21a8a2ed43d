package tutor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lessontutor/models"

	"github.com/samber/lo"
)

// End is the terminal pseudo-node. Reaching it ends the turn.
const End = "__end__"

const defaultMaxSteps = 16

var ErrMaxStepsExceeded = errors.New("turn exceeded maximum number of steps")

// NodeFunc runs one stage. It must not mutate state; it returns the partial
// update to merge instead.
type NodeFunc func(ctx context.Context, state *models.ConversationState) (models.Update, error)

// RouteFunc picks the next node from the state produced by the previous one.
type RouteFunc func(state *models.ConversationState) string

// NodeError reports which stage failed a turn.
type NodeError struct {
	Node string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

type conditionalEdge struct {
	route   RouteFunc
	targets []string
}

// Graph is the mutable builder. It is not safe for concurrent use.
type Graph struct {
	nodes       map[string]NodeFunc
	edges       map[string]string
	conditional map[string]conditionalEdge
	entry       string
	errs        []error
}

func NewGraph() *Graph {
	return &Graph{
		nodes:       map[string]NodeFunc{},
		edges:       map[string]string{},
		conditional: map[string]conditionalEdge{},
	}
}

func (g *Graph) AddNode(name string, fn NodeFunc) *Graph {
	if name == "" || name == End {
		g.errs = append(g.errs, fmt.Errorf("invalid node name %q", name))
		return g
	}
	if _, exists := g.nodes[name]; exists {
		g.errs = append(g.errs, fmt.Errorf("node %s added twice", name))
		return g
	}
	g.nodes[name] = fn
	return g
}

// AddEdge adds a fixed transition from one node to another (or End).
func (g *Graph) AddEdge(from, to string) *Graph {
	if g.hasOutgoing(from) {
		g.errs = append(g.errs, fmt.Errorf("node %s already has an outgoing edge", from))
		return g
	}
	g.edges[from] = to
	return g
}

// AddConditionalEdge routes from a node to whichever of targets fn returns.
func (g *Graph) AddConditionalEdge(from string, fn RouteFunc, targets ...string) *Graph {
	if g.hasOutgoing(from) {
		g.errs = append(g.errs, fmt.Errorf("node %s already has an outgoing edge", from))
		return g
	}
	g.conditional[from] = conditionalEdge{route: fn, targets: targets}
	return g
}

func (g *Graph) SetEntry(name string) *Graph {
	g.entry = name
	return g
}

func (g *Graph) hasOutgoing(name string) bool {
	_, fixed := g.edges[name]
	_, cond := g.conditional[name]
	return fixed || cond
}

func (g *Graph) validTarget(name string) bool {
	_, ok := g.nodes[name]
	return ok || name == End
}

type CompileOption func(*CompiledGraph)

func WithMaxSteps(n int) CompileOption {
	return func(c *CompiledGraph) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// Compile checks the graph and freezes it. Every node needs exactly one
// outgoing edge and every edge must point at a known node or End.
func (g *Graph) Compile(opts ...CompileOption) (*CompiledGraph, error) {
	errs := append([]error(nil), g.errs...)

	if _, ok := g.nodes[g.entry]; !ok {
		errs = append(errs, fmt.Errorf("entry node %q is not defined", g.entry))
	}

	for name := range g.nodes {
		if !g.hasOutgoing(name) {
			errs = append(errs, fmt.Errorf("node %s has no outgoing edge", name))
		}
	}
	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			errs = append(errs, fmt.Errorf("edge from unknown node %s", from))
		}
		if !g.validTarget(to) {
			errs = append(errs, fmt.Errorf("edge %s -> %s targets unknown node", from, to))
		}
	}
	for from, edge := range g.conditional {
		if _, ok := g.nodes[from]; !ok {
			errs = append(errs, fmt.Errorf("conditional edge from unknown node %s", from))
		}
		if len(edge.targets) == 0 {
			errs = append(errs, fmt.Errorf("conditional edge from %s has no targets", from))
		}
		for _, to := range edge.targets {
			if !g.validTarget(to) {
				errs = append(errs, fmt.Errorf("conditional edge %s -> %s targets unknown node", from, to))
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid graph: %w", errors.Join(errs...))
	}

	compiled := &CompiledGraph{
		nodes:       lo.Assign(g.nodes),
		edges:       lo.Assign(g.edges),
		conditional: lo.Assign(g.conditional),
		entry:       g.entry,
		maxSteps:    defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(compiled)
	}
	return compiled, nil
}

// CompiledGraph is immutable and safe for concurrent use across sessions.
type CompiledGraph struct {
	nodes       map[string]NodeFunc
	edges       map[string]string
	conditional map[string]conditionalEdge
	entry       string
	maxSteps    int
}

// Run executes one turn from the entry node until End. Each node's update is
// merged into state only after the node succeeds; state is modified in place,
// so callers that need to discard a failed turn pass a clone.
func (c *CompiledGraph) Run(ctx context.Context, state *models.ConversationState) (*models.ConversationState, error) {
	current := c.entry
	var path []string

	for step := 0; current != End; step++ {
		if step >= c.maxSteps {
			return nil, fmt.Errorf("after %v: %w", path, ErrMaxStepsExceeded)
		}
		if err := ctx.Err(); err != nil {
			return nil, &NodeError{Node: current, Err: err}
		}

		path = append(path, current)
		start := time.Now()
		update, err := c.nodes[current](ctx, state)
		observeStage(current, err, time.Since(start))
		if err != nil {
			log.Printf("[ERROR] Stage %s failed: %v", current, err)
			return nil, &NodeError{Node: current, Err: err}
		}

		state.Apply(update)

		next, err := c.next(current, state)
		if err != nil {
			return nil, err
		}
		current = next
	}

	state.Route = ""
	log.Printf("[INFO] Turn completed via %v", path)
	return state, nil
}

func (c *CompiledGraph) next(current string, state *models.ConversationState) (string, error) {
	if to, ok := c.edges[current]; ok {
		return to, nil
	}

	edge := c.conditional[current]
	to := edge.route(state)
	if !lo.Contains(edge.targets, to) {
		return "", &NodeError{Node: current, Err: fmt.Errorf("route %q is not a valid target", to)}
	}
	return to, nil
}
