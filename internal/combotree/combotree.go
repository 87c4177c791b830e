// Package combotree groups powers into a forest of combo chains for hierarchical listing.
//
// Every power that some other power combos into is "embedded" and appears only inside the
// tree of the power that reaches it. The remaining "root" powers are grouped by their
// ParentItem. Each root exposes the tree of its forward combos, materialised one level at a
// time as it is walked; a branch that comes back to a power already on its own path ends in a
// cycle node instead of recursing. Reachability is answered from the id graph, not the trees.
package combotree

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/powereditor/internal/combo"
	"github.com/samdwyer/powereditor/internal/direction"
	"github.com/samdwyer/powereditor/internal/power"
	"github.com/samdwyer/powereditor/internal/telemetry"
)

// Kind distinguishes regular nodes from cycle terminals.
type Kind int

const (
	// KindPower is a node wrapping a power and its combo children.
	KindPower Kind = iota
	// KindCycle marks a power already on the current path; it has no children.
	KindCycle
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPower:
		return "power"
	case KindCycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// DirectionalChild is one directional combo edge in the tree.
type DirectionalChild struct {
	Direction direction.Direction
	Node      *Node
}

// Node is one power in a rendered combo tree. Children are built on first use.
type Node struct {
	Kind  Kind
	Power *power.Power

	// Expanded is UI state and only meaningful on roots.
	Expanded bool

	g           *graph
	parent      *Node
	built       bool
	slots       [power.SlotCount]*Node
	directional []DirectionalChild
}

// ID returns the wrapped power's id.
func (n *Node) ID() string {
	if n == nil || n.Power == nil {
		return ""
	}
	return n.Power.ID
}

// Contains reports whether id is this node or reachable through its forward combos.
// Cycle nodes contain only themselves.
func (n *Node) Contains(id string) bool {
	if n == nil {
		return false
	}
	if n.ID() == id {
		return true
	}
	if n.Kind == KindCycle || n.g == nil {
		return false
	}
	return n.g.reaches(n.ID(), id)
}

// Slot returns the child in a scalar combo slot, or nil.
func (n *Node) Slot(slot power.ComboSlot) *Node {
	if n == nil || slot < 0 || int(slot) >= power.SlotCount {
		return nil
	}
	n.build()
	return n.slots[slot]
}

// Directional returns the directional children in field order.
func (n *Node) Directional() []DirectionalChild {
	if n == nil {
		return nil
	}
	n.build()
	return n.directional
}

// Child is a labelled edge to a child node.
type Child struct {
	Label string
	Node  *Node
}

// Children lists the node's children, scalar slots in slot order then directional entries.
func (n *Node) Children() []Child {
	if n == nil {
		return nil
	}
	n.build()
	var out []Child
	for _, slot := range power.Slots {
		if c := n.slots[slot]; c != nil {
			out = append(out, Child{Label: slot.String(), Node: c})
		}
	}
	for _, d := range n.directional {
		out = append(out, Child{Label: d.Direction.String(), Node: d.Node})
	}
	return out
}

// build materialises one level of children.
func (n *Node) build() {
	if n.built || n.Kind == KindCycle || n.g == nil {
		return
	}
	n.built = true
	t := n.g.forward(n.Power)
	if t == nil {
		return
	}
	for _, slot := range power.Slots {
		if target := t.Slots[slot]; target != nil {
			n.slots[slot] = n.g.node(target, n)
		}
	}
	for _, d := range t.Directional {
		n.directional = append(n.directional, DirectionalChild{Direction: d.Direction, Node: n.g.node(d.Power, n)})
	}
}

// onBranch reports whether id is n or one of its ancestors.
func (n *Node) onBranch(id string) bool {
	for a := n; a != nil; a = a.parent {
		if a.ID() == id {
			return true
		}
	}
	return false
}

// Edge is one resolved forward combo between two powers.
type Edge struct {
	Label string
	To    string
}

// Group is a named set of root powers sharing a ParentItem.
type Group struct {
	Name  string
	Roots []*Node
}

// ExpandState records which roots are expanded, keyed by power id.
// It is kept apart from the forest so it survives rebuilds.
type ExpandState map[string]bool

// Forest is the full hierarchical view of a power list.
type Forest struct {
	Groups    []Group
	Ungrouped []*Node
	// Detached holds embedded powers that no root reaches, such as members of a closed cycle.
	Detached []*Node

	index    *combo.Index
	g        *graph
	edges    map[string][]Edge
	embedded map[string]bool
}

// graph is the id-keyed adjacency shared by every node of a forest.
type graph struct {
	index *combo.Index
	out   map[string]*combo.Tree
	succ  map[string][]string
	pred  map[string][]string
	// ancestors caches, per target id, every id with a forward path to it.
	ancestors map[string]map[string]bool
}

func newGraph(idx *combo.Index) *graph {
	return &graph{
		index:     idx,
		out:       make(map[string]*combo.Tree),
		succ:      make(map[string][]string),
		pred:      make(map[string][]string),
		ancestors: make(map[string]map[string]bool),
	}
}

func (g *graph) forward(p *power.Power) *combo.Tree {
	t, ok := g.out[p.ID]
	if !ok {
		t = g.index.Forward(p)
		g.out[p.ID] = t
	}
	return t
}

func (g *graph) link(from, to string) {
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
}

// node wraps p below parent, or returns a cycle leaf when p is already on the branch.
func (g *graph) node(p *power.Power, parent *Node) *Node {
	if parent != nil && parent.onBranch(p.ID) {
		return &Node{Kind: KindCycle, Power: p, parent: parent}
	}
	return &Node{Kind: KindPower, Power: p, g: g, parent: parent}
}

// reaches reports whether a forward path of at least one edge leads from one id to another.
func (g *graph) reaches(from, to string) bool {
	anc, ok := g.ancestors[to]
	if !ok {
		anc = make(map[string]bool)
		queue := []string{to}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, src := range g.pred[id] {
				if !anc[src] {
					anc[src] = true
					queue = append(queue, src)
				}
			}
		}
		g.ancestors[to] = anc
	}
	return anc[from]
}

// mark flags every id reachable from id, including id itself.
func (g *graph) mark(id string, seen map[string]bool) {
	if seen[id] {
		return
	}
	seen[id] = true
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.succ[cur] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
}

// Build computes the forest for powers. expanded may be nil.
func Build(ctx context.Context, powers []*power.Power, expanded ExpandState) *Forest {
	tracer := telemetry.Tracer("combotree")
	_, span := tracer.Start(ctx, "forest.build")
	defer span.End()
	start := time.Now()

	idx := combo.NewIndex(powers)
	g := newGraph(idx)
	f := &Forest{
		index:    idx,
		g:        g,
		edges:    make(map[string][]Edge, len(powers)),
		embedded: make(map[string]bool),
	}

	edgeCount := 0
	for _, p := range powers {
		if _, done := g.out[p.ID]; done {
			continue
		}
		t := g.forward(p)
		if t == nil {
			continue
		}
		for _, slot := range power.Slots {
			if target := t.Slots[slot]; target != nil {
				f.addEdge(p.ID, slot.String(), target.ID)
				edgeCount++
			}
		}
		for _, d := range t.Directional {
			f.addEdge(p.ID, d.Direction.String(), d.Power.ID)
			edgeCount++
		}
	}

	groups := make(map[string]*Group)
	var order []string
	seen := make(map[string]bool)
	for _, p := range powers {
		if f.embedded[p.ID] || idx.ByID(p.ID) != p {
			continue
		}
		root := g.node(p, nil)
		root.Expanded = expanded[p.ID]
		g.mark(p.ID, seen)

		name := p.Group()
		if name == "" {
			f.Ungrouped = append(f.Ungrouped, root)
			continue
		}
		grp, ok := groups[name]
		if !ok {
			grp = &Group{Name: name}
			groups[name] = grp
			order = append(order, name)
		}
		grp.Roots = append(grp.Roots, root)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return strings.ToLower(order[i]) < strings.ToLower(order[j])
	})
	for _, name := range order {
		f.Groups = append(f.Groups, *groups[name])
	}

	for _, p := range powers {
		if !f.embedded[p.ID] || idx.ByID(p.ID) != p || seen[p.ID] {
			continue
		}
		node := g.node(p, nil)
		node.Expanded = expanded[p.ID]
		g.mark(p.ID, seen)
		f.Detached = append(f.Detached, node)
	}

	span.SetAttributes(
		attribute.Int("forest.powers", len(powers)),
		attribute.Int("forest.edges", edgeCount),
		attribute.Int("forest.groups", len(f.Groups)),
		attribute.Int("forest.ungrouped", len(f.Ungrouped)),
		attribute.Int("forest.detached", len(f.Detached)),
		attribute.Int64("forest.build_ms", time.Since(start).Milliseconds()),
	)
	return f
}

// addEdge records an edge and marks its target embedded. Self-combos do not embed a power.
func (f *Forest) addEdge(from, label, to string) {
	f.edges[from] = append(f.edges[from], Edge{Label: label, To: to})
	f.g.link(from, to)
	if from != to {
		f.embedded[to] = true
	}
}

// Roots returns every top-level node: grouped, ungrouped, then detached.
func (f *Forest) Roots() []*Node {
	var out []*Node
	for _, g := range f.Groups {
		out = append(out, g.Roots...)
	}
	out = append(out, f.Ungrouped...)
	return append(out, f.Detached...)
}

// IsEmbedded reports whether another power combos into id.
func (f *Forest) IsEmbedded(id string) bool {
	return f.embedded[id]
}

// IsRoot reports whether id is shown at the top level of a group or the ungrouped bucket.
func (f *Forest) IsRoot(id string) bool {
	p := f.index.ByID(id)
	return p != nil && !f.embedded[id]
}

// Reaches reports whether a chain of forward combos leads from one power to another.
func (f *Forest) Reaches(from, to string) bool {
	return f.g.reaches(from, to)
}

// Edges returns the outgoing edges of id in slot order then directional order.
func (f *Forest) Edges(id string) []Edge {
	return f.edges[id]
}

// EdgeMap returns every edge keyed by source id.
func (f *Forest) EdgeMap() map[string][]Edge {
	return f.edges
}

// Subtree returns the forward combo tree of any power, root or embedded.
func (f *Forest) Subtree(id string) *Node {
	p := f.index.ByID(id)
	if p == nil {
		return nil
	}
	return f.g.node(p, nil)
}

// Select expands every root whose tree contains id and records it in state.
// It returns the ids of the roots that contain the selection, in display order; the first
// is the row to scroll into view.
func (f *Forest) Select(id string, state ExpandState) []string {
	var hits []string
	for _, r := range f.Roots() {
		if !r.Contains(id) {
			continue
		}
		r.Expanded = true
		if state != nil {
			state[r.ID()] = true
		}
		hits = append(hits, r.ID())
	}
	return hits
}

// Toggle flips the expand state of a root.
func (f *Forest) Toggle(rootID string, state ExpandState) bool {
	for _, r := range f.Roots() {
		if r.ID() == rootID {
			r.Expanded = !r.Expanded
			if state != nil {
				state[rootID] = r.Expanded
			}
			return r.Expanded
		}
	}
	return false
}

// Path returns the nodes from root down to a node wrapping id, or nil. The chain follows
// children in display order and never repeats a power, so it is always present in the tree.
func Path(root *Node, id string) []*Node {
	if root == nil {
		return nil
	}
	if root.ID() == id {
		return []*Node{root}
	}
	if !root.Contains(id) {
		return nil
	}
	ids := root.g.route(root.ID(), id, map[string]bool{})
	if ids == nil {
		return nil
	}
	out := []*Node{root}
	n := root
	for _, next := range ids[1:] {
		var child *Node
		for _, c := range n.Children() {
			if c.Node.ID() == next {
				child = c.Node
				break
			}
		}
		if child == nil {
			return nil
		}
		out = append(out, child)
		n = child
	}
	return out
}

// route finds a simple forward chain of ids from one power to another, visiting each id once.
func (g *graph) route(from, to string, visited map[string]bool) []string {
	if from == to {
		return []string{to}
	}
	visited[from] = true
	for _, next := range g.succ[from] {
		if visited[next] && next != to {
			continue
		}
		if rest := g.route(next, to, visited); rest != nil {
			return append([]string{from}, rest...)
		}
	}
	return nil
}

// PathTo returns the path to id inside the first root containing it.
func (f *Forest) PathTo(id string) []*Node {
	for _, r := range f.Roots() {
		if p := Path(r, id); p != nil {
			return p
		}
	}
	return nil
}
