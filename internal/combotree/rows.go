package combotree

// RowKind tells renderers how to draw a flattened row.
type RowKind int

const (
	RowHeader RowKind = iota
	RowNode
)

// Row is one line of the flattened forest.
type Row struct {
	Kind  RowKind
	Title string // group name for headers
	Depth int
	Label string // edge label from the parent, empty for roots
	Node  *Node
	Root  *Node // top-level node this row belongs to
}

// Section titles used for the non-group buckets.
const (
	UngroupedTitle = "Ungrouped"
	DetachedTitle  = "Detached cycles"
)

// Rows flattens the forest for list rendering. Collapsed roots contribute one row; expanded
// roots contribute their whole tree in pre-order.
func (f *Forest) Rows() []Row {
	var rows []Row
	for _, g := range f.Groups {
		rows = append(rows, Row{Kind: RowHeader, Title: g.Name})
		rows = appendRoots(rows, g.Roots)
	}
	if len(f.Ungrouped) > 0 {
		rows = append(rows, Row{Kind: RowHeader, Title: UngroupedTitle})
		rows = appendRoots(rows, f.Ungrouped)
	}
	if len(f.Detached) > 0 {
		rows = append(rows, Row{Kind: RowHeader, Title: DetachedTitle})
		rows = appendRoots(rows, f.Detached)
	}
	return rows
}

func appendRoots(rows []Row, roots []*Node) []Row {
	for _, r := range roots {
		rows = append(rows, Row{Kind: RowNode, Node: r, Root: r})
		if r.Expanded {
			rows = appendChildren(rows, r, r, 1)
		}
	}
	return rows
}

func appendChildren(rows []Row, n, root *Node, depth int) []Row {
	for _, c := range n.Children() {
		rows = append(rows, Row{Kind: RowNode, Depth: depth, Label: c.Label, Node: c.Node, Root: root})
		rows = appendChildren(rows, c.Node, root, depth+1)
	}
	return rows
}

// RowOf returns the index of the first non-cycle row showing id, or -1.
func RowOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.Kind == RowNode && r.Node.ID() == id && r.Node.Kind == KindPower {
			return i
		}
	}
	return -1
}
