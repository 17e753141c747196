package node

// Kind tags the role of a node in the layout tree.
type Kind string

// Known node kinds. Any other tag is kept verbatim and rendered as a container.
const (
	KindSection   Kind = "section"
	KindColumn    Kind = "column"
	KindContainer Kind = "container"
	KindWidget    Kind = "widget"
)

// Node is one element of the layout tree.
type Node struct {
	ID         string
	Kind       Kind
	Settings   Settings
	Children   []Node
	WidgetKind string // only set when Kind is KindWidget
}

// IsWidget reports whether the node is a leaf widget.
func (n Node) IsWidget() bool {
	return n.Kind == KindWidget
}

// Known reports whether k is one of the recognized kinds.
func (k Kind) Known() bool {
	switch k {
	case KindSection, KindColumn, KindContainer, KindWidget:
		return true
	}
	return false
}

// Walk visits n and its descendants depth-first, pre-order.
// Traversal of a subtree stops when fn returns false for its root.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		Walk(n.Children, fn)
	}
}
