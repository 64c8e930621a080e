// Package ui builds the declarative page description handed back to the
// report host. The host owns rendering; this package only produces the tree.
package ui

const (
	TypeUI     = "ui"
	TypeColumn = "column"
	TypeH1     = "h1"
	TypeText   = "text"
	TypeTable  = "table"
)

// Node is one element of the UI tree.
type Node struct {
	Type     string `json:"type"`
	Value    string `json:"value,omitempty"`
	Children []Node `json:"children,omitempty"`
	Props    any    `json:"props,omitempty"`
}

// Page is the serialisable root handed to the host.
type Page struct {
	Type      string `json:"type"`
	Structure Node   `json:"structure"`
}

func Text(s string) Node {
	return Node{Type: TypeText, Value: s}
}

func H1(children ...Node) Node {
	return Node{Type: TypeH1, Children: children}
}

func Column(children ...Node) Node {
	return Node{Type: TypeColumn, Children: children}
}

func Table(children []Node, props TableProps) Node {
	return Node{Type: TypeTable, Children: children, Props: props}
}

// CreateUI wraps root into a page.
func CreateUI(root Node) Page {
	return Page{Type: TypeUI, Structure: root}
}

// Find returns the first node of the given type in depth-first order.
func (n Node) Find(nodeType string) (Node, bool) {
	if n.Type == nodeType {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := c.Find(nodeType); ok {
			return found, true
		}
	}
	return Node{}, false
}
