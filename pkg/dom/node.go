package dom

// Node is an event target in a tree.
type Node struct {
	id       string
	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(id string) *Node {
	return &Node{id: id}
}

// TargetID implements listener.Target.
func (n *Node) TargetID() string {
	return n.id
}

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child nodes.
func (n *Node) Children() []*Node {
	return n.children
}

// Append attaches child under n, moving it from any previous parent.
// It returns child.
func (n *Node) Append(child *Node) *Node {
	child.Remove()
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Find returns the first node in n's subtree with the given id.
func (n *Node) Find(id string) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// path returns the ancestors of n, root first, excluding n.
func (n *Node) path() []*Node {
	var path []*Node
	for p := n.parent; p != nil; p = p.parent {
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// walk visits n and its descendants.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
