package ecpps

import (
	"github.com/TheBitDrifter/mask"
)

// Operation is a boolean combinator over component membership.
type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         Operation
	children   []QueryNode
	components []Component
}

// Query builds filters over entity component membership. Nodes evaluate
// against the per-entity masks the registry maintains, so a query never
// touches component values.
type Query struct {
	root QueryNode
}

func NewQuery() *Query {
	return &Query{}
}

func newCompositeNode(op Operation, components []Component) *compositeNode {
	return &compositeNode{
		op:         op,
		children:   make([]QueryNode, 0),
		components: components,
	}
}

func (n *compositeNode) Evaluate(m mask.Mask, w *World) bool {
	names := make([]string, len(n.components))
	for i, comp := range n.components {
		names[i] = comp.Name()
	}
	nodeMask, complete := w.registry.bitMaskFor(names...)

	switch n.op {
	case OpAnd:
		// A component with no store yet is held by nobody.
		if !complete {
			return false
		}
		if !m.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(m, w) {
				return false
			}
		}
		return true

	case OpOr:
		if m.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(m, w) {
				return true
			}
		}
		return false

	case OpNot:
		if len(n.children) == 0 {
			return m.ContainsNone(nodeMask)
		}
		for _, child := range n.children {
			if child.Evaluate(m, w) {
				return false
			}
		}
		return m.ContainsNone(nodeMask)
	}
	return false
}

func (q *Query) And(items ...any) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *Query) Or(items ...any) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *Query) Not(items ...any) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *Query) processItems(items ...any) ([]Component, []QueryNode) {
	components := make([]Component, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}

	return components, children
}

func (q *Query) Evaluate(m mask.Mask, w *World) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(m, w)
}

// EntitiesMatching returns the live entities satisfying node, in ascending
// ID order.
func (w *World) EntitiesMatching(node QueryNode) []EntityID {
	matched := make([]EntityID, 0)
	for _, id := range w.entities.liveIDs() {
		if node.Evaluate(w.registry.maskOf(id), w) {
			matched = append(matched, id)
		}
	}
	return matched
}
