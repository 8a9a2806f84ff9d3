package convert

import (
	"github.com/vektah/gqlparser/v2/ast"
)

type nodeKind int

const (
	kindDocument nodeKind = iota
	kindOperation
	kindVariable
	kindField
)

// node is one entry of the walker's arena. Its index in the arena is its
// identity, so structurally identical sibling selections stay distinct.
type node struct {
	kind      nodeKind
	operation *ast.OperationDefinition
	variable  *ast.VariableDefinition
	field     *ast.Field
}

// handler receives enter and leave events in document order. A non-nil
// error stops the walk.
type handler interface {
	enter(id int, n node) error
	leave(id int, n node) error
}

type walkStep struct {
	id    int
	leave bool
}

type walker struct {
	doc   *ast.QueryDocument
	nodes []node
}

func (w *walker) add(n node) int {
	w.nodes = append(w.nodes, n)
	return len(w.nodes) - 1
}

// walk visits doc once, entering each node before its children and leaving
// it after them. Traversal order is kept on an explicit stack.
func walk(doc *ast.QueryDocument, h handler) error {
	w := &walker{doc: doc}
	stack := []walkStep{{id: w.add(node{kind: kindDocument})}}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := w.nodes[step.id]

		if step.leave {
			if err := h.leave(step.id, n); err != nil {
				return err
			}
			continue
		}

		if err := h.enter(step.id, n); err != nil {
			return err
		}
		stack = append(stack, walkStep{id: step.id, leave: true})

		children := w.children(n)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, walkStep{id: children[i]})
		}
	}
	return nil
}

func (w *walker) children(n node) []int {
	var ids []int
	switch n.kind {
	case kindDocument:
		for _, op := range w.doc.Operations {
			ids = append(ids, w.add(node{kind: kindOperation, operation: op}))
		}
	case kindOperation:
		for _, v := range n.operation.VariableDefinitions {
			ids = append(ids, w.add(node{kind: kindVariable, variable: v}))
		}
		ids = w.fields(ids, n.operation.SelectionSet)
	case kindField:
		ids = w.fields(ids, n.field.SelectionSet)
	}
	return ids
}

// fields appends the fields of a selection set, looking through inline
// fragments and fragment spreads so their fields belong to the enclosing
// selection.
func (w *walker) fields(ids []int, set ast.SelectionSet) []int {
	for _, sel := range set {
		switch sel := sel.(type) {
		case *ast.Field:
			ids = append(ids, w.add(node{kind: kindField, field: sel}))
		case *ast.InlineFragment:
			ids = w.fields(ids, sel.SelectionSet)
		case *ast.FragmentSpread:
			def := sel.Definition
			if def == nil {
				def = w.doc.Fragments.ForName(sel.Name)
			}
			if def != nil {
				ids = w.fields(ids, def.SelectionSet)
			}
		}
	}
	return ids
}
