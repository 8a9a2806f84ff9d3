package convert

import (
	"errors"
	"fmt"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2/ast"
)

const typenameField = "__typename"

var errUnbalancedFrames = errors.New("selection frames left open after traversal")

// selectionFrame ties an open document node to the object fragment its
// selected fields are attached to.
type selectionFrame struct {
	node   int
	target *openapi.Schema
}

// abortError stops the traversal with a terminal result.
type abortError struct {
	result Result
}

func (e *abortError) Error() string {
	if err := Err(e.result); err != nil {
		return err.Error()
	}
	return "traversal aborted"
}

type documentVisitor struct {
	mapper *typeMapper
	log    logrus.FieldLogger

	doc       *openapi.Document
	operation *openapi.Operation
	frames    []selectionFrame
}

func newDocumentVisitor(mapper *typeMapper, log logrus.FieldLogger) *documentVisitor {
	return &documentVisitor{mapper: mapper, log: log}
}

func (v *documentVisitor) push(id int, target *openapi.Schema) {
	v.frames = append(v.frames, selectionFrame{node: id, target: target})
}

func (v *documentVisitor) popIfTop(id int) {
	if len(v.frames) > 0 && v.frames[len(v.frames)-1].node == id {
		v.frames = v.frames[:len(v.frames)-1]
	}
}

func (v *documentVisitor) enter(id int, n node) error {
	switch n.kind {
	case kindDocument:
		v.doc = openapi.NewDocument()
		v.frames = v.frames[:0]
	case kindOperation:
		return v.enterOperation(id, n.operation)
	case kindVariable:
		return v.visitVariable(n.variable)
	case kindField:
		return v.enterField(id, n.field)
	}
	return nil
}

func (v *documentVisitor) leave(id int, n node) error {
	switch n.kind {
	case kindOperation, kindField:
		v.popIfTop(id)
	case kindDocument:
		if len(v.frames) != 0 {
			return &abortError{result: &InternalFault{Err: fmt.Errorf("%w: %d remaining", errUnbalancedFrames, len(v.frames))}}
		}
	}
	return nil
}

func (v *documentVisitor) enterOperation(id int, op *ast.OperationDefinition) error {
	if op.Name == "" {
		missing := &MissingOperationName{}
		if op.Position != nil {
			missing.Line = op.Position.Line
			missing.Column = op.Position.Column
		}
		return &abortError{result: missing}
	}
	if op.Operation != ast.Query {
		fault := Fault{
			Message: fmt.Sprintf("operation %q is a %s; only query operations are supported", op.Name, op.Operation),
			Rule:    "QueryOperationsOnly",
		}
		if op.Position != nil {
			fault.Locations = []Location{{Line: op.Position.Line, Column: op.Position.Column}}
		}
		return &abortError{result: &QueryFaults{Faults: []Fault{fault}}}
	}

	path := "/" + op.Name
	operation, schema := v.doc.AddGet(path)
	v.operation = operation
	v.push(id, schema)
	v.log.WithField("path", path).Debug("registered operation")
	return nil
}

func (v *documentVisitor) visitVariable(def *ast.VariableDefinition) error {
	ref, err := ResolveInput(v.mapper.schema, def.Type)
	if err != nil {
		return &abortError{result: &InternalFault{Err: fmt.Errorf("variable $%s: %w", def.Variable, err)}}
	}
	s, err := v.mapper.mapInput(ref, 0)
	if err != nil {
		return &abortError{result: &InternalFault{Err: fmt.Errorf("variable $%s: %w", def.Variable, err)}}
	}
	v.operation.Parameters = append(v.operation.Parameters, openapi.ParameterFromSchema(def.Variable, s))
	v.log.WithFields(logrus.Fields{
		"variable": def.Variable,
		"type":     Signature(def.Type),
	}).Debug("mapped parameter")
	return nil
}

func (v *documentVisitor) enterField(id int, field *ast.Field) error {
	if field.Definition == nil || len(v.frames) == 0 {
		return nil
	}

	frag, target, err := v.mapper.mapOutput(field.Definition.Type, field.Definition.Description)
	if err != nil {
		return &abortError{result: &InternalFault{Err: fmt.Errorf("field %s: %w", field.Name, err)}}
	}
	if field.Name == typenameField {
		// gqlparser declares the meta field as String; GraphQL always returns it.
		frag.Nullable = false
	}

	key := field.Alias
	if key == "" {
		key = field.Name
	}
	parent := v.frames[len(v.frames)-1].target
	if existing, ok := parent.Properties[key]; ok && target != nil {
		// Repeated selections of one response key merge their sub-fields.
		if prev := innermostObject(existing); prev != nil {
			target = prev
			frag = existing
		}
	}
	parent.Properties[key] = frag

	if target != nil {
		v.push(id, target)
	}
	return nil
}

func innermostObject(s *openapi.Schema) *openapi.Schema {
	for s != nil && s.Type == openapi.TypeArray {
		s = s.Items
	}
	if s == nil || s.Type != openapi.TypeObject {
		return nil
	}
	return s
}
