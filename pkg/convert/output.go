package convert

import (
	"fmt"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/vektah/gqlparser/v2/ast"
)

// mapOutput returns the fragment for a selected field of type t. When the
// field's selection set still has to be visited, target is the object
// fragment its sub-fields attach to; for lists of objects that is the
// innermost items object.
func (m *typeMapper) mapOutput(t *ast.Type, description string) (frag, target *openapi.Schema, err error) {
	if s, ok := LookupSignature(Signature(t)); ok {
		s.Description = description
		return s, nil, nil
	}

	frag, target, err = m.outputType(t, 0)
	if err != nil {
		return nil, nil, err
	}
	frag.Description = description
	return frag, target, nil
}

func (m *typeMapper) outputType(t *ast.Type, depth int) (*openapi.Schema, *openapi.Schema, error) {
	if depth > MaxDepth {
		return nil, nil, fmt.Errorf("%w: output type nested more than %d levels", ErrDepthLimit, MaxDepth)
	}

	if t.Elem != nil {
		items, target, err := m.outputType(t.Elem, depth+1)
		if err != nil {
			return nil, nil, err
		}
		s := openapi.NewArray(items)
		s.Nullable = !t.NonNull
		return s, target, nil
	}

	def := m.schema.Types[t.NamedType]
	if def == nil {
		return nil, nil, fmt.Errorf("type %q is not defined in the schema", t.NamedType)
	}

	switch def.Kind {
	case ast.Scalar:
		s, err := m.scalar(def.Name)
		if err != nil {
			return nil, nil, err
		}
		s.Nullable = !t.NonNull
		return s, nil, nil
	case ast.Enum:
		values := make([]string, 0, len(def.EnumValues))
		for _, v := range def.EnumValues {
			values = append(values, v.Name)
		}
		return &openapi.Schema{Type: openapi.TypeString, Nullable: !t.NonNull, Enum: values}, nil, nil
	default:
		obj := openapi.NewObject()
		obj.Nullable = !t.NonNull
		return obj, obj, nil
	}
}
