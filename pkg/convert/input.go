package convert

import (
	"errors"
	"fmt"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/vektah/gqlparser/v2/ast"
)

// MaxDepth bounds how deeply type references are expanded.
const MaxDepth = 50

var (
	ErrDepthLimit    = errors.New("depth limit exceeded")
	ErrUnknownScalar = errors.New("unrecognized scalar type")
)

// ScalarFunc supplies a fragment for a custom scalar. Returning false
// leaves the scalar unrecognized.
type ScalarFunc func(name string) (*openapi.Schema, bool)

// StaticScalars returns a ScalarFunc mapping every custom scalar to t.
func StaticScalars(t openapi.Type) ScalarFunc {
	return func(string) (*openapi.Schema, bool) {
		return openapi.NewPrimitive(t), true
	}
}

type typeMapper struct {
	schema  *ast.Schema
	scalars ScalarFunc
}

func (m *typeMapper) scalar(name string) (*openapi.Schema, error) {
	if t, ok := builtinScalars[name]; ok {
		return openapi.NewPrimitive(t), nil
	}
	if m.scalars != nil {
		if s, ok := m.scalars(name); ok && s != nil {
			return s.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScalar, name)
}

// mapInput converts an input type reference into a fragment. Every level is
// nullable unless wrapped in NonNull.
func (m *typeMapper) mapInput(ref TypeRef, depth int) (*openapi.Schema, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: input type nested more than %d levels", ErrDepthLimit, MaxDepth)
	}

	switch r := ref.(type) {
	case NonNull:
		s, err := m.mapInput(r.Inner, depth+1)
		if err != nil {
			return nil, err
		}
		s.Nullable = false
		return s, nil

	case List:
		items, err := m.mapInput(r.Elem, depth+1)
		if err != nil {
			return nil, err
		}
		s := openapi.NewArray(items)
		s.Nullable = true
		return s, nil

	case Scalar:
		s, err := m.scalar(r.Name)
		if err != nil {
			return nil, err
		}
		s.Nullable = true
		return s, nil

	case Enum:
		return &openapi.Schema{
			Type:        openapi.TypeString,
			Nullable:    true,
			Description: r.Description,
			Enum:        append([]string(nil), r.Values...),
		}, nil

	case InputObject:
		fields, err := r.Fields()
		if err != nil {
			return nil, err
		}
		s := openapi.NewObject()
		s.Nullable = true
		for _, f := range fields {
			prop, err := m.mapInput(f.Type, depth+1)
			if err != nil {
				return nil, err
			}
			if f.Description != "" {
				prop.Description = f.Description
			}
			s.Properties[f.Name] = prop
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported type reference %T", ref)
	}
}
