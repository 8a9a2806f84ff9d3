package convert

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// TypeRef is a GraphQL input type reference. It is one of Scalar, Enum,
// InputObject, List or NonNull.
type TypeRef interface {
	typeRef()
}

type Scalar struct {
	Name string
}

type Enum struct {
	Name        string
	Description string
	Values      []string
}

// InputObject resolves its fields on demand so that input types which
// reference themselves can be represented.
type InputObject struct {
	Name        string
	Description string
	Fields      func() ([]InputField, error)
}

type InputField struct {
	Name        string
	Description string
	Type        TypeRef
}

type List struct {
	Elem TypeRef
}

// NonNull never wraps another NonNull.
type NonNull struct {
	Inner TypeRef
}

func (Scalar) typeRef()      {}
func (Enum) typeRef()        {}
func (InputObject) typeRef() {}
func (List) typeRef()        {}
func (NonNull) typeRef()     {}

// ResolveInput builds the TypeRef for an input position type expression
// such as a variable definition or an input object field.
func ResolveInput(schema *ast.Schema, t *ast.Type) (TypeRef, error) {
	if t == nil {
		return nil, fmt.Errorf("missing type reference")
	}
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		ref, err := ResolveInput(schema, &inner)
		if err != nil {
			return nil, err
		}
		return NonNull{Inner: ref}, nil
	}
	if t.Elem != nil {
		elem, err := ResolveInput(schema, t.Elem)
		if err != nil {
			return nil, err
		}
		return List{Elem: elem}, nil
	}

	def := schema.Types[t.NamedType]
	if def == nil {
		return nil, fmt.Errorf("type %q is not defined in the schema", t.NamedType)
	}

	switch def.Kind {
	case ast.Scalar:
		return Scalar{Name: def.Name}, nil
	case ast.Enum:
		values := make([]string, 0, len(def.EnumValues))
		for _, v := range def.EnumValues {
			values = append(values, v.Name)
		}
		return Enum{Name: def.Name, Description: def.Description, Values: values}, nil
	case ast.InputObject:
		return InputObject{
			Name:        def.Name,
			Description: def.Description,
			Fields: func() ([]InputField, error) {
				fields := make([]InputField, 0, len(def.Fields))
				for _, f := range def.Fields {
					ref, err := ResolveInput(schema, f.Type)
					if err != nil {
						return nil, fmt.Errorf("field %s.%s: %w", def.Name, f.Name, err)
					}
					fields = append(fields, InputField{Name: f.Name, Description: f.Description, Type: ref})
				}
				return fields, nil
			},
		}, nil
	default:
		return nil, fmt.Errorf("type %q of kind %s cannot be used as an input type", def.Name, def.Kind)
	}
}

// Signature renders a type expression the way it is written in SDL, for
// example "String!" or "[User!]!".
func Signature(t *ast.Type) string {
	requiredStr := ""
	if t.NonNull {
		requiredStr = "!"
	}
	if t.Elem != nil {
		return fmt.Sprintf("[%s]%s", Signature(t.Elem), requiredStr)
	}
	return t.NamedType + requiredStr
}
