package convert

import (
	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/vektah/gqlparser/v2/ast"
)

// builtinScalars maps the GraphQL built-in scalars to their OpenAPI types.
var builtinScalars = map[string]openapi.Type{
	"ID":      openapi.TypeString,
	"String":  openapi.TypeString,
	"Int":     openapi.TypeInteger,
	"Float":   openapi.TypeNumber,
	"Boolean": openapi.TypeBoolean,
}

var signatureTable = buildSignatureTable()

// buildSignatureTable enumerates S, S!, [S], [S!], [S]! and [S!]! for every
// built-in scalar. Nullability of each level comes from its own "!" marker.
func buildSignatureTable() map[string]*openapi.Schema {
	table := make(map[string]*openapi.Schema, len(builtinScalars)*6)
	for name, typ := range builtinScalars {
		for _, elemNonNull := range []bool{false, true} {
			elem := &ast.Type{NamedType: name, NonNull: elemNonNull}
			table[Signature(elem)] = &openapi.Schema{Type: typ, Nullable: !elemNonNull}

			for _, listNonNull := range []bool{false, true} {
				list := &ast.Type{Elem: elem, NonNull: listNonNull}
				arr := openapi.NewArray(&openapi.Schema{Type: typ, Nullable: !elemNonNull})
				arr.Nullable = !listNonNull
				table[Signature(list)] = arr
			}
		}
	}
	return table
}

// LookupSignature returns a copy of the fragment registered for an exact
// type signature such as "Int" or "[Int!]!".
func LookupSignature(sig string) (*openapi.Schema, bool) {
	s, ok := signatureTable[sig]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}
