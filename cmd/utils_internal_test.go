package cmd

import (
	"errors"
	"testing"

	"github.com/samwightt/gql2openapi/pkg/convert"
	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaLabel(t *testing.T) {
	tests := []struct {
		name   string
		schema *openapi.Schema
		want   string
	}{
		{"nil", nil, ""},
		{"nullable scalar", &openapi.Schema{Type: openapi.TypeString, Nullable: true}, "string"},
		{"required scalar", &openapi.Schema{Type: openapi.TypeInteger}, "integer!"},
		{
			"required list of required",
			&openapi.Schema{Type: openapi.TypeArray, Items: &openapi.Schema{Type: openapi.TypeObject}},
			"[object!]!",
		},
		{
			"nullable nested list",
			&openapi.Schema{
				Type:     openapi.TypeArray,
				Nullable: true,
				Items: &openapi.Schema{
					Type:  openapi.TypeArray,
					Items: &openapi.Schema{Type: openapi.TypeBoolean, Nullable: true},
				},
			},
			"[[boolean]!]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schemaLabel(tt.schema))
		})
	}
}

func TestFlattenProperties(t *testing.T) {
	title := &openapi.Schema{Type: openapi.TypeString}
	post := openapi.NewObject()
	post.Properties["title"] = title
	root := openapi.NewObject()
	root.Properties["posts"] = &openapi.Schema{Type: openapi.TypeArray, Items: post}
	root.Properties["kind"] = &openapi.Schema{Type: openapi.TypeString, Nullable: true, Enum: []string{"A", "B"}}

	props := flattenProperties("/p", root, "", 0, 0)
	require.Len(t, props, 3)
	assert.Equal(t, "kind", props[0].Property)
	assert.Equal(t, []string{"A", "B"}, props[0].Enum)
	assert.Equal(t, "posts", props[1].Property)
	assert.Equal(t, "[object!]!", props[1].Type)
	assert.Equal(t, "posts[].title", props[2].Property)
	assert.Equal(t, "/p", props[2].Path)
	assert.False(t, props[2].Nullable)
}

func TestFlattenProperties_Depth(t *testing.T) {
	inner := openapi.NewObject()
	inner.Properties["leaf"] = &openapi.Schema{Type: openapi.TypeString}
	root := openapi.NewObject()
	root.Properties["inner"] = inner

	assert.Len(t, flattenProperties("/p", root, "", 1, 0), 1)
	assert.Len(t, flattenProperties("/p", root, "", 2, 0), 2)
	assert.Empty(t, flattenProperties("/p", &openapi.Schema{Type: openapi.TypeString}, "", 0, 0))
}

func TestScalarOptions(t *testing.T) {
	opts, err := scalarOptions("")
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = scalarOptions("number")
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	_, err = scalarOptions("array")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid custom scalar type: array")
}

func TestDocumentEncoding(t *testing.T) {
	assert.Equal(t, openapi.EncodingJSON, documentEncoding("json"))
	assert.Equal(t, openapi.EncodingYAML, documentEncoding("yaml"))
	assert.Equal(t, openapi.EncodingYAML, documentEncoding("text"))
	assert.Equal(t, openapi.EncodingYAML, documentEncoding("pretty"))
}

func TestFaultKind(t *testing.T) {
	assert.Equal(t, "schema", faultKind(&convert.SchemaFault{}))
	assert.Equal(t, "parse", faultKind(&convert.ParseFault{}))
	assert.Equal(t, "validation", faultKind(&convert.QueryFaults{}))
	assert.Equal(t, "operation-name", faultKind(&convert.MissingOperationName{}))
	assert.Equal(t, "internal", faultKind(&convert.InternalFault{Err: errors.New("boom")}))
	assert.Equal(t, "", faultKind(&convert.Success{}))
}

func TestValidationResult(t *testing.T) {
	ok := validationResult(&convert.Success{Document: openapi.NewDocument()})
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)

	missing := validationResult(&convert.MissingOperationName{Line: 2, Column: 3})
	assert.False(t, missing.Valid)
	assert.Equal(t, "operation-name", missing.Kind)
	require.Len(t, missing.Errors, 1)
	assert.Equal(t, "OperationName", missing.Errors[0].Rule)
	assert.Equal(t, []Location{{Line: 2, Column: 3}}, missing.Errors[0].Locations)
}
