// Package openapi models the subset of a Swagger 2.0 document produced by
// the converter: one GET operation per path, query parameters and a single
// 200 response schema.
package openapi

import "encoding/json"

// Type is the "type" keyword of a schema fragment.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
)

const (
	SwaggerVersion  = "2.0"
	MediaTypeJSON   = "application/json"
	ParameterQuery  = "query"
	StatusOK        = "200"
	ResponseSummary = "response"
)

type Document struct {
	Swagger  string               `json:"swagger" yaml:"swagger"`
	Schemes  []string             `json:"schemes" yaml:"schemes"`
	Consumes []string             `json:"consumes" yaml:"consumes"`
	Produces []string             `json:"produces" yaml:"produces"`
	Paths    map[string]*PathItem `json:"paths" yaml:"paths"`
}

type PathItem struct {
	Get *Operation `json:"get" yaml:"get"`
}

type Operation struct {
	Parameters []*Parameter          `json:"parameters" yaml:"parameters"`
	Responses  map[string]*Response `json:"responses" yaml:"responses"`
	Produces   []string              `json:"produces" yaml:"produces"`
}

type Response struct {
	Description string  `json:"description" yaml:"description"`
	Schema      *Schema `json:"schema" yaml:"schema"`
}

// bodySchema is the response body as written. The body is always present,
// so it carries no nullable flag of its own.
type bodySchema struct {
	Type        Type               `json:"type" yaml:"type"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
}

type encodedResponse struct {
	Description string      `json:"description" yaml:"description"`
	Schema      *bodySchema `json:"schema" yaml:"schema"`
}

func (r *Response) encoded() encodedResponse {
	out := encodedResponse{Description: r.Description}
	if r.Schema != nil {
		out.Schema = &bodySchema{
			Type:        r.Schema.Type,
			Description: r.Schema.Description,
			Properties:  r.Schema.Properties,
			Items:       r.Schema.Items,
		}
	}
	return out
}

func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.encoded())
}

func (r *Response) MarshalYAML() (any, error) {
	return r.encoded(), nil
}

type Parameter struct {
	Name        string             `json:"name" yaml:"name"`
	In          string             `json:"in" yaml:"in"`
	Required    bool               `json:"required" yaml:"required"`
	Type        Type               `json:"type" yaml:"type"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Enum        []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
}

// Schema is one fragment of a response or parameter schema tree.
type Schema struct {
	Type        Type               `json:"type" yaml:"type"`
	Nullable    bool               `json:"nullable" yaml:"nullable"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty" yaml:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty" yaml:"enum,omitempty"`
}

// NewDocument returns an empty document with the fixed Swagger header.
func NewDocument() *Document {
	return &Document{
		Swagger:  SwaggerVersion,
		Schemes:  []string{"http", "https"},
		Consumes: []string{MediaTypeJSON},
		Produces: []string{MediaTypeJSON},
		Paths:    map[string]*PathItem{},
	}
}

// AddGet registers path with an empty GET operation whose 200 response
// schema is returned for the caller to fill in.
func (d *Document) AddGet(path string) (*Operation, *Schema) {
	schema := NewObject()
	op := &Operation{
		Parameters: []*Parameter{},
		Responses: map[string]*Response{
			StatusOK: {Description: ResponseSummary, Schema: schema},
		},
		Produces: []string{MediaTypeJSON},
	}
	d.Paths[path] = &PathItem{Get: op}
	return op, schema
}

// NewObject returns an object fragment with no properties.
func NewObject() *Schema {
	return &Schema{Type: TypeObject, Properties: map[string]*Schema{}}
}

func NewArray(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

func NewPrimitive(t Type) *Schema {
	return &Schema{Type: t}
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.Clone()
		}
	}
	out.Items = s.Items.Clone()
	if s.Enum != nil {
		out.Enum = append([]string(nil), s.Enum...)
	}
	return &out
}

// ParameterFromSchema builds a query parameter descriptor from a mapped
// input fragment.
func ParameterFromSchema(name string, s *Schema) *Parameter {
	return &Parameter{
		Name:        name,
		In:          ParameterQuery,
		Required:    !s.Nullable,
		Type:        s.Type,
		Items:       s.Items,
		Properties:  s.Properties,
		Enum:        s.Enum,
		Description: s.Description,
	}
}
