// Package convert turns a GraphQL schema and a named query document into a
// Swagger 2.0 document with one GET path per query operation.
//
// Variables become query parameters and the operation's selection set
// becomes the schema of the 200 response. Nullability follows the GraphQL
// non-null markers at every level.
package convert

import (
	"errors"
	"io"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/sirupsen/logrus"
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// Converter holds a schema built once from SDL, or the fault that
// prevented building it. It is safe for concurrent use.
type Converter struct {
	schema    *ast.Schema
	schemaErr error

	schemaName string
	queryName  string
	scalars    ScalarFunc
	log        logrus.FieldLogger
}

type Option func(*Converter)

// WithSchemaName names the SDL source in diagnostics.
func WithSchemaName(name string) Option {
	return func(c *Converter) { c.schemaName = name }
}

// WithQueryName names query sources in diagnostics.
func WithQueryName(name string) Option {
	return func(c *Converter) { c.queryName = name }
}

// WithCustomScalars sets the fallback used for scalars other than the
// GraphQL built-ins.
func WithCustomScalars(fn ScalarFunc) Option {
	return func(c *Converter) { c.scalars = fn }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Converter) { c.log = log }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New builds the schema from sdl. A build failure is retained and reported
// by every call to Convert.
func New(sdl string, opts ...Option) *Converter {
	c := &Converter{schemaName: "schema.graphql", queryName: "query.graphql"}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = discardLogger()
	}

	schema, err := gqlparser.LoadSchema(&ast.Source{Name: c.schemaName, Input: sdl})
	if err != nil {
		c.schemaErr = err
		c.log.WithError(err).Debug("schema build failed")
		return c
	}
	c.schema = schema
	c.log.WithField("types", len(schema.Types)).Debug("schema built")
	return c
}

// Schema returns the built schema, or nil when building it failed.
func (c *Converter) Schema() *ast.Schema {
	return c.schema
}

// SchemaErr returns the retained schema build error, if any.
func (c *Converter) SchemaErr() error {
	return c.schemaErr
}

// Convert parses, validates and converts one query document.
func (c *Converter) Convert(query string) Result {
	if c.schemaErr != nil {
		return &SchemaFault{Faults: faultsFromError(c.schemaErr)}
	}

	doc, err := parser.ParseQuery(&ast.Source{Name: c.queryName, Input: query})
	if err != nil {
		faults := faultsFromError(err)
		return &ParseFault{Fault: faults[0]}
	}

	if errs := validator.Validate(c.schema, doc); len(errs) > 0 {
		c.log.WithField("faults", len(errs)).Debug("query failed validation")
		return &QueryFaults{Faults: faultsFromGQL(errs)}
	}

	mapper := &typeMapper{schema: c.schema, scalars: c.scalars}
	visitor := newDocumentVisitor(mapper, c.log)
	if err := walk(doc, visitor); err != nil {
		var abort *abortError
		if errors.As(err, &abort) {
			c.log.WithError(err).Debug("conversion stopped")
			return abort.result
		}
		return &InternalFault{Err: err}
	}

	c.log.WithField("paths", len(visitor.doc.Paths)).Debug("conversion finished")
	return &Success{Document: visitor.doc}
}

// ConvertDocument is a convenience wrapper returning the document or the
// result as an error.
func (c *Converter) ConvertDocument(query string) (*openapi.Document, error) {
	r := c.Convert(query)
	if s, ok := r.(*Success); ok {
		return s.Document, nil
	}
	return nil, Err(r)
}
