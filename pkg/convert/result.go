package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

type Location struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Fault is a single diagnostic reported against the schema or query source.
type Fault struct {
	Message   string     `json:"message" yaml:"message"`
	Rule      string     `json:"rule,omitempty" yaml:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty" yaml:"locations,omitempty"`
}

func (f Fault) String() string {
	if len(f.Locations) == 0 {
		return f.Message
	}
	return fmt.Sprintf("%d:%d: %s", f.Locations[0].Line, f.Locations[0].Column, f.Message)
}

// Result is the outcome of one conversion. It is exactly one of
// *SchemaFault, *ParseFault, *QueryFaults, *MissingOperationName,
// *InternalFault or *Success.
type Result interface {
	isResult()
}

// SchemaFault reports an SDL document that could not be built.
type SchemaFault struct {
	Faults []Fault
}

// ParseFault reports query text that is not a syntactically valid document.
type ParseFault struct {
	Fault Fault
}

// QueryFaults holds every validation fault of a query; it is never empty.
type QueryFaults struct {
	Faults []Fault
}

// MissingOperationName reports an anonymous operation.
type MissingOperationName struct {
	Line   int
	Column int
}

// InternalFault reports a conversion that broke one of the engine's
// invariants, such as an unknown scalar or a type nested beyond MaxDepth.
type InternalFault struct {
	Err error
}

type Success struct {
	Document *openapi.Document
}

func (*SchemaFault) isResult()          {}
func (*ParseFault) isResult()           {}
func (*QueryFaults) isResult()          {}
func (*MissingOperationName) isResult() {}
func (*InternalFault) isResult()        {}
func (*Success) isResult()              {}

func (r *SchemaFault) Error() string {
	return "GraphQL schema error: " + joinFaults(r.Faults)
}

func (r *ParseFault) Error() string {
	return "GraphQL query parsing error: " + r.Fault.String()
}

func (r *QueryFaults) Error() string {
	return "GraphQL query validation error: " + joinFaults(r.Faults)
}

func (r *MissingOperationName) Error() string {
	return fmt.Sprintf("operation on line %d must be named", r.Line)
}

func (r *InternalFault) Error() string {
	return "internal conversion error: " + r.Err.Error()
}

func (r *InternalFault) Unwrap() error {
	return r.Err
}

// Faults flattens any result into the list of diagnostics it carries. A
// *Success yields nil.
func Faults(r Result) []Fault {
	switch r := r.(type) {
	case *SchemaFault:
		return r.Faults
	case *ParseFault:
		return []Fault{r.Fault}
	case *QueryFaults:
		return r.Faults
	case *MissingOperationName:
		return []Fault{{
			Message:   "operation must be named",
			Rule:      "OperationName",
			Locations: []Location{{Line: r.Line, Column: r.Column}},
		}}
	case *InternalFault:
		return []Fault{{Message: r.Err.Error(), Rule: "Internal"}}
	default:
		return nil
	}
}

// Err returns r as an error, or nil for a *Success.
func Err(r Result) error {
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}

func joinFaults(faults []Fault) string {
	parts := make([]string, 0, len(faults))
	for _, f := range faults {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, "; ")
}

func faultFromGQL(err *gqlerror.Error) Fault {
	f := Fault{Message: err.Message, Rule: err.Rule}
	for _, loc := range err.Locations {
		f.Locations = append(f.Locations, Location{Line: loc.Line, Column: loc.Column})
	}
	return f
}

func faultsFromGQL(errs gqlerror.List) []Fault {
	var result []Fault
	for _, err := range errs {
		result = append(result, faultFromGQL(err))
	}
	return result
}

// faultsFromError unpacks the error types gqlparser returns.
func faultsFromError(err error) []Fault {
	var list gqlerror.List
	if errors.As(err, &list) && len(list) > 0 {
		return faultsFromGQL(list)
	}
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		return []Fault{faultFromGQL(gqlErr)}
	}
	return []Fault{{Message: err.Error()}}
}
