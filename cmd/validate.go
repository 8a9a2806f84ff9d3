/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/samwightt/gql2openapi/pkg/convert"
	"github.com/samwightt/gql2openapi/pkg/diagnostic"
	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/samwightt/gql2openapi/pkg/render"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
)

// ErrValidationFailed is returned when a query fails validation.
// This is a sentinel error that indicates the query is invalid,
// not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

// faultKind names the category of a failed conversion.
func faultKind(r convert.Result) string {
	switch r.(type) {
	case *convert.SchemaFault:
		return "schema"
	case *convert.ParseFault:
		return "parse"
	case *convert.QueryFaults:
		return "validation"
	case *convert.MissingOperationName:
		return "operation-name"
	case *convert.InternalFault:
		return "internal"
	default:
		return ""
	}
}

func validationResult(r convert.Result) *ValidationResult {
	if _, ok := r.(*convert.Success); ok {
		return &ValidationResult{Valid: true}
	}
	return &ValidationResult{Valid: false, Kind: faultKind(r), Errors: convert.Faults(r)}
}

// Validation Error Display
//
// gqlparser returns errors with a Rule name (e.g., "FieldsOnCorrectType") and
// Location (line, column). However, the Location only has start position - no
// end position or span length.
//
// To show nice underlines like Rust/Elm, we handle specific rules specially:
// - For known rules, we parse the error message to extract relevant info
//   (field name, type name) and use that to calculate span length and suggestions.
// - For unknown rules, we fall back to a single caret (^).

// Regex to parse FieldsOnCorrectType error messages
// Example: Cannot query field "badField" on type "Query".
var fieldsOnCorrectTypeRegex = regexp.MustCompile(`Cannot query field "([^"]+)" on type "([^"]+)"`)

// parseFieldsOnCorrectTypeError extracts field name and type name from the error message.
// Returns empty strings if the message doesn't match.
func parseFieldsOnCorrectTypeError(message string) (fieldName, typeName string) {
	matches := fieldsOnCorrectTypeRegex.FindStringSubmatch(message)
	if len(matches) == 3 {
		return matches[1], matches[2]
	}
	return "", ""
}

// errorSpanLength returns the length to underline for a given error.
// For known rules, it calculates the actual span. Otherwise returns 1.
func errorSpanLength(err ValidationError, sourceContent string) int {
	switch err.Rule {
	case "FieldsOnCorrectType":
		fieldName, _ := parseFieldsOnCorrectTypeError(err.Message)
		if fieldName != "" {
			return len(fieldName)
		}
	case "OperationName":
		// An anonymous operation starts either at "query" or at the "{" of
		// the shorthand form.
		if strings.HasPrefix(sourceAt(err, sourceContent), "query") {
			return len("query")
		}
	}
	return 1
}

// sourceAt returns the rest of the line at the error's first location.
func sourceAt(err ValidationError, sourceContent string) string {
	if len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := lines[loc.Line-1]
	if loc.Column < 1 || loc.Column > len(line) {
		return ""
	}
	return line[loc.Column-1:]
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(err ValidationError, sourceContent string, sourceName string) string {
	if sourceName != "stdin" {
		return ""
	}
	if !strings.Contains(sourceContent, `\!`) {
		return ""
	}
	if len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := lines[loc.Line-1]
	// Check if there's a \! at or near the error column
	col := loc.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gql2openapi convert\n" +
			"       query name { ... }\n" +
			"       EOF"
	}
	return ""
}

// errorSuggestion returns a "did you mean" suggestion for the error, if applicable.
func errorSuggestion(err ValidationError, schema *ast.Schema) string {
	switch err.Rule {
	case "FieldsOnCorrectType":
		if schema == nil {
			return ""
		}
		fieldName, typeName := parseFieldsOnCorrectTypeError(err.Message)
		if fieldName == "" || typeName == "" {
			return ""
		}

		typeDef := schema.Types[typeName]
		if typeDef == nil {
			return ""
		}

		closest := findClosest(fieldName, pluck(typeDef.Fields, func(f *ast.FieldDefinition) string { return f.Name }))
		if closest != "" {
			return fmt.Sprintf("did you mean `%s`?", closest)
		}
	case "OperationName":
		return "name the operation, e.g. `query myOperation { ... }`; the name becomes the endpoint path"
	}
	return ""
}

// faultReport builds the diagnostic report for a failed conversion. Schema
// faults are reported against the schema source, everything else against
// the query.
func faultReport(conv *conversion) diagnostic.Report {
	report := diagnostic.Report{
		Subject: "Query",
		Source:  conv.querySource,
		Content: conv.queryContent,
	}
	if _, ok := conv.result.(*convert.SchemaFault); ok {
		report.Subject = "Schema"
		report.Source = conv.schemaSource
		report.Content = conv.schemaContent
	}

	for _, err := range convert.Faults(conv.result) {
		entry := diagnostic.Entry{Message: err.Message, Length: errorSpanLength(err, report.Content)}
		if len(err.Locations) > 0 {
			entry.Line = err.Locations[0].Line
			entry.Column = err.Locations[0].Column
		}
		if zshHelp := detectZshEscapeIssue(err, report.Content, report.Source); zshHelp != "" {
			entry.Help = zshHelp
		} else {
			entry.Help = errorSuggestion(err, conv.converter.Schema())
		}
		report.Entries = append(report.Entries, entry)
	}
	return report
}

func formatValidationResultText(conv *conversion) string {
	if _, ok := conv.result.(*convert.Success); ok {
		return "✓ Query is valid"
	}
	return faultReport(conv).Render()
}

func formatValidationResultStructured(result *ValidationResult, format render.Format) (string, error) {
	enc := openapi.EncodingJSON
	if format == render.FormatYAML {
		enc = openapi.EncodingYAML
	}
	bytes, err := openapi.Encode(result, enc)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(bytes), "\n"), nil
}

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a GraphQL query converts cleanly against the schema",
		Long: `Validates a GraphQL query against the schema and checks that it can be
converted: the document must parse, pass GraphQL validation, and every
operation must be a named query.

The query can be provided as a file path argument or piped via stdin.

Exit codes:
  0 - Query is valid
  1 - Schema, parse, validation or conversion errors

Output formats:
  text    Human-readable error messages with locations
  json    {"valid": bool, "kind": "...", "errors": [...]}
  yaml    The same structure as YAML`,
		Example: `  # Validate from a file
  gql2openapi validate query.graphql

  # Validate from stdin
  echo "query user { user { id } }" | gql2openapi validate

  # JSON output for CI integration
  gql2openapi validate query.graphql -f json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidateCmd,
	}

	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	conv, err := runConversion(cmd, args, convert.WithCustomScalars(convert.StaticScalars(openapi.TypeString)))
	if err != nil {
		return err
	}

	result := validationResult(conv.result)

	if outputFormat.Structured() {
		output, err := formatValidationResultStructured(result, outputFormat)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), formatValidationResultText(conv))
	}

	// Return error if validation failed (causes exit code 1)
	if !result.Valid {
		return ErrValidationFailed
	}

	return nil
}

// printFaults writes the faults of a failed conversion: structured on
// stdout for json and yaml, as diagnostics on stderr otherwise.
func printFaults(cmd *cobra.Command, conv *conversion) error {
	if outputFormat.Structured() {
		output, err := formatValidationResultStructured(validationResult(conv.result), outputFormat)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), faultReport(conv).Render())
	return nil
}
