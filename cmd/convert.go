/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/samwightt/gql2openapi/pkg/convert"
	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/samwightt/gql2openapi/pkg/render"
	"github.com/spf13/cobra"
)

// ErrConversionFailed is returned when the schema or query could not be
// converted. The faults have already been printed.
var ErrConversionFailed = errors.New("conversion failed")

type convertOptions struct {
	out              string
	customScalarType string
}

var validScalarTypes = []openapi.Type{
	openapi.TypeString,
	openapi.TypeInteger,
	openapi.TypeNumber,
	openapi.TypeBoolean,
	openapi.TypeObject,
}

// scalarOptions turns the --custom-scalar-type flag into converter options.
// An empty type leaves custom scalars unsupported.
func scalarOptions(typeName string) ([]convert.Option, error) {
	if typeName == "" {
		return nil, nil
	}
	for _, t := range validScalarTypes {
		if string(t) == typeName {
			return []convert.Option{convert.WithCustomScalars(convert.StaticScalars(t))}, nil
		}
	}
	return nil, fmt.Errorf("invalid custom scalar type: %s (valid: %v)", typeName, validScalarTypes)
}

func documentEncoding(format render.Format) openapi.Encoding {
	if format == render.FormatJSON {
		return openapi.EncodingJSON
	}
	return openapi.EncodingYAML
}

func NewConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a named GraphQL query into a Swagger 2.0 document",
		Long: `Converts a GraphQL query document into a Swagger 2.0 document with one
GET path per named query operation.

The query can be provided as a file path argument or piped via stdin.

  - The path is "/" followed by the operation name.
  - Every variable becomes a query parameter; non-null variables are required.
  - The selection set becomes the schema of the 200 response, with
    "nullable" set on every level from the GraphQL non-null markers.

Custom scalars map to --custom-scalar-type (default string). Pass an empty
value to report them as errors instead.

Output formats:
  yaml    Swagger document as YAML (also used for text and pretty)
  json    Swagger document as JSON`,
		Example: `  # Convert a query file
  gql2openapi convert pokemon.graphql -s schema.graphql

  # Convert from stdin and write JSON to a file
  cat pokemon.graphql | gql2openapi convert -f json -o swagger.json

  # Map custom scalars to integers
  gql2openapi convert query.graphql --custom-scalar-type integer`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringVar(&opts.customScalarType, "custom-scalar-type", string(openapi.TypeString), "OpenAPI type used for custom scalars (empty to reject them)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *convertOptions) error {
	convertOpts, err := scalarOptions(opts.customScalarType)
	if err != nil {
		return err
	}

	doc, err := convertedDocument(cmd, args, convertOpts...)
	if err != nil {
		return err
	}

	output, err := openapi.Encode(doc, documentEncoding(outputFormat))
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}
	if len(output) > 0 && output[len(output)-1] != '\n' {
		output = append(output, '\n')
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.WithField("file", opts.out).Debug("wrote document")
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return err
	}
	return nil
}
