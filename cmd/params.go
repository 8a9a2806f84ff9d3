/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/samwightt/gql2openapi/pkg/render"
	"github.com/spf13/cobra"
)

type paramsOptions struct {
	required         bool
	optional         bool
	name             string
	customScalarType string
}

func paramLabel(p *openapi.Parameter) string {
	return schemaLabel(&openapi.Schema{Type: p.Type, Nullable: !p.Required, Items: p.Items})
}

func formatParamText(p ParamInfo) string {
	desc := ""
	if p.Description != "" {
		desc = " # " + oneLine(p.Description)
	}
	enum := ""
	if len(p.Enum) > 0 {
		enum = " (" + strings.Join(p.Enum, " | ") + ")"
	}
	return fmt.Sprintf("%s %s: %s%s%s", p.Path, p.Name, p.Type, enum, desc)
}

func formatParamsPretty(params []ParamInfo) string {
	t := makeTable()

	for _, p := range params {
		required := "no"
		if p.Required {
			required = "yes"
		}
		t.Row(p.Path, p.Name, p.Type, required, strings.Join(p.Enum, ", "), oneLine(p.Description))
	}
	t.Headers("path", "parameter", "type", "required", "values", "description")

	return t.String()
}

func NewParamsCmd() *cobra.Command {
	opts := &paramsOptions{}

	cmd := &cobra.Command{
		Use:   "params [file]",
		Short: "List the query parameters each converted endpoint accepts",
		Long: `Lists the query parameters generated from the variables of each named query.

The query can be provided as a file path argument or piped via stdin.

Output formats:
  text    "/pokemon name: string", "/search filter: object!", etc. (default when piping)
  json    [{"path": "/pokemon", "name": "name", "type": "string", "required": false}, ...]
  yaml    The same list as YAML
  pretty  Formatted table with columns (default in terminal)`,
		Example: `  # See every parameter of every endpoint
  gql2openapi params queries.graphql

  # Only the parameters a client must send
  gql2openapi params queries.graphql --required

  # Parameters whose name starts with "filter"
  gql2openapi params queries.graphql --name "filter*"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParams(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required parameters")
	cmd.Flags().BoolVar(&opts.optional, "optional", false, "Filter to only show optional parameters")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter parameters by name using a glob pattern (e.g., *Id, filter*)")
	cmd.Flags().StringVar(&opts.customScalarType, "custom-scalar-type", string(openapi.TypeString), "OpenAPI type used for custom scalars (empty to reject them)")

	return cmd
}

func runParams(cmd *cobra.Command, args []string, opts *paramsOptions) error {
	if opts.required && opts.optional {
		return fmt.Errorf("--required and --optional cannot be used together")
	}

	convertOpts, err := scalarOptions(opts.customScalarType)
	if err != nil {
		return err
	}
	doc, err := convertedDocument(cmd, args, convertOpts...)
	if err != nil {
		return err
	}

	var params []ParamInfo
	for _, path := range sortedKeys(doc.Paths) {
		for _, p := range doc.Paths[path].Get.Parameters {
			if opts.required && !p.Required {
				continue
			}
			if opts.optional && p.Required {
				continue
			}
			if opts.name != "" {
				matched, _ := filepath.Match(opts.name, p.Name)
				if !matched {
					continue
				}
			}
			params = append(params, ParamInfo{
				Path:        path,
				Name:        p.Name,
				Type:        paramLabel(p),
				Required:    p.Required,
				Enum:        p.Enum,
				Description: p.Description,
			})
		}
	}

	if len(params) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No parameters found that match the filters.")
	}

	renderer := render.Renderer[ParamInfo]{
		Data:         params,
		TextFormat:   formatParamText,
		PrettyFormat: formatParamsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
