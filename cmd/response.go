/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/samwightt/gql2openapi/pkg/render"
	"github.com/spf13/cobra"
)

type responseOptions struct {
	required         bool
	nullable         bool
	depth            int
	customScalarType string
}

// flattenProperties lists every property below s using dotted names, with
// "[]" marking a step into array items. depth limits how many property
// levels are listed; zero means no limit.
func flattenProperties(path string, s *openapi.Schema, prefix string, depth int, level int) []PropertyInfo {
	for s != nil && s.Type == openapi.TypeArray {
		s = s.Items
		if prefix != "" {
			prefix += "[]"
		}
	}
	if s == nil || s.Type != openapi.TypeObject {
		return nil
	}
	if depth > 0 && level >= depth {
		return nil
	}

	var props []PropertyInfo
	for _, name := range sortedKeys(s.Properties) {
		prop := s.Properties[name]
		full := name
		if prefix != "" {
			full = prefix + "." + name
		}
		info := PropertyInfo{
			Path:        path,
			Property:    full,
			Type:        schemaLabel(prop),
			Nullable:    prop.Nullable,
			Description: prop.Description,
		}
		if prop.Type == openapi.TypeString {
			info.Enum = prop.Enum
		} else if prop.Items != nil && prop.Items.Type == openapi.TypeString {
			info.Enum = prop.Items.Enum
		}
		props = append(props, info)
		props = append(props, flattenProperties(path, prop, full, depth, level+1)...)
	}
	return props
}

func formatPropertyText(p PropertyInfo) string {
	desc := ""
	if p.Description != "" {
		desc = " # " + oneLine(p.Description)
	}
	enum := ""
	if len(p.Enum) > 0 {
		enum = " (" + strings.Join(p.Enum, " | ") + ")"
	}
	return fmt.Sprintf("%s %s: %s%s%s", p.Path, p.Property, p.Type, enum, desc)
}

func formatPropertiesPretty(props []PropertyInfo) string {
	t := makeTable()

	for _, p := range props {
		t.Row(p.Path, p.Property, p.Type, strings.Join(p.Enum, ", "), oneLine(p.Description))
	}
	t.Headers("path", "property", "type", "values", "description")

	return t.String()
}

func NewResponseCmd() *cobra.Command {
	opts := &responseOptions{}

	cmd := &cobra.Command{
		Use:   "response [file]",
		Short: "Show the response schema of each converted endpoint",
		Long: `Lists the properties of the 200 response schema generated for each named query.

Nested properties are shown with dotted names; "[]" marks a list.
Types use SDL-like notation where "!" means not nullable, for example
"[object!]!" is a non-null array of non-null objects.

Output formats:
  text    "/pokemon pokemon.attacks.special[].name: string", etc. (default when piping)
  json    [{"path": "/pokemon", "property": "pokemon.name", "type": "string", "nullable": true}, ...]
  yaml    The same list as YAML
  pretty  Formatted table with columns (default in terminal)`,
		Example: `  # Full response shape
  gql2openapi response pokemon.graphql

  # Only the top level properties
  gql2openapi response pokemon.graphql --depth 1

  # Properties clients can rely on being present
  gql2openapi response pokemon.graphql --required`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResponse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show non-nullable properties")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show nullable properties")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "Maximum nesting depth to list (0 for no limit)")
	cmd.Flags().StringVar(&opts.customScalarType, "custom-scalar-type", string(openapi.TypeString), "OpenAPI type used for custom scalars (empty to reject them)")

	return cmd
}

func runResponse(cmd *cobra.Command, args []string, opts *responseOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}
	if opts.depth < 0 {
		return fmt.Errorf("--depth must not be negative")
	}

	convertOpts, err := scalarOptions(opts.customScalarType)
	if err != nil {
		return err
	}
	doc, err := convertedDocument(cmd, args, convertOpts...)
	if err != nil {
		return err
	}

	var props []PropertyInfo
	for _, path := range sortedKeys(doc.Paths) {
		schema := doc.Paths[path].Get.Responses[openapi.StatusOK].Schema
		props = append(props, flattenProperties(path, schema, "", opts.depth, 0)...)
	}
	props = filterSlice(props, func(p PropertyInfo) bool {
		if opts.required && p.Nullable {
			return false
		}
		if opts.nullable && !p.Nullable {
			return false
		}
		return true
	})

	if len(props) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No properties found that match the filters.")
	}

	renderer := render.Renderer[PropertyInfo]{
		Data:         props,
		TextFormat:   formatPropertyText,
		PrettyFormat: formatPropertiesPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
