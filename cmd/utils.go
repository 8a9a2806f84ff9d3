package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samwightt/gql2openapi/pkg/convert"
	"github.com/samwightt/gql2openapi/pkg/openapi"
	"github.com/spf13/cobra"
)

var tableStyle = lipgloss.NewStyle().PaddingRight(1)

func makeTable() *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return tableStyle
		})
}

const maxSuggestionDistance = 5

func findClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// pluck maps every item of a slice through fn.
func pluck[T any, R any](items []T, fn func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// schemaLabel describes a fragment in SDL-like notation, e.g. "[string!]!".
func schemaLabel(s *openapi.Schema) string {
	if s == nil {
		return ""
	}
	label := string(s.Type)
	if s.Type == openapi.TypeArray {
		label = "[" + schemaLabel(s.Items) + "]"
	}
	if !s.Nullable {
		label += "!"
	}
	return label
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// conversion carries the sources of one CLI conversion next to its result,
// so faults can be rendered against the text they came from.
type conversion struct {
	converter     *convert.Converter
	schemaSource  string
	schemaContent string
	querySource   string
	queryContent  string
	result        convert.Result
}

func loadSchemaSource() (name string, content string, err error) {
	path, err := filepath.Abs(schemaFilePath)
	if err != nil {
		return "", "", err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("schema file does not exist: %s", schemaFilePath)
		}
		return "", "", fmt.Errorf("failed to read schema file: %w", err)
	}

	return filepath.Base(path), string(bytes), nil
}

func readQuerySource(cmd *cobra.Command, args []string) (name string, content string, err error) {
	if len(args) == 1 {
		bytes, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read query file: %w", err)
		}
		return args[0], string(bytes), nil
	}

	bytes, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return "stdin", string(bytes), nil
}

// runConversion loads the schema and query named on the command line and
// converts them. Faults are returned inside the conversion, not as errors.
func runConversion(cmd *cobra.Command, args []string, opts ...convert.Option) (*conversion, error) {
	schemaName, schemaContent, err := loadSchemaSource()
	if err != nil {
		return nil, err
	}
	queryName, queryContent, err := readQuerySource(cmd, args)
	if err != nil {
		return nil, err
	}

	opts = append([]convert.Option{
		convert.WithSchemaName(schemaName),
		convert.WithQueryName(queryName),
		convert.WithLogger(logger),
	}, opts...)
	converter := convert.New(schemaContent, opts...)

	logger.WithField("query", queryName).Debug("converting query")
	return &conversion{
		converter:     converter,
		schemaSource:  schemaName,
		schemaContent: schemaContent,
		querySource:   queryName,
		queryContent:  queryContent,
		result:        converter.Convert(queryContent),
	}, nil
}

// convertedDocument runs a conversion and prints its faults when it did
// not succeed.
func convertedDocument(cmd *cobra.Command, args []string, opts ...convert.Option) (*openapi.Document, error) {
	conv, err := runConversion(cmd, args, opts...)
	if err != nil {
		return nil, err
	}
	if success, ok := conv.result.(*convert.Success); ok {
		return success.Document, nil
	}
	if err := printFaults(cmd, conv); err != nil {
		return nil, err
	}
	return nil, ErrConversionFailed
}
