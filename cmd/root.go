/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"os"

	"github.com/samwightt/gql2openapi/pkg/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	schemaFilePath string
	outputFormat   render.Format
	verbose        bool
	logger         = logrus.New()
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gql2openapi",
		Short: "Turn named GraphQL queries into OpenAPI (Swagger 2.0) GET endpoints",
		Long: `gql2openapi reads a GraphQL schema and a query document and describes each
named query operation as an HTTP GET endpoint in a Swagger 2.0 document.

Query variables become query parameters and the operation's selection set
becomes the schema of the 200 response. Nullability is carried over exactly
as declared in the schema, at every level of nesting.

By default, gql2openapi tries to read ./schema.graphql in the current directory.
A different schema file can be specified using -s. Queries are read from a
file argument or from stdin.

Output can be formatted as YAML or JSON for documents, and as pretty tables
(default in terminals) or plain text (default when piping) for listings.`,
		Example: `  # Convert a query to a Swagger document (YAML)
  gql2openapi convert pokemon.graphql

  # Same, as JSON written to a file
  gql2openapi convert pokemon.graphql -f json -o pokemon.json

  # Check that a query converts cleanly
  gql2openapi validate pokemon.graphql

  # See which query parameters an endpoint takes
  gql2openapi params pokemon.graphql

  # See the shape of the response
  gql2openapi response pokemon.graphql`,
	}

	// Persistent flags
	cmd.PersistentFlags().StringVarP(&schemaFilePath, "schema", "s", "schema.graphql", "File path of GraphQL schema")

	var formatStr string
	cmd.PersistentFlags().StringVarP(&formatStr, "format", "f", formatFlag(), "Output format: json, yaml, text, pretty (default: pretty if interactive, text otherwise)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log conversion steps to stderr")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd, verbose)
		var err error
		outputFormat, err = render.ParseFormat(formatStr)
		return err
	}

	// Add all subcommands
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewParamsCmd())
	cmd.AddCommand(NewResponseCmd())

	return cmd
}

func newLogger(cmd *cobra.Command, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(cmd.ErrOrStderr())
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
