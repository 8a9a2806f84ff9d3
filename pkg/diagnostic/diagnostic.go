// Package diagnostic renders faults found in GraphQL schema and query
// sources as snippets with underlines and hints.
package diagnostic

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
)

// RenderSnippet renders a source line with line number, gutter, and underline caret.
// Returns something like:
//
//	3 | query { user }
//	  |         ^^^^ error message here
func RenderSnippet(source string, lineNum int, column int, length int, message string) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	numStr := strconv.Itoa(lineNum)
	gutterWidth := len(numStr)

	lineNumStyled := gutterStyle.Render(numStr)
	pipe := gutterStyle.Render("|")
	emptyGutter := strings.Repeat(" ", gutterWidth)

	// Line with number: "3 | query { user }"
	codeLine := lineNumStyled + " " + pipe + " " + source

	// Underline line: "  |         ^^^^"
	padding := strings.Repeat(" ", column-1)
	carets := caretStyle.Render(strings.Repeat("^", length))
	msgRendered := ""
	if message != "" {
		msgRendered = " " + messageStyle.Render(message)
	}
	underLine := emptyGutter + " " + pipe + " " + padding + carets + msgRendered

	return codeLine + "\n" + underLine
}

// RenderLocation renders a location header like "--> file.graphql:3:9"
func RenderLocation(filename string, line int, column int) string {
	loc := filename + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
	arrow := gutterStyle.Render("-->")
	return arrow + " " + loc
}

// RenderHelp renders a trailing hint like "  = help: did you mean `name`?"
func RenderHelp(help string) string {
	return "  = " + helpStyle.Render("help") + ": " + help
}

// Entry is one message reported against a source document. Line and Column
// are 1-based; a zero Line means the message has no position.
type Entry struct {
	Message string
	Line    int
	Column  int
	Length  int
	Help    string
}

// Report groups the entries reported for one source document.
type Report struct {
	Subject string
	Source  string
	Content string
	Entries []Entry
}

// Render formats the report as a header followed by one snippet per entry:
//
//	✗ Query has 1 error:
//	--> query.graphql:1:9
//	1 | query { user }
//	  |         ^^^^ Cannot query field "user" on type "Query".
func (r Report) Render() string {
	var b strings.Builder
	if len(r.Entries) == 1 {
		b.WriteString("✗ " + r.Subject + " has 1 error:\n")
	} else {
		b.WriteString("✗ " + r.Subject + " has " + strconv.Itoa(len(r.Entries)) + " errors:\n")
	}

	lines := strings.Split(r.Content, "\n")
	for _, e := range r.Entries {
		if e.Line <= 0 {
			b.WriteString("  " + messageStyle.Render(e.Message) + "\n")
		} else {
			b.WriteString(RenderLocation(r.Source, e.Line, e.Column) + "\n")
			if e.Line <= len(lines) {
				b.WriteString(RenderSnippet(lines[e.Line-1], e.Line, e.Column, e.Length, e.Message) + "\n")
			} else {
				b.WriteString("  " + messageStyle.Render(e.Message) + "\n")
			}
		}
		if e.Help != "" {
			b.WriteString(RenderHelp(e.Help) + "\n")
		}
	}
	return b.String()
}
