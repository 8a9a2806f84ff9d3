package convert

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type recordingHandler struct {
	events []string
	ids    map[int]bool
	stopAt string
}

func (h *recordingHandler) label(n node) string {
	switch n.kind {
	case kindDocument:
		return "document"
	case kindOperation:
		return "operation " + n.operation.Name
	case kindVariable:
		return "variable " + n.variable.Variable
	default:
		return "field " + n.field.Name
	}
}

func (h *recordingHandler) enter(id int, n node) error {
	h.ids[id] = true
	ev := "enter " + h.label(n)
	h.events = append(h.events, ev)
	if ev == h.stopAt {
		return errors.New("stop")
	}
	return nil
}

func (h *recordingHandler) leave(id int, n node) error {
	h.events = append(h.events, "leave "+h.label(n))
	return nil
}

func parseTestQuery(t *testing.T, query string) *ast.QueryDocument {
	t.Helper()
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	require.NoError(t, err)
	return doc
}

func TestWalk_Order(t *testing.T) {
	doc := parseTestQuery(t, `
query q($a: Int) {
  first { x }
  second
}`)
	h := &recordingHandler{ids: map[int]bool{}}
	require.NoError(t, walk(doc, h))

	want := []string{
		"enter document",
		"enter operation q",
		"enter variable a",
		"leave variable a",
		"enter field first",
		"enter field x",
		"leave field x",
		"leave field first",
		"enter field second",
		"leave field second",
		"leave operation q",
		"leave document",
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_IdenticalSiblingsHaveDistinctIDs(t *testing.T) {
	doc := parseTestQuery(t, `query q { a { b } c: a { b } }`)
	h := &recordingHandler{ids: map[int]bool{}}
	require.NoError(t, walk(doc, h))

	// document, operation and four fields
	assert.Len(t, h.ids, 6)
}

func TestWalk_FragmentsAreTransparent(t *testing.T) {
	doc := parseTestQuery(t, `
query q {
  ...F
  ... on Query { b }
}
fragment F on Query { a }`)
	h := &recordingHandler{ids: map[int]bool{}}
	require.NoError(t, walk(doc, h))

	assert.Equal(t, []string{
		"enter document",
		"enter operation q",
		"enter field a",
		"leave field a",
		"enter field b",
		"leave field b",
		"leave operation q",
		"leave document",
	}, h.events)
}

func TestWalk_StopsOnError(t *testing.T) {
	doc := parseTestQuery(t, `query q { a b c }`)
	h := &recordingHandler{ids: map[int]bool{}, stopAt: "enter field b"}

	err := walk(doc, h)
	require.Error(t, err)
	assert.NotContains(t, h.events, "enter field c")
	assert.Equal(t, "enter field b", h.events[len(h.events)-1])
}

func TestWalk_DeepSelection(t *testing.T) {
	query := "query q { "
	for i := 0; i < 200; i++ {
		query += fmt.Sprintf("f%d { ", i)
	}
	query += "leaf"
	for i := 0; i < 200; i++ {
		query += " }"
	}
	query += " }"

	h := &recordingHandler{ids: map[int]bool{}}
	require.NoError(t, walk(parseTestQuery(t, query), h))
	assert.Equal(t, "leave document", h.events[len(h.events)-1])
	assert.Len(t, h.ids, 203)
}
