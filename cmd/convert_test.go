package cmd_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samwightt/gql2openapi/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const convertTestQuery = `
query GetUsers($limit: Int, $filter: UserFilter) {
  users(limit: $limit, filter: $filter) {
    id
    joined
    posts {
      title
    }
  }
}
`

func isConversionError(err error) bool {
	return err != nil && errors.Is(err, cmd.ErrConversionFailed)
}

type swaggerDoc struct {
	Swagger string `json:"swagger" yaml:"swagger"`
	Paths   map[string]struct {
		Get struct {
			Parameters []map[string]any `json:"parameters" yaml:"parameters"`
			Responses  map[string]struct {
				Description string         `json:"description" yaml:"description"`
				Schema      map[string]any `json:"schema" yaml:"schema"`
			} `json:"responses" yaml:"responses"`
		} `json:"get" yaml:"get"`
	} `json:"paths" yaml:"paths"`
}

func TestConvert_JSON(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "json"})
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	require.Contains(t, doc.Paths, "/GetUsers")

	get := doc.Paths["/GetUsers"].Get
	require.Len(t, get.Parameters, 2)
	assert.Equal(t, "limit", get.Parameters[0]["name"])
	assert.Equal(t, "integer", get.Parameters[0]["type"])
	assert.Equal(t, false, get.Parameters[0]["required"])
	assert.Equal(t, "filter", get.Parameters[1]["name"])
	assert.Equal(t, "object", get.Parameters[1]["type"])

	resp := get.Responses["200"]
	assert.Equal(t, "response", resp.Description)
	users := resp.Schema["properties"].(map[string]any)["users"].(map[string]any)
	assert.Equal(t, "array", users["type"])
	assert.Equal(t, false, users["nullable"])

	item := users["items"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string", "nullable": true}, item["joined"])
	assert.Contains(t, item["posts"].(map[string]any)["items"].(map[string]any)["properties"], "title")
}

func TestConvert_YAMLIsDefaultForText(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/GetUsers")
}

func TestConvert_Stdin(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	stdin := bytes.NewBufferString(`query One { user(id: "1") { name } }`)

	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"convert", "-s", schemaPath, "-f", "yaml"}, stdin)
	require.NoError(t, err)
	assert.Contains(t, stdout, "/One:")
	assert.Contains(t, stdout, "parameters: []")
}

func TestConvert_OutFile(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)
	queryPath := writeValidateQuery(t, dir, convertTestQuery)
	outPath := filepath.Join(dir, "swagger.json")

	stdout, _, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "json", "-o", outPath})
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc.Paths, "/GetUsers")
}

func TestConvert_CustomScalarRejected(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "text", "--custom-scalar-type", ""})
	assert.True(t, isConversionError(err), "expected conversion error")
	assert.Contains(t, stderr, "unrecognized scalar type: DateTime")
}

func TestConvert_CustomScalarType(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "json", "--custom-scalar-type", "integer"})
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	users := doc.Paths["/GetUsers"].Get.Responses["200"].Schema["properties"].(map[string]any)["users"].(map[string]any)
	item := users["items"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "integer", item["joined"].(map[string]any)["type"])
}

func TestConvert_InvalidCustomScalarType(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	_, _, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "--custom-scalar-type", "date"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid custom scalar type")
}

func TestConvert_FaultsOnStderr(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `query Bad { user(id: "1") { nme } }`)

	stdout, stderr, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isConversionError(err), "expected conversion error")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "✗ Query has 1 error")
	assert.Contains(t, stderr, "did you mean `name`?")
}

func TestConvert_FaultsAsJSON(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `{ user(id: "1") { name } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "json"})
	assert.True(t, isConversionError(err), "expected conversion error")

	var result struct {
		Valid bool   `json:"valid"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, "operation-name", result.Kind)
}

func TestConvert_VerboseLogs(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "json", "-v"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "registered operation")
	assert.Contains(t, stderr, "path=/GetUsers")
}

func TestConvert_QuietByDefault(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), convertTestQuery)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"convert", queryPath, "-s", schemaPath, "-f", "json"})
	require.NoError(t, err)
	assert.Empty(t, stderr)
}
