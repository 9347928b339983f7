// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package space

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbxerrors "dbxkit/cli/internal/errors"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	doc := Sample("main", "sales")

	text, err := Serialize(doc)
	require.NoError(t, err)

	back, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, doc, back)
}

func TestSerializeWireShape(t *testing.T) {
	text, err := Serialize(Sample("main", "sales"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &raw))

	assert.EqualValues(t, 1, raw["version"])
	tables := raw["data_sources"].(map[string]any)["tables"].([]any)
	require.Len(t, tables, 2)

	first := tables[0].(map[string]any)
	assert.Equal(t, "main.sales.customers", first["identifier"])
	assert.NotContains(t, first, "description")
	assert.NotContains(t, first, "column_configs")

	columns := tables[1].(map[string]any)["column_configs"].([]any)
	require.Len(t, columns, 3)
	assert.Equal(t, false, columns[0].(map[string]any)["build_value_dictionary"], "explicit false must be kept")
	assert.NotContains(t, columns[1].(map[string]any), "build_value_dictionary")
	assert.Equal(t, true, columns[2].(map[string]any)["build_value_dictionary"])

	expr := raw["instructions"].(map[string]any)["sql_snippets"].(map[string]any)["expressions"].([]any)[0].(map[string]any)
	assert.Equal(t, "order_year", expr["alias"])
	assert.NotContains(t, expr, "synonyms")
}

func TestSampleBindsCatalogAndSchema(t *testing.T) {
	doc := Sample("prod", "retail")

	require.Len(t, doc.DataSources.Tables, 2)
	assert.Equal(t, "prod.retail.customers", doc.DataSources.Tables[0].Identifier)
	assert.Equal(t, "prod.retail.orders", doc.DataSources.Tables[1].Identifier)
	assert.Equal(t, "FROM prod.retail.orders o\n", doc.Instructions.ExampleQuestionSQLs[0].SQL[1])
	assert.Len(t, doc.Config.SampleQuestions, 3)
}

func TestSerializeNil(t *testing.T) {
	_, err := Serialize(nil)
	require.Error(t, err)
	assert.Equal(t, dbxerrors.InvalidDocument, dbxerrors.KindOf(err))
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("{not json")
	require.Error(t, err)
	assert.Equal(t, dbxerrors.InvalidDocument, dbxerrors.KindOf(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlDoc := `config:
  sample_questions:
    - id: q1
      question: ["How many orders shipped today?"]
data_sources:
  tables:
    - identifier: main.sales.orders
      column_configs:
        - column_name: status
          get_example_values: true
          build_value_dictionary: false
instructions:
  sql_snippets:
    filters:
      - id: f1
        sql: ["orders.status = 'SHIPPED'"]
        display_name: shipped
`
	yamlPath := filepath.Join(dir, "space.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDoc), 0o600))

	doc, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Equal(t, "q1", doc.Config.SampleQuestions[0].ID)
	require.NotNil(t, doc.DataSources.Tables[0].ColumnConfigs[0].BuildValueDictionary)
	assert.False(t, *doc.DataSources.Tables[0].ColumnConfigs[0].BuildValueDictionary)
	assert.Equal(t, "shipped", doc.Instructions.SQLSnippets.Filters[0].DisplayName)

	jsonPath := filepath.Join(dir, "space.json")
	text, err := Serialize(Sample("main", "sales"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jsonPath, []byte(text), 0o600))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, Sample("main", "sales"), fromJSON)
}

func TestLoadKeepsExplicitFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "space.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: 1
data_sources:
  tables:
    - identifier: main.sales.orders
      column_configs:
        - column_name: status
          get_example_values: false
          build_value_dictionary: false
        - column_name: region
`), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)

	text, err := Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, text, `"get_example_values":false`)
	assert.Contains(t, text, `"build_value_dictionary":false`)
	assert.Contains(t, text, `{"column_name":"region"}`)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "missing file", file: "absent.yaml"},
		{name: "empty file", file: "empty.yaml", content: ""},
		{name: "unknown field", file: "typo.yaml", content: "instructions:\n  text_instruction: []\n"},
		{name: "unknown json field", file: "typo.json", content: `{"versionn": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.name != "missing file" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}
			_, err := Load(path)
			require.Error(t, err)
			assert.Equal(t, dbxerrors.InvalidDocument, dbxerrors.KindOf(err))
		})
	}
}

func TestMarshalIsLoadable(t *testing.T) {
	out, err := Marshal(Sample("main", "sales"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(path, out, 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Sample("main", "sales"), doc)
}

func TestAssignMissingIDs(t *testing.T) {
	doc := &Document{
		Config: Config{SampleQuestions: []SampleQuestion{
			{ID: "keep-me", Question: []string{"a"}},
			{Question: []string{"b"}},
		}},
		Instructions: Instructions{
			TextInstructions: []TextInstruction{{Content: []string{"c"}}},
			SQLSnippets: SQLSnippets{
				Filters:     []Filter{{ID: "  "}},
				Expressions: []Expression{{ID: "e1"}},
			},
		},
	}

	n := AssignMissingIDs(doc)
	assert.Equal(t, 3, n)
	assert.Equal(t, "keep-me", doc.Config.SampleQuestions[0].ID)
	assert.Equal(t, "e1", doc.Instructions.SQLSnippets.Expressions[0].ID)

	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)
	assert.Regexp(t, hex32, doc.Config.SampleQuestions[1].ID)
	assert.Regexp(t, hex32, doc.Instructions.TextInstructions[0].ID)
	assert.Regexp(t, hex32, doc.Instructions.SQLSnippets.Filters[0].ID)

	assert.Zero(t, AssignMissingIDs(doc), "second pass assigns nothing")
}
