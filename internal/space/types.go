// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package space models the Genie space configuration document.
//
// A Document is built once per run (either from the built-in sample or from a
// YAML/JSON file), serialized exactly once into the serialized_space field of
// the create request, and then discarded. Identifiers are opaque strings
// supplied by the author; they are assumed unique but never validated.
package space

// CurrentVersion is the document version understood by the Genie API.
const CurrentVersion = 1

// Document is the serialized space configuration.
type Document struct {
	Version      int          `json:"version" yaml:"version"`
	Config       Config       `json:"config" yaml:"config"`
	DataSources  DataSources  `json:"data_sources" yaml:"data_sources"`
	Instructions Instructions `json:"instructions" yaml:"instructions"`
}

// Config holds conversation-level settings.
type Config struct {
	SampleQuestions []SampleQuestion `json:"sample_questions,omitempty" yaml:"sample_questions,omitempty"`
}

// SampleQuestion is a suggested prompt shown to users of the space.
type SampleQuestion struct {
	ID       string   `json:"id" yaml:"id"`
	Question []string `json:"question" yaml:"question"`
}

// DataSources lists the tables the space may query.
type DataSources struct {
	Tables []Table `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// Table references a Unity Catalog table by its three-part identifier.
type Table struct {
	Identifier    string         `json:"identifier" yaml:"identifier"`
	Description   []string       `json:"description,omitempty" yaml:"description,omitempty"`
	ColumnConfigs []ColumnConfig `json:"column_configs,omitempty" yaml:"column_configs,omitempty"`
}

// ColumnConfig holds per-column directives.
// The flags are pointers so an explicit false survives a round trip.
type ColumnConfig struct {
	ColumnName           string `json:"column_name" yaml:"column_name"`
	GetExampleValues     *bool  `json:"get_example_values,omitempty" yaml:"get_example_values,omitempty"`
	BuildValueDictionary *bool  `json:"build_value_dictionary,omitempty" yaml:"build_value_dictionary,omitempty"`
}

// Instructions is the guidance given to the space.
type Instructions struct {
	TextInstructions    []TextInstruction    `json:"text_instructions,omitempty" yaml:"text_instructions,omitempty"`
	ExampleQuestionSQLs []ExampleQuestionSQL `json:"example_question_sqls,omitempty" yaml:"example_question_sqls,omitempty"`
	SQLSnippets         SQLSnippets          `json:"sql_snippets" yaml:"sql_snippets"`
}

// TextInstruction is free-text guidance.
type TextInstruction struct {
	ID      string   `json:"id" yaml:"id"`
	Content []string `json:"content" yaml:"content"`
}

// ExampleQuestionSQL pairs a question with the SQL that answers it.
// SQL is split into lines, each keeping its trailing newline.
type ExampleQuestionSQL struct {
	ID       string   `json:"id" yaml:"id"`
	Question []string `json:"question" yaml:"question"`
	SQL      []string `json:"sql" yaml:"sql"`
}

// SQLSnippets are reusable SQL fragments.
type SQLSnippets struct {
	Filters     []Filter     `json:"filters,omitempty" yaml:"filters,omitempty"`
	Expressions []Expression `json:"expressions,omitempty" yaml:"expressions,omitempty"`
}

// Filter is a named boolean predicate.
type Filter struct {
	ID          string   `json:"id" yaml:"id"`
	SQL         []string `json:"sql" yaml:"sql"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Synonyms    []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
}

// Expression is a named scalar expression.
type Expression struct {
	ID          string   `json:"id" yaml:"id"`
	Alias       string   `json:"alias" yaml:"alias"`
	SQL         []string `json:"sql" yaml:"sql"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Synonyms    []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
}

// Bool returns a pointer to b, for the ColumnConfig flags.
func Bool(b bool) *bool { return &b }
