// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package space

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	dbxerrors "dbxkit/cli/internal/errors"
)

// Serialize encodes doc as the JSON text sent in serialized_space.
func Serialize(doc *Document) (string, error) {
	if doc == nil {
		return "", dbxerrors.New(dbxerrors.InvalidDocument, "no space document")
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", dbxerrors.Wrap(dbxerrors.InvalidDocument, "encode space document", err)
	}
	return string(b), nil
}

// Parse decodes JSON text produced by Serialize.
func Parse(text string) (*Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.InvalidDocument, "decode space document", err)
	}
	return &doc, nil
}

// Marshal renders doc as YAML, the format `genie sample` writes.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.InvalidDocument, "encode space document", err)
	}
	if err := enc.Close(); err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.InvalidDocument, "encode space document", err)
	}
	return buf.Bytes(), nil
}

// Load reads a space document from a .json, .yaml or .yml file.
// Unknown fields are rejected so typos in directive names surface early.
// A missing version is set to CurrentVersion.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.InvalidDocument, fmt.Sprintf("read %s", path), err)
	}

	var doc Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	}
	if errors.Is(err, io.EOF) {
		return nil, dbxerrors.New(dbxerrors.InvalidDocument, fmt.Sprintf("%s is empty", path))
	}
	if err != nil {
		return nil, dbxerrors.Wrap(dbxerrors.InvalidDocument, fmt.Sprintf("parse %s", path), err)
	}

	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	return &doc, nil
}

// NewID returns a fresh 32-character hex identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// AssignMissingIDs gives every entry with an empty id a fresh one and returns
// how many were assigned. Existing ids are left untouched.
func AssignMissingIDs(doc *Document) int {
	n := 0
	fill := func(id *string) {
		if strings.TrimSpace(*id) == "" {
			*id = NewID()
			n++
		}
	}

	for i := range doc.Config.SampleQuestions {
		fill(&doc.Config.SampleQuestions[i].ID)
	}
	for i := range doc.Instructions.TextInstructions {
		fill(&doc.Instructions.TextInstructions[i].ID)
	}
	for i := range doc.Instructions.ExampleQuestionSQLs {
		fill(&doc.Instructions.ExampleQuestionSQLs[i].ID)
	}
	for i := range doc.Instructions.SQLSnippets.Filters {
		fill(&doc.Instructions.SQLSnippets.Filters[i].ID)
	}
	for i := range doc.Instructions.SQLSnippets.Expressions {
		fill(&doc.Instructions.SQLSnippets.Expressions[i].ID)
	}
	return n
}
