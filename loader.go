// Copyright 2025 The Electricity-Theft-Detection Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVLoader reads usage tables from CSV files
type CSVLoader struct {
	logger *Logger
}

// NewCSVLoader creates a new CSV table loader
func NewCSVLoader(logger *Logger) *CSVLoader {
	return &CSVLoader{
		logger: logger.WithComponent("loader"),
	}
}

// LoadFiles reads each path into a raw table. Unreadable or malformed files
// become rejections rather than hard failures, so one bad upload never
// aborts a whole run.
func (l *CSVLoader) LoadFiles(paths []string) ([]RawTable, []TableRejection) {
	var tables []RawTable
	var rejected []TableRejection

	for _, path := range paths {
		name := filepath.Base(path)

		f, err := os.Open(path)
		if err != nil {
			l.logger.LogTableRejected(name, err.Error())
			rejected = append(rejected, TableRejection{Table: name, Reason: fmt.Sprintf("cannot open file: %v", err)})
			continue
		}

		table, err := l.Read(name, f)
		f.Close()
		if err != nil {
			l.logger.LogTableRejected(name, err.Error())
			rejected = append(rejected, TableRejection{Table: name, Reason: err.Error()})
			continue
		}

		l.logger.LogTableLoaded(name, len(table.Rows))
		tables = append(tables, table)
	}

	return tables, rejected
}

// Read parses one CSV stream into a raw table. The first row is the header;
// ragged data rows are kept and left for the normalizer to judge.
func (l *CSVLoader) Read(name string, r io.Reader) (RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return RawTable{}, fmt.Errorf("empty file")
	}
	if err != nil {
		return RawTable{}, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			// Excel exports prefix the first header cell with a UTF-8 BOM
			col = strings.TrimPrefix(col, "\uFEFF")
		}
		columns[i] = col
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}

	return RawTable{
		Name:    name,
		Columns: columns,
		Rows:    rows,
	}, nil
}
