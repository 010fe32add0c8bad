// Copyright 2025 The Electricity-Theft-Detection Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSVLoader_ReadParsesHeaderAndRows(t *testing.T) {
	l := NewCSVLoader(testLogger())

	input := "customer_id,month,units_consumed,peak_load_kw\n" +
		"C1, 2025-01,320,3.78\n" +
		"C2,2025-01,450,4.02\n"

	table, err := l.Read("usage.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Name != "usage.csv" {
		t.Errorf("expected table name usage.csv, got %s", table.Name)
	}
	if len(table.Columns) != 4 || table.Columns[0] != ColumnCustomerID || table.Columns[3] != ColumnPeakLoadKW {
		t.Errorf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0][1] != "2025-01" {
		t.Errorf("expected leading space trimmed, got %q", table.Rows[0][1])
	}
	if table.Rows[1][2] != "450" {
		t.Errorf("unexpected cell value: %q", table.Rows[1][2])
	}
}

func TestCSVLoader_ReadStripsByteOrderMark(t *testing.T) {
	l := NewCSVLoader(testLogger())

	input := "\uFEFFcustomer_id,month,units_consumed,peak_load_kw\n" +
		"C1,2025-01,320,3.78\n"

	table, err := l.Read("excel.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Columns[0] != ColumnCustomerID {
		t.Errorf("expected BOM stripped from first column, got %q", table.Columns[0])
	}
}

func TestCSVLoader_ReadKeepsRaggedRows(t *testing.T) {
	l := NewCSVLoader(testLogger())

	input := "customer_id,month,units_consumed,peak_load_kw\n" +
		"C1,2025-01,320,3.78\n" +
		"C2,2025-01\n"

	table, err := l.Read("ragged.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected ragged rows to load without error, got %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if len(table.Rows[1]) != 2 {
		t.Errorf("expected the short row kept as-is, got %d cells", len(table.Rows[1]))
	}
}

func TestCSVLoader_ReadEmptyInput(t *testing.T) {
	l := NewCSVLoader(testLogger())

	_, err := l.Read("empty.csv", strings.NewReader(""))
	if err == nil {
		t.Fatal("expected an error for empty input")
	}
	if !strings.Contains(err.Error(), "empty file") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestCSVLoader_ReadMalformedQuoting(t *testing.T) {
	l := NewCSVLoader(testLogger())

	input := "customer_id,month,units_consumed,peak_load_kw\n" +
		"C1,2025-01,320,3.78\n" +
		"C2,\"2025-01,450,4.02\n"

	_, err := l.Read("quotes.csv", strings.NewReader(input))
	if err == nil {
		t.Fatal("expected an error for an unterminated quote")
	}
	if !strings.Contains(err.Error(), "failed to read row") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestCSVLoader_LoadFiles(t *testing.T) {
	l := NewCSVLoader(testLogger())

	dir := t.TempDir()
	goodPath := filepath.Join(dir, "feeder12.csv")
	content := "customer_id,month,units_consumed,peak_load_kw\nC1,2025-01,320,3.78\n"
	if err := os.WriteFile(goodPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tables, rejected := l.LoadFiles([]string{goodPath, filepath.Join(dir, "missing.csv")})

	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if tables[0].Name != "feeder12.csv" {
		t.Errorf("expected the table named after the file, got %s", tables[0].Name)
	}
	if len(tables[0].Rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(tables[0].Rows))
	}

	if len(rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejected))
	}
	if rejected[0].Table != "missing.csv" {
		t.Errorf("expected missing.csv rejected, got %s", rejected[0].Table)
	}
	if !strings.Contains(rejected[0].Reason, "cannot open file") {
		t.Errorf("unexpected rejection reason: %s", rejected[0].Reason)
	}
}
