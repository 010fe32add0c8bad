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
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func exportFixture() *AnalysisResult {
	return &AnalysisResult{
		RunID:       "run-123",
		GeneratedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		State:       StateAnalyzed,
		ChangeRecords: []ChangeRecord{
			{
				CustomerID:        "C1",
				PrevMonth:         "2025-01",
				CurrentMonth:      "2025-02",
				PrevUnits:         320,
				CurrentUnits:      180,
				UnitsChange:       -140,
				UnitsChangePct:    -43.75,
				PrevPeakLoad:      3.78,
				CurrentPeakLoad:   2.1,
				PeakLoadChange:    -1.68,
				PeakLoadChangePct: -44.44,
				IsSuspicious:      true,
				RiskLevel:         RiskHigh,
				Reasons:           []string{ReasonPeakLoadDrop, ReasonUnitsDrop},
			},
		},
		Summaries: []CustomerSummary{
			{
				CustomerID:        "C1",
				TotalMonths:       2,
				AvgUnits:          250,
				AvgPeakLoad:       2.94,
				SuspiciousPeriods: 1,
				TotalComparisons:  1,
				OverallRisk:       RiskHigh,
				LatestMonth:       "2025-02",
				LatestUnits:       180,
				LatestPeakLoad:    2.1,
			},
		},
	}
}

func TestExporter_ExportJSON(t *testing.T) {
	e, err := NewExporter(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := e.ExportJSON(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "theft_analysis_2025-03-01_10-30-00.json" {
		t.Errorf("unexpected filename: %s", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	var decoded AnalysisResult
	if err := json.NewDecoder(f).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if decoded.RunID != "run-123" {
		t.Errorf("expected run ID round-tripped, got %s", decoded.RunID)
	}
	if len(decoded.ChangeRecords) != 1 || decoded.ChangeRecords[0].UnitsChangePct != -43.75 {
		t.Errorf("expected change records round-tripped, got %+v", decoded.ChangeRecords)
	}
}

func TestExporter_ExportCSVs(t *testing.T) {
	e, err := NewExporter(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paths, err := e.ExportCSVs(exportFixture())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "change_records_2025-03-01_10-30-00.csv" {
		t.Errorf("unexpected change records filename: %s", filepath.Base(paths[0]))
	}
	if filepath.Base(paths[1]) != "customer_summaries_2025-03-01_10-30-00.csv" {
		t.Errorf("unexpected summaries filename: %s", filepath.Base(paths[1]))
	}

	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatalf("failed to open change records: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse change records: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], changeRecordColumns) {
		t.Errorf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[0] != "C1" || row[1] != "2025-01" || row[2] != "2025-02" {
		t.Errorf("unexpected identity cells: %v", row[:3])
	}
	if row[3] != "320" || row[6] != "-43.75" {
		t.Errorf("expected floats without trailing zeros, got %q and %q", row[3], row[6])
	}
	if row[11] != "true" {
		t.Errorf("expected is_suspicious 'true', got %q", row[11])
	}
	if row[13] != "Significant peak load drop, Sudden drop in units consumed" {
		t.Errorf("unexpected reasons cell: %q", row[13])
	}

	sf, err := os.Open(paths[1])
	if err != nil {
		t.Fatalf("failed to open summaries: %v", err)
	}
	defer sf.Close()

	srows, err := csv.NewReader(sf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse summaries: %v", err)
	}
	if len(srows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d rows", len(srows))
	}
	if !reflect.DeepEqual(srows[0], customerSummaryColumns) {
		t.Errorf("unexpected header: %v", srows[0])
	}
	if srows[1][0] != "C1" || srows[1][8] != "High" {
		t.Errorf("unexpected summary row: %v", srows[1])
	}
}

func TestExporter_CreatesNestedOutputDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "reports", "2025")

	if _, err := NewExporter(base, testLogger()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(base)
	if err != nil {
		t.Fatalf("expected output dir created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}

func TestExporter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	e, err := NewExporter(dir, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path, err := e.WriteReport("summary.md", "# Report\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "summary.md") {
		t.Errorf("unexpected path: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if string(content) != "# Report\n" {
		t.Errorf("unexpected content: %q", content)
	}
}
