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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Exporter writes analysis outputs into the output directory
type Exporter struct {
	basePath string
	logger   *Logger
}

// NewExporter creates a new exporter rooted at basePath
func NewExporter(basePath string, logger *Logger) (*Exporter, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, &StorageError{
			Operation: "create_directory",
			Path:      basePath,
			Err:       err,
		}
	}

	logger.Debug("Exporter initialized", "path", basePath)

	return &Exporter{
		basePath: basePath,
		logger:   logger,
	}, nil
}

// ExportJSON saves the complete analysis result as JSON
func (e *Exporter) ExportJSON(result *AnalysisResult) (string, error) {
	filename := fmt.Sprintf("theft_analysis_%s.json", result.GeneratedAt.Format("2006-01-02_15-04-05"))
	path := filepath.Join(e.basePath, filename)

	e.logger.LogStorageOperation("export_json", path)

	if err := e.saveJSON(path, result); err != nil {
		return "", err
	}
	return path, nil
}

// ExportCSVs saves the change-record and customer-summary tables as CSV,
// returning the written paths
func (e *Exporter) ExportCSVs(result *AnalysisResult) ([]string, error) {
	timestamp := result.GeneratedAt.Format("2006-01-02_15-04-05")

	changesPath := filepath.Join(e.basePath, fmt.Sprintf("change_records_%s.csv", timestamp))
	if err := e.saveChangeRecordsCSV(changesPath, result.ChangeRecords); err != nil {
		return nil, err
	}

	summariesPath := filepath.Join(e.basePath, fmt.Sprintf("customer_summaries_%s.csv", timestamp))
	if err := e.saveSummariesCSV(summariesPath, result.Summaries); err != nil {
		return nil, err
	}

	return []string{changesPath, summariesPath}, nil
}

// WriteReport saves a rendered report under the output directory
func (e *Exporter) WriteReport(filename, content string) (string, error) {
	path := filepath.Join(e.basePath, filename)

	e.logger.LogStorageOperation("write_report", path)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", &StorageError{
			Operation: "write_report",
			Path:      path,
			Err:       err,
		}
	}
	return path, nil
}

// saveChangeRecordsCSV writes the change-record table in its reference
// column order
func (e *Exporter) saveChangeRecordsCSV(path string, records []ChangeRecord) error {
	e.logger.LogStorageOperation("export_change_records", path)

	file, err := os.Create(path)
	if err != nil {
		return &StorageError{Operation: "create_file", Path: path, Err: err}
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(changeRecordColumns); err != nil {
		return &StorageError{Operation: "write_csv", Path: path, Err: err}
	}

	for _, cr := range records {
		row := []string{
			cr.CustomerID,
			cr.PrevMonth,
			cr.CurrentMonth,
			formatFloat(cr.PrevUnits),
			formatFloat(cr.CurrentUnits),
			formatFloat(cr.UnitsChange),
			formatFloat(cr.UnitsChangePct),
			formatFloat(cr.PrevPeakLoad),
			formatFloat(cr.CurrentPeakLoad),
			formatFloat(cr.PeakLoadChange),
			formatFloat(cr.PeakLoadChangePct),
			strconv.FormatBool(cr.IsSuspicious),
			string(cr.RiskLevel),
			strings.Join(cr.Reasons, ", "),
		}
		if err := w.Write(row); err != nil {
			return &StorageError{Operation: "write_csv", Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Operation: "flush_csv", Path: path, Err: err}
	}
	return nil
}

// saveSummariesCSV writes the customer-summary table in its reference
// column order
func (e *Exporter) saveSummariesCSV(path string, summaries []CustomerSummary) error {
	e.logger.LogStorageOperation("export_summaries", path)

	file, err := os.Create(path)
	if err != nil {
		return &StorageError{Operation: "create_file", Path: path, Err: err}
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(customerSummaryColumns); err != nil {
		return &StorageError{Operation: "write_csv", Path: path, Err: err}
	}

	for _, cs := range summaries {
		row := []string{
			cs.CustomerID,
			strconv.Itoa(cs.TotalMonths),
			formatFloat(cs.AvgUnits),
			formatFloat(cs.AvgPeakLoad),
			formatFloat(cs.UnitsVolatility),
			formatFloat(cs.PeakLoadVolatility),
			strconv.Itoa(cs.SuspiciousPeriods),
			strconv.Itoa(cs.TotalComparisons),
			string(cs.OverallRisk),
			cs.LatestMonth,
			formatFloat(cs.LatestUnits),
			formatFloat(cs.LatestPeakLoad),
		}
		if err := w.Write(row); err != nil {
			return &StorageError{Operation: "write_csv", Path: path, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Operation: "flush_csv", Path: path, Err: err}
	}
	return nil
}

// saveJSON saves data as JSON to a file
func (e *Exporter) saveJSON(path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return &StorageError{
			Operation: "create_file",
			Path:      path,
			Err:       err,
		}
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(data); err != nil {
		return &StorageError{
			Operation: "encode_json",
			Path:      path,
			Err:       err,
		}
	}

	return nil
}

// formatFloat renders a float with minimal digits, keeping two-decimal
// rounded values free of trailing zeros
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
