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
	"io"
	"log/slog"
	"time"
)

// testLogger returns a logger that discards all output
func testLogger() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// testConfig returns the default detection settings, independent of any
// config file or environment variables
func testConfig() *Config {
	return &Config{
		PeakLoadDropThresholdPct: -40.0,
		UnitsDropThresholdPct:    -40.0,
		MinUnitsThreshold:        50.0,
		CombinedDropThresholdPct: -25.0,
		HighUsageFloor:           200.0,
		LowPeakFloor:             1.0,
		HighRiskRatio:            0.5,
		MediumRiskRatio:          0.25,
		DuplicatePolicy:          DuplicateKeepAll,
		OutputDir:                "output",
	}
}

// usageRecord builds a parsed record for a canonical YYYY-MM month
func usageRecord(customerID, month string, units, peak float64) UsageRecord {
	date, err := time.Parse(canonicalMonthLayout, month)
	if err != nil {
		panic(err)
	}
	return UsageRecord{
		CustomerID:    customerID,
		Month:         month,
		MonthDate:     date,
		UnitsConsumed: units,
		PeakLoadKW:    peak,
	}
}

// rawUsageTable builds a table with the four required columns
func rawUsageTable(name string, rows ...[]string) RawTable {
	return RawTable{
		Name:    name,
		Columns: []string{ColumnCustomerID, ColumnMonth, ColumnUnitsConsumed, ColumnPeakLoadKW},
		Rows:    rows,
	}
}
