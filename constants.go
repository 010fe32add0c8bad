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

import "time"

const (
	// ColumnCustomerID identifies the metered customer
	ColumnCustomerID = "customer_id"

	// ColumnMonth is the billing month column
	ColumnMonth = "month"

	// ColumnUnitsConsumed is the kWh consumption column
	ColumnUnitsConsumed = "units_consumed"

	// ColumnPeakLoadKW is the peak demand column
	ColumnPeakLoadKW = "peak_load_kw"

	// ColumnIsAnomaly is an optional upstream label carried through unchanged
	ColumnIsAnomaly = "is_anomaly"
)

// requiredColumns must all be present for a table to be accepted
var requiredColumns = []string{
	ColumnCustomerID,
	ColumnMonth,
	ColumnUnitsConsumed,
	ColumnPeakLoadKW,
}

// canonicalMonthLayout is the strict first-pass month format and the form
// every surviving month is normalized to
const canonicalMonthLayout = "2006-01"

// permissiveMonthLayouts are tried in order when a table fails the strict
// pass. Full-date layouts are truncated to their month.
var permissiveMonthLayouts = []string{
	"2006-01",
	"2006-1",
	"2006/01",
	"2006/1",
	"01/2006",
	"1/2006",
	"2006-01-02",
	"2006/01/02",
	"01-2006",
	"Jan 2006",
	"January 2006",
	"Jan-2006",
	time.RFC3339,
}

// Rule reason labels. These exact strings flow into exports and reports.
const (
	ReasonPeakLoadDrop   = "Significant peak load drop"
	ReasonUnitsDrop      = "Sudden drop in units consumed"
	ReasonLowConsumption = "Extremely low consumption"
	ReasonPeakMismatch   = "Peak load inconsistent with consumption"
	ReasonCombinedDrop   = "Both consumption and peak load dropped significantly"
	ReasonNormal         = "Normal"
)

// changeRecordColumns is the header order for the change-record export
var changeRecordColumns = []string{
	"customer_id",
	"prev_month",
	"current_month",
	"prev_units",
	"current_units",
	"units_change",
	"units_change_pct",
	"prev_peak_load",
	"current_peak_load",
	"peak_load_change",
	"peak_load_change_pct",
	"is_suspicious",
	"risk_level",
	"reasons",
}

// customerSummaryColumns is the header order for the customer-summary export
var customerSummaryColumns = []string{
	"customer_id",
	"total_months",
	"avg_units",
	"avg_peak_load",
	"units_volatility",
	"peak_load_volatility",
	"suspicious_periods",
	"total_comparisons",
	"overall_risk",
	"latest_month",
	"latest_units",
	"latest_peak_load",
}
