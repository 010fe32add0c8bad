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
	"testing"
)

func TestRawTable_ColumnIndex(t *testing.T) {
	table := rawUsageTable("t.csv")

	if got := table.ColumnIndex(ColumnMonth); got != 1 {
		t.Errorf("expected month at index 1, got %d", got)
	}
	if got := table.ColumnIndex(ColumnIsAnomaly); got != -1 {
		t.Errorf("expected -1 for an absent column, got %d", got)
	}
}

func TestCustomerSeries_LatestRecord(t *testing.T) {
	series := CustomerSeries{
		CustomerID: "C1",
		Records: []UsageRecord{
			usageRecord("C1", "2025-01", 90, 1.9),
			usageRecord("C1", "2025-02", 100, 2.0),
			usageRecord("C1", "2025-02", 200, 3.0),
		},
	}

	latest, ok := series.LatestRecord()
	if !ok {
		t.Fatal("expected a latest record")
	}
	if latest.Month != "2025-02" {
		t.Errorf("expected the maximum month, got %s", latest.Month)
	}
	// With keep-all duplicates the first record of the maximum month wins
	if latest.UnitsConsumed != 100 {
		t.Errorf("expected the first record of the tied month, got %v units", latest.UnitsConsumed)
	}

	empty := CustomerSeries{CustomerID: "C2"}
	if _, ok := empty.LatestRecord(); ok {
		t.Error("expected false for an empty series")
	}
}

func TestDataset_Accessors(t *testing.T) {
	empty := Dataset{}
	if !empty.IsEmpty() {
		t.Error("expected an empty dataset")
	}

	hollow := Dataset{Customers: []CustomerSeries{{CustomerID: "C1"}}}
	if !hollow.IsEmpty() {
		t.Error("expected a dataset of recordless customers to count as empty")
	}

	ds := Dataset{
		Customers: []CustomerSeries{
			{
				CustomerID: "C1",
				Records: []UsageRecord{
					usageRecord("C1", "2025-01", 320, 3.78),
					usageRecord("C1", "2025-02", 180, 2.10),
				},
			},
			{
				CustomerID: "C2",
				Records: []UsageRecord{
					usageRecord("C2", "2025-01", 450, 4.02),
				},
			},
		},
	}

	if ds.IsEmpty() {
		t.Error("expected a populated dataset")
	}
	if got := ds.TotalRecords(); got != 3 {
		t.Errorf("expected 3 records, got %d", got)
	}
	if got := ds.UniqueMonths(); got != 2 {
		t.Errorf("expected 2 unique months, got %d", got)
	}

	series, ok := ds.Customer("C2")
	if !ok {
		t.Fatal("expected C2 found")
	}
	if len(series.Records) != 1 {
		t.Errorf("expected 1 record for C2, got %d", len(series.Records))
	}
	if _, ok := ds.Customer("C9"); ok {
		t.Error("expected false for an unknown customer")
	}
}

func TestDropStats_Total(t *testing.T) {
	drops := DropStats{MissingValues: 2, NegativeValues: 1, UnparsableMonths: 3, Duplicates: 4}
	if got := drops.Total(); got != 10 {
		t.Errorf("expected 10 total drops, got %d", got)
	}
	if (DropStats{}).Total() != 0 {
		t.Error("expected 0 for empty drop stats")
	}
}
