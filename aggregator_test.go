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
	"math"
	"testing"
)

func TestRiskAggregator_OverallRiskBoundaries(t *testing.T) {
	g := NewRiskAggregator(testConfig(), testLogger())

	tests := []struct {
		name        string
		suspicious  int
		comparisons int
		want        RiskLevel
	}{
		{"exactly half is medium", 2, 4, RiskMedium},
		{"above half is high", 3, 4, RiskHigh},
		{"exactly quarter is low", 1, 4, RiskLow},
		{"third is medium", 2, 6, RiskMedium},
		{"clean record is low", 0, 4, RiskLow},
		{"no comparisons is low", 0, 0, RiskLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := g.classifyOverallRisk(tc.suspicious, tc.comparisons)
			if got != tc.want {
				t.Errorf("classifyOverallRisk(%d, %d) = %s, want %s",
					tc.suspicious, tc.comparisons, got, tc.want)
			}
		})
	}
}

func TestRiskAggregator_SummaryFields(t *testing.T) {
	g := NewRiskAggregator(testConfig(), testLogger())

	ds := &Dataset{
		Customers: []CustomerSeries{
			{
				CustomerID: "C1",
				Records: []UsageRecord{
					usageRecord("C1", "2025-01", 100, 2.0),
					usageRecord("C1", "2025-02", 200, 4.0),
				},
			},
		},
	}
	changes := []ChangeRecord{
		{CustomerID: "C1", PrevMonth: "2025-01", CurrentMonth: "2025-02", IsSuspicious: true, RiskLevel: RiskHigh},
	}

	summaries := g.Aggregate(ds, changes)
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.TotalMonths != 2 {
		t.Errorf("expected 2 months, got %d", s.TotalMonths)
	}
	if s.AvgUnits != 150 {
		t.Errorf("expected average units 150, got %v", s.AvgUnits)
	}
	if s.AvgPeakLoad != 3 {
		t.Errorf("expected average peak load 3, got %v", s.AvgPeakLoad)
	}
	if s.UnitsVolatility != 70.71 {
		t.Errorf("expected units volatility 70.71, got %v", s.UnitsVolatility)
	}
	if s.PeakLoadVolatility != 1.41 {
		t.Errorf("expected peak load volatility 1.41, got %v", s.PeakLoadVolatility)
	}
	if s.SuspiciousPeriods != 1 || s.TotalComparisons != 1 {
		t.Errorf("expected 1/1 suspicious periods, got %d/%d", s.SuspiciousPeriods, s.TotalComparisons)
	}
	if s.OverallRisk != RiskHigh {
		t.Errorf("expected high overall risk, got %s", s.OverallRisk)
	}
	if s.LatestMonth != "2025-02" || s.LatestUnits != 200 || s.LatestPeakLoad != 4.0 {
		t.Errorf("expected latest month 2025-02 at 200 kWh / 4.0 kW, got %s at %v / %v",
			s.LatestMonth, s.LatestUnits, s.LatestPeakLoad)
	}
}

func TestRiskAggregator_SkipsCustomersWithoutComparisons(t *testing.T) {
	g := NewRiskAggregator(testConfig(), testLogger())

	ds := &Dataset{
		Customers: []CustomerSeries{
			{
				CustomerID: "C1",
				Records: []UsageRecord{
					usageRecord("C1", "2025-01", 100, 2.0),
					usageRecord("C1", "2025-02", 110, 2.1),
				},
			},
			{
				CustomerID: "C2",
				Records: []UsageRecord{
					usageRecord("C2", "2025-01", 95, 1.8),
				},
			},
		},
	}
	changes := []ChangeRecord{
		{CustomerID: "C1", PrevMonth: "2025-01", CurrentMonth: "2025-02", RiskLevel: RiskLow},
	}

	summaries := g.Aggregate(ds, changes)
	if len(summaries) != 1 {
		t.Fatalf("expected only C1 summarized, got %d summaries", len(summaries))
	}
	if summaries[0].CustomerID != "C1" {
		t.Errorf("expected summary for C1, got %s", summaries[0].CustomerID)
	}
}

func TestCalculateStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := calculateMean(values)
	if mean != 5 {
		t.Fatalf("expected mean 5, got %v", mean)
	}

	// Sample standard deviation with the n-1 divisor
	got := calculateStdDev(values, mean)
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected stddev %v, got %v", want, got)
	}

	if got := calculateStdDev([]float64{42}, 42); got != 0 {
		t.Errorf("expected 0 stddev for a single value, got %v", got)
	}
	if got := calculateStdDev(nil, 0); got != 0 {
		t.Errorf("expected 0 stddev for no values, got %v", got)
	}
}

func TestCalculateMean(t *testing.T) {
	if got := calculateMean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("expected mean 2.5, got %v", got)
	}
	if got := calculateMean(nil); got != 0 {
		t.Errorf("expected 0 mean for no values, got %v", got)
	}
}
