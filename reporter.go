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
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Reporter generates markdown reports from analysis results
type Reporter struct {
	logger *Logger
}

// NewReporter creates a new report generator
func NewReporter(logger *Logger) *Reporter {
	return &Reporter{
		logger: logger,
	}
}

// GenerateReport creates a markdown report from analysis results
func (r *Reporter) GenerateReport(result *AnalysisResult, outputPath string) error {
	r.logger.Info("Generating report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	// Generate report content
	r.writeHeader(writer, result)

	if result.State == StateNoData {
		fmt.Fprintf(writer, "## ⚠️ No Data\n\n")
		fmt.Fprintf(writer, "*No input tables were supplied. Provide at least one usage CSV to run an analysis.*\n\n")
		r.writeFooter(writer)
		return nil
	}

	r.writeExecutiveSummary(writer, result)
	r.writeInputQuality(writer, result)

	if result.State == StateNothingUsable {
		fmt.Fprintf(writer, "## ⚠️ Nothing Usable\n\n")
		fmt.Fprintf(writer, "*Tables were supplied but no usable rows survived cleaning. See the input quality section above for what was rejected or dropped.*\n\n")
		r.writeFooter(writer)
		return nil
	}

	r.writeRiskBreakdown(writer, result)
	r.writeSuspiciousActivity(writer, result)
	r.writeCustomerSummaries(writer, result)
	r.writeThresholds(writer, result)
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}

	return nil
}

// GenerateCustomerReport creates a markdown report focused on one customer
func (r *Reporter) GenerateCustomerReport(result *AnalysisResult, customerID, outputPath string) error {
	series, ok := result.Dataset.Customer(customerID)
	if !ok {
		return &DataError{
			DataType: "customer",
			Message:  fmt.Sprintf("%s is not present in the analyzed dataset", customerID),
		}
	}

	r.logger.WithCustomerID(customerID).Info("Generating customer report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	fmt.Fprintf(writer, "# Customer Report: %s\n\n", customerID)
	fmt.Fprintf(writer, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "**Run ID:** %s\n\n", result.RunID)
	fmt.Fprintf(writer, "---\n\n")

	r.writeCustomerProfile(writer, result, customerID)
	r.writeCustomerRecords(writer, &series)
	r.writeCustomerChanges(writer, result.ChangesFor(customerID))
	r.writeFooter(writer)

	if outputPath != "" {
		r.logger.Info("Report saved", "path", outputPath)
	}

	return nil
}

// writeHeader writes the report header
func (r *Reporter) writeHeader(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, "# Electricity Theft Detection Report\n\n")
	fmt.Fprintf(w, "**Generated:** %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "**Run ID:** %s\n\n", result.RunID)
	fmt.Fprintf(w, "**Version:** %s\n\n", GetVersion())
	fmt.Fprintf(w, "---\n\n")
}

// writeExecutiveSummary writes the run-level counters
func (r *Reporter) writeExecutiveSummary(w io.Writer, result *AnalysisResult) {
	summary := result.Summary

	fmt.Fprintf(w, "## 📊 Executive Summary\n\n")

	// Overall status with indicator
	statusIndicator := "✅"
	if summary.HighRiskCustomers > 0 {
		statusIndicator = "🚨"
	} else if summary.MediumRiskCustomers > 0 {
		statusIndicator = "⚠️"
	}
	fmt.Fprintf(w, "**Overall Status:** %s %d high risk, %d medium risk, %d low risk\n\n",
		statusIndicator,
		summary.HighRiskCustomers,
		summary.MediumRiskCustomers,
		summary.LowRiskCustomers,
	)

	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	fmt.Fprintf(w, "| 📁 Files Loaded | %d |\n", summary.FilesLoaded)
	if summary.FilesRejected > 0 {
		fmt.Fprintf(w, "| 🚫 Files Rejected | %d |\n", summary.FilesRejected)
	}
	fmt.Fprintf(w, "| 🧾 Total Records | %s |\n", humanize.Comma(int64(summary.TotalRecords)))
	fmt.Fprintf(w, "| 👥 Customers | %s |\n", humanize.Comma(int64(summary.TotalCustomers)))
	fmt.Fprintf(w, "| 🔬 Customers Analyzed | %s |\n", humanize.Comma(int64(summary.CustomersAnalyzed)))
	fmt.Fprintf(w, "| 📅 Unique Months | %d |\n", summary.UniqueMonths)
	fmt.Fprintf(w, "| 🔁 Month Comparisons | %s |\n", humanize.Comma(int64(summary.TotalComparisons)))
	fmt.Fprintf(w, "| 🚩 Suspicious Comparisons | %s |\n", humanize.Comma(int64(summary.SuspiciousComparisons)))
	fmt.Fprintf(w, "| 📈 Suspicious Rate | %s |\n", FormatPercentage(summary.SuspiciousRate))
	fmt.Fprintf(w, "\n")
}

// writeInputQuality writes rejected tables and dropped row counts
func (r *Reporter) writeInputQuality(w io.Writer, result *AnalysisResult) {
	if len(result.TablesRejected) == 0 && result.RowsDropped.Total() == 0 {
		return
	}

	fmt.Fprintf(w, "## 🗂️ Input Quality\n\n")

	if len(result.TablesRejected) > 0 {
		fmt.Fprintf(w, "**%d table(s) were rejected:**\n\n", len(result.TablesRejected))
		fmt.Fprintf(w, "| Table | Reason |\n")
		fmt.Fprintf(w, "|-------|--------|\n")
		for _, rej := range result.TablesRejected {
			fmt.Fprintf(w, "| %s | %s |\n", rej.Table, rej.Reason)
		}
		fmt.Fprintf(w, "\n")
	}

	if result.RowsDropped.Total() > 0 {
		fmt.Fprintf(w, "**%s row(s) were dropped during cleaning:**\n\n", humanize.Comma(int64(result.RowsDropped.Total())))
		fmt.Fprintf(w, "| Cause | Rows |\n")
		fmt.Fprintf(w, "|-------|------|\n")
		if result.RowsDropped.MissingValues > 0 {
			fmt.Fprintf(w, "| Missing or non-numeric values | %d |\n", result.RowsDropped.MissingValues)
		}
		if result.RowsDropped.NegativeValues > 0 {
			fmt.Fprintf(w, "| Negative values | %d |\n", result.RowsDropped.NegativeValues)
		}
		if result.RowsDropped.UnparsableMonths > 0 {
			fmt.Fprintf(w, "| Unparsable months | %d |\n", result.RowsDropped.UnparsableMonths)
		}
		if result.RowsDropped.Duplicates > 0 {
			fmt.Fprintf(w, "| Duplicate (customer, month) rows | %d |\n", result.RowsDropped.Duplicates)
		}
		fmt.Fprintf(w, "\n")
	}
}

// writeRiskBreakdown writes the customers grouped by overall risk
func (r *Reporter) writeRiskBreakdown(w io.Writer, result *AnalysisResult) {
	if len(result.Summaries) == 0 {
		fmt.Fprintf(w, "## 🚨 Risk Breakdown\n\n")
		fmt.Fprintf(w, "*No customer had two or more billing months, so no comparisons could be made.*\n\n")
		return
	}

	fmt.Fprintf(w, "## 🚨 Risk Breakdown\n\n")

	for _, level := range []RiskLevel{RiskHigh, RiskMedium} {
		var ids []string
		for _, cs := range result.Summaries {
			if cs.OverallRisk == level {
				ids = append(ids, cs.CustomerID)
			}
		}
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(w, "### %s %s Risk (%d)\n\n", riskIcon(level), level, len(ids))
		fmt.Fprintf(w, "%s\n\n", strings.Join(ids, ", "))
	}

	if result.Summary.HighRiskCustomers == 0 && result.Summary.MediumRiskCustomers == 0 {
		fmt.Fprintf(w, "*No customers classified above Low risk at the current thresholds.*\n\n")
	}
}

// writeSuspiciousActivity writes the most significant flagged comparisons
func (r *Reporter) writeSuspiciousActivity(w io.Writer, result *AnalysisResult) {
	var suspicious []ChangeRecord
	for _, cr := range result.ChangeRecords {
		if cr.IsSuspicious {
			suspicious = append(suspicious, cr)
		}
	}
	if len(suspicious) == 0 {
		return
	}

	fmt.Fprintf(w, "## 🔍 Suspicious Activity\n\n")

	total := len(suspicious)

	// Sort by severity: risk level first, then the steepest drop
	sorted := make([]ChangeRecord, total)
	copy(sorted, suspicious)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RiskLevel != sorted[j].RiskLevel {
			return sorted[i].RiskLevel.rank() > sorted[j].RiskLevel.rank()
		}
		return steepestDrop(sorted[i]) < steepestDrop(sorted[j])
	})

	// Limit to top 10 most significant comparisons
	displayCount := 10
	if total < displayCount {
		displayCount = total
	}

	if total > displayCount {
		fmt.Fprintf(w, "Found **%d suspicious comparisons**. Showing the **top %d most significant**:\n\n", total, displayCount)
	} else {
		fmt.Fprintf(w, "Found **%d suspicious comparisons**:\n\n", total)
	}

	fmt.Fprintf(w, "| Customer | Period | Units | Peak Load | Risk | Reasons |\n")
	fmt.Fprintf(w, "|----------|--------|-------|-----------|------|--------|\n")

	for i := 0; i < displayCount; i++ {
		cr := sorted[i]
		fmt.Fprintf(w, "| %s | %s → %s | %.2f → %.2f (%+.1f%%) | %.2f → %.2f (%+.1f%%) | %s %s | %s |\n",
			cr.CustomerID,
			cr.PrevMonth,
			cr.CurrentMonth,
			cr.PrevUnits,
			cr.CurrentUnits,
			cr.UnitsChangePct,
			cr.PrevPeakLoad,
			cr.CurrentPeakLoad,
			cr.PeakLoadChangePct,
			riskIcon(cr.RiskLevel),
			cr.RiskLevel,
			strings.Join(cr.Reasons, ", "),
		)
	}
	fmt.Fprintf(w, "\n")
}

// writeCustomerSummaries writes the per-customer profile table
func (r *Reporter) writeCustomerSummaries(w io.Writer, result *AnalysisResult) {
	if len(result.Summaries) == 0 {
		return
	}

	fmt.Fprintf(w, "## 👥 Customer Summaries\n\n")
	fmt.Fprintf(w, "| Customer | Months | Avg Units | Avg Peak | Volatility | Suspicious | Risk | Latest Month |\n")
	fmt.Fprintf(w, "|----------|--------|-----------|----------|------------|------------|------|-------------|\n")

	for _, cs := range result.Summaries {
		fmt.Fprintf(w, "| %s | %d | %.2f | %.2f | %.2f | %d/%d | %s %s | %s |\n",
			cs.CustomerID,
			cs.TotalMonths,
			cs.AvgUnits,
			cs.AvgPeakLoad,
			cs.UnitsVolatility,
			cs.SuspiciousPeriods,
			cs.TotalComparisons,
			riskIcon(cs.OverallRisk),
			cs.OverallRisk,
			cs.LatestMonth,
		)
	}
	fmt.Fprintf(w, "\n")
}

// writeThresholds writes the detection settings the run was executed with
func (r *Reporter) writeThresholds(w io.Writer, result *AnalysisResult) {
	t := result.Thresholds

	fmt.Fprintf(w, "## ⚙️ Detection Thresholds\n\n")
	fmt.Fprintf(w, "| Setting | Value |\n")
	fmt.Fprintf(w, "|---------|-------|\n")
	fmt.Fprintf(w, "| Peak load drop threshold | %.1f%% |\n", t.PeakLoadDropPct)
	fmt.Fprintf(w, "| Units drop threshold | %.1f%% |\n", t.UnitsDropPct)
	fmt.Fprintf(w, "| Minimum units floor | %.1f kWh |\n", t.MinUnits)
	fmt.Fprintf(w, "| Combined drop threshold | %.1f%% |\n", t.CombinedDropPct)
	fmt.Fprintf(w, "| High usage floor | %.1f kWh |\n", t.HighUsageFloor)
	fmt.Fprintf(w, "| Low peak floor | %.2f kW |\n", t.LowPeakFloor)
	fmt.Fprintf(w, "| High risk ratio | %.2f |\n", t.HighRiskRatio)
	fmt.Fprintf(w, "| Medium risk ratio | %.2f |\n", t.MediumRiskRatio)
	fmt.Fprintf(w, "| Duplicate policy | %s |\n", t.DuplicatePolicy)
	fmt.Fprintf(w, "\n")
}

// writeCustomerProfile writes the summary block of a customer report
func (r *Reporter) writeCustomerProfile(w io.Writer, result *AnalysisResult, customerID string) {
	cs, ok := result.SummaryFor(customerID)
	if !ok {
		fmt.Fprintf(w, "## 📋 Profile\n\n")
		fmt.Fprintf(w, "*This customer has fewer than two billing months and was excluded from trend analysis.*\n\n")
		return
	}

	fmt.Fprintf(w, "## 📋 Profile\n\n")
	fmt.Fprintf(w, "**Overall Risk:** %s %s\n\n", riskIcon(cs.OverallRisk), cs.OverallRisk)
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	fmt.Fprintf(w, "| Billing Months | %d |\n", cs.TotalMonths)
	fmt.Fprintf(w, "| Average Units | %s |\n", FormatUnits(cs.AvgUnits))
	fmt.Fprintf(w, "| Average Peak Load | %s |\n", FormatKW(cs.AvgPeakLoad))
	fmt.Fprintf(w, "| Units Volatility | %.2f |\n", cs.UnitsVolatility)
	fmt.Fprintf(w, "| Peak Load Volatility | %.2f |\n", cs.PeakLoadVolatility)
	fmt.Fprintf(w, "| Suspicious Periods | %d of %d |\n", cs.SuspiciousPeriods, cs.TotalComparisons)
	fmt.Fprintf(w, "| Latest Month | %s (%s, %s) |\n", cs.LatestMonth, FormatUnits(cs.LatestUnits), FormatKW(cs.LatestPeakLoad))
	fmt.Fprintf(w, "\n")
}

// writeCustomerRecords writes a customer's raw usage history
func (r *Reporter) writeCustomerRecords(w io.Writer, series *CustomerSeries) {
	fmt.Fprintf(w, "## 📅 Usage History\n\n")
	fmt.Fprintf(w, "| Month | Units (kWh) | Peak Load (kW) |\n")
	fmt.Fprintf(w, "|-------|-------------|----------------|\n")
	for _, rec := range series.Records {
		fmt.Fprintf(w, "| %s | %.2f | %.2f |\n", rec.Month, rec.UnitsConsumed, rec.PeakLoadKW)
	}
	fmt.Fprintf(w, "\n")
}

// writeCustomerChanges writes a customer's month-to-month comparisons
func (r *Reporter) writeCustomerChanges(w io.Writer, changes []ChangeRecord) {
	if len(changes) == 0 {
		return
	}

	fmt.Fprintf(w, "## 🔁 Month-to-Month Changes\n\n")
	fmt.Fprintf(w, "| Period | Units Change | Peak Load Change | Risk | Reasons |\n")
	fmt.Fprintf(w, "|--------|--------------|------------------|------|--------|\n")
	for _, cr := range changes {
		fmt.Fprintf(w, "| %s → %s | %+.2f (%+.1f%%) | %+.2f (%+.1f%%) | %s %s | %s |\n",
			cr.PrevMonth,
			cr.CurrentMonth,
			cr.UnitsChange,
			cr.UnitsChangePct,
			cr.PeakLoadChange,
			cr.PeakLoadChangePct,
			riskIcon(cr.RiskLevel),
			cr.RiskLevel,
			strings.Join(cr.Reasons, ", "),
		)
	}
	fmt.Fprintf(w, "\n")
}

// writeFooter writes the report footer
func (r *Reporter) writeFooter(w io.Writer) {
	fmt.Fprintf(w, "---\n\n")
	fmt.Fprintf(w, "*Flags in this report are statistical indicators based on month-to-month billing changes. A flagged customer is a candidate for meter inspection, not proof of theft. Field verification is required before any enforcement action.*\n\n")
	fmt.Fprintf(w, "*Generated by [Electricity-Theft-Detection](https://github.com/SparkSidd/Electricity-Theft-Detection)*\n")
}

// steepestDrop returns the more negative of the two change percentages
func steepestDrop(cr ChangeRecord) float64 {
	if cr.UnitsChangePct < cr.PeakLoadChangePct {
		return cr.UnitsChangePct
	}
	return cr.PeakLoadChangePct
}

// riskIcon returns the indicator emoji for a risk level
func riskIcon(level RiskLevel) string {
	switch level {
	case RiskHigh:
		return "🔴"
	case RiskMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
