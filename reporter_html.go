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
	"html"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// HTMLReporter generates HTML dashboards from analysis results
type HTMLReporter struct {
	logger *Logger
	charts *ChartGenerator
}

// NewHTMLReporter creates a new HTML report generator
func NewHTMLReporter(logger *Logger) *HTMLReporter {
	return &HTMLReporter{
		logger: logger,
		charts: NewChartGenerator(),
	}
}

// GenerateHTMLReport generates an HTML report
func (r *HTMLReporter) GenerateHTMLReport(result *AnalysisResult, outputPath string) error {
	r.logger.Info("Generating HTML report")

	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create HTML report file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	// Generate HTML report content
	r.writeHTMLHeader(writer, result)

	switch result.State {
	case StateNoData:
		r.writeHTMLNotice(writer, "⚠️ No Data", "No input tables were supplied. Provide at least one usage CSV to run an analysis.")
	case StateNothingUsable:
		r.writeHTMLSummary(writer, result)
		r.writeHTMLInputQuality(writer, result)
		r.writeHTMLNotice(writer, "⚠️ Nothing Usable", "Tables were supplied but no usable rows survived cleaning. See the input quality card above for what was rejected or dropped.")
	default:
		r.writeHTMLSummary(writer, result)
		r.writeHTMLInputQuality(writer, result)
		r.writeHTMLCharts(writer, result)
		r.writeHTMLSuspiciousActivity(writer, result)
		r.writeHTMLCustomerSummaries(writer, result)
		r.writeHTMLInvestigations(writer, result)
		r.writeHTMLThresholds(writer, result)
	}

	r.writeHTMLFooter(writer)

	if outputPath != "" {
		r.logger.Info("HTML report saved", "path", outputPath)
	}

	return nil
}

func (r *HTMLReporter) writeHTMLHeader(w io.Writer, result *AnalysisResult) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Electricity Theft Detection Report</title>
    <style>
        :root {
            --primary-color: #E63946;
            --secondary-color: #2EC4B6;
            --warning-color: #FFB800;
            --danger-color: #E63946;
            --success-color: #2EC4B6;
            --bg-color: #0B132B;
            --card-bg: #1C2541;
            --text-color: #E8EAF6;
            --text-muted: #9FA8DA;
            --border-color: #3A506B;
        }

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: var(--bg-color);
            color: var(--text-color);
            line-height: 1.6;
            padding: 20px;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
        }

        header {
            background: linear-gradient(135deg, var(--primary-color), var(--secondary-color));
            padding: 40px;
            border-radius: 16px;
            margin-bottom: 30px;
            box-shadow: 0 8px 32px rgba(230, 57, 70, 0.2);
        }

        h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
            font-weight: 700;
        }

        .subtitle {
            color: rgba(255, 255, 255, 0.9);
            font-size: 1.1em;
        }

        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 30px;
            margin-bottom: 30px;
            border: 1px solid var(--border-color);
            box-shadow: 0 4px 16px rgba(0, 0, 0, 0.3);
        }

        h2 {
            color: var(--primary-color);
            margin-bottom: 20px;
            font-size: 1.8em;
            border-bottom: 2px solid var(--border-color);
            padding-bottom: 10px;
        }

        h3 {
            color: var(--secondary-color);
            margin: 25px 0 15px 0;
            font-size: 1.4em;
        }

        h4 {
            color: var(--text-color);
            margin: 20px 0 10px 0;
            font-size: 1.2em;
        }

        table {
            width: 100%%;
            border-collapse: collapse;
            margin: 20px 0;
        }

        th, td {
            padding: 12px;
            text-align: left;
            border-bottom: 1px solid var(--border-color);
        }

        th {
            background: rgba(230, 57, 70, 0.1);
            color: var(--primary-color);
            font-weight: 600;
        }

        tr:hover {
            background: rgba(46, 196, 182, 0.05);
        }

        .metric-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
            gap: 20px;
            margin: 20px 0;
        }

        .metric-card {
            background: rgba(230, 57, 70, 0.05);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 20px;
            text-align: center;
        }

        .metric-value {
            font-size: 2em;
            font-weight: bold;
            color: var(--secondary-color);
            margin: 10px 0;
        }

        .metric-label {
            color: var(--text-muted);
            font-size: 0.9em;
        }

        .badge {
            display: inline-block;
            padding: 6px 12px;
            border-radius: 20px;
            font-size: 0.85em;
            font-weight: 600;
            margin: 5px;
        }

        .badge-success {
            background: var(--success-color);
            color: white;
        }

        .badge-warning {
            background: var(--warning-color);
            color: #0B132B;
        }

        .badge-danger {
            background: var(--danger-color);
            color: white;
        }

        .badge-info {
            background: #3F51B5;
            color: white;
        }

        .insight-box {
            background: rgba(46, 196, 182, 0.05);
            border-left: 4px solid var(--secondary-color);
            padding: 20px;
            margin: 15px 0;
            border-radius: 4px;
        }

        .insight-box.high {
            border-left-color: var(--danger-color);
            background: rgba(230, 57, 70, 0.05);
        }

        .insight-box.medium {
            border-left-color: var(--warning-color);
            background: rgba(255, 184, 0, 0.05);
        }

        .insight-title {
            font-weight: 600;
            color: var(--text-color);
            margin-bottom: 10px;
        }

        .insight-action {
            background: rgba(255, 255, 255, 0.05);
            padding: 10px;
            border-radius: 4px;
            margin-top: 10px;
            font-style: italic;
        }

        .blockquote {
            border-left: 4px solid var(--primary-color);
            padding: 10px;
            margin: 20px 0;
            background: rgba(230, 57, 70, 0.05);
            border-radius: 10px;
        }

        .progress-bar {
            width: 100%%;
            height: 30px;
            background: rgba(255, 255, 255, 0.1);
            border-radius: 15px;
            overflow: hidden;
            margin: 10px 0;
        }

        .progress-fill {
            height: 100%%;
            background: linear-gradient(90deg, var(--secondary-color), var(--primary-color));
            display: flex;
            align-items: center;
            justify-content: center;
            color: white;
            font-weight: 600;
            transition: width 0.5s ease;
        }

        img.chart {
            max-width: 100%%;
            border-radius: 8px;
            border: 1px solid var(--border-color);
            margin: 10px 0;
        }

        footer {
            text-align: center;
            padding: 30px;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
            margin-top: 40px;
        }

        @media (max-width: 768px) {
            body {
                padding: 10px;
            }

            header {
                padding: 20px;
            }

            h1 {
                font-size: 1.8em;
            }

            .card {
                padding: 20px;
            }

            table {
                font-size: 0.9em;
            }
        }

        @media print {
            body {
                background: white;
                color: black;
            }

            .card {
                border: 1px solid #ddd;
                break-inside: avoid;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>⚡ Electricity Theft Detection</h1>
            <div class="subtitle">Generated: %s</div>
            <div class="subtitle">Run ID: %s</div>
            <div class="subtitle" style="opacity: 0.7; font-size: 0.9em; margin-top: 10px;">Electricity-Theft-Detection %s</div>
        </header>
`,
		result.GeneratedAt.Format("Monday, 2 January 2006 at 15:04"),
		html.EscapeString(result.RunID),
		GetVersion(),
	)
}

// writeHTMLNotice renders a single-message card for the empty run states
func (r *HTMLReporter) writeHTMLNotice(w io.Writer, title, message string) {
	fmt.Fprintf(w, `
        <div class="card">
            <h2>%s</h2>
            <p>%s</p>
        </div>
`,
		title,
		html.EscapeString(message),
	)
}

func (r *HTMLReporter) writeHTMLSummary(w io.Writer, result *AnalysisResult) {
	summary := result.Summary

	suspiciousStatus := "success"
	suspiciousText := "Clean"
	if summary.HighRiskCustomers > 0 {
		suspiciousStatus = "danger"
		suspiciousText = "High Risk Present"
	} else if summary.SuspiciousComparisons > 0 {
		suspiciousStatus = "warning"
		suspiciousText = "Needs Review"
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>📊 Summary</h2>

            <div class="metric-grid">
                <div class="metric-card">
                    <div class="metric-label">Customers Analyzed</div>
                    <div class="metric-value">%s</div>
                    <span class="badge badge-info">Across %d Months</span>
                </div>
                <div class="metric-card">
                    <div class="metric-label">Month Comparisons</div>
                    <div class="metric-value">%s</div>
                    <span class="badge badge-info">Consecutive Pairs</span>
                </div>
                <div class="metric-card">
                    <div class="metric-label">Suspicious Comparisons</div>
                    <div class="metric-value">%s</div>
                    <span class="badge badge-%s">%s</span>
                </div>
                <div class="metric-card">
                    <div class="metric-label">High Risk Customers</div>
                    <div class="metric-value">%d</div>
                    <span class="badge badge-%s">%s</span>
                </div>
            </div>

            <h3>🚩 Suspicious Rate</h3>
            <div class="progress-bar">
                <div class="progress-fill" style="width: %.1f%%">%s</div>
            </div>

            <h3>🗂️ Dataset</h3>
            <table>
                <thead>
                    <tr>
                        <th>Item</th>
                        <th>Count</th>
                    </tr>
                </thead>
                <tbody>
                    <tr>
                        <td>📁 Files Loaded</td>
                        <td>%d</td>
                    </tr>
                    <tr>
                        <td>🚫 Files Rejected</td>
                        <td>%d</td>
                    </tr>
                    <tr>
                        <td>🧾 Usage Records</td>
                        <td>%s</td>
                    </tr>
                    <tr>
                        <td>👥 Customers</td>
                        <td>%s</td>
                    </tr>
                    <tr>
                        <td>🧹 Rows Dropped</td>
                        <td>%s</td>
                    </tr>
                </tbody>
            </table>
`,
		humanize.Comma(int64(summary.CustomersAnalyzed)),
		summary.UniqueMonths,
		humanize.Comma(int64(summary.TotalComparisons)),
		humanize.Comma(int64(summary.SuspiciousComparisons)),
		suspiciousStatus,
		suspiciousText,
		summary.HighRiskCustomers,
		func() string {
			if summary.HighRiskCustomers > 0 {
				return "danger"
			}
			return "success"
		}(),
		func() string {
			if summary.HighRiskCustomers > 0 {
				return "Action Needed"
			}
			return "None"
		}(),
		math.Min(summary.SuspiciousRate, 100),
		FormatPercentage(summary.SuspiciousRate),
		summary.FilesLoaded,
		summary.FilesRejected,
		humanize.Comma(int64(summary.TotalRecords)),
		humanize.Comma(int64(summary.TotalCustomers)),
		humanize.Comma(int64(result.RowsDropped.Total())),
	)

	if summary.HighRiskCustomers > 0 {
		fmt.Fprintf(w, `
            <div class="blockquote">
                🚨 <strong>%d customer(s)</strong> show a high-risk consumption pattern. Review the investigation priorities below before the next billing cycle.
            </div>
`,
			summary.HighRiskCustomers,
		)
	}

	fmt.Fprintf(w, `
        </div>
`)
}

func (r *HTMLReporter) writeHTMLInputQuality(w io.Writer, result *AnalysisResult) {
	if len(result.TablesRejected) == 0 && result.RowsDropped.Total() == 0 {
		return
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>🗂️ Input Quality</h2>
`)

	if len(result.TablesRejected) > 0 {
		fmt.Fprintf(w, `
            <h3>🚫 Rejected Tables</h3>
            <table>
                <thead>
                    <tr>
                        <th>Table</th>
                        <th>Reason</th>
                    </tr>
                </thead>
                <tbody>
`)

		for _, rej := range result.TablesRejected {
			fmt.Fprintf(w, `
                    <tr>
                        <td>%s</td>
                        <td>%s</td>
                    </tr>
`,
				html.EscapeString(rej.Table),
				html.EscapeString(rej.Reason),
			)
		}

		fmt.Fprintf(w, `
                </tbody>
            </table>
`)
	}

	if result.RowsDropped.Total() > 0 {
		fmt.Fprintf(w, `
            <h3>🧹 Dropped Rows</h3>
            <table>
                <thead>
                    <tr>
                        <th>Cause</th>
                        <th>Rows</th>
                    </tr>
                </thead>
                <tbody>
`)

		causes := []struct {
			label string
			count int
		}{
			{"Missing or non-numeric values", result.RowsDropped.MissingValues},
			{"Negative values", result.RowsDropped.NegativeValues},
			{"Unparsable months", result.RowsDropped.UnparsableMonths},
			{"Duplicate (customer, month) rows", result.RowsDropped.Duplicates},
		}

		for _, cause := range causes {
			if cause.count == 0 {
				continue
			}
			fmt.Fprintf(w, `
                    <tr>
                        <td>%s</td>
                        <td>%d</td>
                    </tr>
`,
				cause.label,
				cause.count,
			)
		}

		fmt.Fprintf(w, `
                </tbody>
            </table>
`)
	}

	fmt.Fprintf(w, `
        </div>
`)
}

func (r *HTMLReporter) writeHTMLCharts(w io.Writer, result *AnalysisResult) {
	type chartImage struct {
		title string
		alt   string
		data  string
	}
	var images []chartImage

	if len(result.Summaries) > 0 {
		if data, err := r.charts.GenerateRiskDistributionChart(result.Summaries); err == nil {
			images = append(images, chartImage{"🥧 Risk Distribution", "Risk distribution pie chart", data})
		} else {
			r.logger.Warn("Skipping risk distribution chart", "error", err)
		}
	}

	if !result.Dataset.IsEmpty() {
		if data, err := r.charts.GenerateMonthlyConsumptionChart(&result.Dataset); err == nil {
			images = append(images, chartImage{"📊 Monthly Consumption", "Monthly consumption bar chart", data})
		} else {
			r.logger.Warn("Skipping monthly consumption chart", "error", err)
		}
	}

	if focus := riskiestCustomer(result.Summaries); focus != "" {
		if series, ok := result.Dataset.Customer(focus); ok {
			if data, err := r.charts.GenerateCustomerTrendChart(&series); err == nil {
				images = append(images, chartImage{
					fmt.Sprintf("📈 Highest Risk Customer: %s", html.EscapeString(focus)),
					"Usage trend line chart",
					data,
				})
			} else {
				r.logger.Warn("Skipping customer trend chart", "customer_id", focus, "error", err)
			}
		}
	}

	if len(images) == 0 {
		return
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>📈 Charts</h2>
`)

	for _, img := range images {
		fmt.Fprintf(w, `
            <h3>%s</h3>
            <img class="chart" src="data:image/png;base64,%s" alt="%s">
`,
			img.title,
			img.data,
			img.alt,
		)
	}

	fmt.Fprintf(w, `
        </div>
`)
}

func (r *HTMLReporter) writeHTMLSuspiciousActivity(w io.Writer, result *AnalysisResult) {
	var suspicious []ChangeRecord
	for _, cr := range result.ChangeRecords {
		if cr.IsSuspicious {
			suspicious = append(suspicious, cr)
		}
	}
	if len(suspicious) == 0 {
		return
	}

	// Sort by severity and take top 10
	sorted := make([]ChangeRecord, len(suspicious))
	copy(sorted, suspicious)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RiskLevel != sorted[j].RiskLevel {
			return sorted[i].RiskLevel.rank() > sorted[j].RiskLevel.rank()
		}
		return steepestDrop(sorted[i]) < steepestDrop(sorted[j])
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>🔍 Suspicious Activity</h2>
            <p>Found <strong>%d suspicious comparisons</strong>. Showing the %d most significant:</p>

            <table>
                <thead>
                    <tr>
                        <th>Customer</th>
                        <th>Period</th>
                        <th>Units (kWh)</th>
                        <th>Peak Load (kW)</th>
                        <th>Risk</th>
                        <th>Reasons</th>
                    </tr>
                </thead>
                <tbody>
`,
		len(suspicious),
		len(sorted),
	)

	for _, cr := range sorted {
		fmt.Fprintf(w, `
                    <tr>
                        <td>%s</td>
                        <td>%s → %s</td>
                        <td>%.2f → %.2f (%+.1f%%)</td>
                        <td>%.2f → %.2f (%+.1f%%)</td>
                        <td><span class="badge badge-%s">%s</span></td>
                        <td>%s</td>
                    </tr>
`,
			html.EscapeString(cr.CustomerID),
			cr.PrevMonth,
			cr.CurrentMonth,
			cr.PrevUnits,
			cr.CurrentUnits,
			cr.UnitsChangePct,
			cr.PrevPeakLoad,
			cr.CurrentPeakLoad,
			cr.PeakLoadChangePct,
			riskBadgeClass(cr.RiskLevel),
			cr.RiskLevel,
			html.EscapeString(strings.Join(cr.Reasons, ", ")),
		)
	}

	fmt.Fprintf(w, `
                </tbody>
            </table>
        </div>
`)
}

func (r *HTMLReporter) writeHTMLCustomerSummaries(w io.Writer, result *AnalysisResult) {
	if len(result.Summaries) == 0 {
		r.writeHTMLNotice(w, "👥 Customer Summaries", "No customer had two or more billing months, so no comparisons could be made.")
		return
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>👥 Customer Summaries</h2>
            <table>
                <thead>
                    <tr>
                        <th>Customer</th>
                        <th>Months</th>
                        <th>Avg Units</th>
                        <th>Avg Peak</th>
                        <th>Volatility</th>
                        <th>Suspicious</th>
                        <th>Risk</th>
                        <th>Latest Month</th>
                    </tr>
                </thead>
                <tbody>
`)

	for _, cs := range result.Summaries {
		fmt.Fprintf(w, `
                    <tr>
                        <td>%s</td>
                        <td>%d</td>
                        <td>%.2f</td>
                        <td>%.2f</td>
                        <td>%.2f</td>
                        <td>%d/%d</td>
                        <td><span class="badge badge-%s">%s</span></td>
                        <td>%s</td>
                    </tr>
`,
			html.EscapeString(cs.CustomerID),
			cs.TotalMonths,
			cs.AvgUnits,
			cs.AvgPeakLoad,
			cs.UnitsVolatility,
			cs.SuspiciousPeriods,
			cs.TotalComparisons,
			riskBadgeClass(cs.OverallRisk),
			cs.OverallRisk,
			cs.LatestMonth,
		)
	}

	fmt.Fprintf(w, `
                </tbody>
            </table>
        </div>
`)
}

func (r *HTMLReporter) writeHTMLInvestigations(w io.Writer, result *AnalysisResult) {
	var high, medium []CustomerSummary
	for _, cs := range result.Summaries {
		switch cs.OverallRisk {
		case RiskHigh:
			high = append(high, cs)
		case RiskMedium:
			medium = append(medium, cs)
		}
	}
	if len(high) == 0 && len(medium) == 0 {
		return
	}

	fmt.Fprintf(w, `
        <div class="card">
            <h2>💡 Investigation Priorities</h2>
`)

	if len(high) > 0 {
		fmt.Fprintf(w, `<h4>🔴 High Priority</h4>`)
		for _, cs := range high {
			fmt.Fprintf(w, `
            <div class="insight-box high">
                <div class="insight-title">%s</div>
                <p>%d of %d month-to-month comparisons flagged as suspicious. Latest reading: %s at %s peak (%s).</p>
                <div class="insight-action">
                    <strong>Recommended Action:</strong> Schedule a priority field inspection. Check the meter seals, terminal cover, and service line for bypass wiring.
                </div>
            </div>
`,
				html.EscapeString(cs.CustomerID),
				cs.SuspiciousPeriods,
				cs.TotalComparisons,
				FormatUnits(cs.LatestUnits),
				FormatKW(cs.LatestPeakLoad),
				cs.LatestMonth,
			)
		}
	}

	if len(medium) > 0 {
		fmt.Fprintf(w, `<h4>🟡 Medium Priority</h4>`)
		for _, cs := range medium {
			fmt.Fprintf(w, `
            <div class="insight-box medium">
                <div class="insight-title">%s</div>
                <p>%d of %d month-to-month comparisons flagged as suspicious. Latest reading: %s at %s peak (%s).</p>
                <div class="insight-action">
                    <strong>Recommended Action:</strong> Queue for the next routine inspection round and re-check after the next billing cycle.
                </div>
            </div>
`,
				html.EscapeString(cs.CustomerID),
				cs.SuspiciousPeriods,
				cs.TotalComparisons,
				FormatUnits(cs.LatestUnits),
				FormatKW(cs.LatestPeakLoad),
				cs.LatestMonth,
			)
		}
	}

	fmt.Fprintf(w, `
        </div>
`)
}

func (r *HTMLReporter) writeHTMLThresholds(w io.Writer, result *AnalysisResult) {
	t := result.Thresholds

	fmt.Fprintf(w, `
        <div class="card">
            <h2>⚙️ Detection Thresholds</h2>
            <table>
                <thead>
                    <tr>
                        <th>Setting</th>
                        <th>Value</th>
                    </tr>
                </thead>
                <tbody>
                    <tr>
                        <td>Peak load drop threshold</td>
                        <td>%.1f%%</td>
                    </tr>
                    <tr>
                        <td>Units drop threshold</td>
                        <td>%.1f%%</td>
                    </tr>
                    <tr>
                        <td>Minimum units floor</td>
                        <td>%.1f kWh</td>
                    </tr>
                    <tr>
                        <td>Combined drop threshold</td>
                        <td>%.1f%%</td>
                    </tr>
                    <tr>
                        <td>High usage floor</td>
                        <td>%.1f kWh</td>
                    </tr>
                    <tr>
                        <td>Low peak floor</td>
                        <td>%.2f kW</td>
                    </tr>
                    <tr>
                        <td>High risk ratio</td>
                        <td>%.2f</td>
                    </tr>
                    <tr>
                        <td>Medium risk ratio</td>
                        <td>%.2f</td>
                    </tr>
                    <tr>
                        <td>Duplicate policy</td>
                        <td>%s</td>
                    </tr>
                </tbody>
            </table>
        </div>
`,
		t.PeakLoadDropPct,
		t.UnitsDropPct,
		t.MinUnits,
		t.CombinedDropPct,
		t.HighUsageFloor,
		t.LowPeakFloor,
		t.HighRiskRatio,
		t.MediumRiskRatio,
		html.EscapeString(t.DuplicatePolicy),
	)
}

func (r *HTMLReporter) writeHTMLFooter(w io.Writer) {
	fmt.Fprintf(w, `
        <footer>
            <p><em>Flags in this report are statistical indicators based on month-to-month billing changes. A flagged customer is a candidate for meter inspection, not proof of theft; metering faults, vacancy, and seasonal shutdowns can produce the same signatures.</em></p>
            <p style="margin-top: 10px;">Generated by <a href="https://github.com/SparkSidd/Electricity-Theft-Detection" style="color: var(--primary-color); text-decoration: none;">Electricity-Theft-Detection</a></p>
            <hr style="margin: 20px 0; border: none; border-top: 1px solid var(--border-color); opacity: 0.3;">
            <p style="opacity: 0.7; font-size: 0.9em;">Findings are advisory. Confirm every case through an on-site inspection and a meter accuracy test before raising an enforcement assessment.</p>
        </footer>
    </div>
</body>
</html>
`)
}

// riskiestCustomer picks the customer whose trend chart leads the report:
// highest risk level first, ties broken by suspicious comparison count.
func riskiestCustomer(summaries []CustomerSummary) string {
	best := -1
	for i, cs := range summaries {
		if cs.SuspiciousPeriods == 0 {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		b := summaries[best]
		if cs.OverallRisk.rank() > b.OverallRisk.rank() ||
			(cs.OverallRisk.rank() == b.OverallRisk.rank() && cs.SuspiciousPeriods > b.SuspiciousPeriods) {
			best = i
		}
	}
	if best == -1 {
		return ""
	}
	return summaries[best].CustomerID
}

// riskBadgeClass maps a risk level onto the badge CSS variants
func riskBadgeClass(level RiskLevel) string {
	switch level {
	case RiskHigh:
		return "danger"
	case RiskMedium:
		return "warning"
	default:
		return "success"
	}
}
