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
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with domain-specific methods
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text-formatted logger
func NewLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// NewJSONLogger creates a JSON-formatted logger
func NewJSONLogger(debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return &Logger{slog.New(handler)}
}

// WithComponent adds a component field to the logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l.With("component", component)}
}

// WithCustomerID adds a masked customer ID field to the logger
func (l *Logger) WithCustomerID(customerID string) *Logger {
	masked := customerID
	if len(customerID) > 5 {
		masked = customerID[:5] + "***"
	}
	return &Logger{l.With("customer_id", masked)}
}

// LogTableLoaded logs an accepted input table
func (l *Logger) LogTableLoaded(table string, rows int) {
	l.Info("Table loaded",
		"table", table,
		"rows", rows,
	)
}

// LogTableRejected logs a rejected input table
func (l *Logger) LogTableRejected(table, reason string) {
	l.Warn("Table rejected",
		"table", table,
		"reason", reason,
	)
}

// LogRowsDropped logs rows discarded during normalization
func (l *Logger) LogRowsDropped(table string, stats DropStats) {
	if stats.Total() == 0 {
		return
	}
	l.Debug("Rows dropped",
		"table", table,
		"missing_values", stats.MissingValues,
		"negative_values", stats.NegativeValues,
		"unparsable_months", stats.UnparsableMonths,
		"duplicates", stats.Duplicates,
	)
}

// LogAnalysisStage logs analysis stage completion
func (l *Logger) LogAnalysisStage(stage string) {
	l.Info("Analysis stage completed",
		"stage", stage,
	)
}

// LogSuspiciousChange logs a flagged month-to-month comparison
func (l *Logger) LogSuspiciousChange(customerID, month string, risk RiskLevel, reasons []string) {
	l.Warn("Suspicious change detected",
		"customer_id", customerID,
		"month", month,
		"risk", string(risk),
		"reasons", strings.Join(reasons, ", "),
	)
}

// LogStorageOperation logs storage operations
func (l *Logger) LogStorageOperation(operation, path string) {
	l.Debug("Storage operation",
		"operation", operation,
		"path", path,
	)
}

// UserMessage outputs a message directly to stdout (bypassing structured logging)
func (l *Logger) UserMessage(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
