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
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLogger returns a logger writing text output into a buffer
func captureLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})
	return &Logger{slog.New(handler)}, &buf
}

func TestLogger_WithCustomerIDMasksLongIDs(t *testing.T) {
	logger, buf := captureLogger(slog.LevelInfo)

	logger.WithCustomerID("CUST-00123").Info("check")
	if !strings.Contains(buf.String(), "customer_id=CUST-***") {
		t.Errorf("expected a masked customer ID, got %s", buf.String())
	}

	buf.Reset()
	logger.WithCustomerID("C1").Info("check")
	if !strings.Contains(buf.String(), "customer_id=C1") {
		t.Errorf("expected short IDs unmasked, got %s", buf.String())
	}
}

func TestLogger_WithComponent(t *testing.T) {
	logger, buf := captureLogger(slog.LevelInfo)

	logger.WithComponent("normalizer").Info("check")
	if !strings.Contains(buf.String(), "component=normalizer") {
		t.Errorf("expected a component field, got %s", buf.String())
	}
}

func TestLogger_LogRowsDropped(t *testing.T) {
	logger, buf := captureLogger(slog.LevelDebug)

	logger.LogRowsDropped("clean.csv", DropStats{})
	if buf.Len() != 0 {
		t.Errorf("expected no output for a clean table, got %s", buf.String())
	}

	logger.LogRowsDropped("mixed.csv", DropStats{MissingValues: 2, NegativeValues: 1})
	out := buf.String()
	if !strings.Contains(out, "Rows dropped") {
		t.Errorf("expected the drop entry, got %s", out)
	}
	if !strings.Contains(out, "missing_values=2") || !strings.Contains(out, "negative_values=1") {
		t.Errorf("expected drop counters, got %s", out)
	}

	// Drop entries are debug-level and invisible at the default level
	infoLogger, infoBuf := captureLogger(slog.LevelInfo)
	infoLogger.LogRowsDropped("mixed.csv", DropStats{MissingValues: 2})
	if infoBuf.Len() != 0 {
		t.Errorf("expected drop entries suppressed at info level, got %s", infoBuf.String())
	}
}

func TestLogger_LogSuspiciousChange(t *testing.T) {
	logger, buf := captureLogger(slog.LevelInfo)

	logger.LogSuspiciousChange("C1", "2025-02", RiskHigh, []string{ReasonPeakLoadDrop, ReasonUnitsDrop})
	out := buf.String()
	if !strings.Contains(out, "Suspicious change detected") {
		t.Errorf("expected the warning entry, got %s", out)
	}
	if !strings.Contains(out, "risk=High") {
		t.Errorf("expected the risk level, got %s", out)
	}
	if !strings.Contains(out, "Significant peak load drop") {
		t.Errorf("expected the reasons, got %s", out)
	}
}

func TestLogger_LogTableRejected(t *testing.T) {
	logger, buf := captureLogger(slog.LevelInfo)

	logger.LogTableRejected("bad.csv", "empty file")
	out := buf.String()
	if !strings.Contains(out, "Table rejected") || !strings.Contains(out, "table=bad.csv") {
		t.Errorf("expected the rejection entry, got %s", out)
	}
}
