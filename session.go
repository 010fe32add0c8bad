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
	"sync"
)

// AnalysisSession holds the latest completed run for concurrent readers.
// A new run replaces the stored result wholesale; partial results are
// never visible.
type AnalysisSession struct {
	mutex  sync.RWMutex
	result *AnalysisResult
	runs   int
	logger *Logger
}

// NewAnalysisSession creates an empty session
func NewAnalysisSession(logger *Logger) *AnalysisSession {
	return &AnalysisSession{
		logger: logger.WithComponent("session"),
	}
}

// Store replaces the session's result with a completed run
func (s *AnalysisSession) Store(result *AnalysisResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.result = result
	s.runs++
	s.logger.Debug("Session updated",
		"run_id", result.RunID,
		"state", string(result.State),
		"runs", s.runs,
	)
}

// Latest returns the current result, or false when no run has completed
func (s *AnalysisSession) Latest() (*AnalysisResult, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.result == nil {
		return nil, false
	}
	return s.result, true
}

// HasResult reports whether a completed run is available
func (s *AnalysisSession) HasResult() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.result != nil
}

// Runs returns how many results have been stored in this session
func (s *AnalysisSession) Runs() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.runs
}

// Clear drops the stored result
func (s *AnalysisSession) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.result = nil
	s.logger.Debug("Session cleared")
}

// SummariesAtRisk returns the latest run's summaries filtered to one risk
// level, preserving customer order
func (s *AnalysisSession) SummariesAtRisk(level RiskLevel) []CustomerSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.result == nil {
		return nil
	}

	var out []CustomerSummary
	for _, cs := range s.result.Summaries {
		if cs.OverallRisk == level {
			out = append(out, cs)
		}
	}
	return out
}
