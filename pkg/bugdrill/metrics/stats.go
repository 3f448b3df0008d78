// Package metrics collects lightweight usage counters for the bugdrill
// engine: analyses run, defects found, sessions presented and checks
// completed. The dashboard exposes a snapshot of these on its stats endpoint.
package metrics

import (
	"sync"
	"time"
)

// Stats is a point-in-time snapshot of the collector's counters.
type Stats struct {
	AnalysesRun       int64         `json:"analyses_run"`
	DefectsFound      int64         `json:"defects_found"`
	SessionsPresented int64         `json:"sessions_presented"`
	ChecksCompleted   int64         `json:"checks_completed"`
	ChecksSucceeded   int64         `json:"checks_succeeded"`
	ChecksFailed      int64         `json:"checks_failed"`
	AvgCheckLatency   time.Duration `json:"avg_check_latency_ns"`
}

// Collector accumulates counters. All methods are safe for concurrent use.
type Collector struct {
	mu sync.Mutex

	analysesRun       int64
	defectsFound      int64
	sessionsPresented int64
	checksCompleted   int64
	checksSucceeded   int64
	checksFailed      int64
	checkLatencyTotal time.Duration
}

func NewCollector() *Collector {
	return &Collector{}
}

// RecordAnalysis counts one analysis pass and the defects it produced.
func (c *Collector) RecordAnalysis(defects int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analysesRun++
	c.defectsFound += int64(defects)
}

// RecordSession counts one session presentation.
func (c *Collector) RecordSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionsPresented++
}

// RecordCheck counts one completed user-visible check.
func (c *Collector) RecordCheck(succeeded bool, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checksCompleted++
	if succeeded {
		c.checksSucceeded++
	} else {
		c.checksFailed++
	}
	c.checkLatencyTotal += latency
}

// GetStats returns a snapshot of the current counters.
func (c *Collector) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		AnalysesRun:       c.analysesRun,
		DefectsFound:      c.defectsFound,
		SessionsPresented: c.sessionsPresented,
		ChecksCompleted:   c.checksCompleted,
		ChecksSucceeded:   c.checksSucceeded,
		ChecksFailed:      c.checksFailed,
	}
	if c.checksCompleted > 0 {
		s.AvgCheckLatency = c.checkLatencyTotal / time.Duration(c.checksCompleted)
	}
	return s
}

// Reset zeroes every counter. Intended for tests.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analysesRun = 0
	c.defectsFound = 0
	c.sessionsPresented = 0
	c.checksCompleted = 0
	c.checksSucceeded = 0
	c.checksFailed = 0
	c.checkLatencyTotal = 0
}
