package types

import (
	"sort"
	"strings"
	"time"
)

// Status represents the possible states of a recorded test outcome
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Backend labels for the two deployment modes under test.
const (
	BackendStandalone = "standalone"
	BackendNATS       = "nats"
)

// BackendOrder is the fixed priority order of backends in combined output,
// regardless of the order inputs were supplied in.
var BackendOrder = []string{BackendStandalone, BackendNATS}

// TestColumns is the fixed column order of the compatibility matrix.
var TestColumns = []string{"lease", "options", "renew", "release", "load"}

// TimestampFormat is the ISO-8601 UTC layout used in all result metadata.
const TimestampFormat = "2006-01-02T15:04:05Z"

// TestOutcome is the smallest unit of the matrix: the result of one test for
// one client under one protocol. Immutable once recorded.
type TestOutcome struct {
	Status     Status `json:"status"`
	DurationMS int64  `json:"duration_ms"`
	Details    string `json:"details"`
}

// Meta describes a single backend test run.
type Meta struct {
	Backend        string `json:"backend"`
	DoraVersion    string `json:"dora_version"`
	Timestamp      string `json:"timestamp"`
	TestDurationMS int64  `json:"test_duration_ms"`
}

// Summary holds the incrementally maintained counters for a run.
// Total == Passed+Failed+Skipped at all times.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ResultSet is the full structured record of one backend's run:
// client -> protocol -> test name -> outcome, plus metadata and counters.
type ResultSet struct {
	Meta    Meta                                         `json:"meta"`
	Clients map[string]map[string]map[string]TestOutcome `json:"clients"`
	Summary Summary                                      `json:"summary"`
}

// NewResultSet creates an empty ResultSet stamped with the current UTC time.
func NewResultSet(backend, doraVersion string) *ResultSet {
	return &ResultSet{
		Meta: Meta{
			Backend:     backend,
			DoraVersion: doraVersion,
			Timestamp:   time.Now().UTC().Format(TimestampFormat),
		},
		Clients: make(map[string]map[string]map[string]TestOutcome),
	}
}

// SetOutcome stores an outcome, creating the nested maps as needed.
// It does not touch the summary counters; that is the collector's job.
func (rs *ResultSet) SetOutcome(client, protocol, test string, outcome TestOutcome) {
	protocols, ok := rs.Clients[client]
	if !ok {
		protocols = make(map[string]map[string]TestOutcome)
		rs.Clients[client] = protocols
	}
	tests, ok := protocols[protocol]
	if !ok {
		tests = make(map[string]TestOutcome)
		protocols[protocol] = tests
	}
	tests[test] = outcome
}

// Outcome returns the recorded outcome for a cell, if any.
func (rs *ResultSet) Outcome(client, protocol, test string) (TestOutcome, bool) {
	outcome, ok := rs.Clients[client][protocol][test]
	return outcome, ok
}

// SortedClients returns client names in ascending order.
func (rs *ResultSet) SortedClients() []string {
	clients := make([]string, 0, len(rs.Clients))
	for name := range rs.Clients {
		clients = append(clients, name)
	}
	sort.Strings(clients)
	return clients
}

// SortedProtocols returns a client's protocol names in ascending order.
func (rs *ResultSet) SortedProtocols(client string) []string {
	protocols := make([]string, 0, len(rs.Clients[client]))
	for name := range rs.Clients[client] {
		protocols = append(protocols, name)
	}
	sort.Strings(protocols)
	return protocols
}

// ColumnName maps a test name to its matrix column: a v4_/v6_ prefix is
// stripped together with the underscore (v4_lease -> lease), anything else
// maps to itself.
func ColumnName(testName string) string {
	if strings.HasPrefix(testName, "v4_") || strings.HasPrefix(testName, "v6_") {
		return testName[3:]
	}
	return testName
}
