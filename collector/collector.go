// Package collector accumulates per-client, per-protocol, per-test outcomes
// for one backend's run and serialises them for the formatter. Rendering is
// delegated to the reporting package; the collector owns only the data.
package collector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dora-dhcp/compat-matrix/reporting"
	"github.com/dora-dhcp/compat-matrix/types"
)

// Collector owns one ResultSet and keeps its summary counters consistent
// with the recorded outcomes. It is owned exclusively by a single test-run
// context; no internal locking.
type Collector struct {
	results *types.ResultSet
	start   time.Time
	log     *logrus.Entry
}

// New creates a collector for one backend run.
func New(backend, doraVersion string) *Collector {
	return &Collector{
		results: types.NewResultSet(backend, doraVersion),
		start:   time.Now(),
		log:     logrus.WithField("component", "collector").WithField("backend", backend),
	}
}

// Record stores a pass/fail outcome and bumps the counters. Re-recording the
// same (client, protocol, test) overwrites the stored outcome but still
// increments the counters; callers must record each cell at most once.
func (c *Collector) Record(client, protocol, test string, passed bool, durationMS int64, details string) {
	status := types.StatusFail
	if passed {
		status = types.StatusPass
	}
	c.results.SetOutcome(client, protocol, test, types.TestOutcome{
		Status:     status,
		DurationMS: durationMS,
		Details:    details,
	})
	c.results.Summary.Total++
	if passed {
		c.results.Summary.Passed++
	} else {
		c.results.Summary.Failed++
	}
}

// RecordSkip stores a skipped outcome with the reason in details.
func (c *Collector) RecordSkip(client, protocol, test, reason string) {
	c.results.SetOutcome(client, protocol, test, types.TestOutcome{
		Status:  types.StatusSkip,
		Details: reason,
	})
	c.results.Summary.Total++
	c.results.Summary.Skipped++
}

// Finalize stamps the elapsed run duration into the metadata. Intended to be
// called once before any output; calling it again recomputes to a later
// value.
func (c *Collector) Finalize() {
	c.results.Meta.TestDurationMS = time.Since(c.start).Milliseconds()
}

// Results exposes the underlying result set.
func (c *Collector) Results() *types.ResultSet {
	return c.results
}

// ToJSON finalizes and returns the full record as indented JSON.
func (c *Collector) ToJSON() (string, error) {
	c.Finalize()
	data, err := json.MarshalIndent(c.results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data), nil
}

// WriteJSON finalizes and writes the record to path, creating parent
// directories as needed.
func (c *Collector) WriteJSON(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	c.log.WithField("path", path).Info("results written")
	return nil
}

// Markdown finalizes and renders the matrix as a Markdown table.
func (c *Collector) Markdown() string {
	c.Finalize()
	return reporting.MarkdownResultSet(c.results)
}

// WriteMarkdown writes the Markdown rendering to path, creating parent
// directories as needed.
func (c *Collector) WriteMarkdown(path string) error {
	if err := writeFile(path, c.Markdown()); err != nil {
		return err
	}
	c.log.WithField("path", path).Info("markdown written")
	return nil
}

// PrintMatrix finalizes and prints the colored terminal table to stdout.
func (c *Collector) PrintMatrix(palette *reporting.Palette) {
	c.Finalize()
	fmt.Println(reporting.NewMatrixFormatter(palette).FormatResultSet(c.results))
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
