package metrics

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	if c.GetRunID() == "" {
		t.Error("Expected non-empty run ID")
	}

	c.SetConfig("lexicon_dir", "lexicon")
	c.SetConfig("fold_ascii", true)

	c.StartStage("load")
	time.Sleep(10 * time.Millisecond)
	c.IncrementCounter("mappings", 120)
	c.SetGauge("variants_per_letter", 2.5)
	c.EndStage("load")

	c.StartStage("normalize")
	c.RecordLine(3, true, 0.8)
	c.RecordLine(2, false, 0.0)
	c.RecordLine(5, true, 0.6)
	c.EndStage("normalize")

	metrics := c.Finalize()

	if metrics.RunID == "" {
		t.Error("Expected non-empty run ID in metrics")
	}
	if metrics.Totals.LinesProcessed != 3 {
		t.Errorf("Expected 3 lines, got %d", metrics.Totals.LinesProcessed)
	}
	if metrics.Totals.WordsProcessed != 10 {
		t.Errorf("Expected 10 words, got %d", metrics.Totals.WordsProcessed)
	}
	if metrics.Totals.LinesChanged != 2 {
		t.Errorf("Expected 2 changed lines, got %d", metrics.Totals.LinesChanged)
	}
	want := (0.8 + 0.0 + 0.6) / 3
	if math.Abs(metrics.Totals.MeanConfidence-want) > 1e-9 {
		t.Errorf("Expected mean confidence %.4f, got %.4f", want, metrics.Totals.MeanConfidence)
	}

	if _, ok := metrics.Stages["load"]; !ok {
		t.Error("Expected load stage in metrics")
	}
	if _, ok := metrics.Stages["normalize"]; !ok {
		t.Error("Expected normalize stage in metrics")
	}

	loadStage := metrics.Stages["load"]
	if loadStage.Counters["mappings"] != 120 {
		t.Errorf("Expected mappings counter = 120, got %d", loadStage.Counters["mappings"])
	}
}

func TestReporter(t *testing.T) {
	tmpDir := t.TempDir()

	reporter := NewReporter(tmpDir)

	c := NewCollector()
	c.SetConfig("lexicon_dir", "lexicon")
	c.StartStage("normalize")
	c.RecordLine(4, true, 0.9)
	c.EndStage("normalize")
	metrics := c.Finalize()

	if err := reporter.Write(metrics); err != nil {
		t.Fatalf("Failed to write metrics: %v", err)
	}

	latestPath := filepath.Join(tmpDir, "metrics", "latest.json")
	if _, err := os.Stat(latestPath); os.IsNotExist(err) {
		t.Error("Expected latest.json to exist")
	}

	historyPath := filepath.Join(tmpDir, "metrics", "history.jsonl")
	if _, err := os.Stat(historyPath); os.IsNotExist(err) {
		t.Error("Expected history.jsonl to exist")
	}

	runs, err := reporter.ReadHistory(10)
	if err != nil {
		t.Fatalf("Failed to read history: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run in history, got %d", len(runs))
	}

	lastRun, err := reporter.GetLastRun()
	if err != nil {
		t.Fatalf("Failed to get last run: %v", err)
	}
	if lastRun.RunID != metrics.RunID {
		t.Errorf("Expected run ID %s, got %s", metrics.RunID, lastRun.RunID)
	}
}

func TestComparison(t *testing.T) {
	c1 := NewCollector()
	metrics1 := c1.Finalize()
	metrics1.Totals.DurationMs = 1000
	metrics1.Totals.Throughput = 1000

	c2 := NewCollector()
	metrics2 := c2.Finalize()
	metrics2.Totals.DurationMs = 500
	metrics2.Totals.Throughput = 2000

	comparison := CompareRuns(metrics2, metrics1)

	if comparison == nil {
		t.Fatal("Expected non-nil comparison")
	}
	if comparison.SpeedupFactor != 2.0 {
		t.Errorf("Expected 2x speedup, got %.2f", comparison.SpeedupFactor)
	}
	if comparison.TimeSavedMs != 500 {
		t.Errorf("Expected 500ms saved, got %d", comparison.TimeSavedMs)
	}

	formatted := FormatComparison(comparison)
	if formatted == "" {
		t.Error("Expected non-empty formatted comparison")
	}
}
