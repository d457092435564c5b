package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studentdash/internal/analytics"
	"studentdash/internal/config"
	"studentdash/internal/testutil"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte(testutil.SampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		DatasetSource:   config.SourceCSV,
		DatasetPath:     path,
		ConfigFile:      filepath.Join(dir, "missing.yaml"),
		EnableTrendline: true,
	}

	var out bytes.Buffer
	cmd := newRootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDerive(t *testing.T) {
	out, err := run(t, "", "derive", "Basketball High", "chess low", "Debate", "HIGH and low")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	want := "Basketball High\tHigh\nchess low\tLow\nDebate\tMedium\nHIGH and low\tHigh\n"
	if out != want {
		t.Errorf("derive output = %q, want %q", out, want)
	}
}

func TestDerive_Stdin(t *testing.T) {
	out, err := run(t, "Swim Low\r\nArt\n", "derive")
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if out != "Swim Low\tLow\nArt\tMedium\n" {
		t.Errorf("derive output = %q", out)
	}
}

func TestReport(t *testing.T) {
	out, err := run(t, "", "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"Objective 1: Activity Type vs GPA", "Rows: 6", "Chess Low"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q", want)
		}
	}
}

func TestReport_Filtered(t *testing.T) {
	out, err := run(t, "", "report", "--activity", "Chess Low", "--intensity", "Low", "--no-trendline")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Rows: 2") {
		t.Errorf("expected two rows in:\n%s", out)
	}
	if !strings.Contains(out, analytics.NoticeNoTrendline) {
		t.Error("expected trendline notice")
	}
}

func TestReport_NoData(t *testing.T) {
	out, err := run(t, "", "report", "--activity", "Music", "--intensity", "High")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if strings.TrimSpace(out) != analytics.NoticeNoData {
		t.Errorf("output = %q, want the no-data notice", out)
	}
}

func TestReport_UnknownSource(t *testing.T) {
	if _, err := run(t, "", "report", "--source", "s3"); err == nil {
		t.Error("expected an error for an unknown source")
	}
}
