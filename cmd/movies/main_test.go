package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/movie-analytics/internal/dataset"
	"github.com/iliyamo/movie-analytics/internal/utils"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("movies %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestGenerateProcessReport(t *testing.T) {
	root := t.TempDir()
	raw, data := filepath.Join(root, "raw"), filepath.Join(root, "processed")
	dirs := []string{"--raw-dir", raw, "--data-dir", data, "--log-mode", "prod"}

	out := execute(t, append([]string{"generate", "--movies", "15", "--sales-days", "7", "--sales-top", "3", "--seed", "1"}, dirs...)...)
	if !strings.Contains(out, "generated 15 movies and ") {
		t.Fatalf("generate: %q", out)
	}
	if _, err := os.Stat(filepath.Join(raw, dataset.RawMoviesFile)); err != nil {
		t.Fatalf("raw movies: %v", err)
	}

	out = execute(t, append([]string{"process"}, dirs...)...)
	if !strings.Contains(out, "15 movies (0 skipped)") {
		t.Fatalf("process: %q", out)
	}

	out = execute(t, append([]string{"report"}, dirs...)...)
	var report map[string]json.RawMessage
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("report json: %v", err)
	}
	if len(report) != 7 {
		t.Fatalf("report keys: %d", len(report))
	}

	csvPath := filepath.Join(root, "report.csv")
	out = execute(t, append([]string{"report", "--format", "csv", "-o", csvPath}, dirs...)...)
	b, err := os.ReadFile(csvPath)
	if err != nil || strings.TrimSpace(out) != csvPath || !strings.HasPrefix(string(b), "metric,value") {
		t.Fatalf("csv: %v %q %q", err, out, b)
	}
}

func TestProcessWithoutRawFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"process", "--raw-dir", t.TempDir(), "--data-dir", t.TempDir(), "--log-mode", "prod"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("want error for missing raw tables")
	}
}

func TestHashPassword(t *testing.T) {
	out := strings.TrimSpace(execute(t, "hash-password", "--cost", "4", "s3cret"))
	if !utils.VerifyPassword(out, "s3cret") {
		t.Fatalf("hash does not verify: %q", out)
	}
}
