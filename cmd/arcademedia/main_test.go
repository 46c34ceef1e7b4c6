package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arcademedia/internal/faults"
	"arcademedia/internal/launchbox"
	"arcademedia/internal/reconcile"
	"arcademedia/internal/testsupport"
	"arcademedia/internal/workflow"
)

type cliEnv struct {
	base       string
	configPath string
}

func setupCLITestEnv(t *testing.T) cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	lib := testsupport.NewLibrary(t)
	lib.Games(launchbox.Game{Title: "太鼓達人 紅版", ApplicationPath: `..\bat\taiko.bat`})
	lib.Script("taiko", "TAIKO")
	lib.Assets("covers", "太鼓達人 紅版-01.png")

	_, configPath := lib.Config("\n[logging]\nlevel = 'warn'\n\n" +
		"[[jobs]]\nname = 'covers'\nroots = ['covers']\ndest = 'Media/Covers'\n")
	return cliEnv{base: lib.Base, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Jobs: 1")
	requireContains(t, out, "== Paths ==")
	requireContains(t, out, "Job covers root:")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestJobsJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"jobs", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("jobs: %v", err)
	}
	var views []jobView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode jobs output: %v\n%s", err, out)
	}
	if len(views) != 1 || views[0].Name != "covers" || views[0].Dest != filepath.Join(env.base, "Media", "Covers") {
		t.Fatalf("unexpected jobs: %+v", views)
	}
}

func TestRunDryRunJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"run", "--dry-run", "--format", "json"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var results []workflow.JobResult
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode run output: %v\n%s", err, out)
	}
	if len(results) != 1 || !results[0].DryRun {
		t.Fatalf("unexpected results: %+v", results)
	}
	o := results[0].Report.Outcomes[0]
	if o.ID != "TAIKO" || o.Status != reconcile.StatusMatched {
		t.Fatalf("unexpected outcome: %+v", o)
	}
	if results[0].Report.RunID == "" {
		t.Fatal("expected a run id")
	}
	if _, err := os.Stat(filepath.Join(env.base, "Media")); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the destination (stat err %v)", err)
	}
}

func TestRunTableAndYAML(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"run", "covers", "--format", "table"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Job covers")
	requireContains(t, out, "TAIKO")
	requireContains(t, out, "太鼓達人-紅版")
	requireContains(t, out, "Files: done 1")
	if _, err := os.Stat(filepath.Join(env.base, "Media", "Covers", "TAIKO.png")); err != nil {
		t.Fatalf("expected organized cover: %v", err)
	}

	out, _, err = runCLI(t, []string{"run", "--format", "yaml"}, env.configPath)
	if err != nil {
		t.Fatalf("run yaml: %v", err)
	}
	requireContains(t, out, "run_id:")
	requireContains(t, out, "status: target_exists")
}

func TestRunErrors(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"run", "missing-job"}, env.configPath)
	if !errors.Is(err, faults.ErrConfiguration) || faults.ExitCode(err) != 2 {
		t.Fatalf("expected configuration error for unknown job, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"run", "--format", "xml"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, _, err := runCLI(t, []string{"run", "--min-score", "1.5"}, env.configPath); err == nil {
		t.Fatal("expected error for out of range min score")
	}
}

func TestDescribeCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"describe", "--output", "export/descriptions.json"}, env.configPath)
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	requireContains(t, out, "Wrote 1 descriptions")
	data, err := os.ReadFile(filepath.Join(env.base, "export", "descriptions.json"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	requireContains(t, string(data), `"profile_id": "TAIKO"`)
}
