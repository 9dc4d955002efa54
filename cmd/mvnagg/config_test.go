// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mvnagg/internal/config"
	"mvnagg/internal/runtime"
)

// Not parallel: the config commands run through fang.Execute.

func TestConfigDump(t *testing.T) {
	env := newTestEnv(t)
	env.config.cfg.GroupID = "com.acme"

	if code := env.run(t, "config", "dump"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	out := env.stdout.String()
	for _, want := range []string{`group_id: "com.acme"`, `default_goals: ["clean", "install"]`} {
		if !strings.Contains(out, want) {
			t.Errorf("CUE dump missing %q:\n%s", want, out)
		}
	}
	if len(env.runner.calls()) != 0 {
		t.Error("config dump must not run the build tool")
	}
}

func TestConfigDump_TOML(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "config", "dump", "--toml"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	out := env.stdout.String()
	for _, want := range []string{"group_id", "build_tool", "[ui]"} {
		if !strings.Contains(out, want) {
			t.Errorf("TOML dump missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t)
	env.config.cfg.Excludes = []config.ExcludePattern{"tmp.*"}

	if code := env.run(t, "--config", "/etc/mvnagg.cue", "config", "show"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	out := env.stdout.String()
	for _, want := range []string{"Current Configuration", "/etc/mvnagg.cue", "(not found)", "group_id", "tmp.*", "echo"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
	if got := env.config.opts[0].ConfigFilePath; got != "/etc/mvnagg.cue" {
		t.Errorf("config show loaded %q, want the --config file", got)
	}
}

func TestConfigShow_LoadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.config.err = errors.New("schema violation")

	if code := env.run(t, "config", "show"); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	if !strings.Contains(env.stderr.String(), "Failed to load configuration") {
		t.Errorf("stderr should contain the config issue help:\n%s", env.stderr)
	}
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	if code := env.run(t, "config", "path"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
	want := []string{
		filepath.Join(dir, "config.cue"),
		filepath.Join(testWorkDir, config.ProjectConfigFile),
	}
	if len(lines) != len(want) {
		t.Fatalf("config path printed %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(t.TempDir(), "mvnagg")
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	if code := env.run(t, "config", "init"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "Created default configuration") {
		t.Errorf("unexpected output:\n%s", env.stdout)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.cue"))
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(string(data), `group_id: "na"`) {
		t.Errorf("config file should hold the defaults:\n%s", data)
	}

	env.stdout.Reset()
	if code := env.run(t, "config", "init"); code != 0 {
		t.Fatalf("second init exit code = %d, want 0", code)
	}
	if !strings.Contains(env.stdout.String(), "already exists") {
		t.Errorf("second init should keep the file:\n%s", env.stdout)
	}
}

func TestCompletion(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "completion", "bash"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	if !strings.Contains(env.stdout.String(), "mvnagg") {
		t.Errorf("completion script should mention mvnagg:\n%.200s", env.stdout)
	}
}
