// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"testing"

	"mvnagg/internal/config"
	"mvnagg/internal/runtime"

	"github.com/spf13/afero"
)

// These tests drive the whole command through execute and are not parallel:
// fang.Execute configures process-wide styling state.

func TestRun_DefaultInvocation(t *testing.T) {
	env := newTestEnv(t)
	env.runner.output = []string{"[INFO] BUILD SUCCESS"}

	if code := env.run(t); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}

	calls := env.runner.calls()
	if len(calls) != 1 {
		t.Fatalf("runner called %d times, want 1", len(calls))
	}
	wantCmd := []string{"mvn", "-f", ".pom.xml", "clean", "install"}
	if !slices.Equal(calls[0].Args, wantCmd) {
		t.Errorf("command = %q, want %q", calls[0].Args, wantCmd)
	}
	if calls[0].Dir != testWorkDir {
		t.Errorf("dir = %q, want %q", calls[0].Dir, testWorkDir)
	}
	if !calls[0].Echo {
		t.Error("echo should be on by default")
	}

	pom := env.descriptor(t, ".pom.xml")
	for _, want := range []string{
		"<groupId>na</groupId>",
		"<artifactId>work-myapp</artifactId>",
		"<version>0.0.1-SNAPSHOT</version>",
		"<module>core</module>",
		"<module>web</module>",
	} {
		if !strings.Contains(pom, want) {
			t.Errorf("descriptor missing %q:\n%s", want, pom)
		}
	}
	for _, unwanted := range []string{"<module>docs</module>", "<module>.idea</module>"} {
		if strings.Contains(pom, unwanted) {
			t.Errorf("descriptor should not contain %q", unwanted)
		}
	}

	out := env.stdout.String()
	order := []string{
		"## Modules found:",
		"## Generated pom xml file: .pom.xml ##",
		"<packaging>pom</packaging>",
		"mvn -f .pom.xml clean install",
		"[INFO] BUILD SUCCESS",
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(out, s)
		if idx < 0 {
			t.Fatalf("stdout missing %q:\n%s", s, out)
		}
		if idx < last {
			t.Errorf("%q printed out of order:\n%s", s, out)
		}
		last = idx
	}
}

func TestRun_ResidualArgs(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "-g", "com.acme", "--", "verify", "-DskipTests"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}

	want := []string{"mvn", "-f", ".pom.xml", "verify", "-DskipTests"}
	if got := env.runner.calls()[0].Args; !slices.Equal(got, want) {
		t.Errorf("command = %q, want %q", got, want)
	}
	if pom := env.descriptor(t, ".pom.xml"); !strings.Contains(pom, "<groupId>com.acme</groupId>") {
		t.Errorf("descriptor should use the flag group id:\n%s", pom)
	}
}

func TestRun_CoordinateAndFileFlags(t *testing.T) {
	env := newTestEnv(t)

	code := env.run(t, "-a", "all", "-pv", "2.0", "-f", "aggregator.xml")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}

	pom := env.descriptor(t, "aggregator.xml")
	for _, want := range []string{"<artifactId>all</artifactId>", "<version>2.0</version>"} {
		if !strings.Contains(pom, want) {
			t.Errorf("descriptor missing %q:\n%s", want, pom)
		}
	}
	if got := env.runner.calls()[0].Args[2]; got != "aggregator.xml" {
		t.Errorf("-f argument = %q, want aggregator.xml", got)
	}
	if exists, _ := afero.Exists(env.fs, testWorkDir+"/.pom.xml"); exists {
		t.Error(".pom.xml should not be written when --file is given")
	}
}

func TestRun_AttachedPomVersion(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "-pv3.1"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	if pom := env.descriptor(t, ".pom.xml"); !strings.Contains(pom, "<version>3.1</version>") {
		t.Errorf("descriptor missing <version>3.1</version>:\n%s", pom)
	}
}

func TestRun_Excludes(t *testing.T) {
	env := newTestEnv(t)
	mustWrite(t, env.fs, testWorkDir+"/tmp-build/pom.xml", "<project/>")

	if code := env.run(t, "-x", "tmp.*", "web"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}

	pom := env.descriptor(t, ".pom.xml")
	if !strings.Contains(pom, "<module>core</module>") {
		t.Errorf("core should be kept:\n%s", pom)
	}
	for _, excluded := range []string{"tmp-build", "web"} {
		if strings.Contains(pom, "<module>"+excluded+"</module>") {
			t.Errorf("%s should be excluded:\n%s", excluded, pom)
		}
	}
	if !strings.Contains(pom, `exclusions: (tmp.*)|(web)|(\..*)`) {
		t.Errorf("descriptor comment should list the exclusions:\n%s", pom)
	}
	// Every token after -x is a pattern, so the default goals apply.
	if got := env.runner.calls()[0].Args; !slices.Equal(got[3:], []string{"clean", "install"}) {
		t.Errorf("goals = %q, want clean install", got[3:])
	}
}

func TestRun_ConfigValuesAndFlagPrecedence(t *testing.T) {
	env := newTestEnv(t)
	cfg := config.DefaultConfig()
	cfg.GroupID = "com.config"
	cfg.Excludes = []config.ExcludePattern{"web"}
	cfg.DefaultGoals = []string{"package"}
	cfg.BuildTool = "./mvnw -B"
	env.config.cfg = cfg

	if code := env.run(t, "--config", "/etc/mvnagg.cue", "-x", "core"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}

	pom := env.descriptor(t, ".pom.xml")
	if !strings.Contains(pom, "<groupId>com.config</groupId>") {
		t.Errorf("config group id not used:\n%s", pom)
	}
	if !strings.Contains(pom, `exclusions: (web)|(core)|(\..*)`) {
		t.Errorf("config excludes should come first:\n%s", pom)
	}
	if strings.Contains(pom, "<module>") {
		t.Errorf("every module is excluded:\n%s", pom)
	}

	want := []string{"./mvnw", "-B", "-f", ".pom.xml", "package"}
	if got := env.runner.calls()[0].Args; !slices.Equal(got, want) {
		t.Errorf("command = %q, want %q", got, want)
	}

	opts := env.config.opts[0]
	if opts.ConfigFilePath != "/etc/mvnagg.cue" || opts.WorkDir != testWorkDir {
		t.Errorf("load options = %+v", opts)
	}
}

func TestRun_ToolFlag(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "--tool", `"/opt/maven 3/bin/mvn" -q`); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}

	want := []string{"/opt/maven 3/bin/mvn", "-q", "-f", ".pom.xml", "clean", "install"}
	if got := env.runner.calls()[0].Args; !slices.Equal(got, want) {
		t.Errorf("command = %q, want %q", got, want)
	}
}

func TestRun_GenerateOnly(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "--generate-only"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	if calls := env.runner.calls(); len(calls) != 0 {
		t.Errorf("runner should not be called, got %d calls", len(calls))
	}
	if pom := env.descriptor(t, ".pom.xml"); !strings.Contains(pom, "<module>core</module>") {
		t.Errorf("descriptor not written:\n%s", pom)
	}
}

func TestRun_NoEcho(t *testing.T) {
	env := newTestEnv(t)
	env.runner.output = []string{"[INFO] hidden"}

	if code := env.run(t, "--no-echo"); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	if env.runner.calls()[0].Echo {
		t.Error("echo should be off with --no-echo")
	}
	out := env.stdout.String()
	if strings.Contains(out, "[INFO] hidden") || strings.Contains(out, "mvn -f") {
		t.Errorf("tool output should not be printed:\n%s", out)
	}
}

func TestRun_ExitCodePropagation(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		propagate bool
		want      runtime.ExitCode
	}{
		{name: "propagated by default", propagate: true, want: 3},
		{name: "ignored with flag", args: []string{"--ignore-exit-code"}, propagate: true, want: 0},
		{name: "ignored by config", propagate: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.runner.result = runtime.Result{ExitCode: 3}
			env.config.cfg.PropagateExitCode = tt.propagate

			if code := env.run(t, tt.args...); code != tt.want {
				t.Errorf("exit code = %d, want %d", code, tt.want)
			}
			if env.stderr.Len() != 0 {
				t.Errorf("a failing build needs no extra error output, got:\n%s", env.stderr)
			}
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--bogus"},
		{"-x"},
		{"-x", "-g", "com.acme"},
		{"--excludes", "--", "verify"},
		{"-g"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			env := newTestEnv(t)

			if code := env.run(t, args...); code != ExitCodeUsage {
				t.Errorf("exit code = %d, want %d", code, ExitCodeUsage)
			}
			stderr := env.stderr.String()
			// The usage lists the help and version flags added at execution.
			for _, want := range []string{"Usage:", "--excludes", "--help", "--version"} {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr missing %q in the usage text:\n%s", want, stderr)
				}
			}
			if len(env.config.opts) != 0 || len(env.runner.calls()) != 0 {
				t.Error("nothing should run after a usage error")
			}
			if exists, _ := afero.Exists(env.fs, testWorkDir+"/.pom.xml"); exists {
				t.Error("descriptor should not be written after a usage error")
			}
		})
	}
}

func TestRun_ToolNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.runner.result = runtime.Result{
		ExitCode: runtime.ExitCodeNotFound,
		Error:    fmt.Errorf("build tool %q not found: %w", "mvn", exec.ErrNotFound),
	}

	if code := env.run(t); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	stderr := env.stderr.String()
	for _, want := range []string{"failed to run build tool", "Install Maven", "Build tool not found"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestRun_Interrupted(t *testing.T) {
	env := newTestEnv(t)
	env.runner.result = runtime.Result{
		ExitCode: runtime.ExitCodeInterrupted,
		Error:    fmt.Errorf("%w: %w", runtime.ErrInterrupted, errors.New("signal")),
	}

	if code := env.run(t); code != runtime.ExitCodeInterrupted {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeInterrupted)
	}
}

func TestRun_InvalidExcludePattern(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "-x", "(unclosed"); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	stderr := env.stderr.String()
	for _, want := range []string{"compile exclude pattern", "(unclosed", "Invalid exclude pattern"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if len(env.runner.calls()) != 0 {
		t.Error("runner should not be called")
	}
	if exists, _ := afero.Exists(env.fs, testWorkDir+"/.pom.xml"); exists {
		t.Error("descriptor should not be written")
	}
}

func TestRun_BlankArtifactID(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "-a", " "); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	if !strings.Contains(env.stderr.String(), "--artifactId") {
		t.Errorf("stderr should suggest --artifactId:\n%s", env.stderr)
	}
}

func TestRun_DescriptorWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	env.app.Fs = afero.NewReadOnlyFs(env.fs)

	if code := env.run(t); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	if !strings.Contains(env.stderr.String(), "write aggregator POM") {
		t.Errorf("stderr should name the failed operation:\n%s", env.stderr)
	}
	if len(env.runner.calls()) != 0 {
		t.Error("runner should not be called")
	}
}

func TestRun_ConfigLoadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.config.err = errors.New("mvnagg.cue: syntax error")

	if code := env.run(t); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	stderr := env.stderr.String()
	for _, want := range []string{"load configuration", "syntax error"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestRun_WorkingDirectoryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.app.Getwd = func() (string, error) { return "", errors.New("getwd: no such file or directory") }

	if code := env.run(t); code != runtime.ExitCodeFailure {
		t.Errorf("exit code = %d, want %d", code, runtime.ExitCodeFailure)
	}
	stderr := env.stderr.String()
	for _, want := range []string{"failed to determine working directory", "no such file or directory"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if len(env.config.opts) != 0 || len(env.runner.calls()) != 0 {
		t.Error("nothing should run without a working directory")
	}
}

func TestRun_DiagnosticsAreWarnings(t *testing.T) {
	env := newTestEnv(t)
	env.app.Fs = &statFailFs{Fs: env.fs, path: testWorkDir + "/web"}

	if code := env.run(t); code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr:\n%s", code, env.stderr)
	}
	if !strings.Contains(env.stderr.String(), "WARN") {
		t.Errorf("unreadable entry should be logged as a warning:\n%s", env.stderr)
	}
	if pom := env.descriptor(t, ".pom.xml"); strings.Contains(pom, "<module>web</module>") {
		t.Errorf("unreadable entry should be skipped:\n%s", pom)
	}
}

func TestRun_VerboseLogging(t *testing.T) {
	env := newTestEnv(t)

	if code := env.run(t, "-v", "--generate-only"); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(env.stderr.String(), "descriptor written") {
		t.Errorf("verbose run should log debug messages:\n%s", env.stderr)
	}
}
