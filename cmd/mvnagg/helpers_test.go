// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"mvnagg/internal/config"
	"mvnagg/internal/runtime"

	"github.com/spf13/afero"
)

const testWorkDir = "/work/myapp"

type (
	// fakeRunner records every request and replays a canned result. Output
	// lines are echoed the way the process runner does it.
	fakeRunner struct {
		mu       sync.Mutex
		requests []runtime.Request
		output   []string
		result   runtime.Result
	}

	// staticConfig is a ConfigProvider returning a fixed configuration.
	staticConfig struct {
		cfg  *config.Config
		err  error
		opts []config.LoadOptions
	}

	// statFailFs fails Stat for a single path.
	statFailFs struct {
		afero.Fs
		path string
	}

	testEnv struct {
		app    *App
		fs     afero.Fs
		runner *fakeRunner
		config *staticConfig
		stdout *bytes.Buffer
		stderr *bytes.Buffer
	}
)

func (r *fakeRunner) Run(_ context.Context, req runtime.Request) *runtime.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if req.Echo {
		for _, line := range r.output {
			fmt.Fprintln(req.Stdout, line)
		}
	}
	res := r.result
	res.Stdout = append([]string(nil), r.output...)
	return &res
}

func (r *fakeRunner) calls() []runtime.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]runtime.Request(nil), r.requests...)
}

func (s *staticConfig) Load(_ context.Context, opts config.LoadOptions) (*config.Config, error) {
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

// newTestEnv builds an App over an in-memory myapp tree: core and web are
// modules, docs has no pom.xml and .idea is hidden.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for _, m := range []string{"core", "web", ".idea"} {
		mustWrite(t, fsys, filepath.Join(testWorkDir, m, "pom.xml"), "<project/>")
	}
	mustWrite(t, fsys, filepath.Join(testWorkDir, "docs", "README.md"), "docs")

	env := &testEnv{
		fs:     fsys,
		runner: &fakeRunner{},
		config: &staticConfig{cfg: config.DefaultConfig()},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	app, err := NewApp(Dependencies{
		Config: env.config,
		Runner: env.runner,
		Fs:     fsys,
		Getwd:  func() (string, error) { return testWorkDir, nil },
		Stdout: env.stdout,
		Stderr: env.stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	env.app = app
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) runtime.ExitCode {
	t.Helper()
	return execute(t.Context(), e.app, args)
}

func (e *testEnv) descriptor(t *testing.T, name string) string {
	t.Helper()
	data, err := afero.ReadFile(e.fs, filepath.Join(testWorkDir, name))
	if err != nil {
		t.Fatalf("read descriptor %s: %v", name, err)
	}
	return string(data)
}

func mustWrite(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func (f *statFailFs) Stat(name string) (os.FileInfo, error) {
	if name == f.path {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.Stat(name)
}
