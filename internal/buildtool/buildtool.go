// Package buildtool drives the external meson build that produces the
// benchmark executables.
package buildtool

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Meson wraps the two discrete build steps. Either step failing is fatal to
// the pipeline; the captured output is carried in the returned error.
type Meson struct {
	ProjectRoot string
	BuildDir    string
}

// NewMeson returns a build driver rooted at projectRoot.
func NewMeson(projectRoot, buildDir string) *Meson {
	return &Meson{ProjectRoot: projectRoot, BuildDir: buildDir}
}

// HasDescriptor reports whether the build descriptor file exists. Running
// from a directory without one is a usage error, checked before any build.
func HasDescriptor(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Configure removes any previous build directory and runs meson setup.
func (m *Meson) Configure(ctx context.Context) error {
	if err := os.RemoveAll(m.BuildDir); err != nil {
		return fmt.Errorf("failed to clean build directory %s: %w", m.BuildDir, err)
	}

	slog.Info("configuring build", "project", m.ProjectRoot)
	return m.run(ctx, "meson", "setup", "build", "--buildtype=release")
}

// Compile builds all targets, benchmark executables included.
func (m *Meson) Compile(ctx context.Context) error {
	slog.Info("compiling benchmarks", "project", m.ProjectRoot)
	return m.run(ctx, "meson", "compile", "-C", "build")
}

func (m *Meson) run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = m.ProjectRoot

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %v failed: %w\nOutput:\n%s", name, args, err, out.String())
	}
	return nil
}
