// Package toolchain drives the dotnet CLI that builds and runs generated
// programs.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the toolchain executable looked up on PATH.
const DefaultBinary = "dotnet"

// ProgramFile is the file the generated program is written to.
const ProgramFile = "Program.cs"

// Command is one external process invocation.
type Command struct {
	Dir    string
	Name   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes commands. ExecRunner is the real implementation.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // binary comes from configuration
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// Invoker prepares a console project and runs programs inside it.
type Invoker struct {
	Binary     string
	ProjectDir string
	Runner     Runner
	Logger     *slog.Logger
}

// New returns an Invoker using the real runner. An empty binary means
// DefaultBinary.
func New(binary, projectDir string, logger *slog.Logger) *Invoker {
	return &Invoker{Binary: binary, ProjectDir: projectDir, Logger: logger}
}

func (inv *Invoker) binary() string {
	if inv.Binary == "" {
		return DefaultBinary
	}
	return inv.Binary
}

func (inv *Invoker) runner() Runner {
	if inv.Runner == nil {
		return ExecRunner{}
	}
	return inv.Runner
}

func (inv *Invoker) logger() *slog.Logger {
	if inv.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return inv.Logger
}

// Locate returns the resolved path of the toolchain binary.
func (inv *Invoker) Locate() (string, error) {
	path, err := exec.LookPath(inv.binary())
	if err != nil {
		return "", fmt.Errorf("toolchain: %w", err)
	}
	return path, nil
}

// HasProject reports whether the project directory already holds a
// .csproj file.
func (inv *Invoker) HasProject() (bool, error) {
	matches, err := filepath.Glob(filepath.Join(inv.ProjectDir, "*.csproj"))
	if err != nil {
		return false, fmt.Errorf("failed to look for project file: %w", err)
	}
	return len(matches) > 0, nil
}

// Prepare creates a console project in ProjectDir unless one exists.
func (inv *Invoker) Prepare(ctx context.Context, stdout, stderr io.Writer) error {
	if inv.ProjectDir == "" {
		return fmt.Errorf("toolchain: project directory not set")
	}
	ok, err := inv.HasProject()
	if err != nil {
		return err
	}
	if ok {
		inv.logger().Debug("project exists", "dir", inv.ProjectDir)
		return nil
	}

	cmd := Command{
		Name:   inv.binary(),
		Args:   []string{"new", "console", "--force", "-o", inv.ProjectDir},
		Stdout: stdout,
		Stderr: stderr,
	}
	inv.logger().Info("creating project", "dir", inv.ProjectDir)
	if err := inv.runner().Run(ctx, cmd); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

// Write stores program as the project's Program.cs.
func (inv *Invoker) Write(program string) (string, error) {
	if err := os.MkdirAll(inv.ProjectDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create project directory: %w", err)
	}
	path := filepath.Join(inv.ProjectDir, ProgramFile)
	if err := os.WriteFile(path, []byte(program), 0o644); err != nil { //nolint:gosec // generated source is not secret
		return "", fmt.Errorf("failed to write program: %w", err)
	}
	return path, nil
}

// Run prepares the project, writes program into it and runs it, streaming
// the program's output to stdout and stderr.
func (inv *Invoker) Run(ctx context.Context, program string, stdout, stderr io.Writer) error {
	if err := inv.Prepare(ctx, stdout, stderr); err != nil {
		return err
	}
	if _, err := inv.Write(program); err != nil {
		return err
	}

	cmd := Command{
		Name:   inv.binary(),
		Args:   []string{"run", "--project", inv.ProjectDir},
		Stdout: stdout,
		Stderr: stderr,
	}
	inv.logger().Info("running program", "dir", inv.ProjectDir)
	if err := inv.runner().Run(ctx, cmd); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}
