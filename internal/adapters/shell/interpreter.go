// Package shell runs the python interpreter as a subprocess.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/whl/internal/adapters/logger"
	"go.trai.ch/whl/internal/core/domain"
	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/zerr"
)

// probeScript prints sys.platform, platform.machine() and the full version,
// one per line.
const probeScript = `import platform, sys
print(sys.platform)
print(platform.machine())
print("%d.%d.%d" % sys.version_info[:3])`

// Interpreter implements ports.Interpreter using os/exec.
type Interpreter struct {
	logger ports.Logger
}

// NewInterpreter creates a new Interpreter.
func NewInterpreter(logger ports.Logger) *Interpreter {
	return &Interpreter{
		logger: logger,
	}
}

// Run executes the interpreter with the invocation's arguments. Stdout lines
// are logged as info and stderr lines as warnings. Both streams are also
// copied to the telemetry vertex carried by ctx.
func (i *Interpreter) Run(ctx context.Context, inv ports.Invocation) error {
	stdout := logger.NewLineWriter(i.logger.Info)
	stderr := logger.NewLineWriter(i.logger.Warn)
	defer stdout.Flush()
	defer stderr.Flush()

	var out, errOut io.Writer = stdout, stderr
	if v, ok := ports.VertexFromContext(ctx); ok {
		out = io.MultiWriter(stdout, v.Stdout())
		errOut = io.MultiWriter(stderr, v.Stderr())
	}

	return i.run(ctx, inv, out, errOut)
}

// Probe runs a short script to learn the interpreter's platform and version.
func (i *Interpreter) Probe(ctx context.Context, python string) (domain.Host, error) {
	var out bytes.Buffer
	errOut := logger.NewLineWriter(i.logger.Warn)
	defer errOut.Flush()

	inv := ports.Invocation{Python: python, Args: []string{"-c", probeScript}, Env: os.Environ()}
	if err := i.run(ctx, inv, &out, errOut); err != nil {
		return domain.Host{}, zerr.Wrap(err, "failed to probe interpreter")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		return domain.Host{}, zerr.With(zerr.New("unexpected interpreter probe output"), "output", out.String())
	}
	version, err := domain.ParseVersion(strings.TrimSpace(lines[2]))
	if err != nil {
		return domain.Host{}, zerr.With(err, "python", python)
	}
	host, err := domain.DetectHost(strings.TrimSpace(lines[0]), strings.TrimSpace(lines[1]), version)
	if err != nil {
		return domain.Host{}, zerr.With(err, "python", python)
	}
	return host, nil
}

func (i *Interpreter) run(ctx context.Context, inv ports.Invocation, stdout, stderr io.Writer) error {
	name := inv.Python

	// Resolve the executable against the invocation's PATH rather than ours.
	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, inv.Env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, inv.Args...) //nolint:gosec // interpreter is user provided

	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = inv.Dir
	cmd.Env = inv.Env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1 // Unknown or signal
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(err, "command", strings.Join(append([]string{name}, inv.Args...), " "))
	}
	return nil
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
