package ports

import (
	"context"

	"go.trai.ch/whl/internal/core/domain"
)

// Invocation describes one run of the python interpreter.
type Invocation struct {
	// Python is the interpreter executable, resolved against the PATH in Env.
	Python string
	// Args follow the interpreter name, e.g. "-m", "pip", "wheel".
	Args []string
	// Env holds the complete environment in "KEY=VALUE" form.
	Env []string
	// Dir is the working directory.
	Dir string
}

// Interpreter runs the python interpreter that drives pip.
//
//go:generate go run go.uber.org/mock/mockgen -source=interpreter.go -destination=mocks/mock_interpreter.go -package=mocks
type Interpreter interface {
	// Run executes the invocation. Output is streamed to the logger and to the
	// telemetry vertex carried by ctx, if any.
	// A non-zero exit status is returned as an error carrying the exit code.
	Run(ctx context.Context, inv Invocation) error

	// Probe asks the interpreter for its platform and version.
	Probe(ctx context.Context, python string) (domain.Host, error)
}
