package python

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	embedpy "github.com/kluctl/go-embed-python/python"

	"github.com/matzehuels/libscope/pkg/introspect"
)

// Interpreter builds commands that run a Python interpreter with args.
type Interpreter interface {
	Command(ctx context.Context, args ...string) (*exec.Cmd, error)
}

// System runs an interpreter found on PATH.
type System struct {
	Executable string   // defaults to python3
	Paths      []string // prepended to PYTHONPATH
}

// Command implements [Interpreter]. A missing executable is reported as
// [introspect.ErrUnavailable].
func (s System) Command(ctx context.Context, args ...string) (*exec.Cmd, error) {
	exe := s.Executable
	if exe == "" {
		exe = "python3"
	}
	path, err := exec.LookPath(exe)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", introspect.ErrUnavailable, exe, err)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = os.Environ()
	if len(s.Paths) > 0 {
		entries := append([]string{}, s.Paths...)
		if cur := os.Getenv("PYTHONPATH"); cur != "" {
			entries = append(entries, cur)
		}
		cmd.Env = append(cmd.Env, "PYTHONPATH="+strings.Join(entries, string(os.PathListSeparator)))
	}
	return cmd, nil
}

// Embedded runs the CPython distribution bundled into the binary. It is
// extracted to dir on first use and reused afterwards.
type Embedded struct {
	ep *embedpy.EmbeddedPython
}

// NewEmbedded extracts the bundled interpreter into dir.
func NewEmbedded(dir string, paths []string) (*Embedded, error) {
	ep, err := embedpy.NewEmbeddedPythonWithTmpDir(dir, true)
	if err != nil {
		return nil, fmt.Errorf("extract embedded python: %w", err)
	}
	for _, p := range paths {
		ep.AddPythonPath(p)
	}
	return &Embedded{ep: ep}, nil
}

// Command implements [Interpreter].
func (e *Embedded) Command(ctx context.Context, args ...string) (*exec.Cmd, error) {
	base, err := e.ep.PythonCmd(args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", introspect.ErrUnavailable, err)
	}
	// PythonCmd has no context; rebuild it so cancellation kills the process.
	cmd := exec.CommandContext(ctx, base.Path, base.Args[1:]...)
	cmd.Env = base.Env
	cmd.Dir = base.Dir
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	return cmd, nil
}
