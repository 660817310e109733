// Package python implements an introspection provider that reflects on
// modules with a real Python interpreter.
//
// Each call runs the embedded helper.py script (fed on stdin) in a fresh
// interpreter process and decodes the single JSON document it prints.
// Import side effects therefore never leak between requests.
package python

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/libscope/pkg/introspect"
)

//go:embed helper.py
var helperScript string

// DefaultTimeout bounds a single helper run.
const DefaultTimeout = 30 * time.Second

// Options configures a [Provider].
type Options struct {
	Interpreter Interpreter   // defaults to System{Executable: "python3"}
	Timeout     time.Duration // defaults to DefaultTimeout
}

// Provider is an [introspect.Provider] backed by a Python interpreter.
type Provider struct {
	interp  Interpreter
	timeout time.Duration
}

var _ introspect.Provider = (*Provider)(nil)

// New creates a runtime provider.
func New(opts Options) *Provider {
	if opts.Interpreter == nil {
		opts.Interpreter = System{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Provider{interp: opts.Interpreter, timeout: opts.Timeout}
}

func (p *Provider) Name() string { return "python" }

func (p *Provider) Describe(ctx context.Context, module string) (*introspect.Module, error) {
	var mod introspect.Module
	if err := p.run(ctx, &mod, "describe", module); err != nil {
		return nil, err
	}
	return &mod, nil
}

func (p *Provider) Lookup(ctx context.Context, req introspect.SourceRequest) (*introspect.ObjectInfo, error) {
	args := []string{"source", req.Library, string(req.Kind), req.Name}
	if req.Parent != "" {
		args = append(args, req.Parent)
	}
	var info introspect.ObjectInfo
	if err := p.run(ctx, &info, args...); err != nil {
		return nil, err
	}
	return &info, nil
}

func (p *Provider) Packages(ctx context.Context) ([]introspect.Package, error) {
	var pkgs []introspect.Package
	if err := p.run(ctx, &pkgs, "packages"); err != nil {
		return nil, err
	}
	return pkgs, nil
}

type response struct {
	OK      bool            `json:"ok"`
	Result  json.RawMessage `json:"result"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (p *Provider) run(ctx context.Context, out any, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd, err := p.interp.Command(ctx, append([]string{"-"}, args...)...)
	if err != nil {
		return err
	}
	cmd.Stdin = strings.NewReader(helperScript)
	cmd.Env = append(cmd.Env, "PYTHONIOENCODING=utf-8", "PYTHONDONTWRITEBYTECODE=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("python helper %s timed out after %s", args[0], p.timeout)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if runErr != nil && stdout.Len() == 0 {
		return fmt.Errorf("python helper %s: %w: %s", args[0], runErr, lastLine(stderr.String()))
	}
	return decode(stdout.Bytes(), out)
}

func decode(data []byte, out any) error {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("decode helper output: %w", err)
	}
	if !resp.OK {
		switch resp.Error {
		case "module_not_found":
			return fmt.Errorf("%w: %s", introspect.ErrModuleNotFound, resp.Message)
		case "element_not_found":
			return fmt.Errorf("%w: %s", introspect.ErrElementNotFound, resp.Message)
		case "invalid_request":
			return fmt.Errorf("%w: %s", introspect.ErrInvalidRequest, resp.Message)
		default:
			return fmt.Errorf("python helper: %s", resp.Message)
		}
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode helper result: %w", err)
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
