package source

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/matrixrain/pkg/errors"
)

// DefaultShell runs scripts that are not executable themselves.
const DefaultShell = "/bin/sh"

// Script is a program whose output is rained line by line.
type Script struct {
	// Path is the script file. It runs with its own directory as the
	// working directory.
	Path string

	// Args are passed to the script.
	Args []string

	// Shell interprets Path when it lacks the executable bit.
	// Empty means DefaultShell.
	Shell string

	// PTY runs the script on a pseudo-terminal instead of pipes.
	PTY bool

	// Env holds extra KEY=VALUE pairs on top of the current environment.
	Env []string
}

// Run starts the script, submits its output to sink until it exits and
// returns the number of lines read. A non-zero exit is reported as
// PROCESS_FAILED; lines already submitted are unaffected.
func (s Script) Run(ctx context.Context, sink Sink) (int, error) {
	cmd, err := s.command(ctx)
	if err != nil {
		return 0, err
	}

	var lines int
	if s.PTY {
		lines, err = s.runPTY(ctx, cmd, sink)
	} else {
		lines, err = s.runPipes(ctx, cmd, sink)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return lines, ctxErr
		}
		return lines, err
	}
	return lines, nil
}

func (s Script) command(ctx context.Context) (*exec.Cmd, error) {
	if err := errs.ValidateScriptPath(s.Path); err != nil {
		return nil, err
	}
	path, err := filepath.Abs(s.Path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "resolve %s", s.Path)
	}

	name, args := path, s.Args
	if !executable(path) {
		name = s.Shell
		if name == "" {
			name = DefaultShell
		}
		args = append([]string{path}, s.Args...)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = filepath.Dir(path)
	cmd.Env = append(os.Environ(), s.Env...)
	return cmd, nil
}

func (s Script) runPipes(ctx context.Context, cmd *exec.Cmd, sink Sink) (int, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeProcessFailed, err, "stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeProcessFailed, err, "stderr pipe")
	}
	if err := cmd.Start(); err != nil {
		return 0, errs.Wrap(errs.ErrCodeProcessFailed, err, "start %s", s.Path)
	}

	var lines atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range []io.Reader{stdout, stderr} {
		g.Go(func() error {
			n, err := Scan(gctx, r, sink)
			lines.Add(int64(n))
			if err != nil {
				// Keep the pipe drained so the child cannot block on it.
				_, _ = io.Copy(io.Discard, r)
			}
			return err
		})
	}
	scanErr := g.Wait()
	waitErr := cmd.Wait()

	n := int(lines.Load())
	if scanErr != nil {
		return n, scanErr
	}
	if waitErr != nil {
		return n, errs.Wrap(errs.ErrCodeProcessFailed, waitErr, "script %s", filepath.Base(s.Path))
	}
	return n, nil
}

func (s Script) runPTY(ctx context.Context, cmd *exec.Cmd, sink Sink) (int, error) {
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeProcessFailed, err, "start %s on a pty", s.Path)
	}
	defer ptmx.Close()

	n, scanErr := Scan(ctx, eofOnEIO{ptmx}, sink)
	if scanErr != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if scanErr != nil {
		return n, scanErr
	}
	if waitErr != nil {
		return n, errs.Wrap(errs.ErrCodeProcessFailed, waitErr, "script %s", filepath.Base(s.Path))
	}
	return n, nil
}

// eofOnEIO turns the EIO a pty master returns once the child side closes
// into a plain end of stream.
type eofOnEIO struct {
	r io.Reader
}

func (e eofOnEIO) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && errors.Is(err, syscall.EIO) {
		return n, io.EOF
	}
	return n, err
}

func executable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode()&0o111 != 0
}
