// Package compile runs a TeX engine over rendered source in an isolated,
// short-lived working directory and returns the produced PDF.
package compile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	jobName        = "resume"
	contentTypePDF = "application/pdf"
	outputTail     = 4 << 10
	waitDelay      = 5 * time.Second
)

// DefaultTimeout bounds one engine run when Options.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// Job is one compilation request.
type Job struct {
	Source string
	// Engine is the TeX engine the source needs, e.g. pdflatex.
	Engine string
	// Variant selects the support file directory, if any.
	Variant string
}

// Artifact is a successfully compiled document.
type Artifact struct {
	Data        []byte
	ContentType string
	Pages       int
	Elapsed     time.Duration
}

// Options configures a Compiler.
type Options struct {
	// Engine replaces Job.Engine when set.
	Engine  string
	Timeout time.Duration
	// TempDir is where scoped working directories are created. Empty means
	// os.TempDir().
	TempDir string
	// SupportDir/<variant>/ is copied into every working directory for that
	// variant when it exists.
	SupportDir string
	// Env is appended to the process environment of the engine.
	Env []string
}

// Compiler invokes the external engine. It holds no per-call state and is
// safe for concurrent use.
type Compiler struct {
	opts Options
}

// New returns a Compiler.
func New(opts Options) *Compiler {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Compiler{opts: opts}
}

// EngineFor returns the executable that will run for a job needing engine.
func (c *Compiler) EngineFor(engine string) string {
	if c.opts.Engine != "" {
		return c.opts.Engine
	}
	if engine == "" {
		return "pdflatex"
	}
	return engine
}

// Available reports whether the executable for engine can be found.
func (c *Compiler) Available(engine string) error {
	_, err := exec.LookPath(c.EngineFor(engine))
	return err
}

// Compile writes job.Source into a fresh working directory, runs the engine
// there and returns the PDF. The directory and every file the engine wrote are
// removed before Compile returns. Failures are *CompilationError.
func (c *Compiler) Compile(ctx context.Context, job Job) (Artifact, error) {
	engine := c.EngineFor(job.Engine)

	dir, err := os.MkdirTemp(c.opts.TempDir, "resume-latex-")
	if err != nil {
		return Artifact{}, &CompilationError{Reason: ReasonWorkDir, Engine: engine, Output: err.Error(), Err: err}
	}
	defer os.RemoveAll(dir)

	if c.opts.SupportDir != "" && job.Variant != "" {
		if err := stageSupportFiles(filepath.Join(c.opts.SupportDir, job.Variant), dir); err != nil {
			return Artifact{}, &CompilationError{Reason: ReasonWorkDir, Engine: engine, Output: err.Error(), Err: err}
		}
	}
	if err := os.WriteFile(filepath.Join(dir, jobName+".tex"), []byte(job.Source), 0o600); err != nil {
		return Artifact{}, &CompilationError{Reason: ReasonWorkDir, Engine: engine, Output: err.Error(), Err: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	out := &tailBuffer{max: outputTail}
	cmd := exec.CommandContext(runCtx, engine,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-no-shell-escape",
		"-jobname="+jobName,
		jobName+".tex",
	)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.Env = append(os.Environ(), c.opts.Env...)
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if runErr != nil {
		return Artifact{}, c.failure(ctx, runCtx, engine, runErr, out, dir)
	}

	data, err := os.ReadFile(filepath.Join(dir, jobName+".pdf"))
	if err != nil || len(data) == 0 {
		if err == nil {
			err = errors.New("engine wrote an empty pdf")
		}
		return Artifact{}, &CompilationError{
			Reason: ReasonNoOutput,
			Engine: engine,
			Output: firstNonBlank(out.String(), fileTail(filepath.Join(dir, jobName+".log"), outputTail), err.Error()),
			Err:    err,
		}
	}
	pages, err := countPages(data)
	if err != nil {
		return Artifact{}, &CompilationError{
			Reason: ReasonCorruptOutput,
			Engine: engine,
			Output: firstNonBlank(out.String(), err.Error()),
			Err:    err,
		}
	}

	return Artifact{Data: data, ContentType: contentTypePDF, Pages: pages, Elapsed: elapsed}, nil
}

func (c *Compiler) failure(parent, runCtx context.Context, engine string, runErr error, out *tailBuffer, dir string) *CompilationError {
	output := firstNonBlank(out.String(), fileTail(filepath.Join(dir, jobName+".log"), outputTail), runErr.Error())
	ce := &CompilationError{Engine: engine, Output: output, Err: runErr}

	var exitErr *exec.ExitError
	switch {
	case parent.Err() != nil:
		ce.Reason = ReasonCanceled
		ce.Err = parent.Err()
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		ce.Reason = ReasonTimeout
		ce.Err = runCtx.Err()
	case errors.Is(runErr, exec.ErrNotFound), errors.Is(runErr, fs.ErrNotExist):
		ce.Reason = ReasonCompilerMissing
	case errors.As(runErr, &exitErr):
		ce.Reason = ReasonExit
		ce.ExitCode = exitErr.ExitCode()
	default:
		ce.Reason = ReasonExit
		ce.ExitCode = -1
	}
	return ce
}
