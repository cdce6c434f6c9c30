package compile

import "fmt"

// Failure reasons carried by CompilationError.
const (
	ReasonExit            = "exit_status"
	ReasonTimeout         = "timeout"
	ReasonCanceled        = "canceled"
	ReasonCompilerMissing = "compiler_not_found"
	ReasonNoOutput        = "no_output"
	ReasonCorruptOutput   = "corrupt_output"
	ReasonWorkDir         = "work_dir"
)

// CompilationError reports a failed compilation. Output holds the tail of the
// compiler's combined stdout and stderr, or of its log file.
type CompilationError struct {
	Reason   string
	Engine   string
	ExitCode int
	Output   string
	Err      error
}

func (e *CompilationError) Error() string {
	msg := fmt.Sprintf("latex compilation failed (%s)", e.Reason)
	if e.Engine != "" {
		msg += " engine=" + e.Engine
	}
	if e.Reason == ReasonExit {
		msg += fmt.Sprintf(" exit=%d", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CompilationError) Unwrap() error { return e.Err }

// Timeout reports whether the compiler was killed for running too long.
func (e *CompilationError) Timeout() bool { return e.Reason == ReasonTimeout }
