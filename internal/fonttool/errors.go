package fonttool

import "errors"

var (
	// ErrToolNotFound indicates the java executable or the tool jar is missing.
	ErrToolNotFound = errors.New("font tool not found")
	// ErrToolExecutionFailed indicates the tool returned a non-zero exit status or could not be started.
	ErrToolExecutionFailed = errors.New("font tool execution failed")
	// ErrToolTimeout indicates the per-font timeout elapsed before the tool exited.
	ErrToolTimeout = errors.New("font tool timed out")
)
