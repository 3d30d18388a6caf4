package jsonuri

import (
	"fmt"
	"log"
)

// Diagnostic describes an operation that was aborted because its input did
// not fit the data, such as moving an element whose parent is not an array.
type Diagnostic struct {
	// Op is the operation name ("insert", "move", "up", "down").
	Op string
	// Path is the path the operation was given.
	Path string
	// Err is the error also returned to the caller.
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("jsonuri: %s %s: %v", d.Op, d.Path, d.Err)
}

// DiagnosticHandler receives diagnostics for aborted operations.
type DiagnosticHandler func(d Diagnostic)

// defaultDiagnosticHandler logs diagnostics to stderr using the standard log package.
var defaultDiagnosticHandler DiagnosticHandler = func(d Diagnostic) {
	log.Println(d.String())
}

var diagnosticHandler = defaultDiagnosticHandler

// SetDiagnosticHandler replaces the handler for diagnostics. Pass nil to
// silence them; errors are still returned.
// This function is not thread-safe and should be called during initialization.
//
// Example:
//
//	jsonuri.SetDiagnosticHandler(func(d jsonuri.Diagnostic) {
//	    logger.Warn(d.String())
//	})
func SetDiagnosticHandler(handler DiagnosticHandler) {
	diagnosticHandler = handler
}

// report forwards err to the diagnostic handler and returns it unchanged.
func report(op, path string, err error) error {
	if diagnosticHandler != nil {
		diagnosticHandler(Diagnostic{Op: op, Path: path, Err: err})
	}
	return err
}
