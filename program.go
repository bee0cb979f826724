package rawk

import (
	"bytes"
	"io"

	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/interp"
	"github.com/kolkov/rawk/internal/semantic"
)

// Program represents a compiled AWK program ready for execution.
// A Program holds only its parsed AST and resolved symbol table, which
// are read-only once built, so the same Program can be run repeatedly
// (even concurrently) with different inputs and configurations; each
// Run builds a fresh, independent interpreter.
type Program struct {
	prog     *ast.Program
	resolved *semantic.ResolveResult
	source   string // Original source for debugging
}

// Run executes the compiled program with the given input and configuration.
// Returns the output as a string, or an error if execution fails.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty.
func (p *Program) Run(input io.Reader, config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()

	var outputBuf *bytes.Buffer
	output := config.Output
	if output == nil {
		outputBuf = &bytes.Buffer{}
		output = outputBuf
	}

	opts := interp.Options{
		FS:           config.FS,
		OFS:          config.OFS,
		ORS:          config.ORS,
		RS:           config.RS,
		Variables:    config.Variables,
		Args:         config.Args,
		DefaultInput: input,
		Output:       output,
		Stderr:       config.Stderr,
		Mode:         config.Mode,
	}
	if len(opts.Args) == 0 {
		opts.Args = []string{"awk"}
	}

	ip := interp.NewInterp(p.prog, p.resolved, opts)
	err := ip.Run()

	if err != nil {
		if exitErr, ok := err.(*interp.ExitSignal); ok {
			if exitErr.Code != 0 {
				return bufString(outputBuf), &ExitError{Code: exitErr.Code}
			}
			return bufString(outputBuf), nil
		}
		return "", &RuntimeError{Message: err.Error()}
	}

	return bufString(outputBuf), nil
}

func bufString(b *bytes.Buffer) string {
	if b == nil {
		return ""
	}
	return b.String()
}

// Source returns the original AWK source code.
func (p *Program) Source() string {
	return p.source
}
