// Package rawk provides a POSIX AWK interpreter with common GNU extensions.
//
// rawk is an embeddable AWK implementation written in Go, featuring:
//   - POSIX AWK compatibility plus BEGINFILE/ENDFILE, gensub, patsplit,
//     asort/asorti, and the systime/mktime/strftime time builtins
//   - A POSIX-ERE regex engine (coregex) with leftmost-longest matching
//   - A tree-walking interpreter: no bytecode, no concurrency, matching
//     AWK's single-threaded execution model
//   - Embeddable library for Go applications
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := rawk.Run(`{ print $1 }`, strings.NewReader("hello world"), nil)
//
// With configuration:
//
//	output, err := rawk.Run(program, input, &rawk.Config{
//	    FS: ":",
//	    Variables: map[string]string{"threshold": "100"},
//	})
//
// # Compiled Programs
//
// For repeated execution of the same program:
//
//	prog, err := rawk.Compile(`$1 > threshold { print $2 }`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, file := range files {
//	    output, err := prog.Run(file, &rawk.Config{
//	        Variables: map[string]string{"threshold": "100"},
//	    })
//	    // ...
//	}
//
// # Configuration
//
// The [Config] type allows customization of AWK execution:
//   - Field and record separators (FS, RS, OFS, ORS)
//   - Pre-defined variables
//   - Custom I/O writers
//   - POSIX/traditional language mode
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [ParseError]: syntax errors in AWK source
//   - [CompileError]: semantic errors during compilation
//   - [RuntimeError]: errors during execution
//
// # Thread Safety
//
// rawk follows AWK's own concurrency model: a single [Program] execution is
// strictly sequential. Compiled [Program] values are safe to share and run
// repeatedly, but each call to [Program.Run] executes to completion before
// returning and does not spawn workers internally.
package rawk
