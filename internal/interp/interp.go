// Package interp implements a tree-walking AWK interpreter: it evaluates
// the parsed AST directly rather than compiling it to bytecode, matching
// AWK's single-threaded, interpreted execution model.
package interp

import (
	"io"
	"math/rand"
	"os"
	"strconv"
	"unicode"

	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/semantic"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

const maxCallDepth = 1000

// binding is a variable slot: either a scalar value or a shared array
// pointer, never both. AWK decides which one a name is the first time it
// is used, and a name that turns out to be the wrong kind is a fatal
// error rather than a silent coercion.
type binding struct {
	isArray bool
	scalar  types.Value
	array   *Array
}

// Options configures an interpreter run. It plays the role Config plays
// in the public API, translated into the primitives the interpreter
// actually needs.
type Options struct {
	FS, OFS, ORS, RS string

	// Variables holds -v style pre-assignments, applied before BEGIN.
	Variables map[string]string

	// Args becomes ARGV/ARGC. Args[0] is the program name; Args[1:] are
	// file operands or "name=value" assignments, processed by the main
	// input loop in order.
	Args []string

	// DefaultInput is read when no file operand remains in ARGV (the
	// usual case for library callers, who pass their input directly
	// instead of listing it as a file).
	DefaultInput io.Reader

	Output io.Writer
	Stderr io.Writer

	// Mode is "", "posix", or "traditional"; it only affects what the
	// parser/checker accepted before reaching here, but gensub/patsplit/
	// asort/asorti/time builtins are harmless to support unconditionally
	// since the parser already rejected them under --posix.
	Mode string
}

// mainInput tracks the state of the driver's single, continuous main
// input stream, which may span multiple ARGV file operands.
type mainInput struct {
	argIdx       int
	cur          *runtime.RecordReader
	closer       io.Closer
	opened       bool
	usedAnyFile  bool
	triedDefault bool
}

// Interp is a single AWK program execution: its global/local variable
// bindings, current record and field state, special variables, and I/O.
type Interp struct {
	prog     *ast.Program
	resolved *semantic.ResolveResult
	funcs    map[string]*ast.FuncDecl
	opts     Options

	globals map[string]*binding
	frames  []map[string]*binding

	line       string
	lineIsStr  bool
	fields     []string
	fieldIsStr []bool
	nf         int

	fs, ofs, ors, rs, subsep, convfmt, ofmt string
	filename                                string
	fieldWidthsSpec, fpat                   string
	fieldWidths                             []int
	paragraph                                bool

	nr, fnr         int
	rstart, rlength int
	argc            int

	argv    *Array
	environ *Array

	io         *runtime.IOManager
	regexCache *runtime.RegexCache
	rng        *rand.Rand
	rngSeed    float64

	output io.Writer
	stderr io.Writer

	exitCode int
	mi       mainInput

	rangeActive []bool
}

// NewInterp builds an interpreter for prog, ready to Run.
func NewInterp(prog *ast.Program, resolved *semantic.ResolveResult, opts Options) *Interp {
	ip := &Interp{
		prog:       prog,
		resolved:   resolved,
		funcs:      make(map[string]*ast.FuncDecl, len(prog.Functions)),
		opts:       opts,
		globals:    make(map[string]*binding),
		fs:         " ",
		ofs:        " ",
		ors:        "\n",
		rs:         "\n",
		subsep:     "\x1c",
		convfmt:    "%.6g",
		ofmt:       "%.6g",
		io:         runtime.NewIOManager(),
		regexCache: runtime.NewRegexCache(),
		rng:        rand.New(rand.NewSource(1)),
		rngSeed:    1,
		output:     opts.Output,
		stderr:     opts.Stderr,
		argv:       NewArray(),
		environ:    NewArray(),
		mi:         mainInput{argIdx: 1},
	}
	if ip.output == nil {
		ip.output = os.Stdout
	}
	if ip.stderr == nil {
		ip.stderr = os.Stderr
	}
	for _, fn := range prog.Functions {
		ip.funcs[fn.Name] = fn
	}
	ip.rangeActive = make([]bool, len(prog.Rules))

	if opts.FS != "" {
		ip.fs = opts.FS
	}
	if opts.OFS != "" {
		ip.ofs = opts.OFS
	}
	if opts.ORS != "" {
		ip.ors = opts.ORS
	}
	if opts.RS != "" {
		ip.rs = opts.RS
	}
	ip.paragraph = ip.rs == ""

	args := opts.Args
	if len(args) == 0 {
		args = []string{"awk"}
	}
	ip.argc = len(args)
	for i, a := range args {
		ip.argv.Set(strconv.Itoa(i), types.Str(a))
	}
	for _, kv := range os.Environ() {
		if eq := indexByte(kv, '='); eq >= 0 {
			ip.environ.Set(kv[:eq], types.NumStr(kv[eq+1:]))
		}
	}
	for name, val := range opts.Variables {
		ip.setVar(name, types.NumStr(unescapeAssignValue(val)), token.NoPos)
	}
	return ip
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// Run drives BEGIN, the main input loop (if the program needs one), and
// END, honoring next/nextfile/exit along the way. It returns a non-nil
// *ExitSignal error only to report a non-zero exit status; all other
// errors are genuine failures.
func (ip *Interp) Run() error {
	defer ip.io.CloseAll()

	var exitSig *ExitSignal
	if err := ip.runBlocks(ip.prog.Begin); err != nil {
		if es, ok := err.(*ExitSignal); ok {
			exitSig = es
		} else {
			return err
		}
	}

	if exitSig == nil && ip.needsInput() {
		if err := ip.processAllInput(); err != nil {
			if es, ok := err.(*ExitSignal); ok {
				exitSig = es
			} else {
				return err
			}
		}
	}

	return ip.finish(exitSig)
}

func (ip *Interp) needsInput() bool {
	return len(ip.prog.Rules) > 0 || len(ip.prog.EndBlocks) > 0 ||
		len(ip.prog.BeginFile) > 0 || len(ip.prog.EndFile) > 0
}

func (ip *Interp) finish(exitSig *ExitSignal) error {
	if exitSig != nil {
		ip.exitCode = exitSig.Code
	}
	// A pending main file must still fire ENDFILE before END runs.
	if ip.mi.opened {
		if err := ip.closeMainFile(); err != nil {
			if es, ok := err.(*ExitSignal); ok {
				ip.exitCode = es.Code
			} else {
				return err
			}
		}
	}
	endErr := ip.runBlocks(ip.prog.EndBlocks)
	if endErr != nil {
		if es, ok := endErr.(*ExitSignal); ok {
			ip.exitCode = es.Code
		} else {
			return endErr
		}
	}
	if ip.exitCode != 0 {
		return &ExitSignal{Code: ip.exitCode}
	}
	return nil
}

func (ip *Interp) runBlocks(blocks []*ast.BlockStmt) error {
	for _, b := range blocks {
		if err := ip.execBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interp) curFrame() map[string]*binding {
	if len(ip.frames) == 0 {
		return nil
	}
	return ip.frames[len(ip.frames)-1]
}

func (ip *Interp) toStr(v types.Value) string {
	return v.AsStr(ip.convfmt)
}

// unescapeAssignValue processes backslash escapes in -v/ARGV-style
// var=value assignments, matching gawk's handling of command-line
// assignment text.
func unescapeAssignValue(s string) string {
	if indexByte(s, '\\') < 0 {
		return s
	}
	var out []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			case '/':
				out = append(out, '/')
			default:
				out = append(out, '\\', s[i])
			}
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}

func isIdentByte(c byte, first bool) bool {
	if c == '_' || unicode.IsLetter(rune(c)) {
		return true
	}
	if !first && unicode.IsDigit(rune(c)) {
		return true
	}
	return false
}

// splitAssignment recognizes a "name=value" ARGV operand, as opposed to
// a filename. name must look like an AWK identifier.
func splitAssignment(tok string) (name, val string, ok bool) {
	eq := indexByte(tok, '=')
	if eq <= 0 {
		return "", "", false
	}
	for i := 0; i < eq; i++ {
		if !isIdentByte(tok[i], i == 0) {
			return "", "", false
		}
	}
	return tok[:eq], tok[eq+1:], true
}
