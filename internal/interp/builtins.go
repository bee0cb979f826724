package interp

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

// callBuiltin dispatches a built-in function call to its implementation.
// Most builtins are simple value-in/value-out; split/sub/gsub/gensub/
// patsplit/asort/asorti additionally mutate an array or string in place
// and so need access to the raw argument expressions, not just values.
func (ip *Interp) callBuiltin(n *ast.BuiltinExpr) (types.Value, error) {
	switch n.Func {
	case token.F_LENGTH:
		return ip.biLength(n)
	case token.F_SUBSTR:
		return ip.biSubstr(n)
	case token.F_INDEX:
		return ip.biIndex(n)
	case token.F_SPLIT:
		return ip.biSplit(n)
	case token.F_SUB:
		return ip.biSub(n, false)
	case token.F_GSUB:
		return ip.biSub(n, true)
	case token.F_GENSUB:
		return ip.biGensub(n)
	case token.F_MATCH:
		return ip.biMatch(n)
	case token.F_SPRINTF:
		return ip.biSprintf(n)
	case token.F_TOLOWER:
		return ip.bi1Str(n, strings.ToLower)
	case token.F_TOUPPER:
		return ip.bi1Str(n, strings.ToUpper)
	case token.F_SIN:
		return ip.bi1Num(n, math.Sin)
	case token.F_COS:
		return ip.bi1Num(n, math.Cos)
	case token.F_EXP:
		return ip.bi1Num(n, math.Exp)
	case token.F_LOG:
		return ip.bi1Num(n, math.Log)
	case token.F_SQRT:
		return ip.bi1Num(n, math.Sqrt)
	case token.F_INT:
		return ip.bi1Num(n, math.Trunc)
	case token.F_ATAN2:
		return ip.biAtan2(n)
	case token.F_RAND:
		return types.Num(ip.rng.Float64()), nil
	case token.F_SRAND:
		return ip.biSrand(n)
	case token.F_CLOSE:
		return ip.biClose(n)
	case token.F_FFLUSH:
		return ip.biFflush(n)
	case token.F_SYSTEM:
		return ip.biSystem(n)
	case token.F_PATSPLIT:
		return ip.biPatsplit(n)
	case token.F_ASORT:
		return ip.biAsort(n, false)
	case token.F_ASORTI:
		return ip.biAsort(n, true)
	case token.F_SYSTIME:
		return types.Num(float64(runtime.Systime())), nil
	case token.F_MKTIME:
		return ip.bi1Str2Num(n, func(s string) float64 { return float64(runtime.Mktime(s)) })
	case token.F_STRFTIME:
		return ip.biStrftime(n)
	}
	return types.Value{}, ip.fatalf(n.Pos(), "unsupported builtin %v", n.Func)
}

func (ip *Interp) biLength(n *ast.BuiltinExpr) (types.Value, error) {
	if len(n.Args) == 0 {
		v, err := ip.getField(0, n.Pos())
		if err != nil {
			return types.Value{}, err
		}
		return types.Num(float64(len([]rune(ip.toStr(v))))), nil
	}
	if ident, ok := n.Args[0].(*ast.Ident); ok {
		if ip.isArrayName(ident.Name) {
			arr, err := ip.arrayFor(ident.Name, ident.Pos())
			if err != nil {
				return types.Value{}, err
			}
			return types.Num(float64(arr.Len())), nil
		}
	}
	v, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.Num(float64(len([]rune(ip.toStr(v))))), nil
}

// isArrayName reports whether name is already bound as an array,
// without creating a binding as a side effect (unlike arrayFor).
func (ip *Interp) isArrayName(name string) bool {
	if f := ip.curFrame(); f != nil {
		if b, ok := f[name]; ok {
			return b.isArray
		}
	}
	if name == "ARGV" || name == "ENVIRON" {
		return true
	}
	b, ok := ip.globals[name]
	return ok && b.isArray
}

func (ip *Interp) biSubstr(n *ast.BuiltinExpr) (types.Value, error) {
	args, err := ip.evalArgs(n.Args)
	if err != nil {
		return types.Value{}, err
	}
	s := []rune(ip.toStr(args[0]))
	start := int(math.Round(args[1].AsNum()))
	hasLen := len(args) > 2
	var length int
	if hasLen {
		length = int(math.Round(args[2].AsNum()))
	}

	// AWK's substr allows start/length to run off either end; the
	// effective range clamps to [1, len(s)] in 1-based terms.
	from := start
	var to int
	if hasLen {
		to = start + length
	} else {
		to = len(s) + 1
	}
	if from < 1 {
		from = 1
	}
	if to > len(s)+1 {
		to = len(s) + 1
	}
	if to <= from {
		return types.Str(""), nil
	}
	return types.Str(string(s[from-1 : to-1])), nil
}

func (ip *Interp) biIndex(n *ast.BuiltinExpr) (types.Value, error) {
	args, err := ip.evalArgs(n.Args)
	if err != nil {
		return types.Value{}, err
	}
	s := []rune(ip.toStr(args[0]))
	sub := []rune(ip.toStr(args[1]))
	if len(sub) == 0 {
		return types.Num(1), nil
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if string(s[i:i+len(sub)]) == string(sub) {
			return types.Num(float64(i + 1)), nil
		}
	}
	return types.Num(0), nil
}

func (ip *Interp) biSplit(n *ast.BuiltinExpr) (types.Value, error) {
	sv, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	ident, ok := arrayIdent(n.Args[1])
	if !ok {
		return types.Value{}, ip.fatalf(n.Pos(), "split's 2nd argument must be an array name")
	}
	arr, err := ip.arrayFor(ident.Name, ident.Pos())
	if err != nil {
		return types.Value{}, err
	}
	arr.Clear()

	opts := runtime.FieldSplitOptions{FS: ip.fs}
	if len(n.Args) > 2 {
		if rl, isRe := n.Args[2].(*ast.RegexLit); isRe {
			opts = runtime.FieldSplitOptions{FS: rl.Pattern}
		} else {
			fv, err := ip.eval(n.Args[2])
			if err != nil {
				return types.Value{}, err
			}
			opts = runtime.FieldSplitOptions{FS: ip.toStr(fv)}
		}
	}
	fields, err := runtime.SplitFields(ip.toStr(sv), opts, ip.regexCache)
	if err != nil {
		return types.Value{}, ip.fatalf(n.Pos(), "invalid split separator: %v", err)
	}
	for i, f := range fields {
		arr.Set(fmt.Sprintf("%d", i+1), types.NumStr(f))
	}
	return types.Num(float64(len(fields))), nil
}

func (ip *Interp) biPatsplit(n *ast.BuiltinExpr) (types.Value, error) {
	sv, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	ident, ok := arrayIdent(n.Args[1])
	if !ok {
		return types.Value{}, ip.fatalf(n.Pos(), "patsplit's 2nd argument must be an array name")
	}
	arr, err := ip.arrayFor(ident.Name, ident.Pos())
	if err != nil {
		return types.Value{}, err
	}
	arr.Clear()

	fpat := ip.fpat
	if len(n.Args) > 2 {
		fv, err := ip.eval(n.Args[2])
		if err != nil {
			return types.Value{}, err
		}
		fpat = ip.toStr(fv)
	}
	fields, err := runtime.SplitFields(ip.toStr(sv), runtime.FieldSplitOptions{FPat: fpat}, ip.regexCache)
	if err != nil {
		return types.Value{}, ip.fatalf(n.Pos(), "invalid patsplit pattern: %v", err)
	}
	for i, f := range fields {
		arr.Set(fmt.Sprintf("%d", i+1), types.NumStr(f))
	}
	return types.Num(float64(len(fields))), nil
}

func (ip *Interp) biMatch(n *ast.BuiltinExpr) (types.Value, error) {
	sv, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	re, err := ip.evalRegexArg(n.Args[1])
	if err != nil {
		return types.Value{}, err
	}
	s := ip.toStr(sv)
	loc := re.FindStringIndex(s)
	if loc == nil {
		ip.rstart = 0
		ip.rlength = -1
		return types.Num(0), nil
	}
	start := len([]rune(s[:loc[0]])) + 1
	length := len([]rune(s[loc[0]:loc[1]]))
	ip.rstart = start
	ip.rlength = length
	return types.Num(float64(start)), nil
}

// biSub implements sub()/gsub(): substitute the first (sub) or every
// (gsub) match of a regex in a target string, writing the result back
// to the target lvalue (defaulting to $0) and returning the count.
func (ip *Interp) biSub(n *ast.BuiltinExpr, global bool) (types.Value, error) {
	re, err := ip.evalRegexArg(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	rv, err := ip.eval(n.Args[1])
	if err != nil {
		return types.Value{}, err
	}
	repl := ip.toStr(rv)

	var target ast.Expr
	var orig string
	if len(n.Args) > 2 {
		target = n.Args[2]
		tv, err := ip.evalLValue(target)
		if err != nil {
			return types.Value{}, err
		}
		orig = ip.toStr(tv)
	} else {
		fv, err := ip.getField(0, n.Pos())
		if err != nil {
			return types.Value{}, err
		}
		orig = ip.toStr(fv)
	}

	result, count := substitute(re, orig, repl, global)
	if count == 0 {
		return types.Num(0), nil
	}
	if target != nil {
		if err := ip.assignTo(target, types.Str(result)); err != nil {
			return types.Value{}, err
		}
	} else {
		if err := ip.setField(0, types.Str(result), n.Pos()); err != nil {
			return types.Value{}, err
		}
	}
	return types.Num(float64(count)), nil
}

// substitute replaces matches of re in s with repl, where repl's "&"
// means the whole match and "\&" is a literal ampersand.
func substitute(re *runtime.Regex, s, repl string, global bool) (string, int) {
	var sb strings.Builder
	count := 0
	pos := 0
	for pos <= len(s) {
		loc := re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		sb.WriteString(s[pos:start])
		sb.WriteString(expandAmp(repl, s[start:end]))
		count++
		if end == start {
			if end < len(s) {
				sb.WriteByte(s[end])
			}
			pos = end + 1
		} else {
			pos = end
		}
		if !global {
			break
		}
	}
	if pos <= len(s) {
		sb.WriteString(s[pos:])
	}
	return sb.String(), count
}

func expandAmp(repl, match string) string {
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		switch repl[i] {
		case '&':
			sb.WriteString(match)
		case '\\':
			if i+1 < len(repl) && (repl[i+1] == '&' || repl[i+1] == '\\') {
				sb.WriteByte(repl[i+1])
				i++
			} else {
				sb.WriteByte('\\')
			}
		default:
			sb.WriteByte(repl[i])
		}
	}
	return sb.String()
}

// biGensub implements gawk's gensub(): unlike sub/gsub it never
// mutates its target, returning the substituted string instead, and
// its replacement text supports \1..\9 backreferences in addition to
// "&"/"\0" for the whole match.
func (ip *Interp) biGensub(n *ast.BuiltinExpr) (types.Value, error) {
	re, err := ip.evalRegexArg(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	rv, err := ip.eval(n.Args[1])
	if err != nil {
		return types.Value{}, err
	}
	repl := ip.toStr(rv)
	hv, err := ip.eval(n.Args[2])
	if err != nil {
		return types.Value{}, err
	}
	how := ip.toStr(hv)
	global := how == "g" || how == "G"
	which := 1
	if !global {
		if n := int(hv.AsNum()); n > 0 {
			which = n
		}
	}

	var s string
	if len(n.Args) > 3 {
		sv, err := ip.eval(n.Args[3])
		if err != nil {
			return types.Value{}, err
		}
		s = ip.toStr(sv)
	} else {
		fv, err := ip.getField(0, n.Pos())
		if err != nil {
			return types.Value{}, err
		}
		s = ip.toStr(fv)
	}

	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return types.Str(s), nil
	}

	var sb strings.Builder
	pos := 0
	occurrence := 0
	for _, m := range matches {
		occurrence++
		if !global && occurrence != which {
			continue
		}
		sb.WriteString(s[pos:m[0]])
		sb.WriteString(expandGensubRepl(repl, s, m))
		pos = m[1]
		if !global {
			break
		}
	}
	sb.WriteString(s[pos:])
	return types.Str(sb.String()), nil
}

// expandGensubRepl expands "&"/"\0".."\9" in a gensub replacement,
// given a submatch index slice [whole0, whole1, g1start, g1end, ...].
func expandGensubRepl(repl, s string, m []int) string {
	group := func(i int) string {
		gi := i * 2
		if gi+1 >= len(m) || m[gi] < 0 {
			return ""
		}
		return s[m[gi]:m[gi+1]]
	}
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '&':
			sb.WriteString(group(0))
		case c == '\\' && i+1 < len(repl) && repl[i+1] >= '0' && repl[i+1] <= '9':
			sb.WriteString(group(int(repl[i+1] - '0')))
			i++
		case c == '\\' && i+1 < len(repl) && (repl[i+1] == '&' || repl[i+1] == '\\'):
			sb.WriteByte(repl[i+1])
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func (ip *Interp) biSprintf(n *ast.BuiltinExpr) (types.Value, error) {
	args, err := ip.evalArgs(n.Args)
	if err != nil {
		return types.Value{}, err
	}
	format := ip.toStr(args[0])
	return types.Str(runtime.Sprintf(format, args[1:])), nil
}

func (ip *Interp) bi1Str(n *ast.BuiltinExpr, f func(string) string) (types.Value, error) {
	v, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.Str(f(ip.toStr(v))), nil
}

func (ip *Interp) bi1Str2Num(n *ast.BuiltinExpr, f func(string) float64) (types.Value, error) {
	v, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.Num(f(ip.toStr(v))), nil
}

func (ip *Interp) bi1Num(n *ast.BuiltinExpr, f func(float64) float64) (types.Value, error) {
	v, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.Num(f(v.AsNum())), nil
}

func (ip *Interp) biAtan2(n *ast.BuiltinExpr) (types.Value, error) {
	args, err := ip.evalArgs(n.Args)
	if err != nil {
		return types.Value{}, err
	}
	return types.Num(math.Atan2(args[0].AsNum(), args[1].AsNum())), nil
}

func (ip *Interp) biSrand(n *ast.BuiltinExpr) (types.Value, error) {
	prev := ip.rngSeed
	var seed float64
	if len(n.Args) > 0 {
		v, err := ip.eval(n.Args[0])
		if err != nil {
			return types.Value{}, err
		}
		seed = v.AsNum()
	} else {
		seed = float64(runtime.Systime())
	}
	ip.rngSeed = seed
	ip.rng = rand.New(rand.NewSource(int64(seed)))
	return types.Num(prev), nil
}

func (ip *Interp) biClose(n *ast.BuiltinExpr) (types.Value, error) {
	v, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.Num(float64(ip.io.Close(ip.toStr(v)))), nil
}

func (ip *Interp) biFflush(n *ast.BuiltinExpr) (types.Value, error) {
	name := ""
	if len(n.Args) > 0 {
		v, err := ip.eval(n.Args[0])
		if err != nil {
			return types.Value{}, err
		}
		name = ip.toStr(v)
	}
	return types.Num(float64(ip.io.Flush(name))), nil
}

func (ip *Interp) biSystem(n *ast.BuiltinExpr) (types.Value, error) {
	v, err := ip.eval(n.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	ip.io.Flush("")
	if f, ok := ip.output.(*os.File); ok {
		f.Sync()
	}
	cmd := exec.Command(shellForSystem(), shellArgForSystem(), ip.toStr(v))
	cmd.Stdout = ip.output
	cmd.Stderr = ip.stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Run(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return types.Num(float64(ee.ExitCode())), nil
		}
		return types.Num(-1), nil
	}
	return types.Num(0), nil
}

func shellForSystem() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "sh"
}

func shellArgForSystem() string {
	return "-c"
}

func (ip *Interp) biAsort(n *ast.BuiltinExpr, indices bool) (types.Value, error) {
	srcIdent, ok := arrayIdent(n.Args[0])
	if !ok {
		return types.Value{}, ip.fatalf(n.Pos(), "asort/asorti's argument must be an array name")
	}
	src, err := ip.arrayFor(srcIdent.Name, srcIdent.Pos())
	if err != nil {
		return types.Value{}, err
	}

	destIdent := srcIdent
	if len(n.Args) > 1 {
		destIdent, ok = arrayIdent(n.Args[1])
		if !ok {
			return types.Value{}, ip.fatalf(n.Pos(), "asort/asorti's 2nd argument must be an array name")
		}
	}
	dest, err := ip.arrayFor(destIdent.Name, destIdent.Pos())
	if err != nil {
		return types.Value{}, err
	}

	var values []types.Value
	if indices {
		for _, k := range src.Keys() {
			values = append(values, types.NumStr(k))
		}
	} else {
		for _, k := range src.Keys() {
			values = append(values, src.Get(k))
		}
	}
	sort.Slice(values, func(i, j int) bool { return types.Compare(values[i], values[j]) < 0 })

	dest.Clear()
	for i, v := range values {
		dest.Set(fmt.Sprintf("%d", i+1), v)
	}
	return types.Num(float64(len(values))), nil
}

func (ip *Interp) biStrftime(n *ast.BuiltinExpr) (types.Value, error) {
	layout := "%a %b %e %H:%M:%S %Z %Y"
	ts := runtime.Systime()
	if len(n.Args) > 0 {
		v, err := ip.eval(n.Args[0])
		if err != nil {
			return types.Value{}, err
		}
		layout = ip.toStr(v)
	}
	if len(n.Args) > 1 {
		v, err := ip.eval(n.Args[1])
		if err != nil {
			return types.Value{}, err
		}
		ts = int64(v.AsNum())
	}
	return types.Str(runtime.Strftime(layout, ts)), nil
}
