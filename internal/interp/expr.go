package interp

import (
	"math"
	"strings"

	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

// eval evaluates an expression to a Value. It is the sole entry point
// tree-walking rule/statement execution uses to produce values, mirroring
// the teacher's single-dispatch evalExpr in spirit even though there is no
// bytecode underneath it here.
func (ip *Interp) eval(e ast.Expr) (types.Value, error) {
	switch n := e.(type) {
	case *ast.NumLit:
		return types.Num(n.Value), nil
	case *ast.StrLit:
		return types.Str(n.Value), nil
	case *ast.RegexLit:
		v, err := ip.getField(0, n.Pos())
		if err != nil {
			return types.Value{}, err
		}
		re, err := ip.regexCache.Get(n.Pattern, false)
		if err != nil {
			return types.Value{}, ip.fatalf(n.Pos(), "invalid regex /%s/: %v", n.Pattern, err)
		}
		return types.Bool(re.MatchString(ip.toStr(v))), nil
	case *ast.Ident:
		return ip.getVar(n.Name, n.Pos())
	case *ast.FieldExpr:
		i, err := ip.fieldIndex(n.Index, n.Pos())
		if err != nil {
			return types.Value{}, err
		}
		return ip.getField(i, n.Pos())
	case *ast.IndexExpr:
		arr, key, err := ip.resolveIndex(n)
		if err != nil {
			return types.Value{}, err
		}
		return arr.Get(key), nil
	case *ast.GroupExpr:
		return ip.eval(n.Expr)
	case *ast.ConcatExpr:
		return ip.evalConcat(n)
	case *ast.BinaryExpr:
		return ip.evalBinary(n)
	case *ast.UnaryExpr:
		return ip.evalUnary(n)
	case *ast.TernaryExpr:
		c, err := ip.eval(n.Cond)
		if err != nil {
			return types.Value{}, err
		}
		if c.AsBool() {
			return ip.eval(n.Then)
		}
		return ip.eval(n.Else)
	case *ast.AssignExpr:
		return ip.evalAssign(n)
	case *ast.MatchExpr:
		return ip.evalMatch(n)
	case *ast.InExpr:
		return ip.evalIn(n)
	case *ast.CommaExpr:
		return ip.eval(n.Right)
	case *ast.CallExpr:
		return ip.callFunction(n)
	case *ast.BuiltinExpr:
		return ip.callBuiltin(n)
	case *ast.GetlineExpr:
		return ip.evalGetline(n)
	}
	return types.Value{}, ip.fatalf(e.Pos(), "unsupported expression %T", e)
}

// fieldIndex evaluates a $expr's index, nil meaning $0.
func (ip *Interp) fieldIndex(idx ast.Expr, pos token.Position) (int, error) {
	if idx == nil {
		return 0, nil
	}
	v, err := ip.eval(idx)
	if err != nil {
		return 0, err
	}
	return int(v.AsNum()), nil
}

func (ip *Interp) evalConcat(n *ast.ConcatExpr) (types.Value, error) {
	var sb strings.Builder
	for _, e := range n.Exprs {
		v, err := ip.eval(e)
		if err != nil {
			return types.Value{}, err
		}
		sb.WriteString(ip.toStr(v))
	}
	return types.Str(sb.String()), nil
}

func (ip *Interp) evalUnary(n *ast.UnaryExpr) (types.Value, error) {
	switch n.Op {
	case token.SUB:
		v, err := ip.eval(n.Expr)
		if err != nil {
			return types.Value{}, err
		}
		return types.Num(-v.AsNum()), nil
	case token.ADD:
		v, err := ip.eval(n.Expr)
		if err != nil {
			return types.Value{}, err
		}
		return types.Num(v.AsNum()), nil
	case token.NOT:
		v, err := ip.eval(n.Expr)
		if err != nil {
			return types.Value{}, err
		}
		return types.Bool(!v.AsBool()), nil
	case token.INCR, token.DECR:
		old, err := ip.evalLValue(n.Expr)
		if err != nil {
			return types.Value{}, err
		}
		delta := 1.0
		if n.Op == token.DECR {
			delta = -1.0
		}
		updated := types.Num(old.AsNum() + delta)
		if err := ip.assignTo(n.Expr, updated); err != nil {
			return types.Value{}, err
		}
		if n.Post {
			return types.Num(old.AsNum()), nil
		}
		return updated, nil
	}
	return types.Value{}, ip.fatalf(n.Pos(), "unsupported unary operator")
}

// evalLValue reads an lvalue's current value, used by ++/-- and
// compound assignment to get the "before" value.
func (ip *Interp) evalLValue(e ast.Expr) (types.Value, error) {
	return ip.eval(e)
}

// assignTo writes v into the lvalue denoted by e (Ident, IndexExpr, or
// FieldExpr), the three node kinds ast.IsLValue accepts.
func (ip *Interp) assignTo(e ast.Expr, v types.Value) error {
	switch n := e.(type) {
	case *ast.Ident:
		return ip.setVar(n.Name, v, n.Pos())
	case *ast.IndexExpr:
		arr, key, err := ip.resolveIndex(n)
		if err != nil {
			return err
		}
		arr.Set(key, v)
		return nil
	case *ast.FieldExpr:
		i, err := ip.fieldIndex(n.Index, n.Pos())
		if err != nil {
			return err
		}
		return ip.setField(i, v, n.Pos())
	}
	return ip.fatalf(e.Pos(), "invalid assignment target")
}

func (ip *Interp) evalAssign(n *ast.AssignExpr) (types.Value, error) {
	rhs, err := ip.eval(n.Right)
	if err != nil {
		return types.Value{}, err
	}
	if n.Op == token.ASSIGN {
		if err := ip.assignTo(n.Left, rhs); err != nil {
			return types.Value{}, err
		}
		return rhs, nil
	}
	cur, err := ip.evalLValue(n.Left)
	if err != nil {
		return types.Value{}, err
	}
	result, err := ip.applyAugOp(n.Pos(), n.Op, cur.AsNum(), rhs.AsNum())
	if err != nil {
		return types.Value{}, err
	}
	v := types.Num(result)
	if err := ip.assignTo(n.Left, v); err != nil {
		return types.Value{}, err
	}
	return v, nil
}

func (ip *Interp) applyAugOp(pos token.Position, op token.Token, a, b float64) (float64, error) {
	switch op {
	case token.ADD_ASSIGN:
		return a + b, nil
	case token.SUB_ASSIGN:
		return a - b, nil
	case token.MUL_ASSIGN:
		return a * b, nil
	case token.DIV_ASSIGN:
		if b == 0 {
			return 0, ip.fatalf(pos, "division by zero")
		}
		return a / b, nil
	case token.MOD_ASSIGN:
		if b == 0 {
			return 0, ip.fatalf(pos, "division by zero in %%=")
		}
		return mod(a, b), nil
	case token.POW_ASSIGN:
		return powFloat(a, b), nil
	}
	return 0, ip.fatalf(pos, "unsupported compound assignment operator")
}

func (ip *Interp) evalBinary(n *ast.BinaryExpr) (types.Value, error) {
	switch n.Op {
	case token.AND:
		l, err := ip.eval(n.Left)
		if err != nil {
			return types.Value{}, err
		}
		if !l.AsBool() {
			return types.Bool(false), nil
		}
		r, err := ip.eval(n.Right)
		if err != nil {
			return types.Value{}, err
		}
		return types.Bool(r.AsBool()), nil
	case token.OR:
		l, err := ip.eval(n.Left)
		if err != nil {
			return types.Value{}, err
		}
		if l.AsBool() {
			return types.Bool(true), nil
		}
		r, err := ip.eval(n.Right)
		if err != nil {
			return types.Value{}, err
		}
		return types.Bool(r.AsBool()), nil
	}

	l, err := ip.eval(n.Left)
	if err != nil {
		return types.Value{}, err
	}
	r, err := ip.eval(n.Right)
	if err != nil {
		return types.Value{}, err
	}

	switch n.Op {
	case token.ADD:
		return types.Num(l.AsNum() + r.AsNum()), nil
	case token.SUB:
		return types.Num(l.AsNum() - r.AsNum()), nil
	case token.MUL:
		return types.Num(l.AsNum() * r.AsNum()), nil
	case token.DIV:
		if r.AsNum() == 0 {
			return types.Value{}, ip.fatalf(n.Pos(), "division by zero")
		}
		return types.Num(l.AsNum() / r.AsNum()), nil
	case token.MOD:
		if r.AsNum() == 0 {
			return types.Value{}, ip.fatalf(n.Pos(), "division by zero in %%")
		}
		return types.Num(mod(l.AsNum(), r.AsNum())), nil
	case token.POW:
		return types.Num(powFloat(l.AsNum(), r.AsNum())), nil
	case token.EQUALS:
		return types.Bool(types.Compare(l, r) == 0), nil
	case token.NOT_EQUALS:
		return types.Bool(types.Compare(l, r) != 0), nil
	case token.LESS:
		return types.Bool(types.Compare(l, r) < 0), nil
	case token.LTE:
		return types.Bool(types.Compare(l, r) <= 0), nil
	case token.GREATER:
		return types.Bool(types.Compare(l, r) > 0), nil
	case token.GTE:
		return types.Bool(types.Compare(l, r) >= 0), nil
	}
	return types.Value{}, ip.fatalf(n.Pos(), "unsupported binary operator")
}

func (ip *Interp) evalMatch(n *ast.MatchExpr) (types.Value, error) {
	sv, err := ip.eval(n.Expr)
	if err != nil {
		return types.Value{}, err
	}
	re, err := ip.evalRegexArg(n.Pattern)
	if err != nil {
		return types.Value{}, err
	}
	matched := re.MatchString(ip.toStr(sv))
	if n.Op == token.NOT_MATCH {
		matched = !matched
	}
	return types.Bool(matched), nil
}

// evalRegexArg evaluates an expression used in regex position: a
// RegexLit compiles as a literal pattern, anything else is a dynamic
// string used as a regex (FS-like "computed regex" semantics).
func (ip *Interp) evalRegexArg(e ast.Expr) (*runtime.Regex, error) {
	if rl, ok := e.(*ast.RegexLit); ok {
		re, err := ip.regexCache.Get(rl.Pattern, false)
		if err != nil {
			return nil, ip.fatalf(e.Pos(), "invalid regex /%s/: %v", rl.Pattern, err)
		}
		return re, nil
	}
	v, err := ip.eval(e)
	if err != nil {
		return nil, err
	}
	pat := ip.toStr(v)
	re, err := ip.regexCache.Get(pat, true)
	if err != nil {
		return nil, ip.fatalf(e.Pos(), "invalid dynamic regex %q: %v", pat, err)
	}
	return re, nil
}

func (ip *Interp) evalIn(n *ast.InExpr) (types.Value, error) {
	ident, ok := arrayIdent(n.Array)
	if !ok {
		return types.Value{}, ip.fatalf(n.Pos(), "array reference must be a name")
	}
	arr, err := ip.arrayFor(ident.Name, ident.Pos())
	if err != nil {
		return types.Value{}, err
	}
	key, err := ip.subscriptKey(n.Index)
	if err != nil {
		return types.Value{}, err
	}
	return types.Bool(arr.Has(key)), nil
}

// subscriptKey evaluates an array subscript expression list, joining
// multiple subscripts with SUBSEP for "arr[i,j]"-style pseudo
// multidimensional arrays.
func (ip *Interp) subscriptKey(subs []ast.Expr) (string, error) {
	if len(subs) == 1 {
		v, err := ip.eval(subs[0])
		if err != nil {
			return "", err
		}
		return ip.toStr(v), nil
	}
	parts := make([]string, len(subs))
	for i, s := range subs {
		v, err := ip.eval(s)
		if err != nil {
			return "", err
		}
		parts[i] = ip.toStr(v)
	}
	return strings.Join(parts, ip.subsep), nil
}

func (ip *Interp) evalArgs(exprs []ast.Expr) ([]types.Value, error) {
	vals := make([]types.Value, len(exprs))
	for i, e := range exprs {
		v, err := ip.eval(e)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func mod(a, b float64) float64 {
	return math.Mod(a, b)
}

func powFloat(a, b float64) float64 {
	return math.Pow(a, b)
}
