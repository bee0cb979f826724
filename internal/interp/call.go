package interp

import (
	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/semantic"
	"github.com/kolkov/rawk/internal/types"
)

// callFunction invokes a user-defined function: scalars are copied into
// the new frame by value, but a parameter known (from static resolution)
// to be used as an array is aliased to the caller's array by reference,
// matching AWK's call-by-value/call-by-reference split.
func (ip *Interp) callFunction(call *ast.CallExpr) (types.Value, error) {
	fn, ok := ip.funcs[call.Name]
	if !ok {
		return types.Value{}, ip.fatalf(call.Pos(), "calling undefined function %s", call.Name)
	}
	if len(ip.frames) >= maxCallDepth {
		return types.Value{}, ip.fatalf(call.Pos(), "call stack too deep calling %s", call.Name)
	}

	finfo := ip.resolved.Functions[call.Name]
	params := fn.Params
	frame := make(map[string]*binding, len(params))

	for i, pname := range params {
		isArray := finfo != nil && isArrayParam(finfo, pname)
		if i < len(call.Args) {
			arg := call.Args[i]
			if isArray {
				arr, err := ip.argArray(arg)
				if err != nil {
					return types.Value{}, err
				}
				frame[pname] = &binding{isArray: true, array: arr}
				continue
			}
			v, err := ip.eval(arg)
			if err != nil {
				return types.Value{}, err
			}
			frame[pname] = &binding{scalar: v}
			continue
		}
		// Extra param (local var) or omitted arg: fresh uninitialized
		// binding, type decided on first use inside the function body.
		if isArray {
			frame[pname] = &binding{isArray: true, array: NewArray()}
		} else {
			frame[pname] = &binding{}
		}
	}

	ip.frames = append(ip.frames, frame)
	err := ip.execBlock(fn.Body)
	ip.frames = ip.frames[:len(ip.frames)-1]

	if err == nil {
		return types.Null(), nil
	}
	if rs, ok := err.(returnSignal); ok {
		return rs.Value, nil
	}
	return types.Value{}, err
}

func isArrayParam(finfo *semantic.FuncInfo, name string) bool {
	sym, ok := finfo.Symbols.LookupLocal(name)
	if !ok {
		return false
	}
	return sym.Type == semantic.TypeArray
}

// argArray resolves a call argument that must denote an array: it has
// to be a bare identifier, since AWK only aliases whole arrays, never
// array elements or computed expressions.
func (ip *Interp) argArray(arg ast.Expr) (*Array, error) {
	ident, ok := arg.(*ast.Ident)
	if !ok {
		return nil, ip.fatalf(arg.Pos(), "array argument must be a plain variable name")
	}
	return ip.arrayFor(ident.Name, ident.Pos())
}
