package interp

import (
	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

func (ip *Interp) globalBinding(name string) *binding {
	b, ok := ip.globals[name]
	if !ok {
		b = &binding{}
		ip.globals[name] = b
	}
	return b
}

// getVar reads a scalar variable by name, checking the current call
// frame before falling back to specials and globals.
func (ip *Interp) getVar(name string, pos token.Position) (types.Value, error) {
	if f := ip.curFrame(); f != nil {
		if b, ok := f[name]; ok {
			if b.isArray {
				return types.Value{}, ip.fatalf(pos, "can't read value of array %s as scalar", name)
			}
			return b.scalar, nil
		}
	}
	if v, ok := ip.getSpecialVar(name); ok {
		return v, nil
	}
	if name == "ARGV" || name == "ENVIRON" {
		return types.Value{}, ip.fatalf(pos, "can't read value of array %s as scalar", name)
	}
	b := ip.globalBinding(name)
	if b.isArray {
		return types.Value{}, ip.fatalf(pos, "can't read value of array %s as scalar", name)
	}
	return b.scalar, nil
}

// setVar writes a scalar variable by name.
func (ip *Interp) setVar(name string, v types.Value, pos token.Position) error {
	if f := ip.curFrame(); f != nil {
		if b, ok := f[name]; ok {
			if b.isArray {
				return ip.fatalf(pos, "can't assign to array %s", name)
			}
			b.scalar = v
			return nil
		}
	}
	if handled, err := ip.setSpecialVar(name, v); handled {
		return err
	}
	if name == "ARGV" || name == "ENVIRON" {
		return ip.fatalf(pos, "can't assign to array %s", name)
	}
	b := ip.globalBinding(name)
	if b.isArray {
		return ip.fatalf(pos, "can't assign to array %s", name)
	}
	b.scalar = v
	return nil
}

// arrayFor resolves name to its backing Array, creating it (as an array
// binding) on first use. A name already used as a scalar is a fatal
// type clash, matching AWK's static-ish array/scalar distinction.
func (ip *Interp) arrayFor(name string, pos token.Position) (*Array, error) {
	if f := ip.curFrame(); f != nil {
		if b, ok := f[name]; ok {
			if !b.isArray {
				if !b.scalar.IsNull() {
					return nil, ip.fatalf(pos, "can't use scalar %s as array", name)
				}
				b.isArray = true
				b.array = NewArray()
			}
			return b.array, nil
		}
	}
	switch name {
	case "ARGV":
		return ip.argv, nil
	case "ENVIRON":
		return ip.environ, nil
	}
	b := ip.globalBinding(name)
	if !b.isArray {
		if !b.scalar.IsNull() {
			return nil, ip.fatalf(pos, "can't use scalar %s as array", name)
		}
		b.isArray = true
		b.array = NewArray()
	}
	return b.array, nil
}

func (ip *Interp) getSpecialVar(name string) (types.Value, bool) {
	switch name {
	case "FS":
		return types.Str(ip.fs), true
	case "OFS":
		return types.Str(ip.ofs), true
	case "ORS":
		return types.Str(ip.ors), true
	case "RS":
		return types.Str(ip.rs), true
	case "SUBSEP":
		return types.Str(ip.subsep), true
	case "CONVFMT":
		return types.Str(ip.convfmt), true
	case "OFMT":
		return types.Str(ip.ofmt), true
	case "FILENAME":
		return types.Str(ip.filename), true
	case "FIELDWIDTHS":
		return types.Str(ip.fieldWidthsSpec), true
	case "FPAT":
		return types.Str(ip.fpat), true
	case "NR":
		return types.Num(float64(ip.nr)), true
	case "FNR":
		return types.Num(float64(ip.fnr)), true
	case "NF":
		return types.Num(float64(ip.nf)), true
	case "RSTART":
		return types.Num(float64(ip.rstart)), true
	case "RLENGTH":
		return types.Num(float64(ip.rlength)), true
	case "ARGC":
		return types.Num(float64(ip.argc)), true
	}
	return types.Value{}, false
}

// setSpecialVar handles assignment to a special variable name. handled
// reports whether name was recognized as a special at all (so callers
// know to fall back to ordinary global assignment otherwise).
func (ip *Interp) setSpecialVar(name string, v types.Value) (handled bool, err error) {
	switch name {
	case "FS":
		ip.fs = ip.toStr(v)
	case "OFS":
		ip.ofs = ip.toStr(v)
	case "ORS":
		ip.ors = ip.toStr(v)
	case "RS":
		ip.rs = ip.toStr(v)
		ip.paragraph = ip.rs == ""
	case "SUBSEP":
		ip.subsep = ip.toStr(v)
	case "CONVFMT":
		ip.convfmt = ip.toStr(v)
	case "OFMT":
		ip.ofmt = ip.toStr(v)
	case "FILENAME":
		ip.filename = ip.toStr(v)
	case "FIELDWIDTHS":
		ip.fieldWidthsSpec = ip.toStr(v)
		ip.fieldWidths = runtime.ParseFieldWidths(ip.fieldWidthsSpec)
	case "FPAT":
		ip.fpat = ip.toStr(v)
	case "NR":
		ip.nr = int(v.AsNum())
	case "FNR":
		ip.fnr = int(v.AsNum())
	case "NF":
		return true, ip.setNF(int(v.AsNum()))
	case "RSTART":
		ip.rstart = int(v.AsNum())
	case "RLENGTH":
		ip.rlength = int(v.AsNum())
	case "ARGC":
		ip.argc = int(v.AsNum())
	default:
		return false, nil
	}
	return true, nil
}

// resolveIndex evaluates an IndexExpr's array and subscript, joining
// multiple subscripts with SUBSEP as AWK's pseudo-multidimensional
// arrays do.
func (ip *Interp) resolveIndex(ix *ast.IndexExpr) (*Array, string, error) {
	ident, ok := ix.Array.(*ast.Ident)
	if !ok {
		return nil, "", ip.fatalf(ix.Pos(), "array reference must be a name")
	}
	arr, err := ip.arrayFor(ident.Name, ident.Pos())
	if err != nil {
		return nil, "", err
	}
	key, err := ip.subscriptKey(ix.Index)
	if err != nil {
		return nil, "", err
	}
	return arr, key, nil
}

// arrayIdent extracts the array name from an expression used as an
// array reference (split's 2nd arg, for-in's array, etc.), which AWK
// requires to be a bare identifier.
func arrayIdent(e ast.Expr) (*ast.Ident, bool) {
	id, ok := e.(*ast.Ident)
	return id, ok
}
